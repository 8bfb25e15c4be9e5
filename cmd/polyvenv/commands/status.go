package commands

import (
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/spf13/cobra"
	"go.trai.ch/polyvenv/internal/app"
	"go.trai.ch/polyvenv/internal/ui/style"
	"go.trai.ch/zerr"
)

// errStale makes status --check exit non-zero without logging a failure.
var errStale = zerr.New("environment is stale")

func (c *CLI) newStatusCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "status",
		Short: "Compare the last provisioning run with the project as it is now",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cwd, err := workDir(cmd)
			if err != nil {
				return err
			}
			status, err := c.app.Status(cmd.Context(), cwd)
			if err != nil {
				return err
			}
			if err := printStatus(cmd.OutOrStdout(), status); err != nil {
				return err
			}
			if check, _ := cmd.Flags().GetBool("check"); check && status.Stale() {
				return errStale
			}
			return nil
		},
	}
	cmd.Flags().Bool("check", false, "Exit with status 1 when the environment is stale")
	return cmd
}

// IsStale reports whether err signals a stale environment from status --check.
func IsStale(err error) bool {
	return errors.Is(err, errStale)
}

func printStatus(w io.Writer, s *app.Status) error {
	var lines []string
	lines = append(lines, fmt.Sprintf("project     %s", s.Config.Root))
	lines = append(lines, fmt.Sprintf("primary     %s", s.Config.Primary))
	lines = append(lines, fmt.Sprintf("environment %s", s.Config.VenvPath))
	if s.Record != nil {
		lines = append(lines,
			fmt.Sprintf("last run    %s %s", s.Record.CreatedAt.Format(time.RFC3339), style.Muted.Render(s.Record.RunID)),
			fmt.Sprintf("runtimes    %v", s.Record.Runtimes),
			fmt.Sprintf("provision   %s", s.Record.ProvisionID),
		)
	}

	if s.Stale() {
		lines = append(lines, style.Notice.Render(style.Warning+" stale"))
		for _, reason := range s.Reasons {
			lines = append(lines, "  "+style.Tilde+" "+reason)
		}
	} else {
		lines = append(lines, style.Success.Render(style.Check+" up to date"))
	}

	for _, line := range lines {
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	return nil
}
