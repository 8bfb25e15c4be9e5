package commands

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.trai.ch/polyvenv/internal/ui/style"
)

func (c *CLI) newRuntimesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "runtimes",
		Short: "List the configured runtimes and their interpreters",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cwd, err := workDir(cmd)
			if err != nil {
				return err
			}
			listing, err := c.app.Runtimes(cmd.Context(), cwd, os.Environ())
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			for _, r := range listing.Runtimes {
				marker := style.Circle
				if r.Version == listing.Primary {
					marker = style.Primary.Render(style.Dot)
				}
				line := fmt.Sprintf("%s %-8s %s", marker, r.Version, style.Muted.Render(r.ExecutablePath))
				if _, err := fmt.Fprintln(out, line); err != nil {
					return err
				}
			}
			return nil
		},
	}
}
