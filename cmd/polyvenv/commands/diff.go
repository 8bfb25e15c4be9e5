package commands

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.trai.ch/polyvenv/internal/ui/style"
)

func (c *CLI) newDiffCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "diff",
		Short: "Show the package operations a provisioning run would apply",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cwd, err := workDir(cmd)
			if err != nil {
				return err
			}
			diff, err := c.app.Diff(cmd.Context(), cwd, provisionOptions(cmd))
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			ops := diff.Operations()
			if len(ops) == 0 {
				_, err = fmt.Fprintln(out, style.Muted.Render("nothing to do"))
				return err
			}
			for _, op := range ops {
				if _, err := fmt.Fprintln(out, op.String()); err != nil {
					return err
				}
			}
			return nil
		},
	}
	cmd.Flags().StringSliceP("group", "g", nil, "Optional dependency group to synchronize (repeatable)")
	cmd.Flags().Bool("strict", false, "Remove installed packages that are not selected from the lock file")
	return cmd
}
