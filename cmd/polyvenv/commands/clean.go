package commands

import (
	"github.com/spf13/cobra"
	"go.trai.ch/polyvenv/internal/app"
)

func (c *CLI) newCleanCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "clean",
		Short: "Remove the project state directory",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cwd, err := workDir(cmd)
			if err != nil {
				return err
			}
			venv, _ := cmd.Flags().GetBool("venv")
			return c.app.Clean(cmd.Context(), cwd, app.CleanOptions{Venv: venv})
		},
	}
	cmd.Flags().Bool("venv", false, "Also discard the managed environment")
	return cmd
}
