package commands

import (
	"github.com/spf13/cobra"
)

func (c *CLI) newWatchCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Provision again whenever the configuration or the lock file changes",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cwd, err := workDir(cmd)
			if err != nil {
				return err
			}
			return c.app.Watch(cmd.Context(), cwd, provisionOptions(cmd))
		},
	}
	addProvisionFlags(cmd)
	return cmd
}
