package commands

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.trai.ch/polyvenv/internal/app"
)

func (c *CLI) newActivateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "activate",
		Short: "Print a script that activates the managed environment",
		Long: `Print a script that activates the managed environment.

Evaluate the output in the current shell:

  eval "$(polyvenv activate)"
  polyvenv activate --shell fish | source`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cwd, err := workDir(cmd)
			if err != nil {
				return err
			}
			shell, _ := cmd.Flags().GetString("shell")
			cached, _ := cmd.Flags().GetBool("cached")

			script, err := c.app.Activate(cmd.Context(), cwd, app.ActivateOptions{
				ProvisionOptions: provisionOptions(cmd),
				Shell:            shell,
				Cached:           cached,
			})
			if err != nil {
				return err
			}
			_, err = fmt.Fprint(cmd.OutOrStdout(), script)
			return err
		},
	}
	addProvisionFlags(cmd)
	cmd.Flags().StringP("shell", "s", "sh", "Script format: sh, bash, zsh, fish or json")
	cmd.Flags().Bool("cached", false, "Use the last provisioning run instead of provisioning again")
	return cmd
}
