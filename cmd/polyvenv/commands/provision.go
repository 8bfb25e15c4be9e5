package commands

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.trai.ch/polyvenv/internal/app"
)

func addProvisionFlags(cmd *cobra.Command) {
	cmd.Flags().StringSliceP("group", "g", nil, "Optional dependency group to synchronize (repeatable)")
	cmd.Flags().Bool("strict", false, "Remove installed packages that are not selected from the lock file")
	cmd.Flags().Bool("force-rebind", false, "Discard a managed environment bound to another interpreter")
	cmd.Flags().Bool("no-verify", false, "Skip probing each runtime after bootstrapping it")
}

func provisionOptions(cmd *cobra.Command) app.ProvisionOptions {
	groups, _ := cmd.Flags().GetStringSlice("group")
	strict, _ := cmd.Flags().GetBool("strict")
	force, _ := cmd.Flags().GetBool("force-rebind")
	noVerify, _ := cmd.Flags().GetBool("no-verify")
	return app.ProvisionOptions{
		Groups:   groups,
		Strict:   strict,
		Force:    force,
		NoVerify: noVerify,
		Environ:  os.Environ(),
	}
}

func (c *CLI) newProvisionCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "provision",
		Short: "Isolate the runtimes and synchronize the managed environment",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cwd, err := workDir(cmd)
			if err != nil {
				return err
			}
			record, err := c.app.Provision(cmd.Context(), cwd, provisionOptions(cmd))
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), record.Environment.Path)
			return err
		},
	}
	addProvisionFlags(cmd)
	return cmd
}
