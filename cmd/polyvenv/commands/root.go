// Package commands implements the CLI commands for polyvenv.
package commands

import (
	"context"
	"io"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"go.trai.ch/polyvenv/internal/adapters/detector"
	"go.trai.ch/polyvenv/internal/adapters/telemetry"
	"go.trai.ch/polyvenv/internal/app"
	"go.trai.ch/polyvenv/internal/build"
	"go.trai.ch/zerr"
)

// jsonLogger is implemented by loggers that can switch to structured output.
type jsonLogger interface {
	SetJSON(enable bool)
}

// CLI represents the command line interface for polyvenv.
type CLI struct {
	app     *app.App
	comps   *app.Components
	probe   detector.Probe
	rootCmd *cobra.Command
}

// New creates a new CLI instance with the given components.
func New(comps *app.Components) *CLI {
	rootCmd := &cobra.Command{
		Use:           "polyvenv",
		Short:         "Provision isolated Python environments across several interpreters",
		SilenceUsage:  true,
		SilenceErrors: true,
		Version:       build.Version,
	}

	rootCmd.InitDefaultVersionFlag()
	rootCmd.Flags().Lookup("version").Usage = "Print the application version"

	rootCmd.InitDefaultHelpFlag()
	rootCmd.Flags().Lookup("help").Usage = "Show help for command"

	rootCmd.PersistentFlags().StringP("chdir", "C", "", "Run as if polyvenv was started in this directory")
	rootCmd.PersistentFlags().String("log-format", "auto", "Log format: auto, pretty or json")

	c := &CLI{
		app:     comps.App,
		comps:   comps,
		probe:   detector.SystemProbe(),
		rootCmd: rootCmd,
	}

	rootCmd.PersistentPreRunE = c.configureOutput

	rootCmd.AddCommand(c.newProvisionCmd())
	rootCmd.AddCommand(c.newDiffCmd())
	rootCmd.AddCommand(c.newRuntimesCmd())
	rootCmd.AddCommand(c.newActivateCmd())
	rootCmd.AddCommand(c.newStatusCmd())
	rootCmd.AddCommand(c.newWatchCmd())
	rootCmd.AddCommand(c.newCleanCmd())
	rootCmd.AddCommand(c.newVersionCmd())

	return c
}

// Execute runs the root command with the given context.
func (c *CLI) Execute(ctx context.Context) error {
	c.rootCmd.SetContext(ctx)
	return c.rootCmd.Execute()
}

// SetArgs sets the arguments for the root command. Used for testing.
func (c *CLI) SetArgs(args []string) {
	c.rootCmd.SetArgs(args)
}

// SetOutput redirects command output. Used for testing.
func (c *CLI) SetOutput(stdout, stderr io.Writer) {
	c.rootCmd.SetOut(stdout)
	c.rootCmd.SetErr(stderr)
}

// SetProbe replaces the terminal probe used to pick the log format. Used for testing.
func (c *CLI) SetProbe(p detector.Probe) {
	c.probe = p
}

func (c *CLI) configureOutput(cmd *cobra.Command, _ []string) error {
	format, _ := cmd.Flags().GetString("log-format")
	mode := detector.ResolveMode(detector.DetectEnvironment(c.probe), format)
	if mode != detector.ModeJSON {
		return nil
	}
	if l, ok := c.comps.Logger.(jsonLogger); ok {
		l.SetJSON(true)
	}
	// Progress rendering would interleave with the JSON stream.
	c.app.WithTelemetry(telemetry.NewNoOp())
	return nil
}

func workDir(cmd *cobra.Command) (string, error) {
	dir, _ := cmd.Flags().GetString("chdir")
	if dir == "" {
		wd, err := os.Getwd()
		if err != nil {
			return "", zerr.Wrap(err, "failed to get working directory")
		}
		return wd, nil
	}
	abs, err := filepath.Abs(dir)
	if err != nil {
		return "", zerr.With(zerr.Wrap(err, "failed to resolve directory"), "dir", dir)
	}
	return abs, nil
}
