// Package commands implements the CLI commands for recall.
package commands

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"go.trai.ch/recall/internal/adapters/telemetry/progrock"
	"go.trai.ch/recall/internal/app"
	"go.trai.ch/recall/internal/build"
)

// CLI represents the command line interface for recall.
type CLI struct {
	app     Application
	logs    LogSettings
	journal Journal
	rootCmd *cobra.Command
}

// Application represents the application logic interface.
type Application interface {
	Run(ctx context.Context, targets []string, opts app.RunOptions) (*app.Result, error)
	Clean(ctx context.Context, rootDir string) error
	Inspect(ctx context.Context, targets []string, opts app.RunOptions) (*app.InspectReport, error)
}

// LogSettings is the part of the logger the global flags configure.
type LogSettings interface {
	SetJSON(enable bool)
	SetVerbose(enable bool)
}

// Journal lists the vertices recorded during a run.
type Journal interface {
	Vertices() []progrock.VertexSummary
}

// Option configures the CLI.
type Option func(*CLI)

// WithLogSettings lets --json-log and --verbose reconfigure the logger.
func WithLogSettings(l LogSettings) Option {
	return func(c *CLI) { c.logs = l }
}

// WithJournal enables the task summary printed after a run.
func WithJournal(j Journal) Option {
	return func(c *CLI) { c.journal = j }
}

// New creates a new CLI instance with the given app.
func New(a Application, opts ...Option) *CLI {
	rootCmd := &cobra.Command{
		Use:           "recall",
		Short:         "A build runner with a configuration cache",
		SilenceUsage:  true,
		SilenceErrors: true,
		Version:       build.Version,
	}

	rootCmd.SetVersionTemplate(fmt.Sprintf(
		"{{.Name}} version {{.Version}} (commit: %s, date: %s)\n",
		build.Commit,
		build.Date,
	))
	rootCmd.InitDefaultVersionFlag()
	rootCmd.Flags().Lookup("version").Usage = "Print the application version"

	rootCmd.InitDefaultHelpFlag()
	rootCmd.Flags().Lookup("help").Usage = "Show help for command"

	rootCmd.PersistentFlags().StringP("root", "C", ".", "Build root directory")
	rootCmd.PersistentFlags().Bool("json-log", false, "Write log lines as JSON")
	rootCmd.PersistentFlags().Bool("verbose", false, "Enable debug logging")

	c := &CLI{
		app:     a,
		rootCmd: rootCmd,
	}
	for _, opt := range opts {
		opt(c)
	}

	rootCmd.PersistentPreRun = func(cmd *cobra.Command, _ []string) {
		if c.logs == nil {
			return
		}
		jsonLog, _ := cmd.Flags().GetBool("json-log")
		verbose, _ := cmd.Flags().GetBool("verbose")
		c.logs.SetJSON(jsonLog)
		c.logs.SetVerbose(verbose)
	}

	rootCmd.AddCommand(c.newRunCmd())
	rootCmd.AddCommand(c.newInspectCmd())
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

// SetOutput sets the output and error streams for the root command. Used for testing.
func (c *CLI) SetOutput(out, err io.Writer) {
	c.rootCmd.SetOut(out)
	c.rootCmd.SetErr(err)
}
