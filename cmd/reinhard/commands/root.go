// Package commands implements the CLI commands for the reinhard ops toolkit.
package commands

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"go.trai.ch/reinhard/internal/adapters/detector"
	"go.trai.ch/reinhard/internal/app"
	"go.trai.ch/reinhard/internal/build"
	"go.trai.ch/reinhard/internal/core/domain"
)

// CLI represents the command line interface for reinhard.
type CLI struct {
	app     Application
	rootCmd *cobra.Command
}

// Application represents the application logic interface.
type Application interface {
	VerifyLocks(ctx context.Context, opts app.VerifyOptions) error
	UpgradeLocks(ctx context.Context, opts app.UpgradeOptions) (*domain.LockDelta, error)
	OutdatedLocks(ctx context.Context, out io.Writer) error

	GenerateIndexes(ctx context.Context, opts app.GenerateOptions) error
	SearchIndex(ctx context.Context, name, query string, out io.Writer) error
	VerifyIndexes(ctx context.Context) error
	WatchIndexes(ctx context.Context, opts app.GenerateOptions) error

	CheckImages(ctx context.Context) error
	BumpImages(ctx context.Context, dryRun bool) (*domain.ImageDelta, error)

	EventForKind(ctx context.Context, kind string) (domain.Event, error)
	CICheck(ctx context.Context, event domain.Event, out io.Writer) error
	CIRun(ctx context.Context, opts app.CIRunOptions) error
	CINext(ctx context.Context, out io.Writer) error

	SetDebug(enable bool)
}

// New creates a new CLI instance with the given app.
func New(a Application) *CLI {
	rootCmd := &cobra.Command{
		Use:           "reinhard",
		Short:         "Dependency lock, reference index, and CI maintenance for the bot",
		SilenceUsage:  true,
		SilenceErrors: true,
		Version:       build.Version,
		PersistentPreRun: func(cmd *cobra.Command, _ []string) {
			debug, _ := cmd.Flags().GetBool("debug")
			if debug || detector.DebugEnabled() {
				a.SetDebug(true)
			}
		},
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

	rootCmd.PersistentFlags().Bool("debug", false, "Enable debug logging")

	c := &CLI{
		app:     a,
		rootCmd: rootCmd,
	}

	rootCmd.AddCommand(c.newLocksCmd())
	rootCmd.AddCommand(c.newIndexCmd())
	rootCmd.AddCommand(c.newImageCmd())
	rootCmd.AddCommand(c.newCICmd())
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
