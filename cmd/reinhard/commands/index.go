package commands

import (
	"github.com/spf13/cobra"
	"go.trai.ch/reinhard/internal/app"
)

func (c *CLI) newIndexCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "index",
		Short: "Generate and query reference index artifacts",
	}

	cmd.AddCommand(c.newIndexGenerateCmd())
	cmd.AddCommand(c.newIndexSearchCmd())
	cmd.AddCommand(c.newIndexVerifyCmd())
	cmd.AddCommand(c.newIndexWatchCmd())

	return cmd
}

func (c *CLI) newIndexGenerateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "generate [profile]",
		Short: "Build the reference indexes of a profile",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			outDir, _ := cmd.Flags().GetString("out-dir")

			profile := ""
			if len(args) == 1 {
				profile = args[0]
			}

			return c.app.GenerateIndexes(cmd.Context(), app.GenerateOptions{
				Profile: profile,
				OutDir:  outDir,
			})
		},
	}
	cmd.Flags().StringP("out-dir", "o", "", "Artifact output directory (overrides configuration)")
	return cmd
}

func (c *CLI) newIndexSearchCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "search <index> <query>",
		Short: "Search an index artifact for objects by name",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.app.SearchIndex(cmd.Context(), args[0], args[1], cmd.OutOrStdout())
		},
	}
}

func (c *CLI) newIndexVerifyCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "verify",
		Short: "Check index artifacts against their manifest",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return c.app.VerifyIndexes(cmd.Context())
		},
	}
}

func (c *CLI) newIndexWatchCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "watch [profile]",
		Short: "Regenerate indexes when source files change",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			outDir, _ := cmd.Flags().GetString("out-dir")

			profile := ""
			if len(args) == 1 {
				profile = args[0]
			}

			return c.app.WatchIndexes(cmd.Context(), app.GenerateOptions{
				Profile: profile,
				OutDir:  outDir,
			})
		},
	}
	cmd.Flags().StringP("out-dir", "o", "", "Artifact output directory (overrides configuration)")
	return cmd
}
