package commands

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.trai.ch/reinhard/internal/app"
)

func (c *CLI) newLocksCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "locks",
		Short: "Verify and upgrade dependency lock files",
	}

	cmd.AddCommand(c.newLocksVerifyCmd())
	cmd.AddCommand(c.newLocksUpgradeCmd())
	cmd.AddCommand(c.newLocksOutdatedCmd())

	return cmd
}

func (c *CLI) newLocksVerifyCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "verify",
		Short: "Check lock files against their source manifests and the registry",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			offline, _ := cmd.Flags().GetBool("offline")

			return c.app.VerifyLocks(cmd.Context(), app.VerifyOptions{
				Offline: offline,
			})
		},
	}
	cmd.Flags().Bool("offline", false, "Skip registry lookups")
	return cmd
}

func (c *CLI) newLocksUpgradeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "upgrade",
		Short: "Move every pin to the latest matching release",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			dryRun, _ := cmd.Flags().GetBool("dry-run")
			publish, _ := cmd.Flags().GetBool("publish")

			delta, err := c.app.UpgradeLocks(cmd.Context(), app.UpgradeOptions{
				DryRun:  dryRun,
				Publish: publish,
			})
			if err != nil {
				return err
			}

			_, _ = fmt.Fprint(cmd.OutOrStdout(), delta.Summary())
			return nil
		},
	}
	cmd.Flags().BoolP("dry-run", "n", false, "Show the changes without writing lock files")
	cmd.Flags().Bool("publish", false, "Commit the changes and open a pull request")
	return cmd
}

func (c *CLI) newLocksOutdatedCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "outdated",
		Short: "List pins with a newer matching release",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return c.app.OutdatedLocks(cmd.Context(), cmd.OutOrStdout())
		},
	}
}
