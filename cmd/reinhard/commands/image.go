package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

func (c *CLI) newImageCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "image",
		Short: "Maintain digest pins for base images",
	}

	cmd.AddCommand(c.newImageCheckCmd())
	cmd.AddCommand(c.newImageBumpCmd())

	return cmd
}

func (c *CLI) newImageCheckCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "check",
		Short: "Verify every base image is pinned by digest",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return c.app.CheckImages(cmd.Context())
		},
	}
}

func (c *CLI) newImageBumpCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "bump",
		Short: "Re-pin base images to the digest their tag points at",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			dryRun, _ := cmd.Flags().GetBool("dry-run")

			delta, err := c.app.BumpImages(cmd.Context(), dryRun)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if delta.Empty() {
				_, _ = fmt.Fprintln(out, "base images are current")
				return nil
			}
			_, _ = fmt.Fprint(out, delta.Summary())
			return nil
		},
	}
	cmd.Flags().BoolP("dry-run", "n", false, "Show the changes without rewriting files")
	return cmd
}
