package commands

import (
	"github.com/spf13/cobra"
	"go.trai.ch/reinhard/internal/app"
)

func (c *CLI) newCICmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "ci",
		Short: "Evaluate and run CI workflows",
	}

	cmd.AddCommand(c.newCICheckCmd())
	cmd.AddCommand(c.newCIRunCmd())
	cmd.AddCommand(c.newCINextCmd())

	return cmd
}

func (c *CLI) newCICheckCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "check",
		Short: "List the workflows an event would trigger",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			kind, _ := cmd.Flags().GetString("event")

			event, err := c.app.EventForKind(cmd.Context(), kind)
			if err != nil {
				return err
			}
			return c.app.CICheck(cmd.Context(), event, cmd.OutOrStdout())
		},
	}
	cmd.Flags().StringP("event", "e", "pull_request", "Event kind: pull_request, schedule, or workflow_dispatch")
	return cmd
}

func (c *CLI) newCIRunCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run [workflow]",
		Short: "Run the workflows an event triggers, or a named workflow",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			kind, _ := cmd.Flags().GetString("event")

			event, err := c.app.EventForKind(cmd.Context(), kind)
			if err != nil {
				return err
			}

			name := ""
			if len(args) == 1 {
				name = args[0]
			}

			return c.app.CIRun(cmd.Context(), app.CIRunOptions{
				Workflow: name,
				Event:    event,
			})
		},
	}
	cmd.Flags().StringP("event", "e", "workflow_dispatch", "Event kind: pull_request, schedule, or workflow_dispatch")
	return cmd
}

func (c *CLI) newCINextCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "next",
		Short: "Show when each scheduled workflow fires next",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return c.app.CINext(cmd.Context(), cmd.OutOrStdout())
		},
	}
}
