package cmd

import (
	"strings"

	"github.com/spf13/cobra"

	"task-tracker.com/task-tracker/internal/render"
	"task-tracker.com/task-tracker/internal/validators"
)

func newAddCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:     "add <description>",
		Short:   "Add a new task",
		Example: `  task-tracker add "Buy groceries"`,
		Args:    minimumArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			description, err := validators.ValidateDescription(strings.Join(args, " "))
			if err != nil {
				return err
			}

			id, err := a.taskService.AddTask(cmd.Context(), description)
			if err != nil {
				return err
			}

			render.Added(cmd.OutOrStdout(), id)
			return nil
		},
	}
}
