package cmd

import (
	"strings"

	"github.com/spf13/cobra"

	"task-tracker.com/task-tracker/internal/render"
	"task-tracker.com/task-tracker/internal/validators"
)

func newUpdateCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:     "update <id> <new description>",
		Short:   "Change a task's description",
		Example: `  task-tracker update 1 "Buy groceries and cook dinner"`,
		Args:    minimumArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := validators.ValidateTaskID(args[0])
			if err != nil {
				return err
			}
			description, err := validators.ValidateDescription(strings.Join(args[1:], " "))
			if err != nil {
				return err
			}

			if err := a.taskService.UpdateTask(cmd.Context(), id, description); err != nil {
				return err
			}

			render.Updated(cmd.OutOrStdout(), id)
			return nil
		},
	}
}
