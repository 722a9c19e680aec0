package cmd

import (
	"github.com/spf13/cobra"

	"task-tracker.com/task-tracker/internal/render"
	"task-tracker.com/task-tracker/internal/validators"
)

func newDeleteCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a task",
		Args:  exactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := validators.ValidateTaskID(args[0])
			if err != nil {
				return err
			}

			if err := a.taskService.DeleteTask(cmd.Context(), id); err != nil {
				return err
			}

			render.Deleted(cmd.OutOrStdout(), id)
			return nil
		},
	}
}
