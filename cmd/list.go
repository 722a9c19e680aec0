package cmd

import (
	"github.com/spf13/cobra"

	"task-tracker.com/task-tracker/internal/constants"
	"task-tracker.com/task-tracker/internal/render"
	"task-tracker.com/task-tracker/internal/validators"
)

func newListCmd(a *app) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:       "list [todo|in-progress|done]",
		Short:     "List tasks, optionally filtered by status",
		Args:      wrapArgs(cobra.MaximumNArgs(1)),
		ValidArgs: []string{"todo", "in-progress", "done"},
		RunE: func(cmd *cobra.Command, args []string) error {
			var filter constants.TaskStatus
			if len(args) == 1 {
				status, err := validators.ValidateStatus(args[0])
				if err != nil {
					return err
				}
				filter = status
			}

			result, err := a.taskService.ListTasks(cmd.Context(), filter)
			if err != nil {
				return err
			}
			a.logger.Debug("tasks listed", "matched", len(result.Tasks), "total", result.Total)

			if asJSON {
				return render.TasksJSON(cmd.OutOrStdout(), result.Tasks)
			}
			render.Tasks(cmd.OutOrStdout(), result.Tasks, result.Total, filter)
			return nil
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "print tasks as JSON")
	return cmd
}
