package cmd

import (
	"context"
	"io"

	"github.com/spf13/cobra"

	"task-tracker.com/task-tracker/internal/constants"
	"task-tracker.com/task-tracker/internal/render"
	"task-tracker.com/task-tracker/internal/validators"
)

func newMarkCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:     "mark <id> <todo|in-progress|done>",
		Short:   "Set a task's status",
		Example: "  task-tracker mark 3 done",
		Args:    exactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := validators.ValidateTaskID(args[0])
			if err != nil {
				return err
			}
			status, err := validators.ValidateStatus(args[1])
			if err != nil {
				return err
			}
			return a.setStatus(cmd.Context(), cmd.OutOrStdout(), id, status)
		},
	}
}

// newMarkShortcutCmds builds mark-todo, mark-in-progress and mark-done.
func newMarkShortcutCmds(a *app) []*cobra.Command {
	cmds := make([]*cobra.Command, 0, len(constants.TaskStatuses))
	for _, status := range constants.TaskStatuses {
		status := status // per-iteration copy; go.mod targets go 1.21 (pre-1.22 loop semantics)
		cmds = append(cmds, &cobra.Command{
			Use:   "mark-" + string(status) + " <id>",
			Short: "Mark a task as " + string(status),
			Args:  exactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				id, err := validators.ValidateTaskID(args[0])
				if err != nil {
					return err
				}
				return a.setStatus(cmd.Context(), cmd.OutOrStdout(), id, status)
			},
		})
	}
	return cmds
}

func (a *app) setStatus(ctx context.Context, out io.Writer, id int, status constants.TaskStatus) error {
	if err := a.taskService.SetStatus(ctx, id, status); err != nil {
		return err
	}
	render.StatusChanged(out, id, status)
	return nil
}
