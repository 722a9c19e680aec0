// Package render prints task results for the terminal.
package render

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"task-tracker.com/task-tracker/internal/constants"
	model "task-tracker.com/task-tracker/internal/models"
	repository "task-tracker.com/task-tracker/internal/repositories"
)

const timeLayout = "2006-01-02 15:04:05"

var (
	headerStyle = lipgloss.NewStyle().Bold(true).Padding(0, 1)
	cellStyle   = lipgloss.NewStyle().Padding(0, 1)
)

// Tasks prints tasks as a table. total is the collection size before
// filtering and only shapes the empty-result message.
func Tasks(out io.Writer, tasks []model.Task, total int, filter constants.TaskStatus) {
	if len(tasks) == 0 {
		if total > 0 && filter != "" {
			fmt.Fprintf(out, "No tasks with status %q.\n", filter)
			return
		}
		fmt.Fprintln(out, "No tasks found.")
		return
	}

	rows := make([][]string, 0, len(tasks))
	for _, task := range tasks {
		rows = append(rows, []string{
			strconv.Itoa(task.ID),
			task.Description,
			string(task.Status),
			task.CreatedAt.Local().Format(timeLayout),
			task.UpdatedAt.Local().Format(timeLayout),
		})
	}

	t := table.New().
		Border(lipgloss.NormalBorder()).
		Headers("ID", "DESCRIPTION", "STATUS", "CREATED", "UPDATED").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			return cellStyle
		})

	fmt.Fprintln(out, t.Render())
}

type jsonTask struct {
	ID          int                  `json:"id"`
	Description string               `json:"description"`
	Status      constants.TaskStatus `json:"status"`
	CreatedAt   string               `json:"createdAt"`
	UpdatedAt   string               `json:"updatedAt"`
}

// TasksJSON prints tasks with timestamps in the stored layout.
func TasksJSON(out io.Writer, tasks []model.Task) error {
	records := make([]jsonTask, 0, len(tasks))
	for _, task := range tasks {
		records = append(records, jsonTask{
			ID:          task.ID,
			Description: task.Description,
			Status:      task.Status,
			CreatedAt:   task.CreatedAt.UTC().Format(repository.TimestampLayout),
			UpdatedAt:   task.UpdatedAt.UTC().Format(repository.TimestampLayout),
		})
	}
	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	return enc.Encode(records)
}

func Added(out io.Writer, id int) {
	fmt.Fprintf(out, "Task added successfully (ID: %d)\n", id)
}

func Updated(out io.Writer, id int) {
	fmt.Fprintf(out, "Task %d updated\n", id)
}

func Deleted(out io.Writer, id int) {
	fmt.Fprintf(out, "Task %d deleted\n", id)
}

func StatusChanged(out io.Writer, id int, status constants.TaskStatus) {
	fmt.Fprintf(out, "Task %d marked as %s\n", id, status)
}
