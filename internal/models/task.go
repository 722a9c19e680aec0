package model

import (
	"math"
	"time"

	"task-tracker.com/task-tracker/internal/constants"
)

type Task struct {
	ID          int                  `json:"id"`
	Description string               `json:"description"`
	Status      constants.TaskStatus `json:"status"`
	CreatedAt   time.Time            `json:"createdAt"`
	UpdatedAt   time.Time            `json:"updatedAt"`
}

// TaskCollection is the full ordered task list as persisted. LastID is the
// largest id ever handed out, so ids freed by deletion are not reused.
type TaskCollection struct {
	LastID int
	Tasks  []Task
}

// NextID returns the id for a new task. ok is false once the id space is used up.
func (c *TaskCollection) NextID() (id int, ok bool) {
	next := c.LastID
	for _, task := range c.Tasks {
		if task.ID > next {
			next = task.ID
		}
	}
	if next == math.MaxInt {
		return 0, false
	}
	return next + 1, true
}

// Append adds task at the end and advances LastID.
func (c *TaskCollection) Append(task Task) {
	c.Tasks = append(c.Tasks, task)
	if task.ID > c.LastID {
		c.LastID = task.ID
	}
}

// Find returns the index of the task with id, or -1.
func (c *TaskCollection) Find(id int) int {
	for i := range c.Tasks {
		if c.Tasks[i].ID == id {
			return i
		}
	}
	return -1
}

func (c *TaskCollection) Remove(index int) {
	c.Tasks = append(c.Tasks[:index], c.Tasks[index+1:]...)
}

func (c *TaskCollection) Filter(status constants.TaskStatus) []Task {
	tasks := make([]Task, 0, len(c.Tasks))
	for _, task := range c.Tasks {
		if status == "" || task.Status == status {
			tasks = append(tasks, task)
		}
	}
	return tasks
}
