package repository

import (
	"context"

	model "task-tracker.com/task-tracker/internal/models"
)

// Store persists the whole task collection. Load on a fresh location returns an
// empty collection; Save replaces the previous content or leaves it intact.
type Store interface {
	Load(ctx context.Context) (model.TaskCollection, error)
	Save(ctx context.Context, collection model.TaskCollection) error
}
