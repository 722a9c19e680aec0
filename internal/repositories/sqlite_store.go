package repository

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/mattn/go-sqlite3"
	"gorm.io/gorm"

	config "task-tracker.com/task-tracker/internal/configs"
	"task-tracker.com/task-tracker/internal/constants"
	apperrors "task-tracker.com/task-tracker/internal/errors"
	model "task-tracker.com/task-tracker/internal/models"
)

const collectionMetaName = "tasks"

type taskRow struct {
	ID          int       `gorm:"primaryKey;autoIncrement:false"`
	Position    int       `gorm:"not null;index"`
	Description string    `gorm:"not null"`
	Status      string    `gorm:"type:varchar(20);not null"`
	Created     time.Time `gorm:"column:created_at;not null"`
	Updated     time.Time `gorm:"column:updated_at;not null"`
}

func (taskRow) TableName() string { return "tasks" }

type taskMeta struct {
	Name   string `gorm:"primaryKey;size:32"`
	LastID int    `gorm:"not null"`
}

func (taskMeta) TableName() string { return "task_meta" }

// SQLiteStore keeps the collection in a sqlite database. Save replaces every
// row inside one transaction.
type SQLiteStore struct {
	path string
}

func NewSQLiteStore(path string) (*SQLiteStore, error) {
	if strings.TrimSpace(path) == "" {
		return nil, errors.New("store path is required")
	}
	return &SQLiteStore{path: path}, nil
}

func (s *SQLiteStore) Path() string {
	return s.path
}

func (s *SQLiteStore) Load(ctx context.Context) (model.TaskCollection, error) {
	if _, err := os.Stat(s.path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return model.TaskCollection{}, nil
		}
		return model.TaskCollection{}, apperrors.Wrap(apperrors.ErrStorageReadFailed, err)
	}

	db, err := config.NewDatabaseClient(s.path)
	if err != nil {
		return model.TaskCollection{}, s.readError(err)
	}
	defer config.CloseDatabaseClient(db)

	tx := db.WithContext(ctx)

	hasTasks, err := hasTable(tx, taskRow{}.TableName())
	if err != nil {
		return model.TaskCollection{}, s.readError(err)
	}
	if !hasTasks {
		return model.TaskCollection{}, nil
	}

	var rows []taskRow
	if err := tx.Order("position asc").Find(&rows).Error; err != nil {
		return model.TaskCollection{}, s.readError(err)
	}

	collection := model.TaskCollection{Tasks: make([]model.Task, 0, len(rows))}
	for _, row := range rows {
		status := constants.TaskStatus(row.Status)
		if !status.Valid() {
			return model.TaskCollection{}, apperrors.Wrap(apperrors.ErrStorageCorrupt,
				fmt.Errorf("%s: task %d has invalid status %q", s.path, row.ID, row.Status))
		}
		collection.Tasks = append(collection.Tasks, model.Task{
			ID:          row.ID,
			Description: row.Description,
			Status:      status,
			CreatedAt:   row.Created.UTC(),
			UpdatedAt:   row.Updated.UTC(),
		})
	}

	hasMeta, err := hasTable(tx, taskMeta{}.TableName())
	if err != nil {
		return model.TaskCollection{}, s.readError(err)
	}
	if hasMeta {
		var metas []taskMeta
		if err := tx.Where("name = ?", collectionMetaName).Limit(1).Find(&metas).Error; err != nil {
			return model.TaskCollection{}, s.readError(err)
		}
		if len(metas) > 0 {
			collection.LastID = metas[0].LastID
		}
	}

	return collection, nil
}

func (s *SQLiteStore) Save(ctx context.Context, collection model.TaskCollection) error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return apperrors.Wrap(apperrors.ErrStorageWriteFailed, err)
	}

	db, err := config.NewDatabaseClient(s.path)
	if err != nil {
		return apperrors.Wrap(apperrors.ErrStorageWriteFailed, err)
	}
	defer config.CloseDatabaseClient(db)

	if err := db.WithContext(ctx).AutoMigrate(&taskRow{}, &taskMeta{}); err != nil {
		return apperrors.Wrap(apperrors.ErrStorageWriteFailed, fmt.Errorf("migrate: %w", err))
	}

	rows := make([]taskRow, 0, len(collection.Tasks))
	for i, task := range collection.Tasks {
		rows = append(rows, taskRow{
			ID:          task.ID,
			Position:    i,
			Description: task.Description,
			Status:      string(task.Status),
			Created:     task.CreatedAt.UTC(),
			Updated:     task.UpdatedAt.UTC(),
		})
	}

	err = db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("1 = 1").Delete(&taskRow{}).Error; err != nil {
			return err
		}
		if len(rows) > 0 {
			if err := tx.Create(&rows).Error; err != nil {
				return err
			}
		}
		return tx.Save(&taskMeta{Name: collectionMetaName, LastID: collection.LastID}).Error
	})
	if err != nil {
		return apperrors.Wrap(apperrors.ErrStorageWriteFailed, fmt.Errorf("%s: %w", s.path, err))
	}
	return nil
}

func (s *SQLiteStore) readError(err error) error {
	if isCorruptDatabase(err) {
		return apperrors.Wrap(apperrors.ErrStorageCorrupt, fmt.Errorf("%s: %w", s.path, err))
	}
	return apperrors.Wrap(apperrors.ErrStorageReadFailed, fmt.Errorf("%s: %w", s.path, err))
}

func hasTable(tx *gorm.DB, name string) (bool, error) {
	var count int64
	err := tx.Raw("SELECT count(*) FROM sqlite_master WHERE type = 'table' AND name = ?", name).
		Scan(&count).Error
	return count > 0, err
}

func isCorruptDatabase(err error) bool {
	var sqliteErr sqlite3.Error
	if errors.As(err, &sqliteErr) {
		return sqliteErr.Code == sqlite3.ErrNotADB || sqliteErr.Code == sqlite3.ErrCorrupt
	}
	return false
}
