package repository

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	apperrors "task-tracker.com/task-tracker/internal/errors"
	model "task-tracker.com/task-tracker/internal/models"
)

func setupTestDB(t *testing.T) (*SQLiteStore, string) {
	t.Helper()

	path := filepath.Join(t.TempDir(), "tasks.db")
	store, err := NewSQLiteStore(path)
	if err != nil {
		t.Fatalf("NewSQLiteStore: %v", err)
	}
	return store, path
}

func TestSQLiteStore_Load_MissingFileIsEmpty(t *testing.T) {
	store, path := setupTestDB(t)

	collection, err := store.Load(context.Background())
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(collection.Tasks) != 0 {
		t.Fatalf("expected no tasks, got %d", len(collection.Tasks))
	}
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Fatalf("Load created database file")
	}
}

func TestSQLiteStore_SaveAndLoad_PreservesOrderAndLastID(t *testing.T) {
	store, _ := setupTestDB(t)
	ctx := context.Background()

	want := sampleCollection()
	// Stored order differs from id order.
	want.Tasks[0], want.Tasks[1] = want.Tasks[1], want.Tasks[0]

	if err := store.Save(ctx, want); err != nil {
		t.Fatalf("Save: %v", err)
	}

	got, err := store.Load(ctx)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if got.LastID != want.LastID {
		t.Fatalf("LastID=%d, want %d", got.LastID, want.LastID)
	}
	if len(got.Tasks) != len(want.Tasks) {
		t.Fatalf("len(Tasks)=%d, want %d", len(got.Tasks), len(want.Tasks))
	}
	for i := range want.Tasks {
		g, w := got.Tasks[i], want.Tasks[i]
		if g.ID != w.ID || g.Description != w.Description || g.Status != w.Status {
			t.Fatalf("task[%d]=%+v, want %+v", i, g, w)
		}
		if !g.CreatedAt.Equal(w.CreatedAt) || !g.UpdatedAt.Equal(w.UpdatedAt) {
			t.Fatalf("task[%d] timestamps=%v/%v, want %v/%v", i, g.CreatedAt, g.UpdatedAt, w.CreatedAt, w.UpdatedAt)
		}
	}
}

func TestSQLiteStore_Save_ReplacesRows(t *testing.T) {
	store, _ := setupTestDB(t)
	ctx := context.Background()

	if err := store.Save(ctx, sampleCollection()); err != nil {
		t.Fatalf("Save: %v", err)
	}

	next := sampleCollection()
	next.Tasks = next.Tasks[1:]
	if err := store.Save(ctx, next); err != nil {
		t.Fatalf("Save: %v", err)
	}

	got, err := store.Load(ctx)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(got.Tasks) != 1 || got.Tasks[0].ID != 3 {
		t.Fatalf("tasks=%+v, want only id 3", got.Tasks)
	}
	if got.LastID != 3 {
		t.Fatalf("LastID=%d, want 3", got.LastID)
	}
}

func TestSQLiteStore_SaveEmptyCollection(t *testing.T) {
	store, _ := setupTestDB(t)
	ctx := context.Background()

	if err := store.Save(ctx, model.TaskCollection{LastID: 2}); err != nil {
		t.Fatalf("Save: %v", err)
	}
	got, err := store.Load(ctx)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if got.LastID != 2 || len(got.Tasks) != 0 {
		t.Fatalf("collection=%+v, want LastID 2 and no tasks", got)
	}
}

func TestSQLiteStore_Load_CorruptFile(t *testing.T) {
	store, path := setupTestDB(t)
	content := strings.Repeat("definitely not a sqlite database\n", 128)
	writeRaw(t, path, content)

	_, err := store.Load(context.Background())
	if !errors.Is(err, apperrors.ErrStorageCorrupt) {
		t.Fatalf("Load err=%v, want ErrStorageCorrupt", err)
	}

	data, _ := os.ReadFile(path)
	if string(data) != content {
		t.Fatalf("corrupt database modified by Load")
	}
}
