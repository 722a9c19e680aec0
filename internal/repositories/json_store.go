package repository

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	apperrors "task-tracker.com/task-tracker/internal/errors"
	model "task-tracker.com/task-tracker/internal/models"
)

// JSONStore keeps the collection in a single JSON document. Writes go through
// a temp file in the same directory followed by a rename.
type JSONStore struct {
	path string
}

func NewJSONStore(path string) (*JSONStore, error) {
	if strings.TrimSpace(path) == "" {
		return nil, errors.New("store path is required")
	}
	return &JSONStore{path: path}, nil
}

func (s *JSONStore) Path() string {
	return s.path
}

func (s *JSONStore) Load(ctx context.Context) (model.TaskCollection, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return model.TaskCollection{}, nil
		}
		return model.TaskCollection{}, apperrors.Wrap(apperrors.ErrStorageReadFailed, err)
	}

	collection, err := decodeDocument(data)
	if err != nil {
		return model.TaskCollection{}, apperrors.Wrap(apperrors.ErrStorageCorrupt, fmt.Errorf("%s: %w", s.path, err))
	}
	return collection, nil
}

func (s *JSONStore) Save(ctx context.Context, collection model.TaskCollection) error {
	data, err := encodeDocument(collection)
	if err != nil {
		return apperrors.Wrap(apperrors.ErrStorageWriteFailed, err)
	}
	if err := writeFileAtomic(s.path, data, 0o644); err != nil {
		return apperrors.Wrap(apperrors.ErrStorageWriteFailed, fmt.Errorf("%s: %w", s.path, err))
	}
	return nil
}

func writeFileAtomic(path string, data []byte, perm os.FileMode) error {
	dir := filepath.Dir(path)
	base := filepath.Base(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}

	tmpName := filepath.Join(dir, "."+base+"."+uuid.NewString()+".tmp")
	tmp, err := os.OpenFile(tmpName, os.O_WRONLY|os.O_CREATE|os.O_EXCL, perm)
	if err != nil {
		return err
	}
	committed := false
	defer func() {
		_ = tmp.Close()
		if !committed {
			_ = os.Remove(tmpName)
		}
	}()

	if _, err := io.Copy(tmp, bytes.NewReader(data)); err != nil {
		return err
	}
	if err := tmp.Chmod(perm); err != nil {
		return err
	}
	if err := tmp.Sync(); err != nil {
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	if err := os.Rename(tmpName, path); err != nil {
		return err
	}
	committed = true
	return syncDir(dir)
}

func syncDir(dir string) error {
	f, err := os.Open(dir)
	if err != nil {
		return err
	}
	defer f.Close()
	return f.Sync()
}
