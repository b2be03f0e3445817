package submission

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	apperrors "github.com/akeren/bizguard-leads/pkg/errors"
)

// fileRepository keeps one JSON array file per category. Every append
// rewrites the whole file, so writes to a category are serialised and the
// new content is swapped in with a rename.
type fileRepository struct {
	dir   string
	locks map[Category]*sync.Mutex
}

func NewFileRepository(dir string) SubmissionRepository {
	locks := make(map[Category]*sync.Mutex, len(Categories))
	for _, category := range Categories {
		locks[category] = &sync.Mutex{}
	}

	return &fileRepository{dir: dir, locks: locks}
}

func (r *fileRepository) path(category Category) string {
	return filepath.Join(r.dir, category.FileName())
}

func (r *fileRepository) lock(category Category) (*sync.Mutex, error) {
	mu, ok := r.locks[category]
	if !ok {
		return nil, apperrors.NewInvalidRequestError(fmt.Sprintf("unknown submission category %q", category), nil)
	}
	return mu, nil
}

func (r *fileRepository) Append(ctx context.Context, category Category, record Record) error {
	mu, err := r.lock(category)
	if err != nil {
		return err
	}

	mu.Lock()
	defer mu.Unlock()

	if err := ctx.Err(); err != nil {
		return apperrors.NewStorageError("submission cancelled before write", err)
	}

	if err := os.MkdirAll(r.dir, 0o755); err != nil {
		return apperrors.NewStorageError("unable to create data directory", err)
	}

	records, err := r.read(category)
	if err != nil {
		return err
	}

	records = append(records, record)

	data, err := json.MarshalIndent(records, "", "  ")
	if err != nil {
		return apperrors.NewStorageError("unable to encode submission log", err)
	}

	if err := writeFileAtomic(r.path(category), data); err != nil {
		return apperrors.NewStorageError("unable to write submission log", err)
	}

	return nil
}

func (r *fileRepository) List(ctx context.Context, category Category) ([]Record, error) {
	mu, err := r.lock(category)
	if err != nil {
		return nil, err
	}

	mu.Lock()
	defer mu.Unlock()

	return r.read(category)
}

func (r *fileRepository) Count(ctx context.Context, category Category) (int64, error) {
	records, err := r.List(ctx, category)
	if err != nil {
		return 0, err
	}
	return int64(len(records)), nil
}

// Ping succeeds when the data directory exists or can still be created.
func (r *fileRepository) Ping(ctx context.Context) error {
	info, err := os.Stat(r.dir)
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	if err != nil {
		return apperrors.NewStorageError("data directory is not accessible", err)
	}
	if !info.IsDir() {
		return apperrors.NewStorageError(fmt.Sprintf("data path %s is not a directory", r.dir), nil)
	}
	return nil
}

// read must be called with the category lock held.
func (r *fileRepository) read(category Category) ([]Record, error) {
	data, err := os.ReadFile(r.path(category))
	if errors.Is(err, fs.ErrNotExist) {
		return []Record{}, nil
	}
	if err != nil {
		return nil, apperrors.NewStorageError("unable to read submission log", err)
	}

	records, err := decodeRecords(data)
	if err != nil {
		return nil, apperrors.NewStorageError("submission log is corrupted", err)
	}

	return records, nil
}

func writeFileAtomic(path string, data []byte) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), filepath.Base(path)+".*.tmp")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()

	cleanup := func() {
		_ = os.Remove(tmpName)
	}

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		cleanup()
		return err
	}

	if err := tmp.Sync(); err != nil {
		_ = tmp.Close()
		cleanup()
		return err
	}

	if err := tmp.Close(); err != nil {
		cleanup()
		return err
	}

	if err := os.Chmod(tmpName, 0o644); err != nil {
		cleanup()
		return err
	}

	if err := os.Rename(tmpName, path); err != nil {
		cleanup()
		return err
	}

	return nil
}
