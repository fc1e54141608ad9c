package storage

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"go.uber.org/zap"

	"github.com/iliyamo/cinereserve/internal/model"
)

// File stores the snapshot as indented JSON on the local filesystem.
type File struct {
	path string
	log  *zap.Logger
}

// NewFile returns a provider for the snapshot at path. The parent directory
// is created on first save.
func NewFile(path string, log *zap.Logger) *File {
	if log == nil {
		log = zap.NewNop()
	}
	return &File{path: path, log: log}
}

// Path returns the snapshot location.
func (f *File) Path() string { return f.path }

// Load reads the snapshot. A missing file is ErrNotExist; any other read or
// decode failure is ErrCorrupt.
func (f *File) Load(ctx context.Context) (model.Snapshot, error) {
	data, err := os.ReadFile(f.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return model.Snapshot{}, ErrNotExist
		}
		return model.Snapshot{}, fmt.Errorf("%w: read %s: %v", ErrCorrupt, f.path, err)
	}
	return Decode(data)
}

// Save writes the snapshot to a temporary file next to the target and
// renames it into place.
func (f *File) Save(ctx context.Context, snap model.Snapshot) error {
	data, err := Encode(snap)
	if err != nil {
		return fmt.Errorf("encode snapshot: %w", err)
	}
	dir := filepath.Dir(f.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("mkdir %s: %w", dir, err)
	}
	tmp, err := os.CreateTemp(dir, filepath.Base(f.path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	defer os.Remove(tmp.Name())
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("write snapshot: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close snapshot: %w", err)
	}
	if err := os.Rename(tmp.Name(), f.path); err != nil {
		return fmt.Errorf("replace %s: %w", f.path, err)
	}
	f.log.Debug("snapshot saved", zap.String("path", f.path), zap.Int("bytes", len(data)))
	return nil
}
