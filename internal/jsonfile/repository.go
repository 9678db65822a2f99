package jsonfile

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"

	log "github.com/sirupsen/logrus"

	"github.com/mesh-intelligence/garage/pkg/types"
)

// Compile-time interface check.
var _ types.Repository = (*Repository)(nil)

// Repository keeps the collection in one JSON file.
type Repository struct {
	path   string
	logger log.FieldLogger
}

// NewRepository returns a Repository for the file at path. The file is not
// touched until Load or Save.
func NewRepository(path string, logger log.FieldLogger) *Repository {
	if logger == nil {
		logger = log.StandardLogger()
	}
	return &Repository{path: path, logger: logger.WithField("file", path)}
}

// Path returns the file the repository reads and writes.
func (r *Repository) Path() string { return r.path }

// Load reads and decodes the whole file. Read failures wrap
// types.ErrStorage and the underlying OS error; decode failures wrap
// types.ErrFormat.
func (r *Repository) Load() ([]types.Vehicle, error) {
	data, err := os.ReadFile(r.path)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", types.ErrStorage, err)
	}
	vehicles, err := Decode(data)
	if err != nil {
		return nil, fmt.Errorf("loading %s: %w", r.path, err)
	}
	r.logger.WithField("count", len(vehicles)).Debug("collection decoded")
	return vehicles, nil
}

// Save encodes vehicles and replaces the file atomically.
func (r *Repository) Save(vehicles []types.Vehicle) error {
	data, err := Encode(vehicles)
	if err != nil {
		return err
	}
	if err := writeFileAtomic(r.path, data); err != nil {
		return fmt.Errorf("%w: %w", types.ErrStorage, err)
	}
	r.logger.WithField("count", len(vehicles)).Debug("collection written")
	return nil
}

// defaultFileMode applies when Save creates the file.
const defaultFileMode os.FileMode = 0o644

// writeFileAtomic writes data using the temp-file, fsync, rename pattern so
// readers see either the old file or the new one, never a partial write.
// The replacement keeps the permissions of the file it replaces.
func writeFileAtomic(path string, data []byte) error {
	mode := defaultFileMode
	if info, err := os.Stat(path); err == nil {
		mode = info.Mode().Perm()
	}

	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, ".vehicles-*.tmp")
	if err != nil {
		return fmt.Errorf("creating temp file: %w", err)
	}
	tmpName := tmp.Name()

	if err := tmp.Chmod(mode); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("setting file mode: %w", err)
	}

	w := bufio.NewWriter(tmp)
	if _, err := w.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("writing collection: %w", err)
	}
	if err := w.Flush(); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("flushing buffer: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("syncing temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("closing temp file: %w", err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("renaming temp file: %w", err)
	}
	return nil
}
