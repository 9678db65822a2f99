package cli

import (
	"fmt"
	"os"

	log "github.com/sirupsen/logrus"

	"github.com/mesh-intelligence/garage/internal/jsonfile"
	"github.com/mesh-intelligence/garage/internal/sqlite"
	"github.com/mesh-intelligence/garage/pkg/types"
)

// openRepository returns the repository for backend over an existing data
// file, and a function that releases it.
func openRepository(backend, dataFile string, logger log.FieldLogger) (types.Repository, func() error, error) {
	switch backend {
	case types.BackendJSON:
		return jsonfile.NewRepository(dataFile, logger), nopClose, nil
	case types.BackendSQLite:
		repo, err := sqlite.Open(dataFile, logger)
		if err != nil {
			return nil, nil, err
		}
		return repo, repo.Close, nil
	default:
		return nil, nil, fmt.Errorf("%w %q", types.ErrBackendUnknown, backend)
	}
}

// createCollection writes an empty collection to dataFile unless the file
// already exists. It reports whether a file was created.
func createCollection(backend, dataFile string, logger log.FieldLogger) (bool, error) {
	if fileExists(dataFile) {
		return false, nil
	}
	switch backend {
	case types.BackendJSON:
		if err := jsonfile.NewRepository(dataFile, logger).Save(nil); err != nil {
			return false, err
		}
	case types.BackendSQLite:
		repo, err := sqlite.Create(dataFile, logger)
		if err != nil {
			return false, err
		}
		if err := repo.Close(); err != nil {
			return false, err
		}
	default:
		return false, fmt.Errorf("%w %q", types.ErrBackendUnknown, backend)
	}
	return true, nil
}

func nopClose() error { return nil }

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
