package sqlite

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"sync"
	"time"

	log "github.com/sirupsen/logrus"
	_ "modernc.org/sqlite"

	"github.com/mesh-intelligence/garage/pkg/types"
)

// Compile-time interface check.
var _ types.Repository = (*Repository)(nil)

// Repository implements types.Repository on top of a SQLite database file.
type Repository struct {
	mu     sync.Mutex
	path   string
	db     *sql.DB
	logger log.FieldLogger
}

// Open attaches to an existing database file and ensures the schema.
// A missing file is a storage error; use Create to make a new one.
func Open(path string, logger log.FieldLogger) (*Repository, error) {
	if _, err := os.Stat(path); err != nil {
		return nil, fmt.Errorf("%w: %w", types.ErrStorage, err)
	}
	return open(path, logger)
}

// Create opens the database at path, creating the file if it does not
// exist, and ensures the schema.
func Create(path string, logger log.FieldLogger) (*Repository, error) {
	return open(path, logger)
}

func open(path string, logger log.FieldLogger) (*Repository, error) {
	if logger == nil {
		logger = log.StandardLogger()
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("%w: opening %s: %w", types.ErrStorage, path, err)
	}
	for _, stmt := range schemaStatements {
		if _, err := db.Exec(stmt); err != nil {
			db.Close()
			return nil, fmt.Errorf("%w: applying schema: %w", types.ErrStorage, err)
		}
	}
	return &Repository{
		path:   path,
		db:     db,
		logger: logger.WithField("database", path),
	}, nil
}

// Path returns the database file.
func (r *Repository) Path() string { return r.path }

// Close releases the database handle. Close is idempotent.
func (r *Repository) Close() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.db == nil {
		return nil
	}
	err := r.db.Close()
	r.db = nil
	return err
}

// Load returns every stored vehicle in saved order. A row that does not
// describe a valid vehicle fails the whole load with types.ErrFormat.
func (r *Repository) Load() ([]types.Vehicle, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.db == nil {
		return nil, fmt.Errorf("%w: repository closed", types.ErrStorage)
	}

	rows, err := r.db.Query(selectVehicles)
	if err != nil {
		return nil, fmt.Errorf("%w: querying vehicles: %w", types.ErrStorage, err)
	}
	defer rows.Close()

	var vehicles []types.Vehicle
	seen := make(map[int]bool)
	for rows.Next() {
		v, err := hydrateVehicle(rows)
		if err != nil {
			return nil, err
		}
		if seen[v.ID()] {
			return nil, fmt.Errorf("%w: duplicate id %d", types.ErrFormat, v.ID())
		}
		seen[v.ID()] = true
		vehicles = append(vehicles, v)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: iterating vehicles: %w", types.ErrStorage, err)
	}

	r.logger.WithField("count", len(vehicles)).Debug("collection loaded")
	return vehicles, nil
}

// Save replaces the stored collection with vehicles inside one
// transaction.
func (r *Repository) Save(vehicles []types.Vehicle) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.db == nil {
		return fmt.Errorf("%w: repository closed", types.ErrStorage)
	}

	tx, err := r.db.Begin()
	if err != nil {
		return fmt.Errorf("%w: beginning save transaction: %w", types.ErrStorage, err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec(deleteVehicles); err != nil {
		return fmt.Errorf("%w: clearing vehicles: %w", types.ErrStorage, err)
	}

	stmt, err := tx.Prepare(insertVehicle)
	if err != nil {
		return fmt.Errorf("%w: preparing insert: %w", types.ErrStorage, err)
	}
	defer stmt.Close()

	for i, v := range vehicles {
		if _, err := stmt.Exec(dehydrateVehicle(i, v)...); err != nil {
			return fmt.Errorf("%w: inserting vehicle %d: %w", types.ErrStorage, v.ID(), err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("%w: committing save: %w", types.ErrStorage, err)
	}

	r.logger.WithField("count", len(vehicles)).Debug("collection written")
	return nil
}

// dehydrateVehicle returns the insert arguments for v at position.
func dehydrateVehicle(position int, v types.Vehicle) []any {
	var vehicleType sql.NullString
	if t, ok := v.Type().Get(); ok {
		vehicleType = sql.NullString{String: string(t), Valid: true}
	}
	return []any{
		position,
		v.ID(),
		v.Name(),
		v.Coordinates().X(),
		v.Coordinates().Y(),
		v.CreationDate().Format(types.DateLayout),
		v.EnginePower(),
		vehicleType,
		string(v.FuelType()),
	}
}

// hydrateVehicle converts the current row into a validated vehicle.
func hydrateVehicle(rows *sql.Rows) (types.Vehicle, error) {
	var (
		id, x, y, power int
		name, date      string
		fuel            string
		vehicleType     sql.NullString
	)
	if err := rows.Scan(&id, &name, &x, &y, &date, &power, &vehicleType, &fuel); err != nil {
		return types.Vehicle{}, fmt.Errorf("%w: scanning vehicle: %w", types.ErrFormat, err)
	}

	v, err := buildVehicle(id, name, x, y, date, power, vehicleType, fuel)
	if err != nil {
		return types.Vehicle{}, fmt.Errorf("%w: vehicle %d: %w", types.ErrFormat, id, err)
	}
	return v, nil
}

func buildVehicle(id int, name string, x, y int, date string, power int, vehicleType sql.NullString, fuel string) (types.Vehicle, error) {
	coords, err := types.NewCoordinates(x, y)
	if err != nil {
		return types.Vehicle{}, err
	}
	created, err := time.Parse(types.DateLayout, date)
	if err != nil {
		return types.Vehicle{}, errors.Join(types.ErrInvalidDate, err)
	}
	vt := types.NoVehicleType
	if vehicleType.Valid {
		t, err := types.ParseVehicleType(vehicleType.String)
		if err != nil {
			return types.Vehicle{}, err
		}
		vt = types.SomeVehicleType(t)
	}
	f, err := types.ParseFuelType(fuel)
	if err != nil {
		return types.Vehicle{}, err
	}
	return types.NewVehicle(id, created, types.VehicleDraft{
		Name:        name,
		Coordinates: coords,
		EnginePower: power,
		Type:        vt,
		FuelType:    f,
	})
}
