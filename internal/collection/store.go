// Package collection implements the in-memory vehicle collection: identity
// assignment, lookups, the range removals driven by the canonical ordering,
// and aggregate queries. Persistence is delegated to a types.Repository.
package collection

import (
	"fmt"
	"slices"
	"time"

	"github.com/mesh-intelligence/garage/pkg/types"
)

// Store owns the authoritative, ordered collection of vehicles. It is not
// safe for concurrent use; the console drives it from a single goroutine.
type Store struct {
	vehicles      []types.Vehicle
	nextID        int
	repo          types.Repository
	initializedAt time.Time
	now           func() time.Time
}

// Option configures a Store.
type Option func(*Store)

// WithClock replaces time.Now for creation dates and the initialization
// timestamp.
func WithClock(now func() time.Time) Option {
	return func(s *Store) { s.now = now }
}

// New creates a Store seeded with vehicles, which must have distinct ids.
// The next id is one past the largest seeded id, or 0 when vehicles is
// empty. repo may be nil for a store that is never saved.
func New(repo types.Repository, vehicles []types.Vehicle, opts ...Option) (*Store, error) {
	s := &Store{
		repo: repo,
		now:  time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}

	seen := make(map[int]bool, len(vehicles))
	for _, v := range vehicles {
		if seen[v.ID()] {
			return nil, fmt.Errorf("%w: duplicate id %d", types.ErrFormat, v.ID())
		}
		seen[v.ID()] = true
		s.nextID = max(s.nextID, v.ID()+1)
	}
	s.vehicles = slices.Clone(vehicles)
	s.initializedAt = s.now()
	return s, nil
}

// Open loads the collection from repo and seeds a new Store with it.
func Open(repo types.Repository, opts ...Option) (*Store, error) {
	vehicles, err := repo.Load()
	if err != nil {
		return nil, err
	}
	return New(repo, vehicles, opts...)
}

// InitializedAt returns when the store was constructed.
func (s *Store) InitializedAt() time.Time { return s.initializedAt }

// Len returns the number of vehicles.
func (s *Store) Len() int { return len(s.vehicles) }

// NextID returns the id the next Add will assign.
func (s *Store) NextID() int { return s.nextID }

// Add validates d, assigns it the next id and today's date, and appends it.
func (s *Store) Add(d types.VehicleDraft) (types.Vehicle, error) {
	v, err := types.NewVehicle(s.nextID, s.now(), d)
	if err != nil {
		return types.Vehicle{}, err
	}
	s.nextID++
	s.vehicles = append(s.vehicles, v)
	return v, nil
}

// Pivot builds a vehicle from d carrying the id the next Add would assign,
// without consuming it and without adding the vehicle. It is the reference
// value for RemoveGreater and RemoveLower.
func (s *Store) Pivot(d types.VehicleDraft) (types.Vehicle, error) {
	return types.NewVehicle(s.nextID, s.now(), d)
}

// GetByID returns a copy of the first vehicle with the given id.
// Returns ErrNotFound if there is none.
func (s *Store) GetByID(id int) (types.Vehicle, error) {
	i := s.indexOf(id)
	if i < 0 {
		return types.Vehicle{}, fmt.Errorf("%w: id %d", types.ErrNotFound, id)
	}
	return s.vehicles[i], nil
}

// Update applies p to the vehicle with the given id. Nothing changes unless
// every field in p is valid.
func (s *Store) Update(id int, p types.VehiclePatch) (types.Vehicle, error) {
	i := s.indexOf(id)
	if i < 0 {
		return types.Vehicle{}, fmt.Errorf("%w: id %d", types.ErrNotFound, id)
	}
	if err := s.vehicles[i].Apply(p); err != nil {
		return types.Vehicle{}, err
	}
	return s.vehicles[i], nil
}

// RemoveByID removes the first vehicle with the given id.
// Returns ErrNotFound if there is none.
func (s *Store) RemoveByID(id int) error {
	i := s.indexOf(id)
	if i < 0 {
		return fmt.Errorf("%w: id %d", types.ErrNotFound, id)
	}
	s.vehicles = slices.Delete(s.vehicles, i, i+1)
	return nil
}

// RemoveGreater removes every vehicle that compares strictly greater than
// pivot and returns how many were removed.
func (s *Store) RemoveGreater(pivot types.Vehicle) int {
	return s.removeWhere(func(v types.Vehicle) bool { return v.Compare(pivot) > 0 })
}

// RemoveLower removes every vehicle that compares strictly less than pivot
// and returns how many were removed.
func (s *Store) RemoveLower(pivot types.Vehicle) int {
	return s.removeWhere(func(v types.Vehicle) bool { return v.Compare(pivot) < 0 })
}

// removeWhere selects the ids to drop in one pass and deletes them in a
// second, so the scan never sees a collection it is modifying.
func (s *Store) removeWhere(match func(types.Vehicle) bool) int {
	doomed := make(map[int]bool)
	for _, v := range s.vehicles {
		if match(v) {
			doomed[v.ID()] = true
		}
	}
	if len(doomed) == 0 {
		return 0
	}
	s.vehicles = slices.DeleteFunc(s.vehicles, func(v types.Vehicle) bool { return doomed[v.ID()] })
	return len(doomed)
}

// Clear empties the collection and resets the id counter to 0.
func (s *Store) Clear() {
	s.vehicles = nil
	s.nextID = 0
}

// AverageEnginePower returns the mean engine power.
// Returns ErrEmptyCollection when there are no vehicles.
func (s *Store) AverageEnginePower() (float64, error) {
	if len(s.vehicles) == 0 {
		return 0, types.ErrEmptyCollection
	}
	var sum int64
	for _, v := range s.vehicles {
		sum += int64(v.EnginePower())
	}
	return float64(sum) / float64(len(s.vehicles)), nil
}

// FilterLessThanFuelType returns, in collection order, the vehicles whose
// fuel type compares less than f under Vehicle.CompareFuelType. The result
// is empty, not nil, when nothing matches.
func (s *Store) FilterLessThanFuelType(f types.FuelType) []types.Vehicle {
	out := make([]types.Vehicle, 0)
	for _, v := range s.vehicles {
		if v.CompareFuelType(f) < 0 {
			out = append(out, v)
		}
	}
	return out
}

// Collection returns a copy of the vehicles in collection order. Later
// mutations of the store are not visible through it.
func (s *Store) Collection() []types.Vehicle {
	return slices.Clone(s.vehicles)
}

// Descending returns a copy of the vehicles sorted from greatest to least
// under the canonical ordering.
func (s *Store) Descending() []types.Vehicle {
	out := slices.Clone(s.vehicles)
	slices.SortFunc(out, func(a, b types.Vehicle) int { return b.Compare(a) })
	return out
}

// Save writes the whole collection through the repository.
func (s *Store) Save() error {
	if s.repo == nil {
		return fmt.Errorf("%w: no repository configured", types.ErrStorage)
	}
	return s.repo.Save(s.Collection())
}

func (s *Store) indexOf(id int) int {
	return slices.IndexFunc(s.vehicles, func(v types.Vehicle) bool { return v.ID() == id })
}
