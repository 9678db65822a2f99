package types

// Repository persists the whole collection at once. Load returns the stored
// vehicles in their stored order, or an error wrapping ErrFormat or
// ErrStorage; it never returns a partial collection. Save replaces the
// stored collection entirely.
type Repository interface {
	Load() ([]Vehicle, error)
	Save(vehicles []Vehicle) error
}
