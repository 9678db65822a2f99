package types

import "fmt"

// Exclusive lower bounds for coordinates.
const (
	MinCoordinateX = -576
	MinCoordinateY = -286
)

// Coordinates is an immutable point. Construct it with NewCoordinates.
type Coordinates struct {
	x int
	y int
}

// NewCoordinates validates x > MinCoordinateX and y > MinCoordinateY.
// Returns ErrInvalidCoordinateX or ErrInvalidCoordinateY otherwise.
func NewCoordinates(x, y int) (Coordinates, error) {
	if err := ValidateX(x); err != nil {
		return Coordinates{}, err
	}
	if err := ValidateY(y); err != nil {
		return Coordinates{}, err
	}
	return Coordinates{x: x, y: y}, nil
}

// ValidateX checks the bound for a single x value.
func ValidateX(x int) error {
	if x <= MinCoordinateX {
		return fmt.Errorf("%w, got %d", ErrInvalidCoordinateX, x)
	}
	return nil
}

// ValidateY checks the bound for a single y value.
func ValidateY(y int) error {
	if y <= MinCoordinateY {
		return fmt.Errorf("%w, got %d", ErrInvalidCoordinateY, y)
	}
	return nil
}

func (c Coordinates) X() int { return c.x }
func (c Coordinates) Y() int { return c.y }

func (c Coordinates) String() string {
	return fmt.Sprintf("(%d, %d)", c.x, c.y)
}
