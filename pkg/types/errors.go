package types

import (
	"errors"
	"fmt"
)

// Error kinds. Each field-level error below wraps one of these so callers can
// test either the precise cause or the general kind with errors.Is.
var (
	ErrValidation      = errors.New("validation failed")
	ErrNotFound        = errors.New("vehicle not found")
	ErrFormat          = errors.New("malformed collection document")
	ErrStorage         = errors.New("collection storage failure")
	ErrParse           = errors.New("cannot parse value")
	ErrEmptyCollection = errors.New("collection is empty")
)

// Field validation errors.
var (
	ErrInvalidID          = fmt.Errorf("%w: id must not be negative", ErrValidation)
	ErrInvalidName        = fmt.Errorf("%w: name must not be blank", ErrValidation)
	ErrInvalidCoordinateX = fmt.Errorf("%w: x must be greater than %d", ErrValidation, MinCoordinateX)
	ErrInvalidCoordinateY = fmt.Errorf("%w: y must be greater than %d", ErrValidation, MinCoordinateY)
	ErrInvalidEnginePower = fmt.Errorf("%w: engine power must be greater than 0", ErrValidation)
	ErrInvalidFuelType    = fmt.Errorf("%w: unknown fuel type", ErrValidation)
	ErrInvalidVehicleType = fmt.Errorf("%w: unknown vehicle type", ErrValidation)
	ErrInvalidDate        = fmt.Errorf("%w: creation date must be set", ErrValidation)
)

// Config validation errors.
var (
	ErrBackendEmpty       = errors.New("backend must not be empty")
	ErrBackendUnknown     = errors.New("unknown backend")
	ErrDataFileEmpty      = errors.New("data file must not be empty")
	ErrHistorySizeInvalid = errors.New("history size must be positive")
	ErrScriptDepthInvalid = errors.New("max script depth must be positive")
)
