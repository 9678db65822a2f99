package types

import (
	"fmt"
	"strings"
)

// FuelType is the symbolic name of a vehicle's fuel.
type FuelType string

const (
	FuelGasoline FuelType = "GASOLINE"
	FuelKerosene FuelType = "KEROSENE"
	FuelManpower FuelType = "MANPOWER"
	FuelPlasma   FuelType = "PLASMA"
)

// FuelTypes lists every fuel type in declaration order.
var FuelTypes = []FuelType{FuelGasoline, FuelKerosene, FuelManpower, FuelPlasma}

// ParseFuelType returns the FuelType whose symbolic name is s. The match is
// exact; "gasoline" is not accepted.
func ParseFuelType(s string) (FuelType, error) {
	f := FuelType(s)
	if !f.IsValid() {
		return "", fmt.Errorf("%w %q", ErrInvalidFuelType, s)
	}
	return f, nil
}

// IsValid reports whether f is one of the declared fuel types.
func (f FuelType) IsValid() bool {
	switch f {
	case FuelGasoline, FuelKerosene, FuelManpower, FuelPlasma:
		return true
	default:
		return false
	}
}

func (f FuelType) String() string { return string(f) }

// FuelTypeNames returns the symbolic names joined by sep.
func FuelTypeNames(sep string) string {
	names := make([]string, len(FuelTypes))
	for i, f := range FuelTypes {
		names[i] = string(f)
	}
	return strings.Join(names, sep)
}
