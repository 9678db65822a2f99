package types

import (
	"fmt"
	"strings"
)

// VehicleType is the symbolic name of a vehicle's kind.
type VehicleType string

const (
	VehiclePlane     VehicleType = "PLANE"
	VehicleBoat      VehicleType = "BOAT"
	VehicleShip      VehicleType = "SHIP"
	VehicleBicycle   VehicleType = "BICYCLE"
	VehicleSpaceship VehicleType = "SPACESHIP"
)

// VehicleTypes lists every vehicle type in declaration order.
var VehicleTypes = []VehicleType{VehiclePlane, VehicleBoat, VehicleShip, VehicleBicycle, VehicleSpaceship}

// ParseVehicleType returns the VehicleType whose symbolic name is s.
func ParseVehicleType(s string) (VehicleType, error) {
	t := VehicleType(s)
	if !t.IsValid() {
		return "", fmt.Errorf("%w %q", ErrInvalidVehicleType, s)
	}
	return t, nil
}

// IsValid reports whether t is one of the declared vehicle types.
func (t VehicleType) IsValid() bool {
	switch t {
	case VehiclePlane, VehicleBoat, VehicleShip, VehicleBicycle, VehicleSpaceship:
		return true
	default:
		return false
	}
}

func (t VehicleType) String() string { return string(t) }

// VehicleTypeNames returns the symbolic names joined by sep.
func VehicleTypeNames(sep string) string {
	names := make([]string, len(VehicleTypes))
	for i, t := range VehicleTypes {
		names[i] = string(t)
	}
	return strings.Join(names, sep)
}

// OptionalVehicleType is a VehicleType that may be absent. The zero value
// is absent.
type OptionalVehicleType struct {
	value VehicleType
	set   bool
}

// NoVehicleType is the absent OptionalVehicleType.
var NoVehicleType = OptionalVehicleType{}

// SomeVehicleType wraps t as a present value.
func SomeVehicleType(t VehicleType) OptionalVehicleType {
	return OptionalVehicleType{value: t, set: true}
}

// Get returns the wrapped type and whether it is present.
func (o OptionalVehicleType) Get() (VehicleType, bool) {
	return o.value, o.set
}

// IsSet reports whether a type is present.
func (o OptionalVehicleType) IsSet() bool { return o.set }

// String returns the symbolic name, or "none" when absent.
func (o OptionalVehicleType) String() string {
	if !o.set {
		return "none"
	}
	return string(o.value)
}

// ParseOptionalVehicleType treats blank input as absent and anything else
// as a symbolic name that must match.
func ParseOptionalVehicleType(s string) (OptionalVehicleType, error) {
	if strings.TrimSpace(s) == "" {
		return NoVehicleType, nil
	}
	t, err := ParseVehicleType(s)
	if err != nil {
		return NoVehicleType, err
	}
	return SomeVehicleType(t), nil
}

func (o OptionalVehicleType) validate() error {
	if o.set && !o.value.IsValid() {
		return fmt.Errorf("%w %q", ErrInvalidVehicleType, o.value)
	}
	return nil
}
