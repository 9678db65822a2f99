package types

import (
	"cmp"
	"fmt"
	"strings"
	"time"
)

// DateLayout is the calendar date format used for creation dates.
const DateLayout = time.DateOnly

// VehicleDraft carries the user-editable fields of a vehicle before it has
// an identity. The Collection Store turns a draft into a Vehicle.
type VehicleDraft struct {
	Name        string
	Coordinates Coordinates
	EnginePower int
	Type        OptionalVehicleType
	FuelType    FuelType
}

// Validate checks every field invariant and returns the first violation.
func (d VehicleDraft) Validate() error {
	if err := validateName(d.Name); err != nil {
		return err
	}
	if err := ValidateX(d.Coordinates.x); err != nil {
		return err
	}
	if err := ValidateY(d.Coordinates.y); err != nil {
		return err
	}
	if err := ValidateEnginePower(d.EnginePower); err != nil {
		return err
	}
	if err := d.Type.validate(); err != nil {
		return err
	}
	return validateFuelType(d.FuelType)
}

// Vehicle is a validated vehicle record. The id and creation date are fixed
// at construction; the remaining fields change only through the setters,
// which keep the invariants.
type Vehicle struct {
	id           int
	name         string
	coordinates  Coordinates
	creationDate time.Time
	enginePower  int
	vehicleType  OptionalVehicleType
	fuelType     FuelType
}

// NewVehicle builds a Vehicle with the given identity and creation date.
// The date is truncated to its calendar day. No Vehicle is returned unless
// every invariant holds.
func NewVehicle(id int, created time.Time, d VehicleDraft) (Vehicle, error) {
	if id < 0 {
		return Vehicle{}, fmt.Errorf("%w, got %d", ErrInvalidID, id)
	}
	if created.IsZero() {
		return Vehicle{}, ErrInvalidDate
	}
	if err := d.Validate(); err != nil {
		return Vehicle{}, err
	}
	return Vehicle{
		id:           id,
		name:         d.Name,
		coordinates:  d.Coordinates,
		creationDate: DateOf(created),
		enginePower:  d.EnginePower,
		vehicleType:  d.Type,
		fuelType:     d.FuelType,
	}, nil
}

// DateOf returns midnight UTC of t's calendar day.
func DateOf(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func (v Vehicle) ID() int                   { return v.id }
func (v Vehicle) Name() string              { return v.name }
func (v Vehicle) Coordinates() Coordinates  { return v.coordinates }
func (v Vehicle) CreationDate() time.Time   { return v.creationDate }
func (v Vehicle) EnginePower() int          { return v.enginePower }
func (v Vehicle) Type() OptionalVehicleType { return v.vehicleType }
func (v Vehicle) FuelType() FuelType        { return v.fuelType }

// Draft returns the editable fields of v.
func (v Vehicle) Draft() VehicleDraft {
	return VehicleDraft{
		Name:        v.name,
		Coordinates: v.coordinates,
		EnginePower: v.enginePower,
		Type:        v.vehicleType,
		FuelType:    v.fuelType,
	}
}

// SetName replaces the name. Returns ErrInvalidName for blank input.
func (v *Vehicle) SetName(name string) error {
	if err := validateName(name); err != nil {
		return err
	}
	v.name = name
	return nil
}

// SetCoordinates replaces the coordinates.
func (v *Vehicle) SetCoordinates(c Coordinates) error {
	if _, err := NewCoordinates(c.x, c.y); err != nil {
		return err
	}
	v.coordinates = c
	return nil
}

// SetEnginePower replaces the engine power. Returns ErrInvalidEnginePower
// unless power > 0.
func (v *Vehicle) SetEnginePower(power int) error {
	if err := ValidateEnginePower(power); err != nil {
		return err
	}
	v.enginePower = power
	return nil
}

// SetType replaces the optional vehicle type.
func (v *Vehicle) SetType(t OptionalVehicleType) error {
	if err := t.validate(); err != nil {
		return err
	}
	v.vehicleType = t
	return nil
}

// SetFuelType replaces the fuel type.
func (v *Vehicle) SetFuelType(f FuelType) error {
	if err := validateFuelType(f); err != nil {
		return err
	}
	v.fuelType = f
	return nil
}

// VehiclePatch lists field replacements for an existing vehicle. Nil fields
// are left untouched.
type VehiclePatch struct {
	Name        *string
	Coordinates *Coordinates
	EnginePower *int
	Type        *OptionalVehicleType
	FuelType    *FuelType
}

// IsEmpty reports whether the patch changes nothing.
func (p VehiclePatch) IsEmpty() bool {
	return p.Name == nil && p.Coordinates == nil && p.EnginePower == nil && p.Type == nil && p.FuelType == nil
}

// Apply validates every field of p against a copy of v and commits the
// result only if all of them pass.
func (v *Vehicle) Apply(p VehiclePatch) error {
	next := *v
	if p.Name != nil {
		if err := next.SetName(*p.Name); err != nil {
			return err
		}
	}
	if p.Coordinates != nil {
		if err := next.SetCoordinates(*p.Coordinates); err != nil {
			return err
		}
	}
	if p.EnginePower != nil {
		if err := next.SetEnginePower(*p.EnginePower); err != nil {
			return err
		}
	}
	if p.Type != nil {
		if err := next.SetType(*p.Type); err != nil {
			return err
		}
	}
	if p.FuelType != nil {
		if err := next.SetFuelType(*p.FuelType); err != nil {
			return err
		}
	}
	*v = next
	return nil
}

// Compare orders vehicles by fuel type name descending, then id ascending.
// It returns a negative number when v sorts before o, zero when they are
// equal, and a positive number otherwise.
func (v Vehicle) Compare(o Vehicle) int {
	if c := v.CompareFuelType(o.fuelType); c != 0 {
		return c
	}
	return cmp.Compare(v.id, o.id)
}

// CompareFuelType compares v's fuel type with f using the reversed string
// order of their symbolic names.
func (v Vehicle) CompareFuelType(f FuelType) int {
	return -strings.Compare(string(v.fuelType), string(f))
}

func (v Vehicle) String() string {
	return fmt.Sprintf(
		"Vehicle{id=%d, name=%q, coordinates=%s, creationDate=%s, enginePower=%d, type=%s, fuelType=%s}",
		v.id, v.name, v.coordinates, v.creationDate.Format(DateLayout), v.enginePower, v.vehicleType, v.fuelType,
	)
}

// ValidateEnginePower checks power > 0.
func ValidateEnginePower(power int) error {
	if power <= 0 {
		return fmt.Errorf("%w, got %d", ErrInvalidEnginePower, power)
	}
	return nil
}

// ValidateName checks that name has at least one non-space character.
func ValidateName(name string) error {
	return validateName(name)
}

func validateName(name string) error {
	if strings.TrimSpace(name) == "" {
		return ErrInvalidName
	}
	return nil
}

func validateFuelType(f FuelType) error {
	if !f.IsValid() {
		return fmt.Errorf("%w %q", ErrInvalidFuelType, f)
	}
	return nil
}
