package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseFuelType(t *testing.T) {
	for _, f := range FuelTypes {
		got, err := ParseFuelType(string(f))
		require.NoError(t, err)
		assert.Equal(t, f, got)
	}

	for _, bad := range []string{"", "gasoline", "DIESEL", " PLASMA"} {
		_, err := ParseFuelType(bad)
		assert.ErrorIs(t, err, ErrInvalidFuelType, "input %q", bad)
	}
}

func TestParseVehicleType(t *testing.T) {
	for _, vt := range VehicleTypes {
		got, err := ParseVehicleType(string(vt))
		require.NoError(t, err)
		assert.Equal(t, vt, got)
	}

	_, err := ParseVehicleType("CAR")
	assert.ErrorIs(t, err, ErrInvalidVehicleType)
}

func TestParseOptionalVehicleType(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    OptionalVehicleType
		wantErr error
	}{
		{name: "empty is absent", input: "", want: NoVehicleType},
		{name: "whitespace is absent", input: "   ", want: NoVehicleType},
		{name: "known name", input: "SHIP", want: SomeVehicleType(VehicleShip)},
		{name: "unknown name", input: "ship", wantErr: ErrInvalidVehicleType},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseOptionalVehicleType(tt.input)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestOptionalVehicleType(t *testing.T) {
	_, ok := NoVehicleType.Get()
	assert.False(t, ok)
	assert.False(t, OptionalVehicleType{}.IsSet())
	assert.Equal(t, "none", NoVehicleType.String())

	some := SomeVehicleType(VehicleBoat)
	got, ok := some.Get()
	assert.True(t, ok)
	assert.Equal(t, VehicleBoat, got)
	assert.Equal(t, "BOAT", some.String())
}

func TestTypeNames(t *testing.T) {
	assert.Equal(t, "GASOLINE, KEROSENE, MANPOWER, PLASMA", FuelTypeNames(", "))
	assert.Equal(t, "PLANE|BOAT|SHIP|BICYCLE|SPACESHIP", VehicleTypeNames("|"))
}
