package jsonfile

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mesh-intelligence/garage/pkg/types"
)

func vehicle(t *testing.T, id int, name string, vt types.OptionalVehicleType, fuel types.FuelType) types.Vehicle {
	t.Helper()
	c, err := types.NewCoordinates(id*3-5, id+1)
	require.NoError(t, err)
	v, err := types.NewVehicle(id, time.Date(2023, time.November, 20+id, 0, 0, 0, 0, time.UTC), types.VehicleDraft{
		Name:        name,
		Coordinates: c,
		EnginePower: 50 + id,
		Type:        vt,
		FuelType:    fuel,
	})
	require.NoError(t, err)
	return v
}

func TestEncodeDecodeRoundTrip(t *testing.T) {
	original := []types.Vehicle{
		vehicle(t, 4, "Rocinante", types.SomeVehicleType(types.VehicleSpaceship), types.FuelPlasma),
		vehicle(t, 0, "Bike", types.NoVehicleType, types.FuelManpower),
		vehicle(t, 2, "Ferry \"Nord\"", types.SomeVehicleType(types.VehicleShip), types.FuelGasoline),
	}

	data, err := Encode(original)
	require.NoError(t, err)

	decoded, err := Decode(data)
	require.NoError(t, err)
	assert.Equal(t, original, decoded)
}

func TestEncodeEmptyCollection(t *testing.T) {
	for _, in := range [][]types.Vehicle{nil, {}} {
		data, err := Encode(in)
		require.NoError(t, err)
		assert.JSONEq(t, `{"Collection": []}`, string(data))

		out, err := Decode(data)
		require.NoError(t, err)
		assert.Empty(t, out)
	}
}

func TestEncodeShape(t *testing.T) {
	data, err := Encode([]types.Vehicle{
		vehicle(t, 1, "Cessna", types.SomeVehicleType(types.VehiclePlane), types.FuelKerosene),
		vehicle(t, 2, "Raft", types.NoVehicleType, types.FuelManpower),
	})
	require.NoError(t, err)

	assert.JSONEq(t, `{"Collection": [
		{"Id": 1, "Name": "Cessna", "Coordinates": {"X": -2, "Y": 2},
		 "CreationDate": "2023-11-21", "EnginePower": 51,
		 "VehicleType": "PLANE", "FuelType": "KEROSENE"},
		{"Id": 2, "Name": "Raft", "Coordinates": {"X": 1, "Y": 3},
		 "CreationDate": "2023-11-22", "EnginePower": 52,
		 "FuelType": "MANPOWER"}
	]}`, string(data))

	var generic map[string][]map[string]any
	require.NoError(t, json.Unmarshal(data, &generic))
	_, hasType := generic["Collection"][1]["VehicleType"]
	assert.False(t, hasType, "absent type must be omitted")
}

const validEntry = `{"Id": 7, "Name": "Tug", "Coordinates": {"X": 1, "Y": 2},
	"CreationDate": "2024-01-02", "EnginePower": 9, "VehicleType": "BOAT", "FuelType": "GASOLINE"}`

func TestDecodeAcceptsValidDocuments(t *testing.T) {
	tests := []struct {
		name string
		doc  string
		want func(t *testing.T, vs []types.Vehicle)
	}{
		{
			name: "single entry",
			doc:  `{"Collection": [` + validEntry + `]}`,
			want: func(t *testing.T, vs []types.Vehicle) {
				require.Len(t, vs, 1)
				assert.Equal(t, 7, vs[0].ID())
				assert.Equal(t, "Tug", vs[0].Name())
				assert.Equal(t, types.SomeVehicleType(types.VehicleBoat), vs[0].Type())
				assert.Equal(t, types.FuelGasoline, vs[0].FuelType())
				assert.Equal(t, "2024-01-02", vs[0].CreationDate().Format(types.DateLayout))
			},
		},
		{
			name: "null vehicle type is absent",
			doc: `{"Collection": [{"Id": 1, "Name": "n", "Coordinates": {"X": 0, "Y": 0},
				"CreationDate": "2024-01-02", "EnginePower": 1, "VehicleType": null, "FuelType": "PLASMA"}]}`,
			want: func(t *testing.T, vs []types.Vehicle) {
				require.Len(t, vs, 1)
				assert.False(t, vs[0].Type().IsSet())
			},
		},
		{
			name: "unknown entry keys are ignored",
			doc: `{"Collection": [{"Id": 1, "Name": "n", "Coordinates": {"X": 0, "Y": 0}, "Color": "red",
				"CreationDate": "2024-01-02", "EnginePower": 1, "FuelType": "PLASMA"}]}`,
			want: func(t *testing.T, vs []types.Vehicle) {
				require.Len(t, vs, 1)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			vs, err := Decode([]byte(tt.doc))
			require.NoError(t, err)
			tt.want(t, vs)
		})
	}
}

func TestDecodeRejectsMalformedDocuments(t *testing.T) {
	entry := func(fields string) string {
		return `{"Collection": [` + fields + `]}`
	}

	tests := []struct {
		name string
		doc  string
	}{
		{name: "not json", doc: `Collection: []`},
		{name: "empty input", doc: ``},
		{name: "root is array", doc: `[]`},
		{name: "root is null", doc: `null`},
		{name: "missing collection key", doc: `{"Vehicles": []}`},
		{name: "extra root key", doc: `{"Collection": [], "Version": 2}`},
		{name: "collection not array", doc: `{"Collection": {}}`},
		{name: "collection null", doc: `{"Collection": null}`},
		{name: "entry not object", doc: entry(`42`)},
		{name: "missing id", doc: entry(`{"Name": "n", "Coordinates": {"X": 0, "Y": 0}, "CreationDate": "2024-01-02", "EnginePower": 1, "FuelType": "PLASMA"}`)},
		{name: "missing name", doc: entry(`{"Id": 1, "Coordinates": {"X": 0, "Y": 0}, "CreationDate": "2024-01-02", "EnginePower": 1, "FuelType": "PLASMA"}`)},
		{name: "missing coordinates", doc: entry(`{"Id": 1, "Name": "n", "CreationDate": "2024-01-02", "EnginePower": 1, "FuelType": "PLASMA"}`)},
		{name: "missing y", doc: entry(`{"Id": 1, "Name": "n", "Coordinates": {"X": 0}, "CreationDate": "2024-01-02", "EnginePower": 1, "FuelType": "PLASMA"}`)},
		{name: "missing date", doc: entry(`{"Id": 1, "Name": "n", "Coordinates": {"X": 0, "Y": 0}, "EnginePower": 1, "FuelType": "PLASMA"}`)},
		{name: "missing engine power", doc: entry(`{"Id": 1, "Name": "n", "Coordinates": {"X": 0, "Y": 0}, "CreationDate": "2024-01-02", "FuelType": "PLASMA"}`)},
		{name: "missing fuel type", doc: entry(`{"Id": 1, "Name": "n", "Coordinates": {"X": 0, "Y": 0}, "CreationDate": "2024-01-02", "EnginePower": 1}`)},
		{name: "null name", doc: entry(`{"Id": 1, "Name": null, "Coordinates": {"X": 0, "Y": 0}, "CreationDate": "2024-01-02", "EnginePower": 1, "FuelType": "PLASMA"}`)},
		{name: "id as string", doc: entry(`{"Id": "1", "Name": "n", "Coordinates": {"X": 0, "Y": 0}, "CreationDate": "2024-01-02", "EnginePower": 1, "FuelType": "PLASMA"}`)},
		{name: "id in float notation", doc: entry(`{"Id": 3.0, "Name": "n", "Coordinates": {"X": 0, "Y": 0}, "CreationDate": "2024-01-02", "EnginePower": 1, "FuelType": "PLASMA"}`)},
		{name: "fractional power", doc: entry(`{"Id": 1, "Name": "n", "Coordinates": {"X": 0, "Y": 0}, "CreationDate": "2024-01-02", "EnginePower": 1.5, "FuelType": "PLASMA"}`)},
		{name: "unknown fuel", doc: entry(`{"Id": 1, "Name": "n", "Coordinates": {"X": 0, "Y": 0}, "CreationDate": "2024-01-02", "EnginePower": 1, "FuelType": "COAL"}`)},
		{name: "unknown vehicle type", doc: entry(`{"Id": 1, "Name": "n", "Coordinates": {"X": 0, "Y": 0}, "CreationDate": "2024-01-02", "EnginePower": 1, "VehicleType": "CAR", "FuelType": "PLASMA"}`)},
		{name: "bad date", doc: entry(`{"Id": 1, "Name": "n", "Coordinates": {"X": 0, "Y": 0}, "CreationDate": "02.01.2024", "EnginePower": 1, "FuelType": "PLASMA"}`)},
		{name: "blank name", doc: entry(`{"Id": 1, "Name": "  ", "Coordinates": {"X": 0, "Y": 0}, "CreationDate": "2024-01-02", "EnginePower": 1, "FuelType": "PLASMA"}`)},
		{name: "x out of range", doc: entry(`{"Id": 1, "Name": "n", "Coordinates": {"X": -576, "Y": 0}, "CreationDate": "2024-01-02", "EnginePower": 1, "FuelType": "PLASMA"}`)},
		{name: "zero engine power", doc: entry(`{"Id": 1, "Name": "n", "Coordinates": {"X": 0, "Y": 0}, "CreationDate": "2024-01-02", "EnginePower": 0, "FuelType": "PLASMA"}`)},
		{name: "negative id", doc: entry(`{"Id": -1, "Name": "n", "Coordinates": {"X": 0, "Y": 0}, "CreationDate": "2024-01-02", "EnginePower": 1, "FuelType": "PLASMA"}`)},
		{name: "duplicate id", doc: entry(validEntry + `,` + validEntry)},
		{name: "one bad entry after good ones", doc: entry(validEntry + `, {"Id": 8}`)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			vs, err := Decode([]byte(tt.doc))
			assert.ErrorIs(t, err, types.ErrFormat)
			assert.Nil(t, vs, "no partial collection on failure")
		})
	}
}

func TestDecodeNumericFailuresAreParseErrors(t *testing.T) {
	_, err := Decode([]byte(`{"Collection": [{"Id": "x", "Name": "n", "Coordinates": {"X": 0, "Y": 0},
		"CreationDate": "2024-01-02", "EnginePower": 1, "FuelType": "PLASMA"}]}`))
	assert.ErrorIs(t, err, types.ErrFormat)
	assert.ErrorIs(t, err, types.ErrParse)
}

func TestDecodeRejectsQuotedIntegers(t *testing.T) {
	// Each value parses as an integer once unquoted, yet a string is never
	// read as a number.
	tests := []struct {
		name string
		doc  string
	}{
		{name: "id", doc: `{"Id": "3", "Name": "n", "Coordinates": {"X": 0, "Y": 0}, "CreationDate": "2024-01-02", "EnginePower": 1, "FuelType": "PLASMA"}`},
		{name: "engine power", doc: `{"Id": 3, "Name": "n", "Coordinates": {"X": 0, "Y": 0}, "CreationDate": "2024-01-02", "EnginePower": "5", "FuelType": "PLASMA"}`},
		{name: "x", doc: `{"Id": 3, "Name": "n", "Coordinates": {"X": "1", "Y": 0}, "CreationDate": "2024-01-02", "EnginePower": 1, "FuelType": "PLASMA"}`},
		{name: "y", doc: `{"Id": 3, "Name": "n", "Coordinates": {"X": 0, "Y": "-2"}, "CreationDate": "2024-01-02", "EnginePower": 1, "FuelType": "PLASMA"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			vs, err := Decode([]byte(`{"Collection": [` + tt.doc + `]}`))
			assert.ErrorIs(t, err, types.ErrFormat)
			assert.ErrorIs(t, err, types.ErrParse)
			assert.Nil(t, vs)
		})
	}
}
