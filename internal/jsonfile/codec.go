// Package jsonfile stores the vehicle collection as a single JSON document:
// {"Collection": [ {...}, ... ]}. Decode and Encode convert between that
// document and validated vehicles; Repository adds atomic file persistence.
package jsonfile

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/mesh-intelligence/garage/pkg/types"
)

// Document keys.
const (
	collectionKey   = "Collection"
	keyID           = "Id"
	keyName         = "Name"
	keyCoordinates  = "Coordinates"
	keyX            = "X"
	keyY            = "Y"
	keyCreationDate = "CreationDate"
	keyEnginePower  = "EnginePower"
	keyVehicleType  = "VehicleType"
	keyFuelType     = "FuelType"
)

var errMissingField = errors.New("missing field")

// documentJSON is the encoded shape of the whole file.
type documentJSON struct {
	Collection []vehicleJSON `json:"Collection"`
}

type coordinatesJSON struct {
	X int `json:"X"`
	Y int `json:"Y"`
}

// vehicleJSON mirrors one collection entry. Field order is the order keys
// appear in the file.
type vehicleJSON struct {
	ID           int             `json:"Id"`
	Name         string          `json:"Name"`
	Coordinates  coordinatesJSON `json:"Coordinates"`
	CreationDate string          `json:"CreationDate"`
	EnginePower  int             `json:"EnginePower"`
	VehicleType  string          `json:"VehicleType,omitempty"`
	FuelType     string          `json:"FuelType"`
}

// Encode renders vehicles as an indented document. An empty or nil slice
// yields an empty collection array.
func Encode(vehicles []types.Vehicle) ([]byte, error) {
	doc := documentJSON{Collection: make([]vehicleJSON, 0, len(vehicles))}
	for _, v := range vehicles {
		rec := vehicleJSON{
			ID:   v.ID(),
			Name: v.Name(),
			Coordinates: coordinatesJSON{
				X: v.Coordinates().X(),
				Y: v.Coordinates().Y(),
			},
			CreationDate: v.CreationDate().Format(types.DateLayout),
			EnginePower:  v.EnginePower(),
			FuelType:     string(v.FuelType()),
		}
		if t, ok := v.Type().Get(); ok {
			rec.VehicleType = string(t)
		}
		doc.Collection = append(doc.Collection, rec)
	}

	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encoding collection: %w", err)
	}
	return append(data, '\n'), nil
}

// Decode parses a document into vehicles, preserving entry order. Any
// problem, in any entry, fails the whole decode with an error wrapping
// types.ErrFormat. Unknown keys inside an entry are ignored.
func Decode(data []byte) ([]types.Vehicle, error) {
	var root map[string]json.RawMessage
	if err := json.Unmarshal(data, &root); err != nil {
		return nil, fmt.Errorf("%w: %w", types.ErrFormat, err)
	}
	raw, ok := root[collectionKey]
	if !ok || len(root) != 1 {
		return nil, fmt.Errorf("%w: root must hold exactly one %q key", types.ErrFormat, collectionKey)
	}
	if !isArray(raw) {
		return nil, fmt.Errorf("%w: %q must be an array", types.ErrFormat, collectionKey)
	}

	var entries []json.RawMessage
	if err := json.Unmarshal(raw, &entries); err != nil {
		return nil, fmt.Errorf("%w: %w", types.ErrFormat, err)
	}

	vehicles := make([]types.Vehicle, 0, len(entries))
	seen := make(map[int]bool, len(entries))
	for i, entry := range entries {
		v, err := decodeVehicle(entry)
		if err != nil {
			return nil, fmt.Errorf("%w: entry %d: %w", types.ErrFormat, i, err)
		}
		if seen[v.ID()] {
			return nil, fmt.Errorf("%w: entry %d: duplicate id %d", types.ErrFormat, i, v.ID())
		}
		seen[v.ID()] = true
		vehicles = append(vehicles, v)
	}
	return vehicles, nil
}

func decodeVehicle(entry json.RawMessage) (types.Vehicle, error) {
	obj, err := object(entry)
	if err != nil {
		return types.Vehicle{}, err
	}

	id, err := intField(obj, keyID)
	if err != nil {
		return types.Vehicle{}, err
	}
	name, err := stringField(obj, keyName)
	if err != nil {
		return types.Vehicle{}, err
	}
	coords, err := coordinatesField(obj)
	if err != nil {
		return types.Vehicle{}, err
	}
	dateStr, err := stringField(obj, keyCreationDate)
	if err != nil {
		return types.Vehicle{}, err
	}
	created, err := time.Parse(types.DateLayout, dateStr)
	if err != nil {
		return types.Vehicle{}, fmt.Errorf("%s: %w", keyCreationDate, err)
	}
	power, err := intField(obj, keyEnginePower)
	if err != nil {
		return types.Vehicle{}, err
	}
	vt, err := vehicleTypeField(obj)
	if err != nil {
		return types.Vehicle{}, err
	}
	fuelStr, err := stringField(obj, keyFuelType)
	if err != nil {
		return types.Vehicle{}, err
	}
	fuel, err := types.ParseFuelType(fuelStr)
	if err != nil {
		return types.Vehicle{}, err
	}

	return types.NewVehicle(id, created, types.VehicleDraft{
		Name:        name,
		Coordinates: coords,
		EnginePower: power,
		Type:        vt,
		FuelType:    fuel,
	})
}

func coordinatesField(obj map[string]json.RawMessage) (types.Coordinates, error) {
	raw, ok := obj[keyCoordinates]
	if !ok {
		return types.Coordinates{}, fmt.Errorf("%w %q", errMissingField, keyCoordinates)
	}
	inner, err := object(raw)
	if err != nil {
		return types.Coordinates{}, fmt.Errorf("%s: %w", keyCoordinates, err)
	}
	x, err := intField(inner, keyX)
	if err != nil {
		return types.Coordinates{}, fmt.Errorf("%s: %w", keyCoordinates, err)
	}
	y, err := intField(inner, keyY)
	if err != nil {
		return types.Coordinates{}, fmt.Errorf("%s: %w", keyCoordinates, err)
	}
	return types.NewCoordinates(x, y)
}

// vehicleTypeField treats a missing key or a JSON null as an absent type.
func vehicleTypeField(obj map[string]json.RawMessage) (types.OptionalVehicleType, error) {
	raw, ok := obj[keyVehicleType]
	if !ok || isNull(raw) {
		return types.NoVehicleType, nil
	}
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return types.NoVehicleType, fmt.Errorf("%s: %w", keyVehicleType, err)
	}
	t, err := types.ParseVehicleType(s)
	if err != nil {
		return types.NoVehicleType, err
	}
	return types.SomeVehicleType(t), nil
}

func object(raw json.RawMessage) (map[string]json.RawMessage, error) {
	var obj map[string]json.RawMessage
	if err := json.Unmarshal(raw, &obj); err != nil {
		return nil, err
	}
	if obj == nil {
		return nil, errors.New("expected an object, got null")
	}
	return obj, nil
}

func stringField(obj map[string]json.RawMessage, key string) (string, error) {
	raw, ok := obj[key]
	if !ok {
		return "", fmt.Errorf("%w %q", errMissingField, key)
	}
	var s string
	if isNull(raw) {
		return "", fmt.Errorf("%s: expected a string, got null", key)
	}
	if err := json.Unmarshal(raw, &s); err != nil {
		return "", fmt.Errorf("%s: %w", key, err)
	}
	return s, nil
}

// intField accepts only JSON numbers with an integral value that fits in
// an int.
func intField(obj map[string]json.RawMessage, key string) (int, error) {
	raw, ok := obj[key]
	if !ok {
		return 0, fmt.Errorf("%w %q", errMissingField, key)
	}
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || (trimmed[0] != '-' && (trimmed[0] < '0' || trimmed[0] > '9')) {
		return 0, fmt.Errorf("%s: %w: expected an integer, got %s", key, types.ErrParse, trimmed)
	}
	var n json.Number
	if err := json.Unmarshal(trimmed, &n); err != nil {
		return 0, fmt.Errorf("%s: %w: %w", key, types.ErrParse, err)
	}
	i, err := n.Int64()
	if err != nil || int64(int(i)) != i {
		return 0, fmt.Errorf("%s: %w: %s is not an integer", key, types.ErrParse, n)
	}
	return int(i), nil
}

func isArray(raw json.RawMessage) bool {
	trimmed := bytes.TrimSpace(raw)
	return len(trimmed) > 0 && trimmed[0] == '['
}

func isNull(raw json.RawMessage) bool {
	return bytes.Equal(bytes.TrimSpace(raw), []byte("null"))
}
