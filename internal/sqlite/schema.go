// Package sqlite keeps the vehicle collection in a single SQLite table. The
// table is a snapshot: Save replaces every row and Load returns them in the
// order they were saved.
package sqlite

// Schema DDL for the vehicles table.
const (
	createVehicles = `CREATE TABLE IF NOT EXISTS vehicles (
    position INTEGER NOT NULL,
    vehicle_id INTEGER PRIMARY KEY,
    name TEXT NOT NULL,
    x INTEGER NOT NULL,
    y INTEGER NOT NULL,
    creation_date TEXT NOT NULL,
    engine_power INTEGER NOT NULL,
    vehicle_type TEXT,
    fuel_type TEXT NOT NULL
);`

	createVehiclesPositionIndex = `CREATE INDEX IF NOT EXISTS idx_vehicles_position ON vehicles(position);`
)

// Statements used by the repository.
const (
	selectVehicles = `SELECT vehicle_id, name, x, y, creation_date, engine_power, vehicle_type, fuel_type
FROM vehicles ORDER BY position`

	deleteVehicles = `DELETE FROM vehicles`

	insertVehicle = `INSERT INTO vehicles
    (position, vehicle_id, name, x, y, creation_date, engine_power, vehicle_type, fuel_type)
VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`
)

// schemaStatements are executed in order when a database is opened.
var schemaStatements = []string{
	createVehicles,
	createVehiclesPositionIndex,
}
