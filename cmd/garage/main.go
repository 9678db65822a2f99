// Package main is the garage binary: an interactive console over a vehicle
// collection stored in a JSON file or a SQLite database.
package main

import "github.com/mesh-intelligence/garage/internal/cli"

func main() {
	cli.Execute()
}
