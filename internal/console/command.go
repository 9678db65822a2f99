package console

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/mesh-intelligence/garage/pkg/types"
)

// Command identifies one console command.
type Command int

const (
	CmdHelp Command = iota
	CmdInfo
	CmdShow
	CmdAdd
	CmdUpdate
	CmdRemoveByID
	CmdClear
	CmdSave
	CmdExecuteScript
	CmdExit
	CmdRemoveGreater
	CmdRemoveLower
	CmdHistory
	CmdAverageOfEnginePower
	CmdFilterLessThanFuelType
	CmdPrintDescending
)

// argKind describes the single argument a command takes, if any.
type argKind int

const (
	argNone argKind = iota
	argID
	argPath
	argFuelType
)

type commandSpec struct {
	name  string
	arg   argKind
	usage string
	help  string
}

// commands is indexed by Command and doubles as the help listing order.
var commands = [...]commandSpec{
	CmdHelp:                   {"help", argNone, "help", "show this list of commands"},
	CmdInfo:                   {"info", argNone, "info", "show the collection kind, initialization date and element count"},
	CmdShow:                   {"show", argNone, "show", "print every vehicle in collection order"},
	CmdAdd:                    {"add", argNone, "add {element}", "add a new vehicle, prompting for each field"},
	CmdUpdate:                 {"update", argID, "update <id> {element}", "change selected fields of the vehicle with the given id"},
	CmdRemoveByID:             {"remove_by_id", argID, "remove_by_id <id>", "remove the vehicle with the given id"},
	CmdClear:                  {"clear", argNone, "clear", "remove every vehicle and restart ids at 0"},
	CmdSave:                   {"save", argNone, "save", "write the collection to the data file"},
	CmdExecuteScript:          {"execute_script", argPath, "execute_script <path>", "run the commands in a file as if they were typed"},
	CmdExit:                   {"exit", argNone, "exit", "end the session without saving"},
	CmdRemoveGreater:          {"remove_greater", argNone, "remove_greater {element}", "remove every vehicle ordered after the given one"},
	CmdRemoveLower:            {"remove_lower", argNone, "remove_lower {element}", "remove every vehicle ordered before the given one"},
	CmdHistory:                {"history", argNone, "history", "print the most recent commands"},
	CmdAverageOfEnginePower:   {"average_of_engine_power", argNone, "average_of_engine_power", "print the mean engine power"},
	CmdFilterLessThanFuelType: {"filter_less_than_fuel_type", argFuelType, "filter_less_than_fuel_type <FUEL_TYPE>", "print vehicles whose fuel type is less than the given one"},
	CmdPrintDescending:        {"print_descending", argNone, "print_descending", "print every vehicle in descending order"},
}

var commandsByName = func() map[string]Command {
	m := make(map[string]Command, len(commands))
	for c, spec := range commands {
		m[spec.name] = Command(c)
	}
	return m
}()

// String returns the command's name as typed.
func (c Command) String() string {
	if c < 0 || int(c) >= len(commands) {
		return fmt.Sprintf("Command(%d)", int(c))
	}
	return commands[c].name
}

// Invocation is a parsed, argument-checked command line.
type Invocation struct {
	Command Command
	// Raw is the line exactly as read.
	Raw      string
	ID       int
	Path     string
	FuelType types.FuelType
}

// ParseLine splits line on whitespace, resolves the command token and
// validates its argument. Unknown tokens fail with ErrUnknownCommand; a
// missing, surplus or malformed argument fails with ErrUsage.
func ParseLine(line string) (Invocation, error) {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return Invocation{}, fmt.Errorf("%w: empty line", ErrUnknownCommand)
	}
	cmd, ok := commandsByName[fields[0]]
	if !ok {
		return Invocation{}, fmt.Errorf("%w %q", ErrUnknownCommand, fields[0])
	}
	spec := commands[cmd]
	inv := Invocation{Command: cmd, Raw: line}

	args := fields[1:]
	if spec.arg == argNone {
		if len(args) != 0 {
			return Invocation{}, fmt.Errorf("%w: %s", ErrUsage, spec.usage)
		}
		return inv, nil
	}
	if len(args) != 1 {
		return Invocation{}, fmt.Errorf("%w: %s", ErrUsage, spec.usage)
	}

	switch spec.arg {
	case argID:
		id, err := strconv.Atoi(args[0])
		if err != nil {
			return Invocation{}, fmt.Errorf("%w: %s: %w: %q is not an id", ErrUsage, spec.usage, types.ErrParse, args[0])
		}
		inv.ID = id
	case argPath:
		inv.Path = args[0]
	case argFuelType:
		f, err := types.ParseFuelType(args[0])
		if err != nil {
			return Invocation{}, fmt.Errorf("%w: %s: %w", ErrUsage, spec.usage, err)
		}
		inv.FuelType = f
	}
	return inv, nil
}
