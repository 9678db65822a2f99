// Package console implements the line-oriented command loop over a
// collection.Store. Commands, field answers and update confirmations all
// come from one input stack, so a script can answer the prompts of the
// commands it runs.
package console

import (
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/mesh-intelligence/garage/internal/collection"
	"github.com/mesh-intelligence/garage/pkg/types"
)

const noElements = "No elements found"

// Console reads commands from an input stack and applies them to a store.
// It is single-threaded; each command, prompts included, completes before
// the next line is read.
type Console struct {
	store    *collection.Store
	out      io.Writer
	in       *inputStack
	history  *history
	logger   log.FieldLogger
	histSize int
	maxDepth int
}

// Option configures a Console.
type Option func(*Console)

// WithHistorySize sets how many command lines history keeps.
func WithHistorySize(n int) Option {
	return func(c *Console) { c.histSize = n }
}

// WithMaxScriptDepth bounds how many scripts may be nested.
func WithMaxScriptDepth(n int) Option {
	return func(c *Console) { c.maxDepth = n }
}

// WithLogger sets the logger for dispatch and script events.
func WithLogger(l log.FieldLogger) Option {
	return func(c *Console) { c.logger = l }
}

// New returns a Console reading interactive input from in and writing to
// out.
func New(store *collection.Store, in io.Reader, out io.Writer, opts ...Option) *Console {
	c := &Console{
		store:    store,
		out:      out,
		logger:   log.StandardLogger(),
		histSize: types.DefaultHistorySize,
		maxDepth: types.DefaultMaxScriptDepth,
	}
	for _, opt := range opts {
		opt(c)
	}
	c.in = newInputStack(in, c.maxDepth, c.logger)
	c.history = newHistory(c.histSize)
	return c
}

// Run processes commands until exit or the end of interactive input. It
// returns an error only when reading the interactive stream fails.
func (c *Console) Run() error {
	for {
		line, err := c.in.readLine()
		if err != nil {
			return endOfSession(err)
		}
		if strings.TrimSpace(line) == "" {
			continue
		}

		inv, err := ParseLine(line)
		if err != nil {
			c.logger.WithError(err).Debug("command rejected")
			fmt.Fprintln(c.out, describe(err))
			continue
		}

		c.logger.WithField("command", inv.Command.String()).Debug("dispatching command")
		stop, err := c.execute(inv)
		if errors.Is(err, errEndOfInput) || errors.Is(err, errReadInput) {
			return endOfSession(err)
		}
		c.history.record(inv.Raw)
		if err != nil {
			c.logger.WithError(err).WithField("command", inv.Command.String()).Warn("command failed")
			fmt.Fprintln(c.out, describe(err))
		}
		if stop {
			return nil
		}
	}
}

func endOfSession(err error) error {
	if errors.Is(err, errEndOfInput) {
		return nil
	}
	return err
}

// execute runs one parsed command. stop reports whether the session ends.
func (c *Console) execute(inv Invocation) (stop bool, err error) {
	switch inv.Command {
	case CmdHelp:
		c.help()
	case CmdInfo:
		c.info()
	case CmdShow:
		c.list(c.store.Collection())
	case CmdAdd:
		err = c.add()
	case CmdUpdate:
		err = c.update(inv.ID)
	case CmdRemoveByID:
		err = c.removeByID(inv.ID)
	case CmdClear:
		c.store.Clear()
		fmt.Fprintln(c.out, "Collection cleared")
	case CmdSave:
		err = c.save()
	case CmdExecuteScript:
		err = c.in.push(inv.Path)
	case CmdExit:
		return true, nil
	case CmdRemoveGreater:
		err = c.removeRange(c.store.RemoveGreater)
	case CmdRemoveLower:
		err = c.removeRange(c.store.RemoveLower)
	case CmdHistory:
		for _, line := range c.history.lines() {
			fmt.Fprintln(c.out, line)
		}
	case CmdAverageOfEnginePower:
		err = c.average()
	case CmdFilterLessThanFuelType:
		c.list(c.store.FilterLessThanFuelType(inv.FuelType))
	case CmdPrintDescending:
		c.list(c.store.Descending())
	default:
		err = fmt.Errorf("%w %q", ErrUnknownCommand, inv.Command.String())
	}
	return false, err
}

func (c *Console) help() {
	for _, spec := range commands {
		fmt.Fprintf(c.out, "%s : %s\n", spec.usage, spec.help)
	}
}

func (c *Console) info() {
	fmt.Fprintf(c.out, "Type: %T\n", c.store.Collection())
	fmt.Fprintf(c.out, "Initialization date: %s\n", c.store.InitializedAt().Format(time.DateTime))
	fmt.Fprintf(c.out, "Number of elements: %d\n", c.store.Len())
}

func (c *Console) list(vehicles []types.Vehicle) {
	if len(vehicles) == 0 {
		fmt.Fprintln(c.out, noElements)
		return
	}
	for _, v := range vehicles {
		fmt.Fprintln(c.out, v)
	}
}

func (c *Console) add() error {
	d, err := c.readDraft()
	if err != nil {
		return err
	}
	v, err := c.store.Add(d)
	if err != nil {
		return err
	}
	fmt.Fprintf(c.out, "Vehicle %d added\n", v.ID())
	return nil
}

func (c *Console) update(id int) error {
	if _, err := c.store.GetByID(id); err != nil {
		return err
	}
	p, err := c.readPatch()
	if err != nil {
		return err
	}
	if _, err := c.store.Update(id, p); err != nil {
		return err
	}
	fmt.Fprintf(c.out, "Vehicle %d updated\n", id)
	return nil
}

func (c *Console) removeByID(id int) error {
	if err := c.store.RemoveByID(id); err != nil {
		return err
	}
	fmt.Fprintf(c.out, "Vehicle %d removed\n", id)
	return nil
}

// removeRange prompts for a pivot and applies remove, which is
// Store.RemoveGreater or Store.RemoveLower.
func (c *Console) removeRange(remove func(types.Vehicle) int) error {
	d, err := c.readDraft()
	if err != nil {
		return err
	}
	pivot, err := c.store.Pivot(d)
	if err != nil {
		return err
	}
	n := remove(pivot)
	fmt.Fprintf(c.out, "Removed %d vehicle(s)\n", n)
	return nil
}

func (c *Console) save() error {
	if err := c.store.Save(); err != nil {
		return err
	}
	c.logger.WithField("count", c.store.Len()).Info("collection saved")
	fmt.Fprintln(c.out, "Collection saved")
	return nil
}

func (c *Console) average() error {
	avg, err := c.store.AverageEnginePower()
	if err != nil {
		return err
	}
	fmt.Fprintf(c.out, "Average engine power: %s\n", strconv.FormatFloat(avg, 'f', -1, 64))
	return nil
}

// describe turns a command error into the line shown to the user.
func describe(err error) string {
	switch {
	case errors.Is(err, ErrUnknownCommand):
		return fmt.Sprintf("Error: %v, type help to list commands", err)
	case errors.Is(err, types.ErrEmptyCollection):
		return "Collection is empty, there is no average"
	case errors.Is(err, ErrScriptRecursion), errors.Is(err, ErrScriptDepth):
		return fmt.Sprintf("Script refused: %v", err)
	case errors.Is(err, types.ErrStorage):
		return fmt.Sprintf("Storage failure: %v", err)
	default:
		return fmt.Sprintf("Error: %v", err)
	}
}
