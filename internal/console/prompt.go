package console

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/mesh-intelligence/garage/pkg/types"
)

// promptField prints prompt and reads answers until accept returns an
// empty complaint. Each complaint is printed before the prompt is repeated.
func (c *Console) promptField(prompt string, accept func(answer string) (complaint string)) error {
	for {
		fmt.Fprintln(c.out, prompt)
		answer, err := c.in.readLine()
		if err != nil {
			return err
		}
		complaint := accept(answer)
		if complaint == "" {
			return nil
		}
		fmt.Fprintln(c.out, complaint)
	}
}

func (c *Console) readName() (string, error) {
	var name string
	err := c.promptField("Enter name:", func(answer string) string {
		if types.ValidateName(answer) != nil {
			return "Name must not be blank, try again"
		}
		name = answer
		return ""
	})
	return name, err
}

// readBoundedInt reads an integer that validate accepts.
func (c *Console) readBoundedInt(prompt, label, bound string, validate func(int) error) (int, error) {
	var n int
	err := c.promptField(prompt, func(answer string) string {
		v, err := strconv.Atoi(strings.TrimSpace(answer))
		if err != nil {
			return fmt.Sprintf("%s must be an integer, try again", label)
		}
		if validate(v) != nil {
			return fmt.Sprintf("%s must be %s, try again", label, bound)
		}
		n = v
		return ""
	})
	return n, err
}

func (c *Console) readCoordinates() (types.Coordinates, error) {
	xBound := fmt.Sprintf("greater than %d", types.MinCoordinateX)
	x, err := c.readBoundedInt("Enter coordinate X ("+xBound+"):", "X", xBound, types.ValidateX)
	if err != nil {
		return types.Coordinates{}, err
	}
	yBound := fmt.Sprintf("greater than %d", types.MinCoordinateY)
	y, err := c.readBoundedInt("Enter coordinate Y ("+yBound+"):", "Y", yBound, types.ValidateY)
	if err != nil {
		return types.Coordinates{}, err
	}
	return types.NewCoordinates(x, y)
}

func (c *Console) readEnginePower() (int, error) {
	return c.readBoundedInt("Enter engine power (greater than 0):", "Engine power", "greater than 0", types.ValidateEnginePower)
}

func (c *Console) readVehicleType() (types.OptionalVehicleType, error) {
	prompt := "Enter vehicle type (optional, leave blank for none):\nOptions: " + types.VehicleTypeNames(", ")
	var vt types.OptionalVehicleType
	err := c.promptField(prompt, func(answer string) string {
		parsed, err := types.ParseOptionalVehicleType(strings.TrimSpace(answer))
		if err != nil {
			return fmt.Sprintf("Unknown vehicle type %q, try again", strings.TrimSpace(answer))
		}
		vt = parsed
		return ""
	})
	return vt, err
}

func (c *Console) readFuelType() (types.FuelType, error) {
	prompt := "Enter fuel type:\nOptions: " + types.FuelTypeNames(", ")
	var f types.FuelType
	err := c.promptField(prompt, func(answer string) string {
		parsed, err := types.ParseFuelType(strings.TrimSpace(answer))
		if err != nil {
			return fmt.Sprintf("Unknown fuel type %q, try again", strings.TrimSpace(answer))
		}
		f = parsed
		return ""
	})
	return f, err
}

// readDraft collects every editable field in the fixed order name,
// coordinates, engine power, type, fuel type.
func (c *Console) readDraft() (types.VehicleDraft, error) {
	var (
		d   types.VehicleDraft
		err error
	)
	if d.Name, err = c.readName(); err != nil {
		return d, err
	}
	if d.Coordinates, err = c.readCoordinates(); err != nil {
		return d, err
	}
	if d.EnginePower, err = c.readEnginePower(); err != nil {
		return d, err
	}
	if d.Type, err = c.readVehicleType(); err != nil {
		return d, err
	}
	if d.FuelType, err = c.readFuelType(); err != nil {
		return d, err
	}
	return d, nil
}

// confirm asks a yes/no question until it gets one of the two answers.
func (c *Console) confirm(question string) (bool, error) {
	var yes bool
	err := c.promptField(question+" (yes/no)", func(answer string) string {
		switch strings.TrimSpace(answer) {
		case "yes":
			yes = true
			return ""
		case "no":
			return ""
		default:
			return "Please answer yes or no"
		}
	})
	return yes, err
}

// patchField is one step of the update dialogue.
type patchField struct {
	label string
	read  func(c *Console, p *types.VehiclePatch) error
}

var patchFields = []patchField{
	{"name", func(c *Console, p *types.VehiclePatch) error {
		v, err := c.readName()
		p.Name = &v
		return err
	}},
	{"coordinates", func(c *Console, p *types.VehiclePatch) error {
		v, err := c.readCoordinates()
		p.Coordinates = &v
		return err
	}},
	{"engine power", func(c *Console, p *types.VehiclePatch) error {
		v, err := c.readEnginePower()
		p.EnginePower = &v
		return err
	}},
	{"vehicle type", func(c *Console, p *types.VehiclePatch) error {
		v, err := c.readVehicleType()
		p.Type = &v
		return err
	}},
	{"fuel type", func(c *Console, p *types.VehiclePatch) error {
		v, err := c.readFuelType()
		p.FuelType = &v
		return err
	}},
}

// readPatch walks every field in order, asking whether to change it.
func (c *Console) readPatch() (types.VehiclePatch, error) {
	var p types.VehiclePatch
	for _, f := range patchFields {
		change, err := c.confirm("Change " + f.label + "?")
		if err != nil {
			return p, err
		}
		if !change {
			continue
		}
		if err := f.read(c, &p); err != nil {
			return p, err
		}
	}
	return p, nil
}
