package colour

import (
	"errors"
	"fmt"
	"image/color"
	"math"
	"strconv"
	"strings"

	"golang.org/x/image/colornames"

	"tapo/validation"
)

var ErrUnknownColour = errors.New("unknown colour")

// Whites are only reachable through the colour temperature of a bulb.
var presets = map[string]validation.Components{
	"white":         {validation.ColorTemp: 4500},
	"daylightwhite": {validation.ColorTemp: 5500},
	"warmwhite":     {validation.ColorTemp: 2700},
	"coolwhite":     {validation.ColorTemp: 6500},
}

// Table resolves colour names to light components. Besides the named whites
// it understands every CSS colour name and #rrggbb hex strings.
type Table struct{}

func (Table) Resolve(name string) (validation.Components, error) {
	key := strings.ReplaceAll(strings.ToLower(strings.TrimSpace(name)), " ", "")

	if c, ok := presets[key]; ok {
		return clone(c), nil
	}

	if strings.HasPrefix(key, "#") {
		rgb, err := parseHex(key)
		if err != nil {
			return nil, err
		}

		return FromRGB(rgb), nil
	}

	if rgb, ok := colornames.Map[key]; ok {
		return FromRGB(rgb), nil
	}

	return nil, fmt.Errorf("%w '%s'", ErrUnknownColour, name)
}

func clone(c validation.Components) validation.Components {
	out := make(validation.Components, len(c))
	for k, v := range c {
		out[k] = v
	}

	return out
}

func parseHex(s string) (color.RGBA, error) {
	hex := strings.TrimPrefix(s, "#")
	if len(hex) != 6 {
		return color.RGBA{}, fmt.Errorf("%w '%s': expected #rrggbb", ErrUnknownColour, s)
	}

	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return color.RGBA{}, fmt.Errorf("%w '%s': %s", ErrUnknownColour, s, err)
	}

	return color.RGBA{R: uint8(v >> 16), G: uint8(v >> 8), B: uint8(v), A: 0xff}, nil
}

// FromRGB converts an 8-bit colour into hue, saturation and brightness.
func FromRGB(c color.RGBA) validation.Components {
	r := float64(c.R) / 255
	g := float64(c.G) / 255
	b := float64(c.B) / 255

	max := math.Max(r, math.Max(g, b))
	min := math.Min(r, math.Min(g, b))
	delta := max - min

	var h float64
	switch {
	case delta == 0:
		h = 0
	case max == r:
		h = 60 * math.Mod((g-b)/delta, 6)
	case max == g:
		h = 60 * ((b-r)/delta + 2)
	default:
		h = 60 * ((r-g)/delta + 4)
	}
	if h < 0 {
		h += 360
	}

	var s float64
	if max > 0 {
		s = delta / max
	}

	return validation.Components{
		validation.Hue:        int(math.Round(h)),
		validation.Saturation: int(math.Round(s * 100)),
		validation.Brightness: int(math.Round(max * 100)),
	}
}
