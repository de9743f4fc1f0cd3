package validation

import (
	"errors"
	"fmt"
	"strings"
)

const (
	Brightness = "brightness"
	Hue        = "hue"
	Saturation = "saturation"
	ColorTemp  = "color_temp"
)

// Error is returned when a value is rejected before it reaches the device.
type Error struct {
	Field   string
	Message string
}

func (e *Error) Error() string {
	return e.Message
}

var ErrNoComponents = &Error{Message: "At least one of the properties has to be set."}

func ValueInRange(value, lower, upper int, label string) (int, error) {
	if value < lower || value > upper {
		return value, &Error{
			Field:   label,
			Message: fmt.Sprintf("Invalid %s value. %s must be between %d and %d.", label, capitalize(label), lower, upper),
		}
	}

	return value, nil
}

func capitalize(s string) string {
	if s == "" {
		return s
	}

	return strings.ToUpper(s[:1]) + s[1:]
}

func HueValue(value int) (int, error) {
	return ValueInRange(value, 0, 360, "hue")
}

func BrightnessValue(value int) (int, error) {
	return ValueInRange(value, 0, 100, "brightness")
}

func SaturationValue(value int) (int, error) {
	return ValueInRange(value, 0, 100, "saturation")
}

func ColorTempValue(value int) (int, error) {
	return ValueInRange(value, 2500, 6500, "color temperature")
}

// Valid checks value against the range belonging to key. The returned bool is
// false for keys that are not light components, in which case the caller
// should drop the value instead of sending it.
func Valid(key string, value int) (bool, error) {
	var err error

	switch key {
	case Brightness:
		_, err = BrightnessValue(value)
	case Hue:
		_, err = HueValue(value)
	case Saturation:
		_, err = SaturationValue(value)
	case ColorTemp:
		_, err = ColorTempValue(value)
	default:
		return false, nil
	}

	return true, err
}

// IsValidation reports whether err was produced by this package.
func IsValidation(err error) bool {
	var verr *Error
	return errors.As(err, &verr)
}
