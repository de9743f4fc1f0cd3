package validation

import "sort"

// Components maps light component keys (brightness, hue, saturation,
// color_temp) to their requested values.
type Components map[string]int

// Validate returns the recognized components of c. Unknown keys are dropped.
// The first out of range value, in key order, aborts the whole batch.
func (c Components) Validate() (Components, error) {
	if len(c) == 0 {
		return nil, ErrNoComponents
	}

	keys := make([]string, 0, len(c))
	for key := range c {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	valid := make(Components)
	for _, key := range keys {
		ok, err := Valid(key, c[key])
		if err != nil {
			return nil, err
		}

		if ok {
			valid[key] = c[key]
		}
	}

	return valid, nil
}
