package device

import (
	"bytes"
	"encoding/base64"
	"encoding/json"
	"fmt"
)

// DeviceInfo is the response to get_device_info. The device reports many more
// fields than the accessors below cover, all of them are kept as received.
type DeviceInfo map[string]any

// EnergyUsage is the response to get_energy_usage.
type EnergyUsage map[string]any

func decodeObject(raw json.RawMessage) (map[string]any, error) {
	d := json.NewDecoder(bytes.NewReader(raw))
	d.UseNumber()

	var obj map[string]any
	if err := d.Decode(&obj); err != nil {
		return nil, err
	}

	if obj == nil {
		obj = make(map[string]any)
	}

	return obj, nil
}

// The device reports ssid and nickname base64 encoded.
var encodedFields = []string{"ssid", "nickname"}

func (i DeviceInfo) decode() error {
	for _, key := range encodedFields {
		s, ok := i[key].(string)
		if !ok {
			continue
		}

		b, err := base64.StdEncoding.DecodeString(s)
		if err != nil {
			return fmt.Errorf("decode %s: %w", key, err)
		}

		i[key] = string(b)
	}

	return nil
}

func (i DeviceInfo) str(key string) string {
	s, _ := i[key].(string)
	return s
}

func (i DeviceInfo) SSID() string {
	return i.str("ssid")
}

func (i DeviceInfo) Nickname() string {
	return i.str("nickname")
}

func (i DeviceInfo) Model() string {
	return i.str("model")
}

func (i DeviceInfo) DeviceID() string {
	return i.str("device_id")
}

func (i DeviceInfo) DeviceOn() bool {
	on, _ := i["device_on"].(bool)
	return on
}

// Brightness returns the reported brightness, or -1 for devices without one.
func (i DeviceInfo) Brightness() int {
	switch v := i["brightness"].(type) {
	case json.Number:
		n, err := v.Int64()
		if err != nil {
			return -1
		}
		return int(n)
	case int:
		return v
	case float64:
		return int(v)
	}

	return -1
}
