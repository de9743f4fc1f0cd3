package automation

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"strings"
	"time"

	paho "github.com/eclipse/paho.mqtt.golang"

	"tapo/device"
	"tapo/validation"
)

const commandTimeout = 10 * time.Second

// Command is the payload accepted on <prefix>/<device>/set. Every field is
// optional, they are applied in the order state, components, colour, effect.
type Command struct {
	State      *string `json:"state,omitempty"`
	Brightness *int    `json:"brightness,omitempty"`
	Hue        *int    `json:"hue,omitempty"`
	Saturation *int    `json:"saturation,omitempty"`
	ColorTemp  *int    `json:"color_temp,omitempty"`
	Colour     string  `json:"colour,omitempty"`
	Effect     string  `json:"effect,omitempty"`
}

func (c Command) components() validation.Components {
	components := make(validation.Components)

	for key, v := range map[string]*int{
		validation.Brightness: c.Brightness,
		validation.Hue:        c.Hue,
		validation.Saturation: c.Saturation,
		validation.ColorTemp:  c.ColorTemp,
	} {
		if v != nil {
			components[key] = *v
		}
	}

	return components
}

func commandTopic(prefix string, name device.InternalName) string {
	return stateTopic(prefix, name) + "/set"
}

func stateTopic(prefix string, name device.InternalName) string {
	if prefix == "" {
		return name.String()
	}

	return prefix + "/" + name.String()
}

func (c Command) on() (bool, error) {
	switch strings.ToUpper(*c.State) {
	case "ON":
		return true, nil
	case "OFF":
		return false, nil
	default:
		return false, fmt.Errorf("invalid state '%s'", *c.State)
	}
}

func apply(ctx context.Context, light device.Light, cmd Command) error {
	if cmd.State != nil {
		on, err := cmd.on()
		if err != nil {
			return err
		}

		if err := light.SetOnOff(ctx, on); err != nil {
			return err
		}
	}

	if components := cmd.components(); len(components) > 0 {
		if err := light.SetLightComponents(ctx, components); err != nil {
			return err
		}
	}

	if cmd.Colour != "" {
		if err := light.SetColour(ctx, cmd.Colour); err != nil {
			return err
		}
	}

	if cmd.Effect != "" {
		if err := light.SetLightingEffectPreset(ctx, cmd.Effect); err != nil {
			return err
		}
	}

	return nil
}

// State is the retained payload published on <prefix>/<device>. It uses the
// same state and brightness fields a Command accepts.
type State struct {
	State      string `json:"state"`
	Brightness *int   `json:"brightness,omitempty"`
	Nickname   string `json:"nickname,omitempty"`
	Model      string `json:"model,omitempty"`
	DeviceID   string `json:"device_id,omitempty"`
	SSID       string `json:"ssid,omitempty"`
}

func newState(info device.DeviceInfo) State {
	s := State{
		State:    "OFF",
		Nickname: info.Nickname(),
		Model:    info.Model(),
		DeviceID: info.DeviceID(),
		SSID:     info.SSID(),
	}

	if info.DeviceOn() {
		s.State = "ON"
	}

	if b := info.Brightness(); b >= 0 {
		s.Brightness = &b
	}

	return s
}

func statePayload(ctx context.Context, light device.Light) ([]byte, error) {
	info, err := light.GetDeviceInfo(ctx)
	if err != nil {
		return nil, err
	}

	return json.Marshal(newState(info))
}

func bridgeAutomation(client paho.Client, prefix string, devices map[device.InternalName]device.Basic, timers *autoOff) {
	for name, light := range device.GetDevices[device.Light](devices) {
		name, light := name, light

		on(client, commandTopic(prefix, name), func(cmd Command) {
			ctx, cancel := context.WithTimeout(context.Background(), commandTimeout)
			defer cancel()

			if err := apply(ctx, light, cmd); err != nil {
				log.Printf("Failed to apply command to %s: %s\n", name, err)
				return
			}

			if cmd.State != nil {
				on, _ := cmd.on()
				timers.update(name, on)
			}

			payload, err := statePayload(ctx, light)
			if err != nil {
				log.Printf("Failed to get state of %s: %s\n", name, err)
				return
			}

			if token := client.Publish(stateTopic(prefix, name), 1, true, payload); token.Wait() && token.Error() != nil {
				log.Println(token.Error())
			}
		})

		log.Printf("Listening for commands for %s in %s (%s)\n", name.Name(), name.Room(), commandTopic(prefix, name))
	}
}
