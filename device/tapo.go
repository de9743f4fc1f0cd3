package device

import (
	"context"
	"encoding/json"
	"log"

	"github.com/kr/pretty"

	"tapo/effect"
	"tapo/validation"
)

const DefaultBrightness = 100
const DefaultColour = "white"

// Request is a single command as understood by the device.
type Request struct {
	Method string `json:"method"`
	Params any    `json:"params,omitempty"`
}

// Protocol sends a request over an authenticated session and returns the
// decrypted result. Device reported errors are returned as errors.
type Protocol interface {
	Send(ctx context.Context, req Request) (json.RawMessage, error)
}

// ColourResolver turns a colour name into light components.
type ColourResolver interface {
	Resolve(name string) (validation.Components, error)
}

// Tapo controls a single plug, bulb or light strip. Every method sends at most
// one request, errors from the protocol are returned unchanged.
type Tapo struct {
	name     InternalName
	protocol Protocol
	colours  ColourResolver
}

func NewTapo(name InternalName, protocol Protocol, colours ColourResolver) *Tapo {
	return &Tapo{name: name, protocol: protocol, colours: colours}
}

// device.Basic
var _ Basic = (*Tapo)(nil)

func (t *Tapo) GetID() InternalName {
	return t.name
}

// device.Light
var _ Light = (*Tapo)(nil)

func (t *Tapo) Send(ctx context.Context, req Request) (json.RawMessage, error) {
	return t.protocol.Send(ctx, req)
}

func (t *Tapo) setDeviceOn(ctx context.Context, on bool) error {
	_, err := t.Send(ctx, Request{
		Method: "set_device_info",
		Params: map[string]any{
			"device_on": on,
		},
	})

	return err
}

func (t *Tapo) TurnOn(ctx context.Context) error {
	return t.setDeviceOn(ctx, true)
}

func (t *Tapo) TurnOff(ctx context.Context) error {
	return t.setDeviceOn(ctx, false)
}

func (t *Tapo) SetOnOff(ctx context.Context, on bool) error {
	return t.setDeviceOn(ctx, on)
}

func (t *Tapo) GetOnOff(ctx context.Context) (bool, error) {
	info, err := t.GetDeviceInfo(ctx)
	if err != nil {
		return false, err
	}

	return info.DeviceOn(), nil
}

// SetLightComponents validates and sends the given components in a single
// request. Keys that are not light components are dropped, a value out of
// range fails the whole call before anything is sent.
func (t *Tapo) SetLightComponents(ctx context.Context, components validation.Components) error {
	params, err := components.Validate()
	if err != nil {
		return err
	}

	for key := range components {
		if _, ok := params[key]; !ok {
			log.Printf("Dropping unknown light component '%s' for %s\n", key, t.name)
		}
	}

	_, err = t.Send(ctx, Request{
		Method: "set_device_info",
		Params: params,
	})

	return err
}

func (t *Tapo) SetBrightness(ctx context.Context, level int) error {
	return t.SetLightComponents(ctx, validation.Components{validation.Brightness: level})
}

func (t *Tapo) SetHue(ctx context.Context, hue int) error {
	return t.SetLightComponents(ctx, validation.Components{validation.Hue: hue})
}

func (t *Tapo) SetSaturation(ctx context.Context, saturation int) error {
	return t.SetLightComponents(ctx, validation.Components{validation.Saturation: saturation})
}

func (t *Tapo) SetColorTemp(ctx context.Context, temp int) error {
	return t.SetLightComponents(ctx, validation.Components{validation.ColorTemp: temp})
}

// SetColour looks up a named colour and applies it. An empty name selects
// DefaultColour.
func (t *Tapo) SetColour(ctx context.Context, name string) error {
	if name == "" {
		name = DefaultColour
	}

	components, err := t.colours.Resolve(name)
	if err != nil {
		return err
	}

	return t.SetLightComponents(ctx, components)
}

func (t *Tapo) SetLightingEffect(ctx context.Context, e *effect.LightEffect) error {
	params := e.Wire()
	log.Printf("Setting %s lighting effect '%s' on %s: %s\n", e.Type(), e.Name(), t.name, pretty.Sprint(params))

	_, err := t.Send(ctx, Request{
		Method: "set_lighting_effect",
		Params: params,
	})

	return err
}

// SetLightingEffectPreset applies one of the built in effects by name, see
// effect.ParsePreset for the accepted spellings.
func (t *Tapo) SetLightingEffectPreset(ctx context.Context, name string) error {
	p, err := effect.ParsePreset(name)
	if err != nil {
		return err
	}

	return t.SetLightingEffect(ctx, effect.From(p))
}

func (t *Tapo) GetDeviceInfo(ctx context.Context) (DeviceInfo, error) {
	raw, err := t.Send(ctx, Request{Method: "get_device_info"})
	if err != nil {
		return nil, err
	}

	obj, err := decodeObject(raw)
	if err != nil {
		return nil, err
	}

	info := DeviceInfo(obj)
	if err := info.decode(); err != nil {
		return nil, err
	}

	return info, nil
}

// device.EnergyMeter
var _ EnergyMeter = (*Tapo)(nil)

func (t *Tapo) GetEnergyUsage(ctx context.Context) (EnergyUsage, error) {
	raw, err := t.Send(ctx, Request{Method: "get_energy_usage"})
	if err != nil {
		return nil, err
	}

	obj, err := decodeObject(raw)
	if err != nil {
		return nil, err
	}

	return EnergyUsage(obj), nil
}
