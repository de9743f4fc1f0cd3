package device

import (
	"context"
	"errors"
	"fmt"

	"tapo/effect"
	"tapo/validation"
)

var (
	ErrNotFound     = errors.New("not found")
	ErrNotSupported = errors.New("not supported")
)

type Basic interface {
	GetID() InternalName
}

type OnOff interface {
	SetOnOff(ctx context.Context, on bool) error
	GetOnOff(ctx context.Context) (bool, error)
}

// Light is implemented by devices that understand the light component and
// lighting effect commands.
type Light interface {
	Basic
	OnOff

	SetLightComponents(ctx context.Context, components validation.Components) error
	SetColour(ctx context.Context, name string) error
	SetLightingEffect(ctx context.Context, e *effect.LightEffect) error
	SetLightingEffectPreset(ctx context.Context, name string) error
	GetDeviceInfo(ctx context.Context) (DeviceInfo, error)
}

// EnergyMeter is implemented by plugs that measure their consumption.
type EnergyMeter interface {
	GetEnergyUsage(ctx context.Context) (EnergyUsage, error)
}

func GetDevices[K any](devices map[InternalName]Basic) map[InternalName]K {
	devs := make(map[InternalName]K)

	for name, device := range devices {
		if dev, ok := device.(K); ok {
			devs[name] = dev
		}
	}

	return devs
}

func GetDevice[K any](devices map[InternalName]Basic, name InternalName) (K, error) {
	d, ok := devices[name]
	if !ok {
		var noop K
		return noop, fmt.Errorf("%w: device '%s' does not exist", ErrNotFound, name)
	}

	dev, ok := d.(K)
	if !ok {
		var noop K
		return noop, fmt.Errorf("%w: device '%s' is not the expected type", ErrNotSupported, name)
	}

	return dev, nil
}
