package device

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"tapo/effect"
	"tapo/validation"
)

type MockProtocol struct {
	mock.Mock
}

func (m *MockProtocol) Send(ctx context.Context, req Request) (json.RawMessage, error) {
	args := m.Called(ctx, req)
	raw, _ := args.Get(0).(json.RawMessage)
	return raw, args.Error(1)
}

type MockColours struct {
	mock.Mock
}

func (m *MockColours) Resolve(name string) (validation.Components, error) {
	args := m.Called(name)
	c, _ := args.Get(0).(validation.Components)
	return c, args.Error(1)
}

func newTapo() (*Tapo, *MockProtocol, *MockColours) {
	p := new(MockProtocol)
	c := new(MockColours)
	return NewTapo("living_room/strip", p, c), p, c
}

var okResponse = json.RawMessage(`{}`)

func TestTurnOnOff(t *testing.T) {
	d, p, _ := newTapo()
	p.On("Send", mock.Anything, Request{Method: "set_device_info", Params: map[string]any{"device_on": true}}).Return(okResponse, nil).Once()
	p.On("Send", mock.Anything, Request{Method: "set_device_info", Params: map[string]any{"device_on": false}}).Return(okResponse, nil).Once()

	require.NoError(t, d.TurnOn(context.Background()))
	require.NoError(t, d.TurnOff(context.Background()))

	p.AssertExpectations(t)
}

func TestSetLightComponents(t *testing.T) {
	t.Run("Empty", func(t *testing.T) {
		d, p, _ := newTapo()

		err := d.SetLightComponents(context.Background(), validation.Components{})
		require.EqualError(t, err, "At least one of the properties has to be set.")
		p.AssertNotCalled(t, "Send", mock.Anything, mock.Anything)
	})

	t.Run("Out of range", func(t *testing.T) {
		d, p, _ := newTapo()

		err := d.SetLightComponents(context.Background(), validation.Components{"hue": 1000})
		require.EqualError(t, err, "Invalid hue value. Hue must be between 0 and 360.")
		p.AssertNotCalled(t, "Send", mock.Anything, mock.Anything)
	})

	t.Run("No partial send", func(t *testing.T) {
		d, p, _ := newTapo()

		err := d.SetLightComponents(context.Background(), validation.Components{"brightness": 50, "color_temp": 1000})
		require.EqualError(t, err, "Invalid color temperature value. Color temperature must be between 2500 and 6500.")
		p.AssertNotCalled(t, "Send", mock.Anything, mock.Anything)
	})

	t.Run("Valid", func(t *testing.T) {
		d, p, _ := newTapo()
		p.On("Send", mock.Anything, Request{
			Method: "set_device_info",
			Params: validation.Components{"brightness": 50, "saturation": 70},
		}).Return(okResponse, nil).Once()

		require.NoError(t, d.SetLightComponents(context.Background(), validation.Components{"brightness": 50, "saturation": 70}))
		p.AssertExpectations(t)
	})

	t.Run("Unknown key dropped", func(t *testing.T) {
		d, p, _ := newTapo()
		p.On("Send", mock.Anything, Request{
			Method: "set_device_info",
			Params: validation.Components{},
		}).Return(okResponse, nil).Once()

		require.NoError(t, d.SetLightComponents(context.Background(), validation.Components{"unknownKey": 5}))
		p.AssertExpectations(t)
	})
}

func TestSingleComponentSetters(t *testing.T) {
	for _, tt := range []struct {
		name  string
		key   string
		value int
		set   func(d *Tapo, v int) error
	}{
		{name: "Brightness", key: "brightness", value: 100, set: func(d *Tapo, v int) error { return d.SetBrightness(context.Background(), v) }},
		{name: "Hue", key: "hue", value: 360, set: func(d *Tapo, v int) error { return d.SetHue(context.Background(), v) }},
		{name: "Saturation", key: "saturation", value: 0, set: func(d *Tapo, v int) error { return d.SetSaturation(context.Background(), v) }},
		{name: "ColorTemp", key: "color_temp", value: 6500, set: func(d *Tapo, v int) error { return d.SetColorTemp(context.Background(), v) }},
	} {
		t.Run(tt.name, func(t *testing.T) {
			d, p, _ := newTapo()
			p.On("Send", mock.Anything, Request{
				Method: "set_device_info",
				Params: validation.Components{tt.key: tt.value},
			}).Return(okResponse, nil).Once()

			require.NoError(t, tt.set(d, tt.value))
			require.Error(t, tt.set(d, 100000))
			p.AssertExpectations(t)
		})
	}
}

func TestSetColour(t *testing.T) {
	d, p, c := newTapo()
	c.On("Resolve", "white").Return(validation.Components{"color_temp": 4500}, nil)
	p.On("Send", mock.Anything, Request{
		Method: "set_device_info",
		Params: validation.Components{"color_temp": 4500},
	}).Return(okResponse, nil).Once()

	require.NoError(t, d.SetColour(context.Background(), ""))
	p.AssertExpectations(t)
	c.AssertExpectations(t)
}

func TestSetColourUnknown(t *testing.T) {
	d, p, c := newTapo()
	c.On("Resolve", "mauve-ish").Return(nil, errors.New("unknown colour 'mauve-ish'"))

	require.EqualError(t, d.SetColour(context.Background(), "mauve-ish"), "unknown colour 'mauve-ish'")
	p.AssertNotCalled(t, "Send", mock.Anything, mock.Anything)
}

func TestSetLightingEffectPreset(t *testing.T) {
	d, p, _ := newTapo()

	var sent Request
	p.On("Send", mock.Anything, mock.MatchedBy(func(req Request) bool {
		return req.Method == "set_lighting_effect"
	})).Run(func(args mock.Arguments) {
		sent = args.Get(1).(Request)
	}).Return(okResponse, nil).Once()

	require.NoError(t, d.SetLightingEffectPreset(context.Background(), "raindrop"))
	p.AssertExpectations(t)

	params, isMap := sent.Params.(map[string]any)
	require.True(t, isMap)
	assert.Equal(t, "Raindrop", params["name"])
	assert.Equal(t, "random", params["type"])
	assert.Equal(t, 1000, params["fadeoff"])
	assert.Equal(t, effect.Range{200, 200}, params["hue_range"])
	assert.Equal(t, 0, params["custom"])
}

func TestSetLightingEffectUnknownPreset(t *testing.T) {
	d, p, _ := newTapo()

	err := d.SetLightingEffectPreset(context.Background(), "disco")
	require.ErrorIs(t, err, effect.ErrUnknownPreset)
	p.AssertNotCalled(t, "Send", mock.Anything, mock.Anything)
}

func TestSetLightingEffectCustom(t *testing.T) {
	d, p, _ := newTapo()
	e := effect.NewWithRandomID(effect.Options{
		Name:          "Mine",
		Type:          effect.TypeStatic,
		IsCustom:      true,
		Enable:        true,
		Brightness:    60,
		DisplayColors: []effect.HSV{{10, 100, 100}},
	})

	p.On("Send", mock.Anything, Request{Method: "set_lighting_effect", Params: e.Wire()}).Return(okResponse, nil).Once()

	require.NoError(t, d.SetLightingEffect(context.Background(), e))
	p.AssertExpectations(t)
}

func TestGetDeviceInfo(t *testing.T) {
	d, p, _ := newTapo()
	p.On("Send", mock.Anything, Request{Method: "get_device_info"}).Return(json.RawMessage(`{
		"device_id": "80221B",
		"ssid": "SG9tZVdpZmk=",
		"nickname": "TGl2aW5nIFJvb20gU3RyaXA=",
		"device_on": true,
		"brightness": 75,
		"model": "L900",
		"lighting_effect": {"enable": 0}
	}`), nil)

	info, err := d.GetDeviceInfo(context.Background())
	require.NoError(t, err)

	assert.Equal(t, "HomeWifi", info.SSID())
	assert.Equal(t, "Living Room Strip", info.Nickname())
	assert.Equal(t, "80221B", info.DeviceID())
	assert.Equal(t, "L900", info.Model())
	assert.True(t, info.DeviceOn())
	assert.Equal(t, 75, info.Brightness())
	assert.Equal(t, json.Number("75"), info["brightness"])
	assert.Equal(t, map[string]any{"enable": json.Number("0")}, info["lighting_effect"])

	on, err := d.GetOnOff(context.Background())
	require.NoError(t, err)
	assert.True(t, on)
}

func TestGetDeviceInfoInvalidBase64(t *testing.T) {
	d, p, _ := newTapo()
	p.On("Send", mock.Anything, Request{Method: "get_device_info"}).Return(json.RawMessage(`{"ssid": "!!"}`), nil)

	_, err := d.GetDeviceInfo(context.Background())
	require.Error(t, err)
}

func TestGetEnergyUsage(t *testing.T) {
	d, p, _ := newTapo()
	p.On("Send", mock.Anything, Request{Method: "get_energy_usage"}).Return(json.RawMessage(`{"today_energy": 12, "nickname": "bm90IGRlY29kZWQ="}`), nil)

	usage, err := d.GetEnergyUsage(context.Background())
	require.NoError(t, err)
	assert.Equal(t, json.Number("12"), usage["today_energy"])
	assert.Equal(t, "bm90IGRlY29kZWQ=", usage["nickname"])
}

func TestTransportErrorPropagates(t *testing.T) {
	transportErr := errors.New("Device token expired or invalid")

	d, p, _ := newTapo()
	p.On("Send", mock.Anything, mock.Anything).Return(nil, transportErr)

	assert.Same(t, transportErr, d.TurnOn(context.Background()))
	assert.Same(t, transportErr, d.SetBrightness(context.Background(), 10))
	assert.Same(t, transportErr, d.SetLightingEffectPreset(context.Background(), "aurora"))

	_, err := d.GetDeviceInfo(context.Background())
	assert.Same(t, transportErr, err)

	_, err = d.GetEnergyUsage(context.Background())
	assert.Same(t, transportErr, err)
}
