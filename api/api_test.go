package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"tapo/colour"
	"tapo/device"
	"tapo/effect"
	"tapo/validation"
)

type MockLight struct {
	mock.Mock
	name device.InternalName
}

func (m *MockLight) GetID() device.InternalName {
	return m.name
}

func (m *MockLight) SetOnOff(ctx context.Context, on bool) error {
	return m.Called(on).Error(0)
}

func (m *MockLight) GetOnOff(ctx context.Context) (bool, error) {
	args := m.Called()
	return args.Bool(0), args.Error(1)
}

func (m *MockLight) SetLightComponents(ctx context.Context, components validation.Components) error {
	return m.Called(components).Error(0)
}

func (m *MockLight) SetColour(ctx context.Context, name string) error {
	return m.Called(name).Error(0)
}

func (m *MockLight) SetLightingEffect(ctx context.Context, e *effect.LightEffect) error {
	return m.Called(e).Error(0)
}

func (m *MockLight) SetLightingEffectPreset(ctx context.Context, name string) error {
	return m.Called(name).Error(0)
}

func (m *MockLight) GetDeviceInfo(ctx context.Context) (device.DeviceInfo, error) {
	args := m.Called()
	info, _ := args.Get(0).(device.DeviceInfo)
	return info, args.Error(1)
}

type MockPlug struct {
	MockLight
}

func (m *MockPlug) GetEnergyUsage(ctx context.Context) (device.EnergyUsage, error) {
	args := m.Called()
	usage, _ := args.Get(0).(device.EnergyUsage)
	return usage, args.Error(1)
}

func newServer(t *testing.T, devices ...device.Basic) *Server {
	m := make(map[device.InternalName]device.Basic)
	for _, d := range devices {
		m[d.GetID()] = d
	}

	s := New(Config{CacheTTL: time.Minute}, m)
	t.Cleanup(s.Close)

	return s
}

func do(s *Server, method string, target string, body string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	s.ServeHTTP(w, httptest.NewRequest(method, target, strings.NewReader(body)))
	return w
}

func TestListDevices(t *testing.T) {
	s := newServer(t,
		&MockLight{name: "living_room/strip"},
		&MockLight{name: "bedroom/lamp"},
	)

	w := do(s, http.MethodGet, "/devices", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `[
		{"id": "bedroom/lamp", "room": "Bedroom", "name": "Lamp"},
		{"id": "living_room/strip", "room": "Living Room", "name": "Strip"}
	]`, w.Body.String())
}

func TestListPresets(t *testing.T) {
	s := newServer(t)

	w := do(s, http.MethodGet, "/presets", "")
	require.Equal(t, http.StatusOK, w.Code)

	var presets []map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &presets))
	require.Len(t, presets, len(effect.Presets()))
	assert.Equal(t, "Aurora", presets[0]["name"])
	assert.Equal(t, "Valentines", presets[len(presets)-1]["name"])
}

func TestDeviceInfoIsCached(t *testing.T) {
	l := &MockLight{name: "living_room/strip"}
	l.On("GetDeviceInfo").Return(device.DeviceInfo{"device_on": true}, nil).Once()
	s := newServer(t, l)

	for i := 0; i < 2; i++ {
		w := do(s, http.MethodGet, "/devices/living_room/strip", "")
		require.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, `{"device_on": true}`, w.Body.String())
	}

	l.AssertExpectations(t)
}

func TestDeviceInfoCacheDisabled(t *testing.T) {
	l := &MockLight{name: "living_room/strip"}
	l.On("GetDeviceInfo").Return(device.DeviceInfo{"device_on": true}, nil).Twice()

	s := New(Config{}, map[device.InternalName]device.Basic{l.name: l})
	t.Cleanup(s.Close)

	for i := 0; i < 2; i++ {
		require.Equal(t, http.StatusOK, do(s, http.MethodGet, "/devices/living_room/strip", "").Code)
	}

	l.AssertExpectations(t)
}

func TestCommandInvalidatesCache(t *testing.T) {
	l := &MockLight{name: "living_room/strip"}
	l.On("GetDeviceInfo").Return(device.DeviceInfo{"device_on": false}, nil).Twice()
	l.On("SetOnOff", true).Return(nil).Once()
	s := newServer(t, l)

	require.Equal(t, http.StatusOK, do(s, http.MethodGet, "/devices/living_room/strip", "").Code)
	require.Equal(t, http.StatusNoContent, do(s, http.MethodPost, "/devices/living_room/strip/on", "").Code)
	require.Equal(t, http.StatusOK, do(s, http.MethodGet, "/devices/living_room/strip", "").Code)

	l.AssertExpectations(t)
}

func TestCommands(t *testing.T) {
	for _, tt := range []struct {
		name   string
		method string
		target string
		body   string
		setup  func(l *MockLight)
	}{
		{
			name: "Off", method: http.MethodPost, target: "/off",
			setup: func(l *MockLight) { l.On("SetOnOff", false).Return(nil) },
		},
		{
			name: "Components", method: http.MethodPut, target: "/components", body: `{"brightness": 50, "saturation": 70}`,
			setup: func(l *MockLight) {
				l.On("SetLightComponents", validation.Components{"brightness": 50, "saturation": 70}).Return(nil)
			},
		},
		{
			name: "Default brightness", method: http.MethodPut, target: "/brightness",
			setup: func(l *MockLight) {
				l.On("SetLightComponents", validation.Components{"brightness": 100}).Return(nil)
			},
		},
		{
			name: "Brightness", method: http.MethodPut, target: "/brightness/25",
			setup: func(l *MockLight) {
				l.On("SetLightComponents", validation.Components{"brightness": 25}).Return(nil)
			},
		},
		{
			name: "Colour", method: http.MethodPut, target: "/colour/warmwhite",
			setup: func(l *MockLight) { l.On("SetColour", "warmwhite").Return(nil) },
		},
		{
			name: "Effect", method: http.MethodPut, target: "/effect/raindrop",
			setup: func(l *MockLight) { l.On("SetLightingEffectPreset", "raindrop").Return(nil) },
		},
	} {
		t.Run(tt.name, func(t *testing.T) {
			l := &MockLight{name: "living_room/strip"}
			tt.setup(l)
			s := newServer(t, l)

			w := do(s, tt.method, "/devices/living_room/strip"+tt.target, tt.body)
			require.Equal(t, http.StatusNoContent, w.Code, w.Body.String())
			l.AssertExpectations(t)
		})
	}
}

func TestErrors(t *testing.T) {
	for _, tt := range []struct {
		name   string
		target string
		body   string
		err    error
		want   int
	}{
		{name: "Validation", target: "/components", body: `{"hue": 1000}`, err: &validation.Error{Field: "hue", Message: "Invalid hue value. Hue must be between 0 and 360."}, want: http.StatusBadRequest},
		{name: "Bad body", target: "/components", body: `{`, want: http.StatusBadRequest},
		{name: "Unknown preset", target: "/effect/disco", err: effect.ErrUnknownPreset, want: http.StatusBadRequest},
		{name: "Unknown colour", target: "/colour/mauve", err: colour.ErrUnknownColour, want: http.StatusBadRequest},
		{name: "Transport", target: "/effect/aurora", err: errors.New("Device token expired or invalid"), want: http.StatusBadGateway},
	} {
		t.Run(tt.name, func(t *testing.T) {
			l := &MockLight{name: "living_room/strip"}
			l.On("SetLightComponents", mock.Anything).Return(tt.err)
			l.On("SetLightingEffectPreset", mock.Anything).Return(tt.err)
			l.On("SetColour", mock.Anything).Return(tt.err)
			s := newServer(t, l)

			w := do(s, http.MethodPut, "/devices/living_room/strip"+tt.target, tt.body)
			require.Equal(t, tt.want, w.Code)

			var body map[string]string
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
			assert.NotEmpty(t, body["error"])
		})
	}
}

func TestUnknownDevice(t *testing.T) {
	s := newServer(t)

	assert.Equal(t, http.StatusNotFound, do(s, http.MethodGet, "/devices/attic/fan", "").Code)
	assert.Equal(t, http.StatusNotFound, do(s, http.MethodPost, "/devices/attic/fan/on", "").Code)
}

func TestEnergyUsage(t *testing.T) {
	p := &MockPlug{MockLight{name: "kitchen/kettle"}}
	p.On("GetEnergyUsage").Return(device.EnergyUsage{"today_energy": 12}, nil)
	l := &MockLight{name: "living_room/strip"}
	s := newServer(t, p, l)

	w := do(s, http.MethodGet, "/devices/kitchen/kettle/energy", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"today_energy": 12}`, w.Body.String())

	assert.Equal(t, http.StatusBadRequest, do(s, http.MethodGet, "/devices/living_room/strip/energy", "").Code)
}
