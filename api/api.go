package api

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"sort"
	"strconv"
	"time"

	"github.com/gorilla/mux"
	"github.com/jellydator/ttlcache/v3"
	"github.com/r3labs/sse/v2"

	"tapo/colour"
	"tapo/device"
	"tapo/effect"
	"tapo/validation"
)

const StateStream = "state"

type Config struct {
	Addr     string        `yaml:"addr" envconfig:"API_ADDR"`
	CacheTTL time.Duration `yaml:"cache_ttl" envconfig:"API_CACHE_TTL"`
}

// Server exposes the configured devices over HTTP. Device info is cached for
// Config.CacheTTL, a TTL of zero or less disables the cache. Every successful
// command drops the cached entry and is announced on the state event stream.
type Server struct {
	devices map[device.InternalName]device.Basic
	caching bool
	cache   *ttlcache.Cache[device.InternalName, device.DeviceInfo]
	events  *sse.Server
	router  *mux.Router
}

type stateEvent struct {
	Device  device.InternalName `json:"device"`
	Command string              `json:"command"`
}

type deviceEntry struct {
	ID   device.InternalName `json:"id"`
	Room string              `json:"room"`
	Name string              `json:"name"`
}

func New(config Config, devices map[device.InternalName]device.Basic) *Server {
	s := &Server{
		devices: devices,
		caching: config.CacheTTL > 0,
		cache: ttlcache.New(
			ttlcache.WithTTL[device.InternalName, device.DeviceInfo](config.CacheTTL),
		),
		events: sse.New(),
		router: mux.NewRouter(),
	}

	go s.cache.Start()

	s.events.AutoReplay = false
	s.events.CreateStream(StateStream)

	s.router.HandleFunc("/devices", s.listDevices).Methods(http.MethodGet)
	s.router.HandleFunc("/presets", s.listPresets).Methods(http.MethodGet)
	s.router.HandleFunc("/events", s.events.ServeHTTP).Methods(http.MethodGet)
	s.router.HandleFunc("/devices/{room}/{name}", s.deviceInfo).Methods(http.MethodGet)

	d := s.router.PathPrefix("/devices/{room}/{name}").Subrouter()
	d.HandleFunc("/energy", s.energyUsage).Methods(http.MethodGet)
	d.HandleFunc("/on", s.command("turn_on", func(ctx context.Context, l device.Light, _ map[string]string, _ *http.Request) error {
		return l.SetOnOff(ctx, true)
	})).Methods(http.MethodPost)
	d.HandleFunc("/off", s.command("turn_off", func(ctx context.Context, l device.Light, _ map[string]string, _ *http.Request) error {
		return l.SetOnOff(ctx, false)
	})).Methods(http.MethodPost)
	d.HandleFunc("/components", s.command("set_light_components", setComponents)).Methods(http.MethodPut)
	d.HandleFunc("/brightness", s.command("set_brightness", setBrightness)).Methods(http.MethodPut)
	d.HandleFunc("/brightness/{level:[0-9]+}", s.command("set_brightness", setBrightness)).Methods(http.MethodPut)
	d.HandleFunc("/colour/{colour}", s.command("set_colour", func(ctx context.Context, l device.Light, vars map[string]string, _ *http.Request) error {
		return l.SetColour(ctx, vars["colour"])
	})).Methods(http.MethodPut)
	d.HandleFunc("/effect/{preset}", s.command("set_lighting_effect", func(ctx context.Context, l device.Light, vars map[string]string, _ *http.Request) error {
		return l.SetLightingEffectPreset(ctx, vars["preset"])
	})).Methods(http.MethodPut)

	return s
}

func (s *Server) Close() {
	s.cache.Stop()
	s.events.Close()
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

var errBadRequest = errors.New("bad request")

func status(err error) int {
	switch {
	case validation.IsValidation(err),
		errors.Is(err, effect.ErrUnknownPreset),
		errors.Is(err, colour.ErrUnknownColour),
		errors.Is(err, device.ErrNotSupported),
		errors.Is(err, errBadRequest):
		return http.StatusBadRequest
	case errors.Is(err, device.ErrNotFound):
		return http.StatusNotFound
	default:
		return http.StatusBadGateway
	}
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)

	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Println(err)
	}
}

func writeError(w http.ResponseWriter, err error) {
	writeJSON(w, status(err), map[string]string{"error": err.Error()})
}

func internalName(vars map[string]string) device.InternalName {
	return device.InternalName(vars["room"] + "/" + vars["name"])
}

func (s *Server) listDevices(w http.ResponseWriter, r *http.Request) {
	entries := make([]deviceEntry, 0, len(s.devices))
	for id := range s.devices {
		entries = append(entries, deviceEntry{ID: id, Room: id.Room(), Name: id.Name()})
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].ID < entries[j].ID })

	writeJSON(w, http.StatusOK, entries)
}

func (s *Server) listPresets(w http.ResponseWriter, r *http.Request) {
	presets := make([]*effect.LightEffect, 0)
	for _, p := range effect.Presets() {
		presets = append(presets, effect.From(p))
	}

	writeJSON(w, http.StatusOK, presets)
}

func (s *Server) deviceInfo(w http.ResponseWriter, r *http.Request) {
	name := internalName(mux.Vars(r))

	if s.caching {
		if item := s.cache.Get(name); item != nil {
			writeJSON(w, http.StatusOK, item.Value())
			return
		}
	}

	light, err := device.GetDevice[device.Light](s.devices, name)
	if err != nil {
		writeError(w, err)
		return
	}

	info, err := light.GetDeviceInfo(r.Context())
	if err != nil {
		log.Printf("Failed to get info of %s: %s\n", name, err)
		writeError(w, err)
		return
	}

	if s.caching {
		s.cache.Set(name, info, ttlcache.DefaultTTL)
	}
	writeJSON(w, http.StatusOK, info)
}

func (s *Server) energyUsage(w http.ResponseWriter, r *http.Request) {
	name := internalName(mux.Vars(r))

	meter, err := device.GetDevice[device.EnergyMeter](s.devices, name)
	if err != nil {
		writeError(w, err)
		return
	}

	usage, err := meter.GetEnergyUsage(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, usage)
}

type commandFunc func(ctx context.Context, light device.Light, vars map[string]string, r *http.Request) error

func (s *Server) command(method string, fn commandFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		vars := mux.Vars(r)
		name := internalName(vars)

		light, err := device.GetDevice[device.Light](s.devices, name)
		if err != nil {
			writeError(w, err)
			return
		}

		if err := fn(r.Context(), light, vars, r); err != nil {
			log.Printf("%s on %s failed: %s\n", method, name, err)
			writeError(w, err)
			return
		}

		s.cache.Delete(name)
		s.publish(stateEvent{Device: name, Command: method})

		w.WriteHeader(http.StatusNoContent)
	}
}

func (s *Server) publish(event stateEvent) {
	b, err := json.Marshal(event)
	if err != nil {
		log.Println(err)
		return
	}

	s.events.Publish(StateStream, &sse.Event{Data: b})
}

func setComponents(ctx context.Context, light device.Light, _ map[string]string, r *http.Request) error {
	var components validation.Components
	if err := json.NewDecoder(r.Body).Decode(&components); err != nil {
		return errors.Join(errBadRequest, err)
	}

	return light.SetLightComponents(ctx, components)
}

func setBrightness(ctx context.Context, light device.Light, vars map[string]string, _ *http.Request) error {
	level := device.DefaultBrightness
	if v, ok := vars["level"]; ok {
		var err error
		if level, err = strconv.Atoi(v); err != nil {
			return errors.Join(errBadRequest, err)
		}
	}

	return light.SetLightComponents(ctx, validation.Components{validation.Brightness: level})
}
