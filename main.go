package main

import (
	"log"
	"net/http"
	"os"

	"github.com/joho/godotenv"

	"tapo/api"
	"tapo/automation"
	"tapo/colour"
	"tapo/config"
	"tapo/device"
	"tapo/integration/mqtt"
	"tapo/integration/ntfy"
	"tapo/integration/tapo"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load("config.yml")
	if err != nil {
		log.Fatalln(err)
	}

	devices := make(map[device.InternalName]device.Basic)
	for name, endpoint := range cfg.Tapo.Devices {
		protocol, err := tapo.NewHTTP(endpoint, cfg.Tapo.Token, nil)
		if err != nil {
			log.Fatalf("Failed to create %s: %s\n", name, err)
		}

		devices[name] = device.NewTapo(name, protocol, colour.Table{})
	}

	// ntfy.sh
	var notifier automation.Notifier
	if cfg.NTFY.Enabled() {
		notifier = ntfy.New(cfg.NTFY, nil)
	}

	// MQTT
	if cfg.MQTT.Enabled() {
		client, err := mqtt.New(cfg.MQTT)
		if err != nil {
			log.Fatalln("Failed to connect to MQTT broker", err)
		}
		defer mqtt.Delete(client, automation.Topics(cfg.Tapo.Config, devices)...)

		automation.RegisterAutomations(client, cfg.Tapo.Config, devices, notifier)
	}

	s := api.New(cfg.API, devices)
	defer s.Close()

	srv := http.Server{
		Addr:    cfg.API.Addr,
		Handler: s,
	}

	log.Printf("Starting server on %s with %d devices (PID: %d)\n", cfg.API.Addr, len(devices), os.Getpid())
	if err := srv.ListenAndServe(); err != nil {
		log.Println(err)
	}
}
