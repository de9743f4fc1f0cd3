package config

import (
	"fmt"
	"os"
	"time"

	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v3"

	"tapo/api"
	"tapo/automation"
	"tapo/device"
	"tapo/integration/mqtt"
	"tapo/integration/ntfy"
)

type Config struct {
	MQTT mqtt.Config `yaml:"mqtt"`
	NTFY ntfy.Config `yaml:"ntfy"`

	Tapo struct {
		automation.Config `yaml:",inline"`

		Token string `yaml:"token" envconfig:"TAPO_TOKEN"`
		// Maps room/name to the endpoint of the device
		Devices map[device.InternalName]string `yaml:"devices"`
	} `yaml:"tapo"`

	API api.Config `yaml:"api"`
}

func defaults() Config {
	var cfg Config
	cfg.Tapo.Prefix = "tapo"
	cfg.API.Addr = ":8090"
	cfg.API.CacheTTL = 5 * time.Second

	return cfg
}

func Load(path string) (Config, error) {
	cfg := defaults()

	// First load the config from the yaml file
	f, err := os.Open(path)
	if err != nil {
		return cfg, fmt.Errorf("failed to open config file: %w", err)
	}
	defer f.Close()

	if err := yaml.NewDecoder(f).Decode(&cfg); err != nil {
		return cfg, fmt.Errorf("failed to parse config file: %w", err)
	}

	// Then load values from environment
	// This can be used to either override the config or pass in secrets
	if err := envconfig.Process("", &cfg); err != nil {
		return cfg, fmt.Errorf("failed to parse environment config: %w", err)
	}

	return cfg, nil
}
