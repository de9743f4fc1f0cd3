package mqtt

type Config struct {
	Host     string `yaml:"host" envconfig:"MQTT_HOST"`
	Port     string `yaml:"port" envconfig:"MQTT_PORT"`
	Username string `yaml:"username" envconfig:"MQTT_USERNAME"`
	Password string `yaml:"password" envconfig:"MQTT_PASSWORD"`
	ClientID string `yaml:"client_id" envconfig:"MQTT_CLIENT_ID"`
}

// Enabled reports whether a broker has been configured.
func (c Config) Enabled() bool {
	return c.Host != ""
}

func (c Config) broker() string {
	port := c.Port
	if port == "" {
		port = "1883"
	}

	return "tcp://" + c.Host + ":" + port
}
