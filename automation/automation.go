package automation

import (
	"context"
	"encoding/json"
	"log"
	"time"

	paho "github.com/eclipse/paho.mqtt.golang"

	"tapo/device"
)

type Config struct {
	Prefix        string `yaml:"prefix" envconfig:"TAPO_PREFIX"`
	PresenceTopic string `yaml:"presence" envconfig:"TAPO_PRESENCE_TOPIC"`
	// Devices that are switched off again after being on for this long
	AutoOff map[device.InternalName]time.Duration `yaml:"auto_off" envconfig:"TAPO_AUTO_OFF"`
}

func on[M any](client paho.Client, topic string, onMessage func(message M)) {
	var handler paho.MessageHandler = func(c paho.Client, m paho.Message) {
		if len(m.Payload()) == 0 {
			// Retained message was cleared
			return
		}

		var message M
		err := json.Unmarshal(m.Payload(), &message)
		if err != nil {
			log.Printf("Invalid message on %s: %s\n", m.Topic(), err)
			return
		}

		if onMessage != nil {
			onMessage(message)
		}
	}

	if token := client.Subscribe(topic, 1, handler); token.Wait() && token.Error() != nil {
		log.Println(token.Error())
	}
}

// Topics returns every topic RegisterAutomations subscribes to.
func Topics(config Config, devices map[device.InternalName]device.Basic) []string {
	var topics []string
	for name := range device.GetDevices[device.Light](devices) {
		topics = append(topics, commandTopic(config.Prefix, name))
	}

	if config.PresenceTopic != "" {
		topics = append(topics, config.PresenceTopic)
	}

	return topics
}

// Notifier delivers a message to the people living in the house, it may be nil.
type Notifier interface {
	Send(ctx context.Context, title string, message string, tags ...string) error
}

func notify(ctx context.Context, notifier Notifier, title string, message string, tags ...string) {
	if notifier == nil {
		return
	}

	if err := notifier.Send(ctx, title, message, tags...); err != nil {
		log.Printf("Failed to send notification '%s': %s\n", title, err)
	}
}

func RegisterAutomations(client paho.Client, config Config, devices map[device.InternalName]device.Basic, notifier Notifier) {
	bridgeAutomation(client, config.Prefix, devices, newAutoOff(config.AutoOff, devices, notifier))

	if config.PresenceTopic != "" {
		presenceAutomation(client, config.PresenceTopic, devices, notifier)
	}
}
