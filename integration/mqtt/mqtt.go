package mqtt

import (
	"log"

	paho "github.com/eclipse/paho.mqtt.golang"
)

// Messages on topics without a handler are only logged
var defaultHandler paho.MessageHandler = func(client paho.Client, msg paho.Message) {
	log.Printf("Unhandled message on %s: %s\n", msg.Topic(), msg.Payload())
}

func New(config Config) (paho.Client, error) {
	clientID := config.ClientID
	if clientID == "" {
		clientID = "tapo"
	}

	opts := paho.NewClientOptions().AddBroker(config.broker())
	opts.SetClientID(clientID)
	opts.SetDefaultPublishHandler(defaultHandler)
	opts.SetUsername(config.Username)
	opts.SetPassword(config.Password)
	opts.SetOrderMatters(false)

	client := paho.NewClient(opts)
	if token := client.Connect(); token.Wait() && token.Error() != nil {
		return nil, token.Error()
	}

	return client, nil
}

func Delete(client paho.Client, topics ...string) {
	if len(topics) > 0 {
		if token := client.Unsubscribe(topics...); token.Wait() && token.Error() != nil {
			log.Println(token.Error())
		}
	}

	client.Disconnect(250)
}
