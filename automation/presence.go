package automation

import (
	"context"
	"fmt"
	"log"

	paho "github.com/eclipse/paho.mqtt.golang"

	"tapo/device"
)

type presenceMessage struct {
	State   bool  `json:"state"`
	Updated int64 `json:"updated"`
}

// turnAllOff switches off every device that supports it. It keeps going when
// a device fails and returns how many did.
func turnAllOff(ctx context.Context, devices map[device.InternalName]device.Basic) int {
	failed := 0
	for name, d := range device.GetDevices[device.OnOff](devices) {
		if err := d.SetOnOff(ctx, false); err != nil {
			log.Printf("Failed to turn off %s: %s\n", name, err)
			failed++
		}
	}

	return failed
}

func awaySummary(total int, failed int) string {
	summary := fmt.Sprintf("Turned off %d devices", total-failed)
	if failed > 0 {
		summary += fmt.Sprintf(", %d failed", failed)
	}

	return summary
}

func presenceAutomation(client paho.Client, topic string, devices map[device.InternalName]device.Basic, notifier Notifier) {
	on(client, topic, func(msg presenceMessage) {
		if msg.State {
			return
		}

		log.Println("Nobody home, turning off all devices")

		ctx, cancel := context.WithTimeout(context.Background(), commandTimeout)
		defer cancel()

		total := len(device.GetDevices[device.OnOff](devices))
		failed := turnAllOff(ctx, devices)

		notify(ctx, notifier, "Away", awaySummary(total, failed), "house")
	})
}
