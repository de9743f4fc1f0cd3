package automation

import (
	"context"
	"fmt"
	"log"
	"sync"
	"time"

	"tapo/device"
)

// autoOff turns devices off again after they have been on for a configured
// amount of time. Turning a device off, or on again, resets its timer.
type autoOff struct {
	lengths  map[device.InternalName]time.Duration
	devices  map[device.InternalName]device.Basic
	notifier Notifier

	mu     sync.Mutex
	timers map[device.InternalName]*time.Timer
}

func newAutoOff(lengths map[device.InternalName]time.Duration, devices map[device.InternalName]device.Basic, notifier Notifier) *autoOff {
	return &autoOff{
		lengths:  lengths,
		devices:  devices,
		notifier: notifier,
		timers:   make(map[device.InternalName]*time.Timer),
	}
}

func (a *autoOff) update(name device.InternalName, on bool) {
	length, ok := a.lengths[name]
	if !ok || length <= 0 {
		return
	}

	a.mu.Lock()
	defer a.mu.Unlock()

	if timer, ok := a.timers[name]; ok {
		timer.Stop()
		delete(a.timers, name)
	}

	if on {
		a.timers[name] = time.AfterFunc(length, func() { a.expire(name) })
	}
}

func (a *autoOff) expire(name device.InternalName) {
	a.mu.Lock()
	delete(a.timers, name)
	a.mu.Unlock()

	log.Printf("Turning %s automatically off\n", name)

	d, err := device.GetDevice[device.OnOff](a.devices, name)
	if err != nil {
		log.Println(err)
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), commandTimeout)
	defer cancel()

	if err := d.SetOnOff(ctx, false); err != nil {
		log.Printf("Failed to turn off %s: %s\n", name, err)
		return
	}

	notify(ctx, a.notifier, "Auto off", fmt.Sprintf("%s in %s was on for %s", name.Name(), name.Room(), a.lengths[name]), "hourglass")
}

// pending reports whether a timer is running for name.
func (a *autoOff) pending(name device.InternalName) bool {
	a.mu.Lock()
	defer a.mu.Unlock()

	_, ok := a.timers[name]
	return ok
}
