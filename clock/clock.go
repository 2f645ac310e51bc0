// Package clock abstracts timer scheduling so that periodic seeks and reconnect
// delays can be cancelled synchronously and driven deterministically in tests.
package clock

import (
	"sync"
	"time"
)

// Timer is the ownership token of a scheduled callback. Stop is idempotent.
type Timer interface {
	Stop()
}

// Scheduler schedules one-shot and repeating callbacks.
type Scheduler interface {
	// AfterFunc runs fn once after d.
	AfterFunc(d time.Duration, fn func()) Timer

	// Every runs fn every d until the returned Timer is stopped.
	Every(d time.Duration, fn func()) Timer
}

// System is the wall-clock scheduler.
var System Scheduler = systemScheduler{}

type systemScheduler struct{}

type oneShot struct {
	t *time.Timer
}

func (o oneShot) Stop() {
	o.t.Stop()
}

func (systemScheduler) AfterFunc(d time.Duration, fn func()) Timer {
	return oneShot{t: time.AfterFunc(d, fn)}
}

type repeating struct {
	stop chan struct{}
	once sync.Once
}

func (r *repeating) Stop() {
	r.once.Do(func() { close(r.stop) })
}

func (systemScheduler) Every(d time.Duration, fn func()) Timer {
	r := &repeating{stop: make(chan struct{})}
	ticker := time.NewTicker(d)

	go func() {
		defer ticker.Stop()
		for {
			select {
			case <-r.stop:
				return
			case <-ticker.C:
				// Stop may race with a tick that is already due.
				select {
				case <-r.stop:
					return
				default:
				}
				fn()
			}
		}
	}()

	return r
}
