package seek

import (
	"errors"
	"sync"
	"time"

	"github.com/anisan-cli/seaplay/clock"
)

type fakeMedia struct {
	mu       sync.Mutex
	position float64
	duration float64
	writes   []float64
	broken   bool

	// when set, writes signal entered and wait for release
	entered chan struct{}
	release chan struct{}
}

func newFakeMedia(position, duration float64) *fakeMedia {
	return &fakeMedia{position: position, duration: duration}
}

func (f *fakeMedia) CurrentTime() (float64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.broken {
		return 0, errors.New("ipc gone")
	}
	return f.position, nil
}

func (f *fakeMedia) Duration() (float64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.broken {
		return 0, errors.New("ipc gone")
	}
	return f.duration, nil
}

func (f *fakeMedia) SetCurrentTime(seconds float64) error {
	if f.entered != nil {
		f.entered <- struct{}{}
		<-f.release
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	f.position = seconds
	f.writes = append(f.writes, seconds)
	return nil
}

func (f *fakeMedia) Position() float64 {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.position
}

func (f *fakeMedia) Writes() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.writes)
}

// capturing hands scheduled callbacks to the test instead of running them,
// so a tick can be fired after its timer was cancelled.
type capturing struct {
	fns []func()
}

type noopTimer struct{}

func (noopTimer) Stop() {}

func (c *capturing) AfterFunc(_ time.Duration, fn func()) clock.Timer {
	c.fns = append(c.fns, fn)
	return noopTimer{}
}

func (c *capturing) Every(_ time.Duration, fn func()) clock.Timer {
	c.fns = append(c.fns, fn)
	return noopTimer{}
}
