// Package seek moves the playback position of an attached media element:
// single clamped seeks through Seeker and timed continuous seeking through Controller.
package seek

import (
	"math"
	"sync"

	"github.com/anisan-cli/seaplay/log"
	"github.com/samber/lo"
)

// Media is the playback element a Seeker writes positions to. Times are in seconds.
type Media interface {
	CurrentTime() (float64, error)
	Duration() (float64, error)
	SetCurrentTime(seconds float64) error
}

// PlaybackPosition is a snapshot of the media timeline.
// A Duration that is not positive and finite is unknown.
type PlaybackPosition struct {
	CurrentTime float64
	Duration    float64
}

// Known reports whether the duration can bound a seek.
func (p PlaybackPosition) Known() bool {
	return knownDuration(p.Duration)
}

// Seeker applies clamped seeks. It is a no-op while no media is attached.
type Seeker struct {
	mu    sync.RWMutex
	media Media
}

// NewSeeker returns a Seeker attached to m, which may be nil.
func NewSeeker(m Media) *Seeker {
	return &Seeker{media: m}
}

// Attach replaces the media element. Passing nil detaches.
func (s *Seeker) Attach(m Media) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.media = m
}

func (s *Seeker) Detach() {
	s.Attach(nil)
}

// Attached reports whether a media element is present.
func (s *Seeker) Attached() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.media != nil
}

// Relative moves the position by delta seconds, clamped to [0, duration].
func (s *Seeker) Relative(delta float64) {
	if math.IsNaN(delta) {
		return
	}

	m := s.current()
	if m == nil {
		return
	}

	current, err := m.CurrentTime()
	if err != nil {
		log.Warnf("seek: read position: %s", err)
		return
	}

	s.write(m, current+delta)
}

// Absolute sets the position to t seconds, clamped to [0, duration].
func (s *Seeker) Absolute(t float64) {
	if math.IsNaN(t) {
		return
	}

	m := s.current()
	if m == nil {
		return
	}

	s.write(m, t)
}

// Position reads the current timeline. ok is false with no media or on a read failure.
func (s *Seeker) Position() (pos PlaybackPosition, ok bool) {
	m := s.current()
	if m == nil {
		return pos, false
	}

	current, err := m.CurrentTime()
	if err != nil {
		return pos, false
	}

	return PlaybackPosition{CurrentTime: current, Duration: s.duration(m)}, true
}

func (s *Seeker) current() Media {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.media
}

func (s *Seeker) duration(m Media) float64 {
	d, err := m.Duration()
	if err != nil {
		log.Debugf("seek: duration unavailable: %s", err)
		return 0
	}
	return d
}

func (s *Seeker) write(m Media, target float64) {
	target = Clamp(target, s.duration(m))
	if math.IsInf(target, 1) {
		// end of a stream with no known end
		return
	}
	if err := m.SetCurrentTime(target); err != nil {
		log.Warnf("seek: set position %.2f: %s", target, err)
	}
}

// Clamp bounds t to [0, duration]. An unknown duration only bounds from below.
func Clamp(t, duration float64) float64 {
	if !knownDuration(duration) {
		return math.Max(t, 0)
	}
	return lo.Clamp(t, 0, duration)
}

func knownDuration(d float64) bool {
	return d > 0 && !math.IsNaN(d) && !math.IsInf(d, 0)
}
