// Package player launches and drives the external media player.
// The primary backend is mpv over its JSON-IPC socket.
package player

import (
	"fmt"
	"runtime"

	"github.com/anisan-cli/seaplay/seek"
)

// Chapter is a named timeline marker.
type Chapter struct {
	Title string  `json:"title"`
	Time  float64 `json:"time"`
}

// Player is a running playback backend. As a seek.Media it can be attached to a seek.Seeker.
type Player interface {
	seek.Media

	// Play starts playback of target, a URL or a local path.
	Play(target, title string, headers map[string]string) error

	TogglePause() error
	Paused() (bool, error)

	// SetChapters replaces the chapter list shown on the timeline.
	SetChapters(chapters []Chapter) error

	// Controllable reports whether position and pause can be driven remotely.
	Controllable() bool

	// Wait returns a channel closed when the player process exits.
	Wait() <-chan struct{}

	Close() error
}

// New returns the backend called name.
func New(name string) (Player, error) {
	switch name {
	case "", "mpv":
		return NewMPV(), nil
	case "iina":
		if runtime.GOOS != "darwin" {
			return nil, fmt.Errorf("iina is only supported on macOS")
		}
		return NewIINA(), nil
	default:
		return nil, fmt.Errorf("unknown player %q", name)
	}
}
