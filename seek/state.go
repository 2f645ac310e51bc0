package seek

import (
	"fmt"
	"strings"
)

// Direction of continuous seeking.
type Direction int

const (
	None Direction = iota
	Forward
	Backward
)

func (d Direction) String() string {
	switch d {
	case Forward:
		return "forward"
	case Backward:
		return "backward"
	default:
		return "none"
	}
}

// Opposite returns the other seek direction. None has no opposite.
func (d Direction) Opposite() Direction {
	switch d {
	case Forward:
		return Backward
	case Backward:
		return Forward
	default:
		return None
	}
}

func (d Direction) sign() float64 {
	if d == Backward {
		return -1
	}
	return 1
}

// ParseDirection accepts forward/backward and their common aliases.
func ParseDirection(s string) (Direction, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "forward", "ff", "fastforward", "fast_forward":
		return Forward, nil
	case "backward", "rewind", "rw", "back":
		return Backward, nil
	default:
		return None, fmt.Errorf("unknown direction %q", s)
	}
}

// Speed is the number of seconds moved per tick.
type Speed int

func (s Speed) String() string {
	return fmt.Sprintf("%dx", int(s))
}

// DefaultSpeeds is the enumerated speed set.
var DefaultSpeeds = []Speed{2, 5, 10, 20}

// State is the continuous seek state. Speed is zero while idle.
type State struct {
	Direction Direction
	Speed     Speed
}

// Idle reports whether no direction is active.
func (s State) Idle() bool {
	return s.Direction == None
}

// Is reports whether the state is exactly dir at speed.
func (s State) Is(dir Direction, speed Speed) bool {
	return s.Direction == dir && s.Speed == speed
}

func (s State) String() string {
	switch s.Direction {
	case Forward:
		return "Forwarding(" + s.Speed.String() + ")"
	case Backward:
		return "Rewinding(" + s.Speed.String() + ")"
	default:
		return "Idle"
	}
}
