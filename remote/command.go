// Package remote lets a WebSocket peer drive the playback session.
//
// Inbound text frames are JSON commands; outbound frames report the continuous seek state.
package remote

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/anisan-cli/seaplay/seek"
	"github.com/anisan-cli/seaplay/surface"
	"github.com/samber/mo"
)

// Command is an inbound message.
//
//	{"type":"seek","delta":-10}
//	{"type":"seek_to","time":95}
//	{"type":"toggle","direction":"forward","speed":5}
//	{"type":"stop"}
//	{"type":"skip","target":"intro"}
//	{"type":"pause"}
type Command struct {
	Type      string   `json:"type"`
	Delta     *float64 `json:"delta,omitempty"`
	Time      *float64 `json:"time,omitempty"`
	Direction string   `json:"direction,omitempty"`
	Speed     int      `json:"speed,omitempty"`
	Target    string   `json:"target,omitempty"`
}

// StateMessage is sent on connect and on every continuous seek state change.
type StateMessage struct {
	Type      string  `json:"type"`
	Direction string  `json:"direction"`
	Speed     int     `json:"speed"`
	Position  float64 `json:"position"`
	Duration  float64 `json:"duration"`
}

var errMissingField = errors.New("missing field")

// Parse decodes a command. Absolute seeks are reported separately since they are not surface actions.
func Parse(data []byte) (action surface.Action, absolute mo.Option[float64], err error) {
	var cmd Command
	if err := json.Unmarshal(data, &cmd); err != nil {
		return action, absolute, fmt.Errorf("decode command: %w", err)
	}

	switch cmd.Type {
	case "seek":
		if cmd.Delta == nil {
			return action, absolute, fmt.Errorf("seek: delta: %w", errMissingField)
		}
		return surface.Action{Kind: surface.Jump, Delta: *cmd.Delta}, absolute, nil
	case "seek_to":
		if cmd.Time == nil {
			return action, absolute, fmt.Errorf("seek_to: time: %w", errMissingField)
		}
		return action, mo.Some(*cmd.Time), nil
	case "toggle":
		dir, err := seek.ParseDirection(cmd.Direction)
		if err != nil {
			return action, absolute, fmt.Errorf("toggle: %w", err)
		}
		speed := mo.None[seek.Speed]()
		if cmd.Speed > 0 {
			speed = mo.Some(seek.Speed(cmd.Speed))
		}
		return surface.Action{Kind: surface.Toggle, Direction: dir, Speed: speed}, absolute, nil
	case "stop":
		return surface.Action{Kind: surface.Stop}, absolute, nil
	case "skip":
		switch cmd.Target {
		case "intro", "op":
			return surface.Action{Kind: surface.SkipIntro}, absolute, nil
		case "outro", "ed":
			return surface.Action{Kind: surface.SkipOutro}, absolute, nil
		}
		return action, absolute, fmt.Errorf("skip: unknown target %q", cmd.Target)
	case "pause":
		return surface.Action{Kind: surface.TogglePause}, absolute, nil
	default:
		return action, absolute, fmt.Errorf("unknown command %q", cmd.Type)
	}
}
