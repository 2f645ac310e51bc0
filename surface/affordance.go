// Package surface keeps the player controls in step with continuous seek state.
// It owns no playback state: every indicator is derived from a seek.State.
package surface

import (
	"fmt"

	"github.com/anisan-cli/seaplay/seek"
	"github.com/charmbracelet/bubbles/key"
	"github.com/samber/lo"
	"github.com/samber/mo"
)

// Kind names what an Action does.
type Kind int

const (
	Jump Kind = iota
	Toggle
	Stop
	SkipIntro
	SkipOutro
	TogglePause
)

// Action is a user intent, produced by a key press, a button or a remote command.
type Action struct {
	Kind Kind

	// Delta is the jump size in seconds for Jump.
	Delta float64

	// Direction and Speed apply to Toggle. An absent speed resumes.
	Direction seek.Direction
	Speed     mo.Option[seek.Speed]
}

func (a Action) String() string {
	switch a.Kind {
	case Jump:
		return fmt.Sprintf("jump(%+g)", a.Delta)
	case Toggle:
		if s, ok := a.Speed.Get(); ok {
			return fmt.Sprintf("toggle(%s %s)", a.Direction, s)
		}
		return fmt.Sprintf("toggle(%s)", a.Direction)
	case Stop:
		return "stop"
	case SkipIntro:
		return "skip(intro)"
	case SkipOutro:
		return "skip(outro)"
	case TogglePause:
		return "pause"
	default:
		return "unknown"
	}
}

// Affordance is one rendered control.
type Affordance struct {
	Label   string
	Binding key.Binding
	Action  Action
}

// Active reports whether a reflects the given state.
// Only speed buttons light up, and only for the exact active direction and speed.
func (a Affordance) Active(state seek.State) bool {
	if a.Action.Kind != Toggle {
		return false
	}
	speed, ok := a.Action.Speed.Get()
	return ok && state.Is(a.Action.Direction, speed)
}

// Indicator is an affordance paired with its derived visual state.
type Indicator struct {
	Affordance
	Active bool
}

// Derive computes indicators for affordances under state. It is pure.
func Derive(state seek.State, affordances []Affordance) []Indicator {
	return lo.Map(affordances, func(a Affordance, _ int) Indicator {
		return Indicator{Affordance: a, Active: a.Active(state)}
	})
}

// Controls returns the seek controls in display order: rewind speeds fastest first,
// then the long and short back jumps, then the forward jumps and forward speeds slowest first.
// The first four speeds of each direction get alt+digit bindings.
func Controls(speeds []seek.Speed, short, long float64) []Affordance {
	var affordances []Affordance
	for i := len(speeds) - 1; i >= 0; i-- {
		affordances = append(affordances, speedControl(seek.Backward, speeds[i], i))
	}

	affordances = append(affordances,
		jumpControl(-long, "shift+left"),
		jumpControl(-short, "left"),
		jumpControl(short, "right"),
		jumpControl(long, "shift+right"),
	)
	for i, s := range speeds {
		affordances = append(affordances, speedControl(seek.Forward, s, i))
	}
	return affordances
}

func speedControl(dir seek.Direction, s seek.Speed, index int) Affordance {
	var label, keyName, help string
	if dir == seek.Backward {
		label = "⟲" + s.String()
		keyName = fmt.Sprintf("alt+%d", index+1)
		help = "rewind " + s.String()
	} else {
		label = s.String() + "⟳"
		keyName = fmt.Sprintf("alt+%d", index+5)
		help = "forward " + s.String()
	}

	binding := key.NewBinding(key.WithKeys(keyName), key.WithHelp(keyName, help))
	if index >= 4 {
		binding = key.NewBinding(key.WithDisabled())
	}

	return Affordance{
		Label:   label,
		Binding: binding,
		Action:  Action{Kind: Toggle, Direction: dir, Speed: mo.Some(s)},
	}
}

func jumpControl(delta float64, keyName string) Affordance {
	var label, help string
	if delta < 0 {
		label = fmt.Sprintf("⟲%g", -delta)
		help = fmt.Sprintf("back %gs", -delta)
	} else {
		label = fmt.Sprintf("%g⟳", delta)
		help = fmt.Sprintf("ahead %gs", delta)
	}

	return Affordance{
		Label:   label,
		Binding: key.NewBinding(key.WithKeys(keyName), key.WithHelp(keyName, help)),
		Action:  Action{Kind: Jump, Delta: delta},
	}
}
