package surface

import (
	"github.com/anisan-cli/seaplay/log"
	"github.com/anisan-cli/seaplay/seek"
)

// Skipper jumps over the intro or outro. It reports false when there is nothing to skip.
type Skipper interface {
	SkipIntro() bool
	SkipOutro() bool
}

// Pauser toggles playback.
type Pauser interface {
	TogglePause() error
}

// Dispatcher applies actions to the playback session. Skipper and Pauser are optional.
type Dispatcher struct {
	Seeker     *seek.Seeker
	Controller *seek.Controller
	Skipper    Skipper
	Pauser     Pauser
}

// Dispatch applies a and returns the resulting continuous seek state.
func (d *Dispatcher) Dispatch(a Action) seek.State {
	log.Debugf("surface: %s", a)

	switch a.Kind {
	case Jump:
		d.Seeker.Relative(a.Delta)
	case Toggle:
		return d.Controller.Toggle(a.Direction, a.Speed)
	case Stop:
		return d.Controller.Stop()
	case SkipIntro:
		if d.Skipper != nil {
			d.Skipper.SkipIntro()
		}
	case SkipOutro:
		if d.Skipper != nil {
			d.Skipper.SkipOutro()
		}
	case TogglePause:
		if d.Pauser != nil {
			if err := d.Pauser.TogglePause(); err != nil {
				log.Warnf("surface: pause: %s", err)
			}
		}
	}

	return d.Controller.State()
}
