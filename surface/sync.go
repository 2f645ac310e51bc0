package surface

import (
	"sync"
	"time"

	"github.com/anisan-cli/seaplay/clock"
	"github.com/anisan-cli/seaplay/seek"
)

// Renderer draws indicators. It is called from whichever goroutine changed the state.
type Renderer interface {
	Render(indicators []Indicator)
}

// RendererFunc adapts a function to Renderer.
type RendererFunc func(indicators []Indicator)

func (f RendererFunc) Render(indicators []Indicator) {
	f(indicators)
}

// Sync re-renders the affordances on every controller state change and,
// when Resync is positive, periodically in case a render was missed.
type Sync struct {
	Controller  *seek.Controller
	Affordances []Affordance
	Renderer    Renderer
	Resync      time.Duration
	Scheduler   clock.Scheduler

	mu          sync.Mutex
	unsubscribe func()
	timer       clock.Timer
}

// Start renders once and begins following the controller.
func (s *Sync) Start() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.unsubscribe != nil {
		return
	}

	s.unsubscribe = s.Controller.Subscribe(s.render)
	if s.Resync > 0 {
		scheduler := s.Scheduler
		if scheduler == nil {
			scheduler = clock.System
		}
		s.timer = scheduler.Every(s.Resync, s.Refresh)
	}

	s.render(s.Controller.State())
}

// Refresh renders the current state.
func (s *Sync) Refresh() {
	s.render(s.Controller.State())
}

func (s *Sync) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.unsubscribe != nil {
		s.unsubscribe()
		s.unsubscribe = nil
	}
	if s.timer != nil {
		s.timer.Stop()
		s.timer = nil
	}
}

func (s *Sync) render(state seek.State) {
	s.Renderer.Render(Derive(state, s.Affordances))
}
