package seek

import (
	"sync"
	"time"

	"github.com/anisan-cli/seaplay/clock"
	"github.com/anisan-cli/seaplay/log"
	"github.com/samber/lo"
	"github.com/samber/mo"
	"golang.org/x/exp/slices"
)

// ResumePolicy picks the speed of a toggle that names none.
type ResumePolicy int

const (
	// ResumeLastUsed reuses the last speed of that direction.
	ResumeLastUsed ResumePolicy = iota
	// ResumeDefault always starts at Options.DefaultSpeed.
	ResumeDefault
)

// ParseResumePolicy maps "last" and "default" to a policy.
func ParseResumePolicy(s string) ResumePolicy {
	if s == "default" {
		return ResumeDefault
	}
	return ResumeLastUsed
}

type Options struct {
	Speeds       []Speed
	DefaultSpeed Speed
	Interval     time.Duration
	Resume       ResumePolicy
	Scheduler    clock.Scheduler
}

// DefaultOptions returns speeds {2,5,10,20}, a 2x default and a one second tick.
func DefaultOptions() Options {
	return Options{
		Speeds:       slices.Clone(DefaultSpeeds),
		DefaultSpeed: 2,
		Interval:     time.Second,
		Resume:       ResumeLastUsed,
		Scheduler:    clock.System,
	}
}

func (o Options) normalized() Options {
	def := DefaultOptions()

	o.Speeds = lo.Uniq(lo.Filter(o.Speeds, func(s Speed, _ int) bool { return s > 0 }))
	if len(o.Speeds) == 0 {
		o.Speeds = def.Speeds
	}
	slices.Sort(o.Speeds)

	if !slices.Contains(o.Speeds, o.DefaultSpeed) {
		o.DefaultSpeed = o.Speeds[0]
	}
	if o.Interval <= 0 {
		o.Interval = def.Interval
	}
	if o.Scheduler == nil {
		o.Scheduler = def.Scheduler
	}
	return o
}

// Controller owns continuous fast-forward and rewind.
// At most one direction is active, driven by a single repeating timer.
type Controller struct {
	seeker *Seeker
	opts   Options

	mu         sync.Mutex
	state      State
	remembered map[Direction]Speed
	timer      clock.Timer
	generation uint64
	closed     bool

	// held by a tick for the duration of its seek
	tickMu sync.Mutex

	notifyMu  sync.Mutex
	listeners map[int]func(State)
	nextID    int
}

func NewController(seeker *Seeker, opts Options) *Controller {
	opts = opts.normalized()

	return &Controller{
		seeker: seeker,
		opts:   opts,
		remembered: map[Direction]Speed{
			Forward:  opts.DefaultSpeed,
			Backward: opts.DefaultSpeed,
		},
		listeners: make(map[int]func(State)),
	}
}

// Toggle flips continuous seeking in dir.
//
// If dir is already active and speed is absent or equal to the active speed, seeking stops.
// Otherwise dir becomes active at speed (or the resume policy's speed when absent),
// replacing whatever was running. Speeds outside the configured set count as absent.
func (c *Controller) Toggle(dir Direction, speed mo.Option[Speed]) State {
	if dir != Forward && dir != Backward {
		return c.State()
	}

	if s, ok := speed.Get(); ok && !slices.Contains(c.opts.Speeds, s) {
		log.Warnf("seek: speed %s not in %v, ignoring", s, c.opts.Speeds)
		speed = mo.None[Speed]()
	}

	c.mu.Lock()
	if c.closed {
		st := c.state
		c.mu.Unlock()
		return st
	}

	if c.state.Direction == dir && (speed.IsAbsent() || speed.MustGet() == c.state.Speed) {
		c.stopLocked()
	} else {
		c.startLocked(dir, speed.OrElse(c.resumeSpeed(dir)))
	}
	st := c.state
	c.mu.Unlock()

	log.WithFields(log.Fields{"state": st.String()}).Debug("seek: toggled")
	c.publish(st)
	return st
}

func (c *Controller) Forward(speed Speed) State {
	return c.Toggle(Forward, mo.Some(speed))
}

func (c *Controller) Rewind(speed Speed) State {
	return c.Toggle(Backward, mo.Some(speed))
}

// Stop deactivates whichever direction is active.
func (c *Controller) Stop() State {
	c.mu.Lock()
	if c.state.Idle() {
		st := c.state
		c.mu.Unlock()
		return st
	}
	c.stopLocked()
	st := c.state
	c.mu.Unlock()

	c.publish(st)
	return st
}

// Close cancels any running timer. Once it returns no tick mutates the position,
// and further toggles are ignored.
func (c *Controller) Close() {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return
	}
	wasActive := !c.state.Idle()
	c.stopLocked()
	c.closed = true
	st := c.state
	c.mu.Unlock()

	// wait out a tick that passed its check before the timer was cancelled
	c.tickMu.Lock()
	c.tickMu.Unlock()

	if wasActive {
		c.publish(st)
	}
}

func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Remembered returns the speed a toggle without a speed would resume at in dir.
func (c *Controller) Remembered(dir Direction) Speed {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.resumeSpeed(dir)
}

// Speeds returns the configured speed set in ascending order.
func (c *Controller) Speeds() []Speed {
	return slices.Clone(c.opts.Speeds)
}

// Subscribe registers fn for state changes and returns a function that removes it.
// fn runs on the goroutine that changed the state and must not block.
func (c *Controller) Subscribe(fn func(State)) (unsubscribe func()) {
	c.notifyMu.Lock()
	id := c.nextID
	c.nextID++
	c.listeners[id] = fn
	c.notifyMu.Unlock()

	return func() {
		c.notifyMu.Lock()
		delete(c.listeners, id)
		c.notifyMu.Unlock()
	}
}

func (c *Controller) publish(st State) {
	c.notifyMu.Lock()
	defer c.notifyMu.Unlock()

	for _, fn := range c.listeners {
		fn(st)
	}
}

func (c *Controller) resumeSpeed(dir Direction) Speed {
	if c.opts.Resume == ResumeDefault {
		return c.opts.DefaultSpeed
	}
	return c.remembered[dir]
}

func (c *Controller) startLocked(dir Direction, speed Speed) {
	c.cancelLocked()

	c.state = State{Direction: dir, Speed: speed}
	c.remembered[dir] = speed

	gen := c.generation
	delta := float64(speed) * dir.sign()
	c.timer = c.opts.Scheduler.Every(c.opts.Interval, func() {
		c.tick(gen, delta)
	})
}

func (c *Controller) stopLocked() {
	c.cancelLocked()
	c.state = State{}
}

// cancelLocked stops the timer and invalidates ticks already in flight.
func (c *Controller) cancelLocked() {
	c.generation++
	if c.timer != nil {
		c.timer.Stop()
		c.timer = nil
	}
}

// tick seeks without holding mu, so toggles and state reads never wait on the player.
func (c *Controller) tick(gen uint64, delta float64) {
	c.tickMu.Lock()
	defer c.tickMu.Unlock()

	c.mu.Lock()
	live := !c.closed && gen == c.generation
	c.mu.Unlock()

	if live {
		c.seeker.Relative(delta)
	}
}
