package surface

import (
	"sync"
	"testing"
	"time"

	"github.com/anisan-cli/seaplay/clock"
	"github.com/anisan-cli/seaplay/seek"
	"github.com/samber/lo"
	"github.com/samber/mo"
	. "github.com/smartystreets/goconvey/convey"
)

type press string

func (p press) String() string { return string(p) }

type media struct {
	mu       sync.Mutex
	position float64
}

func (m *media) CurrentTime() (float64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.position, nil
}

func (m *media) Duration() (float64, error) { return 600, nil }

func (m *media) SetCurrentTime(t float64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.position = t
	return nil
}

type skipper struct{ intro, outro int }

func (s *skipper) SkipIntro() bool { s.intro++; return true }
func (s *skipper) SkipOutro() bool { s.outro++; return true }

type pauser struct{ toggles int }

func (p *pauser) TogglePause() error { p.toggles++; return nil }

func labels(indicators []Indicator, active bool) []string {
	return lo.FilterMap(indicators, func(i Indicator, _ int) (string, bool) {
		return i.Label, i.Active == active
	})
}

func TestControls(t *testing.T) {
	Convey("Given the default controls", t, func() {
		controls := Controls(seek.DefaultSpeeds, 10, 30)

		Convey("They are laid out rewind first, forward last", func() {
			So(lo.Map(controls, func(a Affordance, _ int) string { return a.Label }), ShouldResemble, []string{
				"⟲20x", "⟲10x", "⟲5x", "⟲2x", "⟲30", "⟲10", "10⟳", "30⟳", "2x⟳", "5x⟳", "10x⟳", "20x⟳",
			})
		})

		Convey("Idle lights nothing", func() {
			So(labels(Derive(seek.State{}, controls), true), ShouldBeEmpty)
		})

		Convey("Forwarding lights exactly its speed", func() {
			state := seek.State{Direction: seek.Forward, Speed: 5}
			So(labels(Derive(state, controls), true), ShouldResemble, []string{"5x⟳"})
		})

		Convey("Rewinding lights exactly its speed", func() {
			state := seek.State{Direction: seek.Backward, Speed: 20}
			So(labels(Derive(state, controls), true), ShouldResemble, []string{"⟲20x"})
		})

		Convey("Deriving does not touch the input", func() {
			before := len(controls)
			_ = Derive(seek.State{Direction: seek.Forward, Speed: 2}, controls)
			So(controls, ShouldHaveLength, before)
		})
	})
}

func TestKeymap(t *testing.T) {
	Convey("Given the default keymap", t, func() {
		keymap := NewKeymap(Controls(seek.DefaultSpeeds, 10, 30))

		lookup := func(k string) Action {
			a, ok := keymap.Lookup(press(k))
			So(ok, ShouldBeTrue)
			return a
		}

		Convey("Arrows jump", func() {
			So(lookup("right"), ShouldResemble, Action{Kind: Jump, Delta: 10})
			So(lookup("left"), ShouldResemble, Action{Kind: Jump, Delta: -10})
			So(lookup("shift+right"), ShouldResemble, Action{Kind: Jump, Delta: 30})
			So(lookup("shift+left"), ShouldResemble, Action{Kind: Jump, Delta: -30})
		})

		Convey("ctrl+arrows toggle without a speed", func() {
			a := lookup("ctrl+right")
			So(a.Kind, ShouldEqual, Toggle)
			So(a.Direction, ShouldEqual, seek.Forward)
			So(a.Speed.IsAbsent(), ShouldBeTrue)

			So(lookup("ctrl+left").Direction, ShouldEqual, seek.Backward)
		})

		Convey("alt+digits pick a speed", func() {
			for digit, want := range map[string]Action{
				"alt+1": {Kind: Toggle, Direction: seek.Backward, Speed: mo.Some[seek.Speed](2)},
				"alt+4": {Kind: Toggle, Direction: seek.Backward, Speed: mo.Some[seek.Speed](20)},
				"alt+5": {Kind: Toggle, Direction: seek.Forward, Speed: mo.Some[seek.Speed](2)},
				"alt+8": {Kind: Toggle, Direction: seek.Forward, Speed: mo.Some[seek.Speed](20)},
			} {
				got := lookup(digit)
				So(got.Direction, ShouldEqual, want.Direction)
				So(got.Speed.MustGet(), ShouldEqual, want.Speed.MustGet())
			}
		})

		Convey("Skips and pause are bound", func() {
			So(lookup("i").Kind, ShouldEqual, SkipIntro)
			So(lookup("o").Kind, ShouldEqual, SkipOutro)
			So(lookup(" ").Kind, ShouldEqual, TogglePause)
		})

		Convey("Unbound keys miss", func() {
			_, ok := keymap.Lookup(press("z"))
			So(ok, ShouldBeFalse)
		})

		Convey("Help lists every enabled binding", func() {
			So(keymap.Bindings(), ShouldHaveLength, 12+5)
		})
	})

	Convey("Given more than four speeds", t, func() {
		keymap := NewKeymap(Controls([]seek.Speed{1, 2, 5, 10, 20}, 10, 30))

		Convey("The fifth speed has no shortcut", func() {
			So(keymap.Bindings(), ShouldHaveLength, 8+4+5)
		})
	})
}

func TestDispatcher(t *testing.T) {
	Convey("Given a dispatcher over a live session", t, func() {
		m := &media{position: 100}
		manual := clock.NewManual()
		opts := seek.DefaultOptions()
		opts.Scheduler = manual

		seeker := seek.NewSeeker(m)
		ctrl := seek.NewController(seeker, opts)
		Reset(ctrl.Close)

		skip, pause := &skipper{}, &pauser{}
		d := &Dispatcher{Seeker: seeker, Controller: ctrl, Skipper: skip, Pauser: pause}

		Convey("Jumps seek once", func() {
			d.Dispatch(Action{Kind: Jump, Delta: -30})
			So(m.position, ShouldEqual, 70)
		})

		Convey("Toggles drive the controller", func() {
			st := d.Dispatch(Action{Kind: Toggle, Direction: seek.Forward, Speed: mo.Some[seek.Speed](10)})
			So(st.String(), ShouldEqual, "Forwarding(10x)")

			manual.Advance(time.Second)
			So(m.position, ShouldEqual, 110)

			st = d.Dispatch(Action{Kind: Stop})
			So(st.Idle(), ShouldBeTrue)
		})

		Convey("Skips and pause reach their collaborators", func() {
			d.Dispatch(Action{Kind: SkipIntro})
			d.Dispatch(Action{Kind: SkipOutro})
			d.Dispatch(Action{Kind: TogglePause})
			So(skip.intro, ShouldEqual, 1)
			So(skip.outro, ShouldEqual, 1)
			So(pause.toggles, ShouldEqual, 1)
		})

		Convey("Missing collaborators are tolerated", func() {
			bare := &Dispatcher{Seeker: seeker, Controller: ctrl}
			So(func() { bare.Dispatch(Action{Kind: SkipIntro}) }, ShouldNotPanic)
			So(func() { bare.Dispatch(Action{Kind: TogglePause}) }, ShouldNotPanic)
		})
	})
}

func TestSync(t *testing.T) {
	Convey("Given a sync attached to a controller", t, func() {
		manual := clock.NewManual()
		opts := seek.DefaultOptions()
		opts.Scheduler = manual
		ctrl := seek.NewController(seek.NewSeeker(&media{}), opts)
		Reset(ctrl.Close)

		var renders [][]string
		s := &Sync{
			Controller:  ctrl,
			Affordances: Controls(seek.DefaultSpeeds, 10, 30),
			Renderer:    RendererFunc(func(indicators []Indicator) {
				renders = append(renders, labels(indicators, true))
			}),
		}
		s.Start()
		Reset(s.Stop)

		Convey("It renders immediately", func() {
			So(renders, ShouldHaveLength, 1)
			So(renders[0], ShouldBeEmpty)
		})

		Convey("It re-renders on each state change", func() {
			ctrl.Forward(5)
			ctrl.Rewind(2)
			ctrl.Rewind(2)

			So(renders, ShouldHaveLength, 4)
			So(renders[1], ShouldResemble, []string{"5x⟳"})
			So(renders[2], ShouldResemble, []string{"⟲2x"})
			So(renders[3], ShouldBeEmpty)
		})

		Convey("It stops following once stopped", func() {
			s.Stop()
			ctrl.Forward(5)
			So(renders, ShouldHaveLength, 1)
		})

		Convey("Without a resync interval no timer is held", func() {
			So(manual.Pending(), ShouldEqual, 0)
		})
	})

	Convey("Given a sync with a resync interval", t, func() {
		manual := clock.NewManual()
		opts := seek.DefaultOptions()
		opts.Scheduler = manual
		ctrl := seek.NewController(seek.NewSeeker(nil), opts)
		Reset(ctrl.Close)

		var renders int
		s := &Sync{
			Controller: ctrl,
			Renderer:   RendererFunc(func([]Indicator) { renders++ }),
			Resync:     5 * time.Second,
			Scheduler:  manual,
		}
		s.Start()

		Convey("It re-renders periodically until stopped", func() {
			manual.Advance(10 * time.Second)
			So(renders, ShouldEqual, 3)

			s.Stop()
			manual.Advance(10 * time.Second)
			So(renders, ShouldEqual, 3)
		})
	})
}
