package seek

import (
	"testing"
	"time"

	"github.com/anisan-cli/seaplay/clock"
	"github.com/samber/mo"
	. "github.com/smartystreets/goconvey/convey"
)

func newTestController(media *fakeMedia, resume ResumePolicy) (*Controller, *clock.Manual) {
	manual := clock.NewManual()
	opts := DefaultOptions()
	opts.Scheduler = manual
	opts.Resume = resume
	return NewController(NewSeeker(media), opts), manual
}

func TestController(t *testing.T) {
	Convey("Given an idle controller over 1000s of media at 100s", t, func() {
		media := newFakeMedia(100, 1000)
		ctrl, manual := newTestController(media, ResumeLastUsed)
		Reset(ctrl.Close)

		So(ctrl.State().Idle(), ShouldBeTrue)
		So(ctrl.State().String(), ShouldEqual, "Idle")

		Convey("Fast-forward moves speed seconds per tick", func() {
			st := ctrl.Forward(5)
			So(st.String(), ShouldEqual, "Forwarding(5x)")

			manual.Advance(3 * time.Second)
			So(media.Position(), ShouldEqual, 115)
		})

		Convey("Rewind moves backwards", func() {
			ctrl.Rewind(10)
			manual.Advance(2 * time.Second)
			So(media.Position(), ShouldEqual, 80)
		})

		Convey("Nothing moves before the first interval elapses", func() {
			ctrl.Forward(20)
			manual.Advance(999 * time.Millisecond)
			So(media.Writes(), ShouldEqual, 0)
		})

		Convey("Activating one direction cancels the other", func() {
			ctrl.Forward(5)
			st := ctrl.Rewind(2)

			So(st, ShouldResemble, State{Direction: Backward, Speed: 2})
			So(manual.Pending(), ShouldEqual, 1)

			manual.Advance(time.Second)
			So(media.Position(), ShouldEqual, 98)
		})

		Convey("Toggling the active direction at the same speed stops it", func() {
			ctrl.Forward(5)
			st := ctrl.Forward(5)

			So(st.Idle(), ShouldBeTrue)
			So(manual.Pending(), ShouldEqual, 0)

			manual.Advance(5 * time.Second)
			So(media.Writes(), ShouldEqual, 0)
		})

		Convey("Toggling the active direction without a speed stops it", func() {
			ctrl.Rewind(10)
			st := ctrl.Toggle(Backward, mo.None[Speed]())
			So(st.Idle(), ShouldBeTrue)
			So(manual.Pending(), ShouldEqual, 0)
		})

		Convey("Toggling forward at 5 three times ends forwarding at 5", func() {
			ctrl.Forward(5)
			ctrl.Forward(5)
			st := ctrl.Forward(5)
			So(st, ShouldResemble, State{Direction: Forward, Speed: 5})
			So(manual.Pending(), ShouldEqual, 1)

			manual.Advance(time.Second)
			So(media.Writes(), ShouldEqual, 1)
			So(media.Position(), ShouldEqual, 105)
		})

		Convey("Switching speed keeps a single timer", func() {
			ctrl.Forward(5)
			st := ctrl.Forward(10)

			So(st, ShouldResemble, State{Direction: Forward, Speed: 10})
			So(manual.Pending(), ShouldEqual, 1)

			manual.Advance(time.Second)
			So(media.Position(), ShouldEqual, 110)
			So(media.Writes(), ShouldEqual, 1)
		})

		Convey("Seeking stops at the bounds while the timer keeps running", func() {
			ctrl.Rewind(20)
			manual.Advance(10 * time.Second)
			So(media.Position(), ShouldEqual, 0)
			So(ctrl.State().Direction, ShouldEqual, Backward)
		})

		Convey("A toggle without a speed resumes the last used speed", func() {
			ctrl.Forward(10)
			ctrl.Stop()
			So(ctrl.Remembered(Forward), ShouldEqual, 10)
			So(ctrl.Remembered(Backward), ShouldEqual, 2)

			st := ctrl.Toggle(Forward, mo.None[Speed]())
			So(st, ShouldResemble, State{Direction: Forward, Speed: 10})
		})

		Convey("A speed outside the set falls back to the remembered speed", func() {
			st := ctrl.Toggle(Forward, mo.Some[Speed](3))
			So(st, ShouldResemble, State{Direction: Forward, Speed: 2})
		})

		Convey("Toggling no direction changes nothing", func() {
			ctrl.Forward(5)
			st := ctrl.Toggle(None, mo.Some[Speed](5))
			So(st, ShouldResemble, State{Direction: Forward, Speed: 5})
		})

		Convey("Close cancels the timer and ignores later toggles", func() {
			ctrl.Forward(5)
			ctrl.Close()

			So(ctrl.State().Idle(), ShouldBeTrue)
			So(manual.Pending(), ShouldEqual, 0)

			manual.Advance(10 * time.Second)
			So(media.Writes(), ShouldEqual, 0)

			ctrl.Rewind(5)
			So(ctrl.State().Idle(), ShouldBeTrue)
			So(manual.Pending(), ShouldEqual, 0)
		})

		Convey("Subscribers see every change", func() {
			var seen []string
			unsubscribe := ctrl.Subscribe(func(st State) { seen = append(seen, st.String()) })

			ctrl.Forward(5)
			ctrl.Rewind(20)
			ctrl.Stop()
			unsubscribe()
			ctrl.Forward(2)

			So(seen, ShouldResemble, []string{"Forwarding(5x)", "Rewinding(20x)", "Idle"})
		})

		Convey("Speeds are reported in ascending order", func() {
			So(ctrl.Speeds(), ShouldResemble, []Speed{2, 5, 10, 20})
		})
	})

	Convey("Given the default resume policy", t, func() {
		media := newFakeMedia(0, 100)
		ctrl, _ := newTestController(media, ResumeDefault)
		Reset(ctrl.Close)

		Convey("A toggle without a speed starts at the default speed", func() {
			ctrl.Forward(20)
			ctrl.Stop()
			st := ctrl.Toggle(Forward, mo.None[Speed]())
			So(st, ShouldResemble, State{Direction: Forward, Speed: 2})
		})
	})

	Convey("Given a tick that was already due when the controller closed", t, func() {
		media := newFakeMedia(50, 100)
		sched := &capturing{}
		opts := DefaultOptions()
		opts.Scheduler = sched
		ctrl := NewController(NewSeeker(media), opts)

		ctrl.Forward(5)
		So(sched.fns, ShouldHaveLength, 1)

		Convey("Running it after Close does not move the position", func() {
			ctrl.Close()
			sched.fns[0]()
			So(media.Writes(), ShouldEqual, 0)
		})

		Convey("Running it after a speed switch does not move the position", func() {
			ctrl.Forward(10)
			sched.fns[0]()
			So(media.Writes(), ShouldEqual, 0)

			sched.fns[1]()
			So(media.Position(), ShouldEqual, 60)
		})
	})

	Convey("Given a tick stuck writing to a slow player", t, func() {
		media := newFakeMedia(50, 100)
		media.entered = make(chan struct{})
		media.release = make(chan struct{})
		ctrl, manual := newTestController(media, ResumeLastUsed)

		ctrl.Forward(5)
		advanced := make(chan struct{})
		go func() {
			manual.Advance(time.Second)
			close(advanced)
		}()
		<-media.entered

		Convey("Toggles and state reads do not wait for it", func() {
			toggled := make(chan State, 1)
			go func() { toggled <- ctrl.Forward(5) }()

			var (
				st       State
				returned bool
			)
			select {
			case st = <-toggled:
				returned = true
			case <-time.After(time.Second):
			}
			So(returned, ShouldBeTrue)
			So(st.Idle(), ShouldBeTrue)
			So(ctrl.State().Idle(), ShouldBeTrue)

			close(media.release)
			<-advanced
			So(media.Position(), ShouldEqual, 55)

			ctrl.Close()
		})

		Convey("Close returns only after the write finishes", func() {
			closed := make(chan struct{})
			go func() {
				ctrl.Close()
				close(closed)
			}()

			select {
			case <-closed:
				So("closed early", ShouldBeEmpty)
			case <-time.After(50 * time.Millisecond):
			}

			close(media.release)
			<-closed
			<-advanced
			So(media.Writes(), ShouldEqual, 1)
		})
	})

	Convey("Given options with junk values", t, func() {
		ctrl := NewController(NewSeeker(nil), Options{
			Speeds:       []Speed{10, -1, 5, 10},
			DefaultSpeed: 7,
			Scheduler:    clock.NewManual(),
		})

		Convey("They are normalized", func() {
			So(ctrl.Speeds(), ShouldResemble, []Speed{5, 10})
			So(ctrl.Remembered(Forward), ShouldEqual, 5)
		})
	})
}

func TestParse(t *testing.T) {
	Convey("Directions parse from their names", t, func() {
		d, err := ParseDirection("Forward")
		So(err, ShouldBeNil)
		So(d, ShouldEqual, Forward)

		d, err = ParseDirection("rewind")
		So(err, ShouldBeNil)
		So(d, ShouldEqual, Backward)

		_, err = ParseDirection("sideways")
		So(err, ShouldNotBeNil)

		So(Forward.Opposite(), ShouldEqual, Backward)
		So(None.Opposite(), ShouldEqual, None)
	})

	Convey("Resume policies parse from config values", t, func() {
		So(ParseResumePolicy("default"), ShouldEqual, ResumeDefault)
		So(ParseResumePolicy("last"), ShouldEqual, ResumeLastUsed)
		So(ParseResumePolicy(""), ShouldEqual, ResumeLastUsed)
	})
}
