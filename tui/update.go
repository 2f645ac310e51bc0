package tui

import (
	"time"

	"github.com/anisan-cli/seaplay/seek"
	"github.com/anisan-cli/seaplay/surface"
	bubblesKey "github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

// controlsChangedMsg asks for the controls to be derived again from the controller.
// It carries no state, so the order in which these arrive does not matter.
type controlsChangedMsg struct{}

// positionMsg is the result of polling the player.
type positionMsg struct {
	position seek.PlaybackPosition
	ok       bool
	paused   bool

	// polled is set on reads from the polling loop, which reschedules itself.
	polled bool
}

type exitedMsg struct{}

func (b *bubble) Init() tea.Cmd {
	return tea.Batch(
		func() tea.Msg { return b.sample(true) },
		b.waitForExit(),
	)
}

func (b *bubble) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	cmd := b.notifier.Update(msg)

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		b.resize(msg.Width, msg.Height)
	case controlsChangedMsg:
		b.refreshControls()
	case positionMsg:
		b.observe(msg)
		if msg.polled {
			return b, tea.Batch(cmd, b.poll())
		}
	case exitedMsg:
		b.exited = true
		return b, tea.Quit
	case tea.KeyMsg:
		return b, tea.Batch(cmd, b.handleKey(msg))
	}

	return b, cmd
}

func (b *bubble) handleKey(msg tea.KeyMsg) tea.Cmd {
	switch {
	case bubblesKey.Matches(msg, b.keymap.forceQuit), bubblesKey.Matches(msg, b.keymap.quit):
		b.options.Dispatcher.Controller.Stop()
		return tea.Quit
	case bubblesKey.Matches(msg, b.keymap.showHelp):
		b.helpC.ShowAll = !b.helpC.ShowAll
		return nil
	}

	action, ok := b.keymap.player.Lookup(msg)
	if !ok {
		return nil
	}

	var note tea.Cmd
	switch action.Kind {
	case surface.SkipIntro:
		if !b.prompt.Intro {
			return nil
		}
		note = notify("Skipped intro")
	case surface.SkipOutro:
		if !b.prompt.Outro {
			return nil
		}
		note = notify("Skipped outro")
	}

	b.options.Dispatcher.Dispatch(action)
	b.refreshControls()
	return tea.Batch(note, b.readPosition())
}

func (b *bubble) refreshControls() {
	b.state = b.options.Dispatcher.Controller.State()
	b.indicators = surface.Derive(b.state, b.options.Affordances)
}

// observe feeds a polled position to the skip prompt and the history tracker.
func (b *bubble) observe(msg positionMsg) {
	b.paused = msg.paused
	if !msg.ok {
		return
	}

	b.position = msg.position
	b.positioned = true

	if b.options.Skipper != nil {
		b.prompt = b.options.Skipper.Check(msg.position.CurrentTime)
	}
	if b.options.Tracker != nil && msg.position.Known() {
		b.options.Tracker.Observe(msg.position.CurrentTime, msg.position.Duration)
	}
}

// poll schedules the next position read.
func (b *bubble) poll() tea.Cmd {
	return tea.Tick(b.options.Poll, func(time.Time) tea.Msg {
		return b.sample(true)
	})
}

// readPosition reads the position now.
func (b *bubble) readPosition() tea.Cmd {
	return func() tea.Msg {
		return b.sample(false)
	}
}

func (b *bubble) sample(polled bool) positionMsg {
	msg := positionMsg{polled: polled}
	msg.position, msg.ok = b.options.Dispatcher.Seeker.Position()

	if p := b.options.Player; p != nil && p.Controllable() {
		msg.paused, _ = p.Paused()
	}
	return msg
}

func (b *bubble) waitForExit() tea.Cmd {
	if b.options.Player == nil {
		return nil
	}
	exited := b.options.Player.Wait()
	return func() tea.Msg {
		<-exited
		return exitedMsg{}
	}
}
