// Package tui provides the terminal control panel shown while a video plays.
package tui

import (
	"time"

	"github.com/anisan-cli/seaplay/history"
	"github.com/anisan-cli/seaplay/player"
	"github.com/anisan-cli/seaplay/surface"
	"github.com/anisan-cli/seaplay/transport"
	tea "github.com/charmbracelet/bubbletea"
)

// Link is a remote control connection whose status is shown in the panel.
type Link interface {
	Status() transport.Status
}

// Options encapsulates the runtime configuration for the control panel.
type Options struct {
	Title       string
	Player      player.Player
	Dispatcher  *surface.Dispatcher
	Affordances []surface.Affordance

	// Optional collaborators.
	Skipper *player.Skipper
	Tracker *history.Tracker
	Link    Link

	// Poll is how often the playback position is read. Defaults to one second.
	Poll time.Duration

	// Resync forces a periodic redraw of the controls when positive.
	Resync time.Duration
}

// Run shows the control panel until the user quits or the player exits.
func Run(options *Options) error {
	bubble := newBubble(options)
	program := tea.NewProgram(bubble, tea.WithAltScreen())

	sync := &surface.Sync{
		Controller:  options.Dispatcher.Controller,
		Affordances: options.Affordances,
		Resync:      options.Resync,
		// Send blocks until the program reads the message, and listeners
		// are called from the controller's goroutines.
		Renderer: surface.RendererFunc(func([]surface.Indicator) {
			go program.Send(controlsChangedMsg{})
		}),
	}
	sync.Start()
	defer sync.Stop()

	_, err := program.Run()

	if options.Tracker != nil {
		options.Tracker.Flush()
	}
	return err
}
