package tui

import (
	"time"

	"github.com/anisan-cli/seaplay/player"
	"github.com/anisan-cli/seaplay/seek"
	"github.com/anisan-cli/seaplay/surface"
	"github.com/anisan-cli/seaplay/util"
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/lipgloss"
)

var paddingStyle = lipgloss.NewStyle().Padding(1, 2)

// bubble is the control panel model.
type bubble struct {
	options *Options
	keymap  *keymap

	progressC progress.Model
	helpC     help.Model
	notifier  *notifier

	indicators []surface.Indicator
	state      seek.State
	position   seek.PlaybackPosition
	positioned bool
	paused     bool
	prompt     player.Prompt
	exited     bool

	width, height int
}

func newBubble(options *Options) *bubble {
	if options.Poll <= 0 {
		options.Poll = time.Second
	}

	b := &bubble{
		options:   options,
		keymap:    newKeymap(surface.NewKeymap(options.Affordances)),
		progressC: progress.New(progress.WithDefaultGradient(), progress.WithoutPercentage()),
		helpC:     help.New(),
		notifier:  &notifier{},
	}

	b.refreshControls()

	if width, height, err := util.TerminalSize(); err == nil {
		b.resize(width, height)
	}
	return b
}

func (b *bubble) resize(width, height int) {
	x, y := paddingStyle.GetFrameSize()
	b.width = width - x
	b.height = height - y
	b.progressC.Width = b.width
	b.helpC.Width = b.width
}
