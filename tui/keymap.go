package tui

import (
	"github.com/anisan-cli/seaplay/surface"
	"github.com/charmbracelet/bubbles/key"
	"github.com/samber/lo"
)

// keymap pairs the player bindings with the panel's own keys.
type keymap struct {
	player *surface.Keymap

	quit, forceQuit, showHelp key.Binding
}

func newKeymap(player *surface.Keymap) *keymap {
	return &keymap{
		player: player,
		quit: key.NewBinding(
			key.WithKeys("q"),
			key.WithHelp("q", "quit"),
		),
		forceQuit: key.NewBinding(
			key.WithKeys("ctrl+c", "ctrl+d"),
			key.WithHelp("ctrl+c", "quit"),
		),
		showHelp: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "help"),
		),
	}
}

func (k *keymap) ShortHelp() []key.Binding {
	short := []key.Binding{k.showHelp, k.quit}
	for _, b := range k.player.Bindings() {
		switch b.Help().Key {
		case "ctrl+→", "ctrl+←", "space", "left", "right":
			short = append(short, b)
		}
	}
	return short
}

func (k *keymap) FullHelp() [][]key.Binding {
	bindings := append(k.player.Bindings(), k.showHelp, k.quit, k.forceQuit)
	return lo.Chunk(bindings, 5)
}
