package surface

import (
	"fmt"

	"github.com/anisan-cli/seaplay/seek"
	"github.com/charmbracelet/bubbles/key"
	"github.com/samber/mo"
)

// Keymap binds key presses to actions. The first matching binding wins.
type Keymap struct {
	entries []entry
}

type entry struct {
	binding key.Binding
	action  Action
}

// NewKeymap binds every affordance plus the fixed player keys:
// ctrl+right/left resume continuous seek, i/o skip intro/outro, space pauses.
func NewKeymap(affordances []Affordance) *Keymap {
	k := &Keymap{}

	for _, a := range affordances {
		k.Bind(a.Binding, a.Action)
	}

	k.Bind(
		key.NewBinding(key.WithKeys("ctrl+right"), key.WithHelp("ctrl+→", "fast-forward")),
		Action{Kind: Toggle, Direction: seek.Forward, Speed: mo.None[seek.Speed]()},
	)
	k.Bind(
		key.NewBinding(key.WithKeys("ctrl+left"), key.WithHelp("ctrl+←", "rewind")),
		Action{Kind: Toggle, Direction: seek.Backward, Speed: mo.None[seek.Speed]()},
	)
	k.Bind(key.NewBinding(key.WithKeys("i"), key.WithHelp("i", "skip intro")), Action{Kind: SkipIntro})
	k.Bind(key.NewBinding(key.WithKeys("o"), key.WithHelp("o", "skip outro")), Action{Kind: SkipOutro})
	k.Bind(key.NewBinding(key.WithKeys(" ", "p"), key.WithHelp("space", "pause")), Action{Kind: TogglePause})

	return k
}

// Bind adds a binding. Disabled bindings are kept for help but never match.
func (k *Keymap) Bind(b key.Binding, a Action) {
	k.entries = append(k.entries, entry{binding: b, action: a})
}

// Lookup returns the action bound to a key press such as tea.KeyMsg.
func (k *Keymap) Lookup(press fmt.Stringer) (Action, bool) {
	for _, e := range k.entries {
		if key.Matches(press, e.binding) {
			return e.action, true
		}
	}
	return Action{}, false
}

// Bindings returns the enabled bindings in registration order, for help views.
func (k *Keymap) Bindings() []key.Binding {
	var bindings []key.Binding
	for _, e := range k.entries {
		if e.binding.Enabled() {
			bindings = append(bindings, e.binding)
		}
	}
	return bindings
}
