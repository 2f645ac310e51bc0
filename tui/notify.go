package tui

import (
	"time"

	"github.com/anisan-cli/seaplay/style"
	tea "github.com/charmbracelet/bubbletea"
)

// notification is shown next to the help line until it expires.
type notification string

type clearNotificationMsg struct{ id int }

const notificationTTL = 3 * time.Second

// notifier displays short-lived status messages.
type notifier struct {
	text string
	id   int
}

func notify(text string) tea.Cmd {
	return func() tea.Msg { return notification(text) }
}

func (n *notifier) Update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case notification:
		n.text = string(msg)
		n.id++
		id := n.id
		return tea.Tick(notificationTTL, func(time.Time) tea.Msg {
			return clearNotificationMsg{id: id}
		})
	case clearNotificationMsg:
		// a newer notification replaced the one this timer was for
		if msg.id == n.id {
			n.text = ""
		}
	}
	return nil
}

func (n *notifier) View() string {
	if n.text == "" {
		return ""
	}
	return style.Faint(n.text)
}
