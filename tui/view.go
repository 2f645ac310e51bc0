package tui

import (
	"fmt"
	"strings"

	"github.com/anisan-cli/seaplay/color"
	"github.com/anisan-cli/seaplay/icon"
	"github.com/anisan-cli/seaplay/seek"
	"github.com/anisan-cli/seaplay/style"
	"github.com/anisan-cli/seaplay/surface"
	"github.com/anisan-cli/seaplay/transport"
	"github.com/anisan-cli/seaplay/util"
	"github.com/charmbracelet/lipgloss"
	"github.com/samber/lo"
)

var (
	activeControl   = style.Tag(style.Base, style.AccentColor)
	inactiveControl = lipgloss.NewStyle().Padding(0, 1).Foreground(style.Subtext).Render
	skipPrompt      = style.Tag(style.Base, style.WarningColor)
)

func (b *bubble) View() string {
	lines := []string{
		b.viewHeader(),
		"",
		b.viewStatus(),
		b.viewProgress(),
		"",
		b.viewControls(),
	}

	if prompts := b.viewPrompts(); prompts != "" {
		lines = append(lines, "", prompts)
	}

	return b.renderLines(lines)
}

func (b *bubble) viewHeader() string {
	title := b.options.Title
	if title == "" {
		title = "seaplay"
	}
	header := style.Title(title)

	if b.options.Link != nil {
		switch b.options.Link.Status() {
		case transport.Open:
			header += " " + style.Fg(color.Green)(icon.Get(icon.Remote)+" remote")
		case transport.Closed:
		default:
			header += " " + style.Faint(icon.Get(icon.Offline)+" remote "+b.options.Link.Status().String())
		}
	}
	return header
}

func (b *bubble) viewStatus() string {
	var status string
	switch b.state.Direction {
	case seek.Forward:
		status = style.Fg(style.AccentColor)(icon.Get(icon.Forward) + " " + b.state.String())
	case seek.Backward:
		status = style.Fg(style.AccentColor)(icon.Get(icon.Rewind) + " " + b.state.String())
	default:
		status = style.Faint(b.state.String())
	}

	if b.paused {
		status += "  " + style.Fg(style.WarningColor)("paused")
	}
	return status
}

func (b *bubble) viewProgress() string {
	if !b.positioned {
		return style.Faint(icon.Get(icon.Progress) + " waiting for the player")
	}

	clock := fmt.Sprintf("%s / %s", util.ClockTime(b.position.CurrentTime), util.ClockTime(b.position.Duration))
	if !b.position.Known() {
		return clock
	}

	return b.progressC.ViewAs(b.position.CurrentTime/b.position.Duration) + "\n" + clock
}

// viewControls draws the indicators. The active speed shows the pause glyph,
// since pressing it again stops continuous seek.
func (b *bubble) viewControls() string {
	return strings.Join(lo.Map(b.indicators, func(ind surface.Indicator, _ int) string {
		if ind.Active {
			return activeControl(icon.Get(icon.Active) + " " + ind.Label)
		}
		return inactiveControl(ind.Label)
	}), " ")
}

func (b *bubble) viewPrompts() string {
	var prompts []string
	if b.prompt.Intro {
		prompts = append(prompts, skipPrompt(icon.Get(icon.Skip)+" Skip intro [i]"))
	}
	if b.prompt.Outro {
		prompts = append(prompts, skipPrompt(icon.Get(icon.Skip)+" Skip outro [o]"))
	}
	return strings.Join(prompts, " ")
}

func (b *bubble) renderLines(lines []string) string {
	body := strings.Join(lines, "\n")
	if h := lipgloss.Height(body) + 1; b.height > h {
		body += strings.Repeat("\n", b.height-h)
	}

	footer := b.helpC.View(b.keymap)
	if note := b.notifier.View(); note != "" {
		footer += "  " + note
	}

	return paddingStyle.Render(body + "\n" + footer)
}
