package cmd

import (
	"fmt"
	"os/exec"
	"runtime"

	"github.com/anisan-cli/seaplay/constant"
	"github.com/anisan-cli/seaplay/icon"
	"github.com/anisan-cli/seaplay/style"
	"github.com/charmbracelet/lipgloss"
)

// errMissingDependency is returned after the install hint has been printed.
type errMissingDependency string

func (e errMissingDependency) Error() string {
	return fmt.Sprintf("%s not found in PATH", string(e))
}

// checkDependencies verifies that the executable behind the selected player is installed.
func checkDependencies(playerName string) error {
	bin := "mpv"
	if playerName == "iina" {
		bin = "open"
	}

	if _, err := exec.LookPath(bin); err != nil {
		printMissingDependency(bin)
		return errMissingDependency(bin)
	}
	return nil
}

func installHint(dep string) string {
	switch runtime.GOOS {
	case constant.Darwin:
		return "brew install " + dep
	case constant.Linux:
		return "sudo apt install " + dep
	case constant.Windows:
		return "scoop install " + dep
	default:
		return ""
	}
}

func printMissingDependency(dep string) {
	box := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(style.HiRed).
		Padding(1, 2).
		Margin(1, 0)

	title := style.New().Bold(true).Foreground(style.HiRed).Render(fmt.Sprintf("%s Error: Missing Dependency", icon.Get(icon.Fail)))
	body := style.New().Foreground(style.Text).Render(fmt.Sprintf("The required dependency '%s' was not found in your PATH.", dep))

	suggestion := ""
	if hint := installHint(dep); hint != "" {
		suggestion = fmt.Sprintf("\n\nTo install it, try running:\n  %s", style.New().Foreground(style.AccentColor).Bold(true).Render(hint))
	}

	fmt.Println(box.Render(lipgloss.JoinVertical(lipgloss.Left, title, "\n", body, suggestion)))
}
