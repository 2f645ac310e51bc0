package player

import (
	"errors"
	"fmt"
	"os/exec"
	"strings"
)

var errNotControllable = errors.New("not supported by iina")

// IINA hands the target to the macOS IINA app. It exposes no IPC,
// so every control is unsupported.
type IINA struct {
	cmd    *exec.Cmd
	exited chan struct{}
}

func NewIINA() *IINA {
	return &IINA{exited: make(chan struct{})}
}

func (p *IINA) Play(target, title string, headers map[string]string) error {
	safeTarget, err := sanitizeMediaTarget(target)
	if err != nil {
		return fmt.Errorf("invalid media target: %w", err)
	}

	args := []string{"-W", "-a", "IINA", "--args", "--mpv-force-media-title=" + sanitizeTitle(title)}
	if len(headers) > 0 {
		fields := make([]string, 0, len(headers))
		for k, v := range headers {
			fields = append(fields, fmt.Sprintf("%s: %s", k, v))
		}
		args = append(args, "--mpv-http-header-fields="+strings.Join(fields, ","))
	}
	args = append(args, safeTarget)

	p.cmd = exec.Command("open", args...)
	if err := p.cmd.Start(); err != nil {
		return fmt.Errorf("launch iina: %w", err)
	}

	go func() {
		_ = p.cmd.Wait()
		close(p.exited)
	}()
	return nil
}

func (p *IINA) Wait() <-chan struct{} {
	return p.exited
}

func (p *IINA) CurrentTime() (float64, error) { return 0, errNotControllable }
func (p *IINA) Duration() (float64, error)    { return 0, errNotControllable }
func (p *IINA) SetCurrentTime(float64) error  { return errNotControllable }
func (p *IINA) TogglePause() error            { return errNotControllable }
func (p *IINA) Paused() (bool, error)         { return false, errNotControllable }
func (p *IINA) SetChapters([]Chapter) error   { return errNotControllable }
func (p *IINA) Controllable() bool            { return false }

func (p *IINA) Close() error {
	if p.cmd != nil && p.cmd.Process != nil {
		_ = p.cmd.Process.Kill()
	}
	return nil
}
