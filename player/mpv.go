package player

import (
	"crypto/rand"
	"errors"
	"fmt"
	"net"
	"net/url"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"

	"github.com/anisan-cli/seaplay/constant"
	"github.com/anisan-cli/seaplay/log"
	"github.com/anisan-cli/seaplay/where"
)

const (
	socketWaitRetries = 10
	socketWaitDelay   = 300 * time.Millisecond
)

// MPV is an mpv process controlled through --input-ipc-server.
type MPV struct {
	ipc    *ipc
	cmd    *exec.Cmd
	exited chan struct{}
}

func NewMPV() *MPV {
	return &MPV{
		ipc:    &ipc{},
		exited: make(chan struct{}),
	}
}

// Play launches mpv on target and waits for its IPC socket.
func (m *MPV) Play(target, title string, headers map[string]string) error {
	safeTarget, err := sanitizeMediaTarget(target)
	if err != nil {
		return fmt.Errorf("invalid media target: %w", err)
	}

	if m.ipc.path == "" {
		randomBytes := make([]byte, 4)
		if _, err := rand.Read(randomBytes); err != nil {
			return fmt.Errorf("generate socket name: %w", err)
		}
		m.ipc.path = filepath.Join(where.Temp(), fmt.Sprintf("%s-%x.sock", constant.Seaplay, randomBytes))
	}

	m.cmd = exec.Command("mpv", mpvArgs(m.ipc.path, safeTarget, sanitizeTitle(title), headers)...)
	m.cmd.SysProcAttr = sysProcAttr()

	if err := m.cmd.Start(); err != nil {
		return fmt.Errorf("start mpv: %w", err)
	}

	m.exited = make(chan struct{})
	go func() {
		_ = m.cmd.Wait()
		close(m.exited)
	}()

	if err := m.waitForSocket(); err != nil {
		select {
		case <-m.exited:
		default:
			log.Warnf("killing mpv: socket never became ready")
			_ = killProcess(m.cmd)
		}
		return fmt.Errorf("mpv socket not ready: %w", err)
	}

	log.WithFields(log.Fields{"socket": m.ipc.path, "pid": m.cmd.Process.Pid}).Info("mpv started")
	return nil
}

// mpvArgs leaves video output and hwdec to the user's mpv.conf.
func mpvArgs(socket, target, title string, headers map[string]string) []string {
	args := []string{
		"--no-terminal",
		"--really-quiet",
		"--input-ipc-server=" + socket,
		"--force-media-title=" + title,
		"--title=" + title,
		"--force-window=yes",
		"--keep-open=yes",
	}

	if len(headers) > 0 {
		fields := make([]string, 0, len(headers))
		for k, v := range headers {
			fields = append(fields, fmt.Sprintf("%s: %s", k, strings.ReplaceAll(v, ",", "%2C")))
		}
		args = append(args, "--http-header-fields="+strings.Join(fields, ","))
	}

	return append(args, target)
}

func (m *MPV) Wait() <-chan struct{} {
	return m.exited
}

func (m *MPV) waitForSocket() error {
	for i := 0; i < socketWaitRetries; i++ {
		time.Sleep(socketWaitDelay)

		select {
		case <-m.exited:
			return errors.New("mpv exited before socket was ready")
		default:
		}

		conn, err := net.Dial("unix", m.ipc.path)
		if err == nil {
			conn.Close()
			return nil
		}
	}
	return fmt.Errorf("socket %s not ready after %d attempts", m.ipc.path, socketWaitRetries)
}

// CurrentTime reads time-pos.
func (m *MPV) CurrentTime() (float64, error) {
	return m.float("time-pos")
}

// Duration reads duration. Live streams report none.
func (m *MPV) Duration() (float64, error) {
	return m.float("duration")
}

// SetCurrentTime seeks to an absolute position.
func (m *MPV) SetCurrentTime(seconds float64) error {
	_, err := m.ipc.send("seek", seconds, "absolute")
	return err
}

func (m *MPV) Paused() (bool, error) {
	data, err := m.ipc.send("get_property", "pause")
	if err != nil {
		return false, err
	}
	paused, _ := data.(bool)
	return paused, nil
}

func (m *MPV) TogglePause() error {
	_, err := m.ipc.send("cycle", "pause")
	return err
}

func (m *MPV) SetChapters(chapters []Chapter) error {
	_, err := m.ipc.send("set_property", "chapter-list", chapters)
	return err
}

func (m *MPV) Controllable() bool {
	return true
}

// Running reports whether mpv answers on its socket.
func (m *MPV) Running() bool {
	if m.ipc.path == "" {
		return false
	}

	select {
	case <-m.exited:
		return false
	default:
	}

	_, err := m.ipc.send("get_property", "pid")
	return err == nil
}

// Close asks mpv to quit, kills it after 3s, and removes the socket.
func (m *MPV) Close() error {
	if m.ipc.path == "" {
		return nil
	}

	_, _ = m.ipc.send("quit")

	if m.cmd != nil {
		select {
		case <-m.exited:
		case <-time.After(3 * time.Second):
			_ = killProcess(m.cmd)
		}
	}

	_ = os.Remove(m.ipc.path)
	return nil
}

func (m *MPV) float(name string) (float64, error) {
	data, err := m.ipc.send("get_property", name)
	if err != nil {
		return 0, err
	}

	val, ok := data.(float64)
	if !ok {
		return 0, fmt.Errorf("property %s: expected number, got %T", name, data)
	}
	return val, nil
}

// sanitizeMediaTarget rejects anything mpv could read as a flag or an unexpected protocol.
func sanitizeMediaTarget(link string) (string, error) {
	l := strings.TrimSpace(link)
	if l == "" {
		return "", errors.New("empty URL")
	}

	if strings.ContainsAny(l, "\x00\n\r") {
		return "", errors.New("invalid control characters in URL")
	}

	if strings.HasPrefix(l, "-") {
		return "", errors.New("url must not start with '-' (looks like a flag)")
	}

	if strings.Contains(l, "://") {
		u, err := url.Parse(l)
		if err != nil {
			return "", fmt.Errorf("invalid URL: %w", err)
		}
		switch strings.ToLower(u.Scheme) {
		case "http", "https":
			return l, nil
		default:
			return "", fmt.Errorf("unsupported URL scheme: %s", u.Scheme)
		}
	}

	return filepath.Clean(l), nil
}

func sanitizeTitle(title string) string {
	t := strings.NewReplacer("\n", " ", "\r", " ", "\t", " ", "\x00", "").Replace(title)
	return strings.TrimSpace(t)
}
