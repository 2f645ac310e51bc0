package remote

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/anisan-cli/seaplay/clock"
	"github.com/anisan-cli/seaplay/seek"
	"github.com/anisan-cli/seaplay/surface"
	"github.com/anisan-cli/seaplay/transport"
	"github.com/gorilla/websocket"
	. "github.com/smartystreets/goconvey/convey"
)

type media struct {
	mu       sync.Mutex
	position float64
}

func (m *media) CurrentTime() (float64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.position, nil
}

func (m *media) Duration() (float64, error) { return 1400, nil }

func (m *media) SetCurrentTime(t float64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.position = t
	return nil
}

func (m *media) Position() float64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.position
}

// peer is the remote end: it records state messages and can push commands.
type peer struct {
	server *httptest.Server
	conns  chan *websocket.Conn
	states chan StateMessage
}

func newPeer() *peer {
	p := &peer{conns: make(chan *websocket.Conn, 1), states: make(chan StateMessage, 16)}
	upgrader := websocket.Upgrader{}

	p.server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ws, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			return
		}
		p.conns <- ws
		for {
			_, data, err := ws.ReadMessage()
			if err != nil {
				return
			}
			var msg StateMessage
			if json.Unmarshal(data, &msg) == nil {
				p.states <- msg
			}
		}
	}))
	return p
}

func (p *peer) addr() string {
	return "ws" + strings.TrimPrefix(p.server.URL, "http")
}

func (p *peer) next() StateMessage {
	select {
	case msg := <-p.states:
		return msg
	case <-time.After(2 * time.Second):
		return StateMessage{Type: "timeout"}
	}
}

func TestClient(t *testing.T) {
	Convey("Given a session connected to a remote", t, func() {
		p := newPeer()
		Reset(p.server.Close)

		m := &media{position: 100}
		manual := clock.NewManual()
		opts := seek.DefaultOptions()
		opts.Scheduler = manual
		seeker := seek.NewSeeker(m)
		ctrl := seek.NewController(seeker, opts)
		Reset(ctrl.Close)

		client := Connect(p.addr(), &surface.Dispatcher{Seeker: seeker, Controller: ctrl}, transport.DefaultOptions())
		Reset(func() { _ = client.Close() })

		var ws *websocket.Conn
		select {
		case ws = <-p.conns:
		case <-time.After(2 * time.Second):
		}
		So(ws != nil, ShouldBeTrue)

		Convey("The remote first receives the idle state", func() {
			msg := p.next()
			So(msg.Type, ShouldEqual, "state")
			So(msg.Direction, ShouldEqual, "none")
			So(msg.Position, ShouldEqual, 100)
			So(msg.Duration, ShouldEqual, 1400)
		})

		Convey("A toggle command starts fast-forward", func() {
			So(p.next().Direction, ShouldEqual, "none")
			So(ws.WriteMessage(websocket.TextMessage, []byte(`{"type":"toggle","direction":"forward","speed":10}`)), ShouldBeNil)

			msg := p.next()
			So(msg.Direction, ShouldEqual, "forward")
			So(msg.Speed, ShouldEqual, 10)
			So(ctrl.State(), ShouldResemble, seek.State{Direction: seek.Forward, Speed: 10})

			manual.Advance(2 * time.Second)
			So(m.Position(), ShouldEqual, 120)
		})

		Convey("Seek commands move the position", func() {
			So(p.next().Direction, ShouldEqual, "none")
			So(ws.WriteMessage(websocket.TextMessage, []byte(`{"type":"seek_to","time":5000}`)), ShouldBeNil)

			deadline := time.Now().Add(2 * time.Second)
			for m.Position() != 1400 && time.Now().Before(deadline) {
				time.Sleep(time.Millisecond)
			}
			So(m.Position(), ShouldEqual, 1400)
		})
	})
}

func TestParse(t *testing.T) {
	Convey("Commands parse into actions", t, func() {
		a, abs, err := Parse([]byte(`{"type":"seek","delta":-30}`))
		So(err, ShouldBeNil)
		So(abs.IsAbsent(), ShouldBeTrue)
		So(a, ShouldResemble, surface.Action{Kind: surface.Jump, Delta: -30})

		_, abs, err = Parse([]byte(`{"type":"seek_to","time":0}`))
		So(err, ShouldBeNil)
		So(abs.MustGet(), ShouldEqual, 0)

		a, _, err = Parse([]byte(`{"type":"toggle","direction":"rewind"}`))
		So(err, ShouldBeNil)
		So(a.Kind, ShouldEqual, surface.Toggle)
		So(a.Direction, ShouldEqual, seek.Backward)
		So(a.Speed.IsAbsent(), ShouldBeTrue)

		a, _, err = Parse([]byte(`{"type":"skip","target":"ed"}`))
		So(err, ShouldBeNil)
		So(a.Kind, ShouldEqual, surface.SkipOutro)

		a, _, err = Parse([]byte(`{"type":"stop"}`))
		So(err, ShouldBeNil)
		So(a.Kind, ShouldEqual, surface.Stop)
	})

	Convey("Malformed commands are rejected", t, func() {
		for _, raw := range []string{
			`{"type":"seek"}`,
			`{"type":"seek_to"}`,
			`{"type":"toggle","direction":"up"}`,
			`{"type":"skip","target":"credits"}`,
			`{"type":"eject"}`,
			`not json`,
		} {
			_, _, err := Parse([]byte(raw))
			So(err, ShouldNotBeNil)
		}
	})
}
