package remote

import (
	"sync"

	"github.com/anisan-cli/seaplay/log"
	"github.com/anisan-cli/seaplay/seek"
	"github.com/anisan-cli/seaplay/surface"
	"github.com/anisan-cli/seaplay/transport"
)

// Client applies remote commands to a session and reports its state back.
type Client struct {
	mu          sync.Mutex
	conn        *transport.Conn
	dispatcher  *surface.Dispatcher
	unsubscribe func()
}

// Connect dials addr and starts relaying. It returns at once; the link comes up
// in the background and is re-established by the transport after failures.
func Connect(addr string, dispatcher *surface.Dispatcher, opts transport.Options) *Client {
	c := &Client{dispatcher: dispatcher}

	// handlers may fire before Dial returns
	c.mu.Lock()
	defer c.mu.Unlock()

	c.conn = transport.Dial(addr, transport.Handlers{
		OnOpen:    func() { c.publish(dispatcher.Controller.State()) },
		OnMessage: c.handle,
		OnError: func(err error) {
			log.WithFields(log.Fields{"addr": addr}).Warnf("remote: %s", err)
		},
		OnClose: func(error) {
			log.WithFields(log.Fields{"addr": addr}).Info("remote: disconnected")
		},
	}, opts)

	c.unsubscribe = dispatcher.Controller.Subscribe(c.publish)
	return c
}

func (c *Client) handle(messageType int, data []byte) {
	if messageType != transport.TextMessage {
		return
	}

	action, absolute, err := Parse(data)
	if err != nil {
		log.Warnf("remote: %s", err)
		return
	}

	if t, ok := absolute.Get(); ok {
		c.dispatcher.Seeker.Absolute(t)
		return
	}
	c.dispatcher.Dispatch(action)
}

// publish runs on controller notifications. Send fails fast while the link is down.
func (c *Client) publish(state seek.State) {
	msg := StateMessage{
		Type:      "state",
		Direction: state.Direction.String(),
		Speed:     int(state.Speed),
	}
	if pos, ok := c.dispatcher.Seeker.Position(); ok {
		msg.Position = pos.CurrentTime
		msg.Duration = pos.Duration
	}

	if err := c.link().SendJSON(msg); err != nil {
		log.Debugf("remote: state not sent: %s", err)
	}
}

func (c *Client) link() *transport.Conn {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.conn
}

// Status reports the link state.
func (c *Client) Status() transport.Status {
	return c.link().Status()
}

// Close stops relaying and closes the link.
func (c *Client) Close() error {
	c.mu.Lock()
	unsubscribe := c.unsubscribe
	c.mu.Unlock()

	unsubscribe()
	return c.link().Close()
}
