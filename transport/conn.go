// Package transport keeps a duplex WebSocket link alive.
//
// A Conn is a stable facade over a replaceable socket: callers register handlers once,
// and the facade re-dials the same address after failures with bounded attempts.
package transport

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/anisan-cli/seaplay/clock"
	"github.com/anisan-cli/seaplay/log"
	"github.com/gorilla/websocket"
)

var (
	ErrNotConnected = errors.New("transport: not connected")
	ErrClosed       = errors.New("transport: closed")
)

// Message types, matching RFC 6455 opcodes.
const (
	TextMessage   = websocket.TextMessage
	BinaryMessage = websocket.BinaryMessage
)

// Handlers receive connection events. Any of them may be nil.
// They outlive individual sockets: a reconnected socket reports to the same handlers.
type Handlers struct {
	OnOpen    func()
	OnClose   func(err error)
	OnMessage func(messageType int, data []byte)
	OnError   func(err error)
}

type Options struct {
	MaxAttempts int
	Backoff     Backoff
	DialTimeout time.Duration
	Dialer      Dialer
	Scheduler   clock.Scheduler
}

// DefaultOptions allows 5 attempts, 2s apart.
func DefaultOptions() Options {
	return Options{
		MaxAttempts: 5,
		Backoff:     Fixed(2 * time.Second),
		DialTimeout: 10 * time.Second,
		Dialer:      WebsocketDialer{},
		Scheduler:   clock.System,
	}
}

func (o Options) normalized() Options {
	def := DefaultOptions()
	if o.MaxAttempts < 0 {
		o.MaxAttempts = 0
	}
	if o.Backoff == nil {
		o.Backoff = def.Backoff
	}
	if o.DialTimeout <= 0 {
		o.DialTimeout = def.DialTimeout
	}
	if o.Dialer == nil {
		o.Dialer = def.Dialer
	}
	if o.Scheduler == nil {
		o.Scheduler = def.Scheduler
	}
	return o
}

// Status is the connection lifecycle as seen by callers.
type Status int

const (
	Connecting Status = iota
	Open
	Disconnected
	Closed
)

func (s Status) String() string {
	switch s {
	case Connecting:
		return "connecting"
	case Open:
		return "open"
	case Disconnected:
		return "disconnected"
	default:
		return "closed"
	}
}

type Conn struct {
	addr     string
	handlers Handlers
	opts     Options

	mu           sync.Mutex
	socket       Socket
	generation   uint64
	attempts     int
	reconnecting bool
	pending      clock.Timer
	status       Status
	closed       bool

	writeMu sync.Mutex
}

// Dial returns immediately; the first socket is opened asynchronously and reported
// through OnOpen, or through OnError and OnClose followed by reconnect attempts.
func Dial(addr string, handlers Handlers, opts Options) *Conn {
	c := &Conn{
		addr:     addr,
		handlers: handlers,
		opts:     opts.normalized(),
		status:   Connecting,
	}

	c.mu.Lock()
	c.pending = c.opts.Scheduler.AfterFunc(0, func() { c.open(true) })
	c.mu.Unlock()

	return c
}

func (c *Conn) Addr() string {
	return c.addr
}

func (c *Conn) Status() Status {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.status
}

// Attempts reports reconnect attempts made since the last successful open.
func (c *Conn) Attempts() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.attempts
}

// Reconnecting reports whether a reconnect attempt is scheduled or dialing.
func (c *Conn) Reconnecting() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.reconnecting
}

// Send writes one message to the current socket.
func (c *Conn) Send(messageType int, data []byte) error {
	c.mu.Lock()
	closed, sock := c.closed, c.socket
	c.mu.Unlock()

	if closed {
		return ErrClosed
	}
	if sock == nil {
		return ErrNotConnected
	}

	c.writeMu.Lock()
	defer c.writeMu.Unlock()
	if err := sock.WriteMessage(messageType, data); err != nil {
		return fmt.Errorf("transport: write: %w", err)
	}
	return nil
}

// SendJSON encodes v and sends it as a text message.
func (c *Conn) SendJSON(v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return err
	}
	return c.Send(TextMessage, data)
}

// Close cancels any scheduled reconnect and closes the socket.
// Handlers not yet started when Close runs never start; one already running may
// still be returning after Close does. Handlers may call Close.
// It is safe to call more than once.
func (c *Conn) Close() error {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return nil
	}
	c.closed = true
	c.status = Closed
	c.reconnecting = false
	c.generation++
	if c.pending != nil {
		c.pending.Stop()
		c.pending = nil
	}
	sock := c.socket
	c.socket = nil
	c.mu.Unlock()

	if sock == nil {
		return nil
	}

	c.writeMu.Lock()
	_ = sock.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
	c.writeMu.Unlock()
	return sock.Close()
}

// open dials a socket. The first dial reports failure to the handlers;
// later dials are reconnect attempts whose failures are only logged.
func (c *Conn) open(initial bool) {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return
	}
	c.pending = nil
	c.mu.Unlock()

	ctx, cancel := context.WithTimeout(context.Background(), c.opts.DialTimeout)
	sock, err := c.opts.Dialer.Dial(ctx, c.addr)
	cancel()

	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		if sock != nil {
			_ = sock.Close()
		}
		return
	}

	if err != nil {
		c.status = Disconnected
		gen := c.generation

		if initial {
			c.mu.Unlock()
			log.WithFields(log.Fields{"addr": c.addr}).Warnf("transport: dial failed: %s", err)
			c.dispatch(gen, func() { c.fire(c.handlers.OnError, err) })
			c.dispatch(gen, func() { c.fire(c.handlers.OnClose, err) })
			c.mu.Lock()
		} else {
			log.WithFields(log.Fields{"addr": c.addr, "attempt": c.attempts}).Warnf("transport: reconnect failed: %s", err)
			c.reconnecting = false
		}

		c.scheduleReconnectLocked()
		c.mu.Unlock()
		return
	}

	c.generation++
	gen := c.generation
	c.socket = sock
	c.attempts = 0
	c.reconnecting = false
	c.status = Open
	c.mu.Unlock()

	log.WithFields(log.Fields{"addr": c.addr}).Info("transport: open")
	c.dispatch(gen, func() {
		if c.handlers.OnOpen != nil {
			c.handlers.OnOpen()
		}
	})

	go c.read(sock, gen)
}

func (c *Conn) read(sock Socket, gen uint64) {
	for {
		messageType, data, err := sock.ReadMessage()
		if err != nil {
			c.fail(sock, gen, err)
			return
		}

		c.dispatch(gen, func() {
			if c.handlers.OnMessage != nil {
				c.handlers.OnMessage(messageType, data)
			}
		})
	}
}

// fail handles the loss of the socket identified by gen.
func (c *Conn) fail(sock Socket, gen uint64, err error) {
	c.mu.Lock()
	if c.closed || gen != c.generation {
		c.mu.Unlock()
		return
	}
	c.socket = nil
	c.status = Disconnected
	c.mu.Unlock()

	_ = sock.Close()

	normal := websocket.IsCloseError(err, websocket.CloseNormalClosure)
	log.WithFields(log.Fields{"addr": c.addr, "normal": normal}).Infof("transport: socket closed: %s", err)

	if !normal {
		c.dispatch(gen, func() { c.fire(c.handlers.OnError, err) })
	}
	c.dispatch(gen, func() { c.fire(c.handlers.OnClose, err) })

	if normal {
		return
	}

	c.mu.Lock()
	c.scheduleReconnectLocked()
	c.mu.Unlock()
}

// scheduleReconnectLocked starts the next attempt after the backoff,
// unless one is already underway or the attempts are used up.
func (c *Conn) scheduleReconnectLocked() {
	if c.closed || c.reconnecting {
		return
	}
	if c.attempts >= c.opts.MaxAttempts {
		log.WithFields(log.Fields{"addr": c.addr, "attempts": c.attempts}).Warn("transport: giving up")
		return
	}

	c.reconnecting = true
	c.attempts++
	c.status = Connecting
	delay := c.opts.Backoff.Delay(c.attempts)

	log.WithFields(log.Fields{
		"addr":    c.addr,
		"attempt": c.attempts,
		"max":     c.opts.MaxAttempts,
		"delay":   delay.String(),
	}).Info("transport: reconnecting")

	c.pending = c.opts.Scheduler.AfterFunc(delay, func() { c.open(false) })
}

// dispatch runs fn unless the connection was closed or the socket gen belongs to was replaced.
func (c *Conn) dispatch(gen uint64, fn func()) {
	c.mu.Lock()
	live := !c.closed && gen == c.generation
	c.mu.Unlock()

	if live {
		fn()
	}
}

func (c *Conn) fire(handler func(error), err error) {
	if handler != nil {
		handler(err)
	}
}
