package transport

import (
	"context"
	"errors"
	"sync"
	"time"
)

type frame struct {
	messageType int
	data        []byte
	err         error
}

type fakeSocket struct {
	incoming chan frame
	done     chan struct{}
	once     sync.Once

	mu      sync.Mutex
	written [][]byte
}

func newFakeSocket() *fakeSocket {
	return &fakeSocket{incoming: make(chan frame, 8), done: make(chan struct{})}
}

func (s *fakeSocket) ReadMessage() (int, []byte, error) {
	select {
	case f := <-s.incoming:
		return f.messageType, f.data, f.err
	case <-s.done:
		return 0, nil, errors.New("use of closed network connection")
	}
}

func (s *fakeSocket) WriteMessage(messageType int, data []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if messageType == TextMessage || messageType == BinaryMessage {
		s.written = append(s.written, data)
	}
	return nil
}

func (s *fakeSocket) Close() error {
	s.once.Do(func() { close(s.done) })
	return nil
}

func (s *fakeSocket) Written() [][]byte {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([][]byte(nil), s.written...)
}

// fakeDialer fails the dials listed in failures (by call index, from 0) and succeeds otherwise.
type fakeDialer struct {
	mu       sync.Mutex
	failAll  bool
	failures map[int]bool
	calls    int
	sockets  []*fakeSocket
}

func (d *fakeDialer) Dial(context.Context, string) (Socket, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	call := d.calls
	d.calls++
	if d.failAll || d.failures[call] {
		return nil, errors.New("connection refused")
	}

	s := newFakeSocket()
	d.sockets = append(d.sockets, s)
	return s, nil
}

func (d *fakeDialer) Calls() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.calls
}

func (d *fakeDialer) Socket(i int) *fakeSocket {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.sockets[i]
}

type recorder struct {
	mu       sync.Mutex
	opens    int
	closes   int
	errs     int
	messages []string
}

func (r *recorder) handlers() Handlers {
	return Handlers{
		OnOpen: func() {
			r.mu.Lock()
			r.opens++
			r.mu.Unlock()
		},
		OnClose: func(error) {
			r.mu.Lock()
			r.closes++
			r.mu.Unlock()
		},
		OnError: func(error) {
			r.mu.Lock()
			r.errs++
			r.mu.Unlock()
		},
		OnMessage: func(_ int, data []byte) {
			r.mu.Lock()
			r.messages = append(r.messages, string(data))
			r.mu.Unlock()
		},
	}
}

func (r *recorder) counts() (opens, closes, errs int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.opens, r.closes, r.errs
}

func (r *recorder) Messages() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.messages...)
}

func eventually(cond func() bool) bool {
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if cond() {
			return true
		}
		time.Sleep(time.Millisecond)
	}
	return cond()
}
