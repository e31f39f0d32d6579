package app

import (
	"sync"

	"github.com/dkeye/ctinotify/internal/core"
	"github.com/dkeye/ctinotify/internal/domain"
)

// fakeConn records frames instead of writing them to a socket.
type fakeConn struct {
	id        domain.ConnectionID
	transport domain.Transport

	mu      sync.Mutex
	frames  []string
	closed  bool
	sendErr error
}

func newFakeConn(id string) *fakeConn {
	return &fakeConn{id: domain.ConnectionID(id), transport: domain.TransportTCP}
}

func (c *fakeConn) ID() domain.ConnectionID      { return c.id }
func (c *fakeConn) Transport() domain.Transport { return c.transport }

func (c *fakeConn) TrySend(f core.Frame) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return core.ErrClosed
	}
	if c.sendErr != nil {
		return c.sendErr
	}
	c.frames = append(c.frames, string(f))
	return nil
}

func (c *fakeConn) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.closed = true
}

func (c *fakeConn) Frames() []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]string(nil), c.frames...)
}

func (c *fakeConn) IsClosed() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.closed
}

func newSession(id, username string) (*core.Session, *fakeConn) {
	conn := newFakeConn(id)
	return core.NewSession(conn, domain.Credentials{Username: username, Token: "tok-" + username}), conn
}
