package tcp

import (
	"bufio"
	"bytes"
	"context"
	"errors"
	"io"
	"net"
	"sync"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/dkeye/ctinotify/internal/app"
	"github.com/dkeye/ctinotify/internal/config"
	"github.com/dkeye/ctinotify/internal/core"
	"github.com/dkeye/ctinotify/internal/domain"
)

// Conn is a TCP client endpoint. It implements core.Connection.
type Conn struct {
	id           domain.ConnectionID
	conn         net.Conn
	framing      string
	readBuffer   int
	writeTimeout time.Duration
	send         chan core.Frame

	mu     sync.RWMutex
	closed bool
}

func newConn(nc net.Conn, opts Options) *Conn {
	return &Conn{
		id:           domain.ConnectionID(nc.RemoteAddr().String()),
		conn:         nc,
		framing:      opts.Framing,
		readBuffer:   opts.ReadBuffer,
		writeTimeout: opts.WriteTimeout,
		send:         make(chan core.Frame, opts.SendBuffer),
	}
}

func (c *Conn) ID() domain.ConnectionID      { return c.id }
func (c *Conn) Transport() domain.Transport { return domain.TransportTCP }

func (c *Conn) TrySend(f core.Frame) error {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.closed {
		return core.ErrClosed
	}
	select {
	case c.send <- f:
	default:
		return core.ErrBackpressure
	}
	return nil
}

// Close stops accepting frames; the write pump flushes what is queued and
// then closes the socket.
func (c *Conn) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return
	}
	c.closed = true
	close(c.send)
}

func (c *Conn) write(data core.Frame) error {
	if c.writeTimeout > 0 {
		if err := c.conn.SetWriteDeadline(time.Now().Add(c.writeTimeout)); err != nil {
			return err
		}
	}
	if c.framing == config.FramingLine {
		data = append(data[:len(data):len(data)], '\n')
	}
	_, err := c.conn.Write(data)
	return err
}

func (c *Conn) writePump(ctx context.Context) {
	defer func() {
		c.Close()
		_ = c.conn.Close()
	}()
	for {
		select {
		case <-ctx.Done():
			log.Debug().Str("module", "tcp").Str("conn", string(c.id)).Msg("writePump ctx done")
			return
		case data, ok := <-c.send:
			if !ok {
				return
			}
			if err := c.write(data); err != nil {
				log.Error().Err(err).Str("module", "tcp").Str("conn", string(c.id)).Msg("writePump write error")
				return
			}
		}
	}
}

func (c *Conn) readPump(ctx context.Context, peer *app.Peer) {
	defer func() {
		log.Info().Str("module", "tcp").Str("conn", string(c.id)).Msg("readPump closing")
		peer.Close()
		c.Close()
	}()

	var err error
	if c.framing == config.FramingLine {
		err = c.readLines(ctx, peer)
	} else {
		err = c.readChunks(ctx, peer)
	}
	switch {
	case err == nil, errors.Is(err, io.EOF):
	case errors.Is(err, net.ErrClosed):
		log.Debug().Str("module", "tcp").Str("conn", string(c.id)).Msg("readPump socket closed")
	default:
		log.Error().Err(err).Str("module", "tcp").Str("conn", string(c.id)).Msg("readPump read error")
	}
}

// readChunks treats every read as one complete JSON document.
func (c *Conn) readChunks(ctx context.Context, peer *app.Peer) error {
	buf := make([]byte, c.readBuffer)
	for {
		n, err := c.conn.Read(buf)
		if n > 0 {
			if frame := bytes.TrimSpace(buf[:n]); len(frame) > 0 {
				peer.HandleFrame(ctx, frame)
			}
		}
		if err != nil {
			return err
		}
	}
}

// readLines expects newline-delimited JSON.
func (c *Conn) readLines(ctx context.Context, peer *app.Peer) error {
	sc := bufio.NewScanner(c.conn)
	sc.Buffer(make([]byte, 0, 4096), c.readBuffer)
	for sc.Scan() {
		if frame := bytes.TrimSpace(sc.Bytes()); len(frame) > 0 {
			peer.HandleFrame(ctx, frame)
		}
	}
	return sc.Err()
}
