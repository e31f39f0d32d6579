// Package ws serves the notification protocol over WebSocket. Every text
// message carries one JSON document.
package ws

import (
	"context"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"

	"github.com/dkeye/ctinotify/internal/app"
	"github.com/dkeye/ctinotify/internal/config"
	"github.com/dkeye/ctinotify/internal/core"
	"github.com/dkeye/ctinotify/internal/domain"
)

type Options struct {
	SendBuffer int
	ReadLimit  int64
	PingPeriod time.Duration
}

func OptionsFromConfig(cfg config.WSConfig) Options {
	return Options{
		SendBuffer: cfg.SendBuffer,
		ReadLimit:  cfg.ReadLimit,
		PingPeriod: cfg.PingPeriod,
	}
}

// Controller upgrades HTTP requests and hands the sockets to the gate.
type Controller struct {
	Gate *app.Gate
	Opts Options
}

func NewController(gate *app.Gate, opts Options) *Controller {
	if opts.SendBuffer <= 0 {
		opts.SendBuffer = 32
	}
	if opts.ReadLimit <= 0 {
		opts.ReadLimit = 32768
	}
	if opts.PingPeriod <= 0 {
		opts.PingPeriod = 54 * time.Second
	}
	return &Controller{Gate: gate, Opts: opts}
}

type wsConn struct {
	id   domain.ConnectionID
	conn *websocket.Conn
	send chan core.Frame

	mu     sync.RWMutex
	closed bool
}

func (c *wsConn) ID() domain.ConnectionID     { return c.id }
func (c *wsConn) Transport() domain.Transport { return domain.TransportWS }

func (c *wsConn) TrySend(f core.Frame) error {
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

// Close stops accepting frames; the write pump flushes the queue, sends a
// close frame and closes the socket.
func (c *wsConn) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return
	}
	c.closed = true
	close(c.send)
}

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

// HandleSignal upgrades the request; the connection lives until the peer
// leaves or ctx is done.
func (ctl *Controller) HandleSignal(ctx context.Context, c *gin.Context) {
	ws, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Error().Err(err).Str("module", "ws").Msg("ws upgrade")
		return
	}

	conn := &wsConn{
		id:   domain.ConnectionID(c.Request.RemoteAddr),
		conn: ws,
		send: make(chan core.Frame, ctl.Opts.SendBuffer),
	}
	log.Info().Str("module", "ws").Str("conn", string(conn.id)).Msg("new WS connection")

	peer := ctl.Gate.Open(conn)
	go ctl.writePump(ctx, conn)
	go ctl.readPump(ctx, conn, peer)
}
