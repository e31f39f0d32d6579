package app

import (
	"context"
	"net"

	"github.com/rs/zerolog/log"

	"github.com/dkeye/ctinotify/internal/codec"
	"github.com/dkeye/ctinotify/internal/core"
	"github.com/dkeye/ctinotify/internal/domain"
)

type peerState int

const (
	stateAwaitingLogin peerState = iota
	stateAuthenticated
	stateRejected
)

func (s peerState) String() string {
	switch s {
	case stateAwaitingLogin:
		return "awaiting_login"
	case stateAuthenticated:
		return "authenticated"
	default:
		return "rejected"
	}
}

// Gate authenticates raw connections and promotes them to sessions.
type Gate struct {
	Registry *Registry
	Tokens   core.TokenOracle
	Commands map[string]codec.Command
	// Limiter may be nil.
	Limiter *LoginLimiter
}

// Peer is the protocol state of one connection. It is driven by the
// connection's read loop only, so inbound frames are handled in order.
type Peer struct {
	gate  *Gate
	conn  core.Connection
	state peerState
}

// Open starts the protocol for a freshly accepted connection.
func (g *Gate) Open(conn core.Connection) *Peer {
	log.Debug().Str("module", "app.gate").Str("conn", string(conn.ID())).Str("transport", string(conn.Transport())).Msg("awaiting login")
	return &Peer{gate: g, conn: conn, state: stateAwaitingLogin}
}

func (p *Peer) Authenticated() bool { return p.state == stateAuthenticated }

// HandleFrame processes one inbound JSON document.
func (p *Peer) HandleFrame(ctx context.Context, data []byte) {
	req, err := codec.Decode(data)
	if err != nil {
		log.Warn().Err(err).Str("module", "app.gate").Str("conn", string(p.conn.ID())).Msg("discarding frame")
		return
	}

	switch p.state {
	case stateAwaitingLogin:
		if req.Action != codec.ActionLogin {
			log.Debug().Str("module", "app.gate").Str("conn", string(p.conn.ID())).Str("action", req.Action).Msg("ignored before login")
			return
		}
		p.login(ctx, req)
	case stateAuthenticated:
		switch req.Action {
		case codec.ActionLogin:
			p.login(ctx, req)
		case codec.ActionPing:
			p.send(codec.PingReply())
		case codec.ActionReset:
			if req.Type != codec.ResetCommands {
				log.Warn().Str("module", "app.gate").Str("conn", string(p.conn.ID())).Str("type", req.Type).Msg("unknown reset type")
				return
			}
			p.resetCommands(ctx, req)
		default:
			log.Warn().Str("module", "app.gate").Str("conn", string(p.conn.ID())).Str("action", req.Action).Msg("unknown action")
		}
	case stateRejected:
	}
}

// Close unbinds the session; the transport calls it once the connection ends.
func (p *Peer) Close() {
	p.gate.Registry.Remove(p.conn.ID())
	log.Info().Str("module", "app.gate").Str("conn", string(p.conn.ID())).Str("state", p.state.String()).Msg("connection closed")
}

func (p *Peer) credentials(req codec.Request) (domain.Credentials, bool) {
	if !req.HasCredentials() {
		return domain.Credentials{}, false
	}
	creds, err := domain.NewCredentials(req.Username, req.Token)
	return creds, err == nil
}

func (p *Peer) login(ctx context.Context, req codec.Request) {
	if !p.gate.Limiter.Allow(remoteHost(p.conn.ID())) {
		p.reject("too many failed logins")
		return
	}
	creds, ok := p.credentials(req)
	if !ok {
		p.refuse("malformed login")
		return
	}

	valid, err := p.gate.Tokens.Verify(ctx, creds.Username, creds.Token)
	if err != nil {
		log.Error().Err(err).Str("module", "app.gate").Str("conn", string(p.conn.ID())).Str("username", creds.Username).Msg("token verification failed, login abandoned")
		return
	}
	if !valid {
		p.refuse("invalid token")
		return
	}

	p.gate.Registry.Put(core.NewSession(p.conn, creds))
	p.state = stateAuthenticated
	log.Info().Str("module", "app.gate").Str("conn", string(p.conn.ID())).Str("username", creds.Username).Msg("login ok")

	p.send(codec.AuthOK())
	p.send(codec.Commands(p.gate.Commands))
}

func (p *Peer) resetCommands(ctx context.Context, req codec.Request) {
	creds, ok := p.credentials(req)
	if !ok {
		p.reject("malformed reset")
		return
	}
	valid, err := p.gate.Tokens.Verify(ctx, creds.Username, creds.Token)
	if err != nil {
		log.Error().Err(err).Str("module", "app.gate").Str("conn", string(p.conn.ID())).Msg("token verification failed, reset abandoned")
		return
	}
	if !valid {
		p.reject("invalid token on reset")
		return
	}
	p.send(codec.Commands(p.gate.Commands))
}

// refuse counts a failed login against the remote host, then rejects.
func (p *Peer) refuse(reason string) {
	p.gate.Limiter.Fail(remoteHost(p.conn.ID()))
	p.reject(reason)
}

// reject answers 401 and closes; no retry is offered on this connection.
func (p *Peer) reject(reason string) {
	log.Warn().Str("module", "app.gate").Str("conn", string(p.conn.ID())).Str("reason", reason).Msg("unauthorized")
	p.state = stateRejected
	p.gate.Registry.Remove(p.conn.ID())
	p.send(codec.Unauthorized())
	p.conn.Close()
}

func (p *Peer) send(f core.Frame, err error) {
	if err != nil {
		log.Error().Err(err).Str("module", "app.gate").Msg("encode")
		return
	}
	if err := p.conn.TrySend(f); err != nil {
		log.Error().Err(err).Str("module", "app.gate").Str("conn", string(p.conn.ID())).Msg("send")
	}
}

func remoteHost(id domain.ConnectionID) string {
	host, _, err := net.SplitHostPort(string(id))
	if err != nil {
		return string(id)
	}
	return host
}
