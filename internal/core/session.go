package core

import "github.com/dkeye/ctinotify/internal/domain"

// Session binds authenticated credentials to a transport endpoint.
// Identity and connection are fixed at creation; a new login on the same
// connection produces a new Session.
type Session struct {
	id    domain.ConnectionID
	conn  Connection
	creds domain.Credentials
}

func NewSession(conn Connection, creds domain.Credentials) *Session {
	return &Session{id: conn.ID(), conn: conn, creds: creds}
}

func (s *Session) ID() domain.ConnectionID         { return s.id }
func (s *Session) Conn() Connection                { return s.conn }
func (s *Session) Username() string                { return s.creds.Username }
func (s *Session) Token() string                   { return s.creds.Token }
func (s *Session) Credentials() domain.Credentials { return s.creds }
