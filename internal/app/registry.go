package app

import (
	"sync"

	"github.com/rs/zerolog/log"

	"github.com/dkeye/ctinotify/internal/core"
	"github.com/dkeye/ctinotify/internal/domain"
)

// Registry holds the authenticated sessions keyed by connection.
// Entries exist only between a successful login and the disconnect.
type Registry struct {
	mu       sync.RWMutex
	sessions map[domain.ConnectionID]*core.Session
}

func NewRegistry() *Registry {
	return &Registry{
		sessions: make(map[domain.ConnectionID]*core.Session),
	}
}

// Put inserts the session, replacing any previous one for the same connection.
func (r *Registry) Put(sess *core.Session) {
	r.mu.Lock()
	defer r.mu.Unlock()
	_, replaced := r.sessions[sess.ID()]
	r.sessions[sess.ID()] = sess
	log.Info().Str("module", "app.registry").Str("conn", string(sess.ID())).Str("username", sess.Username()).Bool("replaced", replaced).Msg("bound session")
}

// Remove deletes the session for id; it is a no-op when none is bound.
func (r *Registry) Remove(id domain.ConnectionID) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.sessions[id]; !ok {
		return
	}
	delete(r.sessions, id)
	log.Info().Str("module", "app.registry").Str("conn", string(id)).Msg("unbind session")
}

func (r *Registry) Get(id domain.ConnectionID) (*core.Session, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	s, ok := r.sessions[id]
	return s, ok
}

func (r *Registry) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.sessions)
}

// Snapshot returns the sessions bound at the time of the call.
func (r *Registry) Snapshot() []*core.Session {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]*core.Session, 0, len(r.sessions))
	for _, s := range r.sessions {
		out = append(out, s)
	}
	return out
}

// ForEach visits a point-in-time snapshot, so visit may call Put or Remove.
func (r *Registry) ForEach(visit func(*core.Session)) {
	for _, s := range r.Snapshot() {
		visit(s)
	}
}
