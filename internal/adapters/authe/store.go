// Package authe issues and validates the tokens that clients present to the
// notification server.
package authe

import (
	"context"
	"crypto/hmac"
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

var (
	ErrTokenNotFound = errors.New("token not found")
	ErrTokenExpired  = errors.New("token expired")
	ErrEmptyUsername = errors.New("username is empty")
)

// Store keeps issued tokens in memory. Each user may hold several tokens,
// one per logged in client.
type Store struct {
	mu     sync.RWMutex
	tokens map[string]map[string]time.Time
	window time.Duration
	secret []byte
	now    func() time.Time

	cancel context.CancelFunc
	done   chan struct{}
}

// NewStore builds a store whose tokens live for window after issue or
// extension. A random secret is generated when secret is empty.
func NewStore(window time.Duration, secret string) *Store {
	key := []byte(secret)
	if len(key) == 0 {
		key = make([]byte, 32)
		if _, err := rand.Read(key); err != nil {
			panic(err)
		}
		log.Warn().Str("module", "authe").Msg("no secret configured, tokens will not survive a restart")
	}
	return &Store{
		tokens: make(map[string]map[string]time.Time),
		window: window,
		secret: key,
		now:    time.Now,
	}
}

func (s *Store) ExpirationWindow() time.Duration { return s.window }

// Issue mints a new token for username.
func (s *Store) Issue(_ context.Context, username string) (string, error) {
	if username == "" {
		return "", ErrEmptyUsername
	}
	mac := hmac.New(sha256.New, s.secret)
	mac.Write([]byte(username))
	mac.Write([]byte{0})
	mac.Write([]byte(uuid.NewString()))
	token := hex.EncodeToString(mac.Sum(nil))

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.tokens[username] == nil {
		s.tokens[username] = make(map[string]time.Time)
	}
	s.tokens[username][token] = s.now().Add(s.window)
	log.Info().Str("module", "authe").Str("username", username).Msg("token issued")
	return token, nil
}

func (s *Store) Verify(_ context.Context, username, token string) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	exp, ok := s.tokens[username][token]
	return ok && s.now().Before(exp), nil
}

// Extend pushes the expiry of a live token one full window from now.
func (s *Store) Extend(_ context.Context, username, token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	exp, ok := s.tokens[username][token]
	if !ok {
		return ErrTokenNotFound
	}
	now := s.now()
	if !now.Before(exp) {
		s.deleteLocked(username, token)
		return ErrTokenExpired
	}
	s.tokens[username][token] = now.Add(s.window)
	return nil
}

// Revoke forgets a token. Unknown tokens are ignored.
func (s *Store) Revoke(_ context.Context, username, token string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.deleteLocked(username, token)
}

func (s *Store) deleteLocked(username, token string) {
	user := s.tokens[username]
	delete(user, token)
	if len(user) == 0 {
		delete(s.tokens, username)
	}
}

// Cleanup removes expired tokens and reports how many were dropped.
func (s *Store) Cleanup(_ context.Context) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	removed := 0
	for username, user := range s.tokens {
		for token, exp := range user {
			if !now.Before(exp) {
				delete(user, token)
				removed++
			}
		}
		if len(user) == 0 {
			delete(s.tokens, username)
		}
	}
	return removed
}

// StartCleanupRoutine removes expired tokens every interval until Close.
// A non-positive interval disables the routine.
func (s *Store) StartCleanupRoutine(interval time.Duration) {
	if interval <= 0 {
		log.Warn().Str("module", "authe").Dur("interval", interval).Msg("token cleanup disabled")
		return
	}
	ctx, cancel := context.WithCancel(context.Background())
	s.cancel = cancel
	s.done = make(chan struct{})

	go func() {
		defer close(s.done)

		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				if n := s.Cleanup(ctx); n > 0 {
					log.Debug().Str("module", "authe").Int("removed", n).Msg("expired tokens removed")
				}
			}
		}
	}()
}

// Close stops the cleanup goroutine. Safe to call without StartCleanupRoutine.
func (s *Store) Close() error {
	if s.cancel != nil {
		s.cancel()
		<-s.done
	}
	return nil
}
