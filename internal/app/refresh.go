package app

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/dkeye/ctinotify/internal/core"
)

// Refresher periodically extends the token of every bound session.
// Failed extensions are only logged; stale tokens are refused by the oracle
// on the next verification instead of being evicted here.
type Refresher struct {
	Registry *Registry
	Tokens   core.TokenOracle

	period time.Duration
}

// NewRefresher reads the token expiration window once; the period is half of it.
func NewRefresher(reg *Registry, tokens core.TokenOracle) *Refresher {
	return &Refresher{
		Registry: reg,
		Tokens:   tokens,
		period:   tokens.ExpirationWindow() / 2,
	}
}

func (r *Refresher) Period() time.Duration { return r.period }

type RefreshResult struct {
	Extended int
	Failed   int
}

// Run ticks until ctx is done.
func (r *Refresher) Run(ctx context.Context) error {
	if r.period <= 0 {
		log.Warn().Str("module", "app.refresh").Dur("period", r.period).Msg("token refresh disabled")
		return nil
	}
	log.Info().Str("module", "app.refresh").Dur("period", r.period).Msg("token refresh started")

	ticker := time.NewTicker(r.period)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			log.Info().Str("module", "app.refresh").Msg("token refresh stopped")
			return nil
		case <-ticker.C:
			res := r.Tick(ctx)
			log.Debug().Str("module", "app.refresh").Int("extended", res.Extended).Int("failed", res.Failed).Msg("tick")
		}
	}
}

// Tick extends each currently bound session's token exactly once.
func (r *Refresher) Tick(ctx context.Context) RefreshResult {
	var res RefreshResult
	r.Registry.ForEach(func(s *core.Session) {
		if err := r.Tokens.Extend(ctx, s.Username(), s.Token()); err != nil {
			res.Failed++
			log.Error().Err(err).Str("module", "app.refresh").Str("conn", string(s.ID())).Str("username", s.Username()).Msg("extend token")
			return
		}
		res.Extended++
	})
	return res
}
