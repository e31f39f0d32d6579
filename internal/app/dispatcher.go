package app

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/dkeye/ctinotify/internal/codec"
	"github.com/dkeye/ctinotify/internal/core"
	"github.com/dkeye/ctinotify/internal/domain"
)

// Dispatcher fans ringing events out to the sessions of the extension owners.
type Dispatcher struct {
	Registry  *Registry
	Directory core.Directory
	Builder   *Builder
	// Policy may be nil, in which case frames for slow consumers are dropped.
	Policy Policy
}

// DispatchResult reports delivery stats for one event.
type DispatchResult struct {
	Matched int
	Sent    int
	Failed  int
}

// Run subscribes once and dispatches until the source closes its stream.
func (d *Dispatcher) Run(ctx context.Context, src core.EventSource) error {
	events := src.Subscribe(ctx)
	log.Info().Str("module", "app.dispatcher").Msg("subscribed to ringing events")
	for ev := range events {
		d.Dispatch(ctx, ev)
	}
	log.Info().Str("module", "app.dispatcher").Msg("event stream closed")
	return nil
}

// Dispatch delivers ev to every bound session whose user owns the ringing
// extension. A failure for one recipient never stops the others.
func (d *Dispatcher) Dispatch(ctx context.Context, ev domain.RingingEvent) (DispatchResult, error) {
	var res DispatchResult
	if err := ev.Validate(); err != nil {
		log.Warn().Err(err).Str("module", "app.dispatcher").Msg("dropping malformed event")
		return res, err
	}

	logger := log.With().
		Str("module", "app.dispatcher").
		Str("event", uuid.NewString()).
		Str("exten", ev.DialingExtension).
		Str("caller", ev.CallerIdentity.CallerNum).
		Logger()

	owners, err := d.Directory.UsersOwningExtension(ctx, ev.DialingExtension)
	if err != nil {
		logger.Error().Err(err).Msg("resolve extension owners")
		return res, fmt.Errorf("owners of %s: %w", ev.DialingExtension, err)
	}
	if len(owners) == 0 {
		logger.Debug().Msg("extension has no owners")
		return res, nil
	}
	wanted := make(map[string]struct{}, len(owners))
	for _, u := range owners {
		wanted[u] = struct{}{}
	}

	d.Registry.ForEach(func(s *core.Session) {
		if _, ok := wanted[s.Username()]; !ok {
			return
		}
		res.Matched++
		if err := d.deliver(ctx, s, ev, &logger); err != nil {
			res.Failed++
			logger.Error().Err(err).Str("conn", string(s.ID())).Str("username", s.Username()).Msg("delivery failed")
			return
		}
		res.Sent++
	})

	logger.Debug().Int("matched", res.Matched).Int("sent", res.Sent).Int("failed", res.Failed).Msg("dispatch result")
	return res, nil
}

func (d *Dispatcher) deliver(ctx context.Context, s *core.Session, ev domain.RingingEvent, logger *zerolog.Logger) error {
	frame, err := d.frameFor(ctx, s, ev)
	if err != nil {
		return err
	}
	err = s.Conn().TrySend(frame)
	if errors.Is(err, core.ErrBackpressure) && d.Policy != nil {
		if d.Policy.OnBackPressure(s) == CloseSession {
			logger.Warn().Str("conn", string(s.ID())).Msg("slow consumer, closing session")
			s.Conn().Close()
		}
	}
	return err
}

func (d *Dispatcher) frameFor(ctx context.Context, s *core.Session, ev domain.RingingEvent) (core.Frame, error) {
	if s.Conn().Transport() == domain.TransportWS {
		data, err := d.Builder.CallerData(ctx, s.Username(), ev)
		if err != nil {
			return nil, err
		}
		return codec.CallerEvent(data)
	}
	n, err := d.Builder.Build(ctx, s.Username(), ev)
	if err != nil {
		return nil, err
	}
	return codec.Notification(n)
}
