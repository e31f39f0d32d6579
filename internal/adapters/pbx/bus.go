// Package pbx carries ringing events from the PBX integration to the dispatcher.
package pbx

import (
	"context"
	"sync"

	"github.com/rs/zerolog/log"

	"github.com/dkeye/ctinotify/internal/domain"
)

// Bus is an in-process event source with a single consumer.
type Bus struct {
	events chan domain.RingingEvent

	mu         sync.Mutex
	subscribed bool
}

func NewBus(buffer int) *Bus {
	if buffer < 0 {
		buffer = 0
	}
	return &Bus{events: make(chan domain.RingingEvent, buffer)}
}

// Publish queues ev without blocking. It reports false when the queue is full
// and the event was dropped.
func (b *Bus) Publish(ev domain.RingingEvent) bool {
	select {
	case b.events <- ev:
		return true
	default:
		log.Warn().Str("module", "pbx").Str("exten", ev.DialingExtension).Msg("event queue full, dropping ringing event")
		return false
	}
}

// Subscribe returns a channel closed once ctx is done. Only the first
// subscriber receives events; later calls get an already closed channel.
func (b *Bus) Subscribe(ctx context.Context) <-chan domain.RingingEvent {
	out := make(chan domain.RingingEvent)

	b.mu.Lock()
	first := !b.subscribed
	b.subscribed = true
	b.mu.Unlock()
	if !first {
		log.Error().Str("module", "pbx").Msg("bus already has a subscriber")
		close(out)
		return out
	}

	go func() {
		defer close(out)
		for {
			select {
			case <-ctx.Done():
				return
			case ev := <-b.events:
				select {
				case out <- ev:
				case <-ctx.Done():
					return
				}
			}
		}
	}()
	return out
}
