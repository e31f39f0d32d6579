package core

import (
	"context"
	"errors"
	"time"

	"github.com/dkeye/ctinotify/internal/domain"
)

//go:generate mockgen -source=interfaces.go -destination=mocks/mocks.go -package=mocks

var (
	// ErrBackpressure is returned by TrySend when the send queue is full.
	ErrBackpressure = errors.New("backpressure")
	ErrClosed       = errors.New("connection closed")
)

// Frame is one encoded outbound message.
type Frame []byte

// Connection abstracts a client transport endpoint.
// Owned by the adapter; the adapter must Close() it.
type Connection interface {
	ID() domain.ConnectionID
	Transport() domain.Transport
	// TrySend queues a frame without blocking.
	TrySend(Frame) error
	// Close flushes queued frames and closes the endpoint.
	Close()
}

// TokenOracle validates and refreshes client tokens.
type TokenOracle interface {
	Verify(ctx context.Context, username, token string) (bool, error)
	Extend(ctx context.Context, username, token string) error
	ExpirationWindow() time.Duration
}

// Directory is a read-only view of users and their extensions.
type Directory interface {
	UsersOwningExtension(ctx context.Context, exten string) ([]string, error)
	IsWebrtcExtension(ctx context.Context, exten string) (bool, error)
	AgentSupportsAutoAnswer(ctx context.Context, exten string) (bool, error)
}

// Authorizer answers per-user permission questions.
type Authorizer interface {
	HasStreamingAuthorization(ctx context.Context, username, sourceID string) (bool, error)
	AutoAnswerEnabled(ctx context.Context, username string) (bool, error)
	HasPhonebookAuthorization(ctx context.Context, username string) (bool, error)
}

// StreamingResolver maps caller numbers to streaming sources.
type StreamingResolver interface {
	IsStreamingSource(ctx context.Context, number string) (bool, error)
	SourceDescriptor(ctx context.Context, number string) (domain.StreamingSource, error)
}

// EventSource delivers ringing events until ctx is done, then closes the channel.
type EventSource interface {
	Subscribe(ctx context.Context) <-chan domain.RingingEvent
}
