package app

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	"github.com/dkeye/ctinotify/internal/core/mocks"
)

func TestRefresher_PeriodIsHalfWindow(t *testing.T) {
	ctrl := gomock.NewController(t)
	tokens := mocks.NewMockTokenOracle(ctrl)
	tokens.EXPECT().ExpirationWindow().Return(time.Hour).Times(1)

	r := NewRefresher(NewRegistry(), tokens)
	assert.Equal(t, 30*time.Minute, r.Period())
	assert.Equal(t, 30*time.Minute, r.Period(), "window is read once")
}

func TestRefresher_TickCoversCurrentSessions(t *testing.T) {
	ctrl := gomock.NewController(t)
	tokens := mocks.NewMockTokenOracle(ctrl)
	tokens.EXPECT().ExpirationWindow().Return(time.Hour)
	reg := NewRegistry()
	r := NewRefresher(reg, tokens)
	ctx := context.Background()

	alice, _ := newSession("h:1", "alice")
	bob, _ := newSession("h:2", "bob")
	reg.Put(alice)
	reg.Put(bob)

	tokens.EXPECT().Extend(gomock.Any(), "alice", "tok-alice").Return(nil).Times(1)
	tokens.EXPECT().Extend(gomock.Any(), "bob", "tok-bob").Return(nil).Times(1)
	res := r.Tick(ctx)
	assert.Equal(t, RefreshResult{Extended: 2}, res)

	carol, _ := newSession("h:3", "carol")
	reg.Put(carol)
	reg.Remove(bob.ID())

	tokens.EXPECT().Extend(gomock.Any(), "alice", "tok-alice").Return(nil).Times(1)
	tokens.EXPECT().Extend(gomock.Any(), "carol", "tok-carol").Return(nil).Times(1)
	res = r.Tick(ctx)
	assert.Equal(t, RefreshResult{Extended: 2}, res)
}

func TestRefresher_FailureKeepsSession(t *testing.T) {
	ctrl := gomock.NewController(t)
	tokens := mocks.NewMockTokenOracle(ctrl)
	tokens.EXPECT().ExpirationWindow().Return(time.Hour)
	reg := NewRegistry()
	r := NewRefresher(reg, tokens)

	alice, conn := newSession("h:1", "alice")
	reg.Put(alice)
	tokens.EXPECT().Extend(gomock.Any(), "alice", "tok-alice").Return(errors.New("token not found"))

	res := r.Tick(context.Background())
	assert.Equal(t, RefreshResult{Failed: 1}, res)
	assert.Equal(t, 1, reg.Count())
	assert.False(t, conn.IsClosed())
	assert.Empty(t, conn.Frames())
}

func TestRefresher_RunTicks(t *testing.T) {
	ctrl := gomock.NewController(t)
	tokens := mocks.NewMockTokenOracle(ctrl)
	tokens.EXPECT().ExpirationWindow().Return(40 * time.Millisecond)
	reg := NewRegistry()
	alice, _ := newSession("h:1", "alice")
	reg.Put(alice)

	ticked := make(chan struct{}, 16)
	tokens.EXPECT().Extend(gomock.Any(), "alice", "tok-alice").DoAndReturn(func(context.Context, string, string) error {
		ticked <- struct{}{}
		return nil
	}).MinTimes(2)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- NewRefresher(reg, tokens).Run(ctx) }()

	for range 2 {
		select {
		case <-ticked:
		case <-time.After(2 * time.Second):
			t.Fatal("refresh did not tick")
		}
	}
	cancel()
	assert.NoError(t, <-done)
}

func TestRefresher_DisabledWithoutWindow(t *testing.T) {
	ctrl := gomock.NewController(t)
	tokens := mocks.NewMockTokenOracle(ctrl)
	tokens.EXPECT().ExpirationWindow().Return(time.Duration(0))

	assert.NoError(t, NewRefresher(NewRegistry(), tokens).Run(context.Background()))
}
