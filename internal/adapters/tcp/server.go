// Package tcp serves the notification protocol over plain TCP.
package tcp

import (
	"context"
	"errors"
	"fmt"
	"net"
	"sync"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/dkeye/ctinotify/internal/app"
	"github.com/dkeye/ctinotify/internal/config"
)

type Options struct {
	Addr         string
	Framing      string
	SendBuffer   int
	ReadBuffer   int
	WriteTimeout time.Duration
}

// OptionsFromConfig maps the tcp section of the configuration.
func OptionsFromConfig(cfg config.TCPConfig) Options {
	return Options{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Framing:      cfg.Framing,
		SendBuffer:   cfg.SendBuffer,
		ReadBuffer:   cfg.ReadBuffer,
		WriteTimeout: cfg.WriteTimeout,
	}
}

type Server struct {
	gate *app.Gate
	opts Options

	mu sync.Mutex
	ln net.Listener
	wg sync.WaitGroup
}

func NewServer(gate *app.Gate, opts Options) *Server {
	if opts.SendBuffer <= 0 {
		opts.SendBuffer = 32
	}
	if opts.ReadBuffer <= 0 {
		opts.ReadBuffer = 65536
	}
	if opts.Framing == "" {
		opts.Framing = config.FramingRead
	}
	return &Server{gate: gate, opts: opts}
}

func (s *Server) ListenAndServe(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.opts.Addr)
	if err != nil {
		return fmt.Errorf("tcp listen %s: %w", s.opts.Addr, err)
	}
	return s.Serve(ctx, ln)
}

// Addr is the bound address, or nil before Serve.
func (s *Server) Addr() net.Addr {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.ln == nil {
		return nil
	}
	return s.ln.Addr()
}

// Serve accepts until ctx is done, then waits for every connection to wind down.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	s.mu.Lock()
	s.ln = ln
	s.mu.Unlock()

	stop := context.AfterFunc(ctx, func() { _ = ln.Close() })
	defer stop()

	log.Info().Str("module", "tcp").Str("addr", ln.Addr().String()).Str("framing", s.opts.Framing).Msg("notification server started")
	for {
		nc, err := ln.Accept()
		if err != nil {
			if ctx.Err() != nil || errors.Is(err, net.ErrClosed) {
				s.wg.Wait()
				log.Info().Str("module", "tcp").Msg("notification server stopped")
				return nil
			}
			log.Error().Err(err).Str("module", "tcp").Msg("accept")
			time.Sleep(50 * time.Millisecond)
			continue
		}
		s.handle(ctx, nc)
	}
}

func (s *Server) handle(ctx context.Context, nc net.Conn) {
	c := newConn(nc, s.opts)
	log.Info().Str("module", "tcp").Str("conn", string(c.ID())).Msg("new connection")
	peer := s.gate.Open(c)

	s.wg.Add(2)
	go func() {
		defer s.wg.Done()
		c.writePump(ctx)
	}()
	go func() {
		defer s.wg.Done()
		c.readPump(ctx, peer)
	}()
}
