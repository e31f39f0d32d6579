package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	flag "github.com/spf13/pflag"
	"golang.org/x/sync/errgroup"

	"github.com/dkeye/ctinotify/internal/adapters/authe"
	"github.com/dkeye/ctinotify/internal/adapters/directory"
	router "github.com/dkeye/ctinotify/internal/adapters/http"
	"github.com/dkeye/ctinotify/internal/adapters/pbx"
	"github.com/dkeye/ctinotify/internal/adapters/tcp"
	"github.com/dkeye/ctinotify/internal/adapters/ws"
	"github.com/dkeye/ctinotify/internal/app"
	"github.com/dkeye/ctinotify/internal/config"
)

func main() {
	configPath := flag.StringP("config", "c", "", "path to the config file (default config/config.<CONFIG_ENV>.yaml)")
	flag.Parse()

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	// Initialize zerolog global logger early so config.Load can use it.
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	zerolog.SetGlobalLevel(zerolog.InfoLevel)

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load config")
	}
	if lvl, err := zerolog.ParseLevel(cfg.LogLevel); err == nil && lvl != zerolog.NoLevel {
		zerolog.SetGlobalLevel(lvl)
	} else if err != nil {
		log.Warn().Err(err).Str("log_level", cfg.LogLevel).Msg("unknown log level, keeping info")
	}

	dir, err := directory.Load(cfg.Directory.File)
	if err != nil {
		log.Warn().Err(err).Msg("directory not loaded, nobody will receive notifications")
		dir = directory.Empty()
	}

	tokens := authe.NewStore(cfg.Authe.Expiration, cfg.Authe.Secret)
	tokens.StartCleanupRoutine(cfg.Authe.Expiration)
	defer func() { _ = tokens.Close() }()

	reg := app.NewRegistry()
	limiter := app.NewLoginLimiter(cfg.LoginLimit.Attempts, cfg.LoginLimit.Interval)
	gate := &app.Gate{
		Registry: reg,
		Tokens:   tokens,
		Commands: cfg.Commands,
		Limiter:  limiter,
	}

	builder := &app.Builder{
		Directory: dir,
		Authz:     dir,
		Streams:   dir,
		Templates: app.Templates{
			Scheme:       cfg.Notification.Scheme,
			Host:         cfg.Notification.Host,
			CloseTimeout: cfg.Notification.CloseTimeout,
			Call: app.PopupTemplate{
				Path:   cfg.Notification.Call.Template,
				Width:  cfg.Notification.Call.Width,
				Height: cfg.Notification.Call.Height,
			},
			Streaming: app.PopupTemplate{
				Path:   cfg.Notification.Streaming.Template,
				Width:  cfg.Notification.Streaming.Width,
				Height: cfg.Notification.Streaming.Height,
			},
		},
	}
	dispatcher := &app.Dispatcher{
		Registry:  reg,
		Directory: dir,
		Builder:   builder,
		Policy:    app.SimplePolicy{Action: app.ParseBackpressureAction(cfg.SlowConsumer)},
	}
	bus := pbx.NewBus(cfg.PBX.Buffer)

	r := router.SetupRouter(ctx, cfg, router.Deps{
		Registry: reg,
		Users:    dir,
		Tokens:   tokens,
		Events:   bus,
		Signal:   ws.NewController(gate, ws.OptionsFromConfig(cfg.WS)),
		Limiter:  limiter,
	})
	addr := fmt.Sprintf(":%d", cfg.Port)
	srv := &http.Server{
		Addr:    addr,
		Handler: r,
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		log.Info().Str("addr", addr).Msg("HTTP server started")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer shutdownCancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			log.Error().Err(err).Msg("HTTP server forced to shutdown")
		}
		return nil
	})

	switch err := cfg.ValidateTCP(); {
	case !cfg.TCP.Enabled:
		log.Info().Msg("TCP notification server disabled")
	case err != nil:
		log.Error().Err(err).Msg("TCP notification server not started")
	default:
		tcpSrv := tcp.NewServer(gate, tcp.OptionsFromConfig(cfg.TCP))
		g.Go(func() error {
			log.Info().Int("port", cfg.TCP.Port).Str("framing", cfg.TCP.Framing).Msg("TCP notification server started")
			return tcpSrv.ListenAndServe(gctx)
		})
	}

	g.Go(func() error { return app.NewRefresher(reg, tokens).Run(gctx) })
	g.Go(func() error { return dispatcher.Run(gctx, bus) })

	if err := g.Wait(); err != nil {
		log.Error().Err(err).Msg("server stopped with error")
		os.Exit(1)
	}
	log.Info().Msg("Server exited gracefully")
}
