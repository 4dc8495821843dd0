package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/justinabrahms/thunderdome/internal/config"
	"github.com/justinabrahms/thunderdome/internal/store"
	"github.com/justinabrahms/thunderdome/internal/tournament"
	"github.com/justinabrahms/thunderdome/internal/web"
)

func main() {
	// Setup logging
	log.Logger = zerolog.New(os.Stdout).With().Timestamp().Logger()

	// Load config
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load config")
	}
	if level, err := zerolog.ParseLevel(cfg.Development.LogLevel); err == nil {
		zerolog.SetGlobalLevel(level)
	}

	st, err := store.Open(cfg.Tournament.DataDir)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to open tournament store")
	}
	defer st.Close()

	roster := make([]tournament.EngineConfig, 0, len(cfg.Tournament.Engines))
	for _, e := range cfg.Tournament.Engines {
		roster = append(roster, engineFromConfig(e, cfg.Search))
	}

	hub := web.NewHub()
	go hub.Run()

	seed := cfg.Tournament.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	scheduler, err := tournament.NewScheduler(roster, st, hub, cfg.Tournament.Concurrency, seed)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to build scheduler")
	}
	if cfg.Tournament.MoveCap > 0 {
		scheduler.MoveCap = cfg.Tournament.MoveCap
	}

	// Results API + spectator WebSocket
	service := web.NewService(st)
	srv := &http.Server{
		Addr:         fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler:      service.Router(hub),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}
	go func() {
		log.Info().Str("addr", srv.Addr).Msg("Starting results server")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("Failed to start results server")
		}
	}()

	ctx, cancel := context.WithCancel(context.Background())
	schedulerDone := make(chan struct{})
	go func() {
		defer close(schedulerDone)
		log.Info().Int("engines", len(roster)).Int("concurrency", cfg.Tournament.Concurrency).Msg("THUNDERDOME! Tournament starting")
		if err := scheduler.Run(ctx); err != nil && err != context.Canceled {
			log.Error().Err(err).Msg("Scheduler stopped")
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info().Msg("Shutting down tournament...")

	cancel()
	<-schedulerDone

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("Results server forced to shutdown")
	}

	log.Info().Msg("Tournament exited")
}

func engineFromConfig(e config.EngineConfig, defaults config.SearchConfig) tournament.EngineConfig {
	cfg := tournament.EngineConfig{
		ID:      e.ID,
		Depth:   e.Depth,
		Workers: e.Workers,
	}
	cfg.Weights.Material = e.Material
	cfg.Weights.Position = e.Position
	cfg.Weights.Mobility = e.Mobility
	if cfg.Depth <= 0 {
		cfg.Depth = defaults.Depth
	}
	if cfg.Workers <= 0 {
		cfg.Workers = defaults.Workers
	}
	return cfg
}
