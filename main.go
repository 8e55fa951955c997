package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/robalobadob/associa/internal/config"
	"github.com/robalobadob/associa/internal/httpserver"
	"github.com/robalobadob/associa/internal/leaderboard"
	"github.com/robalobadob/associa/internal/store"
)

func main() {
	cfg, err := config.LoadServer()
	if err != nil {
		log.Fatal().Err(err).Msg("invalid configuration")
	}
	if lvl, err := zerolog.ParseLevel(cfg.LogLevel); err == nil {
		zerolog.SetGlobalLevel(lvl)
	}

	st, err := store.Open(cfg.Store)
	if err != nil {
		log.Fatal().Err(err).Str("backend", cfg.Store.Backend).Msg("failed to open leaderboard store")
	}
	defer st.Close()

	loc := cfg.Location
	core := leaderboard.New(st, leaderboard.WithClock(func() time.Time { return time.Now().In(loc) }))
	srv := httpserver.New(core, httpserver.Options{ClientOrigins: cfg.ClientOrigins})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	log.Info().Str("port", cfg.Port).Str("backend", cfg.Store.Backend).Str("tz", loc.String()).Msg("starting associa leaderboard")
	if err := srv.Run(ctx, ":"+cfg.Port); err != nil {
		log.Fatal().Err(err).Msg("server exited")
	}
}
