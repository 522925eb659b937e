package main

import (
	"context"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/robalobadob/memory/apps/go-server/assets"
	"github.com/robalobadob/memory/apps/go-server/internal/config"
	"github.com/robalobadob/memory/apps/go-server/internal/deck"
	"github.com/robalobadob/memory/apps/go-server/internal/history"
	"github.com/robalobadob/memory/apps/go-server/internal/httpserver"
	"github.com/robalobadob/memory/apps/go-server/internal/session"
)

const (
	sessionMaxAge = 6 * time.Hour
	pruneEvery    = 10 * time.Minute
)

func main() {
	_ = godotenv.Load()
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("load config")
	}
	if lvl, err := zerolog.ParseLevel(cfg.LogLevel); err == nil {
		zerolog.SetGlobalLevel(lvl)
	}
	if !cfg.Production {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen})
	}

	pool, err := deck.Load(cfg.Board.ValuePool)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load value pool")
	}

	db, err := history.Open(cfg.DBPath)
	if err != nil {
		log.Fatal().Err(err).Msg("open db")
	}
	defer db.Close()
	if err := history.Migrate(db, assets.Migrations()); err != nil {
		log.Fatal().Err(err).Msg("migrate")
	}

	srv := httpserver.New(httpserver.Deps{
		Config:   cfg,
		Pool:     pool,
		Sessions: session.NewMemoryStore(),
		DB:       db,
	})

	go func() {
		t := time.NewTicker(pruneEvery)
		defer t.Stop()
		for range t.C {
			if n := srv.PruneSessions(context.Background(), sessionMaxAge); n > 0 {
				log.Info().Int("pruned", n).Msg("dropped stale sessions")
			}
		}
	}()

	log.Info().Str("port", cfg.Port).Int("values", len(pool)).Msg("starting go-server")
	if err := srv.Start(":" + cfg.Port); err != nil {
		log.Fatal().Err(err).Msg("server exited")
	}
}
