package main

import (
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"ghostcode/internal/config"
	"ghostcode/internal/game"
	"ghostcode/internal/httpserver"
	"ghostcode/internal/store"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load config")
	}
	if lvl, err := zerolog.ParseLevel(cfg.LogLevel); err == nil {
		zerolog.SetGlobalLevel(lvl)
	}

	db, err := openDB(cfg.DatabaseDSN)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to open database")
	}
	defer db.Close()
	if err := migrate(db); err != nil {
		log.Fatal().Err(err).Msg("failed to run migrations")
	}

	svc := game.NewService(store.NewSQLite(db), game.NewGenerator(nil))
	srv := httpserver.New(cfg, svc, db)
	log.Info().Str("port", cfg.Port).Msg("starting ghostcode server")
	if err := srv.Start(":" + cfg.Port); err != nil {
		log.Fatal().Err(err).Msg("server exited")
	}
}
