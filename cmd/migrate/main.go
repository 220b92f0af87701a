package main

import (
	"context"
	"flag"
	"os"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"lingo-guard/app/db"
	"lingo-guard/app/migrate"
	"lingo-guard/app/models"
	"lingo-guard/config"
	"lingo-guard/global"
)

func main() {
	global.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stdout})
	configPath := flag.String("config", "config.yaml", "Path to config file")
	registryPath := flag.String("registry", "", "Registry JSON path (defaults to the configured one)")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		global.Logger.Fatal().Err(err).Msg("load config")
	}
	path := *registryPath
	if path == "" {
		path = cfg.Store.RegistryPath
	}

	gdb, err := db.Connect(db.Config{Host: cfg.DB.Host, Port: cfg.DB.Port, User: cfg.DB.User, Password: cfg.DB.Pass, DBName: cfg.DB.Name})
	if err != nil {
		global.Logger.Fatal().Err(err).Msg("connect db")
	}
	if err := gdb.AutoMigrate(&models.User{}); err != nil {
		global.Logger.Fatal().Err(err).Msg("migrate schema")
	}

	count, err := migrate.Run(context.Background(), path, gdb)
	if err != nil {
		global.Logger.Fatal().Err(err).Int("migrated", count).Msg("migration failed")
	}
	global.Logger.Info().Int("migrated", count).Msg("users migrated from registry to database")
}
