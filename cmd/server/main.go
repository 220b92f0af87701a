package main

import (
	"flag"

	"lingo-guard/global"
	"lingo-guard/initialize"
	"lingo-guard/server"
)

func main() {
	configPath := flag.String("config", "config.yaml", "Path to config file")
	flag.Parse()

	app, err := initialize.Build(*configPath)
	if err != nil {
		global.Logger.Fatal().Err(err).Msg("build app")
	}

	global.Logger.Info().
		Str("host", app.Cfg.Server.Host).
		Int("port", app.Cfg.Server.Port).
		Str("backend", app.Cfg.Store.Backend).
		Msg("auth server listening")

	if err := server.StartHTTPServer(app.Cfg.Server.Host, app.Cfg.Server.Port, app.Router); err != nil {
		global.Logger.Fatal().Err(err).Msg("http server")
	}
}
