package main

import (
	"flag"

	"repohub/app/storage"
	"repohub/global"
	"repohub/initialize"
	"repohub/server"
)

func main() {
	var (
		configPath = flag.String("config", "config/config.yaml", "Path to the YAML config file")
		debug      = flag.Bool("debug", false, "Enable debug logging")
	)
	flag.Parse()

	app, err := initialize.Build(*configPath, *debug)
	if err != nil {
		global.Logger.Fatal().Err(err).Msg("startup failed")
	}

	if app.Cfg.Storage.Watch {
		w, err := storage.Watch(app.Storage.Root(), global.Logger)
		if err != nil {
			global.Logger.Fatal().Err(err).Msg("storage watcher failed")
		}
		defer w.Close()
	}

	global.Logger.Info().Str("host", app.Cfg.Server.Host).Int("port", app.Cfg.Server.Port).Msg("listening")
	if err := server.StartHTTPServer(app.Cfg.Server.Host, app.Cfg.Server.Port, app.Router); err != nil {
		global.Logger.Fatal().Err(err).Msg("server stopped")
	}
}
