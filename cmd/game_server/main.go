// Command game_server serves games over a websocket endpoint.
package main

import (
	"context"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"papertactics/internal/config"
	"papertactics/internal/game"
	"papertactics/internal/game/core"
	"papertactics/internal/server"
)

func main() {
	configPath := flag.String("config", "", "Path to config file")
	port := flag.Int("port", -1, "The server port (-1 to use config default)")
	host := flag.String("host", "", "The server host (empty to use config default)")
	logLevel := flag.String("log-level", "", "Log level (debug, info, warn, error) (empty to use config default)")
	maxGames := flag.Int("max-games", -1, "Maximum concurrent games (-1 to use config default)")
	flag.Parse()

	if err := config.Init(*configPath); err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize config")
	}
	cfg := config.Get()

	// Use config defaults if not overridden by flags
	if *port == -1 {
		*port = cfg.Server.Port
	}
	if *host == "" {
		*host = cfg.Server.Host
	}
	if *logLevel == "" {
		*logLevel = cfg.Server.LogLevel
	}
	if *maxGames == -1 {
		*maxGames = cfg.Server.MaxGames
	}

	setupLogging(*logLevel, cfg.Server.LogFormat)

	log.Info().
		Str("host", *host).
		Int("port", *port).
		Int("max_games", *maxGames).
		Msg("Starting game server")

	manager := server.NewManager(server.ManagerConfig{
		MaxGames:    *maxGames,
		IdleTimeout: time.Duration(cfg.Server.IdleGameMinutes) * time.Minute,
	}, log.Logger)
	defer manager.Close()

	hub := server.NewHub(manager, preferencesFromConfig(cfg.Game), log.Logger)
	go hub.Run()

	// Re-apply the reloadable settings on file change. Listen address and
	// log format stay fixed for the process lifetime.
	config.WatchConfig(func() {
		reloaded := config.Get()
		manager.UpdateLimits(reloaded.Server.MaxGames,
			time.Duration(reloaded.Server.IdleGameMinutes)*time.Minute)
		hub.SetDefaults(preferencesFromConfig(reloaded.Game))
		log.Info().Msg("Configuration reloaded")
	})

	mux := http.NewServeMux()
	mux.HandleFunc("/ws", hub.ServeWS)
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	srv := &http.Server{
		Addr:    fmt.Sprintf("%s:%d", *host, *port),
		Handler: mux,
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		log.Fatal().Err(err).Msg("Server failed")
	case sig := <-sigCh:
		log.Info().Str("signal", sig.String()).Msg("Shutting down")
	}

	ctx, cancel := context.WithTimeout(context.Background(),
		time.Duration(cfg.Server.GracefulShutdownSeconds)*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Error().Err(err).Msg("Graceful shutdown failed")
	}
}

func setupLogging(level, format string) {
	lvl, err := zerolog.ParseLevel(level)
	if err != nil {
		lvl = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(lvl)

	if format == "console" {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})
	}
}

func preferencesFromConfig(gc config.GameConfig) game.Preferences {
	return game.Preferences{
		Size:                 gc.BoardSize,
		TurnCount:            gc.TurnCount,
		IsDeathmatch:         gc.Deathmatch,
		IsAgainstBot:         gc.AgainstBot,
		IsDoubleBase:         gc.DoubleBase,
		IsWithRandomBases:    gc.RandomBases,
		IsVisibilityApplied:  gc.FogOfWar,
		TrenchDensityPercent: gc.TrenchDensityPercent,
		Geometry:             core.NewSquareGeometry(gc.BoardSize),
	}
}
