// Command fishbanks runs the Fishbanks fishery-management game server.
package main

import (
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/caarlos0/env/v11"

	"github.com/talgya/fishbanks/internal/api"
	"github.com/talgya/fishbanks/internal/engine"
	"github.com/talgya/fishbanks/internal/game"
	"github.com/talgya/fishbanks/internal/persistence"
)

type config struct {
	Port     int    `env:"FISHBANKS_PORT" envDefault:"8080"`
	DBPath   string `env:"FISHBANKS_DB" envDefault:"data/fishbanks.db"`
	AdminKey string `env:"FISHBANKS_ADMIN_KEY"`
	Scenario string `env:"FISHBANKS_SCENARIO"`
}

func main() {
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	var cfg config
	if err := env.Parse(&cfg); err != nil {
		slog.Error("failed to parse environment", "error", err)
		os.Exit(1)
	}

	slog.Info("Fishbanks — fishery management simulation")

	// ── Scenario ──────────────────────────────────────────────────────
	scenario := game.DefaultConfig()
	if cfg.Scenario != "" {
		var err error
		scenario, err = game.LoadConfig(cfg.Scenario)
		if err != nil {
			slog.Error("failed to load scenario", "path", cfg.Scenario, "error", err)
			os.Exit(1)
		}
		slog.Info("scenario loaded", "path", cfg.Scenario)
	}

	// ── Database ──────────────────────────────────────────────────────
	os.MkdirAll(filepath.Dir(cfg.DBPath), 0755)
	db, err := persistence.Open(cfg.DBPath)
	if err != nil {
		slog.Error("failed to open database", "error", err)
		os.Exit(1)
	}
	defer db.Close()
	slog.Info("database opened", "path", cfg.DBPath)

	// ── Session ───────────────────────────────────────────────────────
	session := engine.NewSession(db)

	// A previous game in the archive means the operator probably wants
	// to pick it up where it stopped.
	if snap, err := db.LoadLatest(); err == nil {
		slog.Info("found archived game",
			"session", snap.SessionID,
			"latest_year", snap.Year,
		)
		slog.Info("POST /api/v1/resume to continue it, or /api/v1/game to start fresh")
	}

	// ── HTTP API ──────────────────────────────────────────────────────
	if cfg.AdminKey == "" {
		slog.Warn("FISHBANKS_ADMIN_KEY not set — operator POST endpoints will be disabled")
	}

	apiServer := &api.Server{
		Session:  session,
		DB:       db,
		Scenario: scenario,
		Port:     cfg.Port,
		AdminKey: cfg.AdminKey,
	}
	apiServer.Start()

	fmt.Printf("\nFishbanks server ready.\n")
	fmt.Printf("API: http://localhost:%d/api/v1/status\n", cfg.Port)
	fmt.Println("(Ctrl+C to stop)")

	// ── Wait for shutdown ─────────────────────────────────────────────
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	sig := <-sigCh
	slog.Info("received signal, shutting down", "signal", sig)

	if session.Status() == engine.StatusInProgress || session.Status() == engine.StatusResumed {
		slog.Info("final save...")
		if err := session.SaveGame(); err != nil {
			slog.Error("final save failed", "error", err)
		}
	}

	fmt.Println("Server stopped. Game archived.")
}
