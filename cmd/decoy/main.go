package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/MikeSquared-Agency/decoy/internal/anthropic"
	"github.com/MikeSquared-Agency/decoy/internal/api"
	"github.com/MikeSquared-Agency/decoy/internal/archive"
	"github.com/MikeSquared-Agency/decoy/internal/config"
	"github.com/MikeSquared-Agency/decoy/internal/hermes"
	"github.com/MikeSquared-Agency/decoy/internal/persona"
	"github.com/MikeSquared-Agency/decoy/internal/processor"
	"github.com/MikeSquared-Agency/decoy/internal/report"
	"github.com/MikeSquared-Agency/decoy/internal/session"
)

func main() {
	_ = godotenv.Load()

	cfg := config.Load()
	setupLogging(cfg.LogLevel)

	slog.Info("decoy starting", "port", cfg.Port)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// The shared secret is the one fatal startup condition: without it any
	// caller could drive the honeypot.
	if cfg.HoneypotAPIKey == "" {
		slog.Error("HONEYPOT_API_KEY is required")
		os.Exit(1)
	}

	// Persona engine (optional — without a model key Decoy still engages,
	// it just replies with the fixed fallback)
	var llm *anthropic.Client
	if cfg.AnthropicAPIKey != "" {
		llm = anthropic.NewClient(cfg.AnthropicAPIKey, cfg.AnthropicModel)
		slog.Info("persona model ready", "model", cfg.AnthropicModel)
	} else {
		slog.Warn("ANTHROPIC_API_KEY not set — persona running in fallback-only mode")
	}
	personaEngine := persona.New(llm, cfg.PersonaTimeout, slog.Default())

	// Report sink
	reporter := report.NewClient(cfg.GuardianURL, cfg.GuardianAPIKey, cfg.ReportTimeout, slog.Default())
	slog.Info("report sink ready", "url", cfg.GuardianURL)

	// NATS/Hermes (optional — Decoy works without the bus, just no swarm events)
	var bus processor.Publisher
	hermesClient, err := hermes.NewClient(cfg.NatsURL, cfg.NatsToken, slog.Default())
	if err != nil {
		slog.Warn("NATS unavailable — running without swarm events", "error", err)
	} else {
		defer hermesClient.Close()
		bus = hermesClient
		slog.Info("NATS connected", "url", cfg.NatsURL)
	}

	// Report archive (optional — without a database reports are only filed remotely)
	var archiver processor.Archiver
	if cfg.DatabaseURL != "" {
		db, err := archive.New(ctx, cfg.DatabaseURL)
		if err != nil {
			slog.Error("failed to connect to database", "error", err)
			os.Exit(1)
		}
		defer db.Close()
		archiver = db
		slog.Info("report archive connected")
	} else {
		slog.Warn("DATABASE_URL not set — reports will not be archived locally")
	}

	// Processor — the engagement pipeline
	proc := processor.New(
		session.NewStore(),
		session.NewPolicy(cfg.EscalationTurns),
		personaEngine,
		reporter,
		bus,
		archiver,
		slog.Default(),
	)

	// HTTP API
	srv := api.NewServer(cfg.Port, cfg.HoneypotAPIKey, proc)
	go func() {
		if err := srv.Start(); err != nil {
			slog.Error("HTTP server error", "error", err)
		}
	}()

	// Announce registration
	if bus != nil {
		if err := bus.Publish(hermes.SubjectRegistered, map[string]any{
			"timestamp": time.Now().UTC().Format(time.RFC3339),
			"port":      cfg.Port,
		}); err != nil {
			slog.Warn("failed to publish registration", "error", err)
		}
	}

	slog.Info("decoy ready", "port", cfg.Port, "escalation_turns", cfg.EscalationTurns)

	// Graceful shutdown
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	<-sigCh
	slog.Info("shutting down")
	cancel()
	slog.Info("decoy stopped")
}

func setupLogging(level string) {
	var lvl slog.Level
	switch level {
	case "debug":
		lvl = slog.LevelDebug
	case "warn":
		lvl = slog.LevelWarn
	case "error":
		lvl = slog.LevelError
	default:
		lvl = slog.LevelInfo
	}
	handler := slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: lvl})
	slog.SetDefault(slog.New(handler))
}
