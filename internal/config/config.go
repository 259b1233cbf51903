package config

import (
	"os"
	"strconv"
	"time"
)

type Config struct {
	Port            int
	LogLevel        string
	HoneypotAPIKey  string
	AnthropicAPIKey string
	AnthropicModel  string
	PersonaTimeout  time.Duration
	GuardianURL     string
	GuardianAPIKey  string
	ReportTimeout   time.Duration
	EscalationTurns int
	NatsURL         string
	NatsToken       string
	DatabaseURL     string
}

func Load() Config {
	return Config{
		Port:            envInt("DECOY_PORT", 8760),
		LogLevel:        envStr("LOG_LEVEL", "info"),
		HoneypotAPIKey:  envStr("HONEYPOT_API_KEY", ""),
		AnthropicAPIKey: envStr("ANTHROPIC_API_KEY", ""),
		AnthropicModel:  envStr("DECOY_MODEL", "claude-sonnet-4-20250514"),
		PersonaTimeout:  time.Duration(envInt("PERSONA_TIMEOUT_MS", 30000)) * time.Millisecond,
		GuardianURL:     envStr("GUARDIAN_URL", "http://guardian:8900/api/v1/fraud-reports"),
		GuardianAPIKey:  envStr("GUARDIAN_API_KEY", ""),
		ReportTimeout:   time.Duration(envInt("REPORT_TIMEOUT_MS", 5000)) * time.Millisecond,
		EscalationTurns: envInt("DECOY_ESCALATION_TURNS", 5),
		NatsURL:         envStr("NATS_URL", "nats://hermes:4222"),
		NatsToken:       envStr("NATS_TOKEN", ""),
		DatabaseURL:     envStr("DATABASE_URL", ""),
	}
}

func envStr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}
