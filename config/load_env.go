package config

import (
	"os"

	"github.com/subosito/gotenv"
	"golang.org/x/exp/slog"
)

func LoadEnv(env string) {
	envFile := "config/envs/.env." + env
	if err := gotenv.Load(envFile); err != nil {
		slog.Warn("No .env file found, using OS environment")
	}
}

// GetenvDefault reads an environment knob, falling back when unset.
func GetenvDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
