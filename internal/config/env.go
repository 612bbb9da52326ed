package config

import (
	"fmt"
	"log/slog"

	"github.com/joho/godotenv"
)

// envFiles are tried in order; the first one that loads wins.
var envFiles = []string{".env", ".env.local"}

// loadEnvFile loads KEY=VALUE pairs from the first readable env file.
// Variables already present in the process environment are kept.
func loadEnvFile() error {
	for _, envPath := range envFiles {
		if err := godotenv.Load(envPath); err == nil {
			slog.Debug("Loaded environment variables", "path", envPath)
			return nil
		}
	}
	return fmt.Errorf("no .env file found")
}
