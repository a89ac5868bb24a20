package env

import (
	"log/slog"
	"os"

	"github.com/joho/godotenv"
)

// LoadDotEnv loads environment variables from a .env file. ENV_PATH overrides
// the default location; a missing file is fatal only in local mode.
func LoadDotEnv(defaultPath string) error {
	envPath := os.Getenv("ENV_PATH")
	if envPath == "" {
		envPath = defaultPath
	}

	if err := godotenv.Load(envPath); err != nil {
		if os.Getenv("APP_ENV") == "local" || os.Getenv("APP_ENV") == "" {
			slog.Debug("No .env file loaded", "path", envPath, "error", err)
		}
		return err
	}
	return nil
}
