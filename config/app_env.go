package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/akeren/bizguard-leads/internal/log"
	"github.com/joho/godotenv"
)

const (
	AppEnvKey  = "APP_ENV"
	envFileKey = "ENV_FILE"
)

var localEnvs = map[string]bool{
	"":            true,
	"dev":         true,
	"development": true,
	"local":       true,
	"test":        true,
	"testing":     true,
}

// InitializeEnvFile loads ENV_FILE (default .env) into the process environment.
// Variables that are already set win over the file.
func InitializeEnvFile(logger *log.Logger) {
	if os.Getenv("SKIP_DOTENV") == "true" {
		logger.Info("Skipping .env file load (SKIP_DOTENV=true)")
		return
	}

	path := strings.TrimSpace(os.Getenv(envFileKey))
	if path == "" {
		path = ".env"
	}

	if err := godotenv.Load(path); err != nil {
		logger.Warn("No env file loaded", "path", path, "error", err.Error())
		return
	}

	logger.Info("Environment variables loaded", "path", path)
}

func GetAppEnv() string {
	return strings.ToLower(strings.TrimSpace(os.Getenv(AppEnvKey)))
}

func IsLocalEnv(appEnv string) bool {
	return localEnvs[strings.ToLower(strings.TrimSpace(appEnv))]
}

// ValidateAutoMigrateAllowed refuses --auto-migrate outside local and test environments.
func ValidateAutoMigrateAllowed(appEnv string) error {
	if IsLocalEnv(appEnv) {
		return nil
	}

	return fmt.Errorf("--auto-migrate is not allowed when %s=%q (allowed: \"\", dev, development, local, test, testing)",
		AppEnvKey, strings.ToLower(strings.TrimSpace(appEnv)))
}
