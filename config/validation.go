package config

import (
	"fmt"
	"strconv"
	"strings"
)

// ValidateConfig checks the loaded configuration. Development defaults are
// accepted everywhere except production, which must carry real credentials.
func ValidateConfig(cfg *Config) error {
	var errors []string

	if _, err := strconv.Atoi(cfg.ServerPort); err != nil {
		errors = append(errors, fmt.Sprintf("SERVER_PORT %q is not a number", cfg.ServerPort))
	}
	if cfg.DBHost == "" {
		errors = append(errors, "DB_HOST must not be empty")
	}
	if cfg.DBName == "" {
		errors = append(errors, "DB_NAME must not be empty")
	}
	if cfg.JWTSecret == "" {
		errors = append(errors, "JWT_SECRET must not be empty")
	}

	if IsProduction() {
		if cfg.JWTSecret == "dev-secret-key" {
			errors = append(errors, "JWT_SECRET must be set in production")
		}
		if cfg.DBPassword == "postgres" {
			errors = append(errors, "DB_PASSWORD must be set in production")
		}
	}

	if len(errors) > 0 {
		return fmt.Errorf("%s", strings.Join(errors, "; "))
	}
	return nil
}
