package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds all configuration for the application.
type Config struct {
	AppEnv         string
	LogLevel       string
	TickInterval   time.Duration
	AlertThreshold float64
	Assets         []string
}

// Load loads configuration from environment variables.
func Load() (*Config, error) {

	// 1. Load .env file into the process environment.
	// Missing file is fine in prod; any other error should be known.
	if err := godotenv.Load(); err != nil {
		if !os.IsNotExist(err) {
			return nil, fmt.Errorf("error loading .env file: %w", err)
		}
	}

	// 2. Explicitly bind viper keys to env var names
	bindings := map[string]string{
		"app.env":         "APP_ENV",
		"log.level":       "LOG_LEVEL",
		"tick.interval":   "TICK_INTERVAL",
		"alert.threshold": "ALERT_THRESHOLD",
		"assets":          "ASSETS",
	}
	for key, env := range bindings {
		if err := viper.BindEnv(key, env); err != nil {
			return nil, fmt.Errorf("could not bind %s: %w", key, err)
		}
	}

	// 3. Set defaults
	viper.SetDefault("app.env", "dev")
	viper.SetDefault("log.level", "info")
	viper.SetDefault("tick.interval", "2s")
	viper.SetDefault("alert.threshold", 0.05)
	viper.SetDefault("assets", "USD,EUR")

	// 4. Get values directly from viper
	cfg := Config{
		AppEnv:         viper.GetString("app.env"),
		LogLevel:       viper.GetString("log.level"),
		TickInterval:   viper.GetDuration("tick.interval"),
		AlertThreshold: viper.GetFloat64("alert.threshold"),
		Assets:         splitAssets(viper.GetString("assets")),
	}

	// 5. Validation
	if cfg.TickInterval <= 0 {
		return nil, fmt.Errorf("TICK_INTERVAL must be a positive duration, got %q", viper.GetString("tick.interval"))
	}
	if cfg.AlertThreshold <= 0 {
		return nil, fmt.Errorf("ALERT_THRESHOLD must be positive, got %f", cfg.AlertThreshold)
	}
	if len(cfg.Assets) == 0 {
		return nil, fmt.Errorf("ASSETS must name at least one asset")
	}

	return &cfg, nil
}

// splitAssets parses the comma-separated ASSETS value.
// Viper does not split env strings into slices for us.
func splitAssets(raw string) []string {
	var assets []string
	for _, part := range strings.Split(raw, ",") {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			assets = append(assets, trimmed)
		}
	}
	return assets
}
