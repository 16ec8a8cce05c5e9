package config

import (
	"fmt"

	"github.com/caarlos0/env/v10"
	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
)

// Load reads configuration from environment variables.
// It attempts to load from a .env file first (for local development),
// then parses environment variables into the Config struct.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		logrus.Debugf("no .env file loaded: %v", err)
	} else {
		logrus.Infof("loaded environment variables from .env file")
	}

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config from environment: %w", err)
	}

	return cfg, nil
}

// Validate performs custom validation on the configuration.
func (c *Config) Validate() error {
	if c.MetricsPort < 1 || c.MetricsPort > 65535 {
		return fmt.Errorf("invalid METRICS_PORT: %d (must be 1-65535)", c.MetricsPort)
	}

	switch c.CatalogMode {
	case "dir", "redis":
	default:
		return fmt.Errorf("invalid CATALOG_MODE: %q (must be \"dir\" or \"redis\")", c.CatalogMode)
	}

	if c.CatalogMode == "dir" && c.CatalogDir == "" {
		return fmt.Errorf("CATALOG_DIR is required when CATALOG_MODE=dir")
	}

	if c.ScenesPath == "" {
		return fmt.Errorf("SCENES_PATH is required")
	}
	if c.RootScene == "" {
		return fmt.Errorf("ROOT_SCENE is required")
	}

	if c.ResolveMaxDepth < 1 {
		return fmt.Errorf("invalid RESOLVE_MAX_DEPTH: %d (must be at least 1)", c.ResolveMaxDepth)
	}
	if c.FetchMaxRetries < 0 {
		return fmt.Errorf("invalid FETCH_MAX_RETRIES: %d", c.FetchMaxRetries)
	}

	return nil
}
