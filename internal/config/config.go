package config

// Config holds all preloader configuration loaded from environment
// variables, parsed with github.com/caarlos0/env.
type Config struct {
	// Logging
	LogLevel  string `env:"LOG_LEVEL" envDefault:"info"`
	LogFormat string `env:"LOG_FORMAT" envDefault:"text"` // "text" or "json"

	// Metrics
	MetricsPort int `env:"METRICS_PORT" envDefault:"8080"`

	// Asset catalog
	CatalogMode string `env:"CATALOG_MODE" envDefault:"dir"` // "dir" or "redis"
	CatalogDir  string `env:"CATALOG_DIR" envDefault:"catalog"`

	// Redis catalog (CATALOG_MODE=redis)
	RedisHost         string `env:"REDIS_HOST" envDefault:"localhost"`
	RedisPort         string `env:"REDIS_PORT" envDefault:"6379"`
	RedisPassword     string `env:"REDIS_PASSWORD"`
	RedisMaxRetries   int    `env:"REDIS_MAX_RETRIES" envDefault:"5"`
	RedisRetryDelayMs int    `env:"REDIS_RETRY_DELAY_MS" envDefault:"1000"`

	// Scene definitions
	ScenesPath string `env:"SCENES_PATH" envDefault:"config/scenes.yaml"`
	RootScene  string `env:"ROOT_SCENE" envDefault:"menu"`

	// Resolver
	ResolveMaxDepth int `env:"RESOLVE_MAX_DEPTH" envDefault:"10"`

	// Package fetching. Fetching is disabled when FETCH_BASE_URL is empty:
	// missing packages then fail the preload instead of being downloaded.
	FetchBaseURL    string `env:"FETCH_BASE_URL"`
	FetchMaxRetries int    `env:"FETCH_MAX_RETRIES" envDefault:"5"`
}
