package config

import (
	"flag"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/caarlos0/env/v10"
)

// Config holds application level configuration loaded from environment and flags.
type Config struct {
	RunAddress          string        `env:"RUN_ADDRESS" envDefault:":8080"`
	DatabaseURI         string        `env:"DATABASE_URI"`
	RedisAddress        string        `env:"REDIS_ADDRESS" envDefault:"localhost:6379"`
	GatewayBaseURL      string        `env:"GATEWAY_BASE_URL"`
	GatewayServerKey    string        `env:"GATEWAY_SERVER_KEY"`
	TokenSecret         string        `env:"TOKEN_SECRET" envDefault:"change-me-in-production"`
	SweepInterval       time.Duration `env:"SWEEP_INTERVAL" envDefault:"5m"`
	UnpaidTTL           time.Duration `env:"UNPAID_TTL" envDefault:"1h"`
	CompletionGrace     time.Duration `env:"COMPLETION_GRACE" envDefault:"5m"`
	SweepBatchSize      int           `env:"SWEEP_BATCH_SIZE" envDefault:"32"`
	WorkerPoolSize      int           `env:"WORKER_POOL_SIZE" envDefault:"4"`
	ShutdownTimeout     time.Duration `env:"SHUTDOWN_TIMEOUT" envDefault:"10s"`
	DispatchLimit       int           `env:"DISPATCH_LIMIT" envDefault:"10"`
	DispatchRadiusKM    float64       `env:"DISPATCH_RADIUS_KM" envDefault:"25"`
	ServiceAreaLat      float64       `env:"SERVICE_AREA_LAT" envDefault:"-6.2088"`
	ServiceAreaLng      float64       `env:"SERVICE_AREA_LNG" envDefault:"106.8456"`
	ServiceAreaRadiusKM float64       `env:"SERVICE_AREA_RADIUS_KM" envDefault:"30"`
}

// Load parses configuration from environment variables and flags.
func Load() (*Config, error) {
	return load(os.Args[1:], os.Environ())
}

func load(args []string, environ []string) (*Config, error) {
	cfg := &Config{}
	if err := env.ParseWithOptions(cfg, env.Options{Environment: env.ToMap(environ)}); err != nil {
		return nil, fmt.Errorf("parse environment: %w", err)
	}

	fs := flag.NewFlagSet("bersihin", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	fs.StringVar(&cfg.RunAddress, "a", cfg.RunAddress, "HTTP server listen address")
	fs.StringVar(&cfg.DatabaseURI, "d", cfg.DatabaseURI, "PostgreSQL DSN")
	fs.StringVar(&cfg.RedisAddress, "redis", cfg.RedisAddress, "Redis address for the cleaner geo index")
	fs.StringVar(&cfg.GatewayBaseURL, "gateway", cfg.GatewayBaseURL, "Payment gateway base URL")
	fs.StringVar(&cfg.TokenSecret, "token-secret", cfg.TokenSecret, "Secret for verifying actor tokens")
	fs.DurationVar(&cfg.SweepInterval, "sweep-interval", cfg.SweepInterval, "Interval between unpaid-order sweeps")
	fs.DurationVar(&cfg.UnpaidTTL, "unpaid-ttl", cfg.UnpaidTTL, "Age after which unpaid non-cash orders are cancelled")
	fs.IntVar(&cfg.WorkerPoolSize, "worker-pool", cfg.WorkerPoolSize, "Number of concurrent sweep workers")
	fs.IntVar(&cfg.SweepBatchSize, "sweep-batch", cfg.SweepBatchSize, "Maximum orders per sweep batch")
	fs.DurationVar(&cfg.ShutdownTimeout, "shutdown-timeout", cfg.ShutdownTimeout, "Graceful shutdown timeout")
	fs.IntVar(&cfg.DispatchLimit, "dispatch-limit", cfg.DispatchLimit, "Maximum dispatch candidates per booking")

	if err := fs.Parse(args); err != nil {
		return nil, fmt.Errorf("parse flags: %w", err)
	}

	if secretFile, ok := env.ToMap(environ)["TOKEN_SECRET_FILE"]; ok && secretFile != "" {
		content, err := os.ReadFile(secretFile)
		if err != nil {
			return nil, fmt.Errorf("read token secret file: %w", err)
		}
		cfg.TokenSecret = string(content)
	}

	if cfg.WorkerPoolSize <= 0 {
		cfg.WorkerPoolSize = 4
	}

	if cfg.SweepBatchSize <= 0 {
		cfg.SweepBatchSize = 32
	}

	if cfg.SweepInterval <= 0 {
		cfg.SweepInterval = 5 * time.Minute
	}

	if cfg.UnpaidTTL <= 0 {
		cfg.UnpaidTTL = time.Hour
	}

	if cfg.CompletionGrace < 0 {
		cfg.CompletionGrace = 5 * time.Minute
	}

	if cfg.DispatchLimit <= 0 {
		cfg.DispatchLimit = 10
	}

	if cfg.ShutdownTimeout <= 0 {
		cfg.ShutdownTimeout = 10 * time.Second
	}

	if cfg.DatabaseURI == "" {
		return nil, fmt.Errorf("database URI must be provided")
	}

	// GatewayBaseURL is optional: without it webhook settlements are
	// verified by signature alone and no cross-check calls are made.
	if cfg.GatewayServerKey == "" {
		return nil, fmt.Errorf("payment gateway server key must be provided")
	}

	return cfg, nil
}
