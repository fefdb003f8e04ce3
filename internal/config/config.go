package config

import (
	"flag"
	"fmt"
	"io"
	"os"
	"strconv"
	"time"
)

// Config holds application level configuration loaded from environment and flags.
type Config struct {
	RunAddress        string
	DatabaseURI       string
	ProviderAddress   string
	RatesAddress      string
	JWTSecret         string
	DefaultCurrency   string
	DispatchInterval  time.Duration
	DispatchBatchSize int
	WorkerPoolSize    int
	ShutdownTimeout   time.Duration
}

const (
	defaultRunAddress       = ":8080"
	defaultJWTSecret        = "change-me-in-production"
	defaultCurrency         = "USD"
	defaultDispatchInterval = 3 * time.Second
	defaultWorkerPoolSize   = 4
	defaultShutdownTimeout  = 10 * time.Second
	defaultDispatchBatch    = 32
)

// Load parses configuration from flags and environment variables.
func Load() (*Config, error) {
	return load(os.Args[1:], os.LookupEnv)
}

type envLookup func(string) (string, bool)

func load(args []string, lookup envLookup) (*Config, error) {
	cfg := &Config{
		RunAddress:        getString(lookup, "RUN_ADDRESS", defaultRunAddress),
		DatabaseURI:       getString(lookup, "DATABASE_URI", ""),
		ProviderAddress:   getString(lookup, "PROVIDER_ADDRESS", ""),
		RatesAddress:      getString(lookup, "RATES_ADDRESS", ""),
		JWTSecret:         getString(lookup, "JWT_SECRET", defaultJWTSecret),
		DefaultCurrency:   getString(lookup, "DEFAULT_CURRENCY", defaultCurrency),
		DispatchInterval:  getDuration(lookup, "DISPATCH_INTERVAL", defaultDispatchInterval),
		DispatchBatchSize: getInt(lookup, "DISPATCH_BATCH_SIZE", defaultDispatchBatch),
		WorkerPoolSize:    getInt(lookup, "WORKER_POOL_SIZE", defaultWorkerPoolSize),
		ShutdownTimeout:   getDuration(lookup, "SHUTDOWN_TIMEOUT", defaultShutdownTimeout),
	}

	fs := flag.NewFlagSet("panel", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	var (
		dispatchIntervalStr = cfg.DispatchInterval.String()
		shutdownTimeoutStr  = cfg.ShutdownTimeout.String()
	)

	fs.StringVar(&cfg.RunAddress, "a", cfg.RunAddress, "HTTP server listen address")
	fs.StringVar(&cfg.DatabaseURI, "d", cfg.DatabaseURI, "PostgreSQL DSN")
	fs.StringVar(&cfg.ProviderAddress, "p", cfg.ProviderAddress, "Upstream provider base URL")
	fs.StringVar(&cfg.RatesAddress, "r", cfg.RatesAddress, "Currency rate source base URL")
	fs.StringVar(&cfg.JWTSecret, "jwt-secret", cfg.JWTSecret, "Secret for signing auth tokens")
	fs.StringVar(&cfg.DefaultCurrency, "currency", cfg.DefaultCurrency, "Default display currency for new users")
	fs.IntVar(&cfg.WorkerPoolSize, "worker-pool", cfg.WorkerPoolSize, "Number of concurrent dispatch workers")
	fs.StringVar(&dispatchIntervalStr, "dispatch-interval", dispatchIntervalStr, "Interval between dispatch polls")
	fs.StringVar(&shutdownTimeoutStr, "shutdown-timeout", shutdownTimeoutStr, "Graceful shutdown timeout")
	fs.IntVar(&cfg.DispatchBatchSize, "dispatch-batch", cfg.DispatchBatchSize, "Maximum orders per dispatch poll")

	if err := fs.Parse(args); err != nil {
		return nil, fmt.Errorf("parse flags: %w", err)
	}

	var err error

	if cfg.DispatchInterval, err = time.ParseDuration(dispatchIntervalStr); err != nil {
		return nil, fmt.Errorf("invalid dispatch interval: %w", err)
	}

	if cfg.ShutdownTimeout, err = time.ParseDuration(shutdownTimeoutStr); err != nil {
		return nil, fmt.Errorf("invalid shutdown timeout: %w", err)
	}

	if secretFile, ok := lookup("JWT_SECRET_FILE"); ok && secretFile != "" {
		content, err := os.ReadFile(secretFile)
		if err != nil {
			return nil, fmt.Errorf("read jwt secret file: %w", err)
		}
		cfg.JWTSecret = string(content)
	}

	if cfg.WorkerPoolSize <= 0 {
		cfg.WorkerPoolSize = defaultWorkerPoolSize
	}

	if cfg.DispatchBatchSize <= 0 {
		cfg.DispatchBatchSize = defaultDispatchBatch
	}

	if cfg.DispatchInterval <= 0 {
		cfg.DispatchInterval = defaultDispatchInterval
	}

	if cfg.ShutdownTimeout <= 0 {
		cfg.ShutdownTimeout = defaultShutdownTimeout
	}

	if cfg.DefaultCurrency == "" {
		cfg.DefaultCurrency = defaultCurrency
	}

	if cfg.DatabaseURI == "" {
		return nil, fmt.Errorf("database URI must be provided")
	}

	if cfg.ProviderAddress == "" {
		return nil, fmt.Errorf("provider address must be provided")
	}

	if cfg.RatesAddress == "" {
		return nil, fmt.Errorf("rates address must be provided")
	}

	return cfg, nil
}

func getString(lookup envLookup, key, def string) string {
	if v, ok := lookup(key); ok && v != "" {
		return v
	}
	return def
}

func getInt(lookup envLookup, key string, def int) int {
	if v, ok := lookup(key); ok && v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return def
}

func getDuration(lookup envLookup, key string, def time.Duration) time.Duration {
	if v, ok := lookup(key); ok && v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return def
}
