// Package config loads courierd's runtime configuration from the
// environment.
package config

import "os"

type Config struct {
	// Wire protocol
	Addr string

	// Persistence
	DataDir string

	// Ops HTTP listener for /healthz and /metrics; empty disables it.
	MetricsAddr string

	// Logging
	LogLevel string
}

func Load() Config {
	return Config{
		Addr:        getenv("COURIER_ADDR", "127.0.0.1:8080"),
		DataDir:     getenv("COURIER_DATA_DIR", "./data"),
		MetricsAddr: getenv("COURIER_METRICS_ADDR", ":9100"),
		LogLevel:    getenv("COURIER_LOG_LEVEL", "info"),
	}
}

func getenv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}
