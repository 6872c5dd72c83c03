// Package config reads environment configuration. The root command loads
// a .env file before any of these run; command flags override env values.
package config

import (
	"os"
	"strconv"
	"time"
)

// Environment variable names.
const (
	EnvPortalURL    = "MQA_PORTAL_URL"
	EnvPageSize     = "MQA_PAGE_SIZE"
	EnvConcurrency  = "MQA_CONCURRENCY"
	EnvProbeTimeout = "MQA_PROBE_TIMEOUT"
	EnvOutputDir    = "MQA_OUTPUT_DIR"
	EnvLogLevel     = "MQA_LOG_LEVEL"
)

// String returns the variable's value, or fallback when unset or empty.
func String(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// Int returns the variable parsed as int, or fallback when unset or invalid.
func Int(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return n
}

// Duration returns the variable parsed as a Go duration, or fallback when
// unset or invalid.
func Duration(key string, fallback time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return fallback
	}
	return d
}
