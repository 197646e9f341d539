/*
Copyright (C) 2026 Polaris Observatory Collaboration

SPDX-License-Identifier: AGPL-3.0-or-later
*/

package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
)

// Config covers process level configuration read from environment variables.
type Config struct {
	Environment string
	HTTPBind    string
	HTTPPort    int
	PolicyFile  string // Optional YAML tuning file for the built-in policies

	// Tracing configuration
	TracingEnabled    bool
	OTLPEndpoint      string
	TracingSampleRate float64
}

// Load reads environment variables, applies defaults, and validates the result.
func Load() (*Config, error) {
	cfg := &Config{
		Environment: getEnv("MERIDIAN_ENV", "development"),
		HTTPBind:    getEnv("MERIDIAN_HTTP_BIND", "0.0.0.0"),
		HTTPPort:    getEnvInt("MERIDIAN_HTTP_PORT", 8080),
		PolicyFile:  getEnv("MERIDIAN_POLICY_FILE", ""),

		TracingEnabled:    getEnvBool("MERIDIAN_TRACING_ENABLED", false),
		OTLPEndpoint:      getEnv("MERIDIAN_OTLP_ENDPOINT", "localhost:4317"),
		TracingSampleRate: getEnvFloat("MERIDIAN_TRACING_SAMPLE_RATE", 1.0),
	}

	if cfg.HTTPPort <= 0 || cfg.HTTPPort > 65535 {
		return nil, fmt.Errorf("MERIDIAN_HTTP_PORT out of range: %d", cfg.HTTPPort)
	}
	if cfg.TracingSampleRate < 0 || cfg.TracingSampleRate > 1 {
		return nil, fmt.Errorf("MERIDIAN_TRACING_SAMPLE_RATE must be in [0,1], got %v", cfg.TracingSampleRate)
	}
	if cfg.PolicyFile != "" {
		if _, err := os.Stat(cfg.PolicyFile); err != nil {
			return nil, fmt.Errorf("MERIDIAN_POLICY_FILE: %w", err)
		}
	}

	return cfg, nil
}

func getEnv(key, def string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return def
}

func getEnvInt(key string, def int) int {
	if val := os.Getenv(key); val != "" {
		if parsed, err := strconv.Atoi(val); err == nil {
			return parsed
		}
	}
	return def
}

func getEnvBool(key string, def bool) bool {
	if val := os.Getenv(key); val != "" {
		val = strings.ToLower(strings.TrimSpace(val))
		if val == "true" || val == "1" || val == "yes" {
			return true
		}
		if val == "false" || val == "0" || val == "no" {
			return false
		}
	}
	return def
}

func getEnvFloat(key string, def float64) float64 {
	if val := os.Getenv(key); val != "" {
		if parsed, err := strconv.ParseFloat(val, 64); err == nil {
			return parsed
		}
	}
	return def
}
