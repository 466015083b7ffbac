// Package config reads docpipe's environment configuration once at startup.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

type Config struct {
	// AllowInlineCode renders <%- %> directives instead of stripping them.
	AllowInlineCode bool

	// HTTP wrapper
	Port         string
	MaxBodyBytes int64

	// Path of the YAML document index used to rewrite intra-corpus links.
	MetaIndex string

	FetchTimeout time.Duration
}

func Load() Config {
	cfg := Config{
		AllowInlineCode: envTrue("ALLOW_INLINE_CODE"),

		Port:         envOr("PORT", "8090"),
		MaxBodyBytes: envInt64("MAX_BODY_BYTES", 10<<20),

		MetaIndex: os.Getenv("META_INDEX"),

		FetchTimeout: envDuration("FETCH_TIMEOUT", 30*time.Second),
	}

	if cfg.MaxBodyBytes <= 0 {
		cfg.MaxBodyBytes = 10 << 20
	}
	if cfg.FetchTimeout <= 0 {
		cfg.FetchTimeout = 30 * time.Second
	}

	return cfg
}

func (c Config) Validate() error {
	if _, err := strconv.Atoi(c.Port); err != nil {
		return fmt.Errorf("PORT must be numeric, got %q", c.Port)
	}
	if c.MetaIndex != "" {
		if _, err := os.Stat(c.MetaIndex); err != nil {
			return fmt.Errorf("META_INDEX: %w", err)
		}
	}
	return nil
}

// envTrue is true only for a case-insensitive "true".
func envTrue(key string) bool {
	return strings.EqualFold(os.Getenv(key), "true")
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt64(key string, fallback int64) int64 {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.ParseInt(v, 10, 64); err == nil {
			return n
		}
	}
	return fallback
}

func envDuration(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return fallback
}
