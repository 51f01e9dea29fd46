// Package config loads process configuration from the environment.
package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

type Config struct {
	Addr            string
	DatabaseURL     string
	ValkeyAddr      string
	DataDir         string
	CacheTTL        time.Duration
	DefaultLanguage string
	Languages       []string
	Verbosity       int
}

func Load() Config {
	return Config{
		Addr:            getenv("BUILDER_ADDR", ":8080"),
		DatabaseURL:     getenv("DATABASE_URL", ""),
		ValkeyAddr:      getenv("VALKEY_ADDR", ""),
		DataDir:         getenv("BUILDER_DATA_DIR", "./data/layouts"),
		CacheTTL:        time.Duration(getenvInt("BUILDER_CACHE_TTL_SECONDS", 86400)) * time.Second,
		DefaultLanguage: getenv("BUILDER_DEFAULT_LANGUAGE", "en"),
		Languages:       getenvList("BUILDER_LANGUAGES", []string{"en"}),
		Verbosity:       getenvInt("BUILDER_LOG_VERBOSITY", 0),
	}
}

func getenv(key, fallback string) string {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	return value
}

func getenvInt(key string, fallback int) int {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		return fallback
	}
	return parsed
}

func getenvList(key string, fallback []string) []string {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	var out []string
	for _, part := range strings.Split(value, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	if len(out) == 0 {
		return fallback
	}
	return out
}
