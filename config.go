package main

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"github.com/CrowderSoup/taskboard/board"
)

// Config holds the server settings read from the environment.
type Config struct {
	Port             string
	DatabasePath     string
	SnapshotInterval time.Duration
	Categories       []string
	AllowedOrigins   []string
}

// LoadEnv loads variables from filename into the environment. A missing
// file is not an error; variables already set are never overwritten.
func LoadEnv(filename string) error {
	if err := godotenv.Load(filename); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("failed to load %s: %w", filename, err)
	}
	return nil
}

// loadConfig builds a Config from the environment, falling back to
// defaults for anything unset.
func loadConfig() (Config, error) {
	cfg := Config{
		Port:             getEnv("PORT", "3001"),
		DatabasePath:     getEnv("DATABASE_PATH", "./taskboard.db"),
		SnapshotInterval: 30 * time.Second,
		Categories:       append([]string(nil), board.DefaultCategories...),
		AllowedOrigins:   []string{"*"},
	}

	if v := os.Getenv("SNAPSHOT_INTERVAL"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return Config{}, fmt.Errorf("invalid SNAPSHOT_INTERVAL %q: %w", v, err)
		}
		if d < time.Second {
			return Config{}, fmt.Errorf("SNAPSHOT_INTERVAL must be at least 1s, got %s", d)
		}
		cfg.SnapshotInterval = d
	}

	if list := splitList(os.Getenv("TASK_CATEGORIES")); len(list) > 0 {
		cfg.Categories = list
	}
	if list := splitList(os.Getenv("ALLOWED_ORIGINS")); len(list) > 0 {
		cfg.AllowedOrigins = list
	}

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
