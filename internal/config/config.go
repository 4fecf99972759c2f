// Package config loads the runtime configuration from a YAML file, with
// defaults applied first so a missing or partial file is fine.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// Config represents the runtime configuration from .filefitness.yaml.
type Config struct {
	LogLevel    string `yaml:"log_level"`     // minimum severity: debug, info, warn, error
	Workers     int    `yaml:"workers"`       // 1 = sequential, 0 = one per CPU
	DigestDB    string `yaml:"digest_db"`     // path to the bbolt digest index; empty disables it
	Hash        string `yaml:"hash"`          // content hash algorithm: md5, sha256, xxhash
	MaxFileSize string `yaml:"max_file_size"` // e.g. "50MB"; empty means unlimited
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		LogLevel: "debug",
		Workers:  1,
		Hash:     "md5",
	}
}

// LoadConfig reads and parses a runtime config YAML file.
// Returns default config if the file doesn't exist.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("read config %s: %w", path, err)
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config %s: %w", path, err)
	}

	return cfg, nil
}

// MaxFileSizeBytes parses the configured max file size into bytes.
// Returns 0 when no limit is configured.
func (c Config) MaxFileSizeBytes() (int64, error) {
	if c.MaxFileSize == "" {
		return 0, nil
	}
	size, err := parseFileSize(c.MaxFileSize)
	if err != nil {
		return 0, fmt.Errorf("parse max_file_size %q: %w", c.MaxFileSize, err)
	}
	return size, nil
}

// parseFileSize parses a human-readable file size string into bytes.
// Supported suffixes: B, KB, MB, GB, TB (case-insensitive).
func parseFileSize(s string) (int64, error) {
	s = strings.TrimSpace(s)
	s = strings.ToUpper(s)

	suffixes := []struct {
		suffix     string
		multiplier int64
	}{
		{"TB", 1024 * 1024 * 1024 * 1024},
		{"GB", 1024 * 1024 * 1024},
		{"MB", 1024 * 1024},
		{"KB", 1024},
		{"B", 1},
	}

	for _, sf := range suffixes {
		if strings.HasSuffix(s, sf.suffix) {
			numStr := strings.TrimSpace(strings.TrimSuffix(s, sf.suffix))
			n, err := strconv.ParseFloat(numStr, 64)
			if err != nil {
				return 0, fmt.Errorf("invalid number %q", numStr)
			}
			return int64(n * float64(sf.multiplier)), nil
		}
	}

	// No suffix — assume bytes.
	n, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid file size %q", s)
	}
	return n, nil
}
