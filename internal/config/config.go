// Package config loads engine tuning from a TOML file.
package config

import (
	"fmt"
	"os"

	"github.com/pelletier/go-toml/v2"
)

// Config holds the tunable parameters of the editing engine.
type Config struct {
	// SnapshotInterval is how many logged events separate automatic
	// snapshots. Zero or negative disables them.
	SnapshotInterval int `toml:"snapshot_interval"`

	// ScanChunkSize is how many bytes the line index scans per
	// iteration when extending its frontier.
	ScanChunkSize int `toml:"scan_chunk_size"`

	// LargeFileThreshold is the file size in bytes above which loads
	// stream in chunks and index lazily.
	LargeFileThreshold int `toml:"large_file_threshold"`

	// TabWidth is the tab stop width for visual column math.
	TabWidth int `toml:"tab_width"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		SnapshotInterval:   100,
		ScanChunkSize:      64 * 1024,
		LargeFileThreshold: 1024 * 1024,
		TabWidth:           4,
	}
}

// Load reads a TOML config from path, overlaying it on the defaults.
// A missing file is not an error; the defaults are returned.
func Load(path string) (Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("reading config file %s: %w", path, err)
	}

	if err := toml.Unmarshal(data, &cfg); err != nil {
		return Default(), fmt.Errorf("parsing config file %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return Default(), fmt.Errorf("config file %s: %w", path, err)
	}
	return cfg, nil
}

// Validate checks the configuration for values the engine cannot run
// with.
func (c Config) Validate() error {
	if c.ScanChunkSize < 0 {
		return fmt.Errorf("scan_chunk_size must not be negative, got %d", c.ScanChunkSize)
	}
	if c.LargeFileThreshold < 0 {
		return fmt.Errorf("large_file_threshold must not be negative, got %d", c.LargeFileThreshold)
	}
	if c.TabWidth < 0 {
		return fmt.Errorf("tab_width must not be negative, got %d", c.TabWidth)
	}
	return nil
}
