package engine

import "github.com/inkstone-edit/inkstone/internal/config"

// Option configures an Editor at construction.
type Option func(*Editor)

// WithContent seeds the editor with initial buffer content.
func WithContent(s string) Option {
	return func(e *Editor) {
		e.initialContent = s
	}
}

// WithSnapshotInterval sets how many logged events separate automatic
// snapshots. Non-positive disables snapshots.
func WithSnapshotInterval(n int) Option {
	return func(e *Editor) {
		e.snapshotInterval = n
	}
}

// WithTabWidth sets the tab stop width used for visual column math.
func WithTabWidth(n int) Option {
	return func(e *Editor) {
		if n > 0 {
			e.tabWidth = n
		}
	}
}

// WithConfig applies engine tuning from a loaded configuration.
func WithConfig(cfg config.Config) Option {
	return func(e *Editor) {
		e.snapshotInterval = cfg.SnapshotInterval
		if cfg.TabWidth > 0 {
			e.tabWidth = cfg.TabWidth
		}
		if cfg.ScanChunkSize > 0 {
			e.scanChunkSize = cfg.ScanChunkSize
		}
		if cfg.LargeFileThreshold > 0 {
			e.largeFileThreshold = cfg.LargeFileThreshold
		}
	}
}
