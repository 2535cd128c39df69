// Package cleanup removes stale files from the uploads directory. Uploaded
// and tailored files are transient; anything older than the retention period
// is deleted on an hourly sweep.
package cleanup

import (
	"context"
	"log"
	"os"
	"path/filepath"
	"time"
)

// Defaults matching the product's retention policy.
const (
	DefaultRetention = 4 * time.Hour
	DefaultInterval  = time.Hour
)

// Sweeper periodically deletes old files from a directory.
type Sweeper struct {
	dir       string
	retention time.Duration
	interval  time.Duration
}

// NewSweeper creates a Sweeper for dir. Zero durations select the defaults.
func NewSweeper(dir string, retention, interval time.Duration) *Sweeper {
	if retention <= 0 {
		retention = DefaultRetention
	}
	if interval <= 0 {
		interval = DefaultInterval
	}
	return &Sweeper{dir: dir, retention: retention, interval: interval}
}

// Run sweeps immediately, then once per interval until ctx is cancelled.
func (s *Sweeper) Run(ctx context.Context) error {
	log.Printf("[cleanup] file cleanup scheduler started (%s retention)", s.retention)

	s.Sweep()

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			s.Sweep()
		}
	}
}

// Sweep deletes files older than the retention period and returns the number
// deleted. Per-file errors are logged and skipped; a sweep never fails the
// caller.
func (s *Sweeper) Sweep() int {
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		log.Printf("[cleanup] failed to ensure uploads directory: %v", err)
		return 0
	}

	entries, err := os.ReadDir(s.dir)
	if err != nil {
		log.Printf("[cleanup] failed to read uploads directory: %v", err)
		return 0
	}

	now := time.Now()
	deleted := 0
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}

		info, err := entry.Info()
		if err != nil {
			log.Printf("[cleanup] failed to stat %s: %v", entry.Name(), err)
			continue
		}

		if now.Sub(info.ModTime()) <= s.retention {
			continue
		}

		if err := os.Remove(filepath.Join(s.dir, entry.Name())); err != nil {
			log.Printf("[cleanup] failed to delete %s: %v", entry.Name(), err)
			continue
		}
		deleted++
	}

	if deleted > 0 {
		log.Printf("[cleanup] deleted %d file(s) older than %s from %s", deleted, s.retention, s.dir)
	}
	return deleted
}
