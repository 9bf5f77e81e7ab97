package sitekit

import (
	"io/fs"
	"time"

	"github.com/rs/zerolog"
)

// Option configures a Site.
type Option func(*Site)

// WithFS sets the content root. Paths such as blog/ and assets/ resolve
// inside it. Defaults to the configured content directory on disk.
func WithFS(fsys fs.FS) Option {
	return func(s *Site) {
		s.fsys = fsys
	}
}

// WithLogger sets the build logger. Defaults to a no-op logger.
func WithLogger(l zerolog.Logger) Option {
	return func(s *Site) {
		s.log = l
	}
}

// WithWorkers bounds how many pages render in parallel.
// Panics if n < 1 (programmer error, similar to time.NewTicker).
func WithWorkers(n int) Option {
	if n < 1 {
		panic("sitekit: WithWorkers count must be positive")
	}
	return func(s *Site) {
		s.workers = n
	}
}

// WithDrafts includes entries marked draft: true.
func WithDrafts(include bool) Option {
	return func(s *Site) {
		s.drafts = include
	}
}

// WithNow sets the clock used for the footer year.
func WithNow(now func() time.Time) Option {
	return func(s *Site) {
		s.now = now
	}
}
