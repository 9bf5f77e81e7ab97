package main

import (
	"time"

	"github.com/rs/zerolog"
)

// newLogger returns a console logger on env.Stderr.
// Info by default, debug with verbose, errors only with quiet.
func newLogger(env *Environment, quiet, verbose bool) zerolog.Logger {
	level := zerolog.InfoLevel
	switch {
	case quiet:
		level = zerolog.ErrorLevel
	case verbose:
		level = zerolog.DebugLevel
	}

	w := zerolog.ConsoleWriter{
		Out:        env.Stderr,
		NoColor:    !env.Color,
		TimeFormat: time.TimeOnly,
	}
	return zerolog.New(w).Level(level).With().Timestamp().Logger()
}
