package main

import (
	"io"
	"os"
	"time"

	"github.com/mattn/go-colorable"
	"github.com/mattn/go-isatty"
)

// Environment holds injectable dependencies for testability.
type Environment struct {
	Now    func() time.Time
	Stdout io.Writer
	Stderr io.Writer
	Color  bool // colorize log output on Stderr
}

// DefaultEnv returns the production environment.
// Stderr goes through colorable so ANSI colors render on Windows consoles.
func DefaultEnv() *Environment {
	fd := os.Stderr.Fd()
	return &Environment{
		Now:    time.Now,
		Stdout: os.Stdout,
		Stderr: colorable.NewColorableStderr(),
		Color:  isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd),
	}
}
