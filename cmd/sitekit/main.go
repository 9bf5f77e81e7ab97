package main

import (
	"context"
	"fmt"
	"os"
	"slices"

	"go.uber.org/automaxprocs/maxprocs"
)

// Version is set at build time via ldflags.
var Version = "dev"

func main() {
	env := DefaultEnv()

	// Error ignored: maxprocs.Set only fails if GOMAXPROCS env is invalid,
	// in which case Go runtime defaults apply.
	verbose := slices.Contains(os.Args, "-v") || slices.Contains(os.Args, "--verbose")
	_, _ = maxprocs.Set(maxprocs.Logger(func(format string, args ...any) {
		if verbose {
			fmt.Fprintf(env.Stderr, format+"\n", args...)
		}
	}))

	os.Exit(runMain(os.Args, env))
}

// runMain dispatches a command and returns the process exit code.
func runMain(args []string, env *Environment) int {
	if len(args) < 2 {
		printUsage(env.Stderr)
		return ExitUsage
	}

	cmd, rest := args[1], args[2:]
	var err error

	switch cmd {
	case "build":
		ctx, stop := notifyContext(context.Background())
		defer stop()
		err = runBuild(ctx, rest, env)
	case "images":
		err = runImages(rest, env)
	case "version", "--version":
		fmt.Fprintf(env.Stdout, "sitekit %s\n", Version)
	case "help", "-h", "--help":
		return runHelp(rest, env)
	default:
		fmt.Fprintf(env.Stderr, "unknown command: %s\n\n", cmd)
		printUsage(env.Stderr)
		return ExitUsage
	}

	if err != nil {
		fmt.Fprintf(env.Stderr, "error: %v\n", err)
	}
	return exitCodeFor(err)
}
