package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"time"

	sitekit "github.com/alnah/go-sitekit"
)

// defaultConfigName is searched when neither --config nor SITEKIT_CONFIG is set.
const defaultConfigName = "sitekit"

// runBuild loads the configuration, applies overrides and builds the site.
// Precedence: flags > SITEKIT_* environment > config file > defaults.
func runBuild(ctx context.Context, args []string, env *Environment) error {
	flags, positional, err := parseBuildFlags(args, env.Stderr)
	if errors.Is(err, errHelpShown) {
		return nil
	}
	if err != nil {
		return err
	}
	if len(positional) > 0 {
		return fmt.Errorf("%w: build takes no arguments, got %q", ErrUsage, positional)
	}

	warnUnknownEnvVars(env.Stderr)
	mergeEnv(loadEnvConfig(), flags)

	cfg, err := loadBuildConfig(flags)
	if err != nil {
		return err
	}

	logger := newLogger(env, flags.common.quiet, flags.common.verbose)
	opts := []sitekit.Option{
		sitekit.WithLogger(logger),
		sitekit.WithDrafts(flags.drafts),
		sitekit.WithNow(env.Now),
	}
	if flags.workers > 0 {
		opts = append(opts, sitekit.WithWorkers(flags.workers))
	}

	site, err := sitekit.NewSite(cfg, opts...)
	if err != nil {
		return err
	}
	res, err := site.Build(ctx)
	if err != nil {
		return err
	}

	if !flags.common.quiet {
		printBuildResult(env.Stdout, res)
	}
	return nil
}

// loadBuildConfig loads the config file and applies flag values over it.
// A relative --out resolves against the working directory, not the config file.
func loadBuildConfig(f *buildFlags) (*sitekit.Config, error) {
	name := f.common.config
	if name == "" {
		name = defaultConfigName
	}

	var outDir string
	if f.outDir != "" {
		abs, err := filepath.Abs(f.outDir)
		if err != nil {
			return nil, fmt.Errorf("%w: --out: %v", ErrUsage, err)
		}
		outDir = abs
	}

	return sitekit.LoadConfig(name, func(c *sitekit.Config) {
		if f.site != "" {
			c.Site = f.site
		}
		if outDir != "" {
			c.OutDir = outDir
		}
	})
}

func printBuildResult(w io.Writer, res *sitekit.BuildResult) {
	fmt.Fprintf(w, "Built %d pages and %d assets in %s -> %s\n",
		len(res.Pages), len(res.Assets), res.Duration.Round(time.Millisecond), res.OutDir)
	if n := len(res.Collisions); n > 0 {
		fmt.Fprintf(w, "%d image key collision(s); see warnings above\n", n)
	}
}
