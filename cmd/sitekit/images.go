package main

import (
	"errors"
	"fmt"
	"maps"
	"slices"

	"github.com/alnah/go-sitekit/internal/assets"
)

// runImages prints the normalized image registry of a directory:
// one "key<TAB>path" line per key, sorted by key.
func runImages(args []string, env *Environment) error {
	flags, positional, err := parseImagesFlags(args, env.Stderr)
	if errors.Is(err, errHelpShown) {
		return nil
	}
	if err != nil {
		return err
	}
	if len(positional) != 1 {
		return fmt.Errorf("%w: images takes exactly one directory", ErrUsage)
	}

	logger := newLogger(env, flags.common.quiet, flags.common.verbose)

	provider, err := assets.NewDirProvider(positional[0])
	if err != nil {
		return err
	}
	entries, err := provider.Discover(assets.ImagePattern)
	if err != nil {
		return err
	}

	for _, c := range assets.Collisions(entries) {
		logger.Warn().
			Str("key", c.Key).
			Strs("paths", c.Paths).
			Str("kept", c.Paths[len(c.Paths)-1]).
			Msg("image key collision")
	}

	// The winning path per key, mirroring Normalize's last-wins order.
	winners := assets.Normalize(pathEntries(entries))
	for _, key := range slices.Sorted(maps.Keys(winners)) {
		fmt.Fprintf(env.Stdout, "%s\t%s\n", key, winners[key])
	}
	logger.Debug().Int("count", len(winners)).Str("path", positional[0]).Msg("images listed")
	return nil
}

// pathEntries swaps each handle for its own path.
func pathEntries(entries []assets.Entry[*assets.Image]) []assets.Entry[string] {
	out := make([]assets.Entry[string], len(entries))
	for i, e := range entries {
		out[i] = assets.Entry[string]{Path: e.Path, Handle: e.Path}
	}
	return out
}
