package main

import (
	"errors"
	"fmt"
	"io"

	flag "github.com/spf13/pflag"
)

// ErrUsage wraps invalid flags and arguments.
var ErrUsage = errors.New("usage")

// errHelpShown reports that -h printed usage; the command succeeds without running.
var errHelpShown = errors.New("help shown")

// commonFlags holds flags shared across commands.
type commonFlags struct {
	config  string
	quiet   bool
	verbose bool
}

// buildFlags holds flags for the build command.
type buildFlags struct {
	common  commonFlags
	outDir  string
	site    string
	workers int
	drafts  bool
}

// imagesFlags holds flags for the images command.
type imagesFlags struct {
	common commonFlags
}

// addCommonFlags adds common flags to a FlagSet.
func addCommonFlags(fs *flag.FlagSet, f *commonFlags) {
	fs.StringVarP(&f.config, "config", "c", "", "config file name or path")
	fs.BoolVarP(&f.quiet, "quiet", "q", false, "only show errors")
	fs.BoolVarP(&f.verbose, "verbose", "v", false, "show debug output")
}

// parseBuildFlags parses build command arguments.
func parseBuildFlags(args []string, stderr io.Writer) (*buildFlags, []string, error) {
	f := &buildFlags{}
	fs := newFlagSet("build", stderr, printBuildUsage)
	addCommonFlags(fs, &f.common)
	fs.StringVarP(&f.outDir, "out", "o", "", "output directory (overrides outDir)")
	fs.StringVar(&f.site, "site", "", "site URL (overrides site)")
	fs.IntVarP(&f.workers, "workers", "w", 0, "parallel page renders (0 = auto)")
	fs.BoolVar(&f.drafts, "drafts", false, "include draft entries")

	if err := parse(fs, args); err != nil {
		return nil, nil, err
	}
	if f.workers < 0 {
		return nil, nil, fmt.Errorf("%w: --workers must be >= 0, got %d", ErrUsage, f.workers)
	}
	if f.common.quiet && f.common.verbose {
		return nil, nil, fmt.Errorf("%w: --quiet and --verbose are mutually exclusive", ErrUsage)
	}
	return f, fs.Args(), nil
}

// parseImagesFlags parses images command arguments.
func parseImagesFlags(args []string, stderr io.Writer) (*imagesFlags, []string, error) {
	f := &imagesFlags{}
	fs := newFlagSet("images", stderr, printImagesUsage)
	addCommonFlags(fs, &f.common)

	if err := parse(fs, args); err != nil {
		return nil, nil, err
	}
	return f, fs.Args(), nil
}

func newFlagSet(name string, stderr io.Writer, usage func(io.Writer)) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.Usage = func() { usage(stderr) }
	fs.SortFlags = false
	return fs
}

func parse(fs *flag.FlagSet, args []string) error {
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return errHelpShown
		}
		return fmt.Errorf("%w: %v", ErrUsage, err)
	}
	return nil
}
