package main

import (
	"fmt"
	"io"
)

// printUsage prints the main usage message.
func printUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: sitekit <command> [flags] [args]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Commands:")
	fmt.Fprintln(w, "  build      Build the site into the output directory")
	fmt.Fprintln(w, "  images     List the image keys of a post image directory")
	fmt.Fprintln(w, "  version    Show version information")
	fmt.Fprintln(w, "  help       Show help for a command")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Run 'sitekit help <command>' for details on a specific command.")
}

// printBuildUsage prints usage for the build command.
func printBuildUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: sitekit build [flags]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Build pages, fingerprinted assets, sitemap and adapter files.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Flags:")
	fmt.Fprintln(w, "  -c, --config <name>   Config file name or path (default: sitekit)")
	fmt.Fprintln(w, "  -o, --out <dir>       Output directory (overrides outDir)")
	fmt.Fprintln(w, "      --site <url>      Site URL (overrides site)")
	fmt.Fprintln(w, "  -w, --workers <n>     Parallel page renders (0 = auto)")
	fmt.Fprintln(w, "      --drafts          Include entries marked draft")
	fmt.Fprintln(w, "  -q, --quiet           Only show errors")
	fmt.Fprintln(w, "  -v, --verbose         Show debug output")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Environment:")
	fmt.Fprintln(w, "  SITEKIT_CONFIG, SITEKIT_SITE, SITEKIT_OUT_DIR, SITEKIT_WORKERS, SITEKIT_DRAFTS")
	fmt.Fprintln(w, "  Flags take precedence over environment, environment over the config file.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Content layout (under contentDir):")
	fmt.Fprintln(w, "  blog/<slug>.md|mdx")
	fmt.Fprintln(w, "  projects/<slug>.md|mdx")
	fmt.Fprintln(w, "  assets/post-images/<slug>/*.{png,jpg,jpeg,webp,avif}")
}

// printImagesUsage prints usage for the images command.
func printImagesUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: sitekit images <dir> [flags]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Print \"key<TAB>path\" for every image key in dir, sorted by key.")
	fmt.Fprintln(w, "A key is the file name up to its first dot; when two files share a key")
	fmt.Fprintln(w, "the path that sorts last wins and a warning is printed.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Flags:")
	fmt.Fprintln(w, "  -q, --quiet           Suppress collision warnings")
	fmt.Fprintln(w, "  -v, --verbose         Show debug output")
}

// runHelp prints help for a specific command.
func runHelp(args []string, env *Environment) int {
	if len(args) == 0 {
		printUsage(env.Stdout)
		return ExitSuccess
	}

	switch args[0] {
	case "build":
		printBuildUsage(env.Stdout)
	case "images":
		printImagesUsage(env.Stdout)
	case "version":
		fmt.Fprintln(env.Stdout, "Usage: sitekit version")
		fmt.Fprintln(env.Stdout)
		fmt.Fprintln(env.Stdout, "Show version information.")
	case "help":
		fmt.Fprintln(env.Stdout, "Usage: sitekit help [command]")
		fmt.Fprintln(env.Stdout)
		fmt.Fprintln(env.Stdout, "Show help for a command.")
	default:
		fmt.Fprintf(env.Stderr, "unknown command: %s\n\n", args[0])
		printUsage(env.Stderr)
		return ExitUsage
	}
	return ExitSuccess
}
