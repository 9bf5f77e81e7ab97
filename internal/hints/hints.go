// Package hints provides actionable error hints for common build failures.
// Hints are formatted consistently as "\n  hint: <text>" for appending to error messages.
package hints

import (
	"strings"
)

// ForConfigNotFound returns hints for config file not found errors.
// Suggests --config and creating a config in the user config directory.
func ForConfigNotFound(searchedPaths []string) string {
	hint := "use --config /path/to/sitekit.yaml"

	// Suggest the first user config path that was searched
	for _, p := range searchedPaths {
		if strings.Contains(p, "go-sitekit") {
			hint += " or create " + p
			break
		}
	}

	return format(hint)
}

// ForUnknownImage returns hints for a front matter image key missing from
// the post's image directory.
func ForUnknownImage(dir string, available []string) string {
	if len(available) == 0 {
		return format("no images found in " + dir)
	}
	return format("available in " + dir + ": " + strings.Join(available, ", "))
}

// ForMDXDisabled returns hints for .mdx sources found with the integration off.
func ForMDXDisabled() string {
	return format("set integrations.mdx: true or rename the file to .md")
}

// ForCodeTheme returns hints for unknown code theme errors.
func ForCodeTheme() string {
	return format("use spectre-dark or any chroma style name (github, monokai, dracula)")
}

// ForOutputDirectory returns hints for output directory creation errors.
func ForOutputDirectory() string {
	return format("check outDir exists or its parent is writable")
}

// format creates a single hint string with consistent formatting.
func format(hint string) string {
	if hint == "" {
		return ""
	}
	return "\n  hint: " + hint
}
