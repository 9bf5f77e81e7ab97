package main

import (
	"errors"
	"os"

	sitekit "github.com/alnah/go-sitekit"
	"github.com/alnah/go-sitekit/internal/adapter"
	"github.com/alnah/go-sitekit/internal/assets"
	"github.com/alnah/go-sitekit/internal/config"
	"github.com/alnah/go-sitekit/internal/dateutil"
	"github.com/alnah/go-sitekit/internal/fileutil"
	"github.com/alnah/go-sitekit/internal/pipeline"
	"github.com/alnah/go-sitekit/internal/yamlutil"
)

// Exit codes for the sitekit CLI.
// Follows Unix conventions: 0=success, 1=general, 2=usage, and custom codes < 126.
const (
	ExitSuccess = 0 // Successful build
	ExitGeneral = 1 // General/unexpected error
	ExitUsage   = 2 // Invalid flags, config, or content
	ExitIO      = 3 // File not found, permission denied, unreadable asset
)

// exitCodeFor returns the appropriate exit code for an error.
// It uses errors.Is to check wrapped errors, so callers must use fmt.Errorf("%w", err).
func exitCodeFor(err error) int {
	if err == nil {
		return ExitSuccess
	}

	// Usage/config/content validation errors (exit 2)
	if errors.Is(err, ErrUsage) ||
		errors.Is(err, config.ErrConfigNotFound) ||
		errors.Is(err, config.ErrEmptyConfigName) ||
		errors.Is(err, config.ErrConfigParse) ||
		errors.Is(err, config.ErrFieldTooLong) ||
		errors.Is(err, config.ErrInvalidSiteURL) ||
		errors.Is(err, config.ErrUnsupportedOutput) ||
		errors.Is(err, config.ErrUnknownAdapter) ||
		errors.Is(err, config.ErrIncompleteGiscus) ||
		errors.Is(err, config.ErrMissingCodeTheme) ||
		errors.Is(err, adapter.ErrUnknownAdapter) ||
		errors.Is(err, dateutil.ErrInvalidDateFormat) ||
		errors.Is(err, pipeline.ErrUnknownCodeTheme) ||
		errors.Is(err, pipeline.ErrTemplateParse) ||
		errors.Is(err, assets.ErrInvalidBasePath) ||
		errors.Is(err, assets.ErrInvalidPattern) ||
		errors.Is(err, assets.ErrTemplateNotFound) ||
		errors.Is(err, assets.ErrStyleNotFound) ||
		errors.Is(err, sitekit.ErrMissingTitle) ||
		errors.Is(err, sitekit.ErrDuplicateSlug) ||
		errors.Is(err, sitekit.ErrUnknownImage) ||
		errors.Is(err, sitekit.ErrMDXDisabled) ||
		errors.Is(err, sitekit.ErrInvalidDate) ||
		errors.Is(err, yamlutil.ErrUnclosedFrontMatter) {
		return ExitUsage
	}

	// I/O errors (exit 3)
	if errors.Is(err, os.ErrNotExist) ||
		errors.Is(err, os.ErrPermission) ||
		errors.Is(err, assets.ErrAssetRead) ||
		errors.Is(err, fileutil.ErrOutsideRoot) {
		return ExitIO
	}

	return ExitGeneral
}
