package sitekit

import "github.com/alnah/go-sitekit/internal/config"

// Config holds the site build configuration. See DefaultConfig for defaults.
type Config = config.Config

// Configuration sections.
type (
	IntegrationsConfig = config.IntegrationsConfig
	ThemeConfig        = config.ThemeConfig
	OpenGraphConfig    = config.OpenGraphConfig
	PageMeta           = config.PageMeta
	GiscusConfig       = config.GiscusConfig
)

// Output modes and adapter names.
const (
	OutputStatic   = config.OutputStatic
	AdapterNetlify = config.AdapterNetlify
	AdapterNone    = config.AdapterNone
)

// Config errors, checked with errors.Is.
var (
	ErrConfigNotFound    = config.ErrConfigNotFound
	ErrEmptyConfigName   = config.ErrEmptyConfigName
	ErrConfigParse       = config.ErrConfigParse
	ErrFieldTooLong      = config.ErrFieldTooLong
	ErrInvalidSiteURL    = config.ErrInvalidSiteURL
	ErrUnsupportedOutput = config.ErrUnsupportedOutput
	ErrUnknownAdapter    = config.ErrUnknownAdapter
	ErrIncompleteGiscus  = config.ErrIncompleteGiscus
	ErrMissingCodeTheme  = config.ErrMissingCodeTheme
)

// DefaultConfig returns a static build into dist/ from src/content with the
// spectre-dark code theme, MDX and sitemap enabled, and no adapter.
// Site is left empty and must be set before NewSite.
func DefaultConfig() *Config {
	return config.DefaultConfig()
}

// LoadConfig loads a YAML config from a file path, or searches for
// "<name>.yaml" and "<name>.yml" in the working directory and then the user
// config directory (go-sitekit/). Relative directories in the file resolve
// against the file's own directory. Overrides run before validation.
func LoadConfig(nameOrPath string, overrides ...func(*Config)) (*Config, error) {
	return config.LoadConfig(nameOrPath, overrides...)
}
