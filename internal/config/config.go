package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"github.com/alnah/go-sitekit/internal/dateutil"
	"github.com/alnah/go-sitekit/internal/fileutil"
	"github.com/alnah/go-sitekit/internal/hints"
	"github.com/alnah/go-sitekit/internal/yamlutil"
)

// Sentinel errors for config operations.
var (
	ErrConfigNotFound    = errors.New("config file not found")
	ErrEmptyConfigName   = errors.New("config name cannot be empty")
	ErrConfigParse       = errors.New("failed to parse config")
	ErrFieldTooLong      = errors.New("field exceeds maximum length")
	ErrInvalidSiteURL    = errors.New("invalid site URL")
	ErrUnsupportedOutput = errors.New("unsupported output mode")
	ErrUnknownAdapter    = errors.New("unknown adapter")
	ErrIncompleteGiscus  = errors.New("giscus configuration incomplete")
	ErrMissingCodeTheme  = errors.New("at least one code theme is required")
)

// Output modes and adapter names.
const (
	OutputStatic   = "static"
	AdapterNetlify = "netlify"
	AdapterNone    = "none"
)

// Field length limits.
const (
	MaxURLLength         = 2048 // Browser limit
	MaxNameLength        = 100  // Site owner name
	MaxTitleLength       = 200  // OpenGraph title
	MaxDescriptionLength = 500  // OpenGraph description
	MaxPathLength        = 1024 // contentDir, outDir, assetPath
	MaxThemeNameLength   = 64   // Code theme name
	MaxGiscusFieldLength = 200  // Giscus identifiers
)

// Config holds the site build configuration.
type Config struct {
	Site         string             `yaml:"site"`       // Absolute site URL, e.g. https://example.com/
	Output       string             `yaml:"output"`     // Only "static"
	OutDir       string             `yaml:"outDir"`     // Build output directory
	ContentDir   string             `yaml:"contentDir"` // Root of blog/, projects/, assets/
	Integrations IntegrationsConfig `yaml:"integrations"`
	Theme        ThemeConfig        `yaml:"theme"`
	Adapter      string             `yaml:"adapter"`   // "netlify", "none" or empty
	AssetPath    string             `yaml:"assetPath"` // Optional layout/style override directory

	// Root is the directory relative paths resolve against: the config file's
	// directory when loaded from disk, "." otherwise.
	Root string `yaml:"-"`
}

// IntegrationsConfig toggles the build's optional stages.
type IntegrationsConfig struct {
	CodeThemes []string `yaml:"codeThemes"` // First entry styles code blocks
	MDX        bool     `yaml:"mdx"`
	Sitemap    bool     `yaml:"sitemap"`
}

// ThemeConfig configures the page theme.
type ThemeConfig struct {
	Name       string          `yaml:"name"`       // Site owner, shown in header and titles
	DateFormat string          `yaml:"dateFormat"` // Display format, see dateutil
	OpenGraph  OpenGraphConfig `yaml:"openGraph"`
	Giscus     *GiscusConfig   `yaml:"giscus"` // nil disables comments
}

// OpenGraphConfig holds per-section page metadata.
type OpenGraphConfig struct {
	Home     PageMeta `yaml:"home"`
	Blog     PageMeta `yaml:"blog"`
	Projects PageMeta `yaml:"projects"`
}

// PageMeta is the title and description of a section landing page.
type PageMeta struct {
	Title       string `yaml:"title"`
	Description string `yaml:"description"`
}

// GiscusConfig configures the giscus discussion widget on blog posts.
type GiscusConfig struct {
	Repository       string `yaml:"repository"`
	RepositoryID     string `yaml:"repositoryId"`
	Category         string `yaml:"category"`
	CategoryID       string `yaml:"categoryId"`
	Mapping          string `yaml:"mapping"` // default "pathname"
	Strict           bool   `yaml:"strict"`
	ReactionsEnabled bool   `yaml:"reactionsEnabled"`
	EmitMetadata     bool   `yaml:"emitMetadata"`
	Lang             string `yaml:"lang"` // default "en"
}

// Validate checks values and field lengths.
// Called automatically by LoadConfig, but available for consumers
// who construct Config manually.
func (c *Config) Validate() error {
	if err := validateFieldLength("site", c.Site, MaxURLLength); err != nil {
		return err
	}
	if _, err := c.SiteURL(); err != nil {
		return err
	}

	if c.Output != "" && c.Output != OutputStatic {
		return fmt.Errorf("%w: %q (only %q is supported)", ErrUnsupportedOutput, c.Output, OutputStatic)
	}

	switch c.Adapter {
	case "", AdapterNone, AdapterNetlify:
	default:
		return fmt.Errorf("%w: %q", ErrUnknownAdapter, c.Adapter)
	}

	for field, value := range map[string]string{
		"outDir":     c.OutDir,
		"contentDir": c.ContentDir,
		"assetPath":  c.AssetPath,
	} {
		if err := validateFieldLength(field, value, MaxPathLength); err != nil {
			return err
		}
	}

	if len(c.Integrations.CodeThemes) == 0 {
		return ErrMissingCodeTheme
	}
	for i, name := range c.Integrations.CodeThemes {
		if err := validateFieldLength(fmt.Sprintf("integrations.codeThemes[%d]", i), name, MaxThemeNameLength); err != nil {
			return err
		}
	}

	return c.Theme.validate()
}

func (t *ThemeConfig) validate() error {
	if err := validateFieldLength("theme.name", t.Name, MaxNameLength); err != nil {
		return err
	}
	if t.DateFormat != "" {
		if _, err := dateutil.ParseDateFormat(t.DateFormat); err != nil {
			return fmt.Errorf("theme.dateFormat: %w", err)
		}
	}

	sections := []struct {
		name string
		meta PageMeta
	}{
		{"home", t.OpenGraph.Home},
		{"blog", t.OpenGraph.Blog},
		{"projects", t.OpenGraph.Projects},
	}
	for _, s := range sections {
		if err := validateFieldLength("theme.openGraph."+s.name+".title", s.meta.Title, MaxTitleLength); err != nil {
			return err
		}
		if err := validateFieldLength("theme.openGraph."+s.name+".description", s.meta.Description, MaxDescriptionLength); err != nil {
			return err
		}
	}

	if t.Giscus != nil {
		return t.Giscus.validate()
	}
	return nil
}

func (g *GiscusConfig) validate() error {
	required := []struct {
		name  string
		value string
	}{
		{"repository", g.Repository},
		{"repositoryId", g.RepositoryID},
		{"category", g.Category},
		{"categoryId", g.CategoryID},
	}
	for _, f := range required {
		if strings.TrimSpace(f.value) == "" {
			return fmt.Errorf("%w: theme.giscus.%s is required", ErrIncompleteGiscus, f.name)
		}
		if err := validateFieldLength("theme.giscus."+f.name, f.value, MaxGiscusFieldLength); err != nil {
			return err
		}
	}
	if !strings.Contains(g.Repository, "/") {
		return fmt.Errorf("%w: theme.giscus.repository must be owner/name, got %q", ErrIncompleteGiscus, g.Repository)
	}
	return nil
}

// SiteURL parses Site, which must be an absolute http(s) URL.
// The returned URL path always ends with "/".
func (c *Config) SiteURL() (*url.URL, error) {
	if c.Site == "" {
		return nil, fmt.Errorf("%w: site is required", ErrInvalidSiteURL)
	}
	u, err := url.Parse(c.Site)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidSiteURL, err)
	}
	if (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return nil, fmt.Errorf("%w: %q must be an absolute http(s) URL", ErrInvalidSiteURL, c.Site)
	}
	if !strings.HasSuffix(u.Path, "/") {
		u.Path += "/"
	}
	return u, nil
}

// CodeTheme returns the theme used for code blocks.
func (c *Config) CodeTheme() string {
	if len(c.Integrations.CodeThemes) == 0 {
		return ""
	}
	return c.Integrations.CodeThemes[0]
}

// ResolvePath resolves a configured relative path against Root.
func (c *Config) ResolvePath(p string) string {
	if p == "" || filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(c.Root, p)
}

// validateFieldLength checks if a field exceeds its maximum allowed length.
func validateFieldLength(fieldName, value string, maxLength int) error {
	if len(value) > maxLength {
		return fmt.Errorf("%w: %s (%d chars, max %d)", ErrFieldTooLong, fieldName, len(value), maxLength)
	}
	return nil
}

// DefaultConfig returns a static build into dist/ from src/content with the
// spectre-dark code theme, MDX and sitemap enabled, and no adapter.
// Site is left empty and must be provided.
func DefaultConfig() *Config {
	return &Config{
		Output:     OutputStatic,
		OutDir:     "dist",
		ContentDir: "src/content",
		Integrations: IntegrationsConfig{
			CodeThemes: []string{"spectre-dark"},
			MDX:        true,
			Sitemap:    true,
		},
		Theme: ThemeConfig{
			DateFormat: dateutil.DefaultDateFormat,
		},
		Root: ".",
	}
}

// LoadConfig loads configuration from a file path or config name.
// If nameOrPath contains a path separator, it's treated as a file path.
// Otherwise, it's treated as a config name and searched in standard locations.
// Values absent from the file keep their DefaultConfig values.
// Overrides run after decoding and before validation, so command-line
// values can fill fields the file leaves empty.
func LoadConfig(nameOrPath string, overrides ...func(*Config)) (*Config, error) {
	if nameOrPath == "" {
		return nil, ErrEmptyConfigName
	}

	var configPath string
	var err error

	if fileutil.IsFilePath(nameOrPath) {
		configPath = nameOrPath
	} else {
		configPath, err = resolveConfigPath(nameOrPath)
		if err != nil {
			return nil, err
		}
	}

	data, err := os.ReadFile(configPath) // #nosec G304 -- config path is user-provided
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrConfigNotFound, configPath)
		}
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	cfg := DefaultConfig()
	if err := yamlutil.UnmarshalStrict(data, cfg); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrConfigParse, err)
	}
	cfg.Root = filepath.Dir(configPath)
	cfg.applyDefaults()
	for _, override := range overrides {
		override(cfg)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// applyDefaults fills optional values left empty by the file.
func (c *Config) applyDefaults() {
	if c.Output == "" {
		c.Output = OutputStatic
	}
	if g := c.Theme.Giscus; g != nil {
		if g.Mapping == "" {
			g.Mapping = "pathname"
		}
		if g.Lang == "" {
			g.Lang = "en"
		}
	}
}

// resolveConfigPath searches for a config file by name in standard locations.
// Tries extensions in order: .yaml, .yml
// Tries locations in order: current directory, ~/.config/go-sitekit/
func resolveConfigPath(name string) (string, error) {
	extensions := []string{".yaml", ".yml"}
	triedPaths := make([]string, 0, len(extensions)*2)

	for _, ext := range extensions {
		localPath := name + ext
		if fileutil.FileExists(localPath) {
			return localPath, nil
		}
		triedPaths = append(triedPaths, localPath)
	}

	userConfigDir, err := os.UserConfigDir()
	if err == nil {
		for _, ext := range extensions {
			userPath := filepath.Join(userConfigDir, "go-sitekit", name+ext)
			if fileutil.FileExists(userPath) {
				return userPath, nil
			}
			triedPaths = append(triedPaths, userPath)
		}
	}

	return "", fmt.Errorf("%w: tried %s%s", ErrConfigNotFound, strings.Join(triedPaths, ", "), hints.ForConfigNotFound(triedPaths))
}
