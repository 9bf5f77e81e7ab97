package main

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
)

// envConfig holds configuration from environment variables.
// Provides CI/CD-friendly overrides without editing the YAML file.
type envConfig struct {
	ConfigPath string // SITEKIT_CONFIG: config file name or path
	Site       string // SITEKIT_SITE: site URL
	OutDir     string // SITEKIT_OUT_DIR: output directory
	Workers    int    // SITEKIT_WORKERS: parallel page renders
	Drafts     bool   // SITEKIT_DRAFTS: include drafts
}

// knownEnvVars lists valid SITEKIT_* environment variables.
var knownEnvVars = map[string]bool{
	"SITEKIT_CONFIG":  true,
	"SITEKIT_SITE":    true,
	"SITEKIT_OUT_DIR": true,
	"SITEKIT_WORKERS": true,
	"SITEKIT_DRAFTS":  true,
}

// loadEnvConfig reads SITEKIT_* variables. Unparsable numbers and booleans are ignored.
func loadEnvConfig() *envConfig {
	cfg := &envConfig{
		ConfigPath: os.Getenv("SITEKIT_CONFIG"),
		Site:       os.Getenv("SITEKIT_SITE"),
		OutDir:     os.Getenv("SITEKIT_OUT_DIR"),
	}

	if workers := os.Getenv("SITEKIT_WORKERS"); workers != "" {
		if w, err := strconv.Atoi(workers); err == nil && w > 0 {
			cfg.Workers = w
		}
	}
	if drafts := os.Getenv("SITEKIT_DRAFTS"); drafts != "" {
		if b, err := strconv.ParseBool(drafts); err == nil {
			cfg.Drafts = b
		}
	}

	return cfg
}

// warnUnknownEnvVars prints a warning for each unrecognized SITEKIT_* variable.
func warnUnknownEnvVars(w io.Writer) {
	for _, env := range os.Environ() {
		if strings.HasPrefix(env, "SITEKIT_") {
			name, _, _ := strings.Cut(env, "=")
			if !knownEnvVars[name] {
				fmt.Fprintf(w, "warning: unknown environment variable %s (typo?)\n", name)
			}
		}
	}
}

// mergeEnv applies environment values under flags: a flag already set wins.
func mergeEnv(env *envConfig, f *buildFlags) {
	if f.common.config == "" {
		f.common.config = env.ConfigPath
	}
	if f.site == "" {
		f.site = env.Site
	}
	if f.outDir == "" {
		f.outDir = env.OutDir
	}
	if f.workers == 0 {
		f.workers = env.Workers
	}
	if !f.drafts {
		f.drafts = env.Drafts
	}
}
