package main

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/alnah/go-specpub/internal/config"
)

// envConfig holds configuration from environment variables.
// Provides CI/CD-friendly overrides without requiring YAML files.
type envConfig struct {
	ConfigPath  string        // SPECPUB_CONFIG: config file name or path
	BaseURL     string        // SPECPUB_BASE_URL: published document URL
	RepoRoot    string        // SPECPUB_REPO_ROOT: repository root for BaseURL
	Renderer    string        // SPECPUB_RENDERER: wkhtmltopdf or chrome
	Timeout     time.Duration // SPECPUB_TIMEOUT: overall timeout
	LogLevel    string        // SPECPUB_LOG_LEVEL: debug, info, warn, error
	Published   string        // SPECPUB_PUBLISHED: [pubdate] value
	LocalizeCSS *bool         // SPECPUB_LOCALIZE_CSS: 1/true or 0/false
}

// knownEnvVars lists valid SPECPUB_* environment variables.
// Used to detect typos and warn users about unknown variables.
var knownEnvVars = map[string]bool{
	"SPECPUB_CONFIG":       true,
	"SPECPUB_BASE_URL":     true,
	"SPECPUB_REPO_ROOT":    true,
	"SPECPUB_RENDERER":     true,
	"SPECPUB_TIMEOUT":      true,
	"SPECPUB_LOG_LEVEL":    true,
	"SPECPUB_PUBLISHED":    true,
	"SPECPUB_LOCALIZE_CSS": true,
	"SPECPUB_CONTAINER":    true, // read by doctor
}

// loadEnvConfig reads configuration from environment variables.
// Malformed durations and booleans are ignored.
func loadEnvConfig(getenv func(string) string) *envConfig {
	cfg := &envConfig{
		ConfigPath: getenv("SPECPUB_CONFIG"),
		BaseURL:    getenv("SPECPUB_BASE_URL"),
		RepoRoot:   getenv("SPECPUB_REPO_ROOT"),
		Renderer:   getenv("SPECPUB_RENDERER"),
		LogLevel:   getenv("SPECPUB_LOG_LEVEL"),
		Published:  getenv("SPECPUB_PUBLISHED"),
	}

	if timeout := getenv("SPECPUB_TIMEOUT"); timeout != "" {
		if d, err := time.ParseDuration(timeout); err == nil && d > 0 {
			cfg.Timeout = d
		}
	}

	switch strings.ToLower(getenv("SPECPUB_LOCALIZE_CSS")) {
	case "1", "true", "yes", "on":
		on := true
		cfg.LocalizeCSS = &on
	case "0", "false", "no", "off":
		off := false
		cfg.LocalizeCSS = &off
	}

	return cfg
}

// warnUnknownEnvVars logs warnings for unrecognized SPECPUB_* variables.
// Helps catch typos like SPECPUB_BASEURL instead of SPECPUB_BASE_URL.
func warnUnknownEnvVars(w io.Writer, environ []string) {
	for _, env := range environ {
		if strings.HasPrefix(env, "SPECPUB_") {
			name := strings.SplitN(env, "=", 2)[0]
			if !knownEnvVars[name] {
				fmt.Fprintf(w, "warning: unknown environment variable %s (typo?)\n", name)
			}
		}
	}
}

// applyEnvConfig overrides config file values with the environment
// variables that are set. CLI flags are applied afterwards by mergeFlags,
// giving: CLI flags > env vars > config file > defaults.
func applyEnvConfig(env *envConfig, cfg *config.Config) {
	if env.BaseURL != "" {
		cfg.Site.BaseURL = env.BaseURL
	}
	if env.RepoRoot != "" {
		cfg.Site.RepoRoot = env.RepoRoot
	}
	if env.Renderer != "" {
		cfg.Renderer = env.Renderer
	}
	if env.Published != "" {
		cfg.Published = env.Published
	}
	if env.LocalizeCSS != nil {
		cfg.Assets.LocalizeCSS = *env.LocalizeCSS
	}
}
