package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/goccy/go-yaml"

	"github.com/alnah/go-specpub/internal/dateutil"
	"github.com/alnah/go-specpub/internal/fileutil"
)

// Sentinel errors for config operations.
var (
	ErrConfigNotFound  = errors.New("config file not found")
	ErrEmptyConfigName = errors.New("config name cannot be empty")
	ErrConfigParse     = errors.New("failed to parse config")
	ErrInvalidConfig   = errors.New("invalid config")
	ErrFieldTooLong    = errors.New("field exceeds maximum length")
)

// AppDir is the directory under os.UserConfigDir searched for named configs.
const AppDir = "specpub"

// MaxFileSize limits config input to prevent memory exhaustion.
const MaxFileSize = 1 << 20

// Field length limits.
const (
	MaxURLLength         = 2048 // Browser limit
	MaxAltLength         = 200
	MaxMarginalLength    = 200 // One header/footer slot
	MaxHolderLength      = 100 // "OASIS Open"
	MaxPathLength        = 4096
	MaxPageSizeLength    = 10 // "letter", "a4", "legal"
	MaxOrientationLength = 10 // "portrait", "landscape"
	MaxPublishedLength   = 60
)

// Bounds for numeric fields. Zero always means "use the default".
const (
	MinMargin   = 0.25
	MaxMargin   = 3.0
	MinFontSize = 6
	MaxFontSize = 24
)

// Renderer names accepted in the renderer field.
const (
	RendererWkhtmltopdf = "wkhtmltopdf"
	RendererChrome      = "chrome"
)

// YearAuto resolves to the current year at publish time.
const YearAuto = "auto"

// Config holds all configuration for a publishing run.
type Config struct {
	Site      SiteConfig      `yaml:"site"`
	Logo      LogoConfig      `yaml:"logo"`
	Pandoc    PandocConfig    `yaml:"pandoc"`
	Page      PageConfig      `yaml:"page"`
	Header    MarginalConfig  `yaml:"header"`
	Footer    MarginalConfig  `yaml:"footer"`
	Copyright CopyrightConfig `yaml:"copyright"`
	Assets    AssetsConfig    `yaml:"assets"`
	Renderer  string          `yaml:"renderer"` // "wkhtmltopdf" (default) or "chrome"
	Format    FormatConfig    `yaml:"format"`

	// Published is the publication date substituted for [pubdate] in
	// header and footer text: "auto", "auto:FORMAT", or a literal date.
	Published string `yaml:"published"`
}

// SiteConfig describes where the document is published.
type SiteConfig struct {
	// BaseURL is the absolute URL of the published document or of its
	// directory when it ends with "/". Empty disables relativization.
	BaseURL string `yaml:"baseURL"`

	// RepoRoot, when set, makes BaseURL the site root: the document URL
	// becomes BaseURL plus the output directory relative to RepoRoot.
	RepoRoot string `yaml:"repoRoot"`
}

// LogoConfig overrides the canonical logo.
type LogoConfig struct {
	URL string `yaml:"url"`
	Alt string `yaml:"alt"`
}

// PandocConfig controls the Markdown to HTML step.
type PandocConfig struct {
	Stylesheet string `yaml:"stylesheet"` // URL or path passed with -c
	TOC        bool   `yaml:"toc"`

	// KeepTOC keeps pandoc's generated nav#TOC. Sources normally carry
	// their own table of contents, so it is dropped by default.
	KeepTOC bool `yaml:"keepTOC"`
}

// PageConfig defines PDF page settings.
type PageConfig struct {
	Size        string  `yaml:"size"`        // "letter", "a4", "legal"
	Orientation string  `yaml:"orientation"` // "portrait", "landscape"
	Margin      float64 `yaml:"margin"`      // inches
}

// MarginalConfig holds the three text slots of a page header or footer.
// Text may contain the renderer tokens [page], [topage], [title],
// [doctitle] and [date], plus [pubdate].
type MarginalConfig struct {
	Left     string `yaml:"left"`
	Center   string `yaml:"center"`
	Right    string `yaml:"right"`
	FontSize int    `yaml:"fontSize"`
}

// CopyrightConfig feeds the default footer copyright line.
type CopyrightConfig struct {
	Holder string `yaml:"holder"`
	Year   string `yaml:"year"` // "auto" or a four-digit year
}

// AssetsConfig controls asset localization.
type AssetsConfig struct {
	LocalizeCSS bool   `yaml:"localizeCSS"`
	Timeout     string `yaml:"timeout"` // per-fetch timeout, e.g. "10s"

	// PrintStylesDir holds a print.css replacing the built-in print style.
	PrintStylesDir string `yaml:"printStylesDir"`
}

// FormatConfig controls the prettier step.
type FormatConfig struct {
	Enabled bool `yaml:"enabled"`
}

// DefaultConfig returns the configuration used when no file is given.
// Empty fields mean the library default applies.
func DefaultConfig() *Config {
	return &Config{
		Pandoc:    PandocConfig{TOC: true},
		Copyright: CopyrightConfig{Year: YearAuto},
		Format:    FormatConfig{Enabled: true},
	}
}

// Validate checks field lengths and enumerations.
// Called automatically by LoadConfig, but available for callers that build
// a Config by hand.
func (c *Config) Validate() error {
	lengths := []struct {
		field string
		value string
		max   int
	}{
		{"site.baseURL", c.Site.BaseURL, MaxURLLength},
		{"site.repoRoot", c.Site.RepoRoot, MaxPathLength},
		{"logo.url", c.Logo.URL, MaxURLLength},
		{"logo.alt", c.Logo.Alt, MaxAltLength},
		{"pandoc.stylesheet", c.Pandoc.Stylesheet, MaxPathLength},
		{"page.size", c.Page.Size, MaxPageSizeLength},
		{"page.orientation", c.Page.Orientation, MaxOrientationLength},
		{"header.left", c.Header.Left, MaxMarginalLength},
		{"header.center", c.Header.Center, MaxMarginalLength},
		{"header.right", c.Header.Right, MaxMarginalLength},
		{"footer.left", c.Footer.Left, MaxMarginalLength},
		{"footer.center", c.Footer.Center, MaxMarginalLength},
		{"footer.right", c.Footer.Right, MaxMarginalLength},
		{"copyright.holder", c.Copyright.Holder, MaxHolderLength},
		{"assets.printStylesDir", c.Assets.PrintStylesDir, MaxPathLength},
		{"published", c.Published, MaxPublishedLength},
	}
	for _, l := range lengths {
		if err := validateFieldLength(l.field, l.value, l.max); err != nil {
			return err
		}
	}

	if c.Page.Size != "" {
		switch strings.ToLower(c.Page.Size) {
		case "letter", "a4", "legal":
		default:
			return invalid("page.size", "%q (must be letter, a4, or legal)", c.Page.Size)
		}
	}
	if c.Page.Orientation != "" {
		switch strings.ToLower(c.Page.Orientation) {
		case "portrait", "landscape":
		default:
			return invalid("page.orientation", "%q (must be portrait or landscape)", c.Page.Orientation)
		}
	}
	if c.Page.Margin != 0 && (c.Page.Margin < MinMargin || c.Page.Margin > MaxMargin) {
		return invalid("page.margin", "must be between %.2f and %.2f, got %.2f", MinMargin, MaxMargin, c.Page.Margin)
	}

	if err := validateFontSize("header.fontSize", c.Header.FontSize); err != nil {
		return err
	}
	if err := validateFontSize("footer.fontSize", c.Footer.FontSize); err != nil {
		return err
	}

	if y := c.Copyright.Year; y != "" && y != YearAuto {
		if _, err := strconv.Atoi(y); err != nil || len(y) != 4 {
			return invalid("copyright.year", "%q (must be auto or a four-digit year)", y)
		}
	}

	if _, err := dateutil.Resolve(c.Published, time.Time{}); err != nil {
		return invalid("published", "%v", err)
	}

	if c.Assets.Timeout != "" {
		d, err := time.ParseDuration(c.Assets.Timeout)
		if err != nil || d <= 0 {
			return invalid("assets.timeout", "%q (must be a positive duration like 10s)", c.Assets.Timeout)
		}
	}

	switch strings.ToLower(c.Renderer) {
	case "", RendererWkhtmltopdf, RendererChrome:
	default:
		return invalid("renderer", "%q (must be wkhtmltopdf or chrome)", c.Renderer)
	}

	return nil
}

// FetchTimeout returns the parsed asset timeout, or 0 when unset.
// Call after Validate.
func (c *Config) FetchTimeout() time.Duration {
	d, err := time.ParseDuration(c.Assets.Timeout)
	if err != nil {
		return 0
	}
	return d
}

func validateFontSize(field string, size int) error {
	if size != 0 && (size < MinFontSize || size > MaxFontSize) {
		return invalid(field, "must be between %d and %d, got %d", MinFontSize, MaxFontSize, size)
	}
	return nil
}

// validateFieldLength checks if a field exceeds its maximum allowed length.
func validateFieldLength(fieldName, value string, maxLength int) error {
	if len(value) > maxLength {
		return fmt.Errorf("%w: %w: %s (%d chars, max %d)", ErrInvalidConfig, ErrFieldTooLong, fieldName, len(value), maxLength)
	}
	return nil
}

func invalid(field, format string, args ...any) error {
	return fmt.Errorf("%w: %s: %s", ErrInvalidConfig, field, fmt.Sprintf(format, args...))
}

// LoadConfig loads configuration from a file path or config name.
// If nameOrPath contains a path separator, it's treated as a file path.
// Otherwise, it's treated as a config name and searched in standard locations.
// Keys absent from the file keep their DefaultConfig values.
func LoadConfig(nameOrPath string) (*Config, error) {
	if nameOrPath == "" {
		return nil, ErrEmptyConfigName
	}

	configPath := nameOrPath
	if !fileutil.IsFilePath(nameOrPath) {
		var err error
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
	if err := decodeStrict(data, cfg); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrConfigParse, configPath, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// decodeStrict unmarshals YAML, rejecting unknown fields.
func decodeStrict(data []byte, v any) error {
	if len(data) > MaxFileSize {
		return fmt.Errorf("input is %d bytes (max %d)", len(data), MaxFileSize)
	}
	if strings.TrimSpace(string(data)) == "" {
		return nil
	}
	return yaml.UnmarshalWithOptions(data, v, yaml.Strict())
}

// SearchPaths lists the candidate files for a config name, in lookup order:
// current directory first, then the user config directory.
func SearchPaths(name string) []string {
	extensions := []string{".yaml", ".yml"}
	paths := make([]string, 0, len(extensions)*2)

	for _, ext := range extensions {
		paths = append(paths, name+ext)
	}
	if userConfigDir, err := os.UserConfigDir(); err == nil {
		for _, ext := range extensions {
			paths = append(paths, filepath.Join(userConfigDir, AppDir, name+ext))
		}
	}
	return paths
}

// resolveConfigPath returns the first existing candidate for name.
func resolveConfigPath(name string) (string, error) {
	tried := SearchPaths(name)
	for _, p := range tried {
		if fileutil.FileExists(p) {
			return p, nil
		}
	}
	return "", fmt.Errorf("%w: tried %s", ErrConfigNotFound, strings.Join(tried, ", "))
}
