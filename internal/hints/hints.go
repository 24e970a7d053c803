// Package hints provides actionable error hints for common failure scenarios.
// Hints are formatted consistently as "\n  hint: <text>" for appending to error messages.
package hints

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/alnah/go-specpub/internal/fileutil"
)

// IsInContainer detects if running inside a Docker container or similar.
// Checks for /.dockerenv file which Docker creates automatically.
var IsInContainer = func() bool {
	return fileutil.FileExists("/.dockerenv")
}

// InCI reports whether a common CI environment variable is set.
func InCI() bool {
	for _, v := range []string{"CI", "GITHUB_ACTIONS", "GITLAB_CI", "JENKINS_URL", "CIRCLECI"} {
		if os.Getenv(v) != "" {
			return true
		}
	}
	return false
}

// ForBrowserConnect returns hints for browser connection errors.
// Detects CI/Docker environment and suggests relevant environment variables.
func ForBrowserConnect() string {
	var hints []string

	if (InCI() || IsInContainer()) && os.Getenv("ROD_NO_SANDBOX") != "1" {
		hints = append(hints, "set ROD_NO_SANDBOX=1 for Docker/CI")
	}
	if os.Getenv("ROD_BROWSER_BIN") == "" {
		hints = append(hints, "set ROD_BROWSER_BIN to use custom Chrome")
	}

	return formatHints(hints)
}

// toolHints maps external tools to install advice.
var toolHints = map[string]string{
	"pandoc":      "install pandoc from https://pandoc.org/installing.html",
	"wkhtmltopdf": "install wkhtmltopdf (https://wkhtmltopdf.org) or use --renderer chrome",
	"prettier":    "install it with 'npm install -g prettier' or pass --no-format",
}

// ForToolNotFound returns install advice for a missing external tool.
func ForToolNotFound(tool string) string {
	if h, ok := toolHints[filepath.Base(tool)]; ok {
		return format(h)
	}
	return format("make sure " + tool + " is installed and on PATH")
}

// ForTimeout returns a hint about increasing timeout for slow operations.
func ForTimeout() string {
	return format("for large documents, use --timeout flag or SPECPUB_TIMEOUT")
}

// ForConfigNotFound returns hints for config file not found errors.
// Suggests --config flag and creating a config in the user config directory.
func ForConfigNotFound(searchedPaths []string) string {
	hint := "use --config /path/to/file.yaml"

	for _, p := range searchedPaths {
		if strings.Contains(filepath.ToSlash(p), "/specpub/") {
			hint += " or create " + p
			break
		}
	}

	return format(hint)
}

// ForBaseURL returns a hint for rejected base URLs.
func ForBaseURL() string {
	return format("use an absolute URL such as https://docs.oasis-open.org/tc/spec/v1.0/")
}

// ForInputExtension returns a hint listing accepted input extensions.
func ForInputExtension(exts []string) string {
	if len(exts) == 0 {
		return ""
	}
	return format("expected " + strings.Join(exts, " or ") + " input")
}

// ForOutputDirectory returns hints for output directory creation errors.
func ForOutputDirectory() string {
	return format("check parent directory exists and is writable")
}

// format creates a single hint string with consistent formatting.
func format(hint string) string {
	if hint == "" {
		return ""
	}
	return "\n  hint: " + hint
}

// formatHints joins multiple hints with consistent formatting.
func formatHints(hints []string) string {
	if len(hints) == 0 {
		return ""
	}
	return format(strings.Join(hints, "; "))
}
