package main

import (
	"errors"
	"os"

	specpub "github.com/alnah/go-specpub"
	"github.com/alnah/go-specpub/internal/assets"
	"github.com/alnah/go-specpub/internal/config"
	"github.com/alnah/go-specpub/internal/dateutil"
)

// Exit codes for the specpub CLI.
// Follows Unix conventions: 0=success, 1=general, 2=usage, and custom codes < 126.
const (
	ExitSuccess = 0 // Successful run
	ExitGeneral = 1 // General/unexpected error
	ExitUsage   = 2 // Invalid flags, config, or validation
	ExitIO      = 3 // Input not found, permission denied
	ExitTool    = 4 // pandoc, prettier, wkhtmltopdf or browser failure
)

// exitCodeFor returns the appropriate exit code for an error.
// It uses errors.Is to check wrapped errors, so callers must use fmt.Errorf("%w", err).
func exitCodeFor(err error) int {
	if err == nil {
		return ExitSuccess
	}

	// External tool and browser errors (exit 4)
	if errors.Is(err, specpub.ErrToolNotFound) ||
		errors.Is(err, specpub.ErrFormatFailed) ||
		errors.Is(err, specpub.ErrConversionFailed) ||
		errors.Is(err, specpub.ErrRenderFailed) ||
		errors.Is(err, specpub.ErrInvalidPDF) ||
		errors.Is(err, specpub.ErrBrowserConnect) ||
		errors.Is(err, specpub.ErrPageCreate) ||
		errors.Is(err, specpub.ErrPageLoad) {
		return ExitTool
	}

	// I/O errors (exit 3)
	if errors.Is(err, specpub.ErrInputNotFound) ||
		errors.Is(err, os.ErrNotExist) ||
		errors.Is(err, os.ErrPermission) {
		return ExitIO
	}

	// Usage/config/validation errors (exit 2)
	if errors.Is(err, ErrUsage) ||
		errors.Is(err, config.ErrConfigNotFound) ||
		errors.Is(err, config.ErrEmptyConfigName) ||
		errors.Is(err, config.ErrConfigParse) ||
		errors.Is(err, config.ErrInvalidConfig) ||
		errors.Is(err, specpub.ErrInvalidExtension) ||
		errors.Is(err, specpub.ErrEmptyDocument) ||
		errors.Is(err, specpub.ErrInvalidPageSize) ||
		errors.Is(err, specpub.ErrInvalidOrientation) ||
		errors.Is(err, specpub.ErrInvalidMargin) ||
		errors.Is(err, specpub.ErrInvalidFontSize) ||
		errors.Is(err, specpub.ErrUnknownRenderer) ||
		errors.Is(err, specpub.ErrInvalidBaseURL) ||
		errors.Is(err, dateutil.ErrInvalidDateFormat) ||
		errors.Is(err, assets.ErrStyleNotFound) ||
		errors.Is(err, assets.ErrInvalidBasePath) ||
		errors.Is(err, assets.ErrPathTraversal) {
		return ExitUsage
	}

	return ExitGeneral
}
