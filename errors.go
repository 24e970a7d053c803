package specpub

import "errors"

// Sentinel errors for library operations.
var (
	ErrInputNotFound    = errors.New("input file not found")
	ErrInvalidExtension = errors.New("invalid file extension")
	ErrEmptyDocument    = errors.New("document is empty")
	ErrToolNotFound     = errors.New("external tool not found")
	ErrFormatFailed     = errors.New("markdown formatting failed")
	ErrConversionFailed = errors.New("HTML conversion failed")
	ErrPostProcess      = errors.New("HTML post-processing failed")
	ErrRenderFailed     = errors.New("PDF rendering failed")
	ErrBrowserConnect   = errors.New("failed to connect to browser")
	ErrPageCreate       = errors.New("failed to create browser page")
	ErrPageLoad         = errors.New("failed to load page")
	ErrInvalidPDF       = errors.New("output is not a valid PDF")
	ErrUnknownRenderer  = errors.New("unknown renderer")

	// Page settings validation errors.
	ErrInvalidPageSize    = errors.New("invalid page size")
	ErrInvalidOrientation = errors.New("invalid orientation")
	ErrInvalidMargin      = errors.New("invalid margin")
	ErrInvalidFontSize    = errors.New("invalid font size")
)
