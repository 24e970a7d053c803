package specpub

import (
	"fmt"
	"strings"
	"time"

	"github.com/alnah/go-specpub/internal/dateutil"
)

// Page size constants.
const (
	PageSizeLetter = "letter"
	PageSizeA4     = "a4"
	PageSizeLegal  = "legal"
)

// Orientation constants.
const (
	OrientationPortrait  = "portrait"
	OrientationLandscape = "landscape"
)

// Margin bounds in inches.
const (
	MinMargin     = 0.25
	MaxMargin     = 3.0
	DefaultMargin = 0.75
)

// Font size bounds for header and footer text, in points.
const (
	MinFontSize           = 6
	MaxFontSize           = 24
	DefaultHeaderFontSize = 10
	DefaultFooterFontSize = 8
)

// DefaultCopyrightHolder appears in the default footer.
const DefaultCopyrightHolder = "OASIS Open"

// PubDateToken is replaced by the resolved publication date in header and
// footer text. Renderer tokens ([page], [topage], [title], [doctitle],
// [date]) are passed through to the renderer.
const PubDateToken = "[pubdate]"

// PageSettings configures PDF page dimensions.
type PageSettings struct {
	Size        string  // "letter", "a4", "legal"
	Orientation string  // "portrait", "landscape"
	Margin      float64 // inches, applied to all sides
}

// DefaultPageSettings returns A4 portrait pages, the OASIS print format.
func DefaultPageSettings() *PageSettings {
	return &PageSettings{
		Size:        PageSizeA4,
		Orientation: OrientationPortrait,
		Margin:      DefaultMargin,
	}
}

// Validate checks that page settings are valid.
// Returns nil if p is nil (nil means use defaults).
// Does not mutate - uses case-insensitive comparison.
func (p *PageSettings) Validate() error {
	if p == nil {
		return nil
	}

	if !isValidPageSize(p.Size) {
		return fmt.Errorf("%w: %q", ErrInvalidPageSize, p.Size)
	}

	if !isValidOrientation(p.Orientation) {
		return fmt.Errorf("%w: %q", ErrInvalidOrientation, p.Orientation)
	}

	if p.Margin < MinMargin || p.Margin > MaxMargin {
		return fmt.Errorf("%w: %.2f (must be between %.2f and %.2f)", ErrInvalidMargin, p.Margin, MinMargin, MaxMargin)
	}

	return nil
}

// isLandscape reports whether the orientation is landscape (case-insensitive).
func (p *PageSettings) isLandscape() bool {
	return strings.EqualFold(p.Orientation, OrientationLandscape)
}

// isValidPageSize checks if size is a known page size (case-insensitive).
func isValidPageSize(size string) bool {
	switch strings.ToLower(size) {
	case PageSizeLetter, PageSizeA4, PageSizeLegal:
		return true
	}
	return false
}

// isValidOrientation checks if orientation is valid (case-insensitive).
func isValidOrientation(orientation string) bool {
	switch strings.ToLower(orientation) {
	case OrientationPortrait, OrientationLandscape:
		return true
	}
	return false
}

// Marginal is the text of a page header or footer, in three slots.
type Marginal struct {
	Left     string
	Center   string
	Right    string
	FontSize int // points; 0 uses the renderer default for the slot
}

// IsEmpty reports whether no slot carries text.
func (m *Marginal) IsEmpty() bool {
	return m == nil || (m.Left == "" && m.Center == "" && m.Right == "")
}

// Validate checks the font size. A nil Marginal is valid.
func (m *Marginal) Validate() error {
	if m == nil || m.FontSize == 0 {
		return nil
	}
	if m.FontSize < MinFontSize || m.FontSize > MaxFontSize {
		return fmt.Errorf("%w: %d (must be between %d and %d)", ErrInvalidFontSize, m.FontSize, MinFontSize, MaxFontSize)
	}
	return nil
}

// withPubDate returns a copy with PubDateToken replaced by date.
func (m *Marginal) withPubDate(date string) *Marginal {
	if m == nil {
		return nil
	}
	r := strings.NewReplacer(PubDateToken, date)
	return &Marginal{
		Left:     r.Replace(m.Left),
		Center:   r.Replace(m.Center),
		Right:    r.Replace(m.Right),
		FontSize: m.FontSize,
	}
}

// DefaultFooter returns the standard OASIS work product footer.
// An empty holder uses DefaultCopyrightHolder.
func DefaultFooter(holder, year string) *Marginal {
	if holder == "" {
		holder = DefaultCopyrightHolder
	}
	return &Marginal{
		Left:     "Standards Track Work Product",
		Center:   fmt.Sprintf("Copyright © %s %s. All Rights Reserved.", holder, year),
		Right:    "Page [page] of [topage]",
		FontSize: DefaultFooterFontSize,
	}
}

// ResolveYear returns now's year for "" or "auto", otherwise year.
func ResolveYear(year string, now time.Time) string {
	return dateutil.Year(year, now)
}

// RenderOptions is what a Renderer needs besides the file paths.
type RenderOptions struct {
	Page   *PageSettings // nil uses DefaultPageSettings
	Header *Marginal     // nil or empty: no header
	Footer *Marginal     // nil or empty: no footer
}

// page returns the effective page settings.
func (o *RenderOptions) page() *PageSettings {
	if o == nil || o.Page == nil {
		return DefaultPageSettings()
	}
	return o.Page
}

// Validate checks page settings and marginal font sizes.
func (o *RenderOptions) Validate() error {
	if o == nil {
		return nil
	}
	if err := o.Page.Validate(); err != nil {
		return err
	}
	if err := o.Header.Validate(); err != nil {
		return err
	}
	return o.Footer.Validate()
}
