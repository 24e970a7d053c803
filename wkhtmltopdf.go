package specpub

import (
	"context"
	"strconv"
	"strings"
)

// Spacing between marginals and page content, in millimetres.
const (
	headerSpacing = 6
	footerSpacing = 4
)

// WkhtmltopdfRenderer renders through the wkhtmltopdf CLI. Marginal text is
// passed verbatim, so wkhtmltopdf substitutes its own [page], [topage],
// [title], [doctitle] and [date] tokens.
type WkhtmltopdfRenderer struct {
	Runner CommandRunner
}

// Render implements Renderer.
func (r *WkhtmltopdfRenderer) Render(ctx context.Context, htmlPath, pdfPath string, opts *RenderOptions) error {
	if err := opts.Validate(); err != nil {
		return err
	}
	// Load errors are ignored, so a zero exit does not guarantee a usable
	// PDF. Publisher inspects the output.
	_, stderr, err := r.Runner.Run(ctx, ToolWkhtmltopdf, wkhtmltopdfArgs(htmlPath, pdfPath, opts)...)
	if err != nil {
		return toolError(ErrRenderFailed, ToolWkhtmltopdf, stderr, err)
	}
	return nil
}

// Close implements Renderer. Nothing is held between renders.
func (r *WkhtmltopdfRenderer) Close() error { return nil }

func wkhtmltopdfArgs(htmlPath, pdfPath string, opts *RenderOptions) []string {
	page := opts.page()
	margin := strconv.FormatFloat(page.Margin, 'f', -1, 64) + "in"

	args := []string{
		"--page-size", wkhtmltopdfPageSize(page.Size),
		"--orientation", wkhtmltopdfOrientation(page),
		"--margin-top", margin,
		"--margin-right", margin,
		"--margin-bottom", margin,
		"--margin-left", margin,
	}

	if opts != nil && !opts.Header.IsEmpty() {
		args = appendMarginal(args, "header", opts.Header, DefaultHeaderFontSize)
		args = append(args, "--header-spacing", strconv.Itoa(headerSpacing))
	}
	if opts != nil && !opts.Footer.IsEmpty() {
		args = appendMarginal(args, "footer", opts.Footer, DefaultFooterFontSize)
		args = append(args, "--footer-spacing", strconv.Itoa(footerSpacing), "--footer-line")
	}

	return append(args,
		"--print-media-type",
		"--no-outline",
		"--enable-local-file-access",
		"--load-error-handling", "ignore",
		"--load-media-error-handling", "ignore",
		htmlPath,
		pdfPath,
	)
}

// appendMarginal adds the --<kind>-{left,center,right} flags for non-empty
// slots and the font size.
func appendMarginal(args []string, kind string, m *Marginal, defaultSize int) []string {
	for _, slot := range []struct{ name, text string }{
		{"left", m.Left},
		{"center", m.Center},
		{"right", m.Right},
	} {
		if slot.text != "" {
			args = append(args, "--"+kind+"-"+slot.name, slot.text)
		}
	}
	size := m.FontSize
	if size == 0 {
		size = defaultSize
	}
	return append(args, "--"+kind+"-font-size", strconv.Itoa(size))
}

func wkhtmltopdfPageSize(size string) string {
	switch strings.ToLower(size) {
	case PageSizeLetter:
		return "Letter"
	case PageSizeLegal:
		return "Legal"
	default:
		return "A4"
	}
}

func wkhtmltopdfOrientation(p *PageSettings) string {
	if p.isLandscape() {
		return "Landscape"
	}
	return "Portrait"
}
