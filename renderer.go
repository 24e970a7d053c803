package specpub

import (
	"context"
	"fmt"
	"strings"
	"time"
)

// Renderer names.
const (
	RendererWkhtmltopdf = "wkhtmltopdf"
	RendererChrome      = "chrome"
)

// Renderer turns a local HTML file into a PDF file.
type Renderer interface {
	Render(ctx context.Context, htmlPath, pdfPath string, opts *RenderOptions) error
	Close() error
}

// NewRenderer returns the renderer registered under name ("" means
// wkhtmltopdf). runner is used by command-line renderers; timeout bounds
// page loading in the browser renderer.
func NewRenderer(name string, runner CommandRunner, timeout time.Duration) (Renderer, error) {
	switch strings.ToLower(name) {
	case "", RendererWkhtmltopdf:
		if runner == nil {
			runner = &ExecRunner{}
		}
		return &WkhtmltopdfRenderer{Runner: runner}, nil
	case RendererChrome:
		return NewChromeRenderer(timeout), nil
	default:
		return nil, fmt.Errorf("%w: %q (must be %s or %s)", ErrUnknownRenderer, name, RendererWkhtmltopdf, RendererChrome)
	}
}
