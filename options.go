package specpub

import (
	"log/slog"
	"time"

	"github.com/alnah/go-specpub/internal/assets"
	"github.com/alnah/go-specpub/internal/postprocess"
)

// WithRunner sets the runner used for pandoc, prettier and wkhtmltopdf.
func WithRunner(r CommandRunner) Option {
	return func(p *Publisher) {
		p.runner = r
	}
}

// WithRenderer injects a renderer, bypassing WithRendererName.
func WithRenderer(r Renderer) Option {
	return func(p *Publisher) {
		p.renderer = r
	}
}

// WithRendererName selects a renderer by name (wkhtmltopdf or chrome).
func WithRendererName(name string) Option {
	return func(p *Publisher) {
		p.cfg.rendererName = name
	}
}

// WithInspector replaces the PDF checker.
func WithInspector(i PDFInspector) Option {
	return func(p *Publisher) {
		p.inspector = i
	}
}

// WithFetcher replaces the asset downloader.
func WithFetcher(f postprocess.Fetcher) Option {
	return func(p *Publisher) {
		p.fetcher = f
	}
}

// WithStyleLoader replaces the print stylesheet source.
func WithStyleLoader(l assets.StyleLoader) Option {
	return func(p *Publisher) {
		p.styles = l
	}
}

// WithPrintStylesDir sets a directory whose print.css overrides the
// built-in print style.
func WithPrintStylesDir(dir string) Option {
	return func(p *Publisher) {
		p.cfg.printStylesDir = dir
	}
}

// WithLogger sets the logger. The default discards everything.
func WithLogger(l *slog.Logger) Option {
	return func(p *Publisher) {
		if l != nil {
			p.logger = l
		}
	}
}

// WithTimeout sets the per-asset download timeout.
// Panics if d <= 0 (programmer error, similar to time.NewTicker).
func WithTimeout(d time.Duration) Option {
	if d <= 0 {
		panic("specpub: WithTimeout duration must be positive")
	}
	return func(p *Publisher) {
		p.cfg.fetchTimeout = d
	}
}

// WithRenderTimeout bounds page loading in the browser renderer.
// Panics if d <= 0.
func WithRenderTimeout(d time.Duration) Option {
	if d <= 0 {
		panic("specpub: WithRenderTimeout duration must be positive")
	}
	return func(p *Publisher) {
		p.cfg.renderTimeout = d
	}
}

// WithLocalizeCSS also downloads remote stylesheets next to the output.
func WithLocalizeCSS(on bool) Option {
	return func(p *Publisher) {
		p.cfg.localizeCSS = on
	}
}

// WithFormat toggles running prettier before conversion.
func WithFormat(on bool) Option {
	return func(p *Publisher) {
		p.cfg.format = on
	}
}

// WithBaseURL sets the absolute URL the document (or its directory, when
// ending in "/") is published at. Enables link relativization.
func WithBaseURL(u string) Option {
	return func(p *Publisher) {
		p.cfg.baseURL = u
	}
}

// WithLogo overrides the canonical logo. Empty fields keep the default.
func WithLogo(url, alt string) Option {
	return func(p *Publisher) {
		if url != "" {
			p.cfg.logo.URL = url
		}
		if alt != "" {
			p.cfg.logo.Alt = alt
		}
	}
}

// WithStylesheet sets the stylesheet pandoc links (-c).
func WithStylesheet(ref string) Option {
	return func(p *Publisher) {
		p.cfg.stylesheet = ref
	}
}

// WithTOC toggles pandoc's table of contents.
func WithTOC(on bool) Option {
	return func(p *Publisher) {
		p.cfg.toc = on
	}
}

// WithKeepTOC keeps pandoc's generated table of contents in the HTML.
// By default it is removed in favor of the document's own.
func WithKeepTOC(keep bool) Option {
	return func(p *Publisher) {
		p.cfg.keepTOC = keep
	}
}

// WithPage sets page size, orientation and margin.
func WithPage(ps *PageSettings) Option {
	return func(p *Publisher) {
		p.cfg.page = ps
	}
}

// WithHeader sets the page header. An empty Marginal disables it.
func WithHeader(m *Marginal) Option {
	return func(p *Publisher) {
		p.cfg.header = m
	}
}

// WithFooter sets the page footer, replacing the default OASIS footer.
// An empty Marginal disables it.
func WithFooter(m *Marginal) Option {
	return func(p *Publisher) {
		p.cfg.footer = m
	}
}

// WithCopyright sets the holder and year ("auto" or a year) of the
// default footer.
func WithCopyright(holder, year string) Option {
	return func(p *Publisher) {
		p.cfg.holder = holder
		if year != "" {
			p.cfg.year = year
		}
	}
}

// WithPublished sets the value substituted for [pubdate]: "auto",
// "auto:FORMAT", or a literal date.
func WithPublished(value string) Option {
	return func(p *Publisher) {
		p.cfg.published = value
	}
}

// WithNow injects the clock (tests).
func WithNow(now func() time.Time) Option {
	return func(p *Publisher) {
		p.now = now
	}
}
