package specpub

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/alnah/go-specpub/internal/assets"
	"github.com/alnah/go-specpub/internal/dateutil"
	"github.com/alnah/go-specpub/internal/fetch"
	"github.com/alnah/go-specpub/internal/fileutil"
	"github.com/alnah/go-specpub/internal/postprocess"
)

// Accepted input extensions.
var (
	MarkdownExtensions = []string{".md", ".markdown"}
	HTMLExtensions     = []string{".html", ".htm"}
)

// Publisher runs the Markdown to HTML to PDF pipeline for one document at
// a time. Create with NewPublisher and Close when done.
type Publisher struct {
	cfg       publisherConfig
	runner    CommandRunner
	renderer  Renderer
	inspector PDFInspector
	fetcher   postprocess.Fetcher
	styles    assets.StyleLoader
	logger    *slog.Logger
	now       func() time.Time
}

// publisherConfig holds the settings applied by options.
type publisherConfig struct {
	fetchTimeout   time.Duration
	renderTimeout  time.Duration
	rendererName   string
	localizeCSS    bool
	format         bool
	baseURL        string
	logo           postprocess.Logo
	stylesheet     string
	toc            bool
	keepTOC        bool
	page           *PageSettings
	header         *Marginal
	footer         *Marginal
	holder         string
	year           string
	published      string
	printStylesDir string
}

// Option configures a Publisher.
type Option func(*Publisher)

// NewPublisher creates a Publisher. Defaults: wkhtmltopdf, A4 portrait,
// TOC on, prettier on, the OASIS footer with the current year.
func NewPublisher(opts ...Option) (*Publisher, error) {
	p := &Publisher{
		cfg: publisherConfig{
			fetchTimeout:  fetch.DefaultTimeout,
			renderTimeout: DefaultRenderTimeout,
			format:        true,
			toc:           true,
			logo:          postprocess.DefaultLogo(),
			year:          dateutil.Auto,
		},
		runner:    &ExecRunner{},
		inspector: PdfcpuInspector{},
		logger:    slog.New(slog.NewTextHandler(io.Discard, nil)),
		now:       time.Now,
	}

	for _, opt := range opts {
		opt(p)
	}

	if p.cfg.page == nil {
		p.cfg.page = DefaultPageSettings()
	}
	if p.cfg.header == nil {
		p.cfg.header = &Marginal{Center: "[doctitle]", FontSize: DefaultHeaderFontSize}
	}
	if p.cfg.footer == nil {
		p.cfg.footer = DefaultFooter(p.cfg.holder, ResolveYear(p.cfg.year, p.now()))
	}
	renderOpts := &RenderOptions{Page: p.cfg.page, Header: p.cfg.header, Footer: p.cfg.footer}
	if err := renderOpts.Validate(); err != nil {
		return nil, err
	}
	if _, err := dateutil.Resolve(p.cfg.published, p.now()); err != nil {
		return nil, err
	}
	if p.cfg.baseURL != "" {
		if err := CheckBaseURL(p.cfg.baseURL); err != nil {
			return nil, err
		}
	}

	if p.fetcher == nil {
		p.fetcher = fetch.New(p.cfg.fetchTimeout)
	}
	if p.styles == nil {
		resolver, err := assets.NewResolver(p.cfg.printStylesDir)
		if err != nil {
			return nil, err
		}
		p.styles = resolver
	}
	// Renderer last: the browser renderer is the only costly one.
	if p.renderer == nil {
		r, err := NewRenderer(p.cfg.rendererName, p.runner, p.cfg.renderTimeout)
		if err != nil {
			return nil, err
		}
		p.renderer = r
	}

	return p, nil
}

// Close releases renderer resources (headless Chrome).
func (p *Publisher) Close() error {
	if p.renderer != nil {
		return p.renderer.Close()
	}
	return nil
}

// FormatMarkdown runs prettier on mdPath in place when formatting is
// enabled. A missing prettier is logged and skipped.
func (p *Publisher) FormatMarkdown(ctx context.Context, mdPath string) error {
	if !p.cfg.format {
		return nil
	}
	err := (&Prettier{Runner: p.runner}).Format(ctx, mdPath)
	if errors.Is(err, ErrToolNotFound) {
		p.logger.Warn("prettier not found, skipping formatting", "file", mdPath)
		return nil
	}
	if err != nil {
		p.logger.Error("formatting failed", "file", mdPath, "error", err)
		return err
	}
	p.logger.Info("formatted markdown", "file", mdPath)
	return nil
}

// MarkdownToHTML converts mdPath to the post-processed HTML at htmlPath.
// Localized assets are written beside htmlPath.
func (p *Publisher) MarkdownToHTML(ctx context.Context, mdPath, htmlPath string) error {
	if err := checkInput(mdPath, MarkdownExtensions); err != nil {
		return err
	}
	if err := p.FormatMarkdown(ctx, mdPath); err != nil {
		return err
	}

	data, err := os.ReadFile(mdPath) // #nosec G304 -- user-provided input
	if err != nil {
		return fmt.Errorf("reading %s: %w", mdPath, err)
	}
	markdown := string(data)
	if strings.TrimSpace(markdown) == "" {
		return fmt.Errorf("%w: %s", ErrEmptyDocument, mdPath)
	}

	title := ExtractTitle(markdown)
	description := ExtractDescription(markdown)
	if title == NoMetadata {
		p.logger.Warn("no title heading found", "file", mdPath)
	}
	if description == NoMetadata {
		p.logger.Warn("no description found", "file", mdPath)
		description = ""
	}

	// Pandoc reads a copy so the source keeps its hand-written layout.
	pandocInput := mdPath
	if fixed, changed := EnsureTOCTitle(markdown); changed {
		tmp, cleanup, err := fileutil.TempPath(filepath.Dir(mdPath), "md")
		if err != nil {
			return err
		}
		defer cleanup()
		if err := os.WriteFile(tmp, []byte(fixed), 0o600); err != nil {
			return fmt.Errorf("writing %s: %w", tmp, err)
		}
		pandocInput = tmp
		p.logger.Debug("inserted table of contents title")
	}

	outDir := filepath.Dir(htmlPath)
	if err := os.MkdirAll(outDir, 0o750); err != nil {
		return fmt.Errorf("creating output directory: %w", err)
	}
	tmpHTML, cleanup, err := fileutil.TempPath(outDir, "html")
	if err != nil {
		return err
	}
	defer cleanup()

	stylesheet := ResolveStylesheet(outDir, p.cfg.stylesheet)
	p.logger.Info("running pandoc", "input", mdPath, "stylesheet", stylesheet)
	pandoc := &Pandoc{Runner: p.runner}
	if err := pandoc.ToHTML(ctx, pandocInput, tmpHTML, PandocOptions{Stylesheet: stylesheet, Title: title, TOC: p.cfg.toc}); err != nil {
		p.logger.Error("pandoc failed", "error", err)
		return err
	}

	raw, err := os.ReadFile(tmpHTML) // #nosec G304 -- our temp file
	if err != nil {
		return fmt.Errorf("reading pandoc output: %w", err)
	}
	out, err := p.PostProcess(ctx, string(raw), htmlPath, description)
	if err != nil {
		return err
	}
	if err := fileutil.WriteFileAtomic(htmlPath, []byte(out), 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", htmlPath, err)
	}
	p.logger.Info("wrote HTML", "file", htmlPath)
	return nil
}

// PostProcess runs the default post-processing passes over content as if
// it were published at htmlPath.
func (p *Publisher) PostProcess(ctx context.Context, content, htmlPath, description string) (string, error) {
	pipeline := postprocess.DefaultPipeline(postprocess.Config{
		Logo:        p.cfg.logo,
		Fetcher:     p.fetcher,
		LocalizeCSS: p.cfg.localizeCSS,
		Description: description,
		KeepTOC:     p.cfg.keepTOC,
	})
	out, err := postprocess.Process(ctx, content, postprocess.Options{
		Name:    filepath.Base(htmlPath),
		Dir:     filepath.Dir(htmlPath),
		BaseURL: p.cfg.baseURL,
		Logger:  p.logger,
	}, pipeline)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrPostProcess, err)
	}
	return out, nil
}

// PostProcessFile post-processes an existing HTML file into outPath, which
// may equal inPath.
func (p *Publisher) PostProcessFile(ctx context.Context, inPath, outPath string) error {
	if err := checkInput(inPath, HTMLExtensions); err != nil {
		return err
	}
	data, err := os.ReadFile(inPath) // #nosec G304 -- user-provided input
	if err != nil {
		return fmt.Errorf("reading %s: %w", inPath, err)
	}
	out, err := p.PostProcess(ctx, string(data), outPath, "")
	if err != nil {
		return err
	}
	if err := fileutil.WriteFileAtomic(outPath, []byte(out), 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", outPath, err)
	}
	p.logger.Info("wrote HTML", "file", outPath)
	return nil
}

// HTMLToPDF renders htmlPath to pdfPath and checks the result. The
// renderer sees a print-prepared copy placed beside htmlPath, so relative
// references still resolve; htmlPath itself is not modified.
func (p *Publisher) HTMLToPDF(ctx context.Context, htmlPath, pdfPath string) (*PDFInfo, error) {
	if err := checkInput(htmlPath, HTMLExtensions); err != nil {
		return nil, err
	}
	data, err := os.ReadFile(htmlPath) // #nosec G304 -- user-provided input
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", htmlPath, err)
	}

	css, err := p.styles.LoadStyle(assets.PrintStyle)
	if err != nil {
		return nil, fmt.Errorf("loading print style: %w", err)
	}
	prepared, err := postprocess.Process(ctx, string(data), postprocess.Options{
		Name:   filepath.Base(htmlPath),
		Dir:    filepath.Dir(htmlPath),
		Logger: p.logger,
	}, postprocess.Pipeline{postprocess.PreparePrint(css)})
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrPostProcess, err)
	}

	tmp, cleanup, err := fileutil.TempPath(filepath.Dir(htmlPath), "html")
	if err != nil {
		return nil, err
	}
	defer cleanup()
	if err := os.WriteFile(tmp, []byte(prepared), 0o600); err != nil {
		return nil, fmt.Errorf("writing %s: %w", tmp, err)
	}

	if dir := filepath.Dir(pdfPath); dir != "" {
		if err := os.MkdirAll(dir, 0o750); err != nil {
			return nil, fmt.Errorf("creating output directory: %w", err)
		}
	}

	opts, err := p.renderOptions()
	if err != nil {
		return nil, err
	}
	p.logger.Info("rendering PDF", "input", htmlPath, "output", pdfPath)
	if err := p.renderer.Render(ctx, tmp, pdfPath, opts); err != nil {
		p.logger.Error("rendering failed", "error", err)
		return nil, err
	}

	info, err := p.inspector.Inspect(pdfPath)
	if err != nil {
		return nil, err
	}
	p.logger.Info("wrote PDF", "file", pdfPath, "pages", info.Pages, "bytes", info.Size)
	return info, nil
}

// Publish runs MarkdownToHTML then HTMLToPDF. The HTML is written beside
// pdfPath and removed afterwards unless keepHTML is set.
func (p *Publisher) Publish(ctx context.Context, mdPath, pdfPath string, keepHTML bool) (*PDFInfo, error) {
	htmlPath := fileutil.ReplaceExtension(pdfPath, ".html")
	if err := p.MarkdownToHTML(ctx, mdPath, htmlPath); err != nil {
		return nil, err
	}
	if !keepHTML {
		defer func() {
			if err := os.Remove(htmlPath); err != nil && !os.IsNotExist(err) {
				p.logger.Warn("removing intermediate HTML", "file", htmlPath, "error", err)
			}
		}()
	}
	return p.HTMLToPDF(ctx, htmlPath, pdfPath)
}

// renderOptions resolves [pubdate] in the marginals.
func (p *Publisher) renderOptions() (*RenderOptions, error) {
	pubdate, err := dateutil.Resolve(p.cfg.published, p.now())
	if err != nil {
		return nil, err
	}
	return &RenderOptions{
		Page:   p.cfg.page,
		Header: p.cfg.header.withPubDate(pubdate),
		Footer: p.cfg.footer.withPubDate(pubdate),
	}, nil
}

// checkInput verifies path has an accepted extension and exists.
func checkInput(path string, exts []string) error {
	if !fileutil.HasExtension(path, exts...) {
		return fmt.Errorf("%w: %s (want %s)", ErrInvalidExtension, path, strings.Join(exts, ", "))
	}
	if !fileutil.FileExists(path) {
		return fmt.Errorf("%w: %s", ErrInputNotFound, path)
	}
	return nil
}
