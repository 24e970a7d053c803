package specpub

import (
	"context"
	"fmt"
	"html"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/proto"

	"github.com/alnah/go-specpub/internal/fileutil"
	"github.com/alnah/go-specpub/internal/process"
)

// DefaultRenderTimeout bounds page loading in the browser renderer.
const DefaultRenderTimeout = 60 * time.Second

// Paper dimensions in inches, portrait.
var paperSizes = map[string][2]float64{
	PageSizeLetter: {8.5, 11},
	PageSizeA4:     {8.27, 11.69},
	PageSizeLegal:  {8.5, 14},
}

// Chrome header/footer template classes for wkhtmltopdf tokens.
var chromeTokens = strings.NewReplacer(
	"[page]", `<span class="pageNumber"></span>`,
	"[topage]", `<span class="totalPages"></span>`,
	"[title]", `<span class="title"></span>`,
	"[doctitle]", `<span class="title"></span>`,
	"[date]", `<span class="date"></span>`,
)

// pdfPrinter abstracts printing a local HTML file to PDF bytes, to enable
// testing without a browser.
type pdfPrinter interface {
	PrintFile(ctx context.Context, filePath string, opts *proto.PagePrintToPDF) ([]byte, error)
	Close() error
}

// ChromeRenderer renders with headless Chrome via go-rod.
// Rod downloads Chromium on first run if no browser is found.
type ChromeRenderer struct {
	printer pdfPrinter
}

// NewChromeRenderer creates a ChromeRenderer. The browser starts lazily on
// the first Render. A non-positive timeout uses DefaultRenderTimeout.
func NewChromeRenderer(timeout time.Duration) *ChromeRenderer {
	if timeout <= 0 {
		timeout = DefaultRenderTimeout
	}
	return &ChromeRenderer{printer: &rodPrinter{timeout: timeout}}
}

// Render implements Renderer.
func (r *ChromeRenderer) Render(ctx context.Context, htmlPath, pdfPath string, opts *RenderOptions) error {
	if err := opts.Validate(); err != nil {
		return err
	}
	absPath, err := filepath.Abs(htmlPath)
	if err != nil {
		return fmt.Errorf("resolving %s: %w", htmlPath, err)
	}

	data, err := r.printer.PrintFile(ctx, absPath, buildPDFOptions(opts))
	if err != nil {
		return err
	}
	if err := fileutil.WriteFileAtomic(pdfPath, data, 0o644); err != nil {
		return fmt.Errorf("writing PDF: %w", err)
	}
	return nil
}

// Close releases browser resources.
func (r *ChromeRenderer) Close() error {
	if r.printer != nil {
		return r.printer.Close()
	}
	return nil
}

// buildPDFOptions maps render options to Chrome's print parameters.
func buildPDFOptions(opts *RenderOptions) *proto.PagePrintToPDF {
	page := opts.page()
	dims, ok := paperSizes[strings.ToLower(page.Size)]
	if !ok {
		dims = paperSizes[PageSizeA4]
	}

	pdfOpts := &proto.PagePrintToPDF{
		Landscape:       page.isLandscape(),
		PaperWidth:      floatPtr(dims[0]),
		PaperHeight:     floatPtr(dims[1]),
		MarginTop:       floatPtr(page.Margin),
		MarginBottom:    floatPtr(page.Margin),
		MarginLeft:      floatPtr(page.Margin),
		MarginRight:     floatPtr(page.Margin),
		PrintBackground: true,
	}

	var header, footer *Marginal
	if opts != nil {
		header, footer = opts.Header, opts.Footer
	}
	if !header.IsEmpty() || !footer.IsEmpty() {
		pdfOpts.DisplayHeaderFooter = true
		pdfOpts.HeaderTemplate = buildMarginalTemplate(header, DefaultHeaderFontSize)
		pdfOpts.FooterTemplate = buildMarginalTemplate(footer, DefaultFooterFontSize)
	}
	return pdfOpts
}

// buildMarginalTemplate generates a three-column template for Chrome's
// native header or footer. Text is escaped before tokens become spans.
func buildMarginalTemplate(m *Marginal, defaultSize int) string {
	if m.IsEmpty() {
		return "<span></span>"
	}
	size := m.FontSize
	if size == 0 {
		size = defaultSize
	}

	cell := func(text, align string) string {
		return fmt.Sprintf(`<div style="flex: 1; text-align: %s;">%s</div>`, align, chromeTokens.Replace(html.EscapeString(text)))
	}
	return fmt.Sprintf(`<div style="font-size: %dpt; font-family: serif; color: #444; width: 100%%; display: flex; padding: 0 %.2fin;">%s%s%s</div>`,
		size, DefaultMargin/2, cell(m.Left, "left"), cell(m.Center, "center"), cell(m.Right, "right"))
}

// floatPtr returns a pointer to a float64 value.
func floatPtr(v float64) *float64 {
	return &v
}

// rodPrinter implements pdfPrinter using go-rod.
type rodPrinter struct {
	launcher *launcher.Launcher
	browser  *rod.Browser
	timeout  time.Duration
}

// ensureBrowser lazily connects to the browser.
func (p *rodPrinter) ensureBrowser() error {
	if p.browser != nil {
		return nil
	}

	l := launcher.New()

	// Use pre-installed browser if specified (Docker/containerized environments)
	if bin := os.Getenv("ROD_BROWSER_BIN"); bin != "" {
		l = l.Bin(bin)
	}

	// NoSandbox required for CI and containerized environments
	if os.Getenv("CI") == "true" || os.Getenv("ROD_BROWSER_BIN") != "" || os.Getenv("ROD_NO_SANDBOX") == "1" {
		l = l.NoSandbox(true)
	}

	u, err := l.Launch()
	if err != nil {
		return fmt.Errorf("%w: %v", ErrBrowserConnect, err)
	}
	p.launcher = l

	p.browser = rod.New().ControlURL(u)
	if err := p.browser.Connect(); err != nil {
		p.browser = nil
		p.kill()
		return fmt.Errorf("%w: %v", ErrBrowserConnect, err)
	}
	return nil
}

// PrintFile opens filePath in headless Chrome and prints it.
func (p *rodPrinter) PrintFile(ctx context.Context, filePath string, opts *proto.PagePrintToPDF) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err := p.ensureBrowser(); err != nil {
		return nil, err
	}

	page, err := p.browser.Context(ctx).Page(proto.TargetCreateTarget{URL: "file://" + filepath.ToSlash(filePath)})
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, ctxErr
		}
		return nil, fmt.Errorf("%w: %v", ErrPageCreate, err)
	}
	defer page.Close()

	timeout := p.timeout
	if deadline, ok := ctx.Deadline(); ok {
		timeout = time.Until(deadline)
		if timeout <= 0 {
			return nil, context.DeadlineExceeded
		}
	}
	if err := page.Timeout(timeout).WaitLoad(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPageLoad, err)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	reader, err := page.PDF(opts)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrRenderFailed, err)
	}
	data, err := io.ReadAll(reader)
	if err != nil {
		return nil, fmt.Errorf("%w: reading PDF stream: %v", ErrRenderFailed, err)
	}
	return data, nil
}

// Close shuts the browser down and kills what is left of its process tree.
func (p *rodPrinter) Close() error {
	var err error
	if p.browser != nil {
		err = p.browser.Close()
		p.browser = nil
	}
	p.kill()
	return err
}

func (p *rodPrinter) kill() {
	if p.launcher == nil {
		return
	}
	if pid := p.launcher.PID(); pid > 0 {
		process.KillProcessGroup(pid)
	}
	p.launcher.Kill()
	p.launcher = nil
}
