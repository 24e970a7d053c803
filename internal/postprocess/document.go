package postprocess

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/url"
	"path"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
)

// ErrInvalidBaseURL reports a base URL that is not absolute http(s).
var ErrInvalidBaseURL = errors.New("invalid base URL")

// Options describes where the processed document will live.
type Options struct {
	// Name is the output file basename, e.g. "spec-v1.0.html".
	Name string
	// Dir is the output directory; localized assets are written below it.
	Dir string
	// BaseURL is the absolute URL the document (or its directory, when it
	// ends with "/") is published at. Empty disables relativization.
	BaseURL string
	Logger  *slog.Logger
}

// Document is a parsed HTML document plus the facts passes need about its
// final location.
type Document struct {
	Name    string
	Dir     string
	BaseURL *url.URL

	dom    *goquery.Document
	logger *slog.Logger
}

// Parse reads a full HTML document.
func Parse(r io.Reader, opts Options) (*Document, error) {
	root, err := html.Parse(r)
	if err != nil {
		return nil, fmt.Errorf("parsing HTML: %w", err)
	}

	base, err := documentURL(opts.BaseURL, opts.Name)
	if err != nil {
		return nil, err
	}

	dir := opts.Dir
	if dir == "" {
		dir = "."
	}

	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	return &Document{
		Name:    opts.Name,
		Dir:     dir,
		BaseURL: base,
		dom:     goquery.NewDocumentFromNode(root),
		logger:  logger,
	}, nil
}

// ParseString is Parse for in-memory content.
func ParseString(content string, opts Options) (*Document, error) {
	return Parse(strings.NewReader(content), opts)
}

// Render writes the document back out as HTML.
func (d *Document) Render(w io.Writer) error {
	return html.Render(w, d.dom.Get(0))
}

// String renders the document, returning "" on failure.
func (d *Document) String() string {
	var b strings.Builder
	if err := d.Render(&b); err != nil {
		return ""
	}
	return b.String()
}

// Selection exposes the underlying goquery document for callers that
// need ad-hoc queries (tests, diagnostics).
func (d *Document) Selection() *goquery.Selection {
	return d.dom.Selection
}

func (d *Document) body() *html.Node {
	sel := d.dom.Find("body")
	if sel.Length() == 0 {
		return nil
	}
	return sel.Get(0)
}

// documentURL resolves the configured base into the absolute URL of the
// document itself. A base ending in "/" names the directory.
func documentURL(base, name string) (*url.URL, error) {
	if base == "" {
		return nil, nil
	}
	u, err := url.Parse(base)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidBaseURL, err)
	}
	if !u.IsAbs() || u.Host == "" {
		return nil, fmt.Errorf("%w: %q is not absolute", ErrInvalidBaseURL, base)
	}
	if u.Path == "" {
		u.Path = "/"
	}
	if strings.HasSuffix(u.Path, "/") && name != "" {
		u.Path = path.Join(u.Path, name)
	}
	u.RawPath = ""
	u.RawQuery = ""
	u.Fragment = ""
	return u, nil
}
