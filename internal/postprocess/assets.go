package postprocess

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"os"
	"path"
	"path/filepath"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"github.com/alnah/go-specpub/internal/fetch"
	"github.com/alnah/go-specpub/internal/fileutil"
)

// Local asset directories, relative to the output document.
const (
	ImagesDir = "images"
	StylesDir = "styles"
)

// File permission constants.
const (
	dirPermissions  = 0o750
	filePermissions = 0o644
)

// ErrNoAssetName is returned when a URL has no usable file name.
var ErrNoAssetName = errors.New("URL has no file name")

// Fetcher downloads a remote resource.
type Fetcher interface {
	Fetch(ctx context.Context, rawURL string) ([]byte, error)
}

// Compile-time interface check.
var _ Fetcher = (*fetch.HTTPFetcher)(nil)

// LocalizeOptions configures LocalizeAssets.
type LocalizeOptions struct {
	Fetcher Fetcher // nil uses fetch.New with its default timeout
	Styles  bool    // also localize <link rel="stylesheet">
}

// LocalizeAssets downloads remote images (and optionally stylesheets) next
// to the output document and points the references at the local copies.
//
// A file already present under the same name is reused without fetching.
// An image that cannot be fetched is dropped from the tree; a stylesheet
// that cannot be fetched keeps its remote reference. Neither aborts the run.
func LocalizeAssets(opts LocalizeOptions) Pass {
	fetcher := opts.Fetcher
	if fetcher == nil {
		fetcher = fetch.New(0)
	}
	return Pass{
		Name: "localize-assets",
		Run: func(ctx context.Context, d *Document) error {
			l := &localizer{doc: d, fetcher: fetcher}
			return l.run(ctx, opts.Styles)
		},
	}
}

type localizer struct {
	doc     *Document
	fetcher Fetcher
}

func (l *localizer) run(ctx context.Context, styles bool) error {
	root := l.doc.dom.Get(0)

	for _, img := range collect(root, func(n *html.Node) bool { return isElement(n, atom.Img) }) {
		if err := ctx.Err(); err != nil {
			return err
		}
		src, _ := attr(img, "src")
		if !isRemote(src) {
			continue
		}
		local, err := l.localize(ctx, ImagesDir, src)
		if err != nil {
			l.doc.logger.Warn("dropping image that could not be fetched", "src", src, "error", err)
			detach(img)
			continue
		}
		setAttr(img, "src", local)
		removeAttr(img, "srcset")
	}

	if !styles {
		return nil
	}

	for _, link := range collect(root, isStylesheetLink) {
		if err := ctx.Err(); err != nil {
			return err
		}
		href, _ := attr(link, "href")
		if !isRemote(href) {
			continue
		}
		local, err := l.localize(ctx, StylesDir, href)
		if err != nil {
			l.doc.logger.Warn("keeping remote stylesheet", "href", href, "error", err)
			continue
		}
		setAttr(link, "href", local)
	}
	return nil
}

// localize makes sure rawURL exists under dir/sub and returns the
// document-relative reference to it.
func (l *localizer) localize(ctx context.Context, sub, rawURL string) (string, error) {
	name, err := AssetName(rawURL)
	if err != nil {
		return "", err
	}

	ref := (&url.URL{Path: path.Join(sub, name)}).String()
	dst := filepath.Join(l.doc.Dir, sub, name)

	if fileutil.FileExists(dst) {
		l.doc.logger.Debug("asset already local", "url", rawURL, "path", dst)
		return ref, nil
	}

	data, err := l.fetcher.Fetch(ctx, rawURL)
	if err != nil {
		return "", err
	}

	if err := os.MkdirAll(filepath.Dir(dst), dirPermissions); err != nil {
		return "", fmt.Errorf("creating %s directory: %w", sub, err)
	}
	if err := fileutil.WriteFileAtomic(dst, data, filePermissions); err != nil {
		return "", fmt.Errorf("writing %s: %w", dst, err)
	}
	l.doc.logger.Info("localized asset", "url", rawURL, "path", dst, "bytes", len(data))
	return ref, nil
}

// AssetName derives the local file name of a remote asset from its path.
func AssetName(rawURL string) (string, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrNoAssetName, err)
	}
	name := path.Base(u.Path)
	switch name {
	case "", ".", "/", "..":
		return "", fmt.Errorf("%w: %s", ErrNoAssetName, rawURL)
	}
	if strings.ContainsAny(name, `\`+"\x00") {
		return "", fmt.Errorf("%w: %s", ErrNoAssetName, rawURL)
	}
	return name, nil
}

func isRemote(ref string) bool {
	u, err := url.Parse(strings.TrimSpace(ref))
	if err != nil {
		return false
	}
	scheme := strings.ToLower(u.Scheme)
	return (scheme == "http" || scheme == "https") && u.Host != ""
}

func isStylesheetLink(n *html.Node) bool {
	if !isElement(n, atom.Link) {
		return false
	}
	rel, _ := attr(n, "rel")
	for _, r := range strings.Fields(strings.ToLower(rel)) {
		if r == "stylesheet" {
			return true
		}
	}
	return false
}
