package postprocess

import (
	"context"
	"net/url"
	"path"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// relativizeTargets lists the URL-bearing attributes rewritten per element.
var relativizeTargets = map[atom.Atom]string{
	atom.A:      "href",
	atom.Link:   "href",
	atom.Script: "src",
	atom.Img:    "src",
}

// RelativizeLinks rewrites absolute URLs that point inside the document's
// own published directory into relative references.
//
// Pre: LocalizeAssets has run, so localized paths are already relative and
// are left alone. A nil Document.BaseURL makes the pass a no-op.
func RelativizeLinks() Pass {
	return Pass{
		Name: "relativize",
		Run: func(_ context.Context, d *Document) error {
			relativizeLinks(d)
			return nil
		},
	}
}

func relativizeLinks(d *Document) {
	if d.BaseURL == nil {
		d.logger.Debug("no base URL, skipping relativization")
		return
	}

	nodes := collect(d.dom.Get(0), func(n *html.Node) bool {
		if n.Type != html.ElementNode {
			return false
		}
		_, ok := relativizeTargets[n.DataAtom]
		return ok
	})

	for _, n := range nodes {
		key := relativizeTargets[n.DataAtom]
		val, ok := attr(n, key)
		if !ok {
			continue
		}
		if rel, ok := RelativeReference(val, d.BaseURL, d.Name); ok {
			setAttr(n, key, rel)
		}
	}
}

// RelativeReference converts raw into a reference relative to the
// directory of doc. It returns false for anything outside that scope and
// for the directory itself.
// A reference back to the document itself becomes "#frag", or the
// document name when there is no fragment.
func RelativeReference(raw string, doc *url.URL, name string) (string, bool) {
	u, err := url.Parse(strings.TrimSpace(raw))
	if err != nil || !u.IsAbs() || u.Host == "" {
		return "", false
	}
	if !strings.EqualFold(u.Scheme, doc.Scheme) || !strings.EqualFold(u.Host, doc.Host) {
		return "", false
	}

	dir := path.Dir(doc.Path)
	if !strings.HasSuffix(dir, "/") {
		dir += "/"
	}
	p := u.Path
	if p == "" {
		p = "/"
	}
	if !strings.HasPrefix(p, dir) {
		return "", false
	}
	rel := strings.TrimPrefix(p, dir)

	if name == "" {
		name = path.Base(doc.Path)
	}
	if rel == name {
		if u.Fragment != "" {
			return "#" + u.EscapedFragment(), true
		}
		return name, true
	}
	if rel == "" {
		return "", false
	}

	out := &url.URL{Path: rel, RawQuery: u.RawQuery, Fragment: u.Fragment}
	return out.String(), true
}
