package postprocess

import (
	"context"
	"net/url"
	"path"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// NormalizeAnchors rewrites links into the current document to bare fragments.
//
// Pre: heading ids are unique (run after RemoveDuplicateHeadingAnchors).
// Post: every fragment-bearing href that points at this document is "#frag"
// and carries no target attribute. Hrefs without a fragment are untouched,
// even when they name this document.
func NormalizeAnchors() Pass {
	return Pass{
		Name: "anchors",
		Run: func(_ context.Context, d *Document) error {
			normalizeAnchors(d)
			return nil
		},
	}
}

func normalizeAnchors(d *Document) {
	d.dom.Find("a[href]").Each(func(_ int, a *goquery.Selection) {
		href, _ := a.Attr("href")
		if strings.HasPrefix(href, "#") {
			a.RemoveAttr("target")
			return
		}
		frag, ok := SameDocumentFragment(href, d.Name)
		if !ok {
			return
		}
		a.SetAttr("href", "#"+frag)
		a.RemoveAttr("target")
	})
}

// SameDocumentFragment returns the escaped fragment of href when href
// targets the document named name: a reference with an empty path, or any
// reference, relative or absolute, whose path basename is name.
func SameDocumentFragment(href, name string) (string, bool) {
	u, err := url.Parse(strings.TrimSpace(href))
	if err != nil || u.Fragment == "" {
		return "", false
	}

	if u.Scheme == "" && u.Host == "" && u.Path == "" {
		return u.EscapedFragment(), true
	}
	if name != "" && u.Path != "" && path.Base(u.Path) == name {
		return u.EscapedFragment(), true
	}
	return "", false
}
