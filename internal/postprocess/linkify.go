package postprocess

import (
	"context"
	"regexp"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// bareURL matches scheme://non-whitespace.
var bareURL = regexp.MustCompile(`[A-Za-z][A-Za-z0-9+.\-]*://\S+`)

// LinkifyPlainURLs wraps bare URLs in plain-text paragraphs with anchors.
//
// Only paragraphs without any element child are considered, so URLs the
// converter already linked are never wrapped twice.
func LinkifyPlainURLs() Pass {
	return Pass{
		Name: "linkify",
		Run: func(_ context.Context, d *Document) error {
			linkifyPlainURLs(d)
			return nil
		},
	}
}

func linkifyPlainURLs(d *Document) {
	d.dom.Find("p").Each(func(_ int, p *goquery.Selection) {
		n := p.Get(0)
		if hasElementChild(n) {
			return
		}
		for c := n.FirstChild; c != nil; {
			next := c.NextSibling
			if c.Type == html.TextNode {
				linkifyText(c)
			}
			c = next
		}
	})
}

// linkifyText splits a text node around its URL matches.
func linkifyText(t *html.Node) {
	matches := bareURL.FindAllStringIndex(t.Data, -1)
	if len(matches) == 0 {
		return
	}

	parent := t.Parent
	text := t.Data
	pos := 0
	for _, m := range matches {
		if m[0] > pos {
			parent.InsertBefore(newText(text[pos:m[0]]), t)
		}
		link := text[m[0]:m[1]]
		a := newElement(atom.A, html.Attribute{Key: "href", Val: link})
		a.AppendChild(newText(link))
		parent.InsertBefore(a, t)
		pos = m[1]
	}
	if pos < len(text) {
		parent.InsertBefore(newText(text[pos:]), t)
	}
	parent.RemoveChild(t)
}
