package postprocess

import (
	"context"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// RemoveDuplicateHeadingAnchors unwraps anchors that repeat their heading's id.
//
// Pandoc sometimes emits both <h2 id="x"> and a nested <a id="x">; only one
// element may own an id or fragment navigation breaks.
//
// Post: no heading with id X contains an anchor with id X. The anchor's text
// stays inline; an anchor without text disappears.
func RemoveDuplicateHeadingAnchors() Pass {
	return Pass{
		Name: "heading-anchors",
		Run: func(_ context.Context, d *Document) error {
			removeDuplicateHeadingAnchors(d)
			return nil
		},
	}
}

func removeDuplicateHeadingAnchors(d *Document) {
	d.dom.FindMatcher(headings).Each(func(_ int, h *goquery.Selection) {
		id, ok := h.Attr("id")
		if !ok || id == "" {
			return
		}
		h.Find("a").Each(func(_ int, a *goquery.Selection) {
			if aid, _ := a.Attr("id"); aid != id {
				return
			}
			text := a.Text()
			if strings.TrimSpace(text) == "" {
				a.Remove()
				return
			}
			a.ReplaceWithNodes(newText(text))
		})
	})
}
