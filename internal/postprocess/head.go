package postprocess

import (
	"context"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// TidyHead prepares the document head and strips converter leftovers.
//
// It removes pandoc's title block (the PDF carries its own banner), drops
// any <base> element, which would make bare "#frag" links resolve against
// another document, and sets <meta name="description"> when description is
// not empty. An existing description meta is updated in place.
//
// Pandoc's generated <nav id="TOC"> is removed unless keepTOC is set: the
// sources carry a hand-written table of contents.
func TidyHead(description string, keepTOC bool) Pass {
	return Pass{
		Name: "head",
		Run: func(_ context.Context, d *Document) error {
			tidyHead(d, description, keepTOC)
			return nil
		},
	}
}

func tidyHead(d *Document, description string, keepTOC bool) {
	d.dom.Find("header#title-block-header").Remove()
	if !keepTOC {
		if toc := d.dom.Find("nav#TOC"); toc.Length() > 0 {
			toc.Remove()
			d.logger.Debug("removed generated table of contents")
		}
	}
	if n := d.dom.Find("base").Length(); n > 0 {
		d.dom.Find("base").Remove()
		d.logger.Debug("removed base element", "count", n)
	}

	if description == "" {
		return
	}

	if meta := d.dom.Find(`head meta[name="description"]`); meta.Length() > 0 {
		meta.First().SetAttr("content", description)
		meta.Slice(1, goquery.ToEnd).Remove()
		return
	}

	head := d.dom.Find("head")
	if head.Length() == 0 {
		return
	}
	meta := newElement(atom.Meta,
		html.Attribute{Key: "name", Val: "description"},
		html.Attribute{Key: "content", Val: description},
	)
	h := head.Get(0)
	h.InsertBefore(meta, h.FirstChild)
}
