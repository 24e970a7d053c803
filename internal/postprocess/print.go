package postprocess

import (
	"context"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// PrintStyleID identifies the stylesheet injected by PreparePrint.
const PrintStyleID = "specpub-print"

// PreparePrint readies a published document for a PDF renderer. It is not
// part of DefaultPipeline: the published HTML stays untouched and the
// renderer gets a prepared copy.
//
// Unclassed <pre> blocks get class "code-block", unclassed inline <code>
// gets "inline-code", every heading gets "no-page-break", and css (when not
// empty) is appended to head as <style id="specpub-print">, replacing an
// earlier copy.
func PreparePrint(css string) Pass {
	return Pass{
		Name: "print",
		Run: func(_ context.Context, d *Document) error {
			preparePrint(d, css)
			return nil
		},
	}
}

func preparePrint(d *Document, css string) {
	d.dom.Find("pre").Each(func(_ int, s *goquery.Selection) {
		if c, _ := s.Attr("class"); strings.TrimSpace(c) == "" {
			s.SetAttr("class", "code-block")
		}
	})
	d.dom.Find("code").Each(func(_ int, s *goquery.Selection) {
		if s.Parent().Is("pre") {
			return
		}
		if c, _ := s.Attr("class"); strings.TrimSpace(c) == "" {
			s.SetAttr("class", "inline-code")
		}
	})
	d.dom.FindMatcher(headings).AddClass("no-page-break")

	if css == "" {
		return
	}
	d.dom.Find("style#" + PrintStyleID).Remove()
	head := d.dom.Find("head")
	if head.Length() == 0 {
		return
	}
	style := newElement(atom.Style, html.Attribute{Key: "id", Val: PrintStyleID})
	// Style content is raw text; a closing tag inside it would end the element.
	style.AppendChild(newText(strings.ReplaceAll(css, "</", `<\/`)))
	head.Get(0).AppendChild(style)
}
