package postprocess

import (
	"context"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// bannerRuleStyle marks the separator rule that must not start a new page.
const bannerRuleStyle = "page-break-before: avoid"

// NormalizeBanner tidies the area between the logo and the first heading.
//
// Pre: DedupeLogo has run. Without a canonical logo paragraph, or without a
// heading after it, the pass logs a warning and changes nothing.
// Post: the element right after the logo paragraph is the marker <hr>, no
// other <hr> sits between logo and heading, and an h1 title is retagged
// as OversizedHeadingTag.
func NormalizeBanner(logo Logo) Pass {
	return Pass{
		Name: "banner",
		Run: func(_ context.Context, d *Document) error {
			normalizeBanner(d, logo)
			return nil
		},
	}
}

func normalizeBanner(d *Document, logo Logo) {
	body := d.body()
	if canonicalLogo(body, logo) == nil {
		d.logger.Warn("no canonical logo paragraph, banner left as is")
		return
	}
	logoP := firstElementChild(body)

	var heading *html.Node
	for n := nextElementSibling(logoP); n != nil; n = nextElementSibling(n) {
		if isHeading(n) {
			heading = n
			break
		}
	}
	if heading == nil {
		d.logger.Warn("no heading after logo, banner left as is")
		return
	}

	var marker *html.Node
	if first := nextElementSibling(logoP); isBannerRule(first) {
		marker = first
	}

	for n := nextElementSibling(logoP); n != nil && n != heading; {
		next := nextElementSibling(n)
		if isElement(n, atom.Hr) && n != marker {
			detach(n)
		}
		n = next
	}

	if marker == nil {
		hr := newElement(atom.Hr, html.Attribute{Key: "style", Val: bannerRuleStyle})
		body.InsertBefore(hr, logoP.NextSibling)
	}

	if isElement(heading, atom.H1) {
		heading.DataAtom = 0
		heading.Data = OversizedHeadingTag
	}
}

// isBannerRule reports whether n is an <hr> carrying the page-break marker.
func isBannerRule(n *html.Node) bool {
	if !isElement(n, atom.Hr) {
		return false
	}
	style, _ := attr(n, "style")
	return strings.Contains(compactStyle(style), compactStyle(bannerRuleStyle))
}

func compactStyle(s string) string {
	s = strings.ToLower(s)
	return strings.Map(func(r rune) rune {
		if r == ' ' || r == '\t' || r == '\n' || r == '\r' {
			return -1
		}
		return r
	}, s)
}
