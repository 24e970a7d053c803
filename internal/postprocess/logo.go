package postprocess

import (
	"context"
	"net/url"
	"path"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// Canonical OASIS logo.
const (
	DefaultLogoURL = "https://docs.oasis-open.org/templates/OASISLogo-v3.0.png"
	DefaultLogoAlt = "OASIS Logo"
)

// Logo identifies the canonical logo image.
type Logo struct {
	URL string // remote URL used when a logo has to be synthesized
	Alt string // exact alt text
}

// DefaultLogo returns the OASIS logo.
func DefaultLogo() Logo {
	return Logo{URL: DefaultLogoURL, Alt: DefaultLogoAlt}
}

// Filename is the suffix image sources are matched against.
func (l Logo) Filename() string {
	p := l.URL
	if u, err := url.Parse(l.URL); err == nil {
		p = u.Path
	}
	name := path.Base(p)
	if name == "." || name == "/" {
		return ""
	}
	return name
}

// MatchesSrc reports whether src ends with the logo filename.
// Query and fragment are ignored.
func (l Logo) MatchesSrc(src string) bool {
	name := l.Filename()
	if name == "" {
		return false
	}
	if i := strings.IndexAny(src, "?#"); i >= 0 {
		src = src[:i]
	}
	return strings.HasSuffix(src, name)
}

// MatchesAlt reports whether alt is exactly the logo alt text.
func (l Logo) MatchesAlt(alt string) bool {
	return l.Alt != "" && alt == l.Alt
}

// LooksLike reports whether an image could be meant as the logo.
func (l Logo) LooksLike(src, alt string) bool {
	return l.MatchesSrc(src) || l.MatchesAlt(alt)
}

// IsTagged reports whether an image is a correctly tagged logo.
func (l Logo) IsTagged(src, alt string) bool {
	return l.MatchesSrc(src) && l.MatchesAlt(alt)
}

func (l Logo) looksLikeNode(img *html.Node) bool {
	src, _ := attr(img, "src")
	alt, _ := attr(img, "alt")
	return l.LooksLike(src, alt)
}

func (l Logo) isTaggedNode(img *html.Node) bool {
	src, _ := attr(img, "src")
	alt, _ := attr(img, "alt")
	return l.IsTagged(src, alt)
}

// DedupeLogo leaves exactly one logo: a correctly tagged image that is the
// sole content of a paragraph which is the first element child of body.
//
// The pass cleans, promotes, then cleans again. Before the canonical node is
// fixed in place a tagged duplicate cannot be told apart from the image that
// is about to be promoted, so only malformed look-alikes go in the first scan.
func DedupeLogo(logo Logo) Pass {
	return Pass{
		Name: "logo",
		Run: func(_ context.Context, d *Document) error {
			dedupeLogo(d, logo)
			return nil
		},
	}
}

func dedupeLogo(d *Document, logo Logo) {
	body := d.body()

	removed := 0
	for _, img := range images(body) {
		if logo.looksLikeNode(img) && !logo.isTaggedNode(img) {
			removeLogoImage(img)
			removed++
		}
	}

	canonical := canonicalLogo(body, logo)
	if canonical == nil {
		canonical = promoteLogo(d, body, logo)
	}

	for _, img := range images(body) {
		if img != canonical && logo.looksLikeNode(img) {
			removeLogoImage(img)
			removed++
		}
	}

	if removed > 0 {
		d.logger.Debug("removed duplicate logos", "count", removed)
	}
}

// promoteLogo moves the first tagged logo to the front of body, or
// synthesizes one when none exists. It returns the new canonical image.
func promoteLogo(d *Document, body *html.Node, logo Logo) *html.Node {
	var img *html.Node
	for _, n := range images(body) {
		if logo.isTaggedNode(n) {
			img = n
			break
		}
	}

	if img != nil {
		removeLogoImage(img)
		d.logger.Debug("promoted logo to top of body")
	} else {
		img = newElement(atom.Img,
			html.Attribute{Key: "src", Val: logo.URL},
			html.Attribute{Key: "alt", Val: logo.Alt},
		)
		d.logger.Debug("inserted missing logo", "src", logo.URL)
	}

	p := newElement(atom.P)
	p.AppendChild(img)
	body.InsertBefore(p, body.FirstChild)
	return img
}

// canonicalLogo returns the logo image when it already sits in canonical
// position, nil otherwise.
func canonicalLogo(body *html.Node, logo Logo) *html.Node {
	p := firstElementChild(body)
	if !isElement(p, atom.P) {
		return nil
	}
	img := firstElementChild(p)
	if !isElement(img, atom.Img) || !soleElementContent(p, img) {
		return nil
	}
	if !logo.isTaggedNode(img) {
		return nil
	}
	return img
}

// removeLogoImage detaches img. A paragraph that held only the image goes
// with it, and so does a figure that held only the image and its caption.
func removeLogoImage(img *html.Node) {
	parent := img.Parent
	if parent == nil {
		return
	}
	wrapper := (isElement(parent, atom.P) && soleElementContent(parent, img)) ||
		(isElement(parent, atom.Figure) && captionedImage(parent, img))
	parent.RemoveChild(img)
	if wrapper {
		detach(parent)
	}
}

// captionedImage reports whether figure holds img plus, at most,
// figcaption elements.
func captionedImage(figure, img *html.Node) bool {
	for c := figure.FirstChild; c != nil; c = c.NextSibling {
		switch {
		case c == img, isBlankText(c), c.Type == html.CommentNode, isElement(c, atom.Figcaption):
			continue
		}
		return false
	}
	return img.Parent == figure
}

func images(root *html.Node) []*html.Node {
	return collect(root, func(n *html.Node) bool {
		return isElement(n, atom.Img)
	})
}
