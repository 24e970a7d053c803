// Package specpub publishes Markdown standards documents as HTML and PDF.
//
// # Quick Start
//
//	pub, err := specpub.NewPublisher(
//	    specpub.WithBaseURL("https://docs.oasis-open.org/csaf/csaf/v2.1/"),
//	)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer pub.Close()
//
//	info, err := pub.Publish(ctx, "csaf-v2.1.md", "csaf-v2.1.pdf", true)
//
// # Pipeline
//
//  1. prettier formats the Markdown in place (optional, skipped when absent)
//  2. pandoc converts it to a standalone HTML5 document with a TOC
//  3. the post-processor rewrites the HTML (see internal/postprocess):
//     same-document links, plain URLs, the OASIS logo and title banner,
//     localized images, same-site links made relative
//  4. a print-prepared copy is rendered by wkhtmltopdf or headless Chrome
//  5. pdfcpu checks the result is a readable PDF with pages
//
// External tools are invoked through CommandRunner, so every step can be
// tested without pandoc, prettier or wkhtmltopdf installed.
//
// # Headers and Footers
//
// Marginal text uses wkhtmltopdf tokens: [page], [topage], [title],
// [doctitle] and [date]. The Chrome renderer translates them to its own
// template classes. [pubdate] is replaced before rendering with the value
// set by WithPublished.
package specpub
