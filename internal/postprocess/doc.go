// Package postprocess implements the HTML post-processing stage of the
// publishing pipeline.
//
// Pandoc output is parsed once into a Document and handed, by explicit
// reference, to an ordered list of passes:
//
//  1. head: drop the pandoc title block and <base>, set the description
//  2. heading-anchors: unwrap anchors that duplicate their heading's id
//  3. anchors: rewrite same-document links to bare fragments
//  4. linkify: wrap bare URLs found in plain-text paragraphs
//  5. logo: keep exactly one canonical logo, first in body
//  6. banner: separator rule and oversized title after the logo
//  7. localize-assets: download remote images (and stylesheets) next to the output
//  8. relativize: turn same-site absolute URLs into relative ones
//
// Each pass is idempotent. Order is part of the contract: anchor
// normalization needs unique ids, the banner needs the canonical logo, and
// relativization must see already-localized asset paths.
//
// PreparePrint is kept apart from the default order: it runs on the copy
// handed to the PDF renderer, never on the published HTML.
package postprocess
