package specpub

import (
	"context"
	"path/filepath"

	"github.com/alnah/go-specpub/internal/fileutil"
)

// DefaultStylesheetURL is the OASIS Markdown stylesheet linked when no
// local stylesheet exists.
const DefaultStylesheetURL = "https://docs.oasis-open.org/styles/markdown-styles-v1.7.3.css"

// LocalStylesheet is the path, relative to the output directory, of a
// stylesheet that takes precedence over DefaultStylesheetURL.
const LocalStylesheet = "styles/styles.css"

// pandocFormat enables bare URL autolinks and keeps source line breaks.
const pandocFormat = "markdown+autolink_bare_uris+hard_line_breaks"

// PandocOptions configures one Markdown to HTML conversion.
type PandocOptions struct {
	Stylesheet string // passed with -c; relative paths resolve against the output
	Title      string // document title metadata
	TOC        bool
}

// Pandoc converts Markdown to a standalone HTML5 document by invoking the
// pandoc CLI.
type Pandoc struct {
	Runner CommandRunner
}

// NewPandoc creates a Pandoc with a real command runner.
func NewPandoc() *Pandoc {
	return &Pandoc{Runner: &ExecRunner{}}
}

// ToHTML converts the Markdown file at input into the HTML file at output.
func (p *Pandoc) ToHTML(ctx context.Context, input, output string, opts PandocOptions) error {
	_, stderr, err := p.Runner.Run(ctx, ToolPandoc, pandocArgs(input, output, opts)...)
	if err != nil {
		return toolError(ErrConversionFailed, ToolPandoc, stderr, err)
	}
	return nil
}

func pandocArgs(input, output string, opts PandocOptions) []string {
	args := []string{input, "-f", pandocFormat, "-t", "html5"}
	if opts.Stylesheet != "" {
		args = append(args, "-c", opts.Stylesheet)
	}
	args = append(args, "-s")
	if opts.TOC {
		args = append(args, "--toc")
	}
	title := opts.Title
	if title == "" {
		title = NoMetadata
	}
	return append(args, "--metadata", "title="+title, "-o", output)
}

// ResolveStylesheet picks the stylesheet for a document written to outDir:
// configured when set, else LocalStylesheet when it exists, else
// DefaultStylesheetURL.
func ResolveStylesheet(outDir, configured string) string {
	if configured != "" {
		return configured
	}
	if fileutil.FileExists(filepath.Join(outDir, filepath.FromSlash(LocalStylesheet))) {
		return LocalStylesheet
	}
	return DefaultStylesheetURL
}
