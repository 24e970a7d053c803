package main

import (
	"errors"
	"fmt"
	"io"

	flag "github.com/spf13/pflag"
)

// ErrUsage marks invalid command-line usage.
var ErrUsage = errors.New("invalid usage")

// commonFlags holds flags shared across commands.
type commonFlags struct {
	config  string
	quiet   bool
	verbose bool
}

// siteFlags locate the published document for link relativization.
type siteFlags struct {
	baseURL  string
	repoRoot string
}

// markdownFlags hold the Markdown to HTML step options.
type markdownFlags struct {
	noFormat   bool
	noTOC      bool
	stylesheet string
}

// assetFlags hold asset localization and print style options.
type assetFlags struct {
	localizeCSS bool
	printStyles string
}

// renderFlags hold the PDF rendering options.
type renderFlags struct {
	renderer    string
	timeout     string
	pageSize    string
	orientation string
	margin      float64
	published   string
	noHeader    bool
	noFooter    bool
}

// pipelineFlags holds all flags for the md2html, html2pdf, md2pdf and
// postprocess commands. Groups a command does not accept stay zero.
type pipelineFlags struct {
	common   commonFlags
	output   string
	keepHTML bool
	site     siteFlags
	markdown markdownFlags
	assets   assetFlags
	render   renderFlags

	// changed records the flags given explicitly on the command line.
	changed map[string]bool
}

// commandTakes* report which flag groups a command accepts.
func commandTakesMarkdown(cmd string) bool { return cmd == "md2html" || cmd == "md2pdf" }
func commandTakesPDF(cmd string) bool      { return cmd == "html2pdf" || cmd == "md2pdf" }
func commandTakesSite(cmd string) bool     { return cmd != "html2pdf" }

// addCommonFlags adds common flags to a FlagSet.
func addCommonFlags(fs *flag.FlagSet, f *commonFlags) {
	fs.StringVarP(&f.config, "config", "c", "", "config file name or path")
	fs.BoolVarP(&f.quiet, "quiet", "q", false, "only show errors")
	fs.BoolVarP(&f.verbose, "verbose", "v", false, "show debug logs")
}

// addSiteFlags adds document location flags to a FlagSet.
func addSiteFlags(fs *flag.FlagSet, f *siteFlags) {
	fs.StringVar(&f.baseURL, "base-url", "", "absolute URL the document is published at")
	fs.StringVar(&f.repoRoot, "repo-root", "", "repository root mapped to --base-url")
}

// addMarkdownFlags adds Markdown conversion flags to a FlagSet.
func addMarkdownFlags(fs *flag.FlagSet, f *markdownFlags) {
	fs.BoolVar(&f.noFormat, "no-format", false, "skip prettier")
	fs.BoolVar(&f.noTOC, "no-toc", false, "do not generate a table of contents")
	fs.StringVar(&f.stylesheet, "stylesheet", "", "stylesheet URL or path linked by pandoc")
}

// addAssetFlags adds asset flags to a FlagSet.
func addAssetFlags(fs *flag.FlagSet, f *assetFlags) {
	fs.BoolVar(&f.localizeCSS, "localize-css", false, "download remote stylesheets next to the HTML")
}

// addRenderFlags adds PDF flags to a FlagSet.
func addRenderFlags(fs *flag.FlagSet, f *renderFlags, a *assetFlags) {
	fs.StringVar(&f.renderer, "renderer", "", "PDF renderer: wkhtmltopdf, chrome")
	fs.StringVarP(&f.timeout, "timeout", "t", "", "overall timeout (e.g., 90s, 2m)")
	fs.StringVarP(&f.pageSize, "page-size", "p", "", "page size: letter, a4, legal")
	fs.StringVar(&f.orientation, "orientation", "", "page orientation: portrait, landscape")
	fs.Float64Var(&f.margin, "margin", 0, "page margin in inches (0.25-3.0)")
	fs.StringVar(&f.published, "published", "", "value of [pubdate]: auto, auto:FORMAT, or literal")
	fs.BoolVar(&f.noHeader, "no-header", false, "disable the page header")
	fs.BoolVar(&f.noFooter, "no-footer", false, "disable the page footer")
	fs.StringVar(&a.printStyles, "print-styles", "", "directory holding a print.css override")
}

// parsePipelineFlags parses flags for cmd and returns its single input path.
func parsePipelineFlags(cmd string, args []string, stderr io.Writer) (*pipelineFlags, string, error) {
	fs := flag.NewFlagSet(cmd, flag.ContinueOnError)
	fs.SetOutput(stderr)
	f := &pipelineFlags{changed: map[string]bool{}}

	fs.StringVarP(&f.output, "output", "o", "", "output file or directory")
	addCommonFlags(fs, &f.common)
	if commandTakesSite(cmd) {
		addSiteFlags(fs, &f.site)
		addAssetFlags(fs, &f.assets)
	}
	if commandTakesMarkdown(cmd) {
		addMarkdownFlags(fs, &f.markdown)
	}
	if commandTakesPDF(cmd) {
		addRenderFlags(fs, &f.render, &f.assets)
	}
	if cmd == "md2pdf" {
		fs.BoolVar(&f.keepHTML, "keep-html", false, "keep the intermediate HTML beside the PDF")
	}

	fs.Usage = func() { printCommandUsage(stderr, cmd) }

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil, "", err
		}
		return nil, "", fmt.Errorf("%w: %v", ErrUsage, err)
	}
	fs.Visit(func(fl *flag.Flag) { f.changed[fl.Name] = true })

	if f.common.quiet && f.common.verbose {
		return nil, "", fmt.Errorf("%w: --quiet and --verbose are mutually exclusive", ErrUsage)
	}
	switch fs.NArg() {
	case 1:
		return f, fs.Arg(0), nil
	case 0:
		return nil, "", fmt.Errorf("%w: %s needs an input file", ErrUsage, cmd)
	default:
		return nil, "", fmt.Errorf("%w: %s takes one input file, got %d", ErrUsage, cmd, fs.NArg())
	}
}
