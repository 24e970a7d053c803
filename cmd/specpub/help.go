package main

import (
	"fmt"
	"io"
)

// printUsage prints the main usage message.
func printUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: specpub <command> [flags] <input>")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Commands:")
	fmt.Fprintln(w, "  md2html      Convert Markdown to post-processed HTML")
	fmt.Fprintln(w, "  html2pdf     Render HTML to PDF")
	fmt.Fprintln(w, "  md2pdf       Convert Markdown to PDF")
	fmt.Fprintln(w, "  postprocess  Post-process an existing HTML file")
	fmt.Fprintln(w, "  doctor       Check external tools and environment")
	fmt.Fprintln(w, "  version      Show version information")
	fmt.Fprintln(w, "  help         Show help for a command")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Run 'specpub help <command>' for details on a specific command.")
}

// printCommandUsage prints usage for a pipeline command.
func printCommandUsage(w io.Writer, cmd string) {
	switch cmd {
	case "md2html":
		fmt.Fprintln(w, "Usage: specpub md2html <file.md> [flags]")
		fmt.Fprintln(w)
		fmt.Fprintln(w, "Format with prettier, convert with pandoc and post-process the HTML.")
		fmt.Fprintln(w, "Remote images are saved under images/ beside the output.")
	case "postprocess":
		fmt.Fprintln(w, "Usage: specpub postprocess <file.html> [flags]")
		fmt.Fprintln(w)
		fmt.Fprintln(w, "Post-process an HTML file, in place unless -o is given.")
	case "html2pdf":
		fmt.Fprintln(w, "Usage: specpub html2pdf <file.html> [flags]")
		fmt.Fprintln(w)
		fmt.Fprintln(w, "Render an HTML file to PDF and check the result.")
	case "md2pdf":
		fmt.Fprintln(w, "Usage: specpub md2pdf <file.md> [flags]")
		fmt.Fprintln(w)
		fmt.Fprintln(w, "Run md2html then html2pdf. The HTML is written beside the PDF.")
	}
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Input/Output:")
	fmt.Fprintln(w, "  -o, --output <path>       Output file or directory")
	fmt.Fprintln(w, "  -c, --config <name>       Config file name or path")
	if cmd == "md2pdf" {
		fmt.Fprintln(w, "      --keep-html           Keep the intermediate HTML")
	}

	if commandTakesMarkdown(cmd) {
		fmt.Fprintln(w)
		fmt.Fprintln(w, "Markdown:")
		fmt.Fprintln(w, "      --no-format           Skip prettier")
		fmt.Fprintln(w, "      --no-toc              No table of contents")
		fmt.Fprintln(w, "      --stylesheet <ref>    Stylesheet linked by pandoc")
		fmt.Fprintln(w, "                            (default: styles/styles.css if present, else OASIS CSS)")
	}

	if commandTakesSite(cmd) {
		fmt.Fprintln(w)
		fmt.Fprintln(w, "Post-processing:")
		fmt.Fprintln(w, "      --base-url <url>      Absolute URL of the published document")
		fmt.Fprintln(w, "      --repo-root <dir>     Treat --base-url as the URL of this directory")
		fmt.Fprintln(w, "      --localize-css        Download remote stylesheets to styles/")
	}

	if commandTakesPDF(cmd) {
		fmt.Fprintln(w)
		fmt.Fprintln(w, "PDF:")
		fmt.Fprintln(w, "      --renderer <name>     wkhtmltopdf (default) or chrome")
		fmt.Fprintln(w, "  -t, --timeout <d>         Overall timeout (e.g., 90s, 2m)")
		fmt.Fprintln(w, "  -p, --page-size <s>       Page size: letter, a4, legal")
		fmt.Fprintln(w, "      --orientation <s>     Orientation: portrait, landscape")
		fmt.Fprintln(w, "      --margin <f>          Margin in inches (0.25-3.0)")
		fmt.Fprintln(w, "      --published <s>       [pubdate]: \"auto\", \"auto:FORMAT\", or literal")
		fmt.Fprintln(w, "                            Tokens: YYYY, YY, MMMM, MMM, MM, M, DD, D")
		fmt.Fprintln(w, "                            Presets: iso, us, long, year")
		fmt.Fprintln(w, "      --print-styles <dir>  Directory with a print.css override")
		fmt.Fprintln(w, "      --no-header           Disable the page header")
		fmt.Fprintln(w, "      --no-footer           Disable the page footer")
	}

	fmt.Fprintln(w)
	fmt.Fprintln(w, "Output Control:")
	fmt.Fprintln(w, "  -q, --quiet               Only show errors")
	fmt.Fprintln(w, "  -v, --verbose             Show debug logs")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Environment:")
	fmt.Fprintln(w, "  SPECPUB_CONFIG, SPECPUB_BASE_URL, SPECPUB_REPO_ROOT, SPECPUB_RENDERER,")
	fmt.Fprintln(w, "  SPECPUB_TIMEOUT, SPECPUB_PUBLISHED, SPECPUB_LOCALIZE_CSS, SPECPUB_LOG_LEVEL")
}

// runHelp prints help for a specific command.
func runHelp(args []string, env *Environment) int {
	if len(args) == 0 {
		printUsage(env.Stdout)
		return ExitSuccess
	}

	switch args[0] {
	case "md2html", "html2pdf", "md2pdf", "postprocess":
		printCommandUsage(env.Stdout, args[0])
	case "doctor":
		fmt.Fprintln(env.Stdout, "Usage: specpub doctor [--json]")
		fmt.Fprintln(env.Stdout)
		fmt.Fprintln(env.Stdout, "Check pandoc, wkhtmltopdf, prettier, Chrome and the environment.")
	case "version":
		fmt.Fprintln(env.Stdout, "Usage: specpub version")
		fmt.Fprintln(env.Stdout)
		fmt.Fprintln(env.Stdout, "Show version information.")
	case "help":
		fmt.Fprintln(env.Stdout, "Usage: specpub help [command]")
		fmt.Fprintln(env.Stdout)
		fmt.Fprintln(env.Stdout, "Show help for a command.")
	default:
		fmt.Fprintf(env.Stderr, "Unknown command: %s\n", args[0])
		printUsage(env.Stderr)
		return ExitUsage
	}
	return ExitSuccess
}
