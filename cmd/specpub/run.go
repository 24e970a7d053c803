package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	specpub "github.com/alnah/go-specpub"
	"github.com/alnah/go-specpub/internal/config"
	"github.com/alnah/go-specpub/internal/fileutil"
)

// runCommand runs one pipeline command on input.
func runCommand(ctx context.Context, cmd, input string, flags *pipelineFlags, env *Environment) error {
	envCfg := loadEnvConfig(env.Getenv)
	warnUnknownEnvVars(env.Stderr, env.Environ())
	logger := newLogger(env.Stderr, resolveLogLevel(flags.common, envCfg.LogLevel, env.Stderr))

	cfg, err := loadConfig(flags.common.config, envCfg.ConfigPath)
	if err != nil {
		return err
	}
	applyEnvConfig(envCfg, cfg)
	mergeFlags(flags, cfg)
	if err := cfg.Validate(); err != nil {
		return err
	}

	output, err := resolveOutput(cmd, input, flags.output)
	if err != nil {
		return err
	}

	// The document URL is derived from where the HTML ends up.
	htmlPath := output
	if cmd == "md2pdf" {
		htmlPath = fileutil.ReplaceExtension(output, ".html")
	}
	baseURL, err := resolveBaseURL(cfg.Site, htmlPath)
	if err != nil {
		return err
	}

	timeout, err := resolveTimeout(flags.render.timeout, envCfg.Timeout)
	if err != nil {
		return err
	}
	if timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	pub, err := env.NewPublisher(buildOptions(cfg, flags, baseURL, timeout, logger, env.Now)...)
	if err != nil {
		return err
	}
	defer func() {
		if err := pub.Close(); err != nil {
			logger.Warn("closing renderer", "error", err)
		}
	}()

	start := env.Now()
	var info *specpub.PDFInfo
	switch cmd {
	case "md2html":
		err = pub.MarkdownToHTML(ctx, input, output)
	case "postprocess":
		err = pub.PostProcessFile(ctx, input, output)
	case "html2pdf":
		info, err = pub.HTMLToPDF(ctx, input, output)
	case "md2pdf":
		info, err = pub.Publish(ctx, input, output, flags.keepHTML)
	default:
		return fmt.Errorf("%w: unknown command %q", ErrUsage, cmd)
	}
	if err != nil {
		return err
	}

	if !flags.common.quiet {
		printResult(env.Stdout, input, output, info, env.Now().Sub(start))
	}
	return nil
}

// loadConfig loads the config named by the flag, else by SPECPUB_CONFIG,
// else returns defaults.
func loadConfig(flagValue, envValue string) (*config.Config, error) {
	name := flagValue
	if name == "" {
		name = envValue
	}
	if name == "" {
		return config.DefaultConfig(), nil
	}
	cfg, err := config.LoadConfig(name)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}
	return cfg, nil
}

// mergeFlags merges CLI flags into config. Only flags given on the command
// line override config values.
func mergeFlags(flags *pipelineFlags, cfg *config.Config) {
	set := flags.changed

	if set["base-url"] {
		cfg.Site.BaseURL = flags.site.baseURL
	}
	if set["repo-root"] {
		cfg.Site.RepoRoot = flags.site.repoRoot
	}
	if set["localize-css"] {
		cfg.Assets.LocalizeCSS = flags.assets.localizeCSS
	}
	if set["print-styles"] {
		cfg.Assets.PrintStylesDir = flags.assets.printStyles
	}

	if set["no-format"] && flags.markdown.noFormat {
		cfg.Format.Enabled = false
	}
	if set["no-toc"] && flags.markdown.noTOC {
		cfg.Pandoc.TOC = false
	}
	if set["stylesheet"] {
		cfg.Pandoc.Stylesheet = flags.markdown.stylesheet
	}

	if set["renderer"] {
		cfg.Renderer = flags.render.renderer
	}
	if set["page-size"] {
		cfg.Page.Size = flags.render.pageSize
	}
	if set["orientation"] {
		cfg.Page.Orientation = flags.render.orientation
	}
	if set["margin"] {
		cfg.Page.Margin = flags.render.margin
	}
	if set["published"] {
		cfg.Published = flags.render.published
	}
}

// resolveOutput returns the output path for cmd. An empty flag derives it
// from input; a directory flag keeps the derived file name.
func resolveOutput(cmd, input, flagOutput string) (string, error) {
	var def string
	switch cmd {
	case "md2html":
		def = fileutil.ReplaceExtension(input, ".html")
	case "postprocess":
		def = input
	case "html2pdf", "md2pdf":
		def = fileutil.ReplaceExtension(input, ".pdf")
	default:
		return "", fmt.Errorf("%w: unknown command %q", ErrUsage, cmd)
	}

	if flagOutput == "" {
		return def, nil
	}
	if strings.HasSuffix(flagOutput, "/") || strings.HasSuffix(flagOutput, string(filepath.Separator)) {
		return filepath.Join(flagOutput, filepath.Base(def)), nil
	}
	if st, err := os.Stat(flagOutput); err == nil && st.IsDir() {
		return filepath.Join(flagOutput, filepath.Base(def)), nil
	}
	return flagOutput, nil
}

// resolveBaseURL returns the absolute URL of the HTML document. Without a
// repository root the configured URL is used as is.
func resolveBaseURL(site config.SiteConfig, htmlPath string) (string, error) {
	if site.BaseURL == "" {
		return "", nil
	}
	if site.RepoRoot == "" {
		if err := specpub.CheckBaseURL(site.BaseURL); err != nil {
			return "", err
		}
		return site.BaseURL, nil
	}
	root, err := filepath.Abs(site.RepoRoot)
	if err != nil {
		return "", fmt.Errorf("resolving repository root: %w", err)
	}
	dir, err := filepath.Abs(filepath.Dir(htmlPath))
	if err != nil {
		return "", fmt.Errorf("resolving output directory: %w", err)
	}
	return specpub.DocumentURL(site.BaseURL, root, dir, filepath.Base(htmlPath))
}

// resolveTimeout returns the --timeout value, else the environment value.
// Zero means no overall deadline.
func resolveTimeout(flagValue string, envValue time.Duration) (time.Duration, error) {
	if flagValue == "" {
		return envValue, nil
	}
	d, err := time.ParseDuration(flagValue)
	if err != nil {
		return 0, fmt.Errorf("%w: invalid timeout %q: %v", ErrUsage, flagValue, err)
	}
	if d <= 0 {
		return 0, fmt.Errorf("%w: timeout must be positive, got %s", ErrUsage, flagValue)
	}
	return d, nil
}

// buildOptions maps the merged configuration to publisher options.
func buildOptions(cfg *config.Config, flags *pipelineFlags, baseURL string, timeout time.Duration, logger *slog.Logger, now func() time.Time) []specpub.Option {
	opts := []specpub.Option{
		specpub.WithLogger(logger),
		specpub.WithNow(now),
		specpub.WithRendererName(cfg.Renderer),
		specpub.WithFormat(cfg.Format.Enabled),
		specpub.WithTOC(cfg.Pandoc.TOC),
		specpub.WithKeepTOC(cfg.Pandoc.KeepTOC),
		specpub.WithStylesheet(cfg.Pandoc.Stylesheet),
		specpub.WithLogo(cfg.Logo.URL, cfg.Logo.Alt),
		specpub.WithLocalizeCSS(cfg.Assets.LocalizeCSS),
		specpub.WithPrintStylesDir(cfg.Assets.PrintStylesDir),
		specpub.WithBaseURL(baseURL),
		specpub.WithPublished(cfg.Published),
		specpub.WithCopyright(cfg.Copyright.Holder, cfg.Copyright.Year),
	}
	if d := cfg.FetchTimeout(); d > 0 {
		opts = append(opts, specpub.WithTimeout(d))
	}
	if timeout > 0 {
		opts = append(opts, specpub.WithRenderTimeout(timeout))
	}
	if page := pageSettings(cfg.Page); page != nil {
		opts = append(opts, specpub.WithPage(page))
	}

	switch {
	case flags.render.noHeader:
		opts = append(opts, specpub.WithHeader(&specpub.Marginal{}))
	case !isEmptyMarginal(cfg.Header):
		opts = append(opts, specpub.WithHeader(marginal(cfg.Header)))
	}
	switch {
	case flags.render.noFooter:
		opts = append(opts, specpub.WithFooter(&specpub.Marginal{}))
	case !isEmptyMarginal(cfg.Footer):
		opts = append(opts, specpub.WithFooter(marginal(cfg.Footer)))
	}
	return opts
}

// pageSettings fills unset page fields with defaults, or returns nil when
// none is set.
func pageSettings(pc config.PageConfig) *specpub.PageSettings {
	if pc.Size == "" && pc.Orientation == "" && pc.Margin == 0 {
		return nil
	}
	page := specpub.DefaultPageSettings()
	if pc.Size != "" {
		page.Size = strings.ToLower(pc.Size)
	}
	if pc.Orientation != "" {
		page.Orientation = strings.ToLower(pc.Orientation)
	}
	if pc.Margin != 0 {
		page.Margin = pc.Margin
	}
	return page
}

func isEmptyMarginal(m config.MarginalConfig) bool {
	return m.Left == "" && m.Center == "" && m.Right == ""
}

func marginal(m config.MarginalConfig) *specpub.Marginal {
	return &specpub.Marginal{Left: m.Left, Center: m.Center, Right: m.Right, FontSize: m.FontSize}
}

// newLogger creates the text logger used by the library.
func newLogger(w io.Writer, level slog.Level) *slog.Logger {
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

// resolveLogLevel applies -q and -v over SPECPUB_LOG_LEVEL. The default is
// warn so a successful run prints only its result line.
func resolveLogLevel(common commonFlags, envLevel string, warn io.Writer) slog.Level {
	switch {
	case common.quiet:
		return slog.LevelError
	case common.verbose:
		return slog.LevelDebug
	}
	switch strings.ToLower(strings.TrimSpace(envLevel)) {
	case "":
		return slog.LevelWarn
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		fmt.Fprintf(warn, "warning: unknown SPECPUB_LOG_LEVEL %q, using warn\n", envLevel)
		return slog.LevelWarn
	}
}

// printResult reports a successful run.
func printResult(w io.Writer, input, output string, info *specpub.PDFInfo, d time.Duration) {
	if info != nil {
		fmt.Fprintf(w, "%s -> %s (%d pages, %s)\n", input, output, info.Pages, d.Round(time.Millisecond))
		return
	}
	fmt.Fprintf(w, "%s -> %s (%s)\n", input, output, d.Round(time.Millisecond))
}
