package postprocess

import (
	"context"
	"fmt"
	"strings"
	"time"
)

// Pass is one DOM rewrite. Run must be idempotent.
type Pass struct {
	Name string
	Run  func(ctx context.Context, d *Document) error
}

// Pipeline is an ordered list of passes.
type Pipeline []Pass

// Config selects the behaviour of DefaultPipeline.
type Config struct {
	Logo        Logo
	Fetcher     Fetcher
	LocalizeCSS bool
	Description string // meta description; empty leaves the head alone
	KeepTOC     bool   // keep pandoc's nav#TOC
}

// DefaultPipeline returns the standard pass order.
func DefaultPipeline(cfg Config) Pipeline {
	logo := cfg.Logo
	if logo.URL == "" && logo.Alt == "" {
		logo = DefaultLogo()
	}
	return Pipeline{
		TidyHead(cfg.Description, cfg.KeepTOC),
		RemoveDuplicateHeadingAnchors(),
		NormalizeAnchors(),
		LinkifyPlainURLs(),
		DedupeLogo(logo),
		NormalizeBanner(logo),
		LocalizeAssets(LocalizeOptions{Fetcher: cfg.Fetcher, Styles: cfg.LocalizeCSS}),
		RelativizeLinks(),
	}
}

// Names lists the pass names in order.
func (p Pipeline) Names() []string {
	names := make([]string, len(p))
	for i, pass := range p {
		names[i] = pass.Name
	}
	return names
}

// Run applies every pass in order and stops at the first failure.
func (p Pipeline) Run(ctx context.Context, d *Document) error {
	for _, pass := range p {
		if err := ctx.Err(); err != nil {
			return err
		}
		start := time.Now()
		if err := pass.Run(ctx, d); err != nil {
			return fmt.Errorf("pass %s: %w", pass.Name, err)
		}
		d.logger.Debug("pass done", "pass", pass.Name, "elapsed", time.Since(start))
	}
	return nil
}

// Process parses content, runs the pipeline, and renders the result.
func Process(ctx context.Context, content string, opts Options, p Pipeline) (string, error) {
	d, err := ParseString(content, opts)
	if err != nil {
		return "", err
	}
	if err := p.Run(ctx, d); err != nil {
		return "", err
	}
	var b strings.Builder
	if err := d.Render(&b); err != nil {
		return "", fmt.Errorf("rendering HTML: %w", err)
	}
	return b.String(), nil
}
