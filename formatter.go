package specpub

import "context"

// Prettier formats a Markdown file in place with the prettier CLI.
type Prettier struct {
	Runner CommandRunner
}

// NewPrettier creates a Prettier with a real command runner.
func NewPrettier() *Prettier {
	return &Prettier{Runner: &ExecRunner{}}
}

// Format rewrites path in place. A missing prettier binary is reported as
// ErrToolNotFound so callers can skip formatting.
func (p *Prettier) Format(ctx context.Context, path string) error {
	_, stderr, err := p.Runner.Run(ctx, ToolPrettier, "--write", path)
	if err != nil {
		return toolError(ErrFormatFailed, ToolPrettier, stderr, err)
	}
	return nil
}
