package specpub

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"

	"github.com/alnah/go-specpub/internal/process"
)

// External tool names.
const (
	ToolPandoc      = "pandoc"
	ToolWkhtmltopdf = "wkhtmltopdf"
	ToolPrettier    = "prettier"
)

// CommandRunner abstracts command execution to enable testing without real subprocesses.
type CommandRunner interface {
	Run(ctx context.Context, name string, args ...string) (stdout string, stderr string, err error)
}

// ExecRunner implements CommandRunner using os/exec. Cancelling ctx kills
// the command's whole process group.
type ExecRunner struct{}

// Run executes name with args and captures both output streams.
// A missing executable is reported as ErrToolNotFound.
func (r *ExecRunner) Run(ctx context.Context, name string, args ...string) (string, string, error) {
	path, err := exec.LookPath(name)
	if err != nil {
		if errors.Is(err, exec.ErrNotFound) {
			return "", "", fmt.Errorf("%w: %s", ErrToolNotFound, name)
		}
		return "", "", err
	}

	cmd := exec.CommandContext(ctx, path, args...) // #nosec G204 -- tool name is a constant
	process.Bind(cmd)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err = cmd.Run()
	if ctxErr := ctx.Err(); ctxErr != nil {
		return stdout.String(), stderr.String(), ctxErr
	}
	return stdout.String(), stderr.String(), err
}

var _ CommandRunner = (*ExecRunner)(nil)

// toolError wraps a failed tool run with sentinel, keeping err in the chain
// and the tail of stderr in the message.
func toolError(sentinel error, tool, stderr string, err error) error {
	msg := strings.TrimSpace(stderr)
	if len(msg) > maxStderrInError {
		msg = "..." + msg[len(msg)-maxStderrInError:]
	}
	if msg == "" {
		return fmt.Errorf("%w: %s: %w", sentinel, tool, err)
	}
	return fmt.Errorf("%w: %s: %w: %s", sentinel, tool, err, msg)
}

const maxStderrInError = 2000
