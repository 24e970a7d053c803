package main

import (
	"context"
	"errors"
	"os"
	"strings"

	specpub "github.com/alnah/go-specpub"
	"github.com/alnah/go-specpub/internal/config"
	"github.com/alnah/go-specpub/internal/hints"
)

// hintFor returns an actionable hint for err, or "".
func hintFor(cmd string, err error) string {
	switch {
	case errors.Is(err, specpub.ErrToolNotFound):
		return hints.ForToolNotFound(missingTool(err))
	case errors.Is(err, specpub.ErrBrowserConnect):
		return hints.ForBrowserConnect()
	case errors.Is(err, context.DeadlineExceeded), errors.Is(err, specpub.ErrPageLoad):
		return hints.ForTimeout()
	case errors.Is(err, config.ErrConfigNotFound):
		return hints.ForConfigNotFound(nil)
	case errors.Is(err, specpub.ErrInvalidBaseURL):
		return hints.ForBaseURL()
	case errors.Is(err, specpub.ErrInvalidExtension):
		return hints.ForInputExtension(inputExtensions(cmd))
	case errors.Is(err, os.ErrPermission):
		return hints.ForOutputDirectory()
	}
	return ""
}

// missingTool names the external tool in a not-found error.
func missingTool(err error) string {
	msg := err.Error()
	for _, tool := range []string{specpub.ToolPandoc, specpub.ToolWkhtmltopdf, specpub.ToolPrettier} {
		if strings.Contains(msg, tool) {
			return tool
		}
	}
	return "the required tool"
}

// inputExtensions lists the accepted input extensions of cmd.
func inputExtensions(cmd string) []string {
	if commandTakesMarkdown(cmd) {
		return specpub.MarkdownExtensions
	}
	return specpub.HTMLExtensions
}
