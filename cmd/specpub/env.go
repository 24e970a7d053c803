package main

import (
	"context"
	"io"
	"os"
	"time"

	specpub "github.com/alnah/go-specpub"
)

// Publisher is the part of *specpub.Publisher the commands use.
type Publisher interface {
	MarkdownToHTML(ctx context.Context, mdPath, htmlPath string) error
	PostProcessFile(ctx context.Context, inPath, outPath string) error
	HTMLToPDF(ctx context.Context, htmlPath, pdfPath string) (*specpub.PDFInfo, error)
	Publish(ctx context.Context, mdPath, pdfPath string, keepHTML bool) (*specpub.PDFInfo, error)
	Close() error
}

// Compile-time interface implementation check.
var _ Publisher = (*specpub.Publisher)(nil)

// Environment holds injectable dependencies for testability.
// Includes I/O, time, the process environment and the publisher factory.
type Environment struct {
	Now     func() time.Time
	Stdout  io.Writer
	Stderr  io.Writer
	Getenv  func(string) string
	Environ func() []string

	// NewPublisher builds the publisher for one command run.
	NewPublisher func(opts ...specpub.Option) (Publisher, error)
}

// DefaultEnv returns the production environment.
func DefaultEnv() *Environment {
	return &Environment{
		Now:     time.Now,
		Stdout:  os.Stdout,
		Stderr:  os.Stderr,
		Getenv:  os.Getenv,
		Environ: os.Environ,
		NewPublisher: func(opts ...specpub.Option) (Publisher, error) {
			return specpub.NewPublisher(opts...)
		},
	}
}
