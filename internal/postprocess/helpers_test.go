package postprocess

import (
	"bytes"
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"

	"golang.org/x/net/html"
)

// testDocName is the output basename used by most tests.
const testDocName = "thisdoc.html"

// wrapBody builds a full document around body content.
func wrapBody(body string) string {
	return "<!DOCTYPE html><html><head><title>Spec</title></head><body>" + body + "</body></html>"
}

// mustParse parses body content into a Document named testDocName.
func mustParse(t *testing.T, body string, opts Options) *Document {
	t.Helper()
	if opts.Name == "" {
		opts.Name = testDocName
	}
	d, err := ParseString(wrapBody(body), opts)
	if err != nil {
		t.Fatalf("ParseString() error = %v", err)
	}
	return d
}

// mustRun runs a single pass and fails the test on error.
func mustRun(t *testing.T, p Pass, d *Document) {
	t.Helper()
	if err := p.Run(context.Background(), d); err != nil {
		t.Fatalf("%s.Run() error = %v", p.Name, err)
	}
}

// bodyHTML renders the children of body.
func bodyHTML(t *testing.T, d *Document) string {
	t.Helper()
	var buf bytes.Buffer
	for c := d.body().FirstChild; c != nil; c = c.NextSibling {
		if err := html.Render(&buf, c); err != nil {
			t.Fatalf("render: %v", err)
		}
	}
	return buf.String()
}

// assetServer serves fixed bodies and counts requests per path.
type assetServer struct {
	*httptest.Server
	hits  map[string]*atomic.Int32
	files map[string]string
}

func newAssetServer(t *testing.T, files map[string]string) *assetServer {
	t.Helper()
	s := &assetServer{hits: map[string]*atomic.Int32{}, files: files}
	for p := range files {
		s.hits[p] = &atomic.Int32{}
	}
	s.Server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, ok := s.files[r.URL.Path]
		if !ok {
			http.NotFound(w, r)
			return
		}
		s.hits[r.URL.Path].Add(1)
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(s.Close)
	return s
}

func (s *assetServer) count(path string) int {
	if c, ok := s.hits[path]; ok {
		return int(c.Load())
	}
	return 0
}

func countSubstr(s, sub string) int {
	return strings.Count(s, sub)
}

// newTestLogger returns a debug-level text logger writing to w.
func newTestLogger(w io.Writer) *slog.Logger {
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: slog.LevelDebug}))
}
