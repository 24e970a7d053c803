package specpub

import (
	"context"
	"os"
	"path/filepath"
	"sync"
	"testing"
)

// call records one CommandRunner invocation.
type call struct {
	Name string
	Args []string
}

// toolResult is the scripted outcome of one tool.
type toolResult struct {
	Stdout string
	Stderr string
	Err    error
	// Output is written to the path following "-o" (pandoc).
	Output string
}

// mockRunner implements CommandRunner with per-tool scripted results.
type mockRunner struct {
	mu      sync.Mutex
	results map[string]toolResult
	calls   []call
}

func newMockRunner(results map[string]toolResult) *mockRunner {
	if results == nil {
		results = map[string]toolResult{}
	}
	return &mockRunner{results: results}
}

func (m *mockRunner) Run(_ context.Context, name string, args ...string) (string, string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.calls = append(m.calls, call{Name: name, Args: append([]string(nil), args...)})
	r := m.results[name]
	if r.Err == nil && r.Output != "" {
		for i, a := range args {
			if a == "-o" && i+1 < len(args) {
				if err := os.WriteFile(args[i+1], []byte(r.Output), 0o600); err != nil {
					return "", "", err
				}
			}
		}
	}
	return r.Stdout, r.Stderr, r.Err
}

// called returns the recorded calls for tool name.
func (m *mockRunner) called(name string) []call {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []call
	for _, c := range m.calls {
		if c.Name == name {
			out = append(out, c)
		}
	}
	return out
}

// mockRenderer implements Renderer by copying the prepared HTML into the
// PDF path, so tests can look at what the renderer was given.
type mockRenderer struct {
	Err        error
	CalledWith string
	Opts       *RenderOptions
	Closed     bool
	Seen       string // content of the HTML file handed to Render
}

func (m *mockRenderer) Render(_ context.Context, htmlPath, pdfPath string, opts *RenderOptions) error {
	m.CalledWith = htmlPath
	m.Opts = opts
	data, err := os.ReadFile(htmlPath)
	if err != nil {
		return err
	}
	m.Seen = string(data)
	if m.Err != nil {
		return m.Err
	}
	return os.WriteFile(pdfPath, []byte("%PDF-1.4 fake"), 0o600)
}

func (m *mockRenderer) Close() error {
	m.Closed = true
	return nil
}

// mockInspector implements PDFInspector.
type mockInspector struct {
	Info *PDFInfo
	Err  error
}

func (m *mockInspector) Inspect(string) (*PDFInfo, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	if m.Info != nil {
		return m.Info, nil
	}
	return &PDFInfo{Pages: 1, Size: 13}, nil
}

// stubFetcher serves fixed bodies and counts fetches.
type stubFetcher struct {
	mu     sync.Mutex
	bodies map[string]string
	count  int
}

func (f *stubFetcher) Fetch(_ context.Context, rawURL string) ([]byte, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.count++
	body, ok := f.bodies[rawURL]
	if !ok {
		return nil, os.ErrNotExist
	}
	return []byte(body), nil
}

// writeFile writes content to dir/name and returns the path.
func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("writing %s: %v", path, err)
	}
	return path
}

// readFile returns the content of path or fails the test.
func readFile(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading %s: %v", path, err)
	}
	return string(data)
}
