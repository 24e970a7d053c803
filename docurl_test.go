package specpub

import (
	"errors"
	"path/filepath"
	"testing"
)

func TestDocumentURL(t *testing.T) {
	t.Parallel()

	root := filepath.FromSlash("/work")
	tests := []struct {
		name     string
		site     string
		repoRoot string
		docDir   string
		docName  string
		want     string
		wantErr  error
	}{
		{
			name:     "nested directory",
			site:     "https://docs.oasis-open.org/csaf",
			repoRoot: root,
			docDir:   filepath.FromSlash("/work/csaf_2.1/prose"),
			docName:  "csaf-v2.1.html",
			want:     "https://docs.oasis-open.org/csaf/csaf_2.1/prose/csaf-v2.1.html",
		},
		{
			name:     "trailing slash on site",
			site:     "https://docs.oasis-open.org/csaf/",
			repoRoot: root,
			docDir:   filepath.FromSlash("/work/prose"),
			docName:  "a.html",
			want:     "https://docs.oasis-open.org/csaf/prose/a.html",
		},
		{
			name:     "document at root",
			site:     "https://example.org",
			repoRoot: root,
			docDir:   root,
			docName:  "index.html",
			want:     "https://example.org/index.html",
		},
		{
			name:     "outside root ignored",
			site:     "https://example.org/base",
			repoRoot: root,
			docDir:   filepath.FromSlash("/elsewhere/x"),
			docName:  "a.html",
			want:     "https://example.org/base/a.html",
		},
		{
			name:    "no repo root",
			site:    "http://example.org/base?x=1#frag",
			docDir:  filepath.FromSlash("/work/x"),
			docName: "a.html",
			want:    "http://example.org/base/a.html",
		},
		{name: "relative site", site: "docs/csaf", docName: "a.html", wantErr: ErrInvalidBaseURL},
		{name: "unsupported scheme", site: "ftp://example.org", docName: "a.html", wantErr: ErrInvalidBaseURL},
		{name: "empty", site: "", docName: "a.html", wantErr: ErrInvalidBaseURL},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := DocumentURL(tt.site, tt.repoRoot, tt.docDir, tt.docName)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("error = %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("DocumentURL() = %q, want %q", got, tt.want)
			}
		})
	}
}
