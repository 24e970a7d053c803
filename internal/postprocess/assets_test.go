package postprocess

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/alnah/go-specpub/internal/fetch"
)

func TestLocalizeAssets_Images(t *testing.T) {
	t.Parallel()

	srv := newAssetServer(t, map[string]string{"/img/pic.png": "PNGDATA"})
	dir := t.TempDir()

	body := `<p><img src="` + srv.URL + `/img/pic.png" srcset="` + srv.URL + `/img/pic@2x.png 2x" alt="pic"/></p>`
	d := mustParse(t, body, Options{Dir: dir})
	mustRun(t, LocalizeAssets(LocalizeOptions{Fetcher: fetch.New(0)}), d)

	img := d.Selection().Find("img")
	if src, _ := img.Attr("src"); src != "images/pic.png" {
		t.Errorf("src = %q, want images/pic.png", src)
	}
	if _, ok := img.Attr("srcset"); ok {
		t.Error("srcset should be removed after localization")
	}

	data, err := os.ReadFile(filepath.Join(dir, ImagesDir, "pic.png"))
	if err != nil {
		t.Fatalf("reading localized image: %v", err)
	}
	if string(data) != "PNGDATA" {
		t.Errorf("localized content = %q, want PNGDATA", data)
	}
	if got := srv.count("/img/pic.png"); got != 1 {
		t.Errorf("fetch count = %d, want 1", got)
	}

	// Written through a temp file that is renamed into place.
	entries, err := os.ReadDir(filepath.Join(dir, ImagesDir))
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 1 || entries[0].Name() != "pic.png" {
		names := make([]string, 0, len(entries))
		for _, e := range entries {
			names = append(names, e.Name())
		}
		t.Errorf("images dir = %v, want only pic.png", names)
	}
}

func TestLocalizeAssets_ReusesExistingFile(t *testing.T) {
	t.Parallel()

	srv := newAssetServer(t, map[string]string{"/img/pic.png": "PNGDATA"})
	dir := t.TempDir()
	body := `<p><img src="` + srv.URL + `/img/pic.png" alt="pic"/></p>`

	for i := range 2 {
		d := mustParse(t, body, Options{Dir: dir})
		mustRun(t, LocalizeAssets(LocalizeOptions{Fetcher: fetch.New(0)}), d)
		if src, _ := d.Selection().Find("img").Attr("src"); src != "images/pic.png" {
			t.Errorf("run %d: src = %q, want images/pic.png", i, src)
		}
	}

	if got := srv.count("/img/pic.png"); got != 1 {
		t.Errorf("fetch count = %d, want 1 (second run should reuse the file)", got)
	}
}

func TestLocalizeAssets_FailedImageDropped(t *testing.T) {
	t.Parallel()

	srv := newAssetServer(t, map[string]string{})
	var logs strings.Builder
	d := mustParse(t, `<p>before<img src="`+srv.URL+`/missing.png"/>after</p>`,
		Options{Dir: t.TempDir(), Logger: newTestLogger(&logs)})
	mustRun(t, LocalizeAssets(LocalizeOptions{Fetcher: fetch.New(0)}), d)

	if got := bodyHTML(t, d); got != `<p>beforeafter</p>` {
		t.Errorf("body = %q, want image dropped", got)
	}
	if !strings.Contains(logs.String(), "level=WARN") {
		t.Errorf("expected a warning, logs = %q", logs.String())
	}
}

func TestLocalizeAssets_LocalImagesUntouched(t *testing.T) {
	t.Parallel()

	body := `<p><img src="images/a.png"/><img src="data:image/png;base64,AAAA"/><img src="/abs/b.png"/></p>`
	d := mustParse(t, body, Options{Dir: t.TempDir()})
	before := bodyHTML(t, d)
	mustRun(t, LocalizeAssets(LocalizeOptions{Fetcher: failingFetcher{}}), d)

	if after := bodyHTML(t, d); after != before {
		t.Errorf("body changed:\nbefore: %q\nafter:  %q", before, after)
	}
}

func TestLocalizeAssets_Stylesheets(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		styles   bool
		path     string
		wantHref func(base string) string
		wantHits int
	}{
		{
			name:     "disabled keeps remote href",
			styles:   false,
			path:     "/css/spec.css",
			wantHref: func(base string) string { return base + "/css/spec.css" },
		},
		{
			name:     "enabled localizes",
			styles:   true,
			path:     "/css/spec.css",
			wantHref: func(string) string { return "styles/spec.css" },
			wantHits: 1,
		},
		{
			name:     "fetch failure keeps remote href",
			styles:   true,
			path:     "/css/gone.css",
			wantHref: func(base string) string { return base + "/css/gone.css" },
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			srv := newAssetServer(t, map[string]string{"/css/spec.css": "body{}"})
			dir := t.TempDir()
			content := `<!DOCTYPE html><html><head><link rel="stylesheet" href="` + srv.URL + tt.path +
				`"/></head><body><p>x</p></body></html>`
			d, err := ParseString(content, Options{Name: testDocName, Dir: dir})
			if err != nil {
				t.Fatalf("ParseString() error = %v", err)
			}
			mustRun(t, LocalizeAssets(LocalizeOptions{Fetcher: fetch.New(0), Styles: tt.styles}), d)

			href, _ := d.Selection().Find("link").Attr("href")
			if want := tt.wantHref(srv.URL); href != want {
				t.Errorf("href = %q, want %q", href, want)
			}
			if got := srv.count("/css/spec.css"); got != tt.wantHits {
				t.Errorf("fetch count = %d, want %d", got, tt.wantHits)
			}
			if tt.wantHits > 0 {
				if _, err := os.Stat(filepath.Join(dir, StylesDir, "spec.css")); err != nil {
					t.Errorf("stylesheet not written: %v", err)
				}
			}
		})
	}
}

func TestLocalizeAssets_CanceledContext(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	d := mustParse(t, `<p><img src="https://example.com/a.png"/></p>`, Options{Dir: t.TempDir()})
	err := LocalizeAssets(LocalizeOptions{Fetcher: failingFetcher{}}).Run(ctx, d)
	if !errors.Is(err, context.Canceled) {
		t.Errorf("Run() error = %v, want context.Canceled", err)
	}
}

func TestAssetName(t *testing.T) {
	t.Parallel()

	tests := []struct {
		url     string
		want    string
		wantErr bool
	}{
		{url: "https://docs.oasis-open.org/templates/OASISLogo-v3.0.png", want: "OASISLogo-v3.0.png"},
		{url: "https://h/a/b.css?v=3#x", want: "b.css"},
		{url: "https://h/a%20b.png", want: "a b.png"},
		{url: "https://h/", wantErr: true},
		{url: "https://h", wantErr: true},
		{url: "https://h/a/..", wantErr: true},
		{url: "%zz", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.url, func(t *testing.T) {
			t.Parallel()

			got, err := AssetName(tt.url)
			if tt.wantErr {
				if !errors.Is(err, ErrNoAssetName) {
					t.Errorf("AssetName(%q) error = %v, want ErrNoAssetName", tt.url, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("AssetName(%q) unexpected error: %v", tt.url, err)
			}
			if got != tt.want {
				t.Errorf("AssetName(%q) = %q, want %q", tt.url, got, tt.want)
			}
		})
	}
}

// failingFetcher fails every request.
type failingFetcher struct{}

func (failingFetcher) Fetch(context.Context, string) ([]byte, error) {
	return nil, errors.New("fetch disabled in test")
}
