package postprocess

import (
	"context"
	"errors"
	"slices"
	"strings"
	"testing"

	"github.com/alnah/go-specpub/internal/fetch"
)

func TestDefaultPipeline_Order(t *testing.T) {
	t.Parallel()

	got := DefaultPipeline(Config{}).Names()
	want := []string{"head", "heading-anchors", "anchors", "linkify", "logo", "banner", "localize-assets", "relativize"}
	if !slices.Equal(got, want) {
		t.Errorf("Names() = %v, want %v", got, want)
	}
}

func TestPipeline_StopsOnError(t *testing.T) {
	t.Parallel()

	errBoom := errors.New("boom")
	ran := false
	p := Pipeline{
		{Name: "fails", Run: func(context.Context, *Document) error { return errBoom }},
		{Name: "after", Run: func(context.Context, *Document) error { ran = true; return nil }},
	}

	err := p.Run(context.Background(), mustParse(t, "<p>x</p>", Options{}))
	if !errors.Is(err, errBoom) {
		t.Fatalf("Run() error = %v, want wrapping errBoom", err)
	}
	if !strings.Contains(err.Error(), "pass fails") {
		t.Errorf("error %q should name the failing pass", err)
	}
	if ran {
		t.Error("pass after a failure should not run")
	}
}

func TestPipeline_CanceledContext(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := DefaultPipeline(Config{}).Run(ctx, mustParse(t, "<p>x</p>", Options{}))
	if !errors.Is(err, context.Canceled) {
		t.Errorf("Run() error = %v, want context.Canceled", err)
	}
}

// ---------------------------------------------------------------------------
// End to end
// ---------------------------------------------------------------------------

func TestProcess_EndToEnd(t *testing.T) {
	t.Parallel()

	srv := newAssetServer(t, map[string]string{"/templates/OASISLogo-v3.0.png": "PNG"})
	dir := t.TempDir()
	logo := Logo{URL: srv.URL + "/templates/OASISLogo-v3.0.png", Alt: DefaultLogoAlt}
	p := DefaultPipeline(Config{Logo: logo, Fetcher: fetch.New(0)})
	opts := Options{Name: testDocName, Dir: dir}

	in := wrapBody(`<h1 id="title"><a id="title">My Spec</a></h1>` +
		`<p>Latest: https://docs.oasis-open.org/x/csaf.html</p>` +
		`<p><a href="` + testDocName + `#title" target="_blank">top</a></p>`)

	out, err := Process(context.Background(), in, opts, p)
	if err != nil {
		t.Fatalf("Process() error = %v", err)
	}

	wants := []string{
		`<p><img src="images/OASISLogo-v3.0.png" alt="OASIS Logo"/></p>` + markerHR + `<h1big id="title">My Spec</h1big>`,
		`<a href="https://docs.oasis-open.org/x/csaf.html">https://docs.oasis-open.org/x/csaf.html</a>`,
		`<a href="#title">top</a>`,
	}
	for _, want := range wants {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
	if n := countSubstr(out, `alt="OASIS Logo"`); n != 1 {
		t.Errorf("found %d logos, want 1", n)
	}

	again, err := Process(context.Background(), out, opts, p)
	if err != nil {
		t.Fatalf("second Process() error = %v", err)
	}
	if again != out {
		t.Errorf("second run changed output:\nfirst:  %s\nsecond: %s", out, again)
	}
	if got := srv.count("/templates/OASISLogo-v3.0.png"); got != 1 {
		t.Errorf("logo fetched %d times, want 1", got)
	}
}

func TestProcess_PandocFigureAndTOC(t *testing.T) {
	t.Parallel()

	srv := newAssetServer(t, map[string]string{"/templates/OASISLogo-v3.0.png": "PNG"})
	logoURL := srv.URL + "/templates/OASISLogo-v3.0.png"
	p := DefaultPipeline(Config{Logo: Logo{URL: logoURL, Alt: DefaultLogoAlt}, Fetcher: fetch.New(0)})

	in := wrapBody(`<nav id="TOC" role="doc-toc"><ul><li><a href="#title">Title</a></li></ul></nav>` +
		`<figure><img src="` + logoURL + `" alt="OASIS Logo"/><figcaption aria-hidden="true">OASIS Logo</figcaption></figure>` +
		`<h1 id="title">Title</h1><p>text</p>`)

	out, err := Process(context.Background(), in, Options{Name: testDocName, Dir: t.TempDir()}, p)
	if err != nil {
		t.Fatalf("Process() error = %v", err)
	}

	want := `<body><p><img src="images/OASISLogo-v3.0.png" alt="OASIS Logo"/></p>` + markerHR +
		`<h1big id="title">Title</h1big><p>text</p>`
	if !strings.Contains(out, want) {
		t.Errorf("output missing %q:\n%s", want, out)
	}
	for _, exclude := range []string{`<figure`, `figcaption`, `<nav`} {
		if strings.Contains(out, exclude) {
			t.Errorf("output should not contain %q:\n%s", exclude, out)
		}
	}
}
