package postprocess

import (
	"strings"
	"testing"
)

func TestLinkifyPlainURLs(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		body      string
		wantLinks []string
	}{
		{
			name:      "single bare URL",
			body:      `<p>See https://docs.oasis-open.org/spec for details</p>`,
			wantLinks: []string{"https://docs.oasis-open.org/spec"},
		},
		{
			name:      "multiple URLs and schemes",
			body:      `<p>Mirror ftp://files.example.org/a and http://b.example</p>`,
			wantLinks: []string{"ftp://files.example.org/a", "http://b.example"},
		},
		{
			name:      "URL only",
			body:      `<p>https://example.com</p>`,
			wantLinks: []string{"https://example.com"},
		},
		{
			name:      "paragraph with markup untouched",
			body:      `<p>Already <a href="https://x.org">https://x.org</a> and https://y.org</p>`,
			wantLinks: []string{"https://x.org"},
		},
		{
			name: "paragraph with emphasis untouched",
			body: `<p><em>note</em> https://y.org</p>`,
		},
		{
			name: "no URL",
			body: `<p>Plain text only.</p>`,
		},
		{
			name: "URL outside paragraph untouched",
			body: `<li>https://list.example</li>`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			d := mustParse(t, tt.body, Options{})
			mustRun(t, LinkifyPlainURLs(), d)

			links := d.Selection().Find("a")
			if links.Length() != len(tt.wantLinks) {
				t.Fatalf("found %d links, want %d: %s", links.Length(), len(tt.wantLinks), bodyHTML(t, d))
			}
			for i, want := range tt.wantLinks {
				a := links.Eq(i)
				if href, _ := a.Attr("href"); href != want {
					t.Errorf("link %d href = %q, want %q", i, href, want)
				}
				if text := a.Text(); text != want {
					t.Errorf("link %d text = %q, want %q", i, text, want)
				}
			}
		})
	}
}

func TestLinkifyPlainURLs_PreservesSurroundingText(t *testing.T) {
	t.Parallel()

	d := mustParse(t, `<p>before https://a.example after</p>`, Options{})
	mustRun(t, LinkifyPlainURLs(), d)

	got := bodyHTML(t, d)
	want := `<p>before <a href="https://a.example">https://a.example</a> after</p>`
	if got != want {
		t.Errorf("body = %q, want %q", got, want)
	}
}

func TestLinkifyPlainURLs_Idempotent(t *testing.T) {
	t.Parallel()

	d := mustParse(t, `<p>https://a.example and https://b.example</p>`, Options{})
	mustRun(t, LinkifyPlainURLs(), d)
	first := bodyHTML(t, d)
	mustRun(t, LinkifyPlainURLs(), d)
	second := bodyHTML(t, d)

	if first != second {
		t.Errorf("second run changed output:\nfirst:  %q\nsecond: %q", first, second)
	}
	if n := strings.Count(second, "<a "); n != 2 {
		t.Errorf("got %d anchors, want 2", n)
	}
}
