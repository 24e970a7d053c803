package postprocess

import (
	"strings"
	"testing"
)

const markerHR = `<hr style="page-break-before: avoid"/>`

func TestNormalizeBanner(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		body string
		want string
	}{
		{
			name: "stray rules removed, marker inserted, h1 retagged",
			body: `<p>` + logoImg + `</p><hr/><hr/><h1 id="t">Title</h1>`,
			want: `<p>` + logoImg + `</p>` + markerHR + `<h1big id="t">Title</h1big>`,
		},
		{
			name: "marker kept, no duplicate",
			body: `<p>` + logoImg + `</p>` + markerHR + `<h1>Title</h1>`,
			want: `<p>` + logoImg + `</p>` + markerHR + `<h1big>Title</h1big>`,
		},
		{
			name: "marker with loose spacing recognized",
			body: `<p>` + logoImg + `</p><hr style="PAGE-BREAK-BEFORE:avoid;"/><h1>Title</h1>`,
			want: `<p>` + logoImg + `</p><hr style="PAGE-BREAK-BEFORE:avoid;"/><h1big>Title</h1big>`,
		},
		{
			name: "marker not first is replaced",
			body: `<p>` + logoImg + `</p><p>status</p>` + markerHR + `<h1>Title</h1>`,
			want: `<p>` + logoImg + `</p>` + markerHR + `<p>status</p><h1big>Title</h1big>`,
		},
		{
			name: "non h1 heading keeps its tag",
			body: `<p>` + logoImg + `</p><h2>Sub</h2>`,
			want: `<p>` + logoImg + `</p>` + markerHR + `<h2>Sub</h2>`,
		},
		{
			name: "rules after heading untouched",
			body: `<p>` + logoImg + `</p><h1>T</h1><hr/><p>x</p>`,
			want: `<p>` + logoImg + `</p>` + markerHR + `<h1big>T</h1big><hr/><p>x</p>`,
		},
		{
			name: "non-rule content between kept",
			body: `<p>` + logoImg + `</p><nav id="TOC"><ul></ul></nav><hr/><h1>T</h1>`,
			want: `<p>` + logoImg + `</p>` + markerHR + `<nav id="TOC"><ul></ul></nav><h1big>T</h1big>`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			d := mustParse(t, tt.body, Options{})
			mustRun(t, NormalizeBanner(DefaultLogo()), d)

			if got := bodyHTML(t, d); got != tt.want {
				t.Errorf("body =\n  %q\nwant\n  %q", got, tt.want)
			}
		})
	}
}

func TestNormalizeBanner_NoMutationOnMiss(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		body string
	}{
		{name: "no logo", body: `<hr/><h1>Title</h1>`},
		{name: "logo not first", body: `<h1>Title</h1><p>` + logoImg + `</p><hr/><h2>x</h2>`},
		{name: "no heading after logo", body: `<p>` + logoImg + `</p><hr/><p>text</p>`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			var logs strings.Builder
			d := mustParse(t, tt.body, Options{Logger: newTestLogger(&logs)})
			before := bodyHTML(t, d)
			mustRun(t, NormalizeBanner(DefaultLogo()), d)

			if after := bodyHTML(t, d); after != before {
				t.Errorf("body changed:\nbefore: %q\nafter:  %q", before, after)
			}
			if !strings.Contains(logs.String(), "level=WARN") {
				t.Errorf("expected a warning, logs = %q", logs.String())
			}
		})
	}
}

func TestNormalizeBanner_Idempotent(t *testing.T) {
	t.Parallel()

	d := mustParse(t, `<p>`+logoImg+`</p><hr/><h1>Title</h1>`, Options{})
	mustRun(t, NormalizeBanner(DefaultLogo()), d)
	first := bodyHTML(t, d)
	mustRun(t, NormalizeBanner(DefaultLogo()), d)

	if second := bodyHTML(t, d); second != first {
		t.Errorf("second run changed output:\nfirst:  %q\nsecond: %q", first, second)
	}
}
