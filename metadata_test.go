package specpub

import "testing"

func TestExtractTitle(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		md   string
		want string
	}{
		{name: "first h1", md: "intro\n# Common Security Advisory Framework\n# Second", want: "Common Security Advisory Framework"},
		{name: "trailing hashes", md: "# Title ##\n", want: "Title"},
		{name: "h2 ignored", md: "## Not a title\n", want: NoMetadata},
		{name: "indented ignored", md: "  # Indented\n", want: NoMetadata},
		{name: "no heading", md: "plain text", want: NoMetadata},
		{name: "CRLF", md: "# Title\r\nbody", want: "Title"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := ExtractTitle(tt.md); got != tt.want {
				t.Errorf("ExtractTitle() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestExtractDescription(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		md   string
		want string
	}{
		{name: "html comment", md: "<!-- description: CSAF 2.1 prose -->\n# T", want: "CSAF 2.1 prose"},
		{name: "comment key case", md: "<!-- Description: Mixed -->", want: "Mixed"},
		{name: "front matter", md: "---\ndescription: \"Quoted text\"\n---", want: "Quoted text"},
		{name: "comment without key", md: "<!-- note -->\ndescription: later", want: "later"},
		{name: "unterminated comment skipped", md: "<!-- description: open", want: NoMetadata},
		{name: "none", md: "# Title\n\nBody", want: NoMetadata},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := ExtractDescription(tt.md); got != tt.want {
				t.Errorf("ExtractDescription() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestEnsureTOCTitle(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name        string
		md          string
		want        string
		wantChanged bool
	}{
		{
			name:        "title inserted above first entry",
			md:          "# Spec\n\n- [Intro](#intro)\n- [Scope](#scope)\n",
			want:        "# Spec\n\n\n# Table of Contents\n- [Intro](#intro)\n- [Scope](#scope)\n",
			wantChanged: true,
		},
		{
			name: "existing title kept",
			md:   "## Table of Contents\n- [Intro](#intro)\n",
			want: "## Table of Contents\n- [Intro](#intro)\n",
		},
		{
			name: "no toc",
			md:   "# Spec\n\n- plain item\n",
			want: "# Spec\n\n- plain item\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, changed := EnsureTOCTitle(tt.md)
			if changed != tt.wantChanged {
				t.Errorf("changed = %v, want %v", changed, tt.wantChanged)
			}
			if got != tt.want {
				t.Errorf("EnsureTOCTitle() = %q, want %q", got, tt.want)
			}
		})
	}
}
