package specpub

import (
	"regexp"
	"strings"
)

// NoMetadata is used when a Markdown file has no title or description.
const NoMetadata = "-"

// ExtractTitle returns the text of the first "# " heading line.
func ExtractTitle(markdown string) string {
	for _, line := range strings.Split(markdown, "\n") {
		if strings.HasPrefix(line, "# ") {
			if title := strings.Trim(strings.TrimSpace(line), "# "); title != "" {
				return title
			}
		}
	}
	return NoMetadata
}

// ExtractDescription looks for "<!-- description: ... -->" or a
// front-matter style "description: ..." line.
func ExtractDescription(markdown string) string {
	for _, line := range strings.Split(markdown, "\n") {
		trimmed := strings.TrimSpace(line)
		if strings.HasPrefix(trimmed, "<!--") {
			if m := descComment.FindStringSubmatch(trimmed); m != nil && m[1] != "" {
				return m[1]
			}
			continue
		}
		if strings.HasPrefix(trimmed, "description:") {
			return strings.Trim(strings.TrimSpace(trimmed[len("description:"):]), `"'`)
		}
	}
	return NoMetadata
}

var (
	descComment = regexp.MustCompile(`(?i)^<!--.*?description:\s*(.*?)\s*-->`)

	tocEntry = regexp.MustCompile(`(?m)^- \[.*\]\(.*\)`)
	tocTitle = regexp.MustCompile(`(?mi)^\s*#+\s*Table of Contents\s*$`)
)

// EnsureTOCTitle inserts a "# Table of Contents" heading above a
// hand-written Markdown table of contents that lacks one. It reports
// whether the content changed.
func EnsureTOCTitle(markdown string) (string, bool) {
	if tocTitle.MatchString(markdown) {
		return markdown, false
	}
	loc := tocEntry.FindStringIndex(markdown)
	if loc == nil {
		return markdown, false
	}
	return markdown[:loc[0]] + "\n# Table of Contents\n" + markdown[loc[0]:], true
}
