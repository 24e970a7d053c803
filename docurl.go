package specpub

import (
	"errors"
	"fmt"
	"net/url"
	"path"
	"path/filepath"
	"strings"
)

// ErrInvalidBaseURL is returned for a site URL that is not absolute http(s).
var ErrInvalidBaseURL = errors.New("invalid base URL")

// DocumentURL returns the absolute URL a document will be published at:
// site joined with the document directory relative to repoRoot, then name.
//
// Example: site "https://docs.oasis-open.org/csaf", repoRoot "/work",
// docDir "/work/csaf_2.1/prose", name "csaf-v2.1.html" gives
// "https://docs.oasis-open.org/csaf/csaf_2.1/prose/csaf-v2.1.html".
//
// An empty repoRoot, or a docDir outside it, places the document directly
// under site.
func DocumentURL(site, repoRoot, docDir, name string) (string, error) {
	u, err := parseBaseURL(site)
	if err != nil {
		return "", err
	}

	rel := ""
	if repoRoot != "" && docDir != "" {
		r, err := filepath.Rel(repoRoot, docDir)
		if err == nil && r != "." && !strings.HasPrefix(r, "..") {
			rel = filepath.ToSlash(r)
		}
	}

	u.Path = path.Join("/", u.Path, rel, name)
	u.RawQuery = ""
	u.Fragment = ""
	return u.String(), nil
}

// CheckBaseURL reports ErrInvalidBaseURL unless raw is an absolute http or
// https URL with a host.
func CheckBaseURL(raw string) error {
	_, err := parseBaseURL(raw)
	return err
}

func parseBaseURL(raw string) (*url.URL, error) {
	u, err := url.Parse(raw)
	if err != nil || u.Host == "" || (u.Scheme != "http" && u.Scheme != "https") {
		return nil, fmt.Errorf("%w: %q", ErrInvalidBaseURL, raw)
	}
	return u, nil
}
