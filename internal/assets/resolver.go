package assets

import "errors"

// Resolver tries a user directory first and falls back to the embedded
// styles when the style is not found there.
type Resolver struct {
	custom   StyleLoader // nil without a user directory
	embedded StyleLoader
}

// NewResolver creates a Resolver. An empty dir uses embedded styles only.
func NewResolver(dir string) (*Resolver, error) {
	r := &Resolver{embedded: NewEmbeddedLoader()}
	if dir != "" {
		fsLoader, err := NewFilesystemLoader(dir)
		if err != nil {
			return nil, err
		}
		r.custom = fsLoader
	}
	return r, nil
}

// LoadStyle implements StyleLoader. Validation and read errors from the
// user directory are returned as is; only ErrStyleNotFound falls back.
func (r *Resolver) LoadStyle(name string) (string, error) {
	if r.custom == nil {
		return r.embedded.LoadStyle(name)
	}
	css, err := r.custom.LoadStyle(name)
	if err == nil {
		return css, nil
	}
	if !errors.Is(err, ErrStyleNotFound) {
		return "", err
	}
	return r.embedded.LoadStyle(name)
}

// HasCustomLoader reports whether a user directory is configured.
func (r *Resolver) HasCustomLoader() bool {
	return r.custom != nil
}

var _ StyleLoader = (*Resolver)(nil)
