// Package assets provides the stylesheets injected into HTML before PDF
// rendering.
//
//	StyleLoader (interface)
//	    ├── EmbeddedLoader    built-in styles compiled into the binary
//	    ├── FilesystemLoader  {dir}/{name}.css on disk
//	    └── Resolver          filesystem first, embedded on "not found"
//
// The built-in "print" style fixes code block rendering in wkhtmltopdf and
// Chrome without overriding the OASIS document stylesheet. A user directory
// holding print.css replaces it.
//
// Style names are validated so they cannot escape the base directory, and
// FilesystemLoader resolves symlinks before checking containment.
package assets
