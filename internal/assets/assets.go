package assets

// PrintStyle names the stylesheet injected before PDF rendering.
const PrintStyle = "print"

var defaultLoader = NewEmbeddedLoader()

// LoadStyle loads a built-in style by name (without the .css extension).
func LoadStyle(name string) (string, error) {
	return defaultLoader.LoadStyle(name)
}
