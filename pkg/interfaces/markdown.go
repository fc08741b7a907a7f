package interfaces

// MarkdownParser defines how raw Markdown bytes are converted into HTML.
// internal/parserx's adapter is exercised directly by the apex package
// rather than through this interface, but it's kept as the stable contract
// a host embedding Apex as a library can implement against (a test double,
// or an alternate renderer). apex.Options has no field that accepts one.
type MarkdownParser interface {
	// Parse converts Markdown into HTML using the parser's default settings.
	Parse(markdown []byte) ([]byte, error)
	// ParseWithOptions converts Markdown into HTML using the supplied overrides.
	ParseWithOptions(markdown []byte, opts ParseOptions) ([]byte, error)
}

// ParseOptions customises Markdown parsing behaviour, keeping option names
// readable for configuration unmarshalling and CLI flags.
type ParseOptions struct {
	Extensions []string
	Sanitize   bool
	HardWraps  bool
	SafeMode   bool
}
