package postprocess

// EmojiReplacement is a pass-through stage: Apex wires
// github.com/yuin/goldmark-emoji as a goldmark inline extension (internal/
// parserx.New, gated by Options.Emoji) rather than a literal ":name:"
// regex pass over rendered HTML, per Design Note 9's preference for
// render-hook strategies over post-render text matching wherever the AST
// is available when the replacement decision is made. This stage is kept
// as an explicit step so the chain's numbering matches spec.md §4.9's
// order even though the actual substitution already happened at render
// time.
func EmojiReplacement(html []byte, _ Options) ([]byte, error) {
	return html, nil
}
