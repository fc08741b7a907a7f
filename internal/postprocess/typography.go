package postprocess

import "strings"

// quoteStyles maps a language tag to its [open-double, close-double,
// open-single, close-single] quotation mark set. Only the languages
// whose guillemet/low-quote conventions differ meaningfully from English
// curly quotes are listed; unlisted languages fall back to the curly
// quotes goldmark's smart-typography pass already produced.
var quoteStyles = map[string][4]string{
	"de": {"„", "“", "‚", "‘"},
	"fr": {"« ", " »", "‹ ", " ›"},
	"ru": {"«", "»", "„", "“"},
	"pl": {"„", "”", "‚", "‘"},
	"es": {"«", "»", "“", "”"},
	"da": {"„", "“", "‚", "‘"},
}

const (
	ldquo = "“"
	rdquo = "”"
	lsquo = "‘"
	rsquo = "’"
)

// QuoteLanguageAdjustment remaps ASCII entity and Unicode curly quotes to
// the target language's guillemets/low quotes. A language with no entry
// in quoteStyles (including the zero value) leaves the buffer untouched.
func QuoteLanguageAdjustment(html []byte, opts Options) ([]byte, error) {
	style, ok := quoteStyles[opts.QuoteLanguage]
	if !ok {
		return html, nil
	}

	s := string(html)
	replacer := strings.NewReplacer(
		"&ldquo;", style[0], ldquo, style[0],
		"&rdquo;", style[1], rdquo, style[1],
		"&lsquo;", style[2], lsquo, style[2],
		"&rsquo;", style[3], rsquo, style[3],
	)
	return []byte(replacer.Replace(s)), nil
}
