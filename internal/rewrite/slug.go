package rewrite

import (
	"strings"
	"unicode"
)

// IDFormat selects which of the three header-slug dialects GenerateHeaderID
// uses. Grounded byte-for-byte on
// original_source/src/extensions/header_ids.c's apex_generate_header_id.
type IDFormat int

const (
	// FormatGFM mirrors GitHub's heading-anchor algorithm: diacritics fold
	// to ASCII, runs of whitespace/dashes collapse to a single dash, all
	// other punctuation is dropped, and leading/trailing dashes are
	// trimmed.
	FormatGFM IDFormat = iota
	// FormatMMD mirrors MultiMarkdown: diacritics and internal dashes are
	// preserved, spaces and ASCII punctuation are stripped (not replaced),
	// and the result is lowercased. Leading/trailing dashes survive.
	FormatMMD
	// FormatKramdown mirrors Kramdown: every space becomes a dash (without
	// collapsing runs), interior punctuation becomes a dash, trailing
	// punctuation is removed, and diacritics/em-dash/en-dash are stripped
	// outright. Only leading dashes are trimmed.
	FormatKramdown
)

// normalizeChar folds a single Latin-1 Supplement (U+00C0-U+00FF) or
// listed Latin Extended-A diacritic to its closest ASCII letter, the same
// lookup original_source's normalize_char performs. Other characters pass
// through unchanged.
func normalizeChar(r rune) rune {
	switch {
	case r >= 'À' && r <= 'Å', r == 'Ā', r == 'Ă', r == 'Ą':
		return 'A'
	case r == 'Æ':
		return 'A'
	case r == 'Ç', r == 'Ć', r == 'Č':
		return 'C'
	case r >= 'È' && r <= 'Ë', r == 'Ē', r == 'Ĕ', r == 'Ė', r == 'Ę', r == 'Ě':
		return 'E'
	case r >= 'Ì' && r <= 'Ï', r == 'Ī', r == 'Ĭ', r == 'Į':
		return 'I'
	case r == 'Ñ', r == 'Ń', r == 'Ň':
		return 'N'
	case r >= 'Ò' && r <= 'Ö', r == 'Ø', r == 'Ō', r == 'Ŏ', r == 'Ő':
		return 'O'
	case r >= 'Ù' && r <= 'Ü', r == 'Ū', r == 'Ŭ', r == 'Ů', r == 'Ű':
		return 'U'
	case r == 'Ý', r == 'Ÿ':
		return 'Y'
	case r == 'Ç':
		return 'C'
	case r == 'ß':
		return 's'
	case r >= 'à' && r <= 'å', r == 'ā', r == 'ă', r == 'ą':
		return 'a'
	case r == 'æ':
		return 'a'
	case r == 'ç', r == 'ć', r == 'č':
		return 'c'
	case r >= 'è' && r <= 'ë', r == 'ē', r == 'ĕ', r == 'ė', r == 'ę', r == 'ě':
		return 'e'
	case r >= 'ì' && r <= 'ï', r == 'ī', r == 'ĭ', r == 'į':
		return 'i'
	case r == 'ñ', r == 'ń', r == 'ň':
		return 'n'
	case r >= 'ò' && r <= 'ö', r == 'ø', r == 'ō', r == 'ŏ', r == 'ő':
		return 'o'
	case r >= 'ù' && r <= 'ü', r == 'ū', r == 'ŭ', r == 'ů', r == 'ű':
		return 'u'
	case r == 'ý', r == 'ÿ':
		return 'y'
	default:
		return r
	}
}

// GenerateHeaderID converts heading text into an anchor slug for format.
// An empty result (e.g. a heading made only of punctuation) falls back to
// the literal string "header", matching the original's empty-result guard.
func GenerateHeaderID(text string, format IDFormat) string {
	var id string
	switch format {
	case FormatMMD:
		id = slugMMD(text)
	case FormatKramdown:
		id = slugKramdown(text)
	default:
		id = slugGFM(text)
	}
	if id == "" {
		return "header"
	}
	return id
}

func slugGFM(text string) string {
	var b strings.Builder
	lastDash := false
	for _, r := range text {
		r = normalizeChar(r)
		switch {
		case unicode.IsSpace(r) || r == '-':
			if !lastDash && b.Len() > 0 {
				b.WriteByte('-')
				lastDash = true
			}
		case r < utf8RuneMax && (unicode.IsLetter(r) || unicode.IsDigit(r)):
			b.WriteRune(unicode.ToLower(r))
			lastDash = false
		case unicode.IsLetter(r) || unicode.IsDigit(r):
			// Non-Latin letters/digits survive GFM's anchor algorithm too.
			b.WriteRune(unicode.ToLower(r))
			lastDash = false
		default:
			// drop punctuation
		}
	}
	return strings.Trim(b.String(), "-")
}

func slugMMD(text string) string {
	var b strings.Builder
	for _, r := range text {
		switch {
		case unicode.IsSpace(r):
			// spaces are stripped entirely, not replaced
			continue
		case r == '-':
			b.WriteByte('-')
		case isASCIIPunct(r):
			continue
		default:
			b.WriteRune(unicode.ToLower(r))
		}
	}
	return b.String()
}

func slugKramdown(text string) string {
	var b strings.Builder
	for _, r := range text {
		switch {
		case r == '—' || r == '–':
			// em-dash/en-dash stripped outright
			continue
		case unicode.IsSpace(r):
			b.WriteByte('-')
		case isASCIIPunct(r):
			b.WriteByte('-')
		default:
			if normalizeChar(r) != r {
				// diacritics stripped outright in Kramdown mode
				continue
			}
			b.WriteRune(unicode.ToLower(r))
		}
	}
	out := strings.TrimLeft(b.String(), "-")
	out = strings.TrimRight(out, "-._")
	return out
}

func isASCIIPunct(r rune) bool {
	return r < utf8RuneMax && unicode.IsPunct(r)
}

const utf8RuneMax = 0x80
