package preprocess

import "strings"

type criticType int

const (
	criticNone      criticType = iota
	criticAdd                  // {++text++}
	criticDel                  // {--text--}
	criticSub                  // {~~old~>new~~}
	criticHighlight            // {==text==}
	criticComment              // {>>text<<}
)

var criticMarkers = []struct {
	open  string
	close string
	typ   criticType
}{
	{"{++", "++}", criticAdd},
	{"{--", "--}", criticDel},
	{"{~~", "~~}", criticSub},
	{"{==", "==}", criticHighlight},
	{"{>>", "<<}", criticComment},
}

// ApplyCriticMarkup converts CriticMarkup ({++add++}, {--del--},
// {~~old~>new~~}, {==highlight==}, {>>comment<<}) into HTML as a raw-text
// preprocessing pass, per original_source/src/extensions/critic.c's own
// rationale: doing this before parsing (rather than walking the AST
// afterward) avoids interference from smart-typography transforms that
// would otherwise mangle the markup's punctuation.
func ApplyCriticMarkup(in []byte, opts Options, _ *Context) ([]byte, error) {
	text := string(in)
	if !strings.Contains(text, "{") {
		return in, nil
	}

	var out strings.Builder
	out.Grow(len(text))

	i := 0
	for i < len(text) {
		if text[i] != '{' {
			out.WriteByte(text[i])
			i++
			continue
		}

		matched := false
		for _, m := range criticMarkers {
			if !strings.HasPrefix(text[i:], m.open) {
				continue
			}
			closeIdx := strings.Index(text[i+len(m.open):], m.close)
			if closeIdx < 0 {
				continue
			}
			content := text[i+len(m.open) : i+len(m.open)+closeIdx]
			consumed := len(m.open) + closeIdx + len(m.close)

			var oldText, newText string
			if m.typ == criticSub {
				if sep := strings.Index(content, "~>"); sep >= 0 {
					oldText, newText = content[:sep], content[sep+2:]
				} else {
					newText = content
				}
			}

			out.WriteString(criticToHTML(m.typ, content, oldText, newText, opts.CriticMode))
			i += consumed
			matched = true
			break
		}
		if !matched {
			out.WriteByte(text[i])
			i++
		}
	}

	return []byte(out.String()), nil
}

func criticToHTML(typ criticType, content, oldText, newText string, mode CriticMode) string {
	switch mode {
	case CriticAccept:
		switch typ {
		case criticAdd, criticHighlight:
			return content
		case criticSub:
			return newText
		default: // del, comment
			return ""
		}
	case CriticReject:
		switch typ {
		case criticSub:
			return oldText
		case criticDel, criticHighlight:
			return content
		default: // add, comment
			return ""
		}
	default: // CriticMarkup
		switch typ {
		case criticAdd:
			return `<ins class="critic">` + content + `</ins>`
		case criticDel:
			return `<del class="critic">` + content + `</del>`
		case criticSub:
			if oldText != "" {
				return `<del class="critic break">` + oldText + `</del><ins class="critic break">` + newText + `</ins>`
			}
			return `<ins class="critic">` + newText + `</ins>`
		case criticHighlight:
			return `<mark class="critic">` + content + `</mark>`
		case criticComment:
			return `<span class="critic comment">` + content + `</span>`
		default:
			return ""
		}
	}
}
