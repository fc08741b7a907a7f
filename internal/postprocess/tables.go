package postprocess

import (
	"bytes"
	"regexp"
)

// tableBlockPattern isolates each <table>...</table> block so the
// table-shaped stages only ever look inside table markup, never at
// surrounding prose that happens to contain similar text.
var tableBlockPattern = regexp.MustCompile(`(?s)<table[^>]*>.*?</table>`)

// TableAttributes is a pass-through stage: spans and figure-caption
// wrapping are already attached by internal/parserx/ext's advanced-table
// transformer and internal/inject's tableFigureRenderer during the render
// pass (§4.6/§4.8), so by the time HTML reaches the post-processor chain
// rowspan/colspan/data-caption are already literal attributes in the
// markup. This stage exists to keep the chain's stage numbering aligned
// with spec.md §4.9's order even though Apex's render-hook strategy moved
// the actual work earlier in the pipeline.
func TableAttributes(html []byte, _ Options) ([]byte, error) {
	return html, nil
}

var blankLinePattern = regexp.MustCompile(`(?m)^[ \t]*\r?\n`)

// TableBlankLineRemoval strips lines that are pure whitespace between
// <table> and </table>.
func TableBlankLineRemoval(html []byte, _ Options) ([]byte, error) {
	return replaceWithinTables(html, func(block []byte) []byte {
		return blankLinePattern.ReplaceAll(block, nil)
	}), nil
}

var separatorRowPattern = regexp.MustCompile(`(?s)<tr>\s*((<t[dh][^>]*>[\s:\-—–]*</t[dh]>\s*)+)</tr>`)

// TableSeparatorRowRemoval removes rows whose every cell contains only em
// dashes, alignment colons, whitespace, and tags — artifacts of smart
// typography hitting a Markdown "---" separator line that leaked into
// rendered output.
func TableSeparatorRowRemoval(html []byte, _ Options) ([]byte, error) {
	return replaceWithinTables(html, func(block []byte) []byte {
		return separatorRowPattern.ReplaceAll(block, nil)
	}), nil
}

var (
	theadPattern  = regexp.MustCompile(`(?s)<thead>\s*<tr>(.*?)</tr>\s*</thead>`)
	tbodyPattern  = regexp.MustCompile(`(?s)<tbody>(.*?)</tbody>`)
	thCellPattern = regexp.MustCompile(`(?s)<th([^>]*)>(.*?)</th>`)
)

// RelaxedTableTheadToTbody converts a table's <thead><tr><th>...</th></tr>
// </thead> into a leading <tbody><tr><td>...</td></tr> row when the
// table's body contains no em-dash-only separator row, i.e. the markup
// came from a "relaxed table" (a run of pipe lines with no "---"
// separator) that goldmark's stock table parser still treated the first
// row as a header. Tables whose generated thead cells are all empty have
// the whole thead dropped instead.
func RelaxedTableTheadToTbody(html []byte, _ Options) ([]byte, error) {
	return replaceWithinTables(html, func(block []byte) []byte {
		bodyMatch := tbodyPattern.FindSubmatch(block)
		if bodyMatch != nil && separatorRowPattern.Match(bodyMatch[0]) {
			return block
		}

		theadMatch := theadPattern.FindSubmatchIndex(block)
		if theadMatch == nil {
			return block
		}
		rowInner := block[theadMatch[2]:theadMatch[3]]

		cells := thCellPattern.FindAllSubmatch(rowInner, -1)
		allEmpty := true
		for _, c := range cells {
			if len(bytes.TrimSpace(c[2])) != 0 {
				allEmpty = false
				break
			}
		}

		var replacement []byte
		if allEmpty {
			replacement = nil
		} else {
			tdRow := thCellPattern.ReplaceAll(rowInner, []byte("<td$1>$2</td>"))
			replacement = append([]byte("<tbody><tr>"), tdRow...)
			replacement = append(replacement, []byte("</tr></tbody>")...)
		}

		out := append([]byte{}, block[:theadMatch[0]]...)
		out = append(out, replacement...)
		out = append(out, block[theadMatch[1]:]...)
		return out
	}), nil
}

// replaceWithinTables applies fn to the content of every <table>...</table>
// block found in html, leaving everything outside tables untouched.
func replaceWithinTables(html []byte, fn func([]byte) []byte) []byte {
	return tableBlockPattern.ReplaceAllFunc(html, fn)
}
