package postprocess

import "regexp"

var headerTagOnlyPattern = regexp.MustCompile(`</?h([1-6])`)

// BaseHeaderLevelShift adds an offset of Options.BaseHeaderLevel-1 to every
// <hM>/</hM> tag, clamping the result to h6. A BaseHeaderLevel of 0 or 1
// means "no shift" and the buffer passes through unchanged.
func BaseHeaderLevelShift(html []byte, opts Options) ([]byte, error) {
	if opts.BaseHeaderLevel <= 1 {
		return html, nil
	}
	offset := opts.BaseHeaderLevel - 1

	out := headerTagOnlyPattern.ReplaceAllFunc(html, func(m []byte) []byte {
		level := int(m[len(m)-1] - '0')
		level += offset
		if level > 6 {
			level = 6
		}
		prefix := m[:len(m)-1]
		return append(append([]byte{}, prefix...), byte('0'+level))
	})
	return out, nil
}
