package postprocess

import (
	"os"
	"path/filepath"
	"regexp"
	"strings"
)

var imgTagPattern = regexp.MustCompile(`<img\s+([^>]*?)\s*/?>`)
var srcAttrPattern = regexp.MustCompile(`src="([^"]*)"`)
var altAttrPattern = regexp.MustCompile(`alt="([^"]*)"`)
var titleAttrPattern = regexp.MustCompile(`title="([^"]*)"`)
var captionAttrPattern = regexp.MustCompile(`caption="([^"]*)"`)

var retinaSuffixes = []string{"@2x", "@3x"}
var modernFormats = []string{".webp", ".avif"}
var videoFormats = []string{".mp4", ".webm", ".ogv"}

// AutoMediaExpansion discovers retina (@2x/@3x), modern-format (.webp/
// .avif), and video-alternative siblings of a local <img> source on disk
// and rewrites the tag into a <picture>/<video> element offering them,
// honoring the original's resolution order (modern format first, retina
// next, then the literal source). Retina siblings are offered through a
// srcset on the inner <img>. Remote (http/https) and data: sources are left
// untouched; an <img> already inside a <picture> or <video> is not
// recognized as such and is expanded like any other.
func AutoMediaExpansion(html []byte, opts Options) ([]byte, error) {
	if !opts.AutoMedia {
		return html, nil
	}

	out := imgTagPattern.ReplaceAllFunc(html, func(tag []byte) []byte {
		srcMatch := srcAttrPattern.FindSubmatch(tag)
		if srcMatch == nil {
			return tag
		}
		src := string(srcMatch[1])
		if strings.HasPrefix(src, "http://") || strings.HasPrefix(src, "https://") || strings.HasPrefix(src, "data:") {
			return tag
		}

		alt := ""
		if m := altAttrPattern.FindSubmatch(tag); m != nil {
			alt = string(m[1])
		}

		sources := discoverMediaAlternatives(src, opts.MediaSearchPaths)
		if len(sources) == 0 {
			return tag
		}

		var b strings.Builder
		if hasVideoAlternative(sources) {
			b.WriteString(`<video controls>`)
			for _, s := range sources {
				if isVideoFormat(s) {
					b.WriteString(`<source src="` + s + `">`)
				}
			}
			b.WriteString(`</video>`)
			return []byte(b.String())
		}

		b.WriteString("<picture>")
		for _, s := range sources {
			if isModernFormat(s) {
				b.WriteString(`<source srcset="` + s + `" type="image/` + strings.TrimPrefix(filepath.Ext(s), ".") + `">`)
			}
		}
		var retina []string
		for _, s := range sources {
			for _, suffix := range retinaSuffixes {
				if strings.HasSuffix(strings.TrimSuffix(s, filepath.Ext(s)), suffix) {
					retina = append(retina, s+" "+strings.TrimPrefix(suffix, "@"))
				}
			}
		}
		srcset := ""
		if len(retina) > 0 {
			srcset = ` srcset="` + src + ` 1x, ` + strings.Join(retina, ", ") + `"`
		}
		b.WriteString(`<img src="` + src + `"` + srcset + ` alt="` + alt + `">`)
		b.WriteString("</picture>")
		return []byte(b.String())
	})
	return out, nil
}

// discoverMediaAlternatives looks for @2x/@3x, .webp/.avif, and video
// siblings of src within searchPaths (or src's own directory when
// searchPaths is empty), returning any that exist on disk.
func discoverMediaAlternatives(src string, searchPaths []string) []string {
	dirs := searchPaths
	if len(dirs) == 0 {
		dirs = []string{filepath.Dir(src)}
	}

	base := filepath.Base(src)
	ext := filepath.Ext(base)
	stem := strings.TrimSuffix(base, ext)

	var found []string
	for _, dir := range dirs {
		for _, suffix := range retinaSuffixes {
			candidate := filepath.Join(dir, stem+suffix+ext)
			if fileExists(candidate) {
				found = append(found, candidate)
			}
		}
		for _, modExt := range modernFormats {
			candidate := filepath.Join(dir, stem+modExt)
			if fileExists(candidate) {
				found = append(found, candidate)
			}
		}
		for _, vidExt := range videoFormats {
			candidate := filepath.Join(dir, stem+vidExt)
			if fileExists(candidate) {
				found = append(found, candidate)
			}
		}
	}
	return found
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

func hasVideoAlternative(sources []string) bool {
	for _, s := range sources {
		if isVideoFormat(s) {
			return true
		}
	}
	return false
}

func isVideoFormat(s string) bool {
	ext := filepath.Ext(s)
	for _, v := range videoFormats {
		if ext == v {
			return true
		}
	}
	return false
}

func isModernFormat(s string) bool {
	ext := filepath.Ext(s)
	for _, v := range modernFormats {
		if ext == v {
			return true
		}
	}
	return false
}

// ImageCaptionWrapping converts an <img> carrying alt/title/caption="…"
// into <figure><img><figcaption>…</figcaption></figure>, preferring an
// explicit caption="" attribute over title over alt.
func ImageCaptionWrapping(html []byte, opts Options) ([]byte, error) {
	if !opts.ImageCaptions {
		return html, nil
	}

	out := imgTagPattern.ReplaceAllFunc(html, func(tag []byte) []byte {
		caption := ""
		if m := captionAttrPattern.FindSubmatch(tag); m != nil {
			caption = string(m[1])
		} else if m := titleAttrPattern.FindSubmatch(tag); m != nil {
			caption = string(m[1])
		} else if m := altAttrPattern.FindSubmatch(tag); m != nil {
			caption = string(m[1])
		}
		if caption == "" {
			return tag
		}

		img := captionAttrPattern.ReplaceAll(tag, nil)
		return []byte("<figure>" + string(img) + "<figcaption>" + caption + "</figcaption></figure>")
	})
	return out, nil
}
