// Package postprocess implements Apex's HTML post-processor chain: ordered
// HTML→HTML stages that run after the attribute-injected render, in the
// fixed order spec.md's table mandates. Each stage is a pure function over
// a byte slice; per §5's buffer-ownership rule, every stage returns a new
// slice rather than mutating its input in place.
package postprocess

import (
	"github.com/apexmd/apex/internal/docwrap"
	"github.com/apexmd/apex/internal/metadata"
)

// Options controls which conditional stages run and supplies the data a
// stage needs beyond the HTML buffer itself (the metadata store for
// substitution, the abbreviation table for wrapping, and so on).
type Options struct {
	HeaderAnchors     bool
	TOC               bool
	Standalone        bool
	PrettyPrint       bool
	AutoMedia         bool
	ImageCaptions     bool
	QuoteLanguage     string // empty disables quote-language adjustment
	BaseHeaderLevel   int    // 0 or 1 means no shift
	ARIA              bool
	HRPageBreak       bool
	AbbrevDefinitions map[string]string
	Metadata          *metadata.Store
	HeaderIDFormat    int
	MediaSearchPaths  []string
	DocWrap           docwrap.Options
}

// Stage is one HTML→HTML post-processing pass.
type Stage func(html []byte, opts Options) ([]byte, error)

type namedStage struct {
	name string
	fn   Stage
}

// Chain runs an ordered, named sequence of Stages.
type Chain struct {
	stages []namedStage
}

// DefaultChain returns the post-processor chain in spec.md §4.9's order.
// Stages gated by a feature flag check opts themselves and return the input
// unchanged when disabled, so the chain's ordering never depends on which
// flags are set.
func DefaultChain() *Chain {
	c := &Chain{}
	c.add("table_attributes", TableAttributes)
	c.add("header_ids", HeaderIDs)
	c.add("toc_expansion", TOCExpansion)
	c.add("metadata_substitution", MetadataSubstitution)
	c.add("abbreviation_wrapping", AbbreviationWrapping)
	c.add("emoji_replacement", EmojiReplacement)
	c.add("tag_spacing_cleanup", TagSpacingCleanup)
	c.add("relaxed_table_theadbody", RelaxedTableTheadToTbody)
	c.add("table_blank_lines", TableBlankLineRemoval)
	c.add("table_separator_rows", TableSeparatorRowRemoval)
	c.add("auto_media_expansion", AutoMediaExpansion)
	c.add("image_captions", ImageCaptionWrapping)
	c.add("quote_language", QuoteLanguageAdjustment)
	c.add("base_header_level", BaseHeaderLevelShift)
	c.add("aria_labels", ARIALabels)
	c.add("hr_page_break", HRPageBreak)
	c.add("standalone_wrap", StandaloneWrap)
	c.add("pretty_print", PrettyPrint)
	return c
}

func (c *Chain) add(name string, fn Stage) {
	c.stages = append(c.stages, namedStage{name: name, fn: fn})
}

// Run executes every stage in order, threading the output of one into the
// input of the next. A stage error aborts the chain and is returned with
// the offending stage's name, but per §7 no stage in this package actually
// returns a non-nil error for malformed input — only for impossible
// allocation failures — so this primarily documents the contract.
func (c *Chain) Run(html []byte, opts Options) ([]byte, error) {
	out := html
	for _, s := range c.stages {
		next, err := s.fn(out, opts)
		if err != nil {
			return nil, &StageError{Stage: s.name, Err: err}
		}
		out = next
	}
	return out, nil
}

// StageError reports which named stage failed.
type StageError struct {
	Stage string
	Err   error
}

func (e *StageError) Error() string { return "postprocess: stage " + e.Stage + ": " + e.Err.Error() }
func (e *StageError) Unwrap() error { return e.Err }
