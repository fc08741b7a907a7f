// Package cli wires Apex's command-line surface on top of cobra, the way
// the reference CLIs in this repo's retrieval pack build their command
// trees: per-command constructor functions assembled by the Root
// constructor, with flags bound to local variables rather than threaded
// through context.
package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/apexmd/apex"
)

var modeNames = map[string]apex.Mode{
	"commonmark":    apex.ModeCommonMark,
	"gfm":           apex.ModeGFM,
	"multimarkdown": apex.ModeMultiMarkdown,
	"kramdown":      apex.ModeKramdown,
	"full":          apex.ModeFull,
}

// Root builds the apex command tree: `apex convert` and `apex version`.
func Root() *cobra.Command {
	root := &cobra.Command{
		Use:   "apex",
		Short: "Apex converts Markdown to HTML across several dialects",
		Long: `Apex unifies CommonMark, GFM, MultiMarkdown, and Kramdown-flavored
Markdown behind a single configurable converter.`,
	}

	root.AddCommand(newConvertCmd())
	root.AddCommand(newVersionCmd())
	return root
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the Apex library version",
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Fprintln(cmd.OutOrStdout(), apex.Version())
			return nil
		},
	}
}

type convertFlags struct {
	mode            string
	input           string
	output          string
	standalone      bool
	prettyPrint     bool
	safeMode        bool
	toc             bool
	headerAnchors   bool
	syntaxHighlight bool
	highlightStyle  string
	title           string
	language        string
}

func newConvertCmd() *cobra.Command {
	flags := &convertFlags{}

	cmd := &cobra.Command{
		Use:   "convert [file]",
		Short: "Convert a Markdown file (or stdin) to HTML",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := flags.input
			if len(args) == 1 {
				path = args[0]
			}
			return runConvert(cmd, path, flags)
		},
	}

	cmd.Flags().StringVarP(&flags.input, "file", "f", "-", "Markdown file to convert (\"-\" for stdin)")
	cmd.Flags().StringVarP(&flags.output, "out", "o", "-", "Destination file (\"-\" for stdout)")
	cmd.Flags().StringVarP(&flags.mode, "mode", "m", "gfm", "Dialect preset: commonmark, gfm, multimarkdown, kramdown, full")
	cmd.Flags().BoolVar(&flags.standalone, "standalone", false, "Wrap output in a complete HTML document")
	cmd.Flags().BoolVar(&flags.prettyPrint, "pretty", false, "Pretty-print the rendered HTML")
	cmd.Flags().BoolVar(&flags.safeMode, "safe", false, "Sanitize rendered HTML and disable raw HTML passthrough")
	cmd.Flags().BoolVar(&flags.toc, "toc", false, "Inject a table of contents")
	cmd.Flags().BoolVar(&flags.headerAnchors, "header-anchors", false, "Add anchor links to headings")
	cmd.Flags().BoolVar(&flags.syntaxHighlight, "highlight", false, "Syntax-highlight fenced code blocks")
	cmd.Flags().StringVar(&flags.highlightStyle, "highlight-style", "", "chroma style name for --highlight")
	cmd.Flags().StringVar(&flags.title, "title", "", "Document title for --standalone")
	cmd.Flags().StringVar(&flags.language, "lang", "", "Document language for --standalone")

	return cmd
}

func runConvert(cmd *cobra.Command, path string, flags *convertFlags) error {
	mode, ok := modeNames[flags.mode]
	if !ok {
		return fmt.Errorf("unknown mode %q", flags.mode)
	}

	source, err := readInput(cmd, path)
	if err != nil {
		return fmt.Errorf("read input: %w", err)
	}

	opts := apex.ForMode(mode)
	opts.Standalone = flags.standalone
	opts.PrettyPrint = flags.prettyPrint
	opts.SafeMode = flags.safeMode
	opts.TOC = flags.toc
	opts.HeaderAnchors = flags.headerAnchors
	opts.SyntaxHighlight = flags.syntaxHighlight
	opts.HighlightStyle = flags.highlightStyle
	opts.DocWrap.Title = flags.title
	opts.DocWrap.Language = flags.language

	out, err := apex.Convert(source, opts)
	if err != nil {
		return fmt.Errorf("convert: %w", err)
	}

	return writeOutput(cmd, flags.output, out)
}

func readInput(cmd *cobra.Command, path string) ([]byte, error) {
	if path == "" || path == "-" {
		return io.ReadAll(cmd.InOrStdin())
	}
	return os.ReadFile(path)
}

func writeOutput(cmd *cobra.Command, path string, content []byte) error {
	if path == "" || path == "-" {
		_, err := cmd.OutOrStdout().Write(content)
		return err
	}
	return os.WriteFile(path, content, 0o644)
}
