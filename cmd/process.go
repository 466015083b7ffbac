// Package cmd — process command.
// This is the main command that orchestrates the pipeline:
// read/fetch → normalize → format code → pretty-print → render → write.
package cmd

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/spf13/cobra"

	"github.com/gaurav-prasanna/docpipe/core"
	"github.com/gaurav-prasanna/docpipe/core/codefmt"
	"github.com/gaurav-prasanna/docpipe/core/fetch"
	"github.com/gaurav-prasanna/docpipe/core/meta"
	"github.com/gaurav-prasanna/docpipe/core/normalize"
	"github.com/gaurav-prasanna/docpipe/core/output"
	"github.com/gaurav-prasanna/docpipe/core/pipeline"
	"github.com/gaurav-prasanna/docpipe/core/render"
	"github.com/gaurav-prasanna/docpipe/crawl"
)

// Flag variables.
var (
	flagHTML            bool
	flagPDF             bool
	flagMarkdown        bool
	flagJSON            bool
	flagStdout          bool
	flagOutputDir       string
	flagMeta            string
	flagAllowInlineCode bool
	flagAll             bool
	flagMaxDocs         int
)

var processCmd = &cobra.Command{
	Use:   "process <source>",
	Short: "Process one exported document",
	Long: `Process reads a Google Docs HTML export and writes the documentation-site
version in the chosen format (HTML by default, or Markdown, JSON, PDF).

<source> may be a file path, "-" for stdin, an http(s) URL, or a bare
Google Docs document id.

Examples:
  docpipe process export.html
  docpipe process 1AbCdEfGhIjKlMnOpQrStUvWxYz --markdown --meta docs.yaml
  docpipe process https://docs.google.com/document/d/ID/edit --json --output_dir ./out
  cat export.html | docpipe process - --stdout
  docpipe process 1AbCdEfGhIjKlMnOpQrStUvWxYz --all --meta docs.yaml --output_dir ./site`,
	Args: cobra.ExactArgs(1),
	RunE: runProcess,
}

func init() {
	rootCmd.AddCommand(processCmd)

	// Output format flags (mutually exclusive).
	processCmd.Flags().BoolVar(&flagHTML, "html", false, "Output site HTML (default)")
	processCmd.Flags().BoolVar(&flagMarkdown, "markdown", false, "Output Markdown")
	processCmd.Flags().BoolVar(&flagJSON, "json", false, "Output structured JSON")
	processCmd.Flags().BoolVar(&flagPDF, "pdf", false, "Output PDF")

	processCmd.Flags().StringVar(&flagOutputDir, "output_dir", "", "Output directory (default: current directory)")
	processCmd.Flags().BoolVar(&flagStdout, "stdout", false, "Write the result to stdout instead of a file")
	processCmd.Flags().StringVar(&flagMeta, "meta", cfg.MetaIndex, "YAML document index used to rewrite links between documents")
	processCmd.Flags().BoolVar(&flagAllowInlineCode, "allow-inline-code", cfg.AllowInlineCode, "Render <%- %> directives instead of stripping them")

	// Crawl mode.
	processCmd.Flags().BoolVar(&flagAll, "all", false, "Also process every document linked from <source>")
	processCmd.Flags().IntVar(&flagMaxDocs, "max_docs", crawl.DefaultMaxDocs, "Maximum number of documents processed with --all")
}

func runProcess(cmd *cobra.Command, args []string) error {
	source := args[0]
	log := newLogger()

	if err := validateFlags(source); err != nil {
		return err
	}
	renderer := selectRenderer()

	resolver, err := loadResolver(flagMeta, log)
	if err != nil {
		return err
	}

	processor := pipeline.New(
		normalize.New(resolver, log),
		codefmt.New(codefmt.Options{AllowInlineCode: flagAllowInlineCode}),
		pipeline.WithLogger(log),
	)

	if flagAll {
		return runAll(cmd, source, processor, renderer, resolver, log)
	}
	return runOnly(cmd, source, processor, renderer, resolver, log)
}

// runOnly processes a single source through the pipeline.
func runOnly(
	cmd *cobra.Command,
	source string,
	processor *pipeline.Processor,
	renderer core.Renderer,
	resolver core.MetaResolver,
	log *slog.Logger,
) error {
	raw, err := readSource(cmd.Context(), source, cmd.InOrStdin())
	if err != nil {
		return err
	}

	data, docMeta, err := processDocument(source, raw, processor, renderer, resolver, log)
	if err != nil {
		return err
	}

	if flagStdout {
		_, err := cmd.OutOrStdout().Write(data)
		return err
	}

	writer, err := output.New(flagOutputDir)
	if err != nil {
		return fmt.Errorf("initializing output writer: %w", err)
	}
	path, err := writer.Write(source, docMeta, data, renderer.Extension())
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "✓ Written: %s\n", path)
	return nil
}

// runAll discovers every document linked from source and processes each.
func runAll(
	cmd *cobra.Command,
	source string,
	processor *pipeline.Processor,
	renderer core.Renderer,
	resolver core.MetaResolver,
	log *slog.Logger,
) error {
	out := cmd.OutOrStdout()

	startID := source
	if id, ok := fetch.DocIDFromURL(source); ok {
		startID = id
	}

	writer, err := output.New(flagOutputDir)
	if err != nil {
		return fmt.Errorf("initializing output writer: %w", err)
	}

	fmt.Fprintf(out, "Discovering documents from %s...\n", startID)

	fetcher := fetch.New(fetch.WithTimeout(cfg.FetchTimeout))
	docs, err := crawl.Discover(cmd.Context(), startID, fetcher, flagMaxDocs, log)
	if err != nil {
		return fmt.Errorf("discovering documents: %w", err)
	}

	fmt.Fprintf(out, "Found %d documents to process\n", len(docs))

	var errCount int
	for i, doc := range docs {
		fmt.Fprintf(out, "[%d/%d] Processing %s\n", i+1, len(docs), doc.ID)

		data, docMeta, err := processDocument(doc.ID, doc.HTML, processor, renderer, resolver, log)
		if err != nil {
			fmt.Fprintf(cmd.ErrOrStderr(), "  ✗ Error: %v\n", err)
			errCount++
			continue
		}

		path, err := writer.Write(doc.ID, docMeta, data, renderer.Extension())
		if err != nil {
			fmt.Fprintf(cmd.ErrOrStderr(), "  ✗ Write error: %v\n", err)
			errCount++
			continue
		}
		fmt.Fprintf(out, "  ✓ Written: %s\n", path)
	}

	if errCount > 0 {
		return fmt.Errorf("%d/%d documents failed", errCount, len(docs))
	}
	return nil
}

// processDocument runs one export through the pipeline and the renderer.
func processDocument(
	source, raw string,
	processor *pipeline.Processor,
	renderer core.Renderer,
	resolver core.MetaResolver,
	log *slog.Logger,
) ([]byte, core.DocMeta, error) {
	fragment, err := processor.ProcessReader(strings.NewReader(raw))
	if err != nil {
		return nil, core.DocMeta{}, fmt.Errorf("processing %s: %w", source, err)
	}

	docMeta := buildMetadata(source, raw, resolver)
	log.Debug("document metadata", "id", docMeta.ID, "path", docMeta.Path, "title", docMeta.Title)

	data, err := renderer.Render(fragment, docMeta)
	if err != nil {
		return nil, core.DocMeta{}, fmt.Errorf("render: %w", err)
	}
	return data, docMeta, nil
}

// readSource loads the export HTML from stdin, a URL/doc id, or a file.
func readSource(ctx context.Context, source string, stdin io.Reader) (string, error) {
	switch {
	case source == "-":
		data, err := io.ReadAll(stdin)
		if err != nil {
			return "", fmt.Errorf("reading stdin: %w", err)
		}
		return string(data), nil
	case fetch.IsURL(source) || fetch.IsDocID(source):
		result, err := fetch.New(fetch.WithTimeout(cfg.FetchTimeout)).Fetch(ctx, source)
		if err != nil {
			return "", fmt.Errorf("fetch: %w", err)
		}
		return result.HTML, nil
	default:
		data, err := os.ReadFile(source)
		if err != nil {
			return "", fmt.Errorf("reading %s: %w", source, err)
		}
		return string(data), nil
	}
}

// loadResolver opens the document index, or returns a resolver that never
// matches when no index is configured.
func loadResolver(path string, log *slog.Logger) (core.MetaResolver, error) {
	if path == "" {
		return meta.Nop{}, nil
	}
	idx, err := meta.LoadIndex(path)
	if err != nil {
		return nil, err
	}
	log.Debug("loaded document index", "path", path, "documents", idx.Len())
	return idx, nil
}

// buildMetadata combines the index entry for the source document (if any)
// with the export's <title>.
func buildMetadata(source, raw string, resolver core.MetaResolver) core.DocMeta {
	var id string
	switch {
	case fetch.IsDocID(source):
		id = source
	case fetch.IsURL(source):
		id, _ = fetch.DocIDFromURL(source)
	}

	var m core.DocMeta
	if id != "" {
		m, _ = resolver.ResolveMeta(id)
		m.ID = id
	}
	if m.Title == "" {
		m.Title = extractTitle(raw)
	}
	return m
}

// extractTitle pulls the <title> content from raw HTML.
func extractTitle(raw string) string {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(raw))
	if err != nil {
		return ""
	}
	return strings.TrimSpace(doc.Find("title").First().Text())
}

// validateFlags checks that at most one output format is chosen and that
// --all is only combined with a document source.
func validateFlags(source string) error {
	if flagAll {
		if flagStdout {
			return fmt.Errorf("--all and --stdout are mutually exclusive")
		}
		if _, ok := fetch.DocIDFromURL(source); !ok && !fetch.IsDocID(source) {
			return fmt.Errorf("--all needs a document id or Google Docs URL, got %q", source)
		}
	}

	formatCount := 0
	for _, set := range []bool{flagHTML, flagMarkdown, flagJSON, flagPDF} {
		if set {
			formatCount++
		}
	}
	if formatCount > 1 {
		return fmt.Errorf("only one output format allowed per run (got %d)", formatCount)
	}
	return nil
}

// selectRenderer creates the appropriate Renderer based on flags.
func selectRenderer() core.Renderer {
	switch {
	case flagMarkdown:
		return render.NewMarkdownRenderer()
	case flagJSON:
		return render.NewJSONRenderer()
	case flagPDF:
		return render.NewPDFRenderer()
	default:
		return render.NewHTMLRenderer()
	}
}
