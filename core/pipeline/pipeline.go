// Package pipeline runs the full export-to-site transformation:
// normalize (DOM level) → format code (string level) → pretty-print.
package pipeline

import (
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/gaurav-prasanna/docpipe/core"
	"github.com/gaurav-prasanna/docpipe/core/pretty"
)

// Processor holds the stages of the pipeline. It keeps no state between
// calls and is safe for concurrent use if its stages are.
type Processor struct {
	normalizer core.Normalizer
	formatter  core.CodeFormatter
	log        *slog.Logger
}

// Option configures a Processor.
type Option func(*Processor)

// WithLogger sets the logger used for per-document debug output.
func WithLogger(log *slog.Logger) Option {
	return func(p *Processor) {
		if log != nil {
			p.log = log
		}
	}
}

// New creates a Processor from its two stages.
func New(normalizer core.Normalizer, formatter core.CodeFormatter, opts ...Option) *Processor {
	p := &Processor{
		normalizer: normalizer,
		formatter:  formatter,
		log:        slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Process turns an exported document into the pretty-printed site fragment.
// Pattern mismatches never fail; only the HTML engine can return an error.
func (p *Processor) Process(src string) (string, error) {
	start := time.Now()

	normalized, err := p.normalizer.Normalize(src)
	if err != nil {
		return "", fmt.Errorf("normalize: %w", err)
	}

	formatted := p.formatter.Format(normalized)

	out, err := pretty.String(formatted)
	if err != nil {
		return "", fmt.Errorf("pretty-printing: %w", err)
	}

	p.log.Debug("processed document",
		"input_bytes", len(src),
		"output_bytes", len(out),
		"duration_ms", time.Since(start).Milliseconds(),
	)
	return out, nil
}

// ProcessReader reads the whole document from r and processes it.
func (p *Processor) ProcessReader(r io.Reader) (string, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return "", fmt.Errorf("reading document: %w", err)
	}
	if strings.TrimSpace(string(data)) == "" {
		return "", core.ErrEmptySource
	}
	return p.Process(string(data))
}
