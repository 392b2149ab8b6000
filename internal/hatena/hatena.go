// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package hatena converts org-mode documents into Hatena notation.
//
// A Converter scans a Document from the front. For the line at the front it
// picks the first matching rule of a fixed dispatch table, detaches the block
// that rule extracts and rewrites it. The joined output is then
// post-processed once: blank lines after headings and closing markers are
// collapsed and org links become Hatena links.
package hatena

import (
	"fmt"
	"log/slog"
	"maps"
	"strings"
)

// Converter turns org-mode lines into Hatena text. It holds no per-document
// state and may be reused across documents.
type Converter struct {
	aliases  map[string]string
	readMore bool
	logger   *slog.Logger
	rules    []rule
}

// Option configures a Converter.
type Option func(*Converter)

// WithLanguageAliases adds source-language renames on top of
// DefaultLanguageAliases. Later entries win.
func WithLanguageAliases(aliases map[string]string) Option {
	return func(c *Converter) {
		maps.Copy(c.aliases, aliases)
	}
}

// WithReadMore turns "#====" and "#=====" comment lines into Hatena read-more
// markers instead of dropping them.
func WithReadMore(enabled bool) Option {
	return func(c *Converter) {
		c.readMore = enabled
	}
}

// WithLogger sets the logger used for per-block debug output.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Converter) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// New returns a Converter configured by opts.
func New(opts ...Option) *Converter {
	c := &Converter{
		aliases: maps.Clone(DefaultLanguageAliases),
		logger:  slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(c)
	}
	c.rules = c.buildRules()
	return c
}

// Stats describes one conversion run.
type Stats struct {
	// Lines is the number of source lines.
	Lines int `json:"lines" yaml:"lines"`

	// Steps is the number of extraction steps taken.
	Steps int `json:"steps" yaml:"steps"`

	// Blocks counts extracted blocks per construct kind name.
	Blocks map[string]int `json:"blocks" yaml:"blocks"`
}

// Convert returns the Hatena rendering of lines, prefixed with a newline.
func (c *Converter) Convert(lines []string) (string, error) {
	out, _, err := c.ConvertWithStats(lines)
	return out, err
}

// ConvertWithStats is Convert plus per-kind block counts.
func (c *Converter) ConvertWithStats(lines []string) (string, Stats, error) {
	stats := Stats{Lines: len(lines), Blocks: map[string]int{}}
	doc := NewDocument(lines)
	var buf []string

	for !doc.Empty() {
		start := doc.Consumed()
		r := c.match(doc.Peek())
		block := r.extract(doc)
		if doc.Consumed() == start {
			return "", stats, fmt.Errorf("%s extraction consumed no input at line %d", r.kind, start+1)
		}
		stats.Steps++
		stats.Blocks[r.kind.String()]++
		c.logger.Debug("extracted block", "kind", r.kind, "line", start+1, "lines", len(block))

		rewritten, err := r.rewrite(block)
		if err != nil {
			return "", stats, fmt.Errorf("rewriting %s at line %d: %w", r.kind, start+1, err)
		}
		buf = append(buf, rewritten...)
	}

	return "\n" + PostProcess(strings.Join(buf, "\n")), stats, nil
}
