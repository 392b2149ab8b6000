// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package convert runs org-mode files through a converter and writes the
// Hatena output next to each source. It owns the file-level concerns the
// conversion engine leaves out: reading and decoding input, naming and
// writing output, skipping unchanged files and batch reporting.
package convert

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/pdiddy/org2hatena/internal/hatena"
	"github.com/pdiddy/org2hatena/pkg/types"
)

// stdoutName is recorded as the output of documents written to Options.Out.
const stdoutName = "-"

// Converter transforms org-mode lines into Hatena text.
// *hatena.Converter implements it.
type Converter interface {
	ConvertWithStats(lines []string) (string, hatena.Stats, error)
}

// Recorder remembers past conversions so unchanged inputs can be skipped.
// *history.Store implements it.
type Recorder interface {
	Lookup(ctx context.Context, source string) (types.ConversionRecord, bool, error)
	Record(ctx context.Context, rec types.ConversionRecord) error
}

// Options controls how files are converted and written.
type Options struct {
	// OutputExt replaces the ".org" suffix (default types.DefaultOutputExt).
	OutputExt string

	// Normalize applies NFC normalization to decoded input.
	Normalize bool

	// Out, when set, receives every converted document instead of files.
	Out io.Writer

	// History, when set, records each conversion and enables skipping.
	History Recorder

	// Force converts files even when History reports them unchanged.
	Force bool
}

// BatchResult holds the outcome of a batch conversion run.
type BatchResult struct {
	Converted int                      `json:"converted" yaml:"converted"`
	Skipped   int                      `json:"skipped" yaml:"skipped"`
	Failed    int                      `json:"failed" yaml:"failed"`
	Records   []types.ConversionRecord `json:"records" yaml:"records"`
}

// Total returns the total number of files processed.
func (r BatchResult) Total() int {
	return r.Converted + r.Skipped + r.Failed
}

// HasFailures reports whether any file failed conversion.
func (r BatchResult) HasFailures() bool {
	return r.Failed > 0
}

// OutputPath returns the destination for src: a trailing ".org" (any case)
// is replaced by ext, otherwise ext is appended. An empty ext means
// types.DefaultOutputExt.
func OutputPath(src, ext string) string {
	if ext == "" {
		ext = types.DefaultOutputExt
	}
	if strings.EqualFold(filepath.Ext(src), ".org") {
		return src[:len(src)-len(".org")] + ext
	}
	return src + ext
}

// ConvertFile converts a single org file and writes the result. Progress is
// reported on w as "converted:", "skipped:" or "failed:" lines; the returned
// record carries the outcome.
func ConvertFile(ctx context.Context, c Converter, path string, opts Options, w io.Writer) types.ConversionRecord {
	rec := types.ConversionRecord{
		Source:      path,
		Output:      OutputPath(path, opts.OutputExt),
		Status:      types.ConversionNone,
		ConvertedAt: time.Now().UTC(),
	}
	if opts.Out != nil {
		rec.Output = stdoutName
	}

	fail := func(err error) types.ConversionRecord {
		fmt.Fprintf(w, "failed:    %s (%v)\n", path, err)
		rec.Status = types.ConversionFailed
		rec.Error = err.Error()
		remember(ctx, opts.History, rec, w)
		return rec
	}

	src, err := ReadSource(path, opts.Normalize)
	rec.SHA256 = src.SHA256
	if err != nil {
		return fail(err)
	}
	rec.Lines = len(src.Lines)

	if unchanged, err := isUnchanged(ctx, opts, rec); err != nil {
		return fail(err)
	} else if unchanged {
		fmt.Fprintf(w, "skipped:   %s (unchanged)\n", path)
		rec.Status = types.ConversionSkipped
		return rec
	}

	text, stats, err := c.ConvertWithStats(src.Lines)
	if err != nil {
		return fail(fmt.Errorf("converting: %w", err))
	}
	rec.Blocks = stats.Blocks

	if opts.Out != nil {
		if _, err := io.WriteString(opts.Out, text); err != nil {
			return fail(fmt.Errorf("writing output: %w", err))
		}
	} else if err := WriteDocument(rec.Output, text); err != nil {
		return fail(err)
	}

	rec.Status = types.ConversionDone
	remember(ctx, opts.History, rec, w)
	fmt.Fprintf(w, "converted: %s -> %s\n", path, rec.Output)
	return rec
}

// ConvertBatch converts each path in order, printing per-file status and a
// summary to w. It stops early only when ctx is cancelled.
func ConvertBatch(ctx context.Context, c Converter, paths []string, opts Options, w io.Writer) (BatchResult, error) {
	var result BatchResult
	for _, p := range paths {
		select {
		case <-ctx.Done():
			return result, ctx.Err()
		default:
		}

		rec := ConvertFile(ctx, c, p, opts, w)
		result.Records = append(result.Records, rec)
		switch rec.Status {
		case types.ConversionDone:
			result.Converted++
		case types.ConversionSkipped:
			result.Skipped++
		case types.ConversionFailed:
			result.Failed++
		}
	}
	fmt.Fprintf(w, "\nBatch summary: %d converted, %d skipped, %d failed (total: %d)\n",
		result.Converted, result.Skipped, result.Failed, result.Total())
	return result, nil
}

// isUnchanged reports whether history holds a successful conversion of the
// same bytes to the same output, and that output still exists.
func isUnchanged(ctx context.Context, opts Options, rec types.ConversionRecord) (bool, error) {
	if opts.History == nil || opts.Force || opts.Out != nil {
		return false, nil
	}
	prev, ok, err := opts.History.Lookup(ctx, rec.Source)
	if err != nil {
		return false, fmt.Errorf("looking up history: %w", err)
	}
	if !ok || prev.Status != types.ConversionDone || prev.SHA256 != rec.SHA256 || prev.Output != rec.Output {
		return false, nil
	}
	_, err = os.Stat(rec.Output)
	return err == nil, nil
}

// remember stores rec in history; a storage error is reported but does not
// change the conversion outcome.
func remember(ctx context.Context, h Recorder, rec types.ConversionRecord, w io.Writer) {
	if h == nil {
		return
	}
	if err := h.Record(ctx, rec); err != nil {
		fmt.Fprintf(w, "warning: recording history for %s: %v\n", rec.Source, err)
	}
}
