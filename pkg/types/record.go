// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import "time"

// ConversionStatus indicates the outcome of converting one source file.
type ConversionStatus string

const (
	ConversionNone    ConversionStatus = "none"
	ConversionDone    ConversionStatus = "converted"
	ConversionSkipped ConversionStatus = "skipped"
	ConversionFailed  ConversionStatus = "failed"
)

// ConversionRecord describes one source file and what became of it.
type ConversionRecord struct {
	// Source is the org-mode input path.
	Source string `json:"source" yaml:"source"`

	// Output is the path the Hatena text was written to, or "-" for stdout.
	Output string `json:"output" yaml:"output"`

	// SHA256 is the hex digest of the raw input bytes.
	SHA256 string `json:"sha256,omitempty" yaml:"sha256,omitempty"`

	// Lines is the number of source lines.
	Lines int `json:"lines" yaml:"lines"`

	// Blocks counts extracted blocks per construct kind.
	Blocks map[string]int `json:"blocks,omitempty" yaml:"blocks,omitempty"`

	// Status is the conversion outcome.
	Status ConversionStatus `json:"status" yaml:"status"`

	// Error holds the failure message when Status is failed.
	Error string `json:"error,omitempty" yaml:"error,omitempty"`

	// ConvertedAt is when the record was produced.
	ConvertedAt time.Time `json:"converted_at" yaml:"converted_at"`
}
