// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

// DefaultOutputExt replaces the ".org" suffix of converted files.
const DefaultOutputExt = ".txt"

// ConversionConfig holds settings for org-to-Hatena conversion.
type ConversionConfig struct {
	// OutputExt is the extension of written files (default ".txt").
	OutputExt string `json:"output_ext" yaml:"output_ext" mapstructure:"output_ext"`

	// Normalize applies Unicode NFC normalization to the input text.
	Normalize bool `json:"normalize" yaml:"normalize" mapstructure:"normalize"`

	// ReadMore converts "#====" and "#=====" lines into Hatena read-more
	// markers instead of dropping them as comments.
	ReadMore bool `json:"read_more" yaml:"read_more" mapstructure:"read_more"`

	// LangAliases renames source block languages (e.g. "sh" -> "bash"),
	// extending the built-in table.
	LangAliases map[string]string `json:"lang_aliases,omitempty" yaml:"lang_aliases,omitempty" mapstructure:"lang_aliases"`
}

// HistoryConfig holds settings for the conversion history database.
type HistoryConfig struct {
	// Enabled turns on history recording and skipping of unchanged inputs.
	Enabled bool `json:"enabled" yaml:"enabled" mapstructure:"enabled"`

	// Path is the SQLite database file (default ".org2hatena/history.db").
	Path string `json:"path" yaml:"path" mapstructure:"path"`
}

// Config groups all configuration sections.
type Config struct {
	Conversion ConversionConfig `json:"conversion" yaml:"conversion" mapstructure:"conversion"`
	History    HistoryConfig    `json:"history" yaml:"history" mapstructure:"history"`
}
