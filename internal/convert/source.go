// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package convert

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"os"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// ErrInvalidUTF8 is returned for input that carries no byte order mark and
// is not valid UTF-8, such as Shift_JIS or EUC-JP files.
var ErrInvalidUTF8 = errors.New("input is not valid UTF-8")

// Source is one org file as read from disk.
type Source struct {
	// Lines holds the decoded lines with terminators removed.
	Lines []string

	// SHA256 is the hex digest of the raw file content.
	SHA256 string
}

// ReadSource reads path, hashes its raw bytes and decodes it into lines.
// When decoding fails the returned Source still carries the digest.
func ReadSource(path string, normalize bool) (Source, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Source{}, fmt.Errorf("reading source: %w", err)
	}
	sum := sha256.Sum256(data)
	src := Source{SHA256: hex.EncodeToString(sum[:])}

	src.Lines, err = DecodeLines(data, normalize)
	return src, err
}

// DecodeLines decodes raw file content into lines. A UTF-8 or UTF-16 byte
// order mark selects the encoding; without one the content must already be
// valid UTF-8 and is passed through untouched. Both "\n" and "\r\n" terminate
// a line, and a final terminator does not start an extra empty line.
func DecodeLines(data []byte, normalize bool) ([]string, error) {
	decoded, _, err := transform.Bytes(unicode.BOMOverride(transform.Nop), data)
	if err != nil {
		return nil, fmt.Errorf("decoding source: %w", err)
	}
	if !utf8.Valid(decoded) {
		return nil, fmt.Errorf("decoding source: %w", ErrInvalidUTF8)
	}

	text := string(decoded)
	if normalize {
		text = norm.NFC.String(text)
	}
	if text == "" {
		return []string{}, nil
	}

	text = strings.TrimSuffix(text, "\n")
	lines := strings.Split(text, "\n")
	for i, line := range lines {
		lines[i] = strings.TrimSuffix(line, "\r")
	}
	return lines, nil
}

// WriteDocument writes text as the full content of path, creating or
// truncating it.
func WriteDocument(path, text string) error {
	if err := os.WriteFile(path, []byte(text), 0o644); err != nil {
		return fmt.Errorf("writing output: %w", err)
	}
	return nil
}
