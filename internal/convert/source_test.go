// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package convert

import (
	"crypto/sha256"
	"encoding/hex"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeLines(t *testing.T) {
	tests := []struct {
		name      string
		data      []byte
		normalize bool
		want      []string
	}{
		{
			name: "trailing newline does not add a line",
			data: []byte("a\nb\n"),
			want: []string{"a", "b"},
		},
		{
			name: "no trailing newline",
			data: []byte("a\nb"),
			want: []string{"a", "b"},
		},
		{
			name: "crlf terminators",
			data: []byte("a\r\nb\r\n"),
			want: []string{"a", "b"},
		},
		{
			name: "blank lines kept",
			data: []byte("a\n\n\nb\n"),
			want: []string{"a", "", "", "b"},
		},
		{
			name: "empty input",
			data: []byte{},
			want: []string{},
		},
		{
			name: "utf-8 bom stripped",
			data: []byte("\xef\xbb\xbf* T :a:\n"),
			want: []string{"* T :a:"},
		},
		{
			name: "utf-16le with bom",
			data: []byte{0xff, 0xfe, 'h', 0, 'i', 0, '\n', 0, 'x', 0},
			want: []string{"hi", "x"},
		},
		{
			name: "utf-16be with bom",
			data: []byte{0xfe, 0xff, 0, 'o', 0, 'k'},
			want: []string{"ok"},
		},
		{
			name:      "nfc normalization",
			data:      []byte("cafe\u0301\n"),
			normalize: true,
			want:      []string{"caf\u00e9"},
		},
		{
			name: "no normalization by default",
			data: []byte("cafe\u0301\n"),
			want: []string{"cafe\u0301"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := DecodeLines(tt.data, tt.normalize)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestDecodeLines_RejectsInvalidUTF8(t *testing.T) {
	tests := []struct {
		name string
		data []byte
	}{
		{"shift_jis", []byte{0x93, 0xfa, 0x96, 0x7b, '\n'}},
		{"euc-jp", []byte{'a', '\n', 0xc6, 0xfc, 0xcb, 0xdc, '\n'}},
		{"utf-8 bom with invalid body", []byte{0xef, 0xbb, 0xbf, 0x93, 0xfa}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			lines, err := DecodeLines(tt.data, false)
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrInvalidUTF8)
			assert.Contains(t, err.Error(), "decoding source")
			assert.Nil(t, lines)
		})
	}
}

func TestReadSource(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "a.org")
	require.NoError(t, os.WriteFile(path, []byte("one\ntwo\n"), 0o644))

	src, err := ReadSource(path, false)
	require.NoError(t, err)
	assert.Equal(t, []string{"one", "two"}, src.Lines)
	sum := sha256.Sum256([]byte("one\ntwo\n"))
	assert.Equal(t, hex.EncodeToString(sum[:]), src.SHA256)

	bad := filepath.Join(dir, "sjis.org")
	require.NoError(t, os.WriteFile(bad, []byte{0x93, 0xfa, 0x96, 0x7b}, 0o644))
	src, err = ReadSource(bad, false)
	assert.ErrorIs(t, err, ErrInvalidUTF8)
	assert.Len(t, src.SHA256, 64, "digest is kept when decoding fails")

	_, err = ReadSource(filepath.Join(dir, "nope.org"), false)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "reading source")
}

func TestWriteDocument(t *testing.T) {
	path := filepath.Join(t.TempDir(), "a.txt")
	require.NoError(t, os.WriteFile(path, []byte("old content that is longer"), 0o644))

	require.NoError(t, WriteDocument(path, "\nnew"))
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "\nnew", string(data), "existing file is truncated")

	err = WriteDocument(filepath.Join(t.TempDir(), "missing", "a.txt"), "x")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "writing output")
}
