// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package convert

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/org2hatena/pkg/types"
)

func TestWriteReport(t *testing.T) {
	path := filepath.Join(t.TempDir(), "report.yaml")
	result := BatchResult{
		Converted: 1,
		Failed:    1,
		Records: []types.ConversionRecord{
			{Source: "a.org", Output: "a.txt", Status: types.ConversionDone, Blocks: map[string]int{"list": 2}},
			{Source: "b.org", Output: "b.txt", Status: types.ConversionFailed, Error: "reading source: missing"},
		},
	}

	require.NoError(t, WriteReport(path, result))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	content := string(data)
	assert.True(t, strings.Contains(content, "has_failures: true"))
	assert.Contains(t, content, "converted: 1")
	assert.Contains(t, content, "source: a.org")

	r, err := ReadReport(path)
	require.NoError(t, err)
	assert.Equal(t, 2, r.Summary.Total)
	require.Len(t, r.Result.Records, 2)
	assert.Equal(t, types.ConversionFailed, r.Result.Records[1].Status)
	assert.Equal(t, 2, r.Result.Records[0].Blocks["list"])
}
