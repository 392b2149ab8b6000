// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package history

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/org2hatena/pkg/types"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := NewStore(types.HistoryConfig{Path: filepath.Join(t.TempDir(), "nested", "history.db")})
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func TestStore_RecordAndLookup(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	_, ok, err := s.Lookup(ctx, "post.org")
	require.NoError(t, err)
	assert.False(t, ok)

	at := time.Date(2026, 3, 1, 12, 0, 0, 500, time.UTC)
	rec := types.ConversionRecord{
		Source:      "post.org",
		Output:      "post.txt",
		SHA256:      "abc",
		Lines:       12,
		Blocks:      map[string]int{"list": 2, "table": 1},
		Status:      types.ConversionDone,
		ConvertedAt: at,
	}
	require.NoError(t, s.Record(ctx, rec))

	got, ok, err := s.Lookup(ctx, "post.org")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, rec.Output, got.Output)
	assert.Equal(t, rec.SHA256, got.SHA256)
	assert.Equal(t, rec.Lines, got.Lines)
	assert.Equal(t, rec.Blocks, got.Blocks)
	assert.Equal(t, rec.Status, got.Status)
	assert.True(t, at.Equal(got.ConvertedAt), "got %v", got.ConvertedAt)
}

func TestStore_RecordReplaces(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, s.Record(ctx, types.ConversionRecord{
		Source: "a.org", Output: "a.txt", SHA256: "one", Status: types.ConversionDone, ConvertedAt: time.Now(),
	}))
	require.NoError(t, s.Record(ctx, types.ConversionRecord{
		Source: "a.org", Output: "a.txt", Status: types.ConversionFailed, Error: "boom", ConvertedAt: time.Now(),
	}))

	got, ok, err := s.Lookup(ctx, "a.org")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, types.ConversionFailed, got.Status)
	assert.Equal(t, "boom", got.Error)
	assert.Empty(t, got.SHA256)
	assert.Nil(t, got.Blocks)

	all, err := s.List(ctx, 0)
	require.NoError(t, err)
	assert.Len(t, all, 1)
}

func TestStore_ListNewestFirst(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)

	for i, name := range []string{"a.org", "b.org", "c.org"} {
		require.NoError(t, s.Record(ctx, types.ConversionRecord{
			Source:      name,
			Output:      name + ".txt",
			Status:      types.ConversionDone,
			ConvertedAt: base.Add(time.Duration(i) * 500 * time.Millisecond),
		}))
	}

	all, err := s.List(ctx, 0)
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, "c.org", all[0].Source)
	assert.Equal(t, "b.org", all[1].Source)
	assert.Equal(t, "a.org", all[2].Source)

	limited, err := s.List(ctx, 2)
	require.NoError(t, err)
	assert.Len(t, limited, 2)
}

func TestStore_Forget(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, s.Record(ctx, types.ConversionRecord{
		Source: "a.org", Output: "a.txt", Status: types.ConversionDone, ConvertedAt: time.Now(),
	}))
	require.NoError(t, s.Forget(ctx, "a.org"))
	require.NoError(t, s.Forget(ctx, "never-seen.org"))

	_, ok, err := s.Lookup(ctx, "a.org")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestStore_Reopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "history.db")
	ctx := context.Background()

	s, err := NewStore(types.HistoryConfig{Path: path})
	require.NoError(t, err)
	require.NoError(t, s.Record(ctx, types.ConversionRecord{
		Source: "a.org", Output: "a.txt", Status: types.ConversionDone, ConvertedAt: time.Now(),
	}))
	require.NoError(t, s.Close())

	s, err = NewStore(types.HistoryConfig{Path: path})
	require.NoError(t, err)
	defer s.Close()
	assert.Equal(t, path, s.Path())

	_, ok, err := s.Lookup(ctx, "a.org")
	require.NoError(t, err)
	assert.True(t, ok)
}
