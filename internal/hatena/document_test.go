// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package hatena

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDocument(t *testing.T) {
	lines := []string{"a", "b"}
	d := NewDocument(lines)

	assert.False(t, d.Empty())
	assert.Equal(t, 2, d.Len())
	assert.Equal(t, "a", d.Peek())
	assert.Equal(t, "a", d.Next())
	assert.Equal(t, 1, d.Consumed())
	assert.Equal(t, []string{"b"}, d.Remaining())
	assert.Equal(t, "b", d.Next())

	assert.True(t, d.Empty())
	assert.Equal(t, "", d.Peek())
	assert.Equal(t, "", d.Next())
	assert.Equal(t, 2, d.Consumed())
	assert.Empty(t, d.Remaining())

	assert.Equal(t, []string{"a", "b"}, lines, "consumption must not modify the input")
}
