package id

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerate(t *testing.T) {
	got, err := Generate("sub")
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(got, "sub-"))
	assert.Len(t, strings.TrimPrefix(got, "sub-"), 21)
}

func TestGenerateUnique(t *testing.T) {
	seen := make(map[string]bool)
	for range 100 {
		got := MustGenerate("sub")
		assert.False(t, seen[got], "duplicate id %s", got)
		seen[got] = true
	}
}
