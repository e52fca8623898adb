package fileutil

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSafeJoin(t *testing.T) {
	got, err := SafeJoin("/out", "models/pet.ts")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join("/out", "models", "pet.ts"), got)
}

func TestSafeJoin_Traversal(t *testing.T) {
	_, err := SafeJoin("/out", "../escape.ts")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "escapes output root")
}

func TestSafeJoin_Root(t *testing.T) {
	got, err := SafeJoin("/out", ".")
	require.NoError(t, err)
	assert.Equal(t, filepath.Clean("/out"), got)
}
