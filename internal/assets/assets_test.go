package assets

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPortraitPath(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "2024"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "2024", "okamoto.png"), []byte("png"), 0o644))

	path, ok := PortraitPath(dir, 2024, "okamoto.png")
	require.True(t, ok)
	assert.Equal(t, filepath.Join(dir, "2024", "okamoto.png"), path)
}

func TestPortraitPath_MissingFile(t *testing.T) {
	_, ok := PortraitPath(t.TempDir(), 2024, "nobody.png")
	assert.False(t, ok)
}

func TestPortraitPath_RejectsNonPNG(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "2024"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "2024", "okamoto.jpg"), []byte("jpg"), 0o644))

	_, ok := PortraitPath(dir, 2024, "okamoto.jpg")
	assert.False(t, ok)

	_, ok = PortraitPath(dir, 2024, "")
	assert.False(t, ok)
}
