package util

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMapSource_ReadsContents(t *testing.T) {
	path := filepath.Join(t.TempDir(), "App.jsx")
	require.NoError(t, os.WriteFile(path, []byte("const App = () => <div/>;"), 0o644))

	src, err := MapSource(path)
	require.NoError(t, err)
	defer src.Close()

	assert.Equal(t, "const App = () => <div/>;", string(src.Bytes()))
}

func TestMapSource_EmptyFileFallsBack(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.js")
	require.NoError(t, os.WriteFile(path, nil, 0o644))

	src, err := MapSource(path)
	require.NoError(t, err)
	assert.False(t, src.Mapped())
	assert.Empty(t, src.Bytes())
	assert.NoError(t, src.Close())
	assert.NoError(t, src.Close())
}

func TestMapSource_Missing(t *testing.T) {
	_, err := MapSource(filepath.Join(t.TempDir(), "nope.js"))
	assert.Error(t, err)
}

func TestGetOptimalPoolSize_Bounds(t *testing.T) {
	size := GetOptimalPoolSize()
	assert.GreaterOrEqual(t, size, 4)
	assert.LessOrEqual(t, size, 32)
	assert.Equal(t, 7, GetOptimalPoolSizeWithOverride(7))
}

func TestParseLogLevel(t *testing.T) {
	assert.Equal(t, LevelDebug, ParseLogLevel("DEBUG"))
	assert.Equal(t, LevelWarn, ParseLogLevel("bogus"))
}
