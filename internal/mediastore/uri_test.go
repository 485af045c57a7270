package mediastore

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFileURIRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "with space.png")
	uri := FileURI(path)
	assert.Contains(t, uri, "file://")
	assert.Contains(t, uri, "with%20space.png")

	got, err := PathFromURI(uri)
	require.NoError(t, err)
	assert.Equal(t, path, got)
}

func TestPathFromURIPlainPath(t *testing.T) {
	got, err := PathFromURI("photo.jpg")
	require.NoError(t, err)
	assert.Equal(t, "photo.jpg", got)
}

func TestPathFromURIErrors(t *testing.T) {
	_, err := PathFromURI("")
	assert.Error(t, err)
	_, err = PathFromURI("https://example.com/a.png")
	assert.Error(t, err)
}
