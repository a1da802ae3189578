package media

import (
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTempFilePreviewLifecycle(t *testing.T) {
	previews := NewTempFilePreviews(t.TempDir())

	h, err := previews.Acquire(File{Name: "photo.jpg", ContentType: "image/jpeg", Data: []byte("jpegdata")})
	require.NoError(t, err)

	path := strings.TrimPrefix(h.URL(), "file://")
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "jpegdata", string(data))

	h.Release()
	_, err = os.Stat(path)
	assert.True(t, os.IsNotExist(err), "release must delete the preview file")

	// Double release is harmless.
	h.Release()
}
