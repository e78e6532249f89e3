package uploader

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestIsAllowedImageName(t *testing.T) {
	for _, name := range []string{"shot.png", "photo.JPG", "anim.gif", "pic.jpeg"} {
		require.True(t, IsAllowedImageName(name), name)
	}
	for _, name := range []string{"doc.pdf", "script.sh", "noext", "archive.png.zip"} {
		require.False(t, IsAllowedImageName(name), name)
	}
}

func TestFakeImageStoreAppliesTypeGate(t *testing.T) {
	fake := &FakeImageStore{}

	url, err := fake.Store("shot.png", strings.NewReader("bytes"))
	require.NoError(t, err)
	require.Equal(t, "https://fake-image-store.local/shot.png", url)

	_, err = fake.Store("malware.exe", strings.NewReader("bytes"))
	require.ErrorIs(t, err, ErrNotAnImage)
}
