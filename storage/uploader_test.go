package storage

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestObjectPathShape(t *testing.T) {
	t.Parallel()

	u := &Uploader{bucketName: "diary_images"}

	path := u.ObjectPath("user-1", "sunset.jpg")
	require.True(t, strings.HasPrefix(path, "user-1/"))
	require.True(t, strings.HasSuffix(path, "_sunset.jpg"))
}

func TestObjectPathAvoidsCollisions(t *testing.T) {
	t.Parallel()

	u := &Uploader{bucketName: "diary_images"}

	// same user, same original filename, back to back
	first := u.ObjectPath("user-1", "sunset.jpg")
	time.Sleep(time.Microsecond)
	second := u.ObjectPath("user-1", "sunset.jpg")

	require.NotEqual(t, first, second)
}

func TestPublicURL(t *testing.T) {
	t.Parallel()

	u := &Uploader{bucketName: "diary_images"}

	url := u.PublicURL("user-1/123_sunset.jpg")
	require.Equal(t, "https://storage.googleapis.com/diary_images/user-1/123_sunset.jpg", url)
}
