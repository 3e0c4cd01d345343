// Package storage wraps the Cloud Storage bucket used for diary
// photos: upload bytes to a path, resolve the public URL.
package storage

import (
	"context"
	"fmt"
	"strconv"
	"time"

	gcs "cloud.google.com/go/storage"
	"github.com/mizukif/photo-diary/apperr"
)

const uploadTimeout = 50 * time.Second

type Uploader struct {
	client     *gcs.Client
	bucketName string
}

// NewUploader creates the bucket client. Credentials come from the
// ambient GOOGLE_APPLICATION_CREDENTIALS environment.
func NewUploader(ctx context.Context, bucketName string) (*Uploader, error) {
	client, err := gcs.NewClient(ctx)
	if err != nil {
		return nil, apperr.Wrap(apperr.ConfigError, "failed to create storage client", err)
	}

	return &Uploader{client: client, bucketName: bucketName}, nil
}

// ObjectPath builds the storage path for an upload. The nanosecond
// suffix keeps two uploads of the same filename by the same user from
// colliding on the same object.
func (u *Uploader) ObjectPath(userID string, filename string) string {
	timestamp := strconv.FormatInt(time.Now().UnixNano(), 10)
	return userID + "/" + timestamp + "_" + filename
}

// Upload writes the object with its content type. The row referencing
// the object is only inserted after Upload returns nil.
func (u *Uploader) Upload(ctx context.Context, path string, data []byte, contentType string) error {
	ctx, cancel := context.WithTimeout(ctx, uploadTimeout)
	defer cancel()

	wc := u.client.Bucket(u.bucketName).Object(path).NewWriter(ctx)
	wc.ContentType = contentType

	if _, err := wc.Write(data); err != nil {
		return apperr.Wrap(apperr.UploadFailure, "image upload failed", err)
	}
	if err := wc.Close(); err != nil {
		return apperr.Wrap(apperr.UploadFailure, "image upload failed", err)
	}

	return nil
}

func (u *Uploader) PublicURL(path string) string {
	return fmt.Sprintf("https://storage.googleapis.com/%s/%s", u.bucketName, path)
}
