package storage

import (
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	storage_go "github.com/supabase-community/storage-go"
)

// Uploader is the adapter in front of the external media host. It stores
// binaries and hands back durable public URLs; everything else about the
// host is opaque to the rest of the system.
type Uploader struct {
	client *storage_go.Client
	bucket string
}

func NewUploader(client *storage_go.Client, bucket string) *Uploader {
	return &Uploader{client: client, bucket: bucket}
}

// Upload stores the file under a fresh UUID-based object name (keeping the
// original extension) and returns the public URL.
func (u *Uploader) Upload(filename string, contentType string, data io.Reader) (string, error) {
	objectPath := fmt.Sprintf("%s%s", uuid.NewString(), filepath.Ext(filename))

	opts := storage_go.FileOptions{}
	if contentType != "" {
		opts.ContentType = &contentType
	}

	if _, err := u.client.UploadFile(u.bucket, objectPath, data, opts); err != nil {
		return "", fmt.Errorf("uploading %s: %w", objectPath, err)
	}

	return u.client.GetPublicUrl(u.bucket, objectPath).SignedURL, nil
}

// Remove deletes the object a previously returned public URL points at.
// The media host addresses objects by bucket-relative path, so that path
// is recovered from the URL; a URL that does not contain the bucket
// segment falls back to its trailing segment.
func (u *Uploader) Remove(url string) error {
	objectPath := u.objectPath(url)
	if objectPath == "" {
		return fmt.Errorf("no object path derivable from %q", url)
	}

	if _, err := u.client.RemoveFile(u.bucket, []string{objectPath}); err != nil {
		return fmt.Errorf("removing %s: %w", objectPath, err)
	}
	return nil
}

func (u *Uploader) objectPath(url string) string {
	marker := fmt.Sprintf("/object/public/%s/", u.bucket)
	if _, after, found := strings.Cut(url, marker); found {
		return after
	}
	if i := strings.LastIndex(url, "/"); i >= 0 && i < len(url)-1 {
		return url[i+1:]
	}
	return ""
}
