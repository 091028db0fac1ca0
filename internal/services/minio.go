package services

import (
	"context"
	"fmt"
	"mime/multipart"
	"path"
	"strings"

	"github.com/google/uuid"
	"github.com/minio/minio-go/v7"
)

// ImageStore puts listing photos in a public MinIO bucket.
type ImageStore struct {
	client    *minio.Client
	bucket    string
	publicURL string
}

// NewImageStore serves objects from publicURL; when empty the client endpoint is used.
func NewImageStore(client *minio.Client, bucket, publicURL string) *ImageStore {
	if publicURL == "" && client != nil {
		publicURL = client.EndpointURL().String()
	}
	return &ImageStore{client: client, bucket: bucket, publicURL: strings.TrimRight(publicURL, "/")}
}

// Upload stores one file under a fresh name and returns its public URL.
func (s *ImageStore) Upload(ctx context.Context, file *multipart.FileHeader) (string, error) {
	f, err := file.Open()
	if err != nil {
		return "", err
	}
	defer f.Close()

	name := ObjectName(file.Filename)
	_, err = s.client.PutObject(ctx, s.bucket, name, f, file.Size,
		minio.PutObjectOptions{ContentType: file.Header.Get("Content-Type")})
	if err != nil {
		return "", fmt.Errorf("put %s: %w", name, err)
	}
	return s.ObjectURL(name), nil
}

func (s *ImageStore) ObjectURL(name string) string {
	return s.publicURL + "/" + s.bucket + "/" + name
}

// ObjectName keeps the upload's extension and nothing else from the client.
func ObjectName(filename string) string {
	ext := strings.ToLower(path.Ext(strings.ReplaceAll(filename, "\\", "/")))
	if len(ext) > 8 || strings.ContainsAny(ext, " /?#") {
		ext = ""
	}
	return uuid.NewString() + ext
}
