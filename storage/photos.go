// Package storage persists citizen and proof photos in an S3-compatible
// bucket. Submissions arrive as base64 data-URLs and are stored as plain
// objects referenced by URL from the issue record.
package storage

import (
	"bytes"
	"context"
	"encoding/base64"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/google/uuid"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

// PhotoStore is a client for S3-compatible photo storage.
type PhotoStore struct {
	client   *minio.Client
	endpoint string
	bucket   string
	secure   bool
}

// NewPhotoStore connects to the MinIO endpoint configured in the environment.
func NewPhotoStore() (*PhotoStore, error) {
	endpoint := os.Getenv("MINIO_ENDPOINT")
	accessKey := os.Getenv("MINIO_ACCESS_KEY")
	secretKey := os.Getenv("MINIO_SECRET_KEY")
	useSSL := os.Getenv("MINIO_USE_SSL") == "true"

	if endpoint == "" || accessKey == "" || secretKey == "" {
		return nil, fmt.Errorf("missing one or more required environment variables: MINIO_ENDPOINT, MINIO_ACCESS_KEY, MINIO_SECRET_KEY")
	}

	bucket := os.Getenv("MINIO_BUCKET")
	if bucket == "" {
		bucket = "cleancity-photos"
	}

	client, err := minio.New(endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(accessKey, secretKey, ""),
		Secure: useSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create MinIO client: %v", err)
	}

	log.Println("Successfully connected to MinIO endpoint:", endpoint)
	return &PhotoStore{client: client, endpoint: endpoint, bucket: bucket, secure: useSSL}, nil
}

// EnsureBucket creates the photo bucket if it does not exist yet.
func (s *PhotoStore) EnsureBucket(ctx context.Context) error {
	exists, err := s.client.BucketExists(ctx, s.bucket)
	if err != nil {
		return fmt.Errorf("error checking bucket existence: %v", err)
	}
	if !exists {
		if err := s.client.MakeBucket(ctx, s.bucket, minio.MakeBucketOptions{}); err != nil {
			return err
		}
	}
	return nil
}

// StoreDataURL decodes a base64 data-URL, stores it under the issue's prefix,
// and returns the object URL to record on the issue. kind distinguishes the
// citizen photo from the completion proof.
func (s *PhotoStore) StoreDataURL(ctx context.Context, issueID, kind, dataURL string) (string, error) {
	contentType, data, err := ParseDataURL(dataURL)
	if err != nil {
		return "", err
	}

	objectKey := fmt.Sprintf("issues/%s/%s-%s%s", issueID, kind, uuid.NewString(), ExtensionFor(contentType))

	_, err = s.client.PutObject(
		ctx,
		s.bucket,
		objectKey,
		bytes.NewReader(data),
		int64(len(data)),
		minio.PutObjectOptions{ContentType: contentType},
	)
	if err != nil {
		return "", fmt.Errorf("failed to store photo: %v", err)
	}

	scheme := "http"
	if s.secure {
		scheme = "https"
	}
	return fmt.Sprintf("%s://%s/%s/%s", scheme, s.endpoint, s.bucket, objectKey), nil
}

// ParseDataURL splits a "data:<type>;base64,<payload>" string into its
// content type and decoded bytes.
func ParseDataURL(v string) (string, []byte, error) {
	if !strings.HasPrefix(v, "data:") {
		return "", nil, fmt.Errorf("not a data URL")
	}

	rest := v[len("data:"):]
	sep := strings.Index(rest, ",")
	if sep < 0 {
		return "", nil, fmt.Errorf("malformed data URL: missing payload separator")
	}

	meta, payload := rest[:sep], rest[sep+1:]
	if !strings.HasSuffix(meta, ";base64") {
		return "", nil, fmt.Errorf("unsupported data URL encoding: want base64")
	}

	contentType := strings.TrimSuffix(meta, ";base64")
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	data, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return "", nil, fmt.Errorf("failed to decode data URL payload: %v", err)
	}
	return contentType, data, nil
}

// ExtensionFor maps common image content types to a file extension.
func ExtensionFor(contentType string) string {
	switch contentType {
	case "image/png":
		return ".png"
	case "image/jpeg":
		return ".jpg"
	case "image/webp":
		return ".webp"
	case "image/gif":
		return ".gif"
	default:
		return ".bin"
	}
}
