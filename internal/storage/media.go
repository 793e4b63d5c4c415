// Package storage is the object-storage collaborator for category and
// product images.
package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

// Asset classes with distinct write policies: category banners may be
// replaced in place, product shots are write-once.
const (
	PrefixCategories = "categories"
	PrefixProducts   = "products"
)

// ErrExists reports a write-once key that is already taken.
var ErrExists = errors.New("storage: object already exists")

type MediaStore struct {
	client   *minio.Client
	bucket   string
	endpoint string
	secure   bool
}

func NewMediaStore(endpoint, accessKey, secretKey, bucket string, secure bool) (*MediaStore, error) {
	client, err := minio.New(endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(accessKey, secretKey, ""),
		Secure: secure,
	})
	if err != nil {
		return nil, err
	}
	return &MediaStore{client: client, bucket: bucket, endpoint: endpoint, secure: secure}, nil
}

// Put stores an asset under prefix/name and returns its object key.
// Product objects are write-once; re-uploading an existing key fails
// with ErrExists. Category objects overwrite.
func (s *MediaStore) Put(ctx context.Context, prefix, name, contentType string, r io.Reader, size int64) (string, error) {
	key := path.Join(prefix, name)

	if prefix == PrefixProducts {
		if _, err := s.client.StatObject(ctx, s.bucket, key, minio.StatObjectOptions{}); err == nil {
			return "", ErrExists
		} else if minio.ToErrorResponse(err).Code != "NoSuchKey" {
			return "", err
		}
	}

	_, err := s.client.PutObject(ctx, s.bucket, key, r, size,
		minio.PutObjectOptions{ContentType: contentType})
	if err != nil {
		return "", err
	}
	return key, nil
}

// URL composes the public address for a stored object key.
func (s *MediaStore) URL(key string) string {
	scheme := "http"
	if s.secure {
		scheme = "https"
	}
	return fmt.Sprintf("%s://%s/%s/%s", scheme, s.endpoint, s.bucket, key)
}
