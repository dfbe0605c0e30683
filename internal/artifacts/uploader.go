// Package artifacts uploads generated diagram files to S3 so they outlive
// the container the diagram tool wrote them into.
package artifacts

import (
	"context"
	"fmt"
	"log/slog"
	"mime"
	"os"
	"path/filepath"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/s3/manager"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// uploadAPI is the slice of manager.Uploader the Uploader needs.
// Extracted so tests can swap in a fake.
type uploadAPI interface {
	Upload(ctx context.Context, input *s3.PutObjectInput, opts ...func(*manager.Uploader)) (*manager.UploadOutput, error)
}

// Uploader pushes local artifact files into a bucket under a key prefix.
type Uploader struct {
	api    uploadAPI
	bucket string
	prefix string
}

// NewUploader creates an S3-backed uploader from an AWS config.
func NewUploader(cfg aws.Config, bucket, prefix string) *Uploader {
	return &Uploader{
		api:    manager.NewUploader(s3.NewFromConfig(cfg)),
		bucket: bucket,
		prefix: prefix,
	}
}

// UploadFile uploads one file and returns its S3 URI.
func (u *Uploader) UploadFile(ctx context.Context, path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", fmt.Errorf("open artifact %s: %w", path, err)
	}
	defer f.Close()

	key := u.prefix + filepath.Base(path)
	input := &s3.PutObjectInput{
		Bucket: aws.String(u.bucket),
		Key:    aws.String(key),
		Body:   f,
	}
	if ct := mime.TypeByExtension(filepath.Ext(path)); ct != "" {
		input.ContentType = aws.String(ct)
	}

	if _, err := u.api.Upload(ctx, input); err != nil {
		return "", fmt.Errorf("upload %s: %w", path, err)
	}

	uri := fmt.Sprintf("s3://%s/%s", u.bucket, key)
	slog.Info("artifact uploaded", "uri", uri)
	return uri, nil
}

// UploadDir uploads every regular file directly inside dir and returns
// their S3 URIs. A missing directory is not an error: the diagram tool may
// simply not have produced anything yet.
func (u *Uploader) UploadDir(ctx context.Context, dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("read artifact dir %s: %w", dir, err)
	}

	var uris []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		uri, err := u.UploadFile(ctx, filepath.Join(dir, e.Name()))
		if err != nil {
			return uris, err
		}
		uris = append(uris, uri)
	}
	return uris, nil
}
