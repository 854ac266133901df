// Package storage uploads event images to blob storage and resolves their
// public URLs.
package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path"
	"regexp"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"
)

var ErrNotConfigured = errors.New("blob storage is not configured")

// Blobs stores objects by path.
type Blobs interface {
	// Upload stores body at objectPath and returns its public URL.
	Upload(ctx context.Context, objectPath string, body io.Reader, contentType string) (string, error)
	Delete(ctx context.Context, objectPath string) error
}

// ObjectAPI is the subset of the S3 client used here.
type ObjectAPI interface {
	PutObject(ctx context.Context, in *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
	DeleteObject(ctx context.Context, in *s3.DeleteObjectInput, optFns ...func(*s3.Options)) (*s3.DeleteObjectOutput, error)
}

type S3 struct {
	api       ObjectAPI
	bucket    string
	publicURL string
}

// NewS3 loads the default AWS credential chain for region. publicURL, when
// set, replaces the bucket's virtual-hosted URL (e.g. a CDN in front of it).
func NewS3(ctx context.Context, bucket, region, publicURL string) (*S3, error) {
	if bucket == "" {
		return nil, ErrNotConfigured
	}
	cfg, err := config.LoadDefaultConfig(ctx, config.WithRegion(region))
	if err != nil {
		return nil, fmt.Errorf("NewS3: failed to load AWS default config: %w", err)
	}
	if publicURL == "" {
		publicURL = fmt.Sprintf("https://%s.s3.%s.amazonaws.com", bucket, region)
	}
	return NewS3WithAPI(s3.NewFromConfig(cfg), bucket, publicURL), nil
}

func NewS3WithAPI(api ObjectAPI, bucket, publicURL string) *S3 {
	return &S3{api: api, bucket: bucket, publicURL: strings.TrimRight(publicURL, "/")}
}

func (s *S3) Upload(ctx context.Context, objectPath string, body io.Reader, contentType string) (string, error) {
	in := &s3.PutObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(objectPath),
		Body:   body,
	}
	if contentType != "" {
		in.ContentType = aws.String(contentType)
	}
	if _, err := s.api.PutObject(ctx, in); err != nil {
		return "", fmt.Errorf("Upload: failed to upload %s: %w", objectPath, err)
	}
	return s.PublicURL(objectPath), nil
}

func (s *S3) Delete(ctx context.Context, objectPath string) error {
	_, err := s.api.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(objectPath),
	})
	if err != nil {
		return fmt.Errorf("Delete: failed to delete %s: %w", objectPath, err)
	}
	return nil
}

func (s *S3) PublicURL(objectPath string) string {
	return s.publicURL + "/" + objectPath
}

var unsafeName = regexp.MustCompile(`[^a-zA-Z0-9._-]+`)

// EventImagePath returns a fresh object path for an uploaded event image.
// Each upload gets its own prefix so a retry never overwrites a live image.
func EventImagePath(filename string) string {
	base := path.Base(strings.ReplaceAll(filename, "\\", "/"))
	base = strings.Trim(unsafeName.ReplaceAllString(base, "-"), "-.")
	if base == "" {
		base = "image"
	}
	return path.Join("events", uuid.New().String(), strings.ToLower(base))
}
