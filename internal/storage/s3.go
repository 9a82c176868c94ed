// Package storage issues presigned URLs against an S3-compatible bucket so
// that clients move attachment bytes without passing through the API.
package storage

import (
	"context"
	"errors"
	"fmt"
	"path"
	"strings"
	"time"
	"unicode"

	"github.com/aws/aws-sdk-go-v2/aws"
	v4 "github.com/aws/aws-sdk-go-v2/aws/signer/v4"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"
	"github.com/ukydev/fleet-control/internal/config"
)

// ErrNotConfigured is returned when no bucket has been configured.
var ErrNotConfigured = errors.New("object store not configured")

// ObjectStore is the subset of object storage the API needs.
type ObjectStore interface {
	PresignUpload(ctx context.Context, key, contentType string, size int64) (PresignedURL, error)
	PresignDownload(ctx context.Context, key, fileName string) (PresignedURL, error)
	Delete(ctx context.Context, key string) error
}

// PresignedURL is a time-limited URL a client can call directly.
type PresignedURL struct {
	URL       string    `json:"url"`
	Method    string    `json:"method"`
	ExpiresAt time.Time `json:"expires_at"`
}

type presigner interface {
	PresignPutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.PresignOptions)) (*v4.PresignedHTTPRequest, error)
	PresignGetObject(ctx context.Context, params *s3.GetObjectInput, optFns ...func(*s3.PresignOptions)) (*v4.PresignedHTTPRequest, error)
}

type objectDeleter interface {
	DeleteObject(ctx context.Context, params *s3.DeleteObjectInput, optFns ...func(*s3.Options)) (*s3.DeleteObjectOutput, error)
}

// S3Store implements ObjectStore on aws-sdk-go-v2.
type S3Store struct {
	presign presigner
	client  objectDeleter
	bucket  string
	expiry  time.Duration
	now     func() time.Time
}

// NewS3Store loads AWS credentials from the default chain. A custom endpoint
// switches to path-style addressing for MinIO and similar servers.
func NewS3Store(ctx context.Context, cfg config.S3Config) (*S3Store, error) {
	if !cfg.Enabled() {
		return nil, ErrNotConfigured
	}
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(cfg.Region))
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}
	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
			o.UsePathStyle = true
		}
	})
	return newS3Store(s3.NewPresignClient(client), client, cfg.Bucket, cfg.PresignExpiry), nil
}

func newS3Store(p presigner, d objectDeleter, bucket string, expiry time.Duration) *S3Store {
	return &S3Store{presign: p, client: d, bucket: bucket, expiry: expiry, now: time.Now}
}

// PresignUpload returns a PUT URL for key. The size is signed as
// Content-Length, so S3 rejects a body of any other length.
func (s *S3Store) PresignUpload(ctx context.Context, key, contentType string, size int64) (PresignedURL, error) {
	if size <= 0 {
		return PresignedURL{}, fmt.Errorf("presign upload %s: size must be positive, got %d", key, size)
	}
	input := &s3.PutObjectInput{
		Bucket:        aws.String(s.bucket),
		Key:           aws.String(key),
		ContentLength: aws.Int64(size),
	}
	if contentType != "" {
		input.ContentType = aws.String(contentType)
	}
	req, err := s.presign.PresignPutObject(ctx, input, s3.WithPresignExpires(s.expiry))
	if err != nil {
		return PresignedURL{}, fmt.Errorf("presign upload %s: %w", key, err)
	}
	return PresignedURL{URL: req.URL, Method: req.Method, ExpiresAt: s.now().Add(s.expiry)}, nil
}

// PresignDownload returns a GET URL for key that downloads as fileName.
func (s *S3Store) PresignDownload(ctx context.Context, key, fileName string) (PresignedURL, error) {
	input := &s3.GetObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	}
	if fileName != "" {
		input.ResponseContentDisposition = aws.String(fmt.Sprintf("attachment; filename=%q", SanitizeFileName(fileName)))
	}
	req, err := s.presign.PresignGetObject(ctx, input, s3.WithPresignExpires(s.expiry))
	if err != nil {
		return PresignedURL{}, fmt.Errorf("presign download %s: %w", key, err)
	}
	return PresignedURL{URL: req.URL, Method: req.Method, ExpiresAt: s.now().Add(s.expiry)}, nil
}

// Delete removes the object stored at key.
func (s *S3Store) Delete(ctx context.Context, key string) error {
	_, err := s.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return fmt.Errorf("delete object %s: %w", key, err)
	}
	return nil
}

// ObjectKey builds a unique key for a new attachment.
func ObjectKey(fileName string) string {
	return path.Join("attachments", uuid.NewString(), SanitizeFileName(fileName))
}

// SanitizeFileName keeps letters, digits, dots, dashes and underscores of the
// base name and replaces everything else with an underscore.
func SanitizeFileName(name string) string {
	name = path.Base(strings.ReplaceAll(name, "\\", "/"))
	var b strings.Builder
	for _, r := range name {
		switch {
		case r < unicode.MaxASCII && (unicode.IsLetter(r) || unicode.IsDigit(r)), r == '.', r == '-', r == '_':
			b.WriteRune(r)
		default:
			b.WriteRune('_')
		}
	}
	out := strings.Trim(b.String(), ".")
	if out == "" {
		return "file"
	}
	return out
}
