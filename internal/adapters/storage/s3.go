package storage

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"

	"meetapp/internal/domain"
)

// S3Config holds configuration for S3 banner storage.
type S3Config struct {
	Bucket          string
	Prefix          string // e.g. "banners/"
	Region          string
	AccessKeyID     string
	SecretAccessKey string
	PublicURL       string // optional CDN/base URL; defaults to the virtual-hosted bucket URL
}

type s3API interface {
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
	GetObject(ctx context.Context, params *s3.GetObjectInput, optFns ...func(*s3.Options)) (*s3.GetObjectOutput, error)
}

// S3Storage stores files as objects in an S3 bucket.
type S3Storage struct {
	client    s3API
	bucket    string
	prefix    string
	publicURL string
}

// NewS3Storage loads the AWS config (static credentials when given, default chain otherwise).
func NewS3Storage(ctx context.Context, cfg S3Config) (*S3Storage, error) {
	if cfg.Bucket == "" {
		return nil, errors.New("s3 bucket is required")
	}
	region := cfg.Region
	if region == "" {
		region = "us-east-1"
	}
	opts := []func(*config.LoadOptions) error{config.WithRegion(region)}
	if cfg.AccessKeyID != "" {
		opts = append(opts, config.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.AccessKeyID, cfg.SecretAccessKey, ""),
		))
	}
	awsCfg, err := config.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}
	publicURL := cfg.PublicURL
	if publicURL == "" {
		publicURL = fmt.Sprintf("https://%s.s3.%s.amazonaws.com", cfg.Bucket, region)
	}
	return newS3Storage(s3.NewFromConfig(awsCfg), cfg.Bucket, cfg.Prefix, publicURL), nil
}

func newS3Storage(client s3API, bucket, prefix, publicURL string) *S3Storage {
	return &S3Storage{
		client:    client,
		bucket:    bucket,
		prefix:    prefix,
		publicURL: strings.TrimSuffix(publicURL, "/"),
	}
}

func (s *S3Storage) Save(ctx context.Context, path, contentType string, body io.Reader) error {
	if !validPath(path) {
		return domain.ErrInvalidInput
	}
	// S3 rejects chunked uploads without a length, so the body is buffered.
	data, err := io.ReadAll(body)
	if err != nil {
		return fmt.Errorf("read body: %w", err)
	}
	_, err = s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:        aws.String(s.bucket),
		Key:           aws.String(s.prefix + path),
		Body:          bytes.NewReader(data),
		ContentLength: aws.Int64(int64(len(data))),
		ContentType:   aws.String(contentType),
	})
	if err != nil {
		return fmt.Errorf("put object: %w", err)
	}
	return nil
}

func (s *S3Storage) Open(ctx context.Context, path string) (io.ReadCloser, error) {
	if !validPath(path) {
		return nil, domain.ErrNotFound
	}
	out, err := s.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(s.prefix + path),
	})
	if err != nil {
		var nsk *types.NoSuchKey
		if errors.As(err, &nsk) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get object: %w", err)
	}
	return out.Body, nil
}

func (s *S3Storage) URL(path string) string {
	return s.publicURL + "/" + s.prefix + path
}
