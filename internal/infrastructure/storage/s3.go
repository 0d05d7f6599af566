// Package storage keeps avatar images in S3 and serves them through CloudFront.
package storage

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"

	"go-blog-api/internal/infrastructure/config"
	"go-blog-api/internal/infrastructure/logger"
	"go-blog-api/internal/port/outbound"
)

const defaultExtension = "jpg"

// ObjectAPI is the subset of the S3 client the store needs.
type ObjectAPI interface {
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
	DeleteObject(ctx context.Context, params *s3.DeleteObjectInput, optFns ...func(*s3.Options)) (*s3.DeleteObjectOutput, error)
}

type S3AvatarStore struct {
	client        ObjectAPI
	bucket        string
	cloudFrontURL string
	newKey        func(ext string) string
	logger        logger.Logger
}

var _ outbound.AvatarStore = (*S3AvatarStore)(nil)

// NewS3Client builds an S3 client from cfg. Static credentials are used when
// configured, otherwise the default AWS credential chain applies.
func NewS3Client(ctx context.Context, cfg config.StorageConfig) (*s3.Client, error) {
	opts := []func(*awsconfig.LoadOptions) error{
		awsconfig.WithRegion(cfg.Region),
	}
	if cfg.AccessKeyID != "" {
		opts = append(opts, awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.AccessKeyID, cfg.SecretAccessKey, ""),
		))
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}

	return s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
			o.UsePathStyle = true
		}
	}), nil
}

func NewS3AvatarStore(client ObjectAPI, cfg config.StorageConfig, log logger.Logger) *S3AvatarStore {
	return &S3AvatarStore{
		client:        client,
		bucket:        cfg.Bucket,
		cloudFrontURL: strings.TrimRight(cfg.CloudFrontURL, "/"),
		newKey: func(ext string) string {
			return uuid.NewString() + "." + ext
		},
		logger: log.WithField("component", "s3_avatar_store"),
	}
}

// Upload stores the file under a fresh <uuid>.<ext> key and returns its
// CloudFront URL.
func (s *S3AvatarStore) Upload(ctx context.Context, file outbound.AvatarFile) (string, error) {
	key := s.newKey(extension(file.Filename))

	input := &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(key),
		Body:        file.Body,
		ContentType: aws.String(file.ContentType),
	}
	if file.Size > 0 {
		input.ContentLength = aws.Int64(file.Size)
	}

	if _, err := s.client.PutObject(ctx, input); err != nil {
		return "", fmt.Errorf("put object %s: %w", key, err)
	}

	s.logger.WithFields(logger.Fields{"key": key, "size": file.Size}).Info("Avatar uploaded")
	return s.cloudFrontURL + "/" + key, nil
}

// Delete removes the object behind url. URLs outside the CloudFront
// distribution are ignored.
func (s *S3AvatarStore) Delete(ctx context.Context, url string) error {
	key, ok := s.keyFromURL(url)
	if !ok {
		s.logger.Debugf("Ignoring delete for foreign url %q", url)
		return nil
	}

	if _, err := s.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	}); err != nil {
		return fmt.Errorf("delete object %s: %w", key, err)
	}
	return nil
}

func (s *S3AvatarStore) keyFromURL(url string) (string, bool) {
	prefix := s.cloudFrontURL + "/"
	if s.cloudFrontURL == "" || !strings.HasPrefix(url, prefix) {
		return "", false
	}
	key := strings.TrimPrefix(url, prefix)
	if key == "" || strings.Contains(key, "/") {
		return "", false
	}
	return key, true
}

func extension(filename string) string {
	ext := strings.TrimPrefix(filepath.Ext(filename), ".")
	if ext == "" {
		return defaultExtension
	}
	return strings.ToLower(ext)
}
