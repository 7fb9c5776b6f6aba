package storage

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"

	"github.com/yeyakmania/booking-api/internal/config"
	"github.com/yeyakmania/booking-api/internal/domain/account"
)

type putter interface {
	PutObject(ctx context.Context, in *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

// S3Uploader stores profile images in an S3 compatible bucket and returns
// their public URL.
type S3Uploader struct {
	client  putter
	bucket  string
	baseURL string
}

var _ account.ImageUploader = (*S3Uploader)(nil)

// NewS3Uploader returns nil when no bucket is configured.
func NewS3Uploader(cfg config.S3Config) *S3Uploader {
	if cfg.Bucket == "" {
		return nil
	}

	awsCfg := aws.Config{
		Region:      cfg.Region,
		Credentials: credentials.NewStaticCredentialsProvider(cfg.AccessKey, cfg.SecretKey, ""),
	}
	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
			o.UsePathStyle = true
		}
	})

	base := cfg.PublicBaseURL
	if base == "" {
		base = fmt.Sprintf("https://%s.s3.%s.amazonaws.com", cfg.Bucket, cfg.Region)
	}
	return &S3Uploader{client: client, bucket: cfg.Bucket, baseURL: strings.TrimRight(base, "/")}
}

func (u *S3Uploader) UploadProfileImage(ctx context.Context, userID uuid.UUID, r io.Reader) (string, error) {
	data, err := toProfileWebP(r)
	if err != nil {
		return "", err
	}

	key := fmt.Sprintf("profiles/%s/%s.webp", userID, uuid.NewString())
	_, err = u.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:        aws.String(u.bucket),
		Key:           aws.String(key),
		Body:          bytes.NewReader(data),
		ContentType:   aws.String("image/webp"),
		ContentLength: aws.Int64(int64(len(data))),
		CacheControl:  aws.String("public, max-age=31536000, immutable"),
	})
	if err != nil {
		return "", fmt.Errorf("put %s: %w", key, err)
	}
	return u.baseURL + "/" + key, nil
}
