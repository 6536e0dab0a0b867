// Package sink delivers ingested files to S3-compatible object storage.
package sink

import (
	"context"
	"fmt"
	"os"
	"path"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// Config holds the delivery settings. BaseEndpoint is used for MinIO and
// other S3-compatible backends; leave it empty for AWS proper.
type Config struct {
	Bucket       string
	Region       string
	BaseEndpoint string
	AccessKey    string
	SecretKey    string
	Prefix       string
}

// S3Sink uploads local files into one bucket under date-partitioned keys.
type S3Sink struct {
	cfg    Config
	client *s3.Client
}

// NewS3Sink builds the S3 client from static credentials.
func NewS3Sink(ctx context.Context, cfg Config) (*S3Sink, error) {
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx,
		awsconfig.WithRegion(cfg.Region),
		awsconfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			cfg.AccessKey,
			cfg.SecretKey,
			"",
		)))
	if err != nil {
		return nil, fmt.Errorf("aws config: %w", err)
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.BaseEndpoint != "" {
			o.BaseEndpoint = aws.String(cfg.BaseEndpoint)
			o.UsePathStyle = true
		}
	})

	return &S3Sink{cfg: cfg, client: client}, nil
}

// KeyFor builds the object key for a remote name: an optional prefix, the
// ingest date, and the bare file name.
func (s *S3Sink) KeyFor(remoteName string, now time.Time) string {
	key := fmt.Sprintf("%d/%02d/%02d/%s", now.Year(), now.Month(), now.Day(), path.Base(remoteName))
	if s.cfg.Prefix != "" {
		key = path.Join(s.cfg.Prefix, key)
	}
	return key
}

// Put uploads the file at localPath under key.
func (s *S3Sink) Put(ctx context.Context, key, localPath string) error {
	f, err := os.Open(localPath)
	if err != nil {
		return fmt.Errorf("open %s: %w", localPath, err)
	}
	defer f.Close()

	_, err = s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket: aws.String(s.cfg.Bucket),
		Key:    aws.String(key),
		Body:   f,
	})
	if err != nil {
		return fmt.Errorf("put %s: %w", key, err)
	}
	return nil
}
