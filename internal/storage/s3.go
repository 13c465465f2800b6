package storage

import (
	"context"
	"fmt"
	"io"
	"log"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	"livenzo-backend/internal/config"
)

// ObjectStore uploads meter photos and payment-proof screenshots to an
// S3-compatible bucket (R2 in production).
type ObjectStore struct {
	client    *s3.Client
	bucket    string
	publicURL string
}

// NewObjectStore builds the S3 client. Returns nil when storage is not
// configured; callers treat a nil store as "uploads disabled".
func NewObjectStore(cfg *config.Config) *ObjectStore {
	if cfg.Storage.AccessKey == "" || cfg.Storage.Bucket == "" {
		return nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx,
		awsconfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			cfg.Storage.AccessKey,
			cfg.Storage.SecretKey,
			"",
		)),
		awsconfig.WithRegion(cfg.Storage.Region),
	)
	if err != nil {
		log.Printf("[Storage] Failed to configure S3 client: %v", err)
		return nil
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.Storage.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Storage.Endpoint)
		}
	})

	return &ObjectStore{
		client:    client,
		bucket:    cfg.Storage.Bucket,
		publicURL: strings.TrimSuffix(cfg.Storage.PublicURL, "/"),
	}
}

// Upload stores the object under key and returns its public URL.
func (s *ObjectStore) Upload(ctx context.Context, key string, body io.Reader, contentType string) (string, error) {
	if s == nil {
		return "", fmt.Errorf("object storage not configured")
	}

	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(key),
		Body:        body,
		ContentType: aws.String(contentType),
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload %s: %w", key, err)
	}

	return s.publicURL + "/" + key, nil
}
