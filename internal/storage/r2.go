package storage

import (
	"bytes"
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	appconfig "optic-backend/internal/config"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// PhotoStore uploads employee/customer photos to an S3-compatible bucket
// (Cloudflare R2 in production). The core never touches pixels; it stores
// whatever cropped blob the client produced and hands back a URL.
type PhotoStore struct {
	client    *s3.Client
	bucket    string
	publicURL string
}

// NewPhotoStore builds a store from config. Returns nil (disabled) when the
// bucket or credentials are not configured; callers must treat a nil store
// as "pass-through URLs only".
func NewPhotoStore(cfg *appconfig.Config) *PhotoStore {
	if cfg.Storage.Bucket == "" || cfg.Storage.AccessKey == "" {
		log.Printf("[Storage] Photo storage not configured, photo uploads disabled")
		return nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
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
		log.Printf("[Storage] Failed to configure storage client: %v", err)
		return nil
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.Storage.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Storage.Endpoint)
		}
	})

	return &PhotoStore{
		client:    client,
		bucket:    cfg.Storage.Bucket,
		publicURL: strings.TrimRight(cfg.Storage.PublicURL, "/"),
	}
}

// UploadPhoto stores a photo blob under photos/<kind>/<id> and returns its
// public URL.
func (p *PhotoStore) UploadPhoto(ctx context.Context, kind string, id int, data []byte, contentType string) (string, error) {
	key := fmt.Sprintf("photos/%s/%d", kind, id)

	_, err := p.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(p.bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(data),
		ContentType: aws.String(contentType),
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload photo: %w", err)
	}

	return p.publicURL + "/" + key, nil
}
