package storage

import (
	"context"
	"fmt"
	"log"
	"mime/multipart"
	"time"

	appconfig "letter-routing-api/config"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/feature/s3/manager"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

const presignTTL = 15 * time.Minute

type s3Store struct {
	bucket        string
	client        *s3.Client
	presignClient *s3.PresignClient
}

// newS3Store uses the default credential provider chain (env vars
// locally, IAM role in production).
func newS3Store(cfg appconfig.StorageConfig) *s3Store {
	awsCfg, err := awsconfig.LoadDefaultConfig(context.Background(),
		awsconfig.WithRegion(cfg.Region),
	)
	if err != nil {
		log.Fatalf("failed to load AWS config for S3: %v", err)
	}

	client := s3.NewFromConfig(awsCfg)
	return &s3Store{
		bucket:        cfg.Bucket,
		client:        client,
		presignClient: s3.NewPresignClient(client),
	}
}

func (s *s3Store) Save(ctx context.Context, file *multipart.FileHeader, key string) error {
	src, err := file.Open()
	if err != nil {
		return fmt.Errorf("failed to open upload: %w", err)
	}
	defer src.Close()

	uploader := manager.NewUploader(s.client)
	_, err = uploader.Upload(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(key),
		Body:        src,
		ContentType: aws.String(file.Header.Get("Content-Type")),
	})
	if err != nil {
		return fmt.Errorf("failed to upload file to S3: %w", err)
	}
	return nil
}

func (s *s3Store) Delete(ctx context.Context, key string) error {
	_, err := s.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return fmt.Errorf("failed to delete S3 object %s: %w", key, err)
	}
	return nil
}

func (s *s3Store) Download(ctx context.Context, key string) (Download, error) {
	req, err := s.presignClient.PresignGetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	}, s3.WithPresignExpires(presignTTL))
	if err != nil {
		return Download{}, fmt.Errorf("failed to presign URL: %w", err)
	}
	return Download{URL: req.URL}, nil
}
