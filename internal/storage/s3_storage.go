package storage

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/rs/zerolog"

	"webapp-template/internal/config"
)

// S3Storage keeps media in an S3-compatible bucket. Downloads are served via
// presigned URLs.
type S3Storage struct {
	bucket     string
	client     *s3.Client
	presigner  *s3.PresignClient
	presignTTL time.Duration
	log        zerolog.Logger
}

func NewS3Storage(ctx context.Context, cfg config.StorageConfig, presignTTL time.Duration, log zerolog.Logger) (*S3Storage, error) {
	logger := log.With().Str("component", "s3-storage").Str("bucket", cfg.Bucket).Logger()
	if cfg.Bucket == "" {
		return nil, errors.New("AWS_STORAGE_BUCKET_NAME must not be empty")
	}

	opts := []func(*awsconfig.LoadOptions) error{
		awsconfig.WithRegion(cfg.Region),
	}
	if cfg.AccessKeyID != "" && cfg.SecretAccessKey != "" {
		opts = append(opts, awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.AccessKeyID, cfg.SecretAccessKey, ""),
		))
	}
	if cfg.Endpoint != "" {
		resolver := aws.EndpointResolverWithOptionsFunc(func(service, region string, options ...interface{}) (aws.Endpoint, error) {
			return aws.Endpoint{
				URL:           cfg.Endpoint,
				PartitionID:   "aws",
				SigningRegion: cfg.Region,
			}, nil
		})
		opts = append(opts, awsconfig.WithEndpointResolverWithOptions(resolver))
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		o.UsePathStyle = cfg.Endpoint != ""
	})

	logger.Info().Str("region", cfg.Region).Str("endpoint", cfg.Endpoint).Msg("s3 media storage initialized")

	return &S3Storage{
		bucket:     cfg.Bucket,
		client:     client,
		presigner:  s3.NewPresignClient(client),
		presignTTL: presignTTL,
		log:        logger,
	}, nil
}

func (s *S3Storage) Mode() string { return "s3" }

func (s *S3Storage) PresignGet(ctx context.Context, key string) (string, error) {
	cleaned, err := CleanKey(key)
	if err != nil {
		return "", err
	}

	req, err := s.presigner.PresignGetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(cleaned),
	}, s3.WithPresignExpires(s.presignTTL))
	if err != nil {
		return "", fmt.Errorf("presign get object: %w", err)
	}
	return req.URL, nil
}

// Health performs a HeadBucket request.
func (s *S3Storage) Health(ctx context.Context) error {
	if _, err := s.client.HeadBucket(ctx, &s3.HeadBucketInput{Bucket: aws.String(s.bucket)}); err != nil {
		return fmt.Errorf("head bucket: %w", err)
	}
	return nil
}
