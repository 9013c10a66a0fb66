package repository

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	"github.com/noah-isme/adminui-api/internal/models"
	"github.com/noah-isme/adminui-api/pkg/config"
)

// S3MemberSource reads the members list from one object of an S3-compatible
// bucket (AWS S3 or MinIO).
type S3MemberSource struct {
	client *s3.Client
	bucket string
	key    string
}

// NewS3MemberSource resolves credentials through the default AWS chain.
func NewS3MemberSource(ctx context.Context, cfg config.S3SourceConfig) (*S3MemberSource, error) {
	if cfg.Bucket == "" || cfg.Key == "" {
		return nil, fmt.Errorf("s3 member source requires bucket and key")
	}
	region := cfg.Region
	if region == "" {
		region = "us-east-1"
	}
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(region))
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}
	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		o.UsePathStyle = cfg.PathStyle
		if cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
		}
	})
	return NewS3MemberSourceWithClient(client, cfg.Bucket, cfg.Key), nil
}

// NewS3MemberSourceWithClient wraps an existing client.
func NewS3MemberSourceWithClient(client *s3.Client, bucket, key string) *S3MemberSource {
	return &S3MemberSource{client: client, bucket: bucket, key: key}
}

// Name identifies the source in logs and metrics.
func (s *S3MemberSource) Name() string { return "s3" }

// Fetch downloads and decodes the object.
func (s *S3MemberSource) Fetch(ctx context.Context) ([]models.Member, error) {
	out, err := s.client.GetObject(ctx, &s3.GetObjectInput{Bucket: aws.String(s.bucket), Key: aws.String(s.key)})
	if err != nil {
		return nil, fmt.Errorf("get s3://%s/%s: %w", s.bucket, s.key, err)
	}
	defer out.Body.Close() //nolint:errcheck
	return decodeMembers(out.Body)
}
