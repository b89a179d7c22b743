package config

import (
	"context"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// S3Config points document storage at a bucket. Region and credentials
// come from the standard AWS environment.
type S3Config struct {
	Bucket          string
	Region          string
	PresignExpiryMinutes int
}

func LoadAwsConfig(ctx context.Context) (aws.Config, error) {
	cfg, err := config.LoadDefaultConfig(ctx)
	if err != nil {
		return aws.Config{}, err
	}
	return cfg, nil
}

func NewS3Client(ctx context.Context, cfg aws.Config) (*s3.Client, error) {
	return s3.NewFromConfig(cfg), nil
}
