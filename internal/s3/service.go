package s3

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"time"

	"github.com/cockroachdb/errors"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsConfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	s3types "github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/jurisflow/jurisflow/internal/config"
	ierr "github.com/jurisflow/jurisflow/internal/errors"
)

const (
	defaultPresignExpiryDuration = 30 * time.Minute
)

// Service stores document bytes in object storage. Keys are always
// prefixed with the tenant id so one firm can never address another
// firm's objects.
type Service interface {
	Upload(ctx context.Context, key string, data []byte, contentType string) error
	Download(ctx context.Context, key string) ([]byte, error)
	GetPresignedURL(ctx context.Context, key string) (string, error)
	Delete(ctx context.Context, key string) error
	Exists(ctx context.Context, key string) (bool, error)
}

type s3ServiceImpl struct {
	client *s3.Client
	config *config.S3Config
}

func NewService(cfg *config.Configuration) (Service, error) {
	if cfg.S3.Bucket == "" {
		return nil, nil
	}

	awsCfg, err := awsConfig.LoadDefaultConfig(context.Background(),
		awsConfig.WithRegion(cfg.S3.Region),
	)
	if err != nil {
		return nil, ierr.WithError(err).WithHint("failed to load aws config").
			Mark(ierr.ErrHTTPClient)
	}

	return &s3ServiceImpl{
		config: &cfg.S3,
		client: s3.NewFromConfig(awsCfg),
	}, nil
}

// ObjectKey builds the canonical storage key for a document
func ObjectKey(tenantID, documentID, fileName string) string {
	return fmt.Sprintf("%s/%s/%s", tenantID, documentID, fileName)
}

func (s *s3ServiceImpl) presignExpiry() time.Duration {
	if s.config.PresignExpiryMinutes > 0 {
		return time.Duration(s.config.PresignExpiryMinutes) * time.Minute
	}
	return defaultPresignExpiryDuration
}

func (s *s3ServiceImpl) Upload(ctx context.Context, key string, data []byte, contentType string) error {
	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.config.Bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(data),
		ContentType: aws.String(contentType),
	})
	if err != nil {
		return ierr.WithError(err).
			WithHint("Failed to store document").
			Mark(ierr.ErrHTTPClient)
	}
	return nil
}

func (s *s3ServiceImpl) Download(ctx context.Context, key string) ([]byte, error) {
	out, err := s.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.config.Bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		var nsk *s3types.NoSuchKey
		if errors.As(err, &nsk) {
			return nil, ierr.NewError("document not found").
				WithHint("Document not found").
				Mark(ierr.ErrNotFound)
		}
		return nil, ierr.WithError(err).
			WithHint("Failed to fetch document").
			Mark(ierr.ErrHTTPClient)
	}
	defer out.Body.Close()

	data, err := io.ReadAll(out.Body)
	if err != nil {
		return nil, ierr.WithError(err).
			WithHint("Failed to read document").
			Mark(ierr.ErrHTTPClient)
	}
	return data, nil
}

func (s *s3ServiceImpl) GetPresignedURL(ctx context.Context, key string) (string, error) {
	presignClient := s3.NewPresignClient(s.client)
	req, err := presignClient.PresignGetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.config.Bucket),
		Key:    aws.String(key),
	}, s3.WithPresignExpires(s.presignExpiry()))
	if err != nil {
		return "", ierr.WithError(err).
			WithHint("Failed to generate download link").
			Mark(ierr.ErrHTTPClient)
	}
	return req.URL, nil
}

func (s *s3ServiceImpl) Delete(ctx context.Context, key string) error {
	_, err := s.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(s.config.Bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return ierr.WithError(err).
			WithHint("Failed to delete document").
			Mark(ierr.ErrHTTPClient)
	}
	return nil
}

func (s *s3ServiceImpl) Exists(ctx context.Context, key string) (bool, error) {
	_, err := s.client.HeadObject(ctx, &s3.HeadObjectInput{
		Bucket: aws.String(s.config.Bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		var nsk *s3types.NoSuchKey
		var nf *s3types.NotFound
		if errors.As(err, &nsk) || errors.As(err, &nf) {
			return false, nil
		}
		return false, ierr.WithError(err).
			WithHint("Failed to check document").
			Mark(ierr.ErrHTTPClient)
	}
	return true, nil
}
