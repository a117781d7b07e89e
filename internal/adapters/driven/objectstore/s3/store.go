// Package s3 provides the object-store gateway over any S3-compatible
// endpoint (Yandex Object Storage in production, MinIO in development).
package s3

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	awss3 "github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"

	"github.com/Zea-Zee/yandex-LLM-safety-camp/internal/core/domain"
	"github.com/Zea-Zee/yandex-LLM-safety-camp/internal/core/ports/driven"
)

// Ensure Store implements the interface.
var _ driven.ObjectStore = (*Store)(nil)

// Config holds connection settings for the store.
type Config struct {
	// Endpoint is the base URL of the S3-compatible service.
	Endpoint string

	// Region is the signing region.
	Region string

	// AccessKey and SecretKey are static credentials.
	AccessKey string
	SecretKey string

	// Bucket is the bucket all operations run against.
	Bucket string
}

// Store lists and transfers blobs in one bucket.
type Store struct {
	client *awss3.Client
	bucket string
}

// NewStore creates a store over the configured bucket.
func NewStore(ctx context.Context, cfg Config) (*Store, error) {
	if cfg.Bucket == "" {
		return nil, fmt.Errorf("%w: bucket is required", domain.ErrInvalidInput)
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx,
		awsconfig.WithRegion(cfg.Region),
		awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.AccessKey, cfg.SecretKey, ""),
		),
	)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrStorageUnavailable, err)
	}

	client := awss3.NewFromConfig(awsCfg, func(o *awss3.Options) {
		if cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
		}
		// Yandex Object Storage and MinIO route by path, not virtual host.
		o.UsePathStyle = true
	})

	return &Store{client: client, bucket: cfg.Bucket}, nil
}

// List returns every object under the prefix, including directory markers
// and zero-byte objects; filtering is the caller's concern.
func (s *Store) List(ctx context.Context, prefix string) ([]driven.ObjectInfo, error) {
	var out []driven.ObjectInfo

	paginator := awss3.NewListObjectsV2Paginator(s.client, &awss3.ListObjectsV2Input{
		Bucket: aws.String(s.bucket),
		Prefix: aws.String(prefix),
	})
	for paginator.HasMorePages() {
		page, err := paginator.NextPage(ctx)
		if err != nil {
			return nil, fmt.Errorf("%w: list %q: %v", domain.ErrStorageUnavailable, prefix, err)
		}
		for _, obj := range page.Contents {
			out = append(out, driven.ObjectInfo{
				Key:  aws.ToString(obj.Key),
				Size: aws.ToInt64(obj.Size),
			})
		}
	}

	return out, nil
}

// Fetch downloads one object.
func (s *Store) Fetch(ctx context.Context, key string) ([]byte, error) {
	resp, err := s.client.GetObject(ctx, &awss3.GetObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return nil, fmt.Errorf("%w: fetch %q: %v", domain.ErrStorageUnavailable, key, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: read %q: %v", domain.ErrStorageUnavailable, key, err)
	}
	return data, nil
}

// Put uploads one object.
func (s *Store) Put(ctx context.Context, key string, data []byte) error {
	_, err := s.client.PutObject(ctx, &awss3.PutObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
		Body:   bytes.NewReader(data),
	})
	if err != nil {
		return fmt.Errorf("%w: put %q: %v", domain.ErrStorageUnavailable, key, err)
	}
	return nil
}

// Exists reports whether the object is present.
func (s *Store) Exists(ctx context.Context, key string) (bool, error) {
	_, err := s.client.HeadObject(ctx, &awss3.HeadObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	})
	if err == nil {
		return true, nil
	}

	var notFound *types.NotFound
	if errors.As(err, &notFound) {
		return false, nil
	}
	return false, fmt.Errorf("%w: head %q: %v", domain.ErrStorageUnavailable, key, err)
}
