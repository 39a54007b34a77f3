package blobstore

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/feature/s3/manager"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/smithy-go"

	"bugg-go/internal/bugg"
	"bugg-go/internal/config"
)

// s3API is the subset of the S3 client used by S3Store.
type s3API interface {
	manager.UploadAPIClient
	HeadObject(ctx context.Context, params *s3.HeadObjectInput, optFns ...func(*s3.Options)) (*s3.HeadObjectOutput, error)
}

// S3Store uploads objects to Amazon S3 or an S3-compatible service.
// Large files go through the multipart upload manager.
type S3Store struct {
	name     string
	client   s3API
	uploader *manager.Uploader
}

// NewS3Store creates an S3Store from configuration. Static credentials are
// used when both key fields are set; otherwise the default AWS chain applies.
func NewS3Store(ctx context.Context, name string, cfg config.StoreConfig) (*S3Store, error) {
	var loadOpts []func(*awsconfig.LoadOptions) error
	if cfg.S3Region != "" {
		loadOpts = append(loadOpts, awsconfig.WithRegion(cfg.S3Region))
	}
	if cfg.S3AccessKeyID != "" && cfg.S3SecretAccessKey != "" {
		loadOpts = append(loadOpts, awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.S3AccessKeyID, cfg.S3SecretAccessKey, ""),
		))
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, loadOpts...)
	if err != nil {
		return nil, fmt.Errorf("loading aws config: %w", err)
	}
	if awsCfg.Region == "" {
		awsCfg.Region = "us-east-1"
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.S3Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.S3Endpoint)
		}
		o.UsePathStyle = cfg.S3PathStyle
	})

	return newS3Store(name, client), nil
}

func newS3Store(name string, client s3API) *S3Store {
	return &S3Store{
		name:     name,
		client:   client,
		uploader: manager.NewUploader(client),
	}
}

// UploadObject uploads size bytes from r to s3://bucket/key.
func (s *S3Store) UploadObject(ctx context.Context, bucket, key string, r io.Reader, size int64, contentType string) (*bugg.ObjectInfo, error) {
	exists, err := s.exists(ctx, bucket, key)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, fmt.Errorf("%w: s3://%s/%s", ErrObjectExists, bucket, key)
	}

	_, err = s.uploader.Upload(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(bucket),
		Key:         aws.String(key),
		Body:        r,
		ContentType: aws.String(contentType),
		IfNoneMatch: aws.String("*"),
	})
	if err != nil {
		var apiErr smithy.APIError
		if errors.As(err, &apiErr) && apiErr.ErrorCode() == "PreconditionFailed" {
			return nil, fmt.Errorf("%w: s3://%s/%s", ErrObjectExists, bucket, key)
		}
		return nil, fmt.Errorf("uploading to s3://%s/%s: %w", bucket, key, err)
	}

	return &bugg.ObjectInfo{Bucket: bucket, Key: key, Size: size, ContentType: contentType}, nil
}

// exists reports whether an object is already stored at bucket/key.
func (s *S3Store) exists(ctx context.Context, bucket, key string) (bool, error) {
	_, err := s.client.HeadObject(ctx, &s3.HeadObjectInput{
		Bucket: aws.String(bucket),
		Key:    aws.String(key),
	})
	if err == nil {
		return true, nil
	}

	// Write-only drop-box credentials get Forbidden here; If-None-Match on
	// the upload still guards against overwrites in that case.
	var apiErr smithy.APIError
	if errors.As(err, &apiErr) {
		switch apiErr.ErrorCode() {
		case "NotFound", "NoSuchKey", "Forbidden", "AccessDenied":
			return false, nil
		}
	}
	return false, fmt.Errorf("checking s3://%s/%s: %w", bucket, key, err)
}

// ValidateSetup checks that a client was configured. It makes no network
// calls: the drop-box credentials are typically write-only.
func (s *S3Store) ValidateSetup(context.Context) error {
	if s.client == nil {
		return fmt.Errorf("s3 store %q has no client", s.name)
	}
	return nil
}

// Compile-time check that S3Store implements bugg.BlobStore interface
var _ bugg.BlobStore = (*S3Store)(nil)
