package storage

import (
	"bytes"
	"context"
	"fmt"
	"io"

	"pdfintake/upload-service/internal/config"
	"pdfintake/upload-service/internal/domain"
	"pdfintake/upload-service/pkg/logger"

	"github.com/aws/aws-sdk-go-v2/aws"
	v4 "github.com/aws/aws-sdk-go-v2/aws/signer/v4"
	awsCfg "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
)

// Object keys live under a fixed prefix so the bucket can be shared with
// other tooling.
const keyPrefix = "uploads/"

// The slices of the SDK clients Persist needs, so tests can substitute them.
type s3API interface {
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

type s3PresignAPI interface {
	PresignGetObject(ctx context.Context, params *s3.GetObjectInput, optFns ...func(*s3.PresignOptions)) (*v4.PresignedHTTPRequest, error)
}

// s3Store implements Store against an S3 (or S3-compatible) bucket.
// One client is built at startup and reused for every request.
type s3Store struct {
	client        s3API
	presignClient s3PresignAPI
	bucket        string
	log           *logger.Logger
}

// NewS3Store builds the S3-backed Store from the given credentials.
func NewS3Store(ctx context.Context, cfg config.S3Config, log *logger.Logger) (Store, error) {
	opts := []func(*awsCfg.LoadOptions) error{
		awsCfg.WithRegion(cfg.Region),
		awsCfg.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(cfg.AccessKeyID, cfg.SecretAccessKey, "")),
	}

	awsSDKConfig, err := awsCfg.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}

	client := s3.NewFromConfig(awsSDKConfig, func(o *s3.Options) {
		if cfg.Endpoint != "" {
			// Path-style addressing is required by most S3-compatible
			// stores (MinIO and friends).
			o.BaseEndpoint = aws.String(cfg.Endpoint)
			o.UsePathStyle = true
		}
	})

	return &s3Store{
		client:        client,
		presignClient: s3.NewPresignClient(client),
		bucket:        cfg.BucketName,
		log:           log,
	}, nil
}

func (s *s3Store) Persist(ctx context.Context, id, ext string, file io.Reader, meta []byte) (*Locator, error) {
	baseKey := keyPrefix + id + "/"
	pdfKey := baseKey + domain.StoredFileName(ext)
	metaKey := baseKey + domain.MetaFileName

	if err := s.putObject(ctx, pdfKey, file, "application/pdf"); err != nil {
		return nil, fmt.Errorf("upload %s: %w", pdfKey, err)
	}
	// No rollback of the file object if this second write fails; the
	// orphaned object is an accepted inconsistency window.
	if err := s.putObject(ctx, metaKey, bytes.NewReader(meta), "text/plain; charset=utf-8"); err != nil {
		return nil, fmt.Errorf("upload %s: %w", metaKey, err)
	}

	loc := &Locator{
		Mode:    ModeS3,
		Bucket:  s.bucket,
		PDFKey:  pdfKey,
		MetaKey: metaKey,
	}

	// The download link is a convenience; its failure must not fail an
	// upload that already succeeded.
	if url, err := s.presignGet(ctx, pdfKey); err != nil {
		s.log.Warnf("presign failed for %s: %v", pdfKey, err)
	} else {
		loc.PDFURL = &url
	}

	return loc, nil
}

func (s *s3Store) putObject(ctx context.Context, key string, body io.Reader, contentType string) error {
	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(key),
		Body:        body,
		ContentType: aws.String(contentType),
		ACL:         types.ObjectCannedACLPrivate,
	})
	return err
}

func (s *s3Store) presignGet(ctx context.Context, key string) (string, error) {
	req, err := s.presignClient.PresignGetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	}, s3.WithPresignExpires(DefaultPresignedURLExpiry))
	if err != nil {
		return "", err
	}
	return req.URL, nil
}

func (s *s3Store) Mode() string { return ModeS3 }

func (s *s3Store) Bucket() string { return s.bucket }
