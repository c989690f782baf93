package direct

import (
	"bytes"
	"context"
	"fmt"
	"net/url"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// seams for tests
var (
	loadDefaultAWSConfig  = awsconfig.LoadDefaultConfig
	newS3ClientFromConfig = func(cfg aws.Config, optFns ...func(*s3.Options)) *s3.Client {
		return s3.NewFromConfig(cfg, optFns...)
	}
	putObject = func(c *s3.Client, ctx context.Context, in *s3.PutObjectInput) error {
		_, err := c.PutObject(ctx, in)
		return err
	}
)

// Bucket stores media objects in one S3 bucket. Objects must be publicly
// readable for the note screens to render them: at <base>/<bucket>/<key>
// when a public base URL or custom endpoint is set, otherwise at the
// virtual-hosted AWS address of the bucket.
type Bucket struct {
	client    *s3.Client
	name      string
	region    string
	publicURL string
}

func NewBucket(ctx context.Context, cfg Config) (*Bucket, error) {
	opts := []func(*awsconfig.LoadOptions) error{awsconfig.WithRegion(cfg.S3Region)}
	if cfg.S3AccessKey != "" {
		opts = append(opts, awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.S3AccessKey, cfg.S3SecretKey, "")))
	}

	awsCfg, err := loadDefaultAWSConfig(ctx, opts...)
	if err != nil {
		return nil, err
	}

	client := newS3ClientFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.S3BaseEndpoint != "" {
			o.BaseEndpoint = aws.String(cfg.S3BaseEndpoint)
			o.UsePathStyle = true
		}
	})

	base := cfg.PublicBaseURL
	if base == "" {
		base = cfg.S3BaseEndpoint
	}
	return &Bucket{client: client, name: cfg.Bucket, region: cfg.S3Region, publicURL: strings.TrimRight(base, "/")}, nil
}

func (b *Bucket) Upload(ctx context.Context, key string, data []byte, contentType string) (string, error) {
	err := putObject(b.client, ctx, &s3.PutObjectInput{
		Bucket:      aws.String(b.name),
		Key:         aws.String(key),
		Body:        bytes.NewReader(data),
		ContentType: aws.String(contentType),
		IfNoneMatch: aws.String("*"),
	})
	if err != nil {
		return "", fmt.Errorf("upload %s: %w", key, err)
	}
	return key, nil
}

func (b *Bucket) PublicURL(path string) string {
	if b.publicURL == "" {
		return fmt.Sprintf("https://%s.s3.%s.amazonaws.com/%s", b.name, b.region, url.PathEscape(path))
	}
	return b.publicURL + "/" + url.PathEscape(b.name) + "/" + url.PathEscape(path)
}
