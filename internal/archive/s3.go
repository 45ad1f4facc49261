package archive

import (
	"bytes"
	"context"
	"fmt"
	"path"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/mrmateussiilva/petstory/config"
)

// ObjectPutter is the subset of the S3 client used by the archive.
type ObjectPutter interface {
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

// S3Archive keeps a copy of every delivered document in a bucket.
type S3Archive struct {
	Client ObjectPutter
	Bucket string
	Region string
	Prefix string
}

func NewS3Archive(ctx context.Context, cfg config.S3) (*S3Archive, error) {
	if cfg.Bucket == "" {
		return nil, fmt.Errorf("S3 archive enabled but S3_BUCKET is empty")
	}
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(cfg.Region))
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}
	return &S3Archive{
		Client: s3.NewFromConfig(awsCfg),
		Bucket: cfg.Bucket,
		Region: cfg.Region,
		Prefix: strings.Trim(cfg.Prefix, "/"),
	}, nil
}

// Store uploads data under <prefix>/<orderPath>/<name> and returns the object URL.
func (a *S3Archive) Store(ctx context.Context, orderPath, name, contentType string, data []byte) (string, error) {
	key := path.Join(a.Prefix, orderPath, name)

	_, err := a.Client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(a.Bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(data),
		ContentType: aws.String(contentType),
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload %s to S3: %w", key, err)
	}

	return fmt.Sprintf("https://%s.s3.%s.amazonaws.com/%s", a.Bucket, a.Region, key), nil
}
