//go:generate mockgen -source=s3.go -destination=mocks/mocks.go -package=mocks

// Package publisher copies a published period to S3-compatible object
// storage, so the archive survives the host it was generated on.
package publisher

import (
	"bytes"
	"context"
	"mime"
	"os"
	"path"
	"path/filepath"
	"sort"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/pkg/errors"

	"github.com/durabrake/financial-dashboard/internal/config"
	"github.com/durabrake/financial-dashboard/internal/domain"
	"github.com/durabrake/financial-dashboard/pkg/log"
)

var (
	ErrBucketRequired = errors.New("storage bucket is required")
	ErrEmptyPeriod    = errors.New("period directory has no files")
)

// ObjectPutter is the part of *s3.Client the publisher needs.
type ObjectPutter interface {
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

type S3Publisher struct {
	client ObjectPutter
	bucket string
	prefix string
}

// NewS3Publisher builds a client from the default AWS credential chain. A
// custom endpoint switches to path-style addressing for MinIO and friends.
func NewS3Publisher(ctx context.Context, cfg config.Storage) (*S3Publisher, error) {
	if cfg.Bucket == "" {
		return nil, ErrBucketRequired
	}

	region := cfg.Region
	if region == "" {
		region = "us-east-1"
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(region))
	if err != nil {
		return nil, errors.Wrap(err, "loading AWS config")
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
			o.UsePathStyle = true
		}
	})

	return NewWithClient(client, cfg.Bucket, cfg.Prefix), nil
}

func NewWithClient(client ObjectPutter, bucket, prefix string) *S3Publisher {
	return &S3Publisher{
		client: client,
		bucket: bucket,
		prefix: strings.Trim(prefix, "/"),
	}
}

// Key is the object key of file within period.
func (p *S3Publisher) Key(period domain.Period, file string) string {
	return path.Join(p.prefix, period.String(), file)
}

// PublishPeriod uploads every file of the period directory dir and returns
// the object keys in upload order. Hidden entries and subdirectories are
// skipped.
func (p *S3Publisher) PublishPeriod(ctx context.Context, period domain.Period, dir string) ([]string, error) {
	logger := log.ForContext(ctx).WithFields(log.Fields{
		"period": period.String(),
		"bucket": p.bucket,
	})

	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, errors.Wrapf(err, "reading %s", dir)
	}

	files := make([]string, 0, len(entries))
	for _, e := range entries {
		if e.IsDir() || strings.HasPrefix(e.Name(), ".") {
			continue
		}
		files = append(files, e.Name())
	}
	if len(files) == 0 {
		return nil, errors.Wrapf(ErrEmptyPeriod, "%s", dir)
	}
	sort.Strings(files)

	keys := make([]string, 0, len(files))
	for _, name := range files {
		body, err := os.ReadFile(filepath.Join(dir, name))
		if err != nil {
			return keys, errors.Wrapf(err, "reading %s", name)
		}

		key := p.Key(period, name)
		_, err = p.client.PutObject(ctx, &s3.PutObjectInput{
			Bucket:        aws.String(p.bucket),
			Key:           aws.String(key),
			Body:          bytes.NewReader(body),
			ContentLength: aws.Int64(int64(len(body))),
			ContentType:   aws.String(contentType(name)),
		})
		if err != nil {
			return keys, errors.Wrapf(err, "uploading %s", key)
		}

		logger.WithField("key", key).Debug("object uploaded")
		keys = append(keys, key)
	}

	logger.WithField("objects", len(keys)).Info("period published to object storage")
	return keys, nil
}

func contentType(name string) string {
	if ct := mime.TypeByExtension(filepath.Ext(name)); ct != "" {
		return ct
	}
	if strings.HasSuffix(name, ".md") {
		return "text/markdown; charset=utf-8"
	}
	return "application/octet-stream"
}
