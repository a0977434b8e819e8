package main

import (
	"context"
	"flag"
	"fmt"

	"github.com/google/subcommands"

	"github.com/durabrake/financial-dashboard/infrastructure/publisher"
	"github.com/durabrake/financial-dashboard/internal/archive"
)

type publishCmd struct {
	period string
	bucket string
}

func (*publishCmd) Name() string     { return "publish" }
func (*publishCmd) Synopsis() string { return "upload an archived period to S3" }
func (*publishCmd) Usage() string {
	return `kpi publish [-p YY.MM] [-bucket name]

  Copies generated/YY.MM/ to s3://$S3_BUCKET/$S3_PREFIX/YY.MM/. Credentials
  come from the default AWS chain; S3_ENDPOINT targets MinIO and other
  S3-compatible stores.
`
}

func (c *publishCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.period, "p", "", "Period to upload (defaults to the newest archive)")
	f.StringVar(&c.bucket, "bucket", "", "Bucket (overrides S3_BUCKET)")
}

func (c *publishCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	cfg, err := loadConfig()
	if err != nil {
		return fail(err)
	}
	if c.bucket != "" {
		cfg.Storage.Bucket = c.bucket
	}

	arch := archive.New(cfg.Paths.OutputDir)
	period, err := periodOrDefault(c.period, cfg, arch)
	if err != nil {
		return fail(err)
	}
	exists, err := arch.Exists(period)
	if err != nil {
		return fail(err)
	}
	if !exists {
		return fail(fmt.Errorf("%s: %w", period, archive.ErrNoData))
	}

	p, err := publisher.NewS3Publisher(ctx, cfg.Storage)
	if err != nil {
		return fail(err)
	}

	keys, err := p.PublishPeriod(ctx, period, arch.PeriodDir(period))
	if err != nil {
		return fail(err)
	}

	for _, k := range keys {
		fmt.Printf("s3://%s/%s\n", cfg.Storage.Bucket, k)
	}
	return subcommands.ExitSuccess
}
