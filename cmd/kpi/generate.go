package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/google/subcommands"

	"github.com/durabrake/financial-dashboard/internal/config"
	"github.com/durabrake/financial-dashboard/internal/domain"
	"github.com/durabrake/financial-dashboard/internal/usecases/generating"
	"github.com/durabrake/financial-dashboard/pkg/utils"
)

type generateCmd struct {
	period      string
	snapshot    string
	overwrite   bool
	skipInvalid bool
	inputDir    string
	outputDir   string
}

func (*generateCmd) Name() string     { return "generate" }
func (*generateCmd) Synopsis() string { return "extract, derive and archive one reporting period" }
func (*generateCmd) Usage() string {
	return `kpi generate [-p YY.MM] [-snapshot YYYY-MM-DD] [-overwrite] [-skip-invalid]

  Reads the period's workbooks from the input directory and publishes
  generated/YY.MM/. An existing period is only replaced with -overwrite.
`
}

func (c *generateCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.period, "p", "", "Period to generate (YY.MM, defaults to PERIOD or last month)")
	f.StringVar(&c.snapshot, "snapshot", "", "Snapshot date for backlog ages (defaults to the period's last day)")
	f.BoolVar(&c.overwrite, "overwrite", false, "Replace an existing archive")
	f.BoolVar(&c.skipInvalid, "skip-invalid", false, "Skip unparseable records instead of aborting")
	f.StringVar(&c.inputDir, "input", "", "Input directory (overrides INPUT_DIR)")
	f.StringVar(&c.outputDir, "output", "", "Output directory (overrides OUTPUT_DIR)")
}

func (c *generateCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	cfg, err := loadConfig()
	if err != nil {
		return fail(err)
	}
	c.apply(cfg)

	req, err := c.request(cfg, time.Now())
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitUsageError
	}

	service, closeLedger, err := newGenerator(ctx, cfg, nil)
	if err != nil {
		return fail(err)
	}
	defer closeLedger()

	result, err := service.Generate(ctx, req)
	if err != nil {
		return fail(err)
	}

	fmt.Printf("Generated %s (%s) in %s, run %s\n",
		result.Period, result.Period.DisplayName(), result.Duration.Round(time.Millisecond), result.RunID)
	if result.SkippedRecords > 0 {
		fmt.Printf("Skipped %d invalid records:\n", result.SkippedRecords)
		for _, s := range result.Skipped {
			fmt.Printf("  - %s\n", s.Error())
		}
	}
	return subcommands.ExitSuccess
}

func (c *generateCmd) apply(cfg *config.Config) {
	if c.inputDir != "" {
		cfg.Paths.InputDir = c.inputDir
	}
	if c.outputDir != "" {
		cfg.Paths.OutputDir = c.outputDir
	}
	if c.skipInvalid {
		cfg.Generation.ParseFailurePolicy = config.ParseFailureSkip
	}
}

// request defaults the period to PERIOD, then to the month before now.
func (c *generateCmd) request(cfg *config.Config, now time.Time) (generating.Request, error) {
	req := generating.Request{Overwrite: c.overwrite}

	value := c.period
	if value == "" {
		value = cfg.Generation.Period
	}
	if value == "" {
		req.Period = domain.PeriodOf(now).Prev(1)
	} else {
		period, err := domain.ParsePeriod(value)
		if err != nil {
			return req, err
		}
		req.Period = period
	}

	if c.snapshot != "" {
		snapshot, err := utils.ParseDate(c.snapshot)
		if err != nil {
			return req, fmt.Errorf("invalid snapshot date %q: %w", c.snapshot, err)
		}
		req.SnapshotDate = *snapshot
	}

	return req, nil
}
