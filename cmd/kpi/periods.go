package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/google/subcommands"

	"github.com/durabrake/financial-dashboard/internal/archive"
	"github.com/durabrake/financial-dashboard/internal/domain"
	"github.com/durabrake/financial-dashboard/pkg/utils"
)

type periodsCmd struct {
	json bool
	runs uint64
}

func (*periodsCmd) Name() string     { return "periods" }
func (*periodsCmd) Synopsis() string { return "list archived periods" }
func (*periodsCmd) Usage() string {
	return `kpi periods [-json] [-runs n]

  Lists the archived periods, newest first. With -runs, also prints the
  latest n runs from the run ledger.
`
}

func (c *periodsCmd) SetFlags(f *flag.FlagSet) {
	f.BoolVar(&c.json, "json", false, "Print the period list as JSON")
	f.Uint64Var(&c.runs, "runs", 0, "Also list the latest n ledger runs")
}

func (c *periodsCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	cfg, err := loadConfig()
	if err != nil {
		return fail(err)
	}

	available, err := archive.New(cfg.Paths.OutputDir).AvailablePeriods()
	if err != nil {
		return fail(err)
	}

	if c.json {
		fmt.Println(utils.PrettyJson(available))
	} else {
		writePeriods(os.Stdout, available)
	}

	if c.runs == 0 {
		return subcommands.ExitSuccess
	}

	ledger, closeLedger, err := openLedger(ctx, cfg)
	if err != nil {
		return fail(err)
	}
	defer closeLedger()
	if ledger == nil {
		fmt.Fprintln(os.Stderr, "run ledger is disabled (RUN_LEDGER_ENABLED=false)")
		return subcommands.ExitFailure
	}

	runs, err := ledger.Recent(ctx, c.runs)
	if err != nil {
		return fail(err)
	}
	fmt.Println()
	writeRuns(os.Stdout, runs)

	return subcommands.ExitSuccess
}

func writePeriods(w io.Writer, available *domain.AvailablePeriods) {
	if len(available.Periods) == 0 {
		fmt.Fprintln(w, "No archived periods. Run `kpi generate` first.")
		return
	}

	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "PERIOD\tMONTH\t")
	for _, p := range available.Periods {
		period, err := domain.ParsePeriod(p)
		if err != nil {
			continue
		}
		marker := ""
		if p == available.Latest {
			marker = "latest"
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\n", p, period.DisplayName(), marker)
	}
	tw.Flush()
}

func writeRuns(w io.Writer, runs []*domain.GenerationRun) {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "RUN\tPERIOD\tSTATUS\tSTARTED\tSKIPPED\tERROR")
	for _, r := range runs {
		msg := ""
		if r.ErrorMessage != nil {
			msg = strings.SplitN(*r.ErrorMessage, "\n", 2)[0]
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%d\t%s\n",
			r.ID, r.Period, r.Status, r.StartedAt.Format("2006-01-02 15:04"), r.SkippedRecords, msg)
	}
	tw.Flush()
}
