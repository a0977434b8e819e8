package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/google/subcommands"

	"github.com/durabrake/financial-dashboard/internal/archive"
	"github.com/durabrake/financial-dashboard/internal/usecases/presenting"
)

type reportCmd struct {
	period string
	raw    bool
}

func (*reportCmd) Name() string     { return "report" }
func (*reportCmd) Synopsis() string { return "print a period's KPIs in the terminal" }
func (*reportCmd) Usage() string {
	return `kpi report [-p YY.MM] [-raw]

  Renders the summary, working capital, customer and backlog figures of an
  archived period. -raw prints the markdown instead of styling it.
`
}

func (c *reportCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.period, "p", "", "Period to report (defaults to the newest archive)")
	f.BoolVar(&c.raw, "raw", false, "Print plain markdown")
}

func (c *reportCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	cfg, err := loadConfig()
	if err != nil {
		return fail(err)
	}

	view, err := presenting.NewService(cfg, archive.New(cfg.Paths.OutputDir)).
		Dashboard(ctx, presenting.Request{Period: c.period})
	if err != nil {
		return fail(err)
	}

	if err := printMarkdown(os.Stdout, reportMarkdown(view), c.raw); err != nil {
		return fail(err)
	}
	return subcommands.ExitSuccess
}

func reportMarkdown(view *presenting.DashboardView) string {
	var b strings.Builder

	fmt.Fprintf(&b, "# Financial Dashboard: %s\n\n", view.Title)
	if view.Period == "" {
		b.WriteString("No archived periods. Run `kpi generate` first.\n")
		return b.String()
	}
	if view.NoData {
		b.WriteString("_No data for this period._\n")
		return b.String()
	}

	if len(view.SourceFiles) > 0 {
		fmt.Fprintf(&b, "Sources: %s\n\n", strings.Join(view.SourceFiles, ", "))
	}
	if view.Skipped > 0 {
		fmt.Fprintf(&b, "> %d invalid records were skipped during generation.\n\n", view.Skipped)
	}

	if s := view.Summary; s != nil {
		b.WriteString("## Summary\n\n")
		writeMetrics(&b, s.Snapshot)
		if len(s.Targets) > 0 {
			b.WriteString("### Targets\n\n")
			writeMetrics(&b, s.Targets)
		}
		if len(s.Comparisons) > 0 {
			b.WriteString("### vs trailing 3 months\n\n")
			b.WriteString("| Metric | Current | T3M avg | Change | |\n|---|---:|---:|---:|---|\n")
			for _, cmp := range s.Comparisons {
				fmt.Fprintf(&b, "| %s | %s | %s | %s | %s |\n", cmp.Label, cmp.Current, cmp.Average, cmp.Delta, cmp.Status.Emoji())
			}
			b.WriteString("\n")
		}
		if len(s.YTD) > 0 {
			fmt.Fprintf(&b, "### %s\n\n", s.YTDLabel)
			writeMetrics(&b, s.YTD)
		}
	}

	if n := view.NWC; n != nil {
		b.WriteString("## Net working capital\n\n")
		writeMetrics(&b, n.Components)
		writeMetrics(&b, n.Ratios)
	}

	b.WriteString("## Customers\n\n")
	if cu := view.Customers; cu != nil {
		writeMetrics(&b, cu.Summary)
		if len(cu.TopCustomers) > 0 {
			b.WriteString("| # | Customer | L12M | Share | GP % | Segment |\n|---:|---|---:|---:|---:|---|\n")
			for _, r := range cu.TopCustomers {
				fmt.Fprintf(&b, "| %d | %s | %s | %s | %s %s | %s |\n",
					r.Rank, escapeCell(r.Customer), r.L12MSales, r.L12MShare, r.GPMargin, r.MarginStatus.Emoji(), r.Segment)
			}
			b.WriteString("\n")
		}
	} else {
		b.WriteString("_No data for this period._\n\n")
	}

	b.WriteString("## Order backlog\n\n")
	if bl := view.Backlog; bl != nil {
		writeMetrics(&b, bl.Summary)
		if len(bl.Ages) > 0 {
			b.WriteString("| Age | Orders | Value | Share |\n|---|---:|---:|---:|\n")
			for _, r := range bl.Ages {
				fmt.Fprintf(&b, "| %s | %d | %s | %s |\n", r.Name, r.Orders, r.Value, r.Share)
			}
			b.WriteString("\n")
		}
	} else {
		b.WriteString("_No data for this period._\n\n")
	}

	return b.String()
}

func writeMetrics(b *strings.Builder, metrics []presenting.Metric) {
	if len(metrics) == 0 {
		return
	}
	b.WriteString("| Metric | Value | |\n|---|---:|---|\n")
	for _, m := range metrics {
		value := m.Value
		if m.Delta != "" {
			value += " (" + m.Delta + ")"
		}
		fmt.Fprintf(b, "| %s | %s | %s |\n", m.Label, value, m.Status.Emoji())
	}
	b.WriteString("\n")
}

func escapeCell(s string) string {
	return strings.ReplaceAll(s, "|", "\\|")
}
