package main

import (
	"bytes"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/durabrake/financial-dashboard/internal/config"
	"github.com/durabrake/financial-dashboard/internal/domain"
	"github.com/durabrake/financial-dashboard/internal/usecases/presenting"
)

func TestReportMarkdown(t *testing.T) {
	view := &presenting.DashboardView{
		Period:      "25.12",
		Title:       "December 2025",
		SourceFiles: []string{"financial_statements.xlsx", "backlog.xlsx"},
		Skipped:     2,
		Summary: &presenting.SummaryTab{
			Snapshot: []presenting.Metric{{Label: "Revenue", Value: "$1,000,000"}},
			Comparisons: []presenting.Comparison{
				{Label: "Revenue", Current: "$1,000,000", Average: "$950,000", Delta: "+5.3%", Status: domain.StatusGreen},
			},
		},
		NWC: &presenting.NWCTab{
			Ratios: []presenting.Metric{{Label: "DSO", Value: "9 days", Status: domain.StatusGreen}},
		},
		Customers: &presenting.CustomersTab{
			TopCustomers: []presenting.CustomerRow{{Rank: 1, Customer: "Acme | West", L12MSales: "$400,000", Segment: "Champions"}},
		},
	}

	md := reportMarkdown(view)
	assert.Contains(t, md, "# Financial Dashboard: December 2025")
	assert.Contains(t, md, "Sources: financial_statements.xlsx, backlog.xlsx")
	assert.Contains(t, md, "2 invalid records were skipped")
	assert.Contains(t, md, "| Revenue | $1,000,000 | $950,000 | +5.3% | 🟢 |")
	assert.Contains(t, md, "| DSO | 9 days | 🟢 |")
	assert.Contains(t, md, `Acme \| West`)
	assert.Contains(t, md, "## Order backlog\n\n_No data for this period._")
}

func TestReportMarkdown_Empty(t *testing.T) {
	md := reportMarkdown(&presenting.DashboardView{NoData: true, Title: "No archived periods"})
	assert.Contains(t, md, "kpi generate")

	md = reportMarkdown(&presenting.DashboardView{NoData: true, Period: "25.10", Title: "October 2025"})
	assert.Contains(t, md, "_No data for this period._")
	assert.NotContains(t, md, "## Summary")
}

func TestPrintMarkdown_Raw(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, printMarkdown(&buf, "# Title\n", true))
	assert.Equal(t, "# Title\n", buf.String())
}

func TestQueryDocument(t *testing.T) {
	dashboard := []byte(`{"current_month":{"revenue":1000000,"gross_margin_pct":55.0},"products":[{"name":"Rotors"},{"name":"Pads"}]}`)
	rfm := []byte("customer,recency_days,segment\nAcme,12,Champions\nBolt,200,Lost\n")

	tests := []struct {
		name     string
		file     string
		data     []byte
		expr     string
		expected any
		err      string
	}{
		{
			name:     "scalar",
			file:     domain.DashboardFile,
			data:     dashboard,
			expr:     "$.current_month.revenue",
			expected: float64(1000000),
		},
		{
			name:     "array projection",
			file:     domain.DashboardFile,
			data:     dashboard,
			expr:     "$.products[*].name",
			expected: []any{"Rotors", "Pads"},
		},
		{
			name:     "csv rows",
			file:     domain.CustomerRFMFile,
			data:     rfm,
			expr:     "$[1].segment",
			expected: "Lost",
		},
		{
			name: "markdown is not queryable",
			file: domain.NotesFile,
			data: []byte("# Notes"),
			expr: "$",
			err:  "notes.md: document cannot be queried",
		},
		{
			name: "bad expression",
			file: domain.DashboardFile,
			data: dashboard,
			expr: "$.[",
			err:  `evaluating "$.["`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := queryDocument(tt.file, tt.data, tt.expr)
			if tt.err != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, result)
		})
	}
}

func TestGenerateCmd_Request(t *testing.T) {
	now := time.Date(2026, 1, 2, 6, 0, 0, 0, time.UTC)

	tests := []struct {
		name     string
		cmd      generateCmd
		cfg      config.Config
		expected wantRequest
		err      bool
	}{
		{
			name:     "defaults to last month",
			expected: wantRequest{period: "25.12"},
		},
		{
			name:     "PERIOD from configuration",
			cfg:      config.Config{Generation: config.Generation{Period: "25.06"}},
			expected: wantRequest{period: "25.06"},
		},
		{
			name:     "flag wins over configuration",
			cmd:      generateCmd{period: "25.11", overwrite: true, snapshot: "2025-12-03"},
			cfg:      config.Config{Generation: config.Generation{Period: "25.06"}},
			expected: wantRequest{period: "25.11", overwrite: true, snapshot: "2025-12-03"},
		},
		{
			name: "invalid period",
			cmd:  generateCmd{period: "2025-11"},
			err:  true,
		},
		{
			name: "invalid snapshot",
			cmd:  generateCmd{period: "25.11", snapshot: "03/12/2025"},
			err:  true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req, err := tt.cmd.request(&tt.cfg, now)
			if tt.err {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected.period, req.Period.String())
			assert.Equal(t, tt.expected.overwrite, req.Overwrite)
			if tt.expected.snapshot == "" {
				assert.True(t, req.SnapshotDate.IsZero())
			} else {
				assert.Equal(t, tt.expected.snapshot, req.SnapshotDate.Format(time.DateOnly))
			}
		})
	}
}

type wantRequest struct {
	period    string
	overwrite bool
	snapshot  string
}

func TestGenerateCmd_Apply(t *testing.T) {
	cfg := &config.Config{Generation: config.Generation{ParseFailurePolicy: config.ParseFailureAbort}}
	cmd := generateCmd{inputDir: "/data/in", outputDir: "/data/out", skipInvalid: true}

	cmd.apply(cfg)
	assert.Equal(t, "/data/in", cfg.Paths.InputDir)
	assert.Equal(t, "/data/out", cfg.Paths.OutputDir)
	assert.Equal(t, config.ParseFailureSkip, cfg.Generation.ParseFailurePolicy)
}

func TestWritePeriods(t *testing.T) {
	var buf bytes.Buffer
	writePeriods(&buf, &domain.AvailablePeriods{Periods: []string{"25.12", "25.11"}, Latest: "25.12"})

	out := buf.String()
	assert.Contains(t, out, "December 2025")
	assert.Contains(t, out, "latest")
	assert.Contains(t, out, "November 2025")

	buf.Reset()
	writePeriods(&buf, &domain.AvailablePeriods{})
	assert.Contains(t, buf.String(), "No archived periods")
}

func TestWriteRuns(t *testing.T) {
	msg := "extract: missing sheet PL YTD\nmore detail"
	var buf bytes.Buffer
	writeRuns(&buf, []*domain.GenerationRun{{
		ID:           "AbCdEfGhIj",
		Period:       "25.12",
		Status:       domain.GenerationFailed,
		StartedAt:    time.Date(2026, 1, 2, 6, 0, 0, 0, time.UTC),
		ErrorMessage: &msg,
	}})

	out := buf.String()
	assert.Contains(t, out, "AbCdEfGhIj")
	assert.Contains(t, out, "2026-01-02 06:00")
	assert.Contains(t, out, "missing sheet PL YTD")
	assert.NotContains(t, out, "more detail")
}
