package archive

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/durabrake/financial-dashboard/internal/domain"
)

func testBundle(period string, revenue int64) *domain.Bundle {
	p := domain.MustParsePeriod(period)
	meta := domain.Metadata{Period: p.String(), ReportingMonth: p.Month().String(), ReportingYear: p.Year(), SnapshotDate: p.EndDate().Format("2006-01-02")}
	return &domain.Bundle{
		Period: p,
		Dashboard: &domain.DashboardDocument{
			Metadata: meta,
			CurrentMonth: domain.FinancialSnapshot{
				Month:          p.ShortName(),
				Revenue:        decimal.NewFromInt(revenue),
				GrossMarginPct: decimal.RequireFromString("55.5"),
			},
		},
		Customers: &domain.CustomerDocument{
			Metadata: meta,
			Distribution: map[domain.Segment]int{
				domain.SegmentHibernating: 2,
				domain.SegmentChampions:   1,
				domain.SegmentAtRisk:      4,
			},
		},
		Backlog: &domain.BacklogDocument{Metadata: meta},
		RFM: []domain.CustomerRecord{
			{
				Customer:         "Acme, Inc.",
				L12MSales:        decimal.NewFromInt(1200),
				L3MSales:         decimal.NewFromInt(300),
				L12MGrossProfit:  decimal.NewFromInt(480),
				L12MGPMargin:     decimal.NewFromInt(40),
				LastPurchaseDate: "2025-12-01",
				RecencyDays:      30,
				Frequency:        4,
				Monetary:         decimal.NewFromInt(1200),
				RScore:           5,
				FScore:           4,
				MScore:           3,
				Segment:          domain.SegmentLoyalCustomers,
			},
		},
		Notes: []byte("# Notes\n"),
	}
}

func readAll(t *testing.T, dir string) map[string]string {
	t.Helper()
	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	out := map[string]string{}
	for _, e := range entries {
		b, err := os.ReadFile(filepath.Join(dir, e.Name()))
		require.NoError(t, err)
		out[e.Name()] = string(b)
	}
	return out
}

func TestPublish(t *testing.T) {
	ctx := context.Background()

	t.Run("writes every document", func(t *testing.T) {
		a := New(t.TempDir())
		require.NoError(t, a.Publish(ctx, testBundle("25.12", 1000), PublishOptions{RunID: "run1"}))

		files := readAll(t, a.PeriodDir(domain.MustParsePeriod("25.12")))
		assert.Len(t, files, 5)
		assert.Contains(t, files[domain.DashboardFile], `"revenue": 1000,`)
		assert.Contains(t, files[domain.DashboardFile], `"gross_margin_pct": 55.5,`)
		assert.Equal(t, "# Notes\n", files[domain.NotesFile])
		assert.Contains(t, files[domain.CustomerRFMFile], `"Acme, Inc.",1200.00,300.00,480.00,0.00,40.00,2025-12-01,30,4,1200.00,5,4,3,543,Loyal Customers`)

		entries, err := os.ReadDir(a.Root())
		require.NoError(t, err)
		require.Len(t, entries, 1, "staging directory must not survive")
	})

	t.Run("map keys are sorted", func(t *testing.T) {
		a := New(t.TempDir())
		require.NoError(t, a.Publish(ctx, testBundle("25.12", 1000), PublishOptions{}))

		data, err := a.Read(domain.MustParsePeriod("25.12"), domain.CustomerFile)
		require.NoError(t, err)
		s := string(data)
		assert.Less(t, strings.Index(s, `"At Risk"`), strings.Index(s, `"Champions"`))
		assert.Less(t, strings.Index(s, `"Champions"`), strings.Index(s, `"Hibernating"`))
	})

	t.Run("identical bundles give identical bytes", func(t *testing.T) {
		first, second := New(t.TempDir()), New(t.TempDir())
		require.NoError(t, first.Publish(ctx, testBundle("25.12", 1000), PublishOptions{RunID: "a"}))
		require.NoError(t, second.Publish(ctx, testBundle("25.12", 1000), PublishOptions{RunID: "b"}))

		p := domain.MustParsePeriod("25.12")
		assert.Equal(t, readAll(t, first.PeriodDir(p)), readAll(t, second.PeriodDir(p)))
	})

	t.Run("refuses to overwrite without the flag", func(t *testing.T) {
		a := New(t.TempDir())
		p := domain.MustParsePeriod("25.12")
		require.NoError(t, a.Publish(ctx, testBundle("25.12", 1000), PublishOptions{}))
		before := readAll(t, a.PeriodDir(p))

		err := a.Publish(ctx, testBundle("25.12", 2000), PublishOptions{})
		assert.ErrorIs(t, err, ErrPeriodExists)
		assert.Equal(t, before, readAll(t, a.PeriodDir(p)))
	})

	t.Run("overwrites with the flag", func(t *testing.T) {
		a := New(t.TempDir())
		p := domain.MustParsePeriod("25.12")
		require.NoError(t, a.Publish(ctx, testBundle("25.12", 1000), PublishOptions{}))

		bundle := testBundle("25.12", 2000)
		bundle.Notes = nil
		require.NoError(t, a.Publish(ctx, bundle, PublishOptions{RunID: "again", Overwrite: true}))

		doc, err := a.LoadDashboard(p)
		require.NoError(t, err)
		assert.Equal(t, "2000", doc.CurrentMonth.Revenue.String())

		_, err = a.LoadNotes(p)
		assert.ErrorIs(t, err, ErrNoData, "files of the replaced archive must not linger")

		entries, err := os.ReadDir(a.Root())
		require.NoError(t, err)
		assert.Len(t, entries, 1)
	})

	t.Run("cancelled run leaves nothing behind", func(t *testing.T) {
		a := New(t.TempDir())
		cancelled, cancel := context.WithCancel(ctx)
		cancel()

		err := a.Publish(cancelled, testBundle("25.12", 1000), PublishOptions{})
		assert.ErrorIs(t, err, context.Canceled)

		entries, err := os.ReadDir(a.Root())
		require.NoError(t, err)
		assert.Empty(t, entries)
	})

	t.Run("incomplete bundle", func(t *testing.T) {
		a := New(t.TempDir())
		bundle := testBundle("25.12", 1000)
		bundle.Backlog = nil
		assert.Error(t, a.Publish(ctx, bundle, PublishOptions{}))
	})
}

func TestListPeriods(t *testing.T) {
	root := t.TempDir()
	a := New(root)

	periods, err := New(filepath.Join(root, "missing")).ListPeriods()
	require.NoError(t, err)
	assert.Empty(t, periods)

	for _, p := range []string{"25.11", "24.12", "25.12"} {
		require.NoError(t, a.Publish(context.Background(), testBundle(p, 1), PublishOptions{}))
	}
	require.NoError(t, os.MkdirAll(filepath.Join(root, ".staging-abc"), 0o755))
	require.NoError(t, os.MkdirAll(filepath.Join(root, "25.10"), 0o755))
	require.NoError(t, os.MkdirAll(filepath.Join(root, "scratch"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(root, "25.09"), nil, 0o644))

	periods, err = a.ListPeriods()
	require.NoError(t, err)
	var names []string
	for _, p := range periods {
		names = append(names, p.String())
	}
	assert.Equal(t, []string{"25.12", "25.11", "24.12"}, names)

	available, err := a.AvailablePeriods()
	require.NoError(t, err)
	assert.Equal(t, &domain.AvailablePeriods{
		Periods: []string{"25.12", "25.11", "24.12"},
		Years:   []int{2025, 2024},
		Latest:  "25.12",
	}, available)
}

func TestLoad(t *testing.T) {
	a := New(t.TempDir())
	p := domain.MustParsePeriod("25.12")
	require.NoError(t, a.Publish(context.Background(), testBundle("25.12", 1000), PublishOptions{}))

	t.Run("round trip", func(t *testing.T) {
		customers, err := a.LoadCustomers(p)
		require.NoError(t, err)
		assert.Equal(t, 4, customers.Distribution[domain.SegmentAtRisk])

		records, err := a.LoadRFM(p)
		require.NoError(t, err)
		require.Len(t, records, 1)
		assert.Equal(t, "Acme, Inc.", records[0].Customer)
		assert.Equal(t, domain.SegmentLoyalCustomers, records[0].Segment)
		assert.Equal(t, 3, records[0].MScore)
		assert.True(t, decimal.NewFromInt(1200).Equal(records[0].Monetary))
	})

	t.Run("missing period", func(t *testing.T) {
		_, err := a.LoadBacklog(domain.MustParsePeriod("24.01"))
		assert.ErrorIs(t, err, ErrNoData)
	})

	t.Run("corrupt document", func(t *testing.T) {
		require.NoError(t, os.WriteFile(filepath.Join(a.PeriodDir(p), domain.BacklogFile), []byte("{not json"), 0o644))
		_, err := a.LoadBacklog(p)
		assert.ErrorIs(t, err, ErrNoData)
		assert.Contains(t, err.Error(), "corrupt")
	})

	t.Run("documents by name", func(t *testing.T) {
		data, file, err := a.ReadDocument(p, "dashboard")
		require.NoError(t, err)
		assert.Equal(t, domain.DashboardFile, file)
		assert.NotEmpty(t, data)

		_, _, err = a.ReadDocument(p, "secrets")
		assert.ErrorIs(t, err, ErrUnknownDocument)

		_, err = a.Read(p, "../25.12/dashboard_data.json")
		assert.ErrorIs(t, err, ErrUnknownDocument)
	})
}
