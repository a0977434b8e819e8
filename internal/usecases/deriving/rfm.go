package deriving

import (
	"fmt"
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/durabrake/financial-dashboard/internal/domain"
	"github.com/durabrake/financial-dashboard/pkg/utils"
)

const (
	TopCustomersLimit = 15
	Quintiles         = 5
)

// Window is a half-open (Start, End] date range.
type Window struct {
	Start time.Time
	End   time.Time
}

// TrailingMonths is the window of n months ending on snapshot. A month-end
// snapshot yields whole calendar months.
func TrailingMonths(snapshot time.Time, n int) Window {
	next := snapshot.AddDate(0, 0, 1)
	return Window{Start: next.AddDate(0, -n, 0).AddDate(0, 0, -1), End: snapshot}
}

func (w Window) Contains(t time.Time) bool {
	return t.After(w.Start) && !t.After(w.End)
}

// String renders the first and last included day.
func (w Window) String() string {
	return fmt.Sprintf("%s to %s", w.Start.AddDate(0, 0, 1).Format(utils.DateLayout), w.End.Format(utils.DateLayout))
}

type customerAgg struct {
	record   domain.CustomerRecord
	last     time.Time
	invoices map[string]struct{}
	unnamed  int
	activeL3 bool
}

// CustomerRecords aggregates L12M sales per customer and scores every
// customer on recency, frequency and monetary quintiles. Lines outside the
// trailing twelve months are ignored. The result is ordered by L12M sales,
// largest first, then by customer.
func CustomerRecords(lines []domain.SalesLine, snapshot time.Time) []domain.CustomerRecord {
	l12m := TrailingMonths(snapshot, 12)
	l3m := TrailingMonths(snapshot, 3)

	byCustomer := map[string]*customerAgg{}
	for _, line := range lines {
		if !l12m.Contains(line.Date) {
			continue
		}
		agg, ok := byCustomer[line.Customer]
		if !ok {
			agg = &customerAgg{record: domain.CustomerRecord{Customer: line.Customer}, invoices: map[string]struct{}{}}
			byCustomer[line.Customer] = agg
		}

		agg.record.L12MSales = agg.record.L12MSales.Add(line.Sales)
		agg.record.L12MGrossProfit = agg.record.L12MGrossProfit.Add(line.GrossProfit)
		if l3m.Contains(line.Date) {
			agg.activeL3 = true
			agg.record.L3MSales = agg.record.L3MSales.Add(line.Sales)
			agg.record.L3MGrossProfit = agg.record.L3MGrossProfit.Add(line.GrossProfit)
		}
		if line.Date.After(agg.last) {
			agg.last = line.Date
		}
		if line.Invoice == "" {
			agg.unnamed++
		} else {
			agg.invoices[line.Invoice] = struct{}{}
		}
	}

	names := make([]string, 0, len(byCustomer))
	for name := range byCustomer {
		names = append(names, name)
	}
	sort.Strings(names)

	records := make([]domain.CustomerRecord, len(names))
	for i, name := range names {
		agg := byCustomer[name]
		r := agg.record
		r.L12MGPMargin = Margin(r.L12MGrossProfit, r.L12MSales)
		r.LastPurchaseDate = agg.last.Format(utils.DateLayout)
		r.RecencyDays = utils.DaysBetween(agg.last, snapshot)
		r.Frequency = len(agg.invoices) + agg.unnamed
		r.Monetary = r.L12MSales
		records[i] = r
	}

	ScoreRFM(records)

	sort.SliceStable(records, func(i, j int) bool {
		if c := records[i].L12MSales.Cmp(records[j].L12MSales); c != 0 {
			return c > 0
		}
		return records[i].Customer < records[j].Customer
	})

	return records
}

// ScoreRFM assigns quintile scores and segments in place. Recency scores
// high for recent buyers; frequency and monetary score high for large values.
func ScoreRFM(records []domain.CustomerRecord) {
	r := QuintileScores(len(records), func(i, j int) int {
		return records[j].RecencyDays - records[i].RecencyDays
	}, customerKey(records))
	f := QuintileScores(len(records), func(i, j int) int {
		return records[i].Frequency - records[j].Frequency
	}, customerKey(records))
	m := QuintileScores(len(records), func(i, j int) int {
		return records[i].Monetary.Cmp(records[j].Monetary)
	}, customerKey(records))

	for i := range records {
		records[i].RScore, records[i].FScore, records[i].MScore = r[i], f[i], m[i]
		records[i].Segment = domain.SegmentFor(r[i], f[i], m[i])
	}
}

func customerKey(records []domain.CustomerRecord) func(i, j int) bool {
	return func(i, j int) bool { return records[i].Customer < records[j].Customer }
}

// QuintileScores ranks n items worst first by cmp, breaking ties with
// tieLess, and returns score = rank*5/n + 1 for each item index. Group
// sizes differ by at most one.
func QuintileScores(n int, cmp func(i, j int) int, tieLess func(i, j int) bool) []int {
	order := make([]int, n)
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(a, b int) bool {
		if c := cmp(order[a], order[b]); c != 0 {
			return c < 0
		}
		return tieLess(order[a], order[b])
	})

	scores := make([]int, n)
	for rank, idx := range order {
		scores[idx] = rank*Quintiles/n + 1
	}
	return scores
}

// CustomerSummary totals the scored population.
func CustomerSummary(records []domain.CustomerRecord) domain.CustomerSummary {
	s := domain.CustomerSummary{TotalCustomers: len(records)}
	for _, r := range records {
		s.TotalL12MSales = s.TotalL12MSales.Add(r.L12MSales)
		s.TotalL3MSales = s.TotalL3MSales.Add(r.L3MSales)
		s.TotalL12MGrossProfit = s.TotalL12MGrossProfit.Add(r.L12MGrossProfit)
		if !r.L3MSales.IsZero() {
			s.ActiveCustomersL3M++
		}
	}
	s.AvgGrossMarginPct = Margin(s.TotalL12MGrossProfit, s.TotalL12MSales)
	s.AvgRevenuePerCustomer = utils.Average(s.TotalL12MSales, len(records))
	return s
}

// TopCustomers returns the largest customers by L12M sales. records must
// already be ordered as CustomerRecords returns them.
func TopCustomers(records []domain.CustomerRecord, summary domain.CustomerSummary, limit int) []domain.TopCustomer {
	if len(records) < limit {
		limit = len(records)
	}
	top := make([]domain.TopCustomer, 0, limit)
	for i, r := range records[:limit] {
		top = append(top, domain.TopCustomer{
			Rank:            i + 1,
			Customer:        r.Customer,
			L12MSales:       r.L12MSales,
			L3MSales:        r.L3MSales,
			L12MGrossProfit: r.L12MGrossProfit,
			L12MGPMargin:    r.L12MGPMargin,
			L12MSharePct:    utils.Percent(r.L12MSales, summary.TotalL12MSales),
			L3MSharePct:     utils.Percent(r.L3MSales, summary.TotalL3MSales),
			Segment:         r.Segment,
		})
	}
	return top
}

// Segments summarizes each populated segment in enumeration order, and
// returns the customer count per segment.
func Segments(records []domain.CustomerRecord, summary domain.CustomerSummary) ([]domain.SegmentSummary, map[domain.Segment]int) {
	type acc struct {
		count     int
		revenue   decimal.Decimal
		recency   int
		frequency int
	}
	bySegment := map[domain.Segment]*acc{}
	for _, r := range records {
		a, ok := bySegment[r.Segment]
		if !ok {
			a = &acc{}
			bySegment[r.Segment] = a
		}
		a.count++
		a.revenue = a.revenue.Add(r.L12MSales)
		a.recency += r.RecencyDays
		a.frequency += r.Frequency
	}

	summaries := []domain.SegmentSummary{}
	distribution := map[domain.Segment]int{}
	for _, segment := range domain.Segments {
		a, ok := bySegment[segment]
		if !ok {
			continue
		}
		distribution[segment] = a.count
		summaries = append(summaries, domain.SegmentSummary{
			Segment:               segment,
			CustomerCount:         a.count,
			TotalRevenue:          a.revenue,
			RevenueSharePct:       utils.Percent(a.revenue, summary.TotalL12MSales),
			AvgRevenuePerCustomer: utils.Average(a.revenue, a.count),
			AvgRecencyDays:        utils.Average(decimal.NewFromInt(int64(a.recency)), a.count),
			AvgFrequency:          utils.Average(decimal.NewFromInt(int64(a.frequency)), a.count),
		})
	}

	return summaries, distribution
}
