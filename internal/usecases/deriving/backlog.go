package deriving

import (
	"sort"
	"time"

	"github.com/pkg/errors"
	"github.com/shopspring/decimal"

	"github.com/durabrake/financial-dashboard/internal/domain"
	"github.com/durabrake/financial-dashboard/pkg/utils"
)

const (
	TopBacklogCustomersLimit = 10
	Unassigned               = "Unassigned"
)

var ErrNegativeAge = errors.New("order date after snapshot date")

// BacklogRecords ages every open order against snapshot. An order dated
// after the snapshot has no bucket and fails the call. The result is ordered
// oldest first, then by order number.
func BacklogRecords(lines []domain.BacklogLine, snapshot time.Time) ([]domain.BacklogRecord, error) {
	records := make([]domain.BacklogRecord, 0, len(lines))
	for _, line := range lines {
		age := utils.DaysBetween(line.OrderDate, snapshot)
		bucket, ok := domain.AgeBucketFor(age)
		if !ok {
			return nil, errors.Wrapf(ErrNegativeAge, "order %s dated %s", line.OrderID, line.OrderDate.Format(utils.DateLayout))
		}

		record := domain.BacklogRecord{
			OrderID:    line.OrderID,
			OrderDate:  line.OrderDate.Format(utils.DateLayout),
			Customer:   line.Customer,
			Amount:     line.Amount,
			SalesRep:   line.SalesRep,
			Region:     line.Region,
			AgeDays:    age,
			AgeBucket:  bucket,
			ShipWindow: domain.ShipWindowFor(0, false),
		}
		if line.ShipDate != nil {
			record.ShipDate = line.ShipDate.Format(utils.DateLayout)
			record.ShipWindow = domain.ShipWindowFor(utils.DaysBetween(snapshot, *line.ShipDate), true)
		}
		records = append(records, record)
	}

	sort.SliceStable(records, func(i, j int) bool {
		if records[i].AgeDays != records[j].AgeDays {
			return records[i].AgeDays > records[j].AgeDays
		}
		return records[i].OrderID < records[j].OrderID
	})

	return records, nil
}

// BacklogSummary totals open orders. Old orders are those past 90 days,
// counted by order rather than by value.
func BacklogSummary(records []domain.BacklogRecord) domain.BacklogSummary {
	s := domain.BacklogSummary{TotalOrders: len(records)}
	customers := map[string]struct{}{}
	ageTotal := 0
	for _, r := range records {
		s.TotalBacklogValue = s.TotalBacklogValue.Add(r.Amount)
		customers[r.Customer] = struct{}{}
		ageTotal += r.AgeDays
		if r.AgeBucket.IsOld() {
			s.OldOrdersCount++
		}
	}
	s.CustomerCount = len(customers)
	s.AvgOrderValue = utils.Average(s.TotalBacklogValue, len(records))
	s.AvgAgeDays = utils.Average(decimal.NewFromInt(int64(ageTotal)), len(records))
	s.OldOrdersPct = utils.Percent(decimal.NewFromInt(int64(s.OldOrdersCount)), decimal.NewFromInt(int64(len(records))))
	return s
}

// AgeDistribution reports every bucket, empty ones included.
func AgeDistribution(records []domain.BacklogRecord, total decimal.Decimal) []domain.AgeBucketSummary {
	byBucket := map[domain.AgeBucket]*domain.AgeBucketSummary{}
	out := make([]domain.AgeBucketSummary, len(domain.AgeBuckets))
	for i, b := range domain.AgeBuckets {
		out[i] = domain.AgeBucketSummary{Bucket: b}
		byBucket[b] = &out[i]
	}
	for _, r := range records {
		s := byBucket[r.AgeBucket]
		s.OrderCount++
		s.TotalValue = s.TotalValue.Add(r.Amount)
	}
	for i := range out {
		out[i].ValuePct = utils.Percent(out[i].TotalValue, total)
	}
	return out
}

// ShipDateDistribution reports every ship window, empty ones included.
func ShipDateDistribution(records []domain.BacklogRecord) []domain.ShipWindowSummary {
	byWindow := map[domain.ShipWindow]*domain.ShipWindowSummary{}
	out := make([]domain.ShipWindowSummary, len(domain.ShipWindows))
	for i, w := range domain.ShipWindows {
		out[i] = domain.ShipWindowSummary{Window: w}
		byWindow[w] = &out[i]
	}
	for _, r := range records {
		s := byWindow[r.ShipWindow]
		s.OrderCount++
		s.TotalValue = s.TotalValue.Add(r.Amount)
	}
	return out
}

// GroupBacklog aggregates orders by key, largest value first. limit <= 0
// keeps every group.
func GroupBacklog(records []domain.BacklogRecord, total decimal.Decimal, key func(domain.BacklogRecord) string, limit int) []domain.BacklogGroup {
	type acc struct {
		group domain.BacklogGroup
		age   int
	}
	byName := map[string]*acc{}
	for _, r := range records {
		name := key(r)
		if name == "" {
			name = Unassigned
		}
		a, ok := byName[name]
		if !ok {
			a = &acc{group: domain.BacklogGroup{Name: name}}
			byName[name] = a
		}
		a.group.OrderCount++
		a.group.TotalValue = a.group.TotalValue.Add(r.Amount)
		a.age += r.AgeDays
	}

	groups := make([]domain.BacklogGroup, 0, len(byName))
	for _, a := range byName {
		g := a.group
		g.AvgAgeDays = utils.Average(decimal.NewFromInt(int64(a.age)), g.OrderCount)
		g.ValuePct = utils.Percent(g.TotalValue, total)
		groups = append(groups, g)
	}
	sort.Slice(groups, func(i, j int) bool {
		if c := groups[i].TotalValue.Cmp(groups[j].TotalValue); c != 0 {
			return c > 0
		}
		return groups[i].Name < groups[j].Name
	})

	if limit > 0 && len(groups) > limit {
		groups = groups[:limit]
	}
	return groups
}

func byCustomer(r domain.BacklogRecord) string { return r.Customer }
func bySalesRep(r domain.BacklogRecord) string { return r.SalesRep }
func byRegion(r domain.BacklogRecord) string { return r.Region }
