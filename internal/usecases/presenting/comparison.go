package presenting

import (
	"context"

	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"

	"github.com/durabrake/financial-dashboard/internal/domain"
	"github.com/durabrake/financial-dashboard/pkg/log"
	"github.com/durabrake/financial-dashboard/pkg/utils"
)

// TrailingMonths is how many prior months the current month is compared with.
const TrailingMonths = 3

const (
	sourceArchive = "archive"
	sourceSeries  = "monthly series"
)

// Variance compares a current value with the mean of prior values.
type Variance struct {
	Current decimal.Decimal
	Average decimal.Decimal
	Months  int
	Change  decimal.Decimal
	Defined bool
	Points  bool
}

// Compare computes current against the mean of prior. With points the change
// is the difference in percentage points; otherwise it is
// (current - avg) / |avg| * 100, undefined when the average is zero.
func Compare(current decimal.Decimal, prior []decimal.Decimal, points bool) Variance {
	v := Variance{Current: current, Months: len(prior), Points: points}
	if len(prior) == 0 {
		return v
	}

	v.Average = utils.Average(utils.Sum(prior...), len(prior))
	if points {
		v.Change = current.Sub(v.Average).Round(2)
		v.Defined = true
		return v
	}

	if v.Average.IsZero() {
		return v
	}
	v.Change = utils.Percent(current.Sub(v.Average), v.Average.Abs())
	v.Defined = true
	return v
}

func (v Variance) status() domain.Status {
	if !v.Defined {
		return domain.StatusNone
	}
	if v.Change.IsNegative() {
		return domain.StatusRed
	}
	return domain.StatusGreen
}

// priorMonth is one month before the viewed period, read from its own archive
// when published and otherwise from the viewed period's monthly series.
type priorMonth struct {
	period   domain.Period
	source   string
	snapshot domain.FinancialSnapshot
	products map[domain.Product]domain.ProductSnapshot
}

func (m priorMonth) basis() string {
	return m.period.ShortName() + " (" + m.source + ")"
}

// priorMonths resolves the TrailingMonths before period, newest first. Months
// with neither an archive nor a series entry are left out.
func (s *Service) priorMonths(ctx context.Context, period domain.Period, doc *domain.DashboardDocument) ([]priorMonth, error) {
	archived := make([]*domain.DashboardDocument, TrailingMonths)

	g, gctx := errgroup.WithContext(ctx)
	for i := range archived {
		prev := period.Prev(i + 1)
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			d, err := s.reader.LoadDashboard(prev)
			if err != nil {
				log.ForContext(ctx).WithField("period", prev.String()).
					Debugf("no archive for trailing month, falling back to series: %v", err)
				return nil
			}
			archived[i] = d
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	months := []priorMonth{}
	for i, d := range archived {
		prev := period.Prev(i + 1)
		if d != nil {
			months = append(months, fromArchive(prev, d))
			continue
		}
		if m, ok := fromSeries(prev, doc); ok {
			months = append(months, m)
		}
	}
	return months, nil
}

func fromArchive(period domain.Period, doc *domain.DashboardDocument) priorMonth {
	m := priorMonth{
		period:   period,
		source:   sourceArchive,
		snapshot: doc.CurrentMonth,
		products: map[domain.Product]domain.ProductSnapshot{},
	}
	for _, p := range doc.Products {
		m.products[p.Product] = p.Current
	}
	return m
}

func fromSeries(period domain.Period, doc *domain.DashboardDocument) (priorMonth, bool) {
	label := period.ShortName()
	for _, snap := range doc.MonthlySeries {
		if snap.Month != label {
			continue
		}
		m := priorMonth{
			period:   period,
			source:   sourceSeries,
			snapshot: snap,
			products: map[domain.Product]domain.ProductSnapshot{},
		}
		for _, p := range doc.Products {
			for _, ps := range p.MonthlySeries {
				if ps.Month == label {
					m.products[p.Product] = ps
				}
			}
		}
		return m, true
	}
	return priorMonth{}, false
}

func priorValues(months []priorMonth, pick func(domain.FinancialSnapshot) decimal.Decimal) []decimal.Decimal {
	values := make([]decimal.Decimal, 0, len(months))
	for _, m := range months {
		values = append(values, pick(m.snapshot))
	}
	return values
}

func priorProductValues(months []priorMonth, product domain.Product, pick func(domain.ProductSnapshot) decimal.Decimal) []decimal.Decimal {
	values := []decimal.Decimal{}
	for _, m := range months {
		if ps, ok := m.products[product]; ok {
			values = append(values, pick(ps))
		}
	}
	return values
}

// Rolling compares each month of the series with the average revenue of the
// three months before it. The first three months have no comparison.
func Rolling(series []domain.FinancialSnapshot) []Variance {
	out := []Variance{}
	for i := TrailingMonths; i < len(series); i++ {
		prior := make([]decimal.Decimal, 0, TrailingMonths)
		for _, snap := range series[i-TrailingMonths : i] {
			prior = append(prior, snap.Revenue)
		}
		out = append(out, Compare(series[i].Revenue, prior, false))
	}
	return out
}
