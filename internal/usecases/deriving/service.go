// Package deriving turns extracted statements and line items into the
// archive documents of one period. Every function here is pure.
package deriving

import (
	"github.com/pkg/errors"

	"github.com/durabrake/financial-dashboard/internal/domain"
	"github.com/durabrake/financial-dashboard/pkg/utils"
)

var ErrNoCurrentMonth = errors.New("statements have no values for the reporting month")

type Service struct{}

func NewService() *Service {
	return &Service{}
}

// Derive builds the full archive bundle for data.Period.
func (s *Service) Derive(data *domain.SourceData) (*domain.Bundle, error) {
	period := data.Period
	if _, ok := data.Statements.Month(period.Month()); !ok {
		return nil, errors.Wrapf(ErrNoCurrentMonth, "period %s", period)
	}

	meta := domain.Metadata{
		Period:         period.String(),
		ReportingMonth: period.Month().String(),
		ReportingYear:  period.Year(),
		SnapshotDate:   data.SnapshotDate.Format(utils.DateLayout),
		SourceFiles:    data.FileNames(),
		SkippedRecords: data.SkippedRecords,
	}

	backlog, err := s.backlog(meta, data)
	if err != nil {
		return nil, err
	}

	customers, rfm := s.customers(meta, data)

	return &domain.Bundle{
		Period:    period,
		Dashboard: s.dashboard(meta, data),
		Customers: customers,
		Backlog:   backlog,
		RFM:       rfm,
		Notes:     data.Notes,
	}, nil
}

func (s *Service) dashboard(meta domain.Metadata, data *domain.SourceData) *domain.DashboardDocument {
	period := data.Period
	series := MonthlySeries(period.Year(), data.Statements)

	var current domain.FinancialSnapshot
	for _, snap := range series {
		if snap.Month == monthLabel(period.Year(), period.Month()) {
			current = snap
		}
	}

	ytd := YearToDate(period, series)

	return &domain.DashboardDocument{
		Metadata:       meta,
		CurrentMonth:   current,
		MonthlySeries:  series,
		YTDSummary:     ytd,
		QuarterSummary: QuarterToDate(period, data.Statements),
		NWC:            WorkingCapital(current, ytd),
		Products:       Products(period, data.Products),
	}
}

func (s *Service) customers(meta domain.Metadata, data *domain.SourceData) (*domain.CustomerDocument, []domain.CustomerRecord) {
	records := CustomerRecords(data.Sales, data.SnapshotDate)
	summary := CustomerSummary(records)
	segments, distribution := Segments(records, summary)

	return &domain.CustomerDocument{
		Metadata:     meta,
		L12MWindow:   TrailingMonths(data.SnapshotDate, 12).String(),
		L3MWindow:    TrailingMonths(data.SnapshotDate, 3).String(),
		Summary:      summary,
		TopCustomers: TopCustomers(records, summary, TopCustomersLimit),
		Segments:     segments,
		Distribution: distribution,
	}, records
}

func (s *Service) backlog(meta domain.Metadata, data *domain.SourceData) (*domain.BacklogDocument, error) {
	records, err := BacklogRecords(data.Backlog, data.SnapshotDate)
	if err != nil {
		return nil, err
	}
	summary := BacklogSummary(records)
	total := summary.TotalBacklogValue

	return &domain.BacklogDocument{
		Metadata:             meta,
		Summary:              summary,
		AgeDistribution:      AgeDistribution(records, total),
		ShipDateDistribution: ShipDateDistribution(records),
		TopCustomers:         GroupBacklog(records, total, byCustomer, TopBacklogCustomersLimit),
		BySalesRep:           GroupBacklog(records, total, bySalesRep, 0),
		ByRegion:             GroupBacklog(records, total, byRegion, 0),
		Orders:               records,
	}, nil
}
