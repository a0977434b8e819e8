package presenting

import (
	"context"

	"github.com/durabrake/financial-dashboard/internal/domain"
)

//go:generate mockgen -source=interfaces.go -destination=mocks/mocks.go -package=mocks

// ArchiveReader is the read side of the period archive.
type ArchiveReader interface {
	ListPeriods() ([]domain.Period, error)
	AvailablePeriods() (*domain.AvailablePeriods, error)
	LoadDashboard(period domain.Period) (*domain.DashboardDocument, error)
	LoadCustomers(period domain.Period) (*domain.CustomerDocument, error)
	LoadBacklog(period domain.Period) (*domain.BacklogDocument, error)
	LoadNotes(period domain.Period) ([]byte, error)
}

// Presenter builds the dashboard views served over HTTP and printed by the CLI.
type Presenter interface {
	Periods() (*domain.AvailablePeriods, error)
	Dashboard(ctx context.Context, req Request) (*DashboardView, error)
	Historical(ctx context.Context, period domain.Period) (*HistoricalView, error)
}
