// Package presenting turns archived period documents into dashboard views.
// Comparisons across periods are computed here, at render time, so they can
// change without re-deriving published archives.
package presenting

import (
	"context"
	"html/template"

	"github.com/pkg/errors"
	"golang.org/x/sync/errgroup"

	"github.com/durabrake/financial-dashboard/internal/config"
	"github.com/durabrake/financial-dashboard/internal/domain"
	"github.com/durabrake/financial-dashboard/pkg/log"
)

// HistoricalTopCustomers is how many customers a historical view lists.
const HistoricalTopCustomers = 10

type Service struct {
	reader     ArchiveReader
	thresholds config.Thresholds
	targets    config.Targets
}

func NewService(cfg *config.Config, reader ArchiveReader) *Service {
	return &Service{
		reader:     reader,
		thresholds: cfg.Thresholds,
		targets:    cfg.Targets,
	}
}

func (s *Service) Periods() (*domain.AvailablePeriods, error) {
	return s.reader.AvailablePeriods()
}

// periodDocuments holds whatever could be read for one period. A nil field is
// a document that is missing or corrupt.
type periodDocuments struct {
	dashboard *domain.DashboardDocument
	customers *domain.CustomerDocument
	backlog   *domain.BacklogDocument
	notes     []byte
}

// Dashboard builds the full page. Unreadable documents blank their tabs
// instead of failing the page; only a malformed period or an unreadable
// archive root is an error.
func (s *Service) Dashboard(ctx context.Context, req Request) (*DashboardView, error) {
	periods, err := s.reader.ListPeriods()
	if err != nil {
		return nil, errors.Wrap(err, "list periods")
	}

	period, err := pick(req.Period, periods)
	if err != nil {
		return nil, err
	}

	active := activeTab(req.Tab)
	view := &DashboardView{
		Active: active,
		Tabs:   tabLinks(active),
	}
	if period.IsZero() {
		view.NoData = true
		view.Title = "No archived periods"
		return view, nil
	}

	view.Period = period.String()
	view.Title = period.DisplayName()
	for _, p := range periods {
		view.Periods = append(view.Periods, PeriodOption{
			Period:   p.String(),
			Title:    p.DisplayName(),
			Selected: p == period,
		})
	}

	docs, err := s.load(ctx, period)
	if err != nil {
		return nil, err
	}

	if docs.dashboard == nil {
		view.NoData = true
	} else {
		prior, err := s.priorMonths(ctx, period, docs.dashboard)
		if err != nil {
			return nil, err
		}
		view.SourceFiles = docs.dashboard.Metadata.SourceFiles
		view.Skipped = docs.dashboard.Metadata.SkippedRecords
		view.Summary = s.summaryTab(docs.dashboard, prior, s.notes(ctx, period, docs.notes))
		view.Products = productsTab(docs.dashboard, prior)
		view.NWC = s.nwcTab(docs.dashboard)
	}
	if docs.customers != nil {
		view.Customers = customersTab(docs.customers)
	}
	if docs.backlog != nil {
		view.Backlog = s.backlogTab(docs.backlog)
	}

	historicals, err := s.historicals(ctx, periods, req.Historical)
	if err != nil {
		return nil, err
	}
	view.Historicals = historicals

	return view, nil
}

// Historical builds the condensed view of one period. A period without a
// readable dashboard comes back flagged NoData.
func (s *Service) Historical(ctx context.Context, period domain.Period) (*HistoricalView, error) {
	docs, err := s.load(ctx, period)
	if err != nil {
		return nil, err
	}

	view := &HistoricalView{
		Period:       period.String(),
		Title:        period.DisplayName(),
		KeyMetrics:   []Metric{},
		TopCustomers: []CustomerRow{},
		Backlog:      []Metric{},
	}
	if docs.dashboard == nil {
		view.NoData = true
		return view, nil
	}

	cm := docs.dashboard.CurrentMonth
	view.KeyMetrics = []Metric{
		{Label: "Revenue", Value: Currency(cm.Revenue)},
		{Label: "Gross Profit", Value: Currency(cm.GrossProfit)},
		{Label: "EBITDA", Value: Currency(cm.EBITDA)},
		{Label: "Net Income", Value: Currency(cm.NetIncome)},
		{Label: "Gross Margin %", Value: Percent(cm.GrossMarginPct)},
		{Label: "EBITDA Margin %", Value: Percent(cm.EBITDAMarginPct)},
		{Label: "NWC", Value: Currency(cm.NWC)},
		{Label: "Operating CF", Value: Currency(cm.OperatingCashFlow)},
	}
	if docs.customers != nil {
		view.TopCustomers = customerRows(docs.customers, HistoricalTopCustomers)
	}
	if docs.backlog != nil {
		view.Backlog = s.backlogSummary(docs.backlog.Summary)[:3]
	}

	return view, nil
}

func (s *Service) historicals(ctx context.Context, periods []domain.Period, selected string) (*HistoricalsTab, error) {
	tab := &HistoricalsTab{}
	if len(periods) == 0 {
		return tab, nil
	}

	chosen, err := pick(selected, periods)
	if err != nil {
		return nil, err
	}

	cards := make([]PeriodCard, len(periods))
	g, gctx := errgroup.WithContext(ctx)
	for i, p := range periods {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			card := PeriodCard{Period: p.String(), Title: p.DisplayName(), Selected: p == chosen}
			doc, err := s.reader.LoadDashboard(p)
			if err != nil {
				log.ForContext(ctx).WithField("period", p.String()).WithError(err).Warn("historical card has no data")
				card.Revenue, card.Margin, card.EBITDA = notAvailable, notAvailable, notAvailable
			} else {
				card.Revenue = Currency(doc.CurrentMonth.Revenue)
				card.Margin = Percent(doc.CurrentMonth.GrossMarginPct)
				card.EBITDA = Currency(doc.CurrentMonth.EBITDA)
			}
			cards[i] = card
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	tab.Cards = cards

	tab.Selected, err = s.Historical(ctx, chosen)
	if err != nil {
		return nil, err
	}
	return tab, nil
}

func (s *Service) load(ctx context.Context, period domain.Period) (*periodDocuments, error) {
	logger := log.ForContext(ctx).WithField("period", period.String())
	unavailable := func(file string, err error) {
		logger.WithField("document", file).WithError(err).Warn("document unavailable, showing no data")
	}

	docs := &periodDocuments{}
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		d, err := s.reader.LoadDashboard(period)
		if err != nil {
			unavailable(domain.DashboardFile, err)
			return gctx.Err()
		}
		docs.dashboard = d
		return gctx.Err()
	})
	g.Go(func() error {
		d, err := s.reader.LoadCustomers(period)
		if err != nil {
			unavailable(domain.CustomerFile, err)
			return gctx.Err()
		}
		docs.customers = d
		return gctx.Err()
	})
	g.Go(func() error {
		d, err := s.reader.LoadBacklog(period)
		if err != nil {
			unavailable(domain.BacklogFile, err)
			return gctx.Err()
		}
		docs.backlog = d
		return gctx.Err()
	})
	g.Go(func() error {
		notes, err := s.reader.LoadNotes(period)
		if err != nil {
			logger.Debugf("no notes: %v", err)
			return gctx.Err()
		}
		docs.notes = notes
		return gctx.Err()
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return docs, nil
}

func (s *Service) notes(ctx context.Context, period domain.Period, source []byte) template.HTML {
	if len(source) == 0 {
		return ""
	}
	html, err := RenderNotes(source)
	if err != nil {
		log.ForContext(ctx).WithField("period", period.String()).WithError(err).Warn("notes could not be rendered")
		return ""
	}
	return html
}

// pick resolves a requested period against the archive. Empty means the
// newest; zero is returned when nothing is archived.
func pick(requested string, periods []domain.Period) (domain.Period, error) {
	if requested == "" {
		if len(periods) == 0 {
			return domain.Period{}, nil
		}
		return periods[0], nil
	}
	return domain.ParsePeriod(requested)
}

func activeTab(tab string) string {
	for _, t := range Tabs {
		if t.ID == tab {
			return tab
		}
	}
	return TabSummary
}

func tabLinks(active string) []TabLink {
	links := make([]TabLink, len(Tabs))
	for i, t := range Tabs {
		t.Active = t.ID == active
		links[i] = t
	}
	return links
}

var _ Presenter = (*Service)(nil)
