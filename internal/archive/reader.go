package archive

import (
	"bytes"
	"encoding/csv"
	"os"
	"path/filepath"
	"sort"
	"strconv"

	"github.com/pkg/errors"
	"github.com/shopspring/decimal"

	"github.com/durabrake/financial-dashboard/internal/domain"
)

// ListPeriods returns every published period, newest first. Staging and
// replaced directories, and directories without a dashboard document, are
// not periods.
func (a *Archive) ListPeriods() ([]domain.Period, error) {
	entries, err := os.ReadDir(a.root)
	if err != nil {
		if os.IsNotExist(err) {
			return []domain.Period{}, nil
		}
		return nil, errors.Wrapf(err, "list %s", a.root)
	}

	periods := []domain.Period{}
	for _, e := range entries {
		if !e.IsDir() || hidden(e.Name()) {
			continue
		}
		period, err := domain.ParsePeriod(e.Name())
		if err != nil {
			continue
		}
		if _, err := os.Stat(filepath.Join(a.root, e.Name(), domain.DashboardFile)); err != nil {
			continue
		}
		periods = append(periods, period)
	}

	sort.Slice(periods, func(i, j int) bool {
		return periods[j].Before(periods[i])
	})

	return periods, nil
}

// AvailablePeriods summarizes ListPeriods for the period selector.
func (a *Archive) AvailablePeriods() (*domain.AvailablePeriods, error) {
	periods, err := a.ListPeriods()
	if err != nil {
		return nil, err
	}

	out := &domain.AvailablePeriods{Periods: []string{}, Years: []int{}}
	seen := map[int]bool{}
	for _, p := range periods {
		out.Periods = append(out.Periods, p.String())
		if !seen[p.Year()] {
			seen[p.Year()] = true
			out.Years = append(out.Years, p.Year())
		}
	}
	if len(periods) > 0 {
		out.Latest = periods[0].String()
	}

	return out, nil
}

// Read returns the raw bytes of one archive file. Missing files are ErrNoData.
func (a *Archive) Read(period domain.Period, file string) ([]byte, error) {
	if filepath.Base(file) != file || hidden(file) {
		return nil, errors.Wrapf(ErrUnknownDocument, "%q", file)
	}

	data, err := os.ReadFile(filepath.Join(a.PeriodDir(period), file))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Wrapf(ErrNoData, "%s/%s", period, file)
		}
		return nil, errors.Wrapf(err, "read %s/%s", period, file)
	}
	return data, nil
}

// ReadDocument resolves a public document name such as "dashboard".
func (a *Archive) ReadDocument(period domain.Period, document string) ([]byte, string, error) {
	file, ok := Documents[document]
	if !ok {
		return nil, "", errors.Wrapf(ErrUnknownDocument, "%q", document)
	}
	data, err := a.Read(period, file)
	return data, file, err
}

func (a *Archive) load(period domain.Period, file string, v any) error {
	data, err := a.Read(period, file)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(data, v); err != nil {
		return errors.Wrapf(ErrNoData, "%s/%s is corrupt: %v", period, file, err)
	}
	return nil
}

func (a *Archive) LoadDashboard(period domain.Period) (*domain.DashboardDocument, error) {
	doc := &domain.DashboardDocument{}
	if err := a.load(period, domain.DashboardFile, doc); err != nil {
		return nil, err
	}
	return doc, nil
}

func (a *Archive) LoadCustomers(period domain.Period) (*domain.CustomerDocument, error) {
	doc := &domain.CustomerDocument{}
	if err := a.load(period, domain.CustomerFile, doc); err != nil {
		return nil, err
	}
	return doc, nil
}

func (a *Archive) LoadBacklog(period domain.Period) (*domain.BacklogDocument, error) {
	doc := &domain.BacklogDocument{}
	if err := a.load(period, domain.BacklogFile, doc); err != nil {
		return nil, err
	}
	return doc, nil
}

func (a *Archive) LoadNotes(period domain.Period) ([]byte, error) {
	return a.Read(period, domain.NotesFile)
}

func (a *Archive) LoadRFM(period domain.Period) ([]domain.CustomerRecord, error) {
	data, err := a.Read(period, domain.CustomerRFMFile)
	if err != nil {
		return nil, err
	}
	records, err := DecodeRFM(data)
	if err != nil {
		return nil, errors.Wrapf(ErrNoData, "%s/%s is corrupt: %v", period, domain.CustomerRFMFile, err)
	}
	return records, nil
}

// DecodeRFM parses customer_rfm_scores.csv.
func DecodeRFM(data []byte) ([]domain.CustomerRecord, error) {
	rows, err := csv.NewReader(bytes.NewReader(data)).ReadAll()
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, errors.New("empty file")
	}

	index := map[string]int{}
	for i, name := range rows[0] {
		index[name] = i
	}
	for _, name := range RFMHeader {
		if _, ok := index[name]; !ok {
			return nil, errors.Errorf("missing column %q", name)
		}
	}

	records := make([]domain.CustomerRecord, 0, len(rows)-1)
	for n, row := range rows[1:] {
		p := rowParser{row: row, index: index}
		r := domain.CustomerRecord{
			Customer:         p.text("customer"),
			L12MSales:        p.amount("l12m_sales"),
			L3MSales:         p.amount("l3m_sales"),
			L12MGrossProfit:  p.amount("l12m_gross_profit"),
			L3MGrossProfit:   p.amount("l3m_gross_profit"),
			L12MGPMargin:     p.amount("l12m_gp_margin"),
			LastPurchaseDate: p.text("last_purchase_date"),
			RecencyDays:      p.number("recency_days"),
			Frequency:        p.number("frequency"),
			Monetary:         p.amount("monetary"),
			RScore:           p.number("r_score"),
			FScore:           p.number("f_score"),
			MScore:           p.number("m_score"),
			Segment:          domain.Segment(p.text("segment")),
		}
		if p.err != nil {
			return nil, errors.Wrapf(p.err, "row %d", n+2)
		}
		records = append(records, r)
	}
	return records, nil
}

type rowParser struct {
	row   []string
	index map[string]int
	err   error
}

func (p *rowParser) text(col string) string {
	return p.row[p.index[col]]
}

func (p *rowParser) amount(col string) decimal.Decimal {
	d, err := decimal.NewFromString(p.text(col))
	if err != nil && p.err == nil {
		p.err = errors.Wrapf(err, "column %s", col)
	}
	return d
}

func (p *rowParser) number(col string) int {
	v, err := strconv.Atoi(p.text(col))
	if err != nil && p.err == nil {
		p.err = errors.Wrapf(err, "column %s", col)
	}
	return v
}
