// Package extractor reads the four monthly accounting workbooks into flat
// records. Workbooks are a fixed contract: known sheet names, known row and
// column labels, no inference beyond label matching.
package extractor

import (
	"context"
	"os"
	"path/filepath"
	"time"

	"github.com/pkg/errors"

	"github.com/durabrake/financial-dashboard/internal/config"
	"github.com/durabrake/financial-dashboard/internal/domain"
	"github.com/durabrake/financial-dashboard/pkg/log"
)

// Source kinds recorded in archive metadata.
const (
	KindFinancials = "financials"
	KindProducts   = "products"
	KindCustomers  = "customers"
	KindBacklog    = "backlog"
	KindNotes      = "notes"
)

type Files struct {
	Financials string
	Products   string
	Customers  string
	Backlog    string
	Notes      string
}

// Result is a successful extraction. Failures are line items that could not
// be parsed; they are excluded from Data and left for the caller to judge.
type Result struct {
	Data     *domain.SourceData
	Failures ParseErrors
}

type Extractor struct {
	inputDir string
	files    Files
}

func New(cfg *config.Config) *Extractor {
	return &Extractor{
		inputDir: cfg.Paths.InputDir,
		files: Files{
			Financials: cfg.Paths.FinancialsFile,
			Products:   cfg.Paths.ProductsFile,
			Customers:  cfg.Paths.CustomersFile,
			Backlog:    cfg.Paths.BacklogFile,
			Notes:      cfg.Paths.NotesFile,
		},
	}
}

// PeriodDir is the directory holding one period's workbooks.
func (e *Extractor) PeriodDir(period domain.Period) string {
	return filepath.Join(e.inputDir, period.String())
}

// Extract reads every workbook for period. Missing workbooks, sheets and
// required rows or columns, and malformed statement cells, fail the call.
func (e *Extractor) Extract(ctx context.Context, period domain.Period, snapshot time.Time) (*Result, error) {
	logger := log.ForContext(ctx).WithField("period", period.String())
	dir := e.PeriodDir(period)

	if info, err := os.Stat(dir); err != nil || !info.IsDir() {
		return nil, &MissingRequiredInputError{File: dir}
	}

	data := &domain.SourceData{Period: period, SnapshotDate: snapshot}
	result := &Result{Data: data}

	var err error
	if data.Statements, err = readFinancials(filepath.Join(dir, e.files.Financials), period); err != nil {
		return nil, errors.Wrap(err, "financial statements")
	}
	data.Files = append(data.Files, domain.SourceFile{Kind: KindFinancials, Name: e.files.Financials})
	logger.Debugf("read %d statement months", len(data.Statements.Months))

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	if data.Products, err = readProducts(filepath.Join(dir, e.files.Products), period); err != nil {
		return nil, errors.Wrap(err, "product sales")
	}
	data.Files = append(data.Files, domain.SourceFile{Kind: KindProducts, Name: e.files.Products})

	sales, salesFailures, err := readSales(filepath.Join(dir, e.files.Customers))
	if err != nil {
		return nil, errors.Wrap(err, "customer sales")
	}
	data.Sales = sales
	result.Failures = append(result.Failures, salesFailures...)
	data.Files = append(data.Files, domain.SourceFile{Kind: KindCustomers, Name: e.files.Customers})
	logger.Debugf("read %d sales lines, %d invalid", len(sales), len(salesFailures))

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	backlog, backlogFailures, err := readBacklog(filepath.Join(dir, e.files.Backlog), snapshot)
	if err != nil {
		return nil, errors.Wrap(err, "backlog")
	}
	data.Backlog = backlog
	result.Failures = append(result.Failures, backlogFailures...)
	data.Files = append(data.Files, domain.SourceFile{Kind: KindBacklog, Name: e.files.Backlog})
	logger.Debugf("read %d open orders, %d invalid", len(backlog), len(backlogFailures))

	if e.files.Notes != "" {
		notes, err := os.ReadFile(filepath.Join(dir, e.files.Notes))
		switch {
		case err == nil:
			data.Notes = notes
			data.Files = append(data.Files, domain.SourceFile{Kind: KindNotes, Name: e.files.Notes})
		case !os.IsNotExist(err):
			return nil, errors.Wrap(err, "notes")
		}
	}

	return result, nil
}
