package archive

import (
	"bytes"
	"context"
	"encoding/csv"
	"os"
	"path/filepath"
	"strconv"

	"github.com/pkg/errors"

	"github.com/durabrake/financial-dashboard/internal/domain"
	"github.com/durabrake/financial-dashboard/pkg/log"
	"github.com/durabrake/financial-dashboard/pkg/utils"
)

type PublishOptions struct {
	// RunID names the staging directory. Generated when empty.
	RunID     string
	Overwrite bool
}

// RFMHeader is the column order of customer_rfm_scores.csv.
var RFMHeader = []string{
	"customer",
	"l12m_sales",
	"l3m_sales",
	"l12m_gross_profit",
	"l3m_gross_profit",
	"l12m_gp_margin",
	"last_purchase_date",
	"recency_days",
	"frequency",
	"monetary",
	"r_score",
	"f_score",
	"m_score",
	"rfm_score",
	"segment",
}

// Publish writes every document of bundle into a staging directory and then
// renames it into place, so a period is either fully visible or absent.
// Without Overwrite an existing period is left untouched and ErrPeriodExists
// is returned.
func (a *Archive) Publish(ctx context.Context, bundle *domain.Bundle, opts PublishOptions) error {
	period := bundle.Period
	logger := log.ForContext(ctx).WithField("period", period.String())

	exists, err := a.Exists(period)
	if err != nil {
		return err
	}
	if exists && !opts.Overwrite {
		return errors.Wrapf(ErrPeriodExists, "%s in %s", period, a.root)
	}

	files, err := renderBundle(bundle)
	if err != nil {
		return err
	}

	runID := opts.RunID
	if runID == "" {
		if runID, err = utils.GenerateID(); err != nil {
			return errors.Wrap(err, "generate staging id")
		}
	}

	staging := filepath.Join(a.root, stagingPrefix+runID)
	if err := os.MkdirAll(staging, 0o755); err != nil {
		return errors.Wrap(err, "create staging directory")
	}
	published := false
	defer func() {
		if !published {
			_ = os.RemoveAll(staging)
		}
	}()

	for _, f := range files {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := os.WriteFile(filepath.Join(staging, f.name), f.data, 0o644); err != nil {
			return errors.Wrapf(err, "write %s", f.name)
		}
	}

	target := a.PeriodDir(period)
	if !exists {
		if err := os.Rename(staging, target); err != nil {
			return errors.Wrapf(err, "publish %s", period)
		}
		published = true
		logger.Infof("archived %d files to %s", len(files), target)
		return nil
	}

	replaced := filepath.Join(a.root, replacedPrefix+runID)
	if err := os.Rename(target, replaced); err != nil {
		return errors.Wrapf(err, "move aside %s", period)
	}
	if err := os.Rename(staging, target); err != nil {
		if restoreErr := os.Rename(replaced, target); restoreErr != nil {
			logger.WithError(restoreErr).Errorf("previous archive left at %s", replaced)
		}
		return errors.Wrapf(err, "publish %s", period)
	}
	published = true

	if err := os.RemoveAll(replaced); err != nil {
		logger.WithError(err).Warnf("could not remove replaced archive %s", replaced)
	}
	logger.Infof("replaced archive %s with %d files", target, len(files))

	return nil
}

type archiveFile struct {
	name string
	data []byte
}

func renderBundle(bundle *domain.Bundle) ([]archiveFile, error) {
	if bundle.Dashboard == nil || bundle.Customers == nil || bundle.Backlog == nil {
		return nil, errors.Errorf("incomplete bundle for %s", bundle.Period)
	}

	var files []archiveFile
	for _, doc := range []struct {
		name string
		v    any
	}{
		{domain.DashboardFile, bundle.Dashboard},
		{domain.CustomerFile, bundle.Customers},
		{domain.BacklogFile, bundle.Backlog},
	} {
		data, err := Encode(doc.v)
		if err != nil {
			return nil, errors.Wrapf(err, "encode %s", doc.name)
		}
		files = append(files, archiveFile{name: doc.name, data: data})
	}

	rfm, err := EncodeRFM(bundle.RFM)
	if err != nil {
		return nil, errors.Wrap(err, "encode customer scores")
	}
	files = append(files, archiveFile{name: domain.CustomerRFMFile, data: rfm})

	if len(bundle.Notes) > 0 {
		files = append(files, archiveFile{name: domain.NotesFile, data: bundle.Notes})
	}

	return files, nil
}

// EncodeRFM renders the per-customer scores as CSV.
func EncodeRFM(records []domain.CustomerRecord) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if err := w.Write(RFMHeader); err != nil {
		return nil, err
	}
	for _, r := range records {
		row := []string{
			r.Customer,
			r.L12MSales.StringFixed(2),
			r.L3MSales.StringFixed(2),
			r.L12MGrossProfit.StringFixed(2),
			r.L3MGrossProfit.StringFixed(2),
			r.L12MGPMargin.StringFixed(2),
			r.LastPurchaseDate,
			strconv.Itoa(r.RecencyDays),
			strconv.Itoa(r.Frequency),
			r.Monetary.StringFixed(2),
			strconv.Itoa(r.RScore),
			strconv.Itoa(r.FScore),
			strconv.Itoa(r.MScore),
			strconv.Itoa(r.RScore*100 + r.FScore*10 + r.MScore),
			string(r.Segment),
		}
		if err := w.Write(row); err != nil {
			return nil, err
		}
	}
	w.Flush()
	return buf.Bytes(), w.Error()
}
