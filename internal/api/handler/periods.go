package handler

import (
	"fmt"
	"net/http"
	"path/filepath"
	"sort"

	"github.com/julienschmidt/httprouter"
	"github.com/pkg/errors"

	"github.com/durabrake/financial-dashboard/internal/archive"
	"github.com/durabrake/financial-dashboard/internal/domain"
	"github.com/durabrake/financial-dashboard/internal/usecases/presenting"
	"github.com/durabrake/financial-dashboard/pkg/apiErrors"
	"github.com/durabrake/financial-dashboard/pkg/log"
)

// CustomersCSV is the download name of the RFM scores under a period.
const CustomersCSV = "customers.csv"

// GetAvailablePeriods lists the archived periods, newest first.
func GetAvailablePeriods(presenter presenting.Presenter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		periods, err := presenter.Periods()
		if err != nil {
			log.ForContext(r.Context()).WithError(err).Error("periods: list failed")
			apiErrors.WriteError(w, apiErrors.ErrInternalServer, "could not list periods", nil)
			return
		}
		writeJSON(w, r, http.StatusOK, periods)
	}
}

// GetDocument streams one archive file. customers.csv is the RFM scores
// file as an attachment.
func GetDocument(reader DocumentReader) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		params := httprouter.ParamsFromContext(r.Context())
		document := params.ByName("document")
		logger := log.ForContext(r.Context()).WithFields(log.Fields{
			"period":   params.ByName("period"),
			"document": document,
		})

		period, err := domain.ParsePeriod(params.ByName("period"))
		if err != nil {
			apiErrors.WriteError(w, apiErrors.ErrInvalidPeriod, err.Error(), nil)
			return
		}

		name := document
		if document == CustomersCSV {
			name = "rfm"
		}

		data, file, err := reader.ReadDocument(period, name)
		if err != nil {
			writeArchiveError(w, err)
			logger.WithError(err).Info("document not served")
			return
		}

		w.Header().Set("Content-Type", contentType(file))
		if document == CustomersCSV {
			w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="customers_%s.csv"`, period))
		}
		if _, err := w.Write(data); err != nil {
			logger.WithError(err).Warn("write document")
		}
	}
}

// GetHistorical returns the condensed view of one period.
func GetHistorical(presenter presenting.Presenter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		params := httprouter.ParamsFromContext(r.Context())
		period, err := domain.ParsePeriod(params.ByName("period"))
		if err != nil {
			apiErrors.WriteError(w, apiErrors.ErrInvalidPeriod, err.Error(), nil)
			return
		}

		view, err := presenter.Historical(r.Context(), period)
		if err != nil {
			log.ForContext(r.Context()).WithField("period", period.String()).WithError(err).Error("historical view failed")
			apiErrors.WriteError(w, apiErrors.ErrInternalServer, "could not build historical view", nil)
			return
		}
		writeJSON(w, r, http.StatusOK, view)
	}
}

func writeArchiveError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, archive.ErrUnknownDocument):
		apiErrors.WriteError(w, apiErrors.ErrUnknownDocument, err.Error(), map[string]any{"documents": documentNames()})
	case errors.Is(err, archive.ErrNoData):
		apiErrors.WriteError(w, apiErrors.ErrPeriodNotFound, err.Error(), nil)
	default:
		apiErrors.WriteError(w, apiErrors.ErrInternalServer, "could not read archive", nil)
	}
}

func documentNames() []string {
	names := []string{CustomersCSV}
	for name := range archive.Documents {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func contentType(file string) string {
	switch filepath.Ext(file) {
	case ".json":
		return "application/json"
	case ".csv":
		return "text/csv; charset=utf-8"
	case ".md":
		return "text/markdown; charset=utf-8"
	default:
		return "application/octet-stream"
	}
}
