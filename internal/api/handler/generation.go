package handler

import (
	"io"
	"net/http"

	"github.com/pkg/errors"

	"github.com/durabrake/financial-dashboard/internal/domain"
	"github.com/durabrake/financial-dashboard/internal/scheduler"
	"github.com/durabrake/financial-dashboard/internal/usecases/generating"
	"github.com/durabrake/financial-dashboard/pkg/apiErrors"
	"github.com/durabrake/financial-dashboard/pkg/log"
)

type GenerationRequest struct {
	Period    string `json:"period"`
	Overwrite bool   `json:"overwrite"`
}

// RunGeneration starts a generation in the background. An empty period
// means the month just closed.
func RunGeneration(trigger GenerationTrigger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logger := log.ForContext(r.Context())

		var body GenerationRequest
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil && !errors.Is(err, io.EOF) {
			apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, "invalid request body", nil)
			return
		}

		req := generating.Request{Overwrite: body.Overwrite}
		if body.Period == "" {
			req.Period = scheduler.ScheduledPeriod(timeNow())
		} else {
			period, err := domain.ParsePeriod(body.Period)
			if err != nil {
				apiErrors.WriteError(w, apiErrors.ErrInvalidPeriod, err.Error(), nil)
				return
			}
			req.Period = period
		}

		if err := trigger.TriggerManualRun(r.Context(), req); err != nil {
			if errors.Is(err, scheduler.ErrRunInProgress) {
				apiErrors.WriteError(w, apiErrors.ErrGenerationBusy, err.Error(), nil)
				return
			}
			logger.WithError(err).Error("generation could not be started")
			apiErrors.WriteError(w, apiErrors.ErrInternalServer, "generation could not be started", nil)
			return
		}

		writeJSON(w, r, http.StatusAccepted, map[string]any{
			"message":   "generation started",
			"period":    req.Period.String(),
			"overwrite": req.Overwrite,
		})
	}
}

func GetGenerationStatus(trigger GenerationTrigger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, r, http.StatusOK, trigger.GetStatus())
	}
}
