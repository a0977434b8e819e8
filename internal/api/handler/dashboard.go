package handler

import (
	"net/http"

	"github.com/pkg/errors"

	"github.com/durabrake/financial-dashboard/internal/api/web"
	"github.com/durabrake/financial-dashboard/internal/domain"
	"github.com/durabrake/financial-dashboard/internal/usecases/presenting"
	"github.com/durabrake/financial-dashboard/pkg/log"
	"github.com/durabrake/financial-dashboard/pkg/middleware"
)

// Dashboard renders the tabbed page. Query parameters: period, tab,
// historical.
func Dashboard(presenter presenting.Presenter, pages *web.Renderer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logger := log.ForContext(r.Context())
		q := r.URL.Query()

		view, err := presenter.Dashboard(r.Context(), presenting.Request{
			Period:     q.Get("period"),
			Tab:        q.Get("tab"),
			Historical: q.Get("historical"),
		})
		if err != nil {
			if errors.Is(err, domain.ErrInvalidPeriod) {
				http.Error(w, err.Error(), http.StatusBadRequest)
				return
			}
			logger.WithError(err).Error("dashboard could not be built")
			http.Error(w, "the dashboard is unavailable", http.StatusInternalServerError)
			return
		}

		page := web.DashboardPage{View: view}
		if claims, ok := middleware.UserFromContext(r.Context()); ok {
			page.User = claims.Username
		}

		if err := pages.Render(w, web.PageDashboard, page); err != nil {
			logger.WithError(err).Error("render dashboard")
			http.Error(w, "the dashboard is unavailable", http.StatusInternalServerError)
		}
	}
}
