package handler

import (
	"net/http"

	"github.com/durabrake/financial-dashboard/internal/api/handler/router"
	"github.com/durabrake/financial-dashboard/internal/api/web"
	"github.com/durabrake/financial-dashboard/internal/usecases/authenticating"
	"github.com/durabrake/financial-dashboard/internal/usecases/presenting"
	"github.com/durabrake/financial-dashboard/pkg/apiErrors"
	"github.com/durabrake/financial-dashboard/pkg/middleware"
)

func Healthcheck() []router.Route {
	return []router.Route{
		{
			Path:    "/healthcheck",
			Method:  http.MethodGet,
			Handler: HealthcheckHandler(),
		},
	}
}

func Metrics(handler http.Handler) []router.Route {
	return []router.Route{
		{
			Path:    "/metrics",
			Method:  http.MethodGet,
			Handler: handler,
		},
	}
}

func Session(service authenticating.Authenticator, pages *web.Renderer) []router.Route {
	return []router.Route{
		{
			Path:    middleware.LoginPath,
			Method:  http.MethodGet,
			Handler: LoginForm(pages),
		},
		{
			Path:    middleware.LoginPath,
			Method:  http.MethodPost,
			Handler: Login(service, pages),
		},
		{
			Path:    middleware.APILoginPath,
			Method:  http.MethodPost,
			Handler: Login(service, pages),
		},
		{
			Path:    "/logout",
			Method:  http.MethodPost,
			Handler: Logout(),
		},
	}
}

func DashboardPages(presenter presenting.Presenter, pages *web.Renderer) []router.Route {
	return []router.Route{
		{
			Path:    "/",
			Method:  http.MethodGet,
			Handler: Dashboard(presenter, pages),
		},
	}
}

func Periods(presenter presenting.Presenter, reader DocumentReader) []router.Route {
	return []router.Route{
		{
			Path:    "/v1/periods",
			Method:  http.MethodGet,
			Handler: GetAvailablePeriods(presenter),
		},
		{
			Path:    "/v1/periods/:period/:document",
			Method:  http.MethodGet,
			Handler: GetDocument(reader),
		},
		{
			Path:    "/v1/historicals/:period",
			Method:  http.MethodGet,
			Handler: GetHistorical(presenter),
		},
	}
}

func Generation(trigger GenerationTrigger) []router.Route {
	return []router.Route{
		{
			Path:    "/v1/generation/run",
			Method:  http.MethodPost,
			Handler: RunGeneration(trigger),
		},
		{
			Path:    "/v1/generation/status",
			Method:  http.MethodGet,
			Handler: GetGenerationStatus(trigger),
		},
	}
}

// NotFound answers API paths with a JSON error and pages with plain text.
func NotFound() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if middleware.IsAPIRequest(r) {
			apiErrors.WriteError(w, apiErrors.ErrNotFound, "no such endpoint", nil)
			return
		}
		http.NotFound(w, r)
	})
}
