package api

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/durabrake/financial-dashboard/internal/api/handler/mocks"
	"github.com/durabrake/financial-dashboard/internal/config"
	"github.com/durabrake/financial-dashboard/internal/domain"
	"github.com/durabrake/financial-dashboard/internal/metrics"
	"github.com/durabrake/financial-dashboard/internal/usecases/authenticating"
	authmocks "github.com/durabrake/financial-dashboard/internal/usecases/authenticating/mocks"
	presentingmocks "github.com/durabrake/financial-dashboard/internal/usecases/presenting/mocks"
	"github.com/durabrake/financial-dashboard/pkg/apiErrors"
	"github.com/durabrake/financial-dashboard/pkg/log"
)

func init() {
	log.SetupTestLogger()
}

type fixture struct {
	handler   http.Handler
	presenter *presentingmocks.MockPresenter
	auth      *authmocks.MockAuthenticator
	trigger   *mocks.MockGenerationTrigger
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	ctrl := gomock.NewController(t)
	f := &fixture{
		presenter: presentingmocks.NewMockPresenter(ctrl),
		auth:      authmocks.NewMockAuthenticator(ctrl),
		trigger:   mocks.NewMockGenerationTrigger(ctrl),
	}

	h, err := NewHandler(Dependencies{
		Presenter:     f.presenter,
		Documents:     mocks.NewMockDocumentReader(ctrl),
		Authenticator: f.auth,
		Generation:    f.trigger,
		Metrics:       metrics.New(),
	})
	require.NoError(t, err)
	f.handler = h
	return f
}

func (f *fixture) do(req *http.Request) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	f.handler.ServeHTTP(rec, req)
	return rec
}

func TestHandler_PublicPaths(t *testing.T) {
	f := newFixture(t)

	assert.Equal(t, http.StatusOK, f.do(httptest.NewRequest(http.MethodGet, "/healthcheck", nil)).Code)
	assert.Equal(t, http.StatusOK, f.do(httptest.NewRequest(http.MethodGet, "/login", nil)).Code)

	rec := f.do(httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "kpi_http_requests_total")
}

func TestHandler_Unauthenticated(t *testing.T) {
	f := newFixture(t)

	page := f.do(httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusSeeOther, page.Code)
	assert.Equal(t, "/login", page.Header().Get("Location"))

	api := f.do(httptest.NewRequest(http.MethodGet, "/v1/periods", nil))
	assert.Equal(t, http.StatusUnauthorized, api.Code)
	assert.Contains(t, api.Body.String(), apiErrors.ErrMissingCredentials)
}

func TestHandler_BasicAuth(t *testing.T) {
	f := newFixture(t)
	f.auth.EXPECT().CheckCredentials("finance", "s3cret").Return(nil).Times(2)
	f.presenter.EXPECT().Periods().Return(&domain.AvailablePeriods{Periods: []string{"25.12"}, Years: []int{2025}, Latest: "25.12"}, nil)

	req := httptest.NewRequest(http.MethodGet, "/v1/periods", nil)
	req.SetBasicAuth("finance", "s3cret")
	rec := f.do(req)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"periods":["25.12"],"years":[2025],"latest":"25.12"}`, rec.Body.String())

	req = httptest.NewRequest(http.MethodGet, "/v1/unknown", nil)
	req.SetBasicAuth("finance", "s3cret")
	rec = f.do(req)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, rec.Body.String(), apiErrors.ErrNotFound)
}

func TestHandler_WrongPassword(t *testing.T) {
	f := newFixture(t)
	f.auth.EXPECT().CheckCredentials("finance", "guess").Return(
		authenticating.NewAuthError(authenticating.ErrInvalidCredentials, apiErrors.ErrInvalidCredentials, "wrong"))

	req := httptest.NewRequest(http.MethodGet, "/v1/generation/status", nil)
	req.SetBasicAuth("finance", "guess")

	rec := f.do(req)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Contains(t, rec.Body.String(), apiErrors.ErrInvalidCredentials)
}

func TestHandler_SessionCookie(t *testing.T) {
	f := newFixture(t)
	f.auth.EXPECT().ValidateToken("tok").Return(&domain.Claims{Username: "finance"}, nil)
	f.trigger.EXPECT().GetStatus().Return(map[string]any{"running": false})

	req := httptest.NewRequest(http.MethodGet, "/v1/generation/status", nil)
	req.AddCookie(&http.Cookie{Name: "kpi_session", Value: "tok"})

	rec := f.do(req)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"running":false}`, rec.Body.String())
}

func TestHandler_JSONLoginIsPublic(t *testing.T) {
	f := newFixture(t)
	expires := time.Date(2026, 1, 2, 0, 0, 0, 0, time.UTC)
	f.auth.EXPECT().Login(domain.LoginRequest{Username: "finance", Password: "s3cret"}).Return("tok", expires, nil)

	req := httptest.NewRequest(http.MethodPost, "/v1/login", strings.NewReader(`{"username":"finance","password":"s3cret"}`))
	req.Header.Set("Content-Type", "application/json")

	rec := f.do(req)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"token":"tok","expires_at":"2026-01-02T00:00:00Z"}`, rec.Body.String())
	require.Len(t, rec.Result().Cookies(), 1)
	assert.Equal(t, "tok", rec.Result().Cookies()[0].Value)
}

func TestNew(t *testing.T) {
	f := newFixture(t)
	srv, err := New(&config.Config{Server: config.Server{Host: "127.0.0.1", Port: "8501"}}, Dependencies{
		Presenter:     f.presenter,
		Authenticator: f.auth,
	})
	require.NoError(t, err)
	assert.Equal(t, "127.0.0.1:8501", srv.httpServer.Addr)

	cleaned := false
	srv.OnShutdown(func() { cleaned = true })
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	require.NoError(t, srv.Shutdown(ctx))
	assert.True(t, cleaned)
}
