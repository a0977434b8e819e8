package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/url"
	"strings"

	"github.com/durabrake/financial-dashboard/internal/domain"
	"github.com/durabrake/financial-dashboard/internal/usecases/authenticating"
	"github.com/durabrake/financial-dashboard/pkg/apiErrors"
	"github.com/durabrake/financial-dashboard/pkg/log"
)

type contextKey string

const (
	ContextKeyUser contextKey = "user"

	// SessionCookie carries the token issued by the login form.
	SessionCookie = "kpi_session"
	LoginPath     = "/login"
	APILoginPath  = "/v1/login"
)

var publicPaths = map[string]bool{
	LoginPath:      true,
	APILoginPath:   true,
	"/healthcheck": true,
	"/metrics":     true,
}

// IsAPIRequest reports whether r expects JSON rather than a page.
func IsAPIRequest(r *http.Request) bool {
	return strings.HasPrefix(r.URL.Path, "/v1/")
}

// AuthMiddleware accepts a session cookie, a bearer token or HTTP Basic
// credentials. Pages redirect to the login form; API calls get 401.
func AuthMiddleware(authService authenticating.Authenticator) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if publicPaths[r.URL.Path] {
				next.ServeHTTP(w, r)
				return
			}

			claims, err := authenticate(authService, r)
			if err != nil {
				log.ForContext(r.Context()).WithField("path", r.URL.Path).WithError(err).Debug("request not authenticated")
				deny(w, r, err)
				return
			}

			ctx := context.WithValue(r.Context(), ContextKeyUser, claims)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func authenticate(authService authenticating.Authenticator, r *http.Request) (*domain.Claims, error) {
	if username, password, ok := r.BasicAuth(); ok {
		if err := authService.CheckCredentials(username, password); err != nil {
			return nil, err
		}
		return &domain.Claims{Username: username}, nil
	}

	if header := r.Header.Get("Authorization"); header != "" {
		token := strings.TrimPrefix(header, "Bearer ")
		if token == header {
			return nil, authenticating.NewAuthError(authenticating.ErrMissingCredentials, apiErrors.ErrMissingCredentials, "unsupported authorization scheme")
		}
		return authService.ValidateToken(token)
	}

	cookie, err := r.Cookie(SessionCookie)
	if err != nil || cookie.Value == "" {
		return nil, authenticating.NewAuthError(authenticating.ErrMissingCredentials, apiErrors.ErrMissingCredentials, "authentication required")
	}
	return authService.ValidateToken(cookie.Value)
}

func deny(w http.ResponseWriter, r *http.Request, err error) {
	if IsAPIRequest(r) {
		code := apiErrors.ErrMissingCredentials
		var authErr *authenticating.AuthError
		if errors.As(err, &authErr) {
			code = authErr.Code
		}
		w.Header().Set("WWW-Authenticate", `Basic realm="financial-dashboard", charset="UTF-8"`)
		apiErrors.WriteError(w, code, "authentication required", nil)
		return
	}

	target := LoginPath
	if r.Method == http.MethodGet && r.URL.Path != "/" {
		target += "?next=" + url.QueryEscape(r.URL.RequestURI())
	}
	http.Redirect(w, r, target, http.StatusSeeOther)
}

// UserFromContext returns the authenticated account, if any.
func UserFromContext(ctx context.Context) (*domain.Claims, bool) {
	claims, ok := ctx.Value(ContextKeyUser).(*domain.Claims)
	return claims, ok
}
