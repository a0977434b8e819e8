package handler

import (
	"net/http"
	"strings"
	"time"

	"github.com/pkg/errors"

	"github.com/durabrake/financial-dashboard/internal/api/web"
	"github.com/durabrake/financial-dashboard/internal/domain"
	"github.com/durabrake/financial-dashboard/internal/usecases/authenticating"
	"github.com/durabrake/financial-dashboard/pkg/apiErrors"
	"github.com/durabrake/financial-dashboard/pkg/log"
	"github.com/durabrake/financial-dashboard/pkg/middleware"
)

type LoginResponse struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
}

// LoginForm shows the sign-in page.
func LoginForm(pages *web.Renderer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		renderLogin(w, r, pages, http.StatusOK, web.LoginPage{Next: safeNext(r.URL.Query().Get("next"))})
	}
}

// Login accepts the sign-in form or a JSON body. Both set the session
// cookie; JSON callers also get the token.
func Login(service authenticating.Authenticator, pages *web.Renderer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logger := log.ForContext(r.Context())
		isJSON := strings.HasPrefix(r.Header.Get("Content-Type"), "application/json")

		var req domain.LoginRequest
		next := "/"
		if isJSON {
			if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
				apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, "invalid request body", nil)
				return
			}
		} else {
			if err := r.ParseForm(); err != nil {
				renderLogin(w, r, pages, http.StatusBadRequest, web.LoginPage{Error: "Invalid form."})
				return
			}
			req.Username = r.PostForm.Get("username")
			req.Password = r.PostForm.Get("password")
			next = safeNext(r.PostForm.Get("next"))
		}

		token, expires, err := service.Login(req)
		if err != nil {
			logger.WithField("username", req.Username).WithError(err).Warn("login rejected")
			if isJSON {
				handleLoginError(w, err)
				return
			}
			renderLogin(w, r, pages, http.StatusUnauthorized, web.LoginPage{
				Next:  next,
				User:  req.Username,
				Error: "Invalid username or password.",
			})
			return
		}

		http.SetCookie(w, &http.Cookie{
			Name:     middleware.SessionCookie,
			Value:    token,
			Path:     "/",
			Expires:  expires,
			HttpOnly: true,
			Secure:   r.TLS != nil,
			SameSite: http.SameSiteLaxMode,
		})
		logger.WithField("username", req.Username).Info("signed in")

		if isJSON {
			writeJSON(w, r, http.StatusOK, LoginResponse{Token: token, ExpiresAt: expires})
			return
		}
		http.Redirect(w, r, next, http.StatusSeeOther)
	}
}

// Logout clears the session cookie.
func Logout() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		http.SetCookie(w, &http.Cookie{
			Name:     middleware.SessionCookie,
			Value:    "",
			Path:     "/",
			MaxAge:   -1,
			HttpOnly: true,
			SameSite: http.SameSiteLaxMode,
		})
		http.Redirect(w, r, middleware.LoginPath, http.StatusSeeOther)
	}
}

func handleLoginError(w http.ResponseWriter, err error) {
	var authErr *authenticating.AuthError
	if errors.As(err, &authErr) {
		apiErrors.WriteError(w, authErr.Code, authErr.Error(), nil)
		return
	}
	apiErrors.WriteError(w, apiErrors.ErrInternalServer, "login failed", nil)
}

func renderLogin(w http.ResponseWriter, r *http.Request, pages *web.Renderer, status int, page web.LoginPage) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if err := pages.Render(w, web.PageLogin, page); err != nil {
		log.ForContext(r.Context()).WithError(err).Error("render login page")
	}
}

// safeNext keeps redirects on this site.
func safeNext(next string) string {
	if !strings.HasPrefix(next, "/") || strings.HasPrefix(next, "//") || strings.HasPrefix(next, "/\\") {
		return "/"
	}
	return next
}
