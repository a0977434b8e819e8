// Package authenticating guards the dashboard with one shared account.
// Sessions are HS256 tokens; HTTP Basic credentials are checked against the
// same bcrypt hash.
package authenticating

import (
	"crypto/subtle"
	"errors"
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/golang-jwt/jwt/v5"
	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"

	"github.com/durabrake/financial-dashboard/internal/config"
	"github.com/durabrake/financial-dashboard/internal/domain"
	"github.com/durabrake/financial-dashboard/pkg/apiErrors"
)

const issuer = "financial-dashboard"

type Service struct {
	username     string
	passwordHash []byte
	secretKey    []byte
	ttl          time.Duration
	validate     *validator.Validate
	now          func() time.Time
}

// NewService prefers DASHBOARD_PASSWORD_HASH. A plain DASHBOARD_PASSWORD is
// hashed once at startup.
func NewService(cfg *config.Config) (*Service, error) {
	hash := []byte(cfg.Auth.PasswordHash)
	switch {
	case len(hash) > 0:
		if _, err := bcrypt.Cost(hash); err != nil {
			return nil, NewAuthError(ErrInvalidPasswordHash, apiErrors.ErrInternalServer, err.Error())
		}
	case cfg.Auth.Password != "":
		logrus.Warn("DASHBOARD_PASSWORD is set in plain text, prefer DASHBOARD_PASSWORD_HASH outside local development")
		hashed, err := bcrypt.GenerateFromPassword([]byte(cfg.Auth.Password), bcrypt.DefaultCost)
		if err != nil {
			return nil, fmt.Errorf("hash dashboard password: %w", err)
		}
		hash = hashed
	default:
		return nil, NewAuthError(ErrNoPasswordConfigured, apiErrors.ErrInternalServer, "set DASHBOARD_PASSWORD_HASH or DASHBOARD_PASSWORD")
	}

	return &Service{
		username:     cfg.Auth.Username,
		passwordHash: hash,
		secretKey:    []byte(cfg.SecretKey),
		ttl:          cfg.Auth.SessionTTL,
		validate:     validator.New(),
		now:          time.Now,
	}, nil
}

func (s *Service) SessionTTL() time.Duration {
	return s.ttl
}

// Login checks the credentials and issues a session token with its expiry.
func (s *Service) Login(req domain.LoginRequest) (string, time.Time, error) {
	if err := s.validate.Struct(req); err != nil {
		return "", time.Time{}, NewAuthError(ErrMissingCredentials, apiErrors.ErrMissingCredentials, "username and password are required")
	}

	if err := s.CheckCredentials(req.Username, req.Password); err != nil {
		return "", time.Time{}, err
	}

	expires := s.now().Add(s.ttl)
	token, err := s.generateJWT(req.Username, expires)
	if err != nil {
		return "", time.Time{}, NewAuthError(err, apiErrors.ErrInternalServer, "could not sign session token")
	}

	return token, expires, nil
}

// CheckCredentials compares the username in constant time and always runs
// the bcrypt comparison, so a wrong username costs as much as a wrong password.
func (s *Service) CheckCredentials(username, password string) error {
	if username == "" || password == "" {
		return NewAuthError(ErrMissingCredentials, apiErrors.ErrMissingCredentials, "username and password are required")
	}

	userOK := subtle.ConstantTimeCompare([]byte(username), []byte(s.username)) == 1
	passwordErr := bcrypt.CompareHashAndPassword(s.passwordHash, []byte(password))
	if !userOK || passwordErr != nil {
		return NewUserAuthError(ErrInvalidCredentials, apiErrors.ErrInvalidCredentials, username, "username or password is incorrect")
	}

	return nil
}

func (s *Service) generateJWT(username string, expires time.Time) (string, error) {
	now := s.now()
	claims := domain.Claims{
		Username: username,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    issuer,
			Subject:   username,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expires),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.secretKey)
}

// ValidateToken accepts only unexpired HS256 tokens issued for the configured
// account.
func (s *Service) ValidateToken(tokenString string) (*domain.Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &domain.Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return s.secretKey, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(issuer),
		jwt.WithTimeFunc(s.now),
	)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, NewAuthError(ErrExpiredToken, apiErrors.ErrExpiredToken, "session expired")
		}
		return nil, NewAuthError(ErrInvalidToken, apiErrors.ErrInvalidToken, err.Error())
	}

	claims, ok := token.Claims.(*domain.Claims)
	if !ok || !token.Valid {
		return nil, NewAuthError(ErrInvalidToken, apiErrors.ErrInvalidToken, "malformed claims")
	}
	if subtle.ConstantTimeCompare([]byte(claims.Username), []byte(s.username)) != 1 {
		return nil, NewUserAuthError(ErrInvalidToken, apiErrors.ErrInvalidToken, claims.Username, "token was issued for another account")
	}

	return claims, nil
}

var _ Authenticator = (*Service)(nil)
