package authenticating

//go:generate mockgen -source=interfaces.go -destination=mocks/mocks.go -package=mocks

import (
	"time"

	"github.com/durabrake/financial-dashboard/internal/domain"
)

type Authenticator interface {
	Login(req domain.LoginRequest) (string, time.Time, error)
	CheckCredentials(username, password string) error
	ValidateToken(tokenString string) (*domain.Claims, error)
	SessionTTL() time.Duration
}
