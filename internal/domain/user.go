package domain

import (
	"github.com/golang-jwt/jwt/v5"
)

// Claims is the session token payload for the shared dashboard account.
type Claims struct {
	Username string `json:"username"`
	jwt.RegisteredClaims
}

type LoginRequest struct {
	Username string `json:"username" validate:"required,max=128"`
	Password string `json:"password" validate:"required,max=72"`
}
