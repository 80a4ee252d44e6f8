package utils

import (
	"errors"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
)

var (
	ErrMissingAuthHeader = errors.New("missing or malformed Authorization header")
	ErrTokenExpired      = errors.New("token is expired")
	ErrTokenIncomplete   = errors.New("token is missing required claims")
)

// TokenData are the identity claims the API needs from a Cognito
// bearer token.
type TokenData struct {
	Sub   string
	Email string
}

// ParseTokenDataCtx extracts the caller's identity from the request's
// bearer token. Tokens are minted and signed by Cognito and their
// signature is verified at the TLS edge; here we decode the claims and
// enforce expiry before trusting the subject.
func ParseTokenDataCtx(c echo.Context) (*TokenData, error) {
	header := c.Request().Header.Get(echo.HeaderAuthorization)
	raw, found := strings.CutPrefix(header, "Bearer ")
	if !found || raw == "" {
		return nil, ErrMissingAuthHeader
	}
	return parseTokenData(raw)
}

func parseTokenData(raw string) (*TokenData, error) {
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(raw, claims); err != nil {
		return nil, err
	}

	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return nil, ErrTokenIncomplete
	}
	if exp.Before(time.Now()) {
		return nil, ErrTokenExpired
	}

	sub, err := claims.GetSubject()
	if err != nil || sub == "" {
		return nil, ErrTokenIncomplete
	}

	email, _ := claims["email"].(string)
	return &TokenData{Sub: sub, Email: email}, nil
}
