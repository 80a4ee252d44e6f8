package utils

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

func signedToken(t *testing.T, claims jwt.MapClaims) string {
	t.Helper()
	raw, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("test-key"))
	if err != nil {
		t.Fatalf("failed to build token: %v", err)
	}
	return raw
}

func TestParseTokenData(t *testing.T) {
	raw := signedToken(t, jwt.MapClaims{
		"sub":   "abc-123",
		"email": "juan@example.com",
		"exp":   time.Now().Add(time.Hour).Unix(),
	})

	data, err := parseTokenData(raw)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if data.Sub != "abc-123" || data.Email != "juan@example.com" {
		t.Fatalf("unexpected token data: %+v", data)
	}
}

func TestParseTokenData_Expired(t *testing.T) {
	raw := signedToken(t, jwt.MapClaims{
		"sub": "abc-123",
		"exp": time.Now().Add(-time.Minute).Unix(),
	})

	if _, err := parseTokenData(raw); err == nil {
		t.Fatal("expired token must be rejected")
	}
}

func TestParseTokenData_MissingSub(t *testing.T) {
	raw := signedToken(t, jwt.MapClaims{
		"exp": time.Now().Add(time.Hour).Unix(),
	})

	if _, err := parseTokenData(raw); err == nil {
		t.Fatal("token without sub must be rejected")
	}
}

func TestParseTokenData_Garbage(t *testing.T) {
	if _, err := parseTokenData("not-a-token"); err == nil {
		t.Fatal("garbage must be rejected")
	}
}
