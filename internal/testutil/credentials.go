package testutil

import (
	"testing"
	"time"

	jwt "github.com/golang-jwt/jwt/v5"
)

// JWTCredential returns a signed HS256 bearer credential for subject that
// expires at exp.
func JWTCredential(t testing.TB, subject string, exp time.Time) string {
	t.Helper()
	claims := jwt.RegisteredClaims{
		Subject:   subject,
		IssuedAt:  jwt.NewNumericDate(time.Now()),
		ExpiresAt: jwt.NewNumericDate(exp),
	}
	s, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("backend-secret"))
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}
	return s
}
