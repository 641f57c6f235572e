package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// ErrNotJWT is returned when a credential is not a JWT. The backend is
// free to hand out opaque tokens, so callers treat this as "unknown expiry".
var ErrNotJWT = errors.New("credential is not a JWT")

// CredentialExpiry returns the exp claim of a JWT bearer credential without
// verifying its signature. The client never holds the signing key; the
// backend stays the authority on validity.
func CredentialExpiry(token string) (time.Time, bool, error) {
	claims := jwt.RegisteredClaims{}
	_, _, err := jwt.NewParser().ParseUnverified(token, &claims)
	if err != nil {
		return time.Time{}, false, fmt.Errorf("%w: %v", ErrNotJWT, err)
	}
	if claims.ExpiresAt == nil {
		return time.Time{}, false, nil
	}
	return claims.ExpiresAt.Time, true, nil
}

// CredentialExpired reports whether token is a JWT whose expiry is before
// now. Opaque tokens and JWTs without exp are never considered expired.
func CredentialExpired(token string, now time.Time) bool {
	exp, ok, err := CredentialExpiry(token)
	if err != nil || !ok {
		return false
	}
	return !now.Before(exp)
}
