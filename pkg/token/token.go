package token

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Issuer is the iss claim of every RecallKit token.
const Issuer = "recallkit"

// ErrInvalidToken is returned for tokens that fail verification
var ErrInvalidToken = errors.New("invalid token")

// Claims are the claims of a profile-scoped token.
type Claims struct {
	jwt.RegisteredClaims
}

// Issue mints a token scoped to profile. A ttl <= 0 issues a token without
// expiry.
func Issue(secret, profile string, ttl time.Duration) (string, error) {
	return issueAt(secret, profile, ttl, time.Now())
}

func issueAt(secret, profile string, ttl time.Duration, now time.Time) (string, error) {
	if secret == "" {
		return "", errors.New("signing secret is empty")
	}
	if profile == "" {
		return "", errors.New("profile is required")
	}

	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:   Issuer,
			Subject:  profile,
			IssuedAt: jwt.NewNumericDate(now),
		},
	}
	if ttl > 0 {
		claims.ExpiresAt = jwt.NewNumericDate(now.Add(ttl))
	}

	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
}

// Verify checks a token's signature, issuer and expiry and returns the
// profile it is scoped to.
func Verify(secret, tokenString string) (string, error) {
	var claims Claims
	_, err := jwt.ParseWithClaims(tokenString, &claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return []byte(secret), nil
	}, jwt.WithValidMethods([]string{"HS256"}), jwt.WithIssuer(Issuer))
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
	if claims.Subject == "" {
		return "", fmt.Errorf("%w: missing subject", ErrInvalidToken)
	}
	return claims.Subject, nil
}
