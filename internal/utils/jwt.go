// Package utils provides helper functions for token creation, verification
// and password hashing.
package utils

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// refreshTokenType is the value of the "type" claim that marks a token as a
// refresh token. Access tokens carry no "type" claim at all.
const refreshTokenType = "refresh"

// ErrInvalidToken is returned when a token fails verification for any
// reason: bad signature, unexpected algorithm, malformed payload, expiry, a
// missing subject, or the wrong token type for the call site.
var ErrInvalidToken = errors.New("invalid token")

// SignedToken is a serialized HS256 JWT together with its expiration time.
// Both access and refresh tokens are stateless: validity is defined entirely
// by signature, expiry and the type discriminator, never by a server-side
// session table.
type SignedToken struct {
	Token string    // the serialized JWT string
	Exp   time.Time // the UTC expiration time
}

// NewAccessToken builds and signs a short-lived HS256 JWT whose subject is
// the user's email. Claims: sub, exp and iat.
func NewAccessToken(secret, subject string, ttlMin int) (SignedToken, error) {
	return sign(secret, jwt.MapClaims{"sub": subject}, time.Duration(ttlMin)*time.Minute)
}

// NewRefreshToken builds and signs a long-lived HS256 JWT with the same
// claims as an access token plus type:"refresh". Refresh tokens are used
// solely to obtain new access tokens and are rejected on access-gated
// routes.
func NewRefreshToken(secret, subject string, ttlDays int) (SignedToken, error) {
	claims := jwt.MapClaims{"sub": subject, "type": refreshTokenType}
	return sign(secret, claims, time.Duration(ttlDays)*24*time.Hour)
}

func sign(secret string, claims jwt.MapClaims, ttl time.Duration) (SignedToken, error) {
	now := time.Now().UTC()
	exp := now.Add(ttl)
	claims["exp"] = exp.Unix()
	claims["iat"] = now.Unix()
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := t.SignedString([]byte(secret))
	if err != nil {
		return SignedToken{}, err
	}
	return SignedToken{Token: signed, Exp: exp}, nil
}

// VerifyAccessToken checks signature, expiry and subject of an access token
// and returns the subject email. Refresh tokens are rejected here so that a
// long-lived refresh token can never be used to call protected endpoints.
func VerifyAccessToken(secret, raw string) (string, error) {
	subject, typ, err := parse(secret, raw)
	if err != nil {
		return "", err
	}
	if typ == refreshTokenType {
		return "", ErrInvalidToken
	}
	return subject, nil
}

// VerifyRefreshToken checks signature, expiry, subject and the type claim of
// a refresh token and returns the subject email. A token without
// type:"refresh" is rejected even when its signature is valid.
func VerifyRefreshToken(secret, raw string) (string, error) {
	subject, typ, err := parse(secret, raw)
	if err != nil {
		return "", err
	}
	if typ != refreshTokenType {
		return "", ErrInvalidToken
	}
	return subject, nil
}

func parse(secret, raw string) (subject, typ string, err error) {
	tok, err := jwt.Parse(raw, func(t *jwt.Token) (any, error) {
		// Reject tokens signed with anything but HMAC.
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return []byte(secret), nil
	})
	if err != nil || !tok.Valid {
		return "", "", ErrInvalidToken
	}
	claims, ok := tok.Claims.(jwt.MapClaims)
	if !ok {
		return "", "", ErrInvalidToken
	}
	subject, _ = claims["sub"].(string)
	if subject == "" {
		return "", "", ErrInvalidToken
	}
	typ, _ = claims["type"].(string)
	return subject, typ, nil
}
