package users_services

import (
	"errors"
	"fmt"
	"time"

	"taskboard/internal/util/app_errors"

	"github.com/golang-jwt/jwt/v4"
	"golang.org/x/crypto/bcrypt"
)

// PasswordHasher is a one-way hash: the plaintext can be verified but never
// recovered.
type PasswordHasher interface {
	Hash(plaintext string) (string, error)
	Verify(plaintext string, hash string) bool
}

// TokenIssuer signs and verifies access tokens carrying the user's email.
// Verify returns an Unauthenticated app error for expired or invalid tokens.
type TokenIssuer interface {
	Issue(email string, ttl time.Duration) (string, time.Time, error)
	Verify(token string) (string, error)
}

type BcryptPasswordHasher struct {
	Cost int
}

func (h *BcryptPasswordHasher) Hash(plaintext string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(plaintext), h.Cost)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}

	return string(hash), nil
}

func (h *BcryptPasswordHasher) Verify(plaintext string, hash string) bool {
	if hash == "" {
		return false
	}

	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(plaintext)) == nil
}

type JwtTokenIssuer struct {
	getSecret func() (string, error)
}

func NewJwtTokenIssuer(getSecret func() (string, error)) *JwtTokenIssuer {
	return &JwtTokenIssuer{getSecret: getSecret}
}

func (i *JwtTokenIssuer) Issue(email string, ttl time.Duration) (string, time.Time, error) {
	secretKey, err := i.getSecret()
	if err != nil {
		return "", time.Time{}, fmt.Errorf("failed to get secret key: %w", err)
	}

	now := time.Now().UTC()
	expiresAt := now.Add(ttl)

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Subject:   email,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(expiresAt),
	})

	tokenString, err := token.SignedString([]byte(secretKey))
	if err != nil {
		return "", time.Time{}, fmt.Errorf("failed to generate token: %w", err)
	}

	return tokenString, expiresAt, nil
}

func (i *JwtTokenIssuer) Verify(token string) (string, error) {
	secretKey, err := i.getSecret()
	if err != nil {
		return "", fmt.Errorf("failed to get secret key: %w", err)
	}

	claims := &jwt.RegisteredClaims{}
	parsedToken, err := jwt.ParseWithClaims(token, claims, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}

		return []byte(secretKey), nil
	})

	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return "", app_errors.Unauthenticated("token expired")
		}

		return "", app_errors.Unauthenticated("invalid token")
	}

	if !parsedToken.Valid || claims.Subject == "" || claims.ExpiresAt == nil {
		return "", app_errors.Unauthenticated("invalid token")
	}

	return claims.Subject, nil
}
