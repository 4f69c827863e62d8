package users_services

import (
	"errors"
	"testing"
	"time"

	"taskboard/internal/util/app_errors"

	"github.com/golang-jwt/jwt/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func Test_BcryptPasswordHasher_WhenPasswordMatches_VerifySucceeds(t *testing.T) {
	hasher := &BcryptPasswordHasher{Cost: bcrypt.MinCost}

	hash, err := hasher.Hash("correct horse battery")
	require.NoError(t, err)

	assert.NotEqual(t, "correct horse battery", hash)
	assert.True(t, hasher.Verify("correct horse battery", hash))
	assert.False(t, hasher.Verify("wrong password", hash))
	assert.False(t, hasher.Verify("correct horse battery", ""))
}

func Test_JwtTokenIssuer_WhenTokenIssued_VerifyReturnsEmail(t *testing.T) {
	issuer := NewJwtTokenIssuer(staticSecret("secret-a"))

	token, expiresAt, err := issuer.Issue("user@example.com", time.Minute)
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now().UTC().Add(time.Minute), expiresAt, 5*time.Second)

	email, err := issuer.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, "user@example.com", email)
}

func Test_JwtTokenIssuer_WhenTokenExpired_ReturnsUnauthenticated(t *testing.T) {
	issuer := NewJwtTokenIssuer(staticSecret("secret-a"))

	token, _, err := issuer.Issue("user@example.com", -time.Minute)
	require.NoError(t, err)

	_, err = issuer.Verify(token)
	require.Error(t, err)
	assert.True(t, app_errors.Is(err, app_errors.KindUnauthenticated))
	assert.Equal(t, "token expired", err.Error())
}

func Test_JwtTokenIssuer_WhenSignedWithOtherSecret_ReturnsInvalidToken(t *testing.T) {
	token, _, err := NewJwtTokenIssuer(staticSecret("secret-a")).Issue("user@example.com", time.Minute)
	require.NoError(t, err)

	_, err = NewJwtTokenIssuer(staticSecret("secret-b")).Verify(token)
	require.Error(t, err)
	assert.True(t, app_errors.Is(err, app_errors.KindUnauthenticated))
	assert.Equal(t, "invalid token", err.Error())
}

func Test_JwtTokenIssuer_WhenSigningMethodIsNone_ReturnsInvalidToken(t *testing.T) {
	unsigned := jwt.NewWithClaims(jwt.SigningMethodNone, jwt.RegisteredClaims{
		Subject:   "user@example.com",
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
	})
	token, err := unsigned.SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	_, err = NewJwtTokenIssuer(staticSecret("secret-a")).Verify(token)
	assert.True(t, app_errors.Is(err, app_errors.KindUnauthenticated))
}

func Test_JwtTokenIssuer_WhenSecretUnavailable_ReturnsInternalError(t *testing.T) {
	issuer := NewJwtTokenIssuer(func() (string, error) {
		return "", errors.New("database is down")
	})

	_, _, err := issuer.Issue("user@example.com", time.Minute)
	require.Error(t, err)
	assert.Equal(t, app_errors.KindInternal, app_errors.KindOf(err))
}

func staticSecret(secret string) func() (string, error) {
	return func() (string, error) {
		return secret, nil
	}
}
