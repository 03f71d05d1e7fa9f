package service

import (
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTokenService(t *testing.T) *TokenService {
	t.Helper()
	svc, err := NewTokenService("test-secret", 15*time.Minute, 7*24*time.Hour)
	require.NoError(t, err)
	return svc
}

func TestTokenService_RoundTrip(t *testing.T) {
	svc := newTokenService(t)
	userID := uuid.NewString()

	pair, err := svc.IssuePair(userID)
	require.NoError(t, err)

	for _, token := range []string{pair.AccessToken, pair.RefreshToken} {
		payload, err := svc.Verify(token)
		require.NoError(t, err)
		assert.Equal(t, userID, payload.ID)
	}
}

func TestTokenService_Lifetimes(t *testing.T) {
	svc := newTokenService(t)
	pair, err := svc.IssuePair(uuid.NewString())
	require.NoError(t, err)

	expiry := func(token string) time.Duration {
		claims := &tokenClaims{}
		_, _, err := jwt.NewParser().ParseUnverified(token, claims)
		require.NoError(t, err)
		return claims.ExpiresAt.Sub(claims.IssuedAt.Time)
	}

	assert.Equal(t, 15*time.Minute, expiry(pair.AccessToken))
	assert.Equal(t, 7*24*time.Hour, expiry(pair.RefreshToken))
}

func TestTokenService_RejectsTamperedToken(t *testing.T) {
	svc := newTokenService(t)
	pair, err := svc.IssuePair(uuid.NewString())
	require.NoError(t, err)

	parts := strings.Split(pair.AccessToken, ".")
	require.Len(t, parts, 3)
	sig := []byte(parts[2])
	if sig[0] == 'A' {
		sig[0] = 'B'
	} else {
		sig[0] = 'A'
	}
	tampered := parts[0] + "." + parts[1] + "." + string(sig)

	_, err = svc.Verify(tampered)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestTokenService_RejectsOtherSecret(t *testing.T) {
	other, err := NewTokenService("another-secret", time.Minute, time.Hour)
	require.NoError(t, err)
	pair, err := other.IssuePair(uuid.NewString())
	require.NoError(t, err)

	_, err = newTokenService(t).Verify(pair.AccessToken)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestTokenService_RejectsExpiredToken(t *testing.T) {
	svc := newTokenService(t)
	svc.now = func() time.Time { return time.Now().Add(-time.Hour) }
	pair, err := svc.IssuePair(uuid.NewString())
	require.NoError(t, err)
	svc.now = time.Now

	_, err = svc.Verify(pair.AccessToken)
	assert.ErrorIs(t, err, ErrInvalidToken)

	_, err = svc.Verify(pair.RefreshToken)
	assert.NoError(t, err, "refresh token outlives the access token")
}

func TestTokenService_RejectsUnexpectedAlgorithm(t *testing.T) {
	svc := newTokenService(t)
	claims := tokenClaims{
		UserID: uuid.NewString(),
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS512, claims).SignedString([]byte("test-secret"))
	require.NoError(t, err)

	_, err = svc.Verify(signed)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestTokenService_RejectsMalformedPayload(t *testing.T) {
	svc := newTokenService(t)

	tests := map[string]tokenClaims{
		"missing id": {
			RegisteredClaims: jwt.RegisteredClaims{ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour))},
		},
		"id not a uuid": {
			UserID:           "42",
			RegisteredClaims: jwt.RegisteredClaims{ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour))},
		},
		"no expiry": {
			UserID: uuid.NewString(),
		},
	}

	for name, claims := range tests {
		t.Run(name, func(t *testing.T) {
			signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("test-secret"))
			require.NoError(t, err)

			_, err = svc.Verify(signed)
			assert.ErrorIs(t, err, ErrInvalidToken)
		})
	}

	_, err := svc.Verify("not.a.jwt")
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestNewTokenService_RequiresSecretAndTTLs(t *testing.T) {
	_, err := NewTokenService("", time.Minute, time.Hour)
	assert.ErrorIs(t, err, ErrMisconfigured)

	_, err = NewTokenService("secret", 0, time.Hour)
	assert.ErrorIs(t, err, ErrMisconfigured)
}
