package service

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taskboard/backend/internal/config"
	"github.com/taskboard/backend/internal/service/servicetest"
)

func newAuthService(t *testing.T, mode string) (*AuthService, *TokenService, *servicetest.Store) {
	t.Helper()
	store := servicetest.NewStore()
	tokens := newTokenService(t)
	svc, err := NewAuthService(store, NewBcryptHasher(), tokens, config.AuthConfig{CookieDomain: "board.test"}, mode)
	require.NoError(t, err)
	return svc, tokens, store
}

func requireKind(t *testing.T, err error, kind error, msg string) {
	t.Helper()
	require.Error(t, err)
	require.ErrorIs(t, err, kind)
	if msg != "" {
		assert.Equal(t, msg, Message(err))
	}
}

func TestAuthService_RegisterLoginRefresh(t *testing.T) {
	svc, tokens, _ := newAuthService(t, config.ModeProduction)
	ctx := context.Background()

	registered, err := svc.Register(ctx, "a@x.io", "pw1234")
	require.NoError(t, err)
	require.NotEmpty(t, registered.AccessToken)
	require.NotNil(t, registered.Cookie)
	assert.Equal(t, RefreshCookieName, registered.Cookie.Name)

	registeredPayload, err := tokens.Verify(registered.AccessToken)
	require.NoError(t, err)

	loggedIn, err := svc.Login(ctx, "a@x.io", "pw1234")
	require.NoError(t, err)
	loginPayload, err := tokens.Verify(loggedIn.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, registeredPayload.ID, loginPayload.ID)

	refreshed, err := svc.Refresh(ctx, loggedIn.Cookie.Value)
	require.NoError(t, err)
	refreshedPayload, err := tokens.Verify(refreshed.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, registeredPayload.ID, refreshedPayload.ID)
	assert.NotEmpty(t, refreshed.Cookie.Value)
}

func TestAuthService_RegisterDuplicateEmail(t *testing.T) {
	svc, _, _ := newAuthService(t, config.ModeProduction)
	ctx := context.Background()

	_, err := svc.Register(ctx, "a@x.io", "pw1234")
	require.NoError(t, err)

	_, err = svc.Register(ctx, "a@x.io", "other-pw")
	requireKind(t, err, ErrConflict, "User with Email a@x.io already exist")
}

func TestAuthService_LoginDoesNotRevealWhichCredentialFailed(t *testing.T) {
	svc, _, _ := newAuthService(t, config.ModeProduction)
	ctx := context.Background()

	_, err := svc.Register(ctx, "a@x.io", "pw1234")
	require.NoError(t, err)

	_, unknownEmail := svc.Login(ctx, "nobody@x.io", "pw1234")
	_, wrongPassword := svc.Login(ctx, "a@x.io", "wrong-pw")

	requireKind(t, unknownEmail, ErrNotFound, msgInvalidCredentials)
	requireKind(t, wrongPassword, ErrNotFound, msgInvalidCredentials)
	assert.Equal(t, unknownEmail.Error(), wrongPassword.Error())
}

func TestAuthService_RefreshRejections(t *testing.T) {
	svc, tokens, store := newAuthService(t, config.ModeProduction)
	ctx := context.Background()

	_, err := svc.Refresh(ctx, "")
	requireKind(t, err, ErrUnauthorized, "Refresh-token is invalid")

	_, err = svc.Refresh(ctx, "garbage")
	requireKind(t, err, ErrUnauthorized, "Refresh-token is invalid")

	session, err := svc.Register(ctx, "gone@x.io", "pw1234")
	require.NoError(t, err)
	payload, err := tokens.Verify(session.AccessToken)
	require.NoError(t, err)
	require.NoError(t, store.DeleteUser(ctx, payload.ID))

	_, err = svc.Refresh(ctx, session.Cookie.Value)
	requireKind(t, err, ErrNotFound, "User not found")
}

func TestAuthService_CookieAttributes(t *testing.T) {
	tests := []struct {
		mode     string
		secure   bool
		sameSite http.SameSite
	}{
		{mode: config.ModeProduction, secure: true, sameSite: http.SameSiteLaxMode},
		{mode: config.ModeDevelopment, secure: false, sameSite: http.SameSiteNoneMode},
	}

	for _, tt := range tests {
		t.Run(tt.mode, func(t *testing.T) {
			svc, tokens, _ := newAuthService(t, tt.mode)
			fixed := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
			svc.now = func() time.Time { return fixed }

			session, err := svc.Register(context.Background(), "c@x.io", "pw1234")
			require.NoError(t, err)

			cookie := session.Cookie
			assert.Equal(t, "refresh_token", cookie.Name)
			assert.True(t, cookie.HttpOnly)
			assert.Equal(t, "/", cookie.Path)
			assert.Equal(t, "board.test", cookie.Domain)
			assert.Equal(t, fixed.Add(tokens.RefreshTTL()), cookie.Expires)
			assert.Equal(t, tt.secure, cookie.Secure)
			assert.Equal(t, tt.sameSite, cookie.SameSite)
		})
	}
}

func TestAuthService_Logout(t *testing.T) {
	svc, _, _ := newAuthService(t, config.ModeProduction)

	cookie := svc.Logout()
	assert.Equal(t, RefreshCookieName, cookie.Name)
	assert.Empty(t, cookie.Value)
	assert.True(t, cookie.Expires.Equal(time.Unix(0, 0)))
	assert.True(t, cookie.HttpOnly)
	assert.Equal(t, "board.test", cookie.Domain)
}

func TestAuthService_ChangePassword(t *testing.T) {
	svc, tokens, store := newAuthService(t, config.ModeProduction)
	ctx := context.Background()

	session, err := svc.Register(ctx, "b@x.io", "oldpw1")
	require.NoError(t, err)
	payload, err := tokens.Verify(session.AccessToken)
	require.NoError(t, err)
	userID := payload.ID
	original := store.PasswordHash(userID)

	err = svc.ChangePassword(ctx, userID, "wrongpw", "newpw1")
	requireKind(t, err, ErrBadRequest, "Current password is incorrect")
	assert.Equal(t, original, store.PasswordHash(userID))

	err = svc.ChangePassword(ctx, userID, "oldpw1", "oldpw1")
	requireKind(t, err, ErrConflict, "New password must be different from current password")
	assert.Equal(t, original, store.PasswordHash(userID), "rejected change leaves the hash untouched")

	require.NoError(t, svc.ChangePassword(ctx, userID, "oldpw1", "newpw1"))
	assert.NotEqual(t, original, store.PasswordHash(userID))

	_, err = svc.Login(ctx, "b@x.io", "oldpw1")
	requireKind(t, err, ErrNotFound, msgInvalidCredentials)
	_, err = svc.Login(ctx, "b@x.io", "newpw1")
	require.NoError(t, err)

	err = svc.ChangePassword(ctx, "7f1d7c0e-2f5b-4c8a-9e1d-3b2a1c0d9e8f", "oldpw1", "newpw1")
	requireKind(t, err, ErrNotFound, "User not found")
}

func TestAuthService_DeleteAccount(t *testing.T) {
	svc, tokens, _ := newAuthService(t, config.ModeProduction)
	ctx := context.Background()

	session, err := svc.Register(ctx, "d@x.io", "pw1234")
	require.NoError(t, err)
	payload, err := tokens.Verify(session.AccessToken)
	require.NoError(t, err)

	cookie, err := svc.DeleteAccount(ctx, payload.ID)
	require.NoError(t, err)
	assert.True(t, cookie.Expires.Equal(time.Unix(0, 0)))

	user, err := svc.Validate(ctx, payload.ID)
	require.NoError(t, err)
	assert.Nil(t, user)

	_, err = svc.Authenticate(ctx, session.AccessToken)
	requireKind(t, err, ErrUnauthorized, "")

	_, err = svc.DeleteAccount(ctx, payload.ID)
	requireKind(t, err, ErrNotFound, "User not found")
}

func TestAuthService_Authenticate(t *testing.T) {
	svc, _, _ := newAuthService(t, config.ModeProduction)
	ctx := context.Background()

	session, err := svc.Register(ctx, "e@x.io", "pw1234")
	require.NoError(t, err)

	user, err := svc.Authenticate(ctx, session.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, "e@x.io", user.Email)

	_, err = svc.Authenticate(ctx, "bogus")
	requireKind(t, err, ErrUnauthorized, "")
}

func TestAuthService_StoreFailureIsInternal(t *testing.T) {
	svc, _, store := newAuthService(t, config.ModeProduction)
	store.Err = errors.New("connection refused")

	_, err := svc.Login(context.Background(), "a@x.io", "pw1234")
	require.Error(t, err)
	assert.Empty(t, Message(err))
	for _, kind := range []error{ErrBadRequest, ErrUnauthorized, ErrForbidden, ErrNotFound, ErrConflict} {
		assert.NotErrorIs(t, err, kind)
	}
}

func TestNewAuthService_RequiresCookieDomain(t *testing.T) {
	_, err := NewAuthService(servicetest.NewStore(), NewBcryptHasher(), newTokenService(t), config.AuthConfig{}, config.ModeProduction)
	assert.ErrorIs(t, err, ErrMisconfigured)
}
