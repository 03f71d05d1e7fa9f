package service

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/samber/oops"
	"github.com/taskboard/backend/internal/config"
	"github.com/taskboard/backend/internal/db"
	"github.com/taskboard/backend/internal/model"
)

const (
	RefreshCookieName = "refresh_token"

	msgInvalidCredentials = "User with this email or password doesn't exist"
	msgInvalidRefresh     = "Refresh-token is invalid"
	msgUserNotFound       = "User not found"
)

// authRepo is the user storage the session flows need.
type authRepo interface {
	CreateUser(ctx context.Context, email, passwordHash string) (*model.User, error)
	GetUserByID(ctx context.Context, id string) (*model.User, error)
	GetUserByEmail(ctx context.Context, email string) (*model.User, error)
	EmailExists(ctx context.Context, email string) (bool, error)
	UpdateUserPassword(ctx context.Context, id, passwordHash string) error
	DeleteUser(ctx context.Context, id string) error
}

type CookieConfig struct {
	Name     string
	Path     string
	Domain   string
	Secure   bool
	SameSite http.SameSite
}

// Session is the outcome of a successful register, login or refresh: the
// access token for the response body and the refresh cookie to set.
type Session struct {
	AccessToken string
	Cookie      *http.Cookie
}

type AuthService struct {
	repo       authRepo
	hasher     PasswordHasher
	tokens     *TokenService
	refreshTTL time.Duration
	cookieCfg  CookieConfig
	dummyHash  string
	now        func() time.Time
}

func NewAuthService(repo authRepo, hasher PasswordHasher, tokens *TokenService, cfg config.AuthConfig, mode string) (*AuthService, error) {
	if strings.TrimSpace(cfg.CookieDomain) == "" {
		return nil, fmt.Errorf("%w: COOKIE_DOMAIN is required", ErrMisconfigured)
	}

	// Production: Secure + Lax. Development: SameSite=None over plain HTTP.
	cookieCfg := CookieConfig{
		Name:     RefreshCookieName,
		Path:     "/",
		Domain:   cfg.CookieDomain,
		Secure:   true,
		SameSite: http.SameSiteLaxMode,
	}
	if mode != config.ModeProduction {
		cookieCfg.Secure = false
		cookieCfg.SameSite = http.SameSiteNoneMode
	}

	// Verified against when the email is unknown so both login failures cost
	// one bcrypt comparison.
	dummyHash, err := hasher.Hash(randomString())
	if err != nil {
		return nil, err
	}

	return &AuthService{
		repo:       repo,
		hasher:     hasher,
		tokens:     tokens,
		refreshTTL: tokens.RefreshTTL(),
		cookieCfg:  cookieCfg,
		dummyHash:  dummyHash,
		now:        time.Now,
	}, nil
}

func (s *AuthService) CookieConfig() CookieConfig {
	return s.cookieCfg
}

func (s *AuthService) Register(ctx context.Context, email, password string) (*Session, error) {
	exists, err := s.repo.EmailExists(ctx, email)
	if err != nil {
		return nil, oops.Code("USER_LOOKUP_FAILED").With("email", email).Wrap(err)
	}
	if exists {
		return nil, newError(ErrConflict, "User with Email %s already exist", email)
	}

	hash, err := s.hasher.Hash(password)
	if err != nil {
		return nil, err
	}

	user, err := s.repo.CreateUser(ctx, email, hash)
	if err != nil {
		if db.IsUniqueViolation(err) {
			return nil, newError(ErrConflict, "User with Email %s already exist", email)
		}
		return nil, oops.Code("USER_CREATE_FAILED").With("email", email).Wrap(err)
	}

	return s.auth(user.ID)
}

// Login returns the same rejection whether the email is unknown or the
// password is wrong.
func (s *AuthService) Login(ctx context.Context, email, password string) (*Session, error) {
	user, err := s.repo.GetUserByEmail(ctx, email)
	if err != nil {
		if !db.IsNoRows(err) {
			return nil, oops.Code("USER_LOOKUP_FAILED").With("email", email).Wrap(err)
		}
		s.hasher.Verify(password, s.dummyHash)
		return nil, newError(ErrNotFound, msgInvalidCredentials)
	}

	if !s.hasher.Verify(password, user.PasswordHash) {
		return nil, newError(ErrNotFound, msgInvalidCredentials)
	}

	return s.auth(user.ID)
}

// Refresh rotates both tokens for the holder of a valid refresh token.
func (s *AuthService) Refresh(ctx context.Context, refreshToken string) (*Session, error) {
	if refreshToken == "" {
		return nil, newError(ErrUnauthorized, msgInvalidRefresh)
	}

	payload, err := s.tokens.Verify(refreshToken)
	if err != nil {
		return nil, newError(ErrUnauthorized, msgInvalidRefresh)
	}

	user, err := s.repo.GetUserByID(ctx, payload.ID)
	if err != nil {
		if db.IsNoRows(err) {
			return nil, newError(ErrNotFound, msgUserNotFound)
		}
		return nil, oops.Code("USER_LOOKUP_FAILED").With("user_id", payload.ID).Wrap(err)
	}

	return s.auth(user.ID)
}

// Logout returns an already-expired refresh cookie. It never fails.
func (s *AuthService) Logout() *http.Cookie {
	return s.cookie("", time.Unix(0, 0))
}

func (s *AuthService) ChangePassword(ctx context.Context, userID, currentPassword, newPassword string) error {
	user, err := s.repo.GetUserByID(ctx, userID)
	if err != nil {
		if db.IsNoRows(err) {
			return newError(ErrNotFound, msgUserNotFound)
		}
		return oops.Code("USER_LOOKUP_FAILED").With("user_id", userID).Wrap(err)
	}

	if !s.hasher.Verify(currentPassword, user.PasswordHash) {
		return newError(ErrBadRequest, "Current password is incorrect")
	}
	if s.hasher.Verify(newPassword, user.PasswordHash) {
		return newError(ErrConflict, "New password must be different from current password")
	}

	hash, err := s.hasher.Hash(newPassword)
	if err != nil {
		return err
	}

	if err := s.repo.UpdateUserPassword(ctx, userID, hash); err != nil {
		if db.IsNoRows(err) {
			return newError(ErrNotFound, msgUserNotFound)
		}
		return oops.Code("PASSWORD_UPDATE_FAILED").With("user_id", userID).Wrap(err)
	}
	return nil
}

// DeleteAccount removes the user with everything they own and returns the
// cookie that clears their refresh token.
func (s *AuthService) DeleteAccount(ctx context.Context, userID string) (*http.Cookie, error) {
	if err := s.repo.DeleteUser(ctx, userID); err != nil {
		if db.IsNoRows(err) {
			return nil, newError(ErrNotFound, msgUserNotFound)
		}
		return nil, oops.Code("USER_DELETE_FAILED").With("user_id", userID).Wrap(err)
	}
	return s.Logout(), nil
}

// Validate returns the user, or nil when the account no longer exists.
func (s *AuthService) Validate(ctx context.Context, userID string) (*model.User, error) {
	user, err := s.repo.GetUserByID(ctx, userID)
	if err != nil {
		if db.IsNoRows(err) {
			return nil, nil
		}
		return nil, oops.Code("USER_LOOKUP_FAILED").With("user_id", userID).Wrap(err)
	}
	return user, nil
}

// Authenticate resolves a bearer access token to its still-existing user.
func (s *AuthService) Authenticate(ctx context.Context, accessToken string) (*model.User, error) {
	payload, err := s.tokens.Verify(accessToken)
	if err != nil {
		return nil, newError(ErrUnauthorized, "Unauthorized")
	}

	user, err := s.Validate(ctx, payload.ID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, newError(ErrUnauthorized, "Unauthorized")
	}
	return user, nil
}

func (s *AuthService) auth(userID string) (*Session, error) {
	pair, err := s.tokens.IssuePair(userID)
	if err != nil {
		return nil, err
	}
	return &Session{
		AccessToken: pair.AccessToken,
		Cookie:      s.cookie(pair.RefreshToken, s.now().Add(s.refreshTTL)),
	}, nil
}

func (s *AuthService) cookie(value string, expires time.Time) *http.Cookie {
	return &http.Cookie{
		Name:     s.cookieCfg.Name,
		Value:    value,
		Path:     s.cookieCfg.Path,
		Domain:   s.cookieCfg.Domain,
		Expires:  expires,
		HttpOnly: true,
		Secure:   s.cookieCfg.Secure,
		SameSite: s.cookieCfg.SameSite,
	}
}

func randomString() string {
	raw := make([]byte, 32)
	_, _ = rand.Read(raw)
	return base64.RawURLEncoding.EncodeToString(raw)
}
