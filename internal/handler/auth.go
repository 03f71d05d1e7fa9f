package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/taskboard/backend/internal/model"
	"github.com/taskboard/backend/internal/service"
)

type authService interface {
	Register(ctx context.Context, email, password string) (*service.Session, error)
	Login(ctx context.Context, email, password string) (*service.Session, error)
	Refresh(ctx context.Context, refreshToken string) (*service.Session, error)
	Logout() *http.Cookie
	ChangePassword(ctx context.Context, userID, currentPassword, newPassword string) error
	DeleteAccount(ctx context.Context, userID string) (*http.Cookie, error)
}

type AuthHandler struct {
	svc     authService
	metrics *Metrics
}

func NewAuthHandler(svc authService, metrics *Metrics) *AuthHandler {
	return &AuthHandler{svc: svc, metrics: metrics}
}

// Register godoc
// @Summary Register a new user
// @Description Creates the account and starts a session. The refresh token is set as an HTTP-only cookie.
// @Tags auth
// @Accept json
// @Produce json
// @Param request body model.RegisterRequest true "Email and password"
// @Success 201 {object} model.TokenResponse
// @Failure 400 {object} model.ErrorResponse
// @Failure 409 {object} model.ErrorResponse
// @Failure 500 {object} model.ErrorResponse
// @Router /auth/register [post]
func (h *AuthHandler) Register(c *gin.Context) {
	var req model.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeBindError(c, err)
		return
	}

	session, err := h.svc.Register(c.Request.Context(), req.Email, req.Password)
	h.metrics.RecordAuth("register", err)
	if err != nil {
		writeError(c, err)
		return
	}

	http.SetCookie(c.Writer, session.Cookie)
	c.JSON(http.StatusCreated, model.TokenResponse{AccessToken: session.AccessToken})
}

// Login godoc
// @Summary Login
// @Description Unknown email and wrong password produce the same 404 response.
// @Tags auth
// @Accept json
// @Produce json
// @Param request body model.LoginRequest true "Email and password"
// @Success 200 {object} model.TokenResponse
// @Failure 400 {object} model.ErrorResponse
// @Failure 404 {object} model.ErrorResponse
// @Failure 500 {object} model.ErrorResponse
// @Router /auth/login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var req model.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeBindError(c, err)
		return
	}

	session, err := h.svc.Login(c.Request.Context(), req.Email, req.Password)
	h.metrics.RecordAuth("login", err)
	if err != nil {
		writeError(c, err)
		return
	}

	http.SetCookie(c.Writer, session.Cookie)
	c.JSON(http.StatusOK, model.TokenResponse{AccessToken: session.AccessToken})
}

// Refresh godoc
// @Summary Refresh access token
// @Description Uses the refresh_token cookie and rotates it.
// @Tags auth
// @Produce json
// @Success 200 {object} model.TokenResponse
// @Failure 401 {object} model.ErrorResponse
// @Failure 404 {object} model.ErrorResponse
// @Failure 500 {object} model.ErrorResponse
// @Router /auth/refresh [post]
func (h *AuthHandler) Refresh(c *gin.Context) {
	refreshToken, _ := c.Cookie(service.RefreshCookieName)
	session, err := h.svc.Refresh(c.Request.Context(), refreshToken)
	h.metrics.RecordAuth("refresh", err)
	if err != nil {
		writeError(c, err)
		return
	}

	http.SetCookie(c.Writer, session.Cookie)
	c.JSON(http.StatusOK, model.TokenResponse{AccessToken: session.AccessToken})
}

// Logout godoc
// @Summary Logout
// @Description Clears the refresh cookie. Always succeeds.
// @Tags auth
// @Produce json
// @Success 200 {object} model.SuccessResponse
// @Router /auth/logout [post]
func (h *AuthHandler) Logout(c *gin.Context) {
	http.SetCookie(c.Writer, h.svc.Logout())
	h.metrics.RecordAuth("logout", nil)
	c.JSON(http.StatusOK, model.SuccessResponse{Success: true})
}

// ChangePassword godoc
// @Summary Change password
// @Tags auth
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body model.ChangePasswordRequest true "Current and new password"
// @Success 200 {object} model.SuccessResponse
// @Failure 400 {object} model.ErrorResponse
// @Failure 401 {object} model.ErrorResponse
// @Failure 404 {object} model.ErrorResponse
// @Failure 409 {object} model.ErrorResponse
// @Router /auth/password [patch]
func (h *AuthHandler) ChangePassword(c *gin.Context) {
	user := GetAuthUser(c)
	if user == nil {
		abortWithError(c, http.StatusUnauthorized, "Unauthorized")
		return
	}

	var req model.ChangePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeBindError(c, err)
		return
	}

	err := h.svc.ChangePassword(c.Request.Context(), user.ID, req.CurrentPassword, req.NewPassword)
	h.metrics.RecordAuth("change_password", err)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, model.SuccessResponse{Success: true})
}

// DeleteAccount godoc
// @Summary Delete account
// @Description Deletes the caller with all owned columns, cards and comments, and clears the refresh cookie.
// @Tags auth
// @Produce json
// @Security BearerAuth
// @Success 200 {object} model.SuccessResponse
// @Failure 401 {object} model.ErrorResponse
// @Failure 404 {object} model.ErrorResponse
// @Router /auth/user [delete]
func (h *AuthHandler) DeleteAccount(c *gin.Context) {
	user := GetAuthUser(c)
	if user == nil {
		abortWithError(c, http.StatusUnauthorized, "Unauthorized")
		return
	}

	cookie, err := h.svc.DeleteAccount(c.Request.Context(), user.ID)
	h.metrics.RecordAuth("delete_account", err)
	if err != nil {
		writeError(c, err)
		return
	}

	http.SetCookie(c.Writer, cookie)
	c.JSON(http.StatusOK, model.SuccessResponse{Success: true})
}
