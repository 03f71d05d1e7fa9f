package handler

import (
	"context"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/taskboard/backend/internal/logging"
	"github.com/taskboard/backend/internal/model"
	"github.com/taskboard/backend/internal/service"
)

const authUserKey = "auth_user"

type authenticator interface {
	Authenticate(ctx context.Context, accessToken string) (*model.User, error)
}

type ownershipAuthorizer interface {
	Authorize(ctx context.Context, policy *service.OwnershipPolicy, id, callerID string) error
}

// AuthMiddleware accepts requests carrying a valid bearer access token whose
// user still exists, and stores the caller's safe projection on the context.
func AuthMiddleware(auth authenticator) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.Method == http.MethodOptions {
			c.Next()
			return
		}

		header := c.GetHeader("Authorization")
		if !strings.HasPrefix(header, "Bearer ") {
			abortWithError(c, http.StatusUnauthorized, "Unauthorized")
			return
		}

		token := strings.TrimSpace(strings.TrimPrefix(header, "Bearer "))
		if token == "" {
			abortWithError(c, http.StatusUnauthorized, "Unauthorized")
			return
		}

		user, err := auth.Authenticate(c.Request.Context(), token)
		if err != nil {
			writeError(c, err)
			return
		}

		safe := user.Safe()
		c.Set(authUserKey, &safe)
		c.Next()
	}
}

func GetAuthUser(c *gin.Context) *model.SafeUser {
	if value, ok := c.Get(authUserKey); ok {
		if user, ok := value.(*model.SafeUser); ok {
			return user
		}
	}
	return nil
}

// RequireOwnership lets the request through only when the authenticated
// caller owns the entity named by the policy's path parameter.
func RequireOwnership(authz ownershipAuthorizer, policy service.OwnershipPolicy) gin.HandlerFunc {
	return func(c *gin.Context) {
		user := GetAuthUser(c)
		if user == nil {
			abortWithError(c, http.StatusUnauthorized, "Unauthorized")
			return
		}

		if err := authz.Authorize(c.Request.Context(), &policy, c.Param(policy.IDParam), user.ID); err != nil {
			writeError(c, err)
			return
		}
		c.Next()
	}
}

// RequestLogger logs one line per request and every error handlers attached
// to the context.
func RequestLogger(logger *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		status := c.Writer.Status()
		attrs := []any{
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", status,
			"latency_ms", time.Since(start).Milliseconds(),
			"ip", c.ClientIP(),
			"user_agent", c.Request.UserAgent(),
		}

		for _, e := range c.Errors {
			logging.LogError(logger, "request failed", e.Err, attrs...)
		}

		switch {
		case status >= http.StatusInternalServerError:
			logger.Error("request", attrs...)
		case status >= http.StatusBadRequest:
			logger.Warn("request", attrs...)
		default:
			logger.Info("request", attrs...)
		}
	}
}

func CORSMiddleware(allowedOrigins []string, allowCredentials bool) gin.HandlerFunc {
	originMap := make(map[string]struct{}, len(allowedOrigins))
	for _, origin := range allowedOrigins {
		trimmed := strings.TrimSpace(origin)
		if trimmed == "" {
			continue
		}
		originMap[trimmed] = struct{}{}
	}

	return func(c *gin.Context) {
		origin := c.GetHeader("Origin")
		if origin != "" {
			if _, ok := originMap[origin]; ok {
				c.Header("Access-Control-Allow-Origin", origin)
				c.Header("Vary", "Origin")
				if allowCredentials {
					c.Header("Access-Control-Allow-Credentials", "true")
				}
				c.Header("Access-Control-Allow-Headers", "Authorization, Content-Type")
				c.Header("Access-Control-Allow-Methods", "GET, POST, PATCH, DELETE, OPTIONS")
			}
		}

		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	}
}
