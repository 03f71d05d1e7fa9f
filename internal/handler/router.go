package handler

import (
	"log/slog"

	"github.com/gin-gonic/gin"
	"github.com/taskboard/backend/internal/service"
)

type sessionService interface {
	authService
	authenticator
}

// RouterDeps carries everything the HTTP surface needs.
type RouterDeps struct {
	Logger         *slog.Logger
	Auth           sessionService
	Authorizer     ownershipAuthorizer
	Users          userService
	Columns        columnService
	Cards          cardService
	Comments       commentService
	Metrics        *Metrics
	AllowedOrigins []string
	ServeOpenAPI   bool
}

var (
	columnPolicy  = service.OwnershipPolicy{IDParam: "id", Entity: service.EntityColumn}
	cardPolicy    = service.OwnershipPolicy{IDParam: "id", Entity: service.EntityCard}
	commentPolicy = service.OwnershipPolicy{IDParam: "id", Entity: service.EntityComment}
)

// NewRouter builds the gin engine with every route registered.
func NewRouter(deps RouterDeps) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery(), RequestLogger(deps.Logger))
	if deps.Metrics != nil {
		router.Use(deps.Metrics.Middleware())
	}
	router.Use(CORSMiddleware(deps.AllowedOrigins, true))

	authHandler := NewAuthHandler(deps.Auth, deps.Metrics)
	userHandler := NewUserHandler(deps.Users)
	columnHandler := NewColumnHandler(deps.Columns)
	cardHandler := NewCardHandler(deps.Cards)
	commentHandler := NewCommentHandler(deps.Comments)

	router.GET("/", Root)
	router.GET("/ping", Ping)
	if deps.Metrics != nil {
		router.GET("/metrics", deps.Metrics.Handler())
	}
	if deps.ServeOpenAPI {
		router.GET("/openapi.json", OpenAPIDoc())
	}

	auth := router.Group("/auth")
	auth.POST("/register", authHandler.Register)
	auth.POST("/login", authHandler.Login)
	auth.POST("/refresh", authHandler.Refresh)
	auth.POST("/logout", authHandler.Logout)

	protected := router.Group("/")
	protected.Use(AuthMiddleware(deps.Auth))

	protected.PATCH("/auth/password", authHandler.ChangePassword)
	protected.DELETE("/auth/user", authHandler.DeleteAccount)

	protected.GET("/users/me", userHandler.Me)
	protected.PATCH("/users/me", userHandler.UpdateMe)
	protected.GET("/users/:id", userHandler.GetUser)

	ownsColumn := RequireOwnership(deps.Authorizer, columnPolicy)
	protected.GET("/columns", columnHandler.ListColumns)
	protected.POST("/columns", columnHandler.CreateColumn)
	protected.GET("/columns/:id", columnHandler.GetColumn)
	protected.PATCH("/columns/:id", ownsColumn, columnHandler.UpdateColumn)
	protected.DELETE("/columns/:id", ownsColumn, columnHandler.DeleteColumn)
	protected.GET("/columns/:id/cards", cardHandler.ListColumnCards)
	protected.POST("/columns/:id/cards", ownsColumn, cardHandler.CreateCard)

	ownsCard := RequireOwnership(deps.Authorizer, cardPolicy)
	protected.GET("/cards/:id", cardHandler.GetCard)
	protected.PATCH("/cards/:id", ownsCard, cardHandler.UpdateCard)
	protected.DELETE("/cards/:id", ownsCard, cardHandler.DeleteCard)
	protected.GET("/cards/:id/comments", commentHandler.ListCardComments)
	protected.POST("/cards/:id/comments", commentHandler.CreateComment)

	ownsComment := RequireOwnership(deps.Authorizer, commentPolicy)
	protected.GET("/comments/:id", commentHandler.GetComment)
	protected.PATCH("/comments/:id", ownsComment, commentHandler.UpdateComment)
	protected.DELETE("/comments/:id", ownsComment, commentHandler.DeleteComment)

	return router
}
