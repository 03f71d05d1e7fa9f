package cli

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/samber/oops"
	"github.com/spf13/cobra"

	"github.com/taskboard/backend/internal/config"
	"github.com/taskboard/backend/internal/db"
	"github.com/taskboard/backend/internal/handler"
	"github.com/taskboard/backend/internal/logging"
	"github.com/taskboard/backend/internal/service"
)

const shutdownTimeout = 10 * time.Second

// NewServeCmd creates the serve subcommand.
func NewServeCmd(configFile *string) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API server",
		Long: `Apply pending migrations, then serve the API until SIGINT or
SIGTERM, draining in-flight requests before exiting.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runServe(cmd, *configFile)
		},
	}

	cmd.Flags().Int("port", 3000, "HTTP listen port")
	cmd.Flags().String("mode", config.ModeDevelopment, "development or production")

	return cmd
}

func runServe(cmd *cobra.Command, configFile string) error {
	cfg, err := config.Load(configFile, cmd.Flags())
	if err != nil {
		return err
	}

	logger := logging.New(os.Stdout, cfg.Mode, cfg.LogLevel)
	if !cfg.IsDevelopment() {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	dsn, err := cfg.Postgres.URL()
	if err != nil {
		return err
	}
	pool, err := db.NewPostgresPool(ctx, dsn, logger)
	if err != nil {
		return err
	}
	defer pool.Close()

	if err := db.Migrate(ctx, pool); err != nil {
		return err
	}
	store := db.New(pool)

	tokens, err := service.NewTokenService(cfg.Auth.JWTSecret, cfg.Auth.AccessTTL, cfg.Auth.RefreshTTL)
	if err != nil {
		return err
	}
	auth, err := service.NewAuthService(store, service.NewBcryptHasher(), tokens, cfg.Auth, cfg.Mode)
	if err != nil {
		return err
	}

	var metrics *handler.Metrics
	if cfg.Metrics.Enabled {
		metrics = handler.NewMetrics()
	}

	router := handler.NewRouter(handler.RouterDeps{
		Logger:         logger,
		Auth:           auth,
		Authorizer:     service.NewOwnershipAuthorizer(store),
		Users:          service.NewUserService(store),
		Columns:        service.NewColumnService(store),
		Cards:          service.NewCardService(store),
		Comments:       service.NewCommentService(store),
		Metrics:        metrics,
		AllowedOrigins: cfg.CORS.AllowedOrigins,
		ServeOpenAPI:   cfg.IsDevelopment(),
	})

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Port),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("server listening", "addr", srv.Addr, "mode", cfg.Mode)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return oops.Code("SERVER_FAILED").Wrapf(err, "listen on %s", srv.Addr)
		}
		return nil
	case <-ctx.Done():
	}

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return oops.Code("SHUTDOWN_FAILED").Wrap(err)
	}
	logger.Info("server stopped")
	return nil
}
