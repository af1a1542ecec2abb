package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	appHTTP "github.com/wilma-platform/wilma-backend-go/internal/handler/http"
	"github.com/wilma-platform/wilma-backend-go/internal/migrations"
	"github.com/wilma-platform/wilma-backend-go/internal/pkg/jwt"
	"github.com/wilma-platform/wilma-backend-go/internal/pkg/logger"
	"github.com/wilma-platform/wilma-backend-go/internal/repository/postgresql"
	documentService "github.com/wilma-platform/wilma-backend-go/internal/service/document"
	positionService "github.com/wilma-platform/wilma-backend-go/internal/service/position"
	userService "github.com/wilma-platform/wilma-backend-go/internal/service/user"
	"golang.org/x/sync/errgroup"
)

const shutdownTimeout = 15 * time.Second

var migrateOnStart bool

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP API server",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		a, err := loadApp()
		if err != nil {
			return err
		}

		db, err := a.connect(ctx)
		if err != nil {
			return err
		}
		defer db.Close()

		if migrateOnStart {
			if err := migrations.Migrate(ctx, db); err != nil {
				return err
			}
			a.logger.Info("schema migrated")
		}

		userRepo := postgresql.NewUserRepository(db)
		documentRepo := postgresql.NewDocumentRepository(db)
		positionRepo := postgresql.NewPositionRepository(db)
		jobRepo := postgresql.NewJobRepository(db)
		placementRepo := postgresql.NewPlacementRepository(db)
		interestRepo := postgresql.NewExpressionOfInterestRepository(db)
		applicationRepo := postgresql.NewApplicationRepository(db)

		userSvc := userService.NewUserService(userRepo)
		documentSvc := documentService.NewDocumentService(documentRepo, userSvc)
		positionSvc := positionService.NewPositionService(
			positionRepo,
			jobRepo,
			placementRepo,
			interestRepo,
			applicationRepo,
			userSvc,
			documentSvc,
			logger.NewAppLogger(a.logger),
		)

		jwtService := jwt.NewJWTService(a.cfg.JWT.Secret, a.cfg.JWT.AccessExpiration)
		positionHandler := appHTTP.NewPositionHandler(positionSvc)

		router := appHTTP.NewRouter(appHTTP.RouterOptions{
			Logger:         a.logger,
			AllowedOrigins: a.cfg.CORS.AllowedOrigins,
		}, jwtService, positionHandler)

		server := &http.Server{
			Addr:              fmt.Sprintf(":%d", a.cfg.App.Port),
			Handler:           router,
			ReadHeaderTimeout: 10 * time.Second,
		}

		g, gctx := errgroup.WithContext(ctx)

		g.Go(func() error {
			a.logger.Info("server listening", "addr", server.Addr)
			if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				return fmt.Errorf("server failed: %w", err)
			}
			return nil
		})

		g.Go(func() error {
			<-gctx.Done()
			a.logger.Info("shutting down server")

			shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
			defer cancel()
			return server.Shutdown(shutdownCtx)
		})

		return g.Wait()
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().BoolVar(&migrateOnStart, "migrate", false, "apply the schema before serving")
}
