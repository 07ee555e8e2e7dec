package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/quizhubhq/quizhub-backend/api/controllers"
	"github.com/quizhubhq/quizhub-backend/api/middleware"
	"github.com/quizhubhq/quizhub-backend/api/routes"
	"github.com/quizhubhq/quizhub-backend/internal/actions"
	internalauth "github.com/quizhubhq/quizhub-backend/internal/auth"
	"github.com/quizhubhq/quizhub-backend/internal/companies"
	"github.com/quizhubhq/quizhub-backend/internal/identity"
	"github.com/quizhubhq/quizhub-backend/internal/permissions"
	"github.com/quizhubhq/quizhub-backend/internal/quizzes"
	"github.com/quizhubhq/quizhub-backend/internal/users"
	"github.com/quizhubhq/quizhub-backend/pkg/auth"
	"github.com/quizhubhq/quizhub-backend/pkg/auth/session"
	"github.com/quizhubhq/quizhub-backend/pkg/config"
	"github.com/quizhubhq/quizhub-backend/pkg/db"
	"github.com/quizhubhq/quizhub-backend/pkg/logger"
	"github.com/quizhubhq/quizhub-backend/pkg/migrate"
	"github.com/quizhubhq/quizhub-backend/pkg/redis"
)

const shutdownTimeout = 15 * time.Second

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		logger.New(logger.Options{}).Error(context.Background(), "loading configuration", err)
		os.Exit(1)
	}

	logg := logger.New(logger.Options{
		ServiceName: "quizhub-api",
		Level:       logger.ParseLevel(cfg.App.LogLevel),
		WarnStack:   cfg.App.LogWarnStack,
	})
	ctx := context.Background()

	dbClient, err := db.New(ctx, cfg.DB, cfg.FeatureFlags, logg)
	if err != nil {
		logg.Error(ctx, "connecting to database", err)
		os.Exit(1)
	}
	defer dbClient.Close()

	if err := migrate.MaybeRunDev(ctx, cfg, logg, dbClient); err != nil {
		logg.Error(ctx, "running dev migrations", err)
		os.Exit(1)
	}

	redisClient, err := redis.New(ctx, cfg.Redis)
	if err != nil {
		logg.Error(ctx, "connecting to redis", err)
		os.Exit(1)
	}
	defer redisClient.Close()

	sessions := session.NewManager(redisClient, cfg.JWT.RefreshTokenTTL())

	userRepo := users.NewRepo(dbClient)
	companyRepo := companies.NewRepo(dbClient)
	actionRepo := actions.NewRepo(dbClient, companyRepo)
	quizRepo := quizzes.NewRepo(dbClient)

	policy := permissions.NewEvaluator(companyRepo)

	var external *auth.ExternalVerifier
	if cfg.ExternalIdentity.Enabled() {
		external, err = auth.NewExternalVerifier(cfg.ExternalIdentity)
		if err != nil {
			logg.Error(ctx, "configuring external identity", err)
			os.Exit(1)
		}
	}
	var resolver *identity.Verifier
	if external != nil {
		resolver = identity.NewVerifier(userRepo, external, cfg.JWT, cfg.Password, logg)
	} else {
		resolver = identity.NewVerifier(userRepo, nil, cfg.JWT, cfg.Password, logg)
	}

	authService := internalauth.NewService(userRepo, sessions, cfg.JWT, cfg.Password, logg)
	userService := users.NewService(userRepo, policy, cfg.Password)
	companyService := companies.NewService(companyRepo, policy, logg)
	actionService := actions.NewService(actionRepo, companyRepo, userRepo, policy, logg)
	quizService := quizzes.NewService(quizRepo, companyRepo, policy, logg)

	router := routes.New(routes.Dependencies{
		Log:           logg,
		Authenticator: middleware.NewAuthenticator(resolver, logg),
		Health:        controllers.NewHealthController(dbClient, redisClient, logg),
		Auth:          controllers.NewAuthController(authService, logg),
		Users:         controllers.NewUsersController(userService, logg),
		UserActions:   controllers.NewUserActionsController(actionService, logg),
		Companies:     controllers.NewCompaniesController(companyService, logg),
		Members:       controllers.NewMembersController(companyService, logg),
		Invites:       controllers.NewInvitesController(actionService, logg),
		JoinRequests:  controllers.NewJoinRequestsController(actionService, logg),
		Quizzes:       controllers.NewQuizzesController(quizService, logg),
	})

	server := &http.Server{
		Addr:              ":" + cfg.App.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logg.Info(logg.WithField(ctx, "port", cfg.App.Port), "server listening")
		errCh <- server.ListenAndServe()
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			logg.Error(ctx, "server stopped", err)
			os.Exit(1)
		}
	case sig := <-stop:
		logg.Info(logg.WithField(ctx, "signal", sig.String()), "shutting down")
		shutdownCtx, cancel := context.WithTimeout(ctx, shutdownTimeout)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			logg.Error(ctx, "graceful shutdown failed", err)
		}
	}
}
