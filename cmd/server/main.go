package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/taskflow/task-service/internal/api"
	"github.com/taskflow/task-service/internal/api/handler"
	"github.com/taskflow/task-service/internal/core/security"
	"github.com/taskflow/task-service/internal/core/service"
	mongorepo "github.com/taskflow/task-service/internal/infrastructure/db/mongo"
	redisstore "github.com/taskflow/task-service/internal/infrastructure/db/redis"
	"github.com/taskflow/task-service/internal/pkg/config"
	"github.com/taskflow/task-service/pkg/logger"
)

// @title                       Task Service API
// @version                     1.0
// @description                 Per-user task tracking with token based authentication.
// @BasePath                    /
// @securityDefinitions.apikey  BearerAuth
// @in                          header
// @name                        Authorization
func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "task-service: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load(ctx)
	if err != nil {
		return err
	}

	log := logger.Init(logger.Options{
		Level:   cfg.LogLevel,
		Pretty:  cfg.IsDevelopment(),
		Service: "task-service",
	})

	// --- Storage ---
	mongoClient, db, err := mongorepo.Connect(ctx, mongorepo.Config{URI: cfg.Mongo.URI, Database: cfg.Mongo.Database})
	if err != nil {
		return err
	}
	defer func() {
		disconnectCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := mongoClient.Disconnect(disconnectCtx); err != nil {
			log.Warn().Err(err).Msg("mongo disconnect failed")
		}
	}()

	rdb, err := redisstore.Connect(ctx, redisstore.Config{Addr: cfg.Redis.Addr, Password: cfg.Redis.Password, DB: cfg.Redis.DB})
	if err != nil {
		return err
	}
	defer rdb.Close()

	users := mongorepo.NewUserRepository(db)
	roles := mongorepo.NewRoleRepository(db)
	tasks := mongorepo.NewTaskRepository(db)
	if err := mongorepo.EnsureIndexes(ctx, users, roles, tasks); err != nil {
		return err
	}

	catalog := service.NewRoleCatalog(roles, logger.Component("roles"))
	if err := catalog.Bootstrap(ctx); err != nil {
		return err
	}

	// --- Security ---
	codec, err := security.NewTokenCodec(security.TokenConfig{
		Secret: cfg.JWT.Secret,
		TTL:    cfg.JWT.TTL,
		Method: cfg.JWT.Method,
		Issuer: cfg.JWT.Issuer,
	})
	if err != nil {
		return err
	}
	hasher := security.NewBcryptHasher(security.WithCost(cfg.Auth.BcryptCost))

	// --- Services ---
	authService := service.NewAuthService(users, catalog, hasher, codec, logger.Component("auth"),
		service.WithLoginThrottle(redisstore.NewLoginThrottle(rdb, cfg.Auth.LoginMaxFailures, cfg.Auth.LoginFailureWindow)),
	)
	taskService := service.NewTaskService(tasks, logger.Component("tasks"))

	router := api.NewRouter(api.Deps{
		Auth:     authService,
		Tasks:    taskService,
		Verifier: codec,
		Health: map[string]handler.DependencyCheck{
			"mongodb": handler.MongoCheck(db),
			"redis":   handler.RedisCheck(rdb),
		},
		Logger: logger.Component("http"),
	})

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.Info().Str("addr", srv.Addr).Str("env", cfg.Env).Msg("http server listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		log.Info().Msg("shutting down")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		return err
	}
	log.Info().Msg("server stopped")
	return nil
}
