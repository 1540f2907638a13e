package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/uyghurcoder/login-service/internal/api"
	"github.com/uyghurcoder/login-service/internal/core/service"
	"github.com/uyghurcoder/login-service/internal/infrastructure/config"
	mongodb "github.com/uyghurcoder/login-service/internal/infrastructure/db/mongo"
	redisdb "github.com/uyghurcoder/login-service/internal/infrastructure/db/redis"
	"github.com/uyghurcoder/login-service/pkg/logger"
)

func main() {
	cfg := config.Load()

	log := logger.Init(logger.Options{
		Level:  cfg.LogLevel,
		Pretty: cfg.Env == "development",
	})

	if cfg.JWT.Secret == "" {
		log.Fatal().Msg("JWT_SECRET must be set")
	}

	ctx := context.Background()

	client, db, err := mongodb.Connect(ctx, mongodb.Config{
		URI:      cfg.Mongo.URI,
		Database: cfg.Mongo.Database,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("mongo connection failed")
	}
	defer func() {
		_ = client.Disconnect(context.Background())
	}()

	rdb, err := redisdb.Connect(ctx, redisdb.Config{
		Addr: cfg.Redis.Addr,
		DB:   cfg.Redis.DB,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("redis connection failed")
	}
	defer func() {
		_ = rdb.Close()
	}()

	userRepo := mongodb.NewUserRepository(db)
	if err := userRepo.EnsureIndexes(ctx); err != nil {
		log.Fatal().Err(err).Msg("user index creation failed")
	}

	roleRepo := mongodb.NewRoleRepository(db)
	if err := roleRepo.Seed(ctx); err != nil {
		log.Fatal().Err(err).Msg("role seeding failed")
	}

	tokens := service.NewTokenService(cfg.JWT.Secret, cfg.JWT.Expiration())
	limiter := redisdb.NewLoginLimiter(rdb)
	authService := service.NewAuthService(userRepo, roleRepo, tokens, limiter)

	e := api.NewRouter(api.Deps{
		Auth:       authService,
		Tokens:     tokens,
		Users:      userRepo,
		CookieName: cfg.JWT.CookieName,
		Mongo:      db,
		Redis:      rdb,
		Log:        log,
	})

	go func() {
		log.Info().Str("port", cfg.Port).Msg("server starting")
		if err := e.Start(":" + cfg.Port); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("server failed")
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop

	log.Info().Msg("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("shutdown failed")
	}
}
