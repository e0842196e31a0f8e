package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"

	_ "github.com/ocupalli/occupational-health/docs"
	"github.com/ocupalli/occupational-health/internal/api"
	"github.com/ocupalli/occupational-health/internal/core/ports"
	"github.com/ocupalli/occupational-health/internal/core/service"
	"github.com/ocupalli/occupational-health/internal/infrastructure/config"
	mongodb "github.com/ocupalli/occupational-health/internal/infrastructure/db/mongo"
	redisdb "github.com/ocupalli/occupational-health/internal/infrastructure/db/redis"
	"github.com/ocupalli/occupational-health/internal/infrastructure/http/handlers"
	"github.com/ocupalli/occupational-health/pkg/logger"
)

const shutdownTimeout = 15 * time.Second

// @title                       Occupational Health API
// @version                     1.0
// @BasePath                    /
// @securityDefinitions.apikey  BearerAuth
// @in                          header
// @name                        Authorization
func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load(ctx)
	if err != nil {
		boot := logger.Init(logger.Options{})
		boot.Fatal().Err(err).Msg("failed to load config")
	}

	log := logger.Init(logger.Options{
		Level:   cfg.LogLevel,
		Pretty:  cfg.IsDevelopment(),
		File:    cfg.LogFile,
		Service: "occupational-health",
	})

	if err := run(ctx, cfg, log); err != nil {
		log.Fatal().Err(err).Msg("server stopped")
	}
}

func run(ctx context.Context, cfg *config.Config, log zerolog.Logger) error {
	client, db, err := mongodb.Connect(ctx, mongodb.Config{
		URI:      cfg.Mongo.URI,
		Database: cfg.Mongo.Database,
		AppName:  "occupational-health",
	})
	if err != nil {
		return err
	}
	defer func() {
		_ = client.Disconnect(context.Background())
	}()

	if err := mongodb.EnsureIndexes(ctx, db); err != nil {
		return err
	}

	checks := map[string]handlers.Check{"mongo": handlers.MongoCheck(db)}

	var revocations ports.TokenRevocationStore
	if cfg.Auth.RevocationEnabled {
		rdb, err := redisdb.Connect(ctx, redisdb.Config{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err != nil {
			return err
		}
		defer rdb.Close()

		revocations = redisdb.NewRevocationStore(rdb)
		checks["redis"] = handlers.RedisCheck(rdb)
	}

	// --- Repositories ---
	userRepo := mongodb.NewUserRepository(db)
	categoryRepo := mongodb.NewRiskCategoryRepository(db)
	riskRepo := mongodb.NewRiskRepository(db)
	envRepo := mongodb.NewEnvironmentRepository(db)
	jobRepo := mongodb.NewJobRepository(db)

	// --- Services ---
	hasher := service.NewPasswordHasher(cfg.Auth.BcryptCost)
	tokenOpts := []service.TokenOption{}
	if revocations != nil {
		tokenOpts = append(tokenOpts, service.WithRevocationStore(revocations))
	}
	tokens := service.NewTokenService(service.StaticKey(cfg.Auth.JWTSecret), cfg.Auth.TokenTTL, tokenOpts...)

	authService, err := service.NewAuthService(userRepo, hasher, tokens, revocations, log)
	if err != nil {
		return err
	}
	userService := service.NewUserService(userRepo, hasher, log)

	if cfg.Bootup.AdminUsername != "" {
		created, err := userService.EnsureAdmin(ctx, cfg.Bootup.AdminName, cfg.Bootup.AdminUsername, cfg.Bootup.AdminPassword)
		if err != nil {
			return err
		}
		if created {
			log.Info().Str("username", cfg.Bootup.AdminUsername).Msg("bootstrap admin created")
		}
	}

	e := api.NewRouter(api.Dependencies{
		Auth:           authService,
		Tokens:         tokens,
		Users:          userService,
		RiskCategories: service.NewRiskCategoryService(categoryRepo, riskRepo, log),
		Risks:          service.NewRiskService(riskRepo, categoryRepo, log),
		Environments:   service.NewEnvironmentService(envRepo, jobRepo, log),
		Jobs:           service.NewJobService(jobRepo, envRepo, log),
		HealthChecks:   checks,
		Logger:         log,
	})

	errCh := make(chan error, 1)
	go func() {
		log.Info().Str("port", cfg.Port).Str("env", cfg.Env).Bool("token_revocation", revocations != nil).Msg("http server starting")
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	log.Info().Msg("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return e.Shutdown(shutdownCtx)
}
