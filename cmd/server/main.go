// Command server runs the university records API.
//
// @title                       University Records API
// @version                     1.0
// @description                 Administrative backend for academic faculties and user accounts.
// @BasePath                    /api/v1
// @securityDefinitions.apikey  BearerAuth
// @in                          header
// @name                        Authorization
package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	goredis "github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	gomongo "go.mongodb.org/mongo-driver/mongo"

	"github.com/univadmin/records-system/internal/api"
	"github.com/univadmin/records-system/internal/core/ports"
	"github.com/univadmin/records-system/internal/core/service"
	"github.com/univadmin/records-system/internal/infrastructure/config"
	"github.com/univadmin/records-system/internal/infrastructure/db/memory"
	"github.com/univadmin/records-system/internal/infrastructure/db/mongo"
	"github.com/univadmin/records-system/internal/infrastructure/db/redis"
	"github.com/univadmin/records-system/internal/infrastructure/seed"
	"github.com/univadmin/records-system/pkg/logger"
)

const (
	devJWTSecret    = "development-only-secret"
	shutdownTimeout = 10 * time.Second
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load(ctx)
	if err != nil {
		boot := logger.Init(logger.Options{Service: "records-api"})
		boot.Fatal().Err(err).Msg("load configuration")
	}

	log := logger.Init(logger.Options{
		Level:   cfg.LogLevel,
		Pretty:  cfg.IsDevelopment(),
		Service: "records-api",
	})

	if err := run(ctx, cfg, log); err != nil {
		log.Fatal().Err(err).Msg("server stopped")
	}
}

func run(ctx context.Context, cfg *config.Config, log zerolog.Logger) error {
	var (
		db  *gomongo.Database
		rdb *goredis.Client
	)

	if cfg.Storage.Driver == config.StorageMongo {
		client, database, err := mongo.Connect(ctx, mongo.Config{URI: cfg.Mongo.URI, Database: cfg.Mongo.Database})
		if err != nil {
			return err
		}
		defer func() {
			dctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
			defer cancel()
			_ = client.Disconnect(dctx)
		}()
		if err := mongo.EnsureIndexes(ctx, database); err != nil {
			return err
		}
		db = database
		log.Info().Str("database", cfg.Mongo.Database).Msg("mongodb connected")
	}

	if cfg.Redis.Enabled {
		client, err := redis.Connect(ctx, redis.Config{Addr: cfg.Redis.Addr, Password: cfg.Redis.Password, DB: cfg.Redis.DB})
		if err != nil {
			return err
		}
		defer client.Close()
		rdb = client
		log.Info().Str("addr", cfg.Redis.Addr).Msg("redis connected")
	}

	// --- Repositories ---
	var (
		facultyRepo ports.AcademicFacultyRepository
		userRepo    ports.UserRepository
	)
	if db != nil {
		facultyRepo = mongo.NewAcademicFacultyRepository(db)
		userRepo = mongo.NewUserRepository(db)
	} else {
		log.Warn().Msg("STORAGE_DRIVER=memory: records are lost on restart")
		facultyRepo = memory.NewAcademicFacultyRepository()
		userRepo = memory.NewUserRepository()
	}

	var counters ports.CounterStore
	switch cfg.Storage.CounterBackend {
	case config.CounterMongo:
		counters = mongo.NewCounterStore(db)
	case config.CounterRedis:
		counters = redis.NewCounterStore(rdb)
	default:
		counters = memory.NewCounterStore()
	}

	var idempotency ports.IdempotencyStore = memory.NewIdempotencyStore()
	if rdb != nil {
		idempotency = redis.NewIdempotencyStore(rdb, "users")
	}

	// --- Services ---
	jwtSecret := cfg.Auth.JWTSecret
	if jwtSecret == "" {
		log.Warn().Msg("JWT_SECRET not set, using the development secret")
		jwtSecret = devJWTSecret
	}
	if cfg.Auth.DefaultPassword == "" {
		log.Warn().Msg("DEFAULT_USER_PASSWORD not set, users must be created with a password")
	}

	hasher := service.NewBcryptHasher(cfg.Auth.BcryptCost)
	ids := service.NewIdentityAllocator(counters, cfg.Storage.CounterBackend, logger.For("identity"))
	facultySvc := service.NewAcademicFacultyService(facultyRepo, logger.For("academic_faculty"))
	userSvc := service.NewUserService(userRepo, ids, hasher, idempotency, cfg.Auth.DefaultPassword, logger.For("user"))
	authSvc := service.NewAuthService(userRepo, hasher, jwtSecret, cfg.Auth.TokenTTL, logger.For("auth"))

	if cfg.SeedPath != "" {
		rep, err := seed.NewSeeder(facultySvc, userSvc, logger.For("seed")).FromFile(ctx, cfg.SeedPath)
		if err != nil {
			return err
		}
		log.Info().Int("faculties", rep.Faculties).Int("users", rep.Users).Msg("seed applied")
	}

	e := api.NewRouter(api.Dependencies{
		Faculties: facultySvc,
		Users:     userSvc,
		Auth:      authSvc,
		JWTSecret: jwtSecret,
		Logger:    logger.For("http"),
		Mongo:     db,
		Redis:     rdb,
	})

	errCh := make(chan error, 1)
	go func() {
		log.Info().Str("port", cfg.Port).Str("env", cfg.Env).Msg("http server listening")
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
	sctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return e.Shutdown(sctx)
}
