// Package app wires the configured storage, cache, use cases and HTTP server
// together and runs them until the context is cancelled.
package app

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/go-chi/httplog/v2"
	"github.com/vadimbarashkov/microservices/internal/adapter/cache"
	"github.com/vadimbarashkov/microservices/internal/config"
	"github.com/vadimbarashkov/microservices/internal/usecase"
	"github.com/vadimbarashkov/microservices/migrations"
	"github.com/vadimbarashkov/microservices/pkg/mongodb"
	"github.com/vadimbarashkov/microservices/pkg/postgres"
	"github.com/vadimbarashkov/microservices/pkg/redisdb"
	"golang.org/x/sync/errgroup"

	delivery "github.com/vadimbarashkov/microservices/internal/adapter/delivery/http"
	mongorepo "github.com/vadimbarashkov/microservices/internal/adapter/repository/mongo"
	pgrepo "github.com/vadimbarashkov/microservices/internal/adapter/repository/postgres"
)

const shutdownTimeout = 10 * time.Second

type urlCache interface {
	Get(ctx context.Context, id int64) (string, bool, error)
	Set(ctx context.Context, id int64, originalURL string) error
}

func Run(ctx context.Context, cfg *config.Config, logger *httplog.Logger) error {
	const op = "app.Run"

	resolveCache, closeCache, err := newURLCache(ctx, cfg)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	defer closeCache()

	var (
		shortenerUseCase *usecase.ShortenerUseCase
		trackerUseCase   *usecase.TrackerUseCase
	)

	switch cfg.Storage {
	case config.StorageMongo:
		client, err := mongodb.Connect(
			ctx,
			cfg.Mongo.URI,
			mongodb.WithConnectTimeout(cfg.Mongo.ConnectTimeout),
			mongodb.WithConnectRetries(cfg.Mongo.ConnectRetries, cfg.Mongo.ConnectBackoff),
		)
		if err != nil {
			return fmt.Errorf("%s: failed to connect to mongo: %w", op, err)
		}
		defer client.Disconnect(context.Background())

		db := client.Database(cfg.Mongo.DB)

		if err := mongorepo.EnsureIndexes(ctx, db); err != nil {
			return fmt.Errorf("%s: failed to create indexes: %w", op, err)
		}

		shortenerUseCase = usecase.NewShortenerUseCase(
			mongorepo.NewCounterRepository(db),
			mongorepo.NewURLRepository(db),
			resolveCache,
			logger.Logger,
		)
		trackerUseCase = usecase.NewTrackerUseCase(
			mongorepo.NewUserRepository(db),
			mongorepo.NewExerciseRepository(db),
			logger.Logger,
		)
	default:
		db, err := postgres.New(
			ctx,
			cfg.Postgres.DSN(),
			postgres.WithConnMaxIdleTime(cfg.Postgres.ConnMaxIdleTime),
			postgres.WithConnMaxLifetime(cfg.Postgres.ConnMaxLifetime),
			postgres.WithMaxIdleConns(cfg.Postgres.MaxIdleConns),
			postgres.WithMaxOpenConns(cfg.Postgres.MaxOpenConns),
			postgres.WithConnectRetries(cfg.Postgres.ConnectRetries, cfg.Postgres.ConnectBackoff),
		)
		if err != nil {
			return fmt.Errorf("%s: failed to connect to database: %w", op, err)
		}
		defer db.Close()

		if err := postgres.RunMigrations(migrations.FS, cfg.Postgres.DSN()); err != nil {
			return fmt.Errorf("%s: failed to run migrations: %w", op, err)
		}

		shortenerUseCase = usecase.NewShortenerUseCase(
			pgrepo.NewCounterRepository(db),
			pgrepo.NewURLRepository(db),
			resolveCache,
			logger.Logger,
		)
		trackerUseCase = usecase.NewTrackerUseCase(
			pgrepo.NewUserRepository(db),
			pgrepo.NewExerciseRepository(db),
			logger.Logger,
		)
	}

	router := delivery.NewRouter(
		logger,
		delivery.Options{
			PublicBaseURL:  cfg.PublicBaseURL,
			MaxUploadBytes: cfg.FileAnalyse.MaxUploadBytes,
		},
		shortenerUseCase,
		trackerUseCase,
		usecase.NewFileUseCase(),
	)

	server := &http.Server{
		Addr:           cfg.HTTPServer.Addr(),
		Handler:        router,
		ReadTimeout:    cfg.HTTPServer.ReadTimeout,
		WriteTimeout:   cfg.HTTPServer.WriteTimeout,
		IdleTimeout:    cfg.HTTPServer.IdleTimeout,
		MaxHeaderBytes: cfg.HTTPServer.MaxHeaderBytes,
		BaseContext: func(_ net.Listener) context.Context {
			return ctx
		},
	}

	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		logger.Info("starting server", "addr", server.Addr, "storage", cfg.Storage, "cache", cfg.Cache.Driver)

		var err error

		if cfg.HTTPServer.TLS() {
			err = server.ListenAndServeTLS(cfg.HTTPServer.CertFile, cfg.HTTPServer.KeyFile)
		} else {
			err = server.ListenAndServe()
		}

		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("%s: server error occurred: %w", op, err)
		}

		return nil
	})

	g.Go(func() error {
		<-ctx.Done()

		logger.Info("shutting down server")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()

		if err := server.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("%s: failed to shutdown server: %w", op, err)
		}

		return nil
	})

	return g.Wait()
}

// newURLCache builds the resolve cache selected by the config. The returned
// function releases its resources.
func newURLCache(ctx context.Context, cfg *config.Config) (urlCache, func(), error) {
	switch cfg.Cache.Driver {
	case config.CacheMemory:
		return cache.NewMemory(cfg.Cache.TTL), func() {}, nil
	case config.CacheRedis:
		client, err := redisdb.Connect(ctx, redisdb.Config{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err != nil {
			return nil, nil, fmt.Errorf("failed to connect to redis: %w", err)
		}

		return cache.NewRedis(client, cfg.Cache.TTL), func() { client.Close() }, nil
	default:
		return cache.Nop{}, func() {}, nil
	}
}
