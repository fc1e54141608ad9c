package main // Entry point package

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"    // loads .env into the process environment
	"github.com/labstack/echo/v4" // Echo web framework
	echomw "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/cors"
	"go.uber.org/zap"

	"github.com/iliyamo/cinereserve/internal/config"
	"github.com/iliyamo/cinereserve/internal/database"
	"github.com/iliyamo/cinereserve/internal/handler"
	"github.com/iliyamo/cinereserve/internal/middleware"
	"github.com/iliyamo/cinereserve/internal/queue"
	"github.com/iliyamo/cinereserve/internal/repository"
	"github.com/iliyamo/cinereserve/internal/router"
	"github.com/iliyamo/cinereserve/internal/service"
	"github.com/iliyamo/cinereserve/internal/storage"
	"github.com/iliyamo/cinereserve/internal/utils"
)

func main() {
	_ = godotenv.Load() // a missing .env is fine

	cfg := config.Load()
	log := newLogger(cfg.Env)
	defer func() { _ = log.Sync() }()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, log); err != nil {
		log.Fatal("server stopped", zap.Error(err))
	}
}

func newLogger(env string) *zap.Logger {
	var (
		log *zap.Logger
		err error
	)
	if env == "prod" {
		log, err = zap.NewProduction()
	} else {
		log, err = zap.NewDevelopment()
	}
	if err != nil {
		return zap.NewNop()
	}
	return log
}

func run(ctx context.Context, cfg config.Config, log *zap.Logger) error {
	rdb := config.NewRedisClient(config.LoadRedisConfig())
	if rdb != nil {
		defer rdb.Close()
	}

	provider, closeProvider, err := openProvider(ctx, cfg, rdb, log)
	if err != nil {
		return err
	}
	defer closeProvider()

	store, err := repository.Open(ctx, provider, repository.Options{
		DefaultRows: cfg.SeatRows,
		DefaultCols: cfg.SeatCols,
		Logger:      log,
	})
	if err != nil {
		return fmt.Errorf("open store: %w", err)
	}
	if n := store.Notice(); n != "" {
		log.Warn(n)
	}

	catalog := repository.NewCatalogRepo(store)
	bookings := repository.NewBookingRepo(store)

	secretHash, err := utils.HashSecret(cfg.AdminSecret, cfg.BcryptCost)
	if err != nil {
		return fmt.Errorf("hash admin secret: %w", err)
	}

	var pub service.Publisher = service.NopPublisher{}
	if cfg.QueueEnabled {
		amqpPub := service.NewAMQPPublisher(cfg.RabbitURL, log)
		defer amqpPub.Close()
		pub = amqpPub

		consumer := &queue.Consumer{URL: cfg.RabbitURL, LogPath: "logs/booking.log", Log: log.Named("consumer")}
		go func() {
			if err := consumer.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
				log.Error("consumer stopped", zap.Error(err))
			}
		}()
	}
	events := service.NewBookingEvents(pub, log)

	cacheCfg := config.LoadCacheConfig()

	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.Use(echomw.Recover())
	e.Use(middleware.RequestLogger(log.Named("http")))
	e.Use(middleware.NewTokenBucket(config.LoadRateLimitConfig(), rdb))
	e.Use(middleware.PurgeCache(cacheCfg, rdb, log))

	router.RegisterRoutes(e, store)
	router.RegisterPublic(e, handler.NewCatalogHandler(catalog), middleware.NewRedisCache(cacheCfg, rdb))
	router.RegisterCustomer(e, handler.NewBookingHandler(catalog, bookings, events))
	router.RegisterAdmin(e, handler.NewAdminHandler(cfg, secretHash, catalog, bookings, events, log.Named("admin")), cfg.JWTSecret)

	c := cors.New(cors.Options{
		AllowedOrigins: cfg.CORSOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodDelete, http.MethodOptions},
		AllowedHeaders: []string{"Authorization", "Content-Type"},
	})
	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           c.Handler(e),
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info("listening", zap.String("addr", srv.Addr), zap.String("env", cfg.Env), zap.String("store", cfg.StoreDriver))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	// flush the final state; every mutation has already been saved
	return store.Save(shutdownCtx)
}

// openProvider selects the snapshot backend named by STORE_DRIVER.
func openProvider(ctx context.Context, cfg config.Config, rdb *redis.Client, log *zap.Logger) (storage.Provider, func(), error) {
	noop := func() {}
	switch cfg.StoreDriver {
	case "file", "":
		return storage.NewFile(cfg.StorePath, log), noop, nil
	case "memory":
		return storage.NewMemory(), noop, nil
	case "redis":
		if rdb == nil {
			return nil, noop, errors.New("store driver redis: redis is unreachable")
		}
		return storage.NewRedis(rdb, cfg.StoreKey, log), noop, nil
	case "mysql":
		db, err := database.OpenMySQL(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
		if err != nil {
			return nil, noop, fmt.Errorf("open mysql: %w", err)
		}
		p := storage.NewSQL(db, cfg.StoreKey, log)
		if err := p.EnsureSchema(ctx); err != nil {
			_ = db.Close()
			return nil, noop, err
		}
		return p, func() { _ = db.Close() }, nil
	case "mongo":
		client, err := database.OpenMongo(cfg.MongoURI)
		if err != nil {
			return nil, noop, fmt.Errorf("open mongo: %w", err)
		}
		coll := client.Database(cfg.MongoDB).Collection("snapshots")
		return storage.NewMongo(coll, cfg.StoreKey, log), func() { _ = client.Disconnect(context.Background()) }, nil
	default:
		return nil, noop, fmt.Errorf("unknown store driver %q", cfg.StoreDriver)
	}
}
