package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/spf13/afero"
	"go.uber.org/zap"

	"github.com/khoahotran/portfolio/adapters/event"
	httpAdapter "github.com/khoahotran/portfolio/adapters/http"
	"github.com/khoahotran/portfolio/adapters/persistence"
	"github.com/khoahotran/portfolio/internal/application/service"
	contactUC "github.com/khoahotran/portfolio/internal/application/usecase/contact"
	portfolioUC "github.com/khoahotran/portfolio/internal/application/usecase/portfolio"
	"github.com/khoahotran/portfolio/internal/config"
	"github.com/khoahotran/portfolio/internal/domain/contact"
	"github.com/khoahotran/portfolio/internal/domain/resume"
	"github.com/khoahotran/portfolio/pkg/logger"
	"github.com/khoahotran/portfolio/pkg/tracing"
)

func main() {
	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("FATAL: cannot load config: %v", err)
	}

	appLogger := logger.NewZapLogger(cfg.App.Env)
	defer appLogger.Sync()

	appLogger.Info("Start Portfolio API Server...", zap.String("env", cfg.App.Env))

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Tracing
	if cfg.Jaeger.OTLPEndpoint != "" {
		tp, err := tracing.NewTracerProvider(cfg, appLogger, "portfolio-api")
		if err != nil {
			appLogger.Fatal("cannot init tracer provider", err)
		}
		defer func() {
			if err := tp.Shutdown(context.Background()); err != nil {
				appLogger.Error("Failed to shutdown tracer provider", err)
			}
		}()
	}

	// Repositories
	var redisClient *redis.Client
	if cfg.Redis.Addr != "" {
		redisClient, err = persistence.NewRedisClient(ctx, cfg, appLogger)
		if err != nil {
			appLogger.Warn("Redis unavailable, resume cache disabled", zap.Error(err))
			redisClient = nil
		} else {
			defer redisClient.Close()
		}
	}

	resumeRepo := newResumeRepo(cfg, redisClient, appLogger)

	contactRepo, closeContactRepo, err := newContactRepo(ctx, cfg, appLogger)
	if err != nil {
		appLogger.Fatal("cannot init contact store", err, zap.String("store", cfg.Contact.Store))
	}
	defer closeContactRepo()

	// Services
	var publisher service.ContactEventPublisher
	if len(cfg.Kafka.Brokers) > 0 {
		kafkaClient, err := event.NewKafkaProducerClient(cfg, appLogger)
		if err != nil {
			appLogger.Fatal("cannot init Kafka", err)
		}
		defer kafkaClient.Close()
		publisher = kafkaClient
	}

	// Use Cases
	portfolioUseCase := portfolioUC.NewPortfolioUseCase(resumeRepo, appLogger)
	submitContactUseCase := contactUC.NewSubmitContactUseCase(contactRepo, publisher, contact.NewUUIDv7Generator(), appLogger)

	// HTTP Handlers
	portfolioHandler := httpAdapter.NewPortfolioHandler(portfolioUseCase, appLogger)
	contactHandler := httpAdapter.NewContactHandler(submitContactUseCase, appLogger)

	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	router := httpAdapter.NewRouter(portfolioHandler, contactHandler, appLogger)

	srv := &http.Server{
		Addr:              ":" + cfg.App.Port,
		Handler:           httpAdapter.WithCORS(router, cfg.CORS.AllowedOrigins),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		appLogger.Info("Server running", zap.String("port", cfg.App.Port))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			appLogger.Fatal("Cannot run server", err)
		}
	}()

	<-ctx.Done()
	appLogger.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		appLogger.Error("Server forced to shutdown", err)
	}

	// in-flight contact events must reach Kafka before the deferred producer Close
	submitContactUseCase.Wait()
}

func newResumeRepo(cfg config.Config, rdb *redis.Client, log logger.Logger) resume.Repository {
	var repo resume.Repository
	switch cfg.Resume.Source {
	case config.ResumeSourceFile:
		repo = persistence.NewFileResumeRepo(afero.NewOsFs(), cfg.Resume.Path, log)
	case config.ResumeSourceURL:
		repo = persistence.NewURLResumeRepo(nil, cfg.Resume.URL, log)
	default:
		repo = persistence.NewEmbeddedResumeRepo()
	}
	log.Info("Resume source selected", zap.String("source", cfg.Resume.Source))

	if rdb != nil && cfg.Resume.CacheTTL > 0 {
		repo = persistence.NewCachedResumeRepo(repo, rdb, cfg.Resume.CacheTTL, log)
	}
	return repo
}

func newContactRepo(ctx context.Context, cfg config.Config, log logger.Logger) (contact.Repository, func(), error) {
	switch cfg.Contact.Store {
	case config.ContactStorePostgres:
		pool, err := persistence.NewPostgresPool(ctx, cfg, log)
		if err != nil {
			return nil, nil, err
		}
		return persistence.NewPostgresContactRepo(pool, log), pool.Close, nil
	case config.ContactStoreMongo:
		client, err := persistence.NewMongoClient(ctx, cfg, log)
		if err != nil {
			return nil, nil, err
		}
		closeFn := func() {
			if err := client.Disconnect(context.Background()); err != nil {
				log.Error("Failed to disconnect MongoDB", err)
			}
		}
		return persistence.NewMongoContactRepo(client.Database(cfg.Mongo.Database), log), closeFn, nil
	default:
		return persistence.NewFileContactRepo(afero.NewOsFs(), cfg.Contact.Dir, log), func() {}, nil
	}
}
