package main

import (
	"context"
	"fmt"
	"log"
	"os/signal"
	"syscall"

	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"

	"github.com/khoahotran/portfolio/adapters/event"
	"github.com/khoahotran/portfolio/adapters/media_storage"
	contactUC "github.com/khoahotran/portfolio/internal/application/usecase/contact"
	"github.com/khoahotran/portfolio/internal/config"
	"github.com/khoahotran/portfolio/pkg/logger"
	"github.com/khoahotran/portfolio/pkg/tracing"
)

const consumerGroup = "contact-archiver-group"

func main() {
	// Configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("FATAL: cannot load config: %v", err)
	}

	appLogger := logger.NewZapLogger(cfg.App.Env)
	defer appLogger.Sync()

	appLogger.Info("Starting Portfolio Worker...")

	if len(cfg.Kafka.Brokers) == 0 {
		appLogger.Fatal("cannot start worker", event.ErrNoBrokers)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if cfg.Jaeger.OTLPEndpoint != "" {
		tp, err := tracing.NewTracerProvider(cfg, appLogger, "portfolio-worker")
		if err != nil {
			appLogger.Fatal("cannot init tracer provider", err)
		}
		defer func() {
			if err := tp.Shutdown(context.Background()); err != nil {
				appLogger.Error("Failed to shutdown tracer provider", err)
			}
		}()
	}

	// Cloudinary Uploader
	uploader, err := media_storage.NewCloudinaryAdapter(cfg, appLogger)
	if err != nil {
		appLogger.Fatal("Failed to initialize uploader", err)
	}

	// Worker Use Case
	archiveContactUC := contactUC.NewArchiveContactUseCase(uploader, appLogger)

	// Kafka Consumer
	contactConsumer := kafka.NewReader(kafka.ReaderConfig{
		Brokers:  cfg.Kafka.Brokers,
		Topic:    event.TopicContactEvents,
		GroupID:  consumerGroup,
		MinBytes: 10e3,
		MaxBytes: 10e6,
	})

	appLogger.Info("Worker listening", zap.String("topic", event.TopicContactEvents), zap.String("group", consumerGroup))

	err = consume(ctx, contactConsumer, archiveContactUC, appLogger)
	if closeErr := contactConsumer.Close(); closeErr != nil {
		appLogger.Error("Failed to close Kafka reader", closeErr)
	}
	if err != nil {
		appLogger.Fatal("Worker stopped on archive failure", err)
	}
	appLogger.Info("Worker stopped")
}

// consume archives messages in offset order. A message is committed only
// once archived or found undecodable; an archive that still fails after
// retries stops the loop so the group offset never passes it.
func consume(ctx context.Context, consumer *kafka.Reader, archiveContactUC *contactUC.ArchiveContactUseCase, log logger.Logger) error {
	for {
		msg, err := consumer.FetchMessage(ctx)
		if err != nil {
			if ctx.Err() != nil {
				return nil
			}
			log.Error("Failed to read message from Kafka", err)
			continue
		}

		msgLogger := log.With(
			zap.String("topic", msg.Topic),
			zap.String("key", string(msg.Key)),
			zap.Int64("offset", msg.Offset),
		)

		payload, err := event.DecodeContactEvent(msg.Value)
		if err != nil {
			msgLogger.Error("Failed to decode event. Skipping.", err)
			commitMessage(consumer, msg, msgLogger)
			continue
		}

		if _, err := archiveContactUC.Execute(ctx, &payload.Submission); err != nil {
			if ctx.Err() != nil {
				return nil
			}
			return fmt.Errorf("archive contact %s at offset %d: %w", payload.Submission.ID, msg.Offset, err)
		}

		commitMessage(consumer, msg, msgLogger)
	}
}

func commitMessage(consumer *kafka.Reader, msg kafka.Message, log logger.Logger) {
	if err := consumer.CommitMessages(context.Background(), msg); err != nil {
		log.Error("Failed to commit message", err)
	}
}
