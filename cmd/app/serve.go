package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"yatube/internal/adapters/broker"
	"yatube/internal/adapters/httpapi"
	"yatube/internal/config"
	"yatube/internal/workers"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

const shutdownTimeout = 10 * time.Second

func ServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP server and the background workers",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := settings.Validate(); err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			a, err := newApp(ctx, settings)
			if err != nil {
				return err
			}
			defer a.Close()

			var wg sync.WaitGroup
			if settings.KafkaEnabled() {
				a.posts.RecordEvents = true
				closeWorkers := startWorkers(ctx, &wg, a)
				defer closeWorkers()
			} else {
				config.Logger.Info("KAFKA_BROKERS not set, outbox workers disabled")
			}

			srv := &http.Server{
				Addr: ":" + settings.AppPort,
				Handler: httpapi.SetupRoutes(a.useCases(), httpapi.Options{
					MediaRoot:     settings.MediaRoot,
					SecureCookies: settings.Env == "production",
				}),
				ReadHeaderTimeout: 10 * time.Second,
			}

			drained := make(chan struct{})
			go func() {
				defer close(drained)
				<-ctx.Done()
				shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
				defer cancel()
				if err := srv.Shutdown(shutdownCtx); err != nil {
					config.Logger.Error("Server shutdown failed", zap.Error(err))
				}
			}()

			config.Logger.Info("App is running", zap.String("addr", srv.Addr))
			err = srv.ListenAndServe()
			stop()
			<-drained
			wg.Wait()
			if err != nil && !errors.Is(err, http.ErrServerClosed) {
				return err
			}

			config.Logger.Info("App stopped")
			return nil
		},
	}
}

// startWorkers runs the outbox publisher and the cache invalidation consumer
// until ctx is cancelled. The returned func closes their Kafka connections.
func startWorkers(ctx context.Context, wg *sync.WaitGroup, a *app) func() {
	writer := broker.NewWriter(broker.Config{
		Brokers: settings.KafkaBrokers,
		Topic:   settings.KafkaTopic,
	})
	reader := broker.NewReader(broker.Config{
		Brokers: settings.KafkaBrokers,
		Topic:   settings.KafkaTopic,
		GroupID: instanceGroupID(settings.KafkaGroupID),
	})

	publisher := broker.NewEventPublisher(writer)
	consumer := broker.NewEventConsumer(reader)

	outboxWorker := workers.NewOutboxWorker(a.outboxRepo, publisher, settings.OutboxBatchSize, settings.OutboxPollInterval, config.Logger)
	invalidationWorker := workers.NewInvalidationWorker(consumer, a.cache, config.Logger)

	wg.Add(2)
	go func() {
		defer wg.Done()
		outboxWorker.Run(ctx)
	}()
	go func() {
		defer wg.Done()
		invalidationWorker.Run(ctx)
	}()

	return func() {
		if err := publisher.Close(); err != nil {
			config.Logger.Error("Error closing Kafka writer", zap.Error(err))
		}
		if err := consumer.Close(); err != nil {
			config.Logger.Error("Error closing Kafka reader", zap.Error(err))
		}
	}
}

// instanceGroupID gives every instance its own consumer group, so each one
// sees every event and purges its own cache.
func instanceGroupID(base string) string {
	host, err := os.Hostname()
	if err != nil || host == "" {
		return base
	}
	return base + "-" + host
}
