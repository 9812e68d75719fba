package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"hawker/cmd"
	"hawker/internal/adapters/out/eventbus"
	"hawker/internal/adapters/out/postgres"
	"hawker/internal/adapters/out/redisstore"
	"hawker/internal/core/ports"
	"hawker/internal/pkg/logger"
	"hawker/internal/telemetry"

	"github.com/labstack/gommon/log"
)

func main() {
	configs, err := cmd.LoadConfig()
	if err != nil {
		log.Fatalf("Error loading configuration: %v", err)
	}

	appLog := logger.New(logger.Options{
		ServiceName: configs.App.Name,
		Level:       logger.ParseLevel(configs.App.LogLevel),
		Format:      configs.App.LogFormat,
		WarnStack:   configs.App.LogWarnStack,
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err = run(ctx, configs, appLog); err != nil {
		appLog.Error(context.Background(), "service stopped with error", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, configs cmd.Config, appLog *logger.Logger) error {
	shutdownTracing, err := telemetry.InitTracerProvider(ctx, telemetry.TracingConfig{
		Enabled:        configs.Telemetry.Enabled,
		Endpoint:       configs.Telemetry.Endpoint,
		Insecure:       configs.Telemetry.Insecure,
		SampleRatio:    configs.Telemetry.SampleRatio,
		ServiceName:    configs.App.Name,
		ServiceVersion: configs.App.Version,
	})
	if err != nil {
		return fmt.Errorf("init tracing: %w", err)
	}
	defer func() { _ = shutdownTracing(context.Background()) }()

	db, err := postgres.Connect(ctx, postgres.ConnectionConfig{
		Driver:          configs.DB.Driver,
		DSN:             configs.DB.DSN,
		MaxOpenConns:    configs.DB.MaxOpenConns,
		MaxIdleConns:    configs.DB.MaxIdleConns,
		ConnMaxLifetime: configs.DB.ConnMaxLifetime,
		ConnMaxIdleTime: configs.DB.ConnMaxIdleTime,
		LogQueries:      configs.DB.LogQueries,
	}, appLog)
	if err != nil {
		return err
	}
	defer func() { _ = postgres.Close(db) }()

	var redisClient *redisstore.Client
	if configs.Redis.Enabled() {
		redisClient, err = redisstore.New(ctx, redisstore.Options{
			URL:          configs.Redis.URL,
			Address:      configs.Redis.Address,
			Password:     configs.Redis.Password,
			DB:           configs.Redis.DB,
			PoolSize:     configs.Redis.PoolSize,
			DialTimeout:  configs.Redis.DialTimeout,
			ReadTimeout:  configs.Redis.ReadTimeout,
			WriteTimeout: configs.Redis.WriteTimeout,
		})
		if err != nil {
			return err
		}
		defer func() { _ = redisClient.Close() }()
	} else {
		appLog.Warn(ctx, "redis not configured: collect attempts are not limited and the expiry job runs unlocked", nil)
	}

	var publisher ports.EventPublisher
	if configs.Kafka.Enabled() {
		producer := eventbus.NewProducer(configs.Kafka.Brokers, configs.Kafka.Topic)
		defer func() { _ = producer.Close() }()
		publisher = producer
	}

	app := cmd.NewCompositionRoot(configs, db, redisClient, publisher, appLog)

	jobManager, err := app.CreateJobManager()
	if err != nil {
		return err
	}
	if err = jobManager.StartAll(); err != nil {
		return err
	}
	defer jobManager.StopAll()

	return startWebServer(ctx, app, configs, appLog)
}

func startWebServer(ctx context.Context, app *cmd.CompositionRoot, configs cmd.Config, appLog *logger.Logger) error {
	server := &http.Server{
		Addr:              fmt.Sprintf("0.0.0.0:%s", configs.HTTP.Port),
		Handler:           app.CreateHTTPHandler(),
		ReadHeaderTimeout: configs.HTTP.ReadHeaderTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		appLog.Info(ctx, "http server listening on "+server.Addr)
		errCh <- server.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), configs.HTTP.ShutdownTimeout)
	defer cancel()
	appLog.Info(shutdownCtx, "shutting down http server")
	return server.Shutdown(shutdownCtx)
}
