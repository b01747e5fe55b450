package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/onboardiq/onboardiq/internal/bootstrap"
	"github.com/onboardiq/onboardiq/internal/domain/port"
	"github.com/onboardiq/onboardiq/internal/infrastructure/config"
	"github.com/onboardiq/onboardiq/internal/infrastructure/kafka"
	"github.com/onboardiq/onboardiq/internal/infrastructure/telemetry"
	grpcpresentation "github.com/onboardiq/onboardiq/internal/presentation/grpc"
	"github.com/onboardiq/onboardiq/internal/presentation/rest"
	pkgkafka "github.com/onboardiq/onboardiq/pkg/kafka"
	"github.com/onboardiq/onboardiq/pkg/observability"
)

func main() {
	if err := run(); err != nil {
		slog.Error("onboarding-service failed", "error", err)
		os.Exit(1)
	}
}

func run() error {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	// Load configuration.
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	logger := observability.InitLogger(observability.LogConfig{
		Level:       cfg.Log.Level,
		Format:      cfg.Log.Format,
		ServiceName: cfg.ServiceName,
		Environment: cfg.Environment,
	})

	logger.Info("starting onboarding-service",
		"http_port", cfg.HTTPPort,
		"grpc_port", cfg.GRPCPort,
	)

	// Initialize tracing.
	shutdownTracer, err := observability.InitTracer(ctx, observability.TracingConfig{
		ServiceName: cfg.ServiceName,
		Environment: cfg.Environment,
		Endpoint:    cfg.Telemetry.OTLPEndpoint,
		Insecure:    cfg.Telemetry.OTLPInsecure,
		SampleRatio: cfg.Telemetry.SampleRatio,
	})
	if err != nil {
		logger.Warn("failed to initialize tracer, continuing without tracing", "error", err)
	} else {
		defer func() { _ = shutdownTracer(context.Background()) }()
	}

	// Initialize metrics.
	meterProvider, metricsHandler, err := observability.InitMetrics(observability.MetricsConfig{ServiceName: cfg.ServiceName})
	if err != nil {
		return fmt.Errorf("failed to initialize metrics: %w", err)
	}
	defer func() { _ = meterProvider.Shutdown(context.Background()) }()

	recorder, err := telemetry.NewAssessmentMetrics(meterProvider.Meter("github.com/onboardiq/onboardiq"))
	if err != nil {
		return fmt.Errorf("failed to register assessment metrics: %w", err)
	}

	// Storage.
	store, closeStore, err := bootstrap.OpenStore(ctx, cfg.Database, logger)
	if err != nil {
		return err
	}
	defer closeStore()

	// Event publishing.
	var publisher port.EventPublisher = kafka.NewLogPublisher(logger)
	kafkaCfg := pkgkafka.Config{
		Brokers:       cfg.Kafka.Brokers,
		ConsumerGroup: cfg.Kafka.ConsumerGroup,
		TLS:           cfg.Kafka.TLS,
		SASLMechanism: cfg.Kafka.SASLMechanism,
		SASLUsername:  cfg.Kafka.SASLUsername,
		SASLPassword:  cfg.Kafka.SASLPassword,
	}
	if cfg.Kafka.Enabled() {
		producer, err := pkgkafka.NewProducer(kafkaCfg)
		if err != nil {
			return fmt.Errorf("failed to create kafka producer: %w", err)
		}
		defer func() {
			if err := producer.Close(); err != nil {
				logger.Error("kafka producer close error", "error", err)
			}
		}()
		publisher = kafka.NewPublisher(producer, cfg.Kafka.EventsTopic, logger)
		logger.Info("publishing events to kafka", "topic", cfg.Kafka.EventsTopic)
	} else {
		logger.Info("kafka not configured, events are logged only")
	}

	// Wire use cases.
	uc := bootstrap.NewUseCases(store, publisher, recorder)

	jwtSvc, err := bootstrap.NewJWTService(cfg.Auth)
	if err != nil {
		return fmt.Errorf("failed to initialize JWT service: %w", err)
	}

	// gRPC server.
	grpcHandler := grpcpresentation.NewOnboardingHandler(grpcpresentation.UseCases{
		Assess:     uc.Assess,
		Submit:     uc.Submit,
		Get:        uc.Get,
		List:       uc.List,
		Update:     uc.Update,
		Override:   uc.Override,
		Delete:     uc.Delete,
		Statistics: uc.Statistics,
	}, logger)
	grpcServer, err := grpcpresentation.NewServer(grpcpresentation.ServerConfig{
		Address:     cfg.GRPCAddress(),
		TLSCertFile: cfg.TLS.CertFile,
		TLSKeyFile:  cfg.TLS.KeyFile,
		Reflection:  cfg.GRPCReflection,
	}, grpcHandler, jwtSvc, logger)
	if err != nil {
		return fmt.Errorf("failed to create gRPC server: %w", err)
	}

	// HTTP server.
	router := rest.NewRouter(rest.RouterConfig{
		Submissions: rest.NewSubmissionHandler(rest.UseCases{
			Assess:     uc.Assess,
			Submit:     uc.Submit,
			Get:        uc.Get,
			List:       uc.List,
			Update:     uc.Update,
			Override:   uc.Override,
			Delete:     uc.Delete,
			Statistics: uc.Statistics,
		}, logger),
		Health:       rest.NewHealthHandler(cfg.ServiceName, map[string]rest.Pinger{"store": store}, logger),
		Validator:    jwtSvc,
		Metrics:      metricsHandler,
		RateLimitRPS: cfg.RateLimitRPS,
		Logger:       logger,
	})
	httpServer := rest.NewServer(cfg.HTTPAddress(), router, logger)

	// Start servers.
	errCh := make(chan error, 3)

	go func() {
		if err := grpcServer.Start(); err != nil {
			errCh <- fmt.Errorf("gRPC server error: %w", err)
		}
	}()

	go func() {
		if err := httpServer.Start(); err != nil {
			errCh <- fmt.Errorf("HTTP server error: %w", err)
		}
	}()

	if cfg.Kafka.ImportTopic != "" {
		importer := kafka.NewImporter(uc.Submit, logger)
		consumer, err := pkgkafka.NewConsumer(kafkaCfg, cfg.Kafka.ImportTopic, importer.Handle, logger)
		if err != nil {
			return fmt.Errorf("failed to create import consumer: %w", err)
		}
		defer func() { _ = consumer.Close() }()

		go func() {
			if err := consumer.Start(ctx); err != nil && !errors.Is(err, context.Canceled) {
				errCh <- fmt.Errorf("import consumer error: %w", err)
			}
		}()
	}

	logger.Info("onboarding-service started",
		"grpc_address", cfg.GRPCAddress(),
		"http_address", cfg.HTTPAddress(),
		"environment", cfg.Environment,
		"in_memory", cfg.Database.InMemory(),
	)

	// Wait for shutdown signal.
	var runErr error
	select {
	case <-ctx.Done():
		logger.Info("shutdown signal received")
	case runErr = <-errCh:
		logger.Error("server error", "error", runErr)
	}

	// Graceful shutdown.
	logger.Info("shutting down onboarding-service")
	cancel()

	grpcServer.Stop()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer shutdownCancel()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		logger.Error("HTTP server shutdown error", "error", err)
	}

	logger.Info("onboarding-service stopped")
	return runErr
}
