package main

import (
	"context"

	"carwash/internal/bookings/events"
	"carwash/internal/bookings/handler"
	"carwash/internal/bookings/repository"
	"carwash/internal/bookings/service"
	"carwash/internal/bookings/validator"
	"carwash/pkg/app"
	"carwash/pkg/config"
	"carwash/pkg/kafka"
	kafka_middleware "carwash/pkg/kafka/middleware"
	"carwash/pkg/telemetry"

	"github.com/prometheus/client_golang/prometheus"
)

const ServiceName = "bookings"

func main() {
	cfg := config.Load(ServiceName)
	cfg.SetMongo()
	cfg.SetRedis()

	shutdownTracing, err := telemetry.Setup(context.Background(), telemetry.Config{
		Enabled:      cfg.OTelEnabled,
		ServiceName:  ServiceName,
		OTLPEndpoint: cfg.OTelEndpoint,
		SampleRatio:  cfg.OTelSamplingRatio,
	})
	if err != nil {
		cfg.Log.Fatal("Failed to set up tracing", "error", err)
	}

	cfg.Log.Info("Starting Bookings service")
	serverApp := app.NewApplication(cfg)
	publisher := initPublisher(cfg, serverApp.Registry())
	bookingService := initServices(cfg, publisher)

	serverApp.SetApp(
		handler.NewBookingHandler(bookingService, cfg.Log),
		handler.NewHealthHandler(cfg.Client.Mongo, cfg.Log),
	)
	serverApp.OnShutdown(
		app.ShutdownHook{Name: "events", Fn: func(context.Context) error { return publisher.Close() }},
		app.ShutdownHook{Name: "tracing", Fn: shutdownTracing},
	)
	serverApp.Run()
}

func initPublisher(cfg *config.Config, reg prometheus.Registerer) events.Publisher {
	if !cfg.Kafka.Enabled() {
		cfg.Log.Info("Kafka brokers not configured, booking events disabled")
		return events.NewNoopPublisher()
	}

	if err := cfg.Kafka.Validate(); err != nil {
		cfg.Log.Fatal("Invalid Kafka configuration", "error", err)
	}
	cfg.Kafka.LogConfiguration(cfg.Log.Info)

	producer, err := kafka.NewProducer(cfg.Kafka, cfg.Log, cfg.KafkaBookingsTopic, cfg.KafkaBookingsDLQTopic)
	if err != nil {
		cfg.Log.Fatal("Failed to create Kafka producer", "error", err)
	}
	if cfg.Kafka.EnableMiddleware {
		producer.Use(kafka_middleware.NewMetrics(reg).ProducerMiddleware())
		producer.Use(kafka_middleware.LoggingProducerMiddleware(cfg.Log))
	}

	cfg.Log.Info("Booking events published to Kafka", "topic", cfg.KafkaBookingsTopic)
	return events.NewKafkaPublisher(producer)
}

func initServices(cfg *config.Config, publisher events.Publisher) service.BookingService {
	bookingValidator := validator.NewBookingValidator(cfg.Log)
	bookingRepo := repository.NewMongoBookingRepository(cfg)
	bookingService := service.NewBookingService(
		bookingRepo,
		bookingValidator,
		publisher,
		cfg,
	)

	cfg.Log.Info("Booking service initialized", "database", cfg.MongoDatabaseName)
	return bookingService
}
