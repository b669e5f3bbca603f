package config

import "time"

const (
	DefaultMongoURI          = "mongodb://localhost:27017"
	DefaultMongoDatabaseName = "carwash-bookings"
	DefaultMongoConnTimeout  = 10 * time.Second

	DefaultPort     = "5000"
	DefaultLogLevel = "info"

	DefaultRequestTimeout = 30 * time.Second
	DefaultIdempotencyTTL = 24 * time.Hour
	DefaultMaxRequestSize = 1 * 1024 * 1024 // 1MB

	// Zero requests disables rate limiting.
	DefaultRateLimitRequests = 0
	DefaultRateLimitWindow   = time.Minute

	DefaultReadTimeout     = 15 * time.Second
	DefaultWriteTimeout    = 15 * time.Second
	DefaultIdleTimeout     = 60 * time.Second
	DefaultShutdownTimeout = 30 * time.Second

	DefaultPaginationLimit    = 10
	DefaultPaginationMaxLimit = 0 // no cap
	DefaultSearchResultLimit  = 20

	// MaxSearchResultLimit bounds SEARCH_RESULT_LIMIT; search never returns
	// more than this many bookings.
	MaxSearchResultLimit = 20

	DefaultCORSAllowedOrigins = "*"

	DefaultMetricsEnabled = true
	DefaultMetricsPath    = "/metrics"

	DefaultRedisDB = 0

	DefaultKafkaBookingsTopic    = "bookings.events"
	DefaultKafkaBookingsDLQTopic = "bookings.events.dlq"

	DefaultOTelEnabled       = false
	DefaultOTelEndpoint      = "localhost:4317"
	DefaultOTelSamplingRatio = 1.0
)
