package kafka_middleware

import (
	"context"
	"time"

	"carwash/pkg/kafka"

	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the Prometheus collectors for Kafka operations.
type Metrics struct {
	Published       *prometheus.CounterVec
	PublishDuration *prometheus.HistogramVec
	Consumed        *prometheus.CounterVec
	ConsumeDuration *prometheus.HistogramVec
}

// NewMetrics creates the collectors and registers them with reg.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		Published: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "carwash",
			Subsystem: "kafka",
			Name:      "messages_published_total",
			Help:      "Messages published, by topic, event type and outcome.",
		}, []string{"topic", "event_type", "outcome"}),
		PublishDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "carwash",
			Subsystem: "kafka",
			Name:      "publish_duration_seconds",
			Help:      "Time spent publishing a message.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"topic"}),
		Consumed: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "carwash",
			Subsystem: "kafka",
			Name:      "messages_consumed_total",
			Help:      "Messages consumed, by topic, event type and outcome.",
		}, []string{"topic", "event_type", "outcome"}),
		ConsumeDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "carwash",
			Subsystem: "kafka",
			Name:      "consume_duration_seconds",
			Help:      "Time spent handling a consumed message.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"topic"}),
	}
	if reg != nil {
		reg.MustRegister(m.Published, m.PublishDuration, m.Consumed, m.ConsumeDuration)
	}
	return m
}

func outcome(err error) string {
	if err != nil {
		return "error"
	}
	return "ok"
}

// ProducerMiddleware tracks producer metrics
func (m *Metrics) ProducerMiddleware() kafka.ProducerMiddleware {
	return func(ctx context.Context, msg kafka.Message, next func(ctx context.Context, msg kafka.Message) error) error {
		start := time.Now()
		err := next(ctx, msg)

		m.PublishDuration.WithLabelValues(msg.Topic).Observe(time.Since(start).Seconds())
		m.Published.WithLabelValues(msg.Topic, msg.GetEventType(), outcome(err)).Inc()
		return err
	}
}

// ConsumerMiddleware tracks consumer metrics
func (m *Metrics) ConsumerMiddleware() kafka.ConsumerMiddleware {
	return func(ctx context.Context, msg kafka.Message, next kafka.MessageHandler) error {
		start := time.Now()
		err := next(ctx, msg)

		m.ConsumeDuration.WithLabelValues(msg.Topic).Observe(time.Since(start).Seconds())
		m.Consumed.WithLabelValues(msg.Topic, msg.GetEventType(), outcome(err)).Inc()
		return err
	}
}
