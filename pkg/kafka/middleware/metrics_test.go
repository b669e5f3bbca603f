package kafka_middleware

import (
	"context"
	"errors"
	"testing"

	"carwash/pkg/kafka"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestProducerMiddleware_CountsOutcomes(t *testing.T) {
	m := NewMetrics(prometheus.NewRegistry())
	mw := m.ProducerMiddleware()

	msg := kafka.Message{
		Topic:   "bookings.events",
		Headers: map[string]string{kafka.HeaderEventType: "booking.created"},
	}

	_ = mw(context.Background(), msg, func(context.Context, kafka.Message) error { return nil })
	_ = mw(context.Background(), msg, func(context.Context, kafka.Message) error { return nil })
	err := mw(context.Background(), msg, func(context.Context, kafka.Message) error { return errors.New("down") })
	if err == nil {
		t.Fatal("middleware must propagate the publish error")
	}

	if got := testutil.ToFloat64(m.Published.WithLabelValues("bookings.events", "booking.created", "ok")); got != 2 {
		t.Errorf("ok count = %v, want 2", got)
	}
	if got := testutil.ToFloat64(m.Published.WithLabelValues("bookings.events", "booking.created", "error")); got != 1 {
		t.Errorf("error count = %v, want 1", got)
	}
}
