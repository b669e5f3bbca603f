package kafka

import (
	"bytes"
	"context"
	"errors"
	"sync"
	"testing"

	"carwash/pkg/logger"

	"github.com/segmentio/kafka-go"
)

type fakeWriter struct {
	mu       sync.Mutex
	messages []kafka.Message
	err      error
	closed   bool
}

func (w *fakeWriter) WriteMessages(_ context.Context, msgs ...kafka.Message) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.err != nil {
		return w.err
	}
	w.messages = append(w.messages, msgs...)
	return nil
}

func (w *fakeWriter) Close() error {
	w.closed = true
	return nil
}

func header(m kafka.Message, key string) string {
	for _, h := range m.Headers {
		if h.Key == key {
			return string(h.Value)
		}
	}
	return ""
}

func testLogger() *logger.Logger {
	return logger.New(logger.Config{Level: "error", Output: &bytes.Buffer{}})
}

func TestMessageBuilder_Build(t *testing.T) {
	msg, err := NewMessage().
		WithKey("65f1c0ffee").
		WithEventType("booking.created").
		WithSource("bookings").
		WithValue(map[string]string{"status": "Pending"}).
		Build()
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}

	if msg.Key != "65f1c0ffee" {
		t.Errorf("Key = %q", msg.Key)
	}
	if msg.GetEventID() == "" {
		t.Errorf("event id should be generated")
	}
	if msg.Headers[HeaderTimestamp] == "" {
		t.Errorf("timestamp header should be set")
	}
	if string(msg.Value) != `{"status":"Pending"}` {
		t.Errorf("Value = %s", msg.Value)
	}
}

func TestMessageBuilder_EncodingError(t *testing.T) {
	_, err := NewMessage().WithKey("k").WithValue(make(chan int)).Build()
	if err == nil {
		t.Fatal("expected encoding error for unsupported value")
	}
}

func TestMessage_RetryCount(t *testing.T) {
	msg := Message{}
	for i := 0; i < 12; i++ {
		msg.IncrementRetryCount()
	}
	if got := msg.GetRetryCount(); got != 12 {
		t.Errorf("GetRetryCount() = %d, want 12", got)
	}
}

func TestProducer_Publish(t *testing.T) {
	w := &fakeWriter{}
	p := &Producer{writer: w, topic: "bookings.events"}

	var seenTopic string
	p.Use(func(ctx context.Context, msg Message, next func(context.Context, Message) error) error {
		seenTopic = msg.Topic
		return next(ctx, msg)
	})

	msg, _ := NewMessage().WithKey("id-1").WithEventType("booking.deleted").WithValue("x").Build()
	if err := p.Publish(context.Background(), msg); err != nil {
		t.Fatalf("Publish() error = %v", err)
	}

	if seenTopic != "bookings.events" {
		t.Errorf("middleware saw topic %q", seenTopic)
	}
	if len(w.messages) != 1 {
		t.Fatalf("expected 1 written message, got %d", len(w.messages))
	}
	if got := header(w.messages[0], HeaderEventType); got != "booking.deleted" {
		t.Errorf("event-type header = %q", got)
	}
}

func TestProducer_PublishValidation(t *testing.T) {
	p := &Producer{writer: &fakeWriter{}, topic: "t"}

	if err := p.Publish(context.Background(), Message{Value: []byte("v")}); !errors.Is(err, ErrEmptyKey) {
		t.Errorf("expected ErrEmptyKey, got %v", err)
	}
	if err := p.Publish(context.Background(), Message{Key: "k"}); !errors.Is(err, ErrEmptyValue) {
		t.Errorf("expected ErrEmptyValue, got %v", err)
	}

	_ = p.Close()
	if err := p.Publish(context.Background(), Message{Key: "k", Value: []byte("v")}); !errors.Is(err, ErrProducerClosed) {
		t.Errorf("expected ErrProducerClosed, got %v", err)
	}
}

func TestProducer_FailedWriteGoesToDLQ(t *testing.T) {
	writeErr := errors.New("connection refused")
	dlq := &fakeWriter{}
	p := &Producer{writer: &fakeWriter{err: writeErr}, dlqWriter: dlq, topic: "bookings.events"}

	msg, _ := NewMessage().WithKey("id-2").WithValue("x").Build()
	err := p.Publish(context.Background(), msg)
	if !errors.Is(err, writeErr) {
		t.Fatalf("expected original write error, got %v", err)
	}

	if len(dlq.messages) != 1 {
		t.Fatalf("expected 1 DLQ message, got %d", len(dlq.messages))
	}
	if got := header(dlq.messages[0], HeaderOriginalTopic); got != "bookings.events" {
		t.Errorf("original-topic header = %q", got)
	}
	if got := header(dlq.messages[0], HeaderDLQError); got != "connection refused" {
		t.Errorf("dlq-error header = %q", got)
	}
	if _, ok := msg.Headers[HeaderDLQError]; ok {
		t.Errorf("caller's message headers must not be mutated")
	}
}

func TestClassifyError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want ErrorType
	}{
		{"nil", nil, ErrorTypeUnknown},
		{"network", errors.New("dial tcp: Connection Refused"), ErrorTypeTransient},
		{"deadline", context.DeadlineExceeded, ErrorTypeTransient},
		{"explicit permanent", NewPermanentError("bad payload", nil), ErrorTypePermanent},
		{"explicit transient", NewTransientError("retry me", errors.New("x")), ErrorTypeTransient},
		{"unknown", errors.New("json: cannot unmarshal"), ErrorTypePermanent},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ClassifyError(tt.err); got != tt.want {
				t.Errorf("ClassifyError() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestConsumer_ProcessMessageRetriesTransient(t *testing.T) {
	calls := 0
	dlq := &fakeWriter{}
	c := &Consumer{
		topic:      "bookings.events",
		groupID:    "g",
		maxRetries: 2,
		dlqWriter:  dlq,
		log:        testLogger(),
		handler: func(ctx context.Context, msg Message) error {
			calls++
			return NewTransientError("broker busy", nil)
		},
	}

	err := c.processMessage(context.Background(), Message{Key: "k", Headers: map[string]string{}})
	if err == nil {
		t.Fatal("expected error after retries")
	}
	if calls != 3 {
		t.Errorf("handler calls = %d, want 3", calls)
	}
	if len(dlq.messages) != 1 {
		t.Errorf("expected message dead-lettered, got %d", len(dlq.messages))
	}
}

func TestConsumer_ProcessMessagePermanentNotRetried(t *testing.T) {
	calls := 0
	c := &Consumer{
		maxRetries: 5,
		log:        testLogger(),
		handler: func(ctx context.Context, msg Message) error {
			calls++
			return NewPermanentError("undecodable", nil)
		},
	}

	_ = c.processMessage(context.Background(), Message{Headers: map[string]string{}})
	if calls != 1 {
		t.Errorf("handler calls = %d, want 1", calls)
	}
}
