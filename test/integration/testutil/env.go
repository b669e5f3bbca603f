package testutil

import (
	"context"
	"fmt"
	"os"
	"testing"
	"time"

	"carwash/pkg/client"
)

// EnvEnabled gates the suite so unit test runs never need a live stack.
const EnvEnabled = "TEST_INTEGRATION"

type TestEnv struct {
	MongoURI     string
	DatabaseName string
	ServerURL    string
	ServerPort   string
}

func NewTestEnv() *TestEnv {
	mongoURI := getEnv("TEST_MONGO_URI", DefaultMongoURI)
	dbName := getEnv("TEST_DB_NAME", DefaultDatabaseName)
	serverPort := getEnv("TEST_SERVER_PORT", "5000")
	serverURL := getEnv("TEST_SERVER_URL", fmt.Sprintf("http://localhost:%s", serverPort))

	return &TestEnv{
		MongoURI:     mongoURI,
		DatabaseName: dbName,
		ServerURL:    serverURL,
		ServerPort:   serverPort,
	}
}

// Setup skips the test unless TEST_INTEGRATION is set, then empties the
// bookings collection and waits for the server to report healthy.
func (e *TestEnv) Setup(t *testing.T) (*MongoHelper, *client.BookingClient) {
	t.Helper()
	if os.Getenv(EnvEnabled) == "" {
		t.Skipf("set %s=1 to run against a live server and MongoDB", EnvEnabled)
	}

	mongo := NewMongoHelper(t, e.MongoURI, e.DatabaseName)
	mongo.CleanCollection(t, BookingsCollection)

	bc := client.NewBookingClient(e.ServerURL)
	if err := bc.HTTP().WaitForHealthy(context.Background(), DefaultHealthCheckTimeout); err != nil {
		t.Fatalf("server at %s never became healthy: %v", e.ServerURL, err)
	}

	return mongo, bc
}

func (e *TestEnv) Cleanup(t *testing.T, mongo *MongoHelper) {
	t.Helper()

	if mongo != nil {
		mongo.CleanCollection(t, BookingsCollection)
		mongo.Close(t)
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

const (
	DefaultHealthCheckTimeout = 3 * ConnectionTimeout
	RequestTimeout            = 5 * time.Second
)
