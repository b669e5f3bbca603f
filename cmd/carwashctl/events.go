package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"carwash/internal/bookings/events"
	"carwash/pkg/config"
	"carwash/pkg/kafka"
	kafka_config "carwash/pkg/kafka/config"
	kafka_middleware "carwash/pkg/kafka/middleware"

	"github.com/urfave/cli/v2"
)

func eventsCommand() *cli.Command {
	return &cli.Command{
		Name:  "events",
		Usage: "tail booking lifecycle events from Kafka",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "brokers", EnvVars: []string{"KAFKA_BROKERS"}, Usage: "comma separated broker list"},
			&cli.StringFlag{Name: "topic", Value: config.DefaultKafkaBookingsTopic, EnvVars: []string{"KAFKA_BOOKINGS_TOPIC"}},
			&cli.StringFlag{Name: "group", Value: "carwashctl", Usage: "consumer group ID"},
		},
		Action: func(c *cli.Context) error {
			cfg := kafka_config.Load()
			if c.IsSet("brokers") {
				cfg.Brokers = splitBrokers(c.String("brokers"))
			}
			cfg.ConsumerGroupID = c.String("group")
			if !cfg.Enabled() {
				return errors.New("no Kafka brokers configured, set --brokers or KAFKA_BROKERS")
			}

			if err := cfg.Validate(); err != nil {
				return err
			}

			log := cliLogger(c)
			cfg.LogConfiguration(log.Debug)
			consumer, err := kafka.NewConsumer(cfg, log, c.String("topic"), "", printEvent(c.App.Writer))
			if err != nil {
				return err
			}
			defer consumer.Close()
			consumer.Use(kafka_middleware.LoggingConsumerMiddleware(log))

			ctx, stop := signal.NotifyContext(c.Context, os.Interrupt, syscall.SIGTERM)
			defer stop()

			log.Info("Tailing booking events", "topic", c.String("topic"), "brokers", cfg.Brokers)
			if err := consumer.Start(ctx); err != nil && !errors.Is(err, context.Canceled) {
				return err
			}
			return nil
		},
	}
}

// printEvent writes one line per event. Undecodable payloads are permanent
// failures so they are not retried.
func printEvent(w io.Writer) kafka.MessageHandler {
	return func(_ context.Context, msg kafka.Message) error {
		var e events.Event
		if err := msg.DecodeValue(&e); err != nil {
			return kafka.NewPermanentError("decode booking event", err)
		}
		_, err := fmt.Fprintln(w, formatEvent(e))
		return err
	}
}

func formatEvent(e events.Event) string {
	line := fmt.Sprintf("%s  %-16s %s", e.OccurredAt.Format("2006-01-02 15:04:05"), e.Type, e.BookingID)
	if b := e.Booking; b != nil {
		line += fmt.Sprintf("  %s, %s on %s %s, %s, $%.2f", b.CustomerName, b.ServiceType, b.Date.Day(), b.TimeSlot, b.Status, b.Price)
	}
	return line
}

func splitBrokers(s string) []string {
	var out []string
	for _, b := range strings.Split(s, ",") {
		if b = strings.TrimSpace(b); b != "" {
			out = append(out, b)
		}
	}
	return out
}
