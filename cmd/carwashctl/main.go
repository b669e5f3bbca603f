// Command carwashctl manages bookings through the HTTP API.
package main

import (
	"fmt"
	"io"
	"os"
	"time"

	"carwash/pkg/client"
	"carwash/pkg/logger"

	"github.com/urfave/cli/v2"
)

const (
	defaultURL     = "http://localhost:5000"
	defaultTimeout = 10 * time.Second
)

func main() {
	if err := newApp(os.Stdout).Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func newApp(out io.Writer) *cli.App {
	return &cli.App{
		Name:   "carwashctl",
		Usage:  "manage car wash bookings",
		Writer: out,
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "url", Value: defaultURL, EnvVars: []string{"CARWASH_URL"}, Usage: "bookings API base URL"},
			&cli.DurationFlag{Name: "timeout", Value: defaultTimeout, Usage: "per-request timeout"},
			&cli.BoolFlag{Name: "json", Usage: "print JSON instead of tables"},
			&cli.StringFlag{Name: "log-level", Value: logger.WARN, EnvVars: []string{"LOG_LEVEL"}},
		},
		Commands: []*cli.Command{
			listCommand(),
			searchCommand(),
			getCommand(),
			createCommand(),
			updateCommand(),
			statusCommand(),
			deleteCommand(),
			quoteCommand(),
			eventsCommand(),
		},
	}
}

func bookingClient(c *cli.Context) *client.BookingClient {
	bc := client.NewBookingClient(c.String("url"))
	bc.HTTP().HTTPClient.Timeout = c.Duration("timeout")
	return bc
}

func cliLogger(c *cli.Context) *logger.Logger {
	return logger.New(logger.Config{
		Level:   c.String("log-level"),
		Format:  "text",
		Output:  os.Stderr,
		Service: "carwashctl",
	})
}
