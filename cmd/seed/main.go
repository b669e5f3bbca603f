package main

import (
	"context"
	"os"
	"time"

	"carwash/internal/bookings/events"
	"carwash/internal/bookings/repository"
	"carwash/internal/bookings/service"
	"carwash/internal/bookings/validator"
	"carwash/internal/seed"
	"carwash/pkg/config"
	mongodb "carwash/pkg/db/mongo"
	"carwash/pkg/model"

	"github.com/urfave/cli/v2"
)

const JobName = "seed"

func main() {
	app := &cli.App{
		Name:  JobName,
		Usage: "load sample bookings into MongoDB",
		Flags: []cli.Flag{
			&cli.BoolFlag{Name: "reset", Usage: "delete existing bookings first"},
			&cli.StringFlag{Name: "file", Usage: "TOML fixture file (defaults to the built-in samples)"},
			&cli.BoolFlag{Name: "atomic", Usage: "run the whole seed in one transaction (needs a replica set)"},
			&cli.DurationFlag{Name: "timeout", Value: 60 * time.Second, Usage: "overall deadline"},
		},
		Action: run,
	}

	if err := app.Run(os.Args); err != nil {
		os.Exit(1)
	}
}

func run(c *cli.Context) error {
	ctx, cancel := context.WithTimeout(c.Context, c.Duration("timeout"))
	defer cancel()

	cfg := config.Load(JobName)
	cfg.SetMongo()
	defer cfg.GracefulShutdown()

	bookings, err := loadBookings(c.String("file"))
	if err != nil {
		cfg.Log.Error("Failed to load fixtures", "error", err)
		return err
	}

	repo := repository.NewMongoBookingRepository(cfg)
	svc := service.NewBookingService(repo, validator.NewBookingValidator(cfg.Log), events.NewNoopPublisher(), cfg)

	seeder := seed.NewSeeder(svc, repo, cfg.Log)
	if c.Bool("atomic") {
		seeder.WithTransactions(mongodb.NewTransactionManager(cfg.Client.Mongo))
	}

	result, err := seeder.Run(ctx, bookings, c.Bool("reset"))
	if err != nil {
		cfg.Log.Error("Seeding failed", "error", err, "inserted", result.Inserted)
		return err
	}
	cfg.Log.Info("Seeding completed", "deleted", result.Deleted, "inserted", result.Inserted)
	return nil
}

func loadBookings(path string) ([]*model.Booking, error) {
	if path == "" {
		return seed.DefaultBookings()
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return seed.Parse(data)
}
