// Package seed loads sample bookings into an empty or reset database.
package seed

import (
	"context"
	_ "embed"
	"fmt"

	"carwash/pkg/logger"
	"carwash/pkg/model"

	"github.com/BurntSushi/toml"
)

//go:embed bookings.toml
var defaultFixtures []byte

type carFixture struct {
	Make  string `toml:"make"`
	Model string `toml:"model"`
	Year  int    `toml:"year"`
	Type  string `toml:"type"`
}

type bookingFixture struct {
	CustomerName string     `toml:"customer_name"`
	ServiceType  string     `toml:"service_type"`
	Date         string     `toml:"date"`
	TimeSlot     string     `toml:"time_slot"`
	Status       string     `toml:"status"`
	Rating       *int       `toml:"rating"`
	AddOns       []string   `toml:"add_ons"`
	Car          carFixture `toml:"car"`
}

type fixtureFile struct {
	Bookings []bookingFixture `toml:"bookings"`
}

// Creator stores one booking, deriving its price and duration.
type Creator interface {
	Create(ctx context.Context, booking *model.Booking) error
}

// Resetter empties the bookings collection.
type Resetter interface {
	DeleteAll(ctx context.Context) (int64, error)
}

type Result struct {
	Deleted  int64
	Inserted int
}

// Transactor runs fn atomically. The context passed to fn must be used for
// every write that belongs to the transaction.
type Transactor interface {
	ExecuteTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}

type Seeder struct {
	creator  Creator
	resetter Resetter
	tx       Transactor
	log      *logger.Logger
}

func NewSeeder(creator Creator, resetter Resetter, log *logger.Logger) *Seeder {
	return &Seeder{creator: creator, resetter: resetter, log: log.Component("seed")}
}

// DefaultBookings returns the embedded sample bookings.
func DefaultBookings() ([]*model.Booking, error) {
	return Parse(defaultFixtures)
}

// Parse decodes a TOML fixture file into bookings.
func Parse(data []byte) ([]*model.Booking, error) {
	var file fixtureFile
	if _, err := toml.Decode(string(data), &file); err != nil {
		return nil, fmt.Errorf("failed to decode fixtures: %w", err)
	}

	bookings := make([]*model.Booking, 0, len(file.Bookings))
	for i, f := range file.Bookings {
		date, err := model.ParseDate(f.Date)
		if err != nil {
			return nil, fmt.Errorf("booking %d (%s): %w", i, f.CustomerName, err)
		}
		bookings = append(bookings, &model.Booking{
			CustomerName: f.CustomerName,
			CarDetails: model.CarDetails{
				Make:  f.Car.Make,
				Model: f.Car.Model,
				Year:  f.Car.Year,
				Type:  f.Car.Type,
			},
			ServiceType: f.ServiceType,
			Date:        date,
			TimeSlot:    f.TimeSlot,
			Status:      f.Status,
			Rating:      f.Rating,
			AddOns:      f.AddOns,
		})
	}
	return bookings, nil
}

// WithTransactions makes Run all-or-nothing.
func (s *Seeder) WithTransactions(tx Transactor) *Seeder {
	s.tx = tx
	return s
}

// Run inserts bookings, optionally clearing the collection first. It stops
// at the first booking that fails to insert; with transactions enabled
// nothing from the failed run is kept.
func (s *Seeder) Run(ctx context.Context, bookings []*model.Booking, reset bool) (Result, error) {
	if s.tx == nil {
		return s.run(ctx, bookings, reset)
	}

	var result Result
	err := s.tx.ExecuteTransaction(ctx, func(txCtx context.Context) error {
		var err error
		result, err = s.run(txCtx, bookings, reset)
		return err
	})
	if err != nil {
		return Result{}, err
	}
	return result, nil
}

func (s *Seeder) run(ctx context.Context, bookings []*model.Booking, reset bool) (Result, error) {
	var result Result

	if reset {
		deleted, err := s.resetter.DeleteAll(ctx)
		if err != nil {
			return result, fmt.Errorf("failed to clear bookings: %w", err)
		}
		result.Deleted = deleted
		s.log.Info("Existing bookings cleared", "deleted", deleted)
	}

	for _, b := range bookings {
		if err := s.creator.Create(ctx, b); err != nil {
			return result, fmt.Errorf("failed to insert booking for %s: %w", b.CustomerName, err)
		}
		result.Inserted++
	}

	s.log.Info("Sample bookings inserted", "count", result.Inserted)
	return result, nil
}
