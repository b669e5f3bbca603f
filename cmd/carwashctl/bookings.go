package main

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"carwash/internal/bookings/validator"
	"carwash/pkg/bookingform"
	"carwash/pkg/middleware"
	"carwash/pkg/model"
	"carwash/pkg/reconcile"

	"github.com/google/uuid"
	"github.com/urfave/cli/v2"
)

func listCommand() *cli.Command {
	return &cli.Command{
		Name:  "list",
		Usage: "list bookings matching the filters",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "service", Usage: "service type"},
			&cli.StringFlag{Name: "car-type"},
			&cli.StringFlag{Name: "status"},
			&cli.StringFlag{Name: "from", Usage: "earliest date, YYYY-MM-DD"},
			&cli.StringFlag{Name: "to", Usage: "latest date, YYYY-MM-DD"},
			&cli.StringFlag{Name: "sort", Value: model.DefaultSortBy},
			&cli.StringFlag{Name: "order", Value: model.DefaultSortOrder},
			&cli.StringFlag{Name: "sort-by", Usage: "menu sort, overrides --sort and --order: " + strings.Join(model.SortOptionKeys(), ", ")},
			&cli.IntFlag{Name: "page", Value: 1},
			&cli.IntFlag{Name: "limit", Value: reconcile.DefaultLimit},
		},
		Action: func(c *cli.Context) error {
			filters := reconcile.Filters{
				ServiceType: c.String("service"),
				CarType:     c.String("car-type"),
				Status:      c.String("status"),
				DateFrom:    c.String("from"),
				DateTo:      c.String("to"),
				SortBy:      c.String("sort"),
				SortOrder:   c.String("order"),
				Page:        c.Int("page"),
				Limit:       c.Int("limit"),
			}
			if key := c.String("sort-by"); key != "" {
				opt, ok := model.FindSortOption(key)
				if !ok {
					return fmt.Errorf("sort-by must be one of: %s", strings.Join(model.SortOptionKeys(), ", "))
				}
				filters.SortBy, filters.SortOrder = opt.SortBy, opt.SortOrder
			}

			ctrl := reconcile.NewController(bookingClient(c), filters, reconcile.WithLogger(cliLogger(c)))
			defer ctrl.Close()
			ctrl.Load()
			ctrl.Wait()

			s := ctrl.State()
			if s.Err != nil {
				return s.Err
			}
			return output(c, s.Visible, func(w io.Writer) error {
				if err := printBookings(w, s.Visible); err != nil {
					return err
				}
				p := s.Pagination
				fmt.Fprintf(w, "\nPage %d of %d (%d bookings)\n", p.Current, max(p.Pages, 1), p.Total)
				return printStats(w, s.Stats)
			})
		},
	}
}

func searchCommand() *cli.Command {
	return &cli.Command{
		Name:      "search",
		Usage:     "search by customer name, car make or model",
		ArgsUsage: "<query>",
		Action: func(c *cli.Context) error {
			q := strings.Join(c.Args().Slice(), " ")
			if strings.TrimSpace(q) == "" {
				return errors.New("search query is required")
			}

			bookings, err := bookingClient(c).Search(c.Context, q)
			if err != nil {
				return err
			}
			return output(c, bookings, func(w io.Writer) error {
				if err := printBookings(w, bookings); err != nil {
					return err
				}
				return printStats(w, reconcile.ComputeStats(bookings))
			})
		},
	}
}

func getCommand() *cli.Command {
	return &cli.Command{
		Name:      "get",
		Usage:     "show one booking",
		ArgsUsage: "<id>",
		Action: func(c *cli.Context) error {
			id, err := requireArg(c, "id")
			if err != nil {
				return err
			}
			b, err := bookingClient(c).Get(c.Context, id)
			if err != nil {
				return err
			}
			return output(c, b, func(w io.Writer) error { return printBooking(w, b) })
		},
	}
}

func formFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{Name: "name", Usage: "customer name"},
		&cli.StringFlag{Name: "make"},
		&cli.StringFlag{Name: "model"},
		&cli.IntFlag{Name: "year"},
		&cli.StringFlag{Name: "car-type", Usage: strings.Join(model.CarTypes, ", ")},
		&cli.StringFlag{Name: "service", Usage: strings.Join(model.ServiceTypes, ", ")},
		&cli.StringFlag{Name: "date", Usage: "YYYY-MM-DD"},
		&cli.StringFlag{Name: "slot", Usage: "time slot, 08:00 to 17:00"},
		&cli.StringFlag{Name: "status", Usage: strings.Join(model.Statuses, ", ")},
		&cli.IntFlag{Name: "rating", Usage: "1 to 5"},
		&cli.StringSliceFlag{Name: "add-on", Usage: "add-on to select, repeatable; replaces the current selection"},
		&cli.StringSliceFlag{Name: "toggle-add-on", Usage: "add-on to toggle, repeatable"},
	}
}

// applyFormFlags copies every flag the user set onto f.
func applyFormFlags(c *cli.Context, f *bookingform.Form) {
	strs := map[string]*string{
		"name":     &f.CustomerName,
		"make":     &f.CarMake,
		"model":    &f.CarModel,
		"car-type": &f.CarType,
		"service":  &f.ServiceType,
		"date":     &f.Date,
		"slot":     &f.TimeSlot,
		"status":   &f.Status,
	}
	for name, dst := range strs {
		if c.IsSet(name) {
			*dst = c.String(name)
		}
	}
	if c.IsSet("year") {
		f.CarYear = c.Int("year")
	}
	if c.IsSet("rating") {
		r := c.Int("rating")
		f.Rating = &r
	}
	if c.IsSet("add-on") {
		f.AddOns = c.StringSlice("add-on")
	}
	for _, a := range c.StringSlice("toggle-add-on") {
		f.ToggleAddOn(a)
	}
}

func validateForm(c *cli.Context, f *bookingform.Form) error {
	err := f.Validate(validator.NewBookingValidator(cliLogger(c)))
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		msgs := make([]string, 0, len(verrs))
		for _, e := range verrs {
			msgs = append(msgs, e.Message)
		}
		return fmt.Errorf("invalid booking: %s", strings.Join(msgs, "; "))
	}
	return err
}

func createCommand() *cli.Command {
	return &cli.Command{
		Name:  "create",
		Usage: "create a booking",
		Flags: formFlags(),
		Action: func(c *cli.Context) error {
			form := bookingform.New()
			applyFormFlags(c, form)
			if err := validateForm(c, form); err != nil {
				return err
			}
			payload, err := form.Payload()
			if err != nil {
				return err
			}

			bc := bookingClient(c)
			bc.HTTP().Headers = map[string]string{middleware.IdempotencyHeader: uuid.NewString()}
			created, err := bc.Create(c.Context, payload)
			if err != nil {
				return err
			}
			return output(c, created, func(w io.Writer) error {
				fmt.Fprintln(w, "Booking created successfully")
				return printBooking(w, created)
			})
		},
	}
}

func updateCommand() *cli.Command {
	return &cli.Command{
		Name:      "update",
		Usage:     "change fields of a booking",
		ArgsUsage: "<id>",
		Flags:     formFlags(),
		Action: func(c *cli.Context) error {
			id, err := requireArg(c, "id")
			if err != nil {
				return err
			}

			bc := bookingClient(c)
			existing, err := bc.Get(c.Context, id)
			if err != nil {
				return err
			}

			form := bookingform.FromBooking(existing)
			applyFormFlags(c, form)
			if err := validateForm(c, form); err != nil {
				return err
			}
			patch, err := form.Patch(existing)
			if err != nil {
				return err
			}
			if patch.IsEmpty() {
				_, err := fmt.Fprintln(c.App.Writer, "Nothing to update")
				return err
			}

			updated, err := bc.Update(c.Context, id, patch)
			if err != nil {
				return err
			}
			return output(c, updated, func(w io.Writer) error {
				fmt.Fprintln(w, "Booking updated successfully")
				return printBooking(w, updated)
			})
		},
	}
}

func statusCommand() *cli.Command {
	return &cli.Command{
		Name:      "status",
		Usage:     "set the status of a booking",
		ArgsUsage: "<id> <status>",
		Action: func(c *cli.Context) error {
			if c.NArg() != 2 {
				return errors.New("usage: status <id> <status>")
			}
			id, status := c.Args().Get(0), c.Args().Get(1)
			if !model.IsStatus(status) {
				return fmt.Errorf("status must be one of: %s", strings.Join(model.Statuses, ", "))
			}

			updated, err := bookingClient(c).Update(c.Context, id, &model.BookingUpdate{Status: &status})
			if err != nil {
				return err
			}
			return output(c, updated, func(w io.Writer) error {
				_, err := fmt.Fprintf(w, "Booking %s is now %s\n", updated.ID, updated.Status)
				return err
			})
		},
	}
}

func deleteCommand() *cli.Command {
	return &cli.Command{
		Name:      "delete",
		Usage:     "delete a booking permanently",
		ArgsUsage: "<id>",
		Action: func(c *cli.Context) error {
			id, err := requireArg(c, "id")
			if err != nil {
				return err
			}
			if err := bookingClient(c).Delete(c.Context, id); err != nil {
				return err
			}
			_, err = fmt.Fprintln(c.App.Writer, "Booking deleted successfully")
			return err
		},
	}
}

func quoteCommand() *cli.Command {
	return &cli.Command{
		Name:  "quote",
		Usage: "price and duration for a service and add-ons",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "service", Value: model.ServiceBasicWash},
			&cli.StringSliceFlag{Name: "add-on"},
		},
		Action: func(c *cli.Context) error {
			if !model.IsServiceType(c.String("service")) {
				return fmt.Errorf("service must be one of: %s", strings.Join(model.ServiceTypes, ", "))
			}
			form := bookingform.New()
			form.ServiceType = c.String("service")
			for _, a := range c.StringSlice("add-on") {
				if !model.IsAddOn(a) {
					return fmt.Errorf("unknown add-on %q", a)
				}
				if !form.HasAddOn(a) {
					form.ToggleAddOn(a)
				}
			}

			q := form.Quote()
			return output(c, q, func(w io.Writer) error {
				_, err := fmt.Fprintf(w, "$%.2f, %d min\n", q.Price, q.Duration)
				return err
			})
		},
	}
}

func requireArg(c *cli.Context, name string) (string, error) {
	if c.NArg() < 1 || strings.TrimSpace(c.Args().First()) == "" {
		return "", fmt.Errorf("%s is required", name)
	}
	return c.Args().First(), nil
}
