package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"carwash/pkg/model"
	"carwash/pkg/reconcile"

	"github.com/urfave/cli/v2"
)

func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func printBookings(w io.Writer, bookings []*model.Booking) error {
	if len(bookings) == 0 {
		_, err := fmt.Fprintln(w, "No bookings found")
		return err
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tCUSTOMER\tCAR\tSERVICE\tDATE\tSLOT\tSTATUS\tPRICE")
	for _, b := range bookings {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\t%s\t$%.2f\n",
			b.ID, b.CustomerName, car(b.CarDetails), b.ServiceType, b.Date.Day(), b.TimeSlot, b.Status, b.Price)
	}
	return tw.Flush()
}

func printBooking(w io.Writer, b *model.Booking) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "ID:\t%s\n", b.ID)
	fmt.Fprintf(tw, "Customer:\t%s\n", b.CustomerName)
	fmt.Fprintf(tw, "Car:\t%s (%d, %s)\n", car(b.CarDetails), b.CarDetails.Year, b.CarDetails.Type)
	fmt.Fprintf(tw, "Service:\t%s\n", b.ServiceType)
	fmt.Fprintf(tw, "Add-ons:\t%s\n", orNone(strings.Join(b.AddOns, ", ")))
	fmt.Fprintf(tw, "When:\t%s %s\n", b.Date.Day(), b.TimeSlot)
	fmt.Fprintf(tw, "Duration:\t%d min\n", b.Duration)
	fmt.Fprintf(tw, "Price:\t$%.2f\n", b.Price)
	fmt.Fprintf(tw, "Status:\t%s\n", b.Status)
	if b.Rating != nil {
		fmt.Fprintf(tw, "Rating:\t%d/5\n", *b.Rating)
	}
	return tw.Flush()
}

func printStats(w io.Writer, s reconcile.Stats) error {
	_, err := fmt.Fprintf(w, "Total %d | Pending %d | Confirmed %d | Completed %d | Cancelled %d | Revenue $%.2f\n",
		s.Total, s.Pending, s.Confirmed, s.Completed, s.Cancelled, s.Revenue)
	return err
}

func car(d model.CarDetails) string {
	return strings.TrimSpace(d.Make + " " + d.Model)
}

func orNone(s string) string {
	if s == "" {
		return "none"
	}
	return s
}

// output prints v as JSON with --json, otherwise through table.
func output(c *cli.Context, v any, table func(io.Writer) error) error {
	if c.Bool("json") {
		return printJSON(c.App.Writer, v)
	}
	return table(c.App.Writer)
}
