package reconcile

import "carwash/pkg/model"

// Stats summarizes the full visible set for the current mode.
type Stats struct {
	Total     int
	Pending   int
	Confirmed int
	Completed int
	Cancelled int
	Revenue   float64
}

func ComputeStats(bookings []*model.Booking) Stats {
	s := Stats{Total: len(bookings)}
	for _, b := range bookings {
		switch b.Status {
		case model.StatusPending:
			s.Pending++
		case model.StatusConfirmed:
			s.Confirmed++
		case model.StatusCompleted:
			s.Completed++
		case model.StatusCancelled:
			s.Cancelled++
		}
		s.Revenue += b.Price
	}
	return s
}
