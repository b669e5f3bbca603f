package service

import (
	"context"
	"errors"
	"strings"

	bookingserrors "carwash/internal/bookings/errors"
	"carwash/internal/bookings/events"
	"carwash/internal/bookings/repository"
	"carwash/internal/bookings/validator"
	"carwash/pkg/config"
	apperrors "carwash/pkg/errors"
	"carwash/pkg/model"
	"carwash/pkg/pricing"
	"carwash/pkg/sanitizer"

	"golang.org/x/sync/errgroup"
)

type BookingService interface {
	List(ctx context.Context, query model.ListQuery) (*model.BookingPage, error)
	Search(ctx context.Context, q string) ([]*model.Booking, error)
	GetByID(ctx context.Context, id string) (*model.Booking, error)
	Create(ctx context.Context, booking *model.Booking) error
	Update(ctx context.Context, id string, patch *model.BookingUpdate) (*model.Booking, error)
	Delete(ctx context.Context, id string) error
}

type bookingValidator interface {
	Validate(booking *model.Booking) error
	ValidateUpdate(update *model.BookingUpdate) error
}

type bookingService struct {
	repo      repository.BookingRepository
	validator bookingValidator
	publisher events.Publisher
	cfg       *config.Config
}

func NewBookingService(
	repo repository.BookingRepository,
	validator *validator.BookingValidator,
	publisher events.Publisher,
	cfg *config.Config,
) BookingService {
	return &bookingService{
		repo:      repo,
		validator: validator,
		publisher: publisher,
		cfg:       cfg,
	}
}

func (s *bookingService) List(ctx context.Context, query model.ListQuery) (*model.BookingPage, error) {
	query = s.normalizeListQuery(query)

	if from, to := query.Filter.DateFrom, query.Filter.DateTo; from != nil && to != nil && from.After(*to) {
		return nil, apperrors.InvalidInput("dateFrom must not be after dateTo")
	}

	var (
		total    int64
		bookings []*model.Booking
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		total, err = s.repo.Count(gctx, query.Filter)
		if err != nil {
			s.cfg.Log.Error("Failed to count bookings", "error", err)
			return apperrors.Internal("Failed to count bookings", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		bookings, err = s.repo.List(gctx, query)
		if err != nil {
			s.cfg.Log.Error("Failed to list bookings",
				"page", query.Page,
				"limit", query.Limit,
				"sort_by", query.SortBy,
				"error", err,
			)
			return apperrors.Internal("Failed to retrieve bookings", err)
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	if bookings == nil {
		bookings = []*model.Booking{}
	}

	s.cfg.Log.Debug("Bookings listed",
		"page", query.Page,
		"limit", query.Limit,
		"count", len(bookings),
		"total_count", total,
	)
	return &model.BookingPage{
		Bookings:   bookings,
		Pagination: model.NewPagination(query.Page, query.Limit, total),
	}, nil
}

func (s *bookingService) Search(ctx context.Context, q string) ([]*model.Booking, error) {
	q = strings.TrimSpace(q)
	if q == "" {
		return []*model.Booking{}, nil
	}

	bookings, err := s.repo.Search(ctx, q, s.cfg.SearchResultLimit)
	if err != nil {
		s.cfg.Log.Error("Failed to search bookings", "query", q, "error", err)
		return nil, apperrors.Internal("Failed to search bookings", err)
	}
	if bookings == nil {
		bookings = []*model.Booking{}
	}

	s.cfg.Log.Debug("Booking search completed", "query", q, "count", len(bookings))
	return bookings, nil
}

func (s *bookingService) GetByID(ctx context.Context, id string) (*model.Booking, error) {
	if id == "" {
		return nil, apperrors.InvalidInput("Booking ID cannot be empty")
	}

	booking, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, s.mapRepoError(err, id, "Failed to retrieve booking")
	}

	return booking, nil
}

func (s *bookingService) Create(ctx context.Context, booking *model.Booking) error {
	s.applyDefaults(booking)
	s.sanitize(booking)
	if err := s.validate(booking); err != nil {
		return err
	}

	quote := pricing.For(booking.ServiceType, booking.AddOns)
	booking.Price = quote.Price
	booking.Duration = quote.Duration

	if err := s.repo.Create(ctx, booking); err != nil {
		s.cfg.Log.Error("Failed to create booking", "error", err)
		return apperrors.Translate(err)
	}

	s.cfg.Log.Info("Booking created successfully",
		"id", booking.ID,
		"service_type", booking.ServiceType,
		"date", booking.Date.Day(),
		"time_slot", booking.TimeSlot,
		"price", booking.Price,
	)
	s.publish(ctx, events.Event{Type: events.TypeCreated, BookingID: booking.ID, Booking: booking})
	return nil
}

func (s *bookingService) Update(ctx context.Context, id string, patch *model.BookingUpdate) (*model.Booking, error) {
	if id == "" {
		return nil, apperrors.InvalidInput("Booking ID cannot be empty")
	}
	if patch == nil {
		patch = &model.BookingUpdate{}
	}

	s.sanitizeUpdate(patch)
	if err := s.validator.ValidateUpdate(patch); err != nil {
		s.cfg.Log.Warn("Booking update validation failed", "id", id, "error", err)
		return nil, validationError(err)
	}

	existing, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, s.mapRepoError(err, id, "Failed to check booking existence")
	}

	updated, err := s.repo.Update(ctx, id, patch, PlanRecompute(existing, patch))
	if err != nil {
		s.cfg.Log.Error("Failed to update booking", "id", id, "error", err)
		return nil, s.mapRepoError(err, id, "Failed to update booking")
	}

	s.cfg.Log.Info("Booking updated successfully",
		"id", id,
		"status", updated.Status,
		"price", updated.Price,
	)
	s.publish(ctx, events.Event{Type: events.TypeUpdated, BookingID: id, Booking: updated})
	return updated, nil
}

func (s *bookingService) Delete(ctx context.Context, id string) error {
	if id == "" {
		return apperrors.InvalidInput("Booking ID cannot be empty")
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return s.mapRepoError(err, id, "Failed to delete booking")
	}

	s.cfg.Log.Info("Booking deleted successfully", "id", id)
	s.publish(ctx, events.Event{Type: events.TypeDeleted, BookingID: id})
	return nil
}

// --- Helpers ---

func (s *bookingService) normalizeListQuery(q model.ListQuery) model.ListQuery {
	if q.Page < 1 {
		q.Page = 1
	}
	q.Limit = s.cfg.NormalizeLimit(q.Limit)
	if !model.IsSortableField(q.SortBy) {
		q.SortBy = model.DefaultSortBy
	}
	if q.SortOrder != model.SortAsc {
		q.SortOrder = model.SortDesc
	}
	return q
}

func (s *bookingService) applyDefaults(b *model.Booking) {
	if b.Status == "" {
		b.Status = model.StatusPending
	}
	if b.AddOns == nil {
		b.AddOns = []string{}
	}
}

func (s *bookingService) sanitize(b *model.Booking) {
	b.CustomerName = sanitizer.NormalizeName(b.CustomerName)
	b.CarDetails.Make = sanitizer.NormalizeName(b.CarDetails.Make)
	b.CarDetails.Model = sanitizer.NormalizeName(b.CarDetails.Model)
	b.CarDetails.Type = sanitizer.NormalizeCarType(b.CarDetails.Type)
	b.TimeSlot = sanitizer.NormalizeTimeSlot(b.TimeSlot)
	b.AddOns = sanitizer.NormalizeAddOns(b.AddOns)
}

func (s *bookingService) sanitizeUpdate(u *model.BookingUpdate) {
	u.CustomerName = sanitizer.Optional(u.CustomerName, sanitizer.NormalizeName)
	u.TimeSlot = sanitizer.Optional(u.TimeSlot, sanitizer.NormalizeTimeSlot)
	if u.CarDetails != nil {
		u.CarDetails.Make = sanitizer.Optional(u.CarDetails.Make, sanitizer.NormalizeName)
		u.CarDetails.Model = sanitizer.Optional(u.CarDetails.Model, sanitizer.NormalizeName)
		u.CarDetails.Type = sanitizer.Optional(u.CarDetails.Type, sanitizer.NormalizeCarType)
	}
	if u.AddOns != nil {
		addOns := sanitizer.NormalizeAddOns(*u.AddOns)
		u.AddOns = &addOns
	}
}

func (s *bookingService) validate(booking *model.Booking) error {
	if err := s.validator.Validate(booking); err != nil {
		s.cfg.Log.Warn("Booking validation failed", "error", err)
		return validationError(err)
	}
	return nil
}

func validationError(err error) error {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		return apperrors.Validation("Validation Error", verrs.FieldErrors())
	}
	return apperrors.Validation("Validation Error", []apperrors.FieldError{{Message: err.Error()}})
}

func (s *bookingService) mapRepoError(err error, id, internalMsg string) error {
	switch {
	case errors.Is(err, bookingserrors.ErrNotFound):
		return apperrors.NotFoundWithID("Booking", id)
	case errors.Is(err, bookingserrors.ErrInvalidID):
		return apperrors.InvalidID(id)
	case apperrors.IsAppError(err):
		return err
	}

	translated := apperrors.Translate(err)
	if translated.Code == apperrors.CodeInternal {
		s.cfg.Log.Error(internalMsg, "id", id, "error", err)
		return apperrors.Internal(internalMsg, err)
	}
	return translated
}

// publish never fails the request; the producer already routes undeliverable
// messages to the dead letter topic.
func (s *bookingService) publish(ctx context.Context, event events.Event) {
	if err := s.publisher.Publish(ctx, event); err != nil {
		s.cfg.Log.Warn("Failed to publish booking event",
			"type", event.Type,
			"booking_id", event.BookingID,
			"error", err,
		)
	}
}
