// Package bookingform holds the state of the create and edit booking forms
// and turns it into API payloads. Price and duration are always derived
// from the selected service and add-ons.
package bookingform

import (
	"errors"
	"fmt"
	"slices"

	"carwash/pkg/model"
	"carwash/pkg/pricing"
	"carwash/pkg/sanitizer"
)

// Validator checks a booking against the shared schema.
// validator.BookingValidator implements it.
type Validator interface {
	Validate(booking *model.Booking) error
}

type Form struct {
	CustomerName string
	CarMake      string
	CarModel     string
	CarYear      int
	CarType      string
	ServiceType  string
	// Date is YYYY-MM-DD.
	Date     string
	TimeSlot string
	Status   string
	Rating   *int
	AddOns   []string
}

// New returns a form with the defaults offered to a new booking.
func New() *Form {
	return &Form{
		CarYear:     model.Now().Year(),
		CarType:     model.CarSedan,
		ServiceType: model.ServiceBasicWash,
		TimeSlot:    "09:00",
		Status:      model.StatusPending,
		AddOns:      []string{},
	}
}

// FromBooking prefills the edit form.
func FromBooking(b *model.Booking) *Form {
	f := &Form{
		CustomerName: b.CustomerName,
		CarMake:      b.CarDetails.Make,
		CarModel:     b.CarDetails.Model,
		CarYear:      b.CarDetails.Year,
		CarType:      b.CarDetails.Type,
		ServiceType:  b.ServiceType,
		Date:         b.Date.Day(),
		TimeSlot:     b.TimeSlot,
		Status:       b.Status,
		AddOns:       slices.Clone(b.AddOns),
	}
	if b.Rating != nil {
		r := *b.Rating
		f.Rating = &r
	}
	if f.AddOns == nil {
		f.AddOns = []string{}
	}
	return f
}

// ToggleAddOn selects name if it is not selected and deselects it
// otherwise. The list never holds duplicates.
func (f *Form) ToggleAddOn(name string) {
	if i := slices.Index(f.AddOns, name); i >= 0 {
		f.AddOns = slices.Delete(slices.Clone(f.AddOns), i, i+1)
		return
	}
	f.AddOns = append(slices.Clone(f.AddOns), name)
}

func (f *Form) HasAddOn(name string) bool {
	return slices.Contains(f.AddOns, name)
}

// Quote is the live price and duration for the current selection.
func (f *Form) Quote() pricing.Quote {
	return pricing.For(f.ServiceType, sanitizer.UniqueAddOns(f.AddOns))
}

// Payload builds the normalized create request.
func (f *Form) Payload() (*model.Booking, error) {
	var date model.Date
	if f.Date != "" {
		d, err := model.ParseDate(f.Date)
		if err != nil {
			return nil, fmt.Errorf("date: %w", err)
		}
		date = d
	}

	status := f.Status
	if status == "" {
		status = model.StatusPending
	}

	b := &model.Booking{
		CustomerName: sanitizer.NormalizeName(f.CustomerName),
		CarDetails: model.CarDetails{
			Make:  sanitizer.TrimAndNormalize(f.CarMake),
			Model: sanitizer.TrimAndNormalize(f.CarModel),
			Year:  f.CarYear,
			Type:  sanitizer.NormalizeCarType(f.CarType),
		},
		ServiceType: f.ServiceType,
		Date:        date,
		TimeSlot:    sanitizer.NormalizeTimeSlot(f.TimeSlot),
		Status:      status,
		AddOns:      sanitizer.UniqueAddOns(f.AddOns),
	}
	if f.Rating != nil {
		r := *f.Rating
		b.Rating = &r
	}

	q := pricing.For(b.ServiceType, b.AddOns)
	b.Price = q.Price
	b.Duration = q.Duration
	return b, nil
}

// Validate checks the payload the form would submit.
func (f *Form) Validate(v Validator) error {
	b, err := f.Payload()
	if err != nil {
		return err
	}
	return v.Validate(b)
}

// Patch returns the fields that differ from original. A rating removed in
// the form is left untouched on the server. Add-ons are compared as sets.
func (f *Form) Patch(original *model.Booking) (*model.BookingUpdate, error) {
	next, err := f.Payload()
	if err != nil {
		return nil, err
	}

	patch := &model.BookingUpdate{}
	setIfChanged(&patch.CustomerName, original.CustomerName, next.CustomerName)
	setIfChanged(&patch.ServiceType, original.ServiceType, next.ServiceType)
	setIfChanged(&patch.TimeSlot, original.TimeSlot, next.TimeSlot)
	setIfChanged(&patch.Status, original.Status, next.Status)

	if next.Date.IsZero() {
		return nil, errors.New("date is required")
	}
	if next.Date.Day() != original.Date.Day() {
		patch.Date = &next.Date
	}
	if next.Rating != nil && (original.Rating == nil || *original.Rating != *next.Rating) {
		patch.Rating = next.Rating
	}
	if !sameSet(original.AddOns, next.AddOns) {
		addOns := next.AddOns
		patch.AddOns = &addOns
	}

	car := &model.CarDetailsUpdate{}
	setIfChanged(&car.Make, original.CarDetails.Make, next.CarDetails.Make)
	setIfChanged(&car.Model, original.CarDetails.Model, next.CarDetails.Model)
	setIfChanged(&car.Type, original.CarDetails.Type, next.CarDetails.Type)
	if next.CarDetails.Year != original.CarDetails.Year {
		year := next.CarDetails.Year
		car.Year = &year
	}
	if *car != (model.CarDetailsUpdate{}) {
		patch.CarDetails = car
	}

	return patch, nil
}

func setIfChanged(dst **string, old, next string) {
	if old != next {
		v := next
		*dst = &v
	}
}

func sameSet(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for _, x := range a {
		if !slices.Contains(b, x) {
			return false
		}
	}
	return true
}
