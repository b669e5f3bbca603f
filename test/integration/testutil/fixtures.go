package testutil

import (
	"carwash/pkg/model"
)

type BookingBuilder struct {
	b model.Booking
}

func NewBookingBuilder() *BookingBuilder {
	return &BookingBuilder{
		b: model.Booking{
			CustomerName: "John Doe",
			CarDetails:   model.CarDetails{Make: "Toyota", Model: "Camry", Year: 2022, Type: model.CarSedan},
			ServiceType:  model.ServiceBasicWash,
			Date:         model.MustParseDate("2025-09-25"),
			TimeSlot:     "10:00",
			AddOns:       []string{},
		},
	}
}

func (b *BookingBuilder) WithCustomer(name string) *BookingBuilder {
	b.b.CustomerName = name
	return b
}

func (b *BookingBuilder) WithCar(carMake, carModel string) *BookingBuilder {
	b.b.CarDetails.Make = carMake
	b.b.CarDetails.Model = carModel
	return b
}

func (b *BookingBuilder) WithCarType(carType string) *BookingBuilder {
	b.b.CarDetails.Type = carType
	return b
}

func (b *BookingBuilder) WithService(serviceType string, addOns ...string) *BookingBuilder {
	b.b.ServiceType = serviceType
	b.b.AddOns = addOns
	return b
}

func (b *BookingBuilder) WithSlot(date, slot string) *BookingBuilder {
	b.b.Date = model.MustParseDate(date)
	b.b.TimeSlot = slot
	return b
}

func (b *BookingBuilder) WithStatus(status string) *BookingBuilder {
	b.b.Status = status
	return b
}

func (b *BookingBuilder) BuildPtr() *model.Booking {
	out := b.b
	out.AddOns = append([]string(nil), b.b.AddOns...)
	return &out
}

func ValidBooking() *model.Booking {
	return NewBookingBuilder().BuildPtr()
}

// InvalidBooking breaks the slot and year rules at once.
func InvalidBooking() *model.Booking {
	b := NewBookingBuilder().WithSlot("2025-09-25", "19:00").BuildPtr()
	b.CarDetails.Year = 1800
	return b
}
