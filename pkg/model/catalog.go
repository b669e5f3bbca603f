package model

import "slices"

const (
	ServiceBasicWash     = "Basic Wash"
	ServiceDeluxeWash    = "Deluxe Wash"
	ServiceFullDetailing = "Full Detailing"
)

const (
	CarSedan       = "sedan"
	CarSUV         = "suv"
	CarHatchback   = "hatchback"
	CarLuxury      = "luxury"
	CarPickup      = "pickup"
	CarConvertible = "convertible"
)

const (
	StatusPending   = "Pending"
	StatusConfirmed = "Confirmed"
	StatusCompleted = "Completed"
	StatusCancelled = "Cancelled"
)

const (
	AddOnInteriorCleaning = "Interior Cleaning"
	AddOnPolishing        = "Polishing"
	AddOnWaxProtection    = "Wax Protection"
	AddOnTireShine        = "Tire Shine"
	AddOnAirFreshener     = "Air Freshener"
)

const (
	MinCarYear         = 1900
	MaxCustomerNameLen = 100
	MinRating          = 1
	MaxRating          = 5
	MinDuration        = 30
)

// The enumerations below are shared by request validation, the collection
// schema, the pricing table and the client form.
var (
	ServiceTypes = []string{ServiceBasicWash, ServiceDeluxeWash, ServiceFullDetailing}
	CarTypes     = []string{CarSedan, CarSUV, CarHatchback, CarLuxury, CarPickup, CarConvertible}
	Statuses     = []string{StatusPending, StatusConfirmed, StatusCompleted, StatusCancelled}
	AddOns       = []string{
		AddOnInteriorCleaning,
		AddOnPolishing,
		AddOnWaxProtection,
		AddOnTireShine,
		AddOnAirFreshener,
	}
	TimeSlots = []string{
		"08:00", "09:00", "10:00", "11:00", "12:00",
		"13:00", "14:00", "15:00", "16:00", "17:00",
	}
)

func IsServiceType(s string) bool { return slices.Contains(ServiceTypes, s) }
func IsCarType(s string) bool     { return slices.Contains(CarTypes, s) }
func IsStatus(s string) bool      { return slices.Contains(Statuses, s) }
func IsAddOn(s string) bool       { return slices.Contains(AddOns, s) }
func IsTimeSlot(s string) bool    { return slices.Contains(TimeSlots, s) }

// MaxCarYear is evaluated against the clock on every call.
func MaxCarYear() int {
	return Now().Year() + 1
}
