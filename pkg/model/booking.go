package model

import (
	"time"
)

// Now is the clock used for timestamps and the car year bound.
var Now = func() time.Time {
	return time.Now().UTC()
}

type CarDetails struct {
	Make  string `json:"make" bson:"make" validate:"required,max=50"`
	Model string `json:"model" bson:"model" validate:"required,max=50"`
	Year  int    `json:"year" bson:"year" validate:"required,car_year"`
	Type  string `json:"type" bson:"type" validate:"required,car_type"`
}

type Booking struct {
	ID           string     `json:"id,omitempty" bson:"_id,omitempty" validate:"omitempty,mongodb"`
	CustomerName string     `json:"customerName" bson:"customerName" validate:"required,max=100"`
	CarDetails   CarDetails `json:"carDetails" bson:"carDetails"`
	ServiceType  string     `json:"serviceType" bson:"serviceType" validate:"required,service_type"`
	Date         Date       `json:"date" bson:"date" validate:"required"`
	TimeSlot     string     `json:"timeSlot" bson:"timeSlot" validate:"required,time_slot"`
	Duration     int        `json:"duration" bson:"duration"`
	Price        float64    `json:"price" bson:"price"`
	Status       string     `json:"status" bson:"status" validate:"required,booking_status"`
	Rating       *int       `json:"rating" bson:"rating" validate:"omitempty,min=1,max=5"`
	AddOns       []string   `json:"addOns" bson:"addOns" validate:"omitempty,dive,add_on"`
	CreatedAt    time.Time  `json:"createdAt" bson:"createdAt"`
	UpdatedAt    time.Time  `json:"updatedAt" bson:"updatedAt"`
}

type CarDetailsUpdate struct {
	Make  *string `json:"make,omitempty" validate:"omitempty,min=1,max=50"`
	Model *string `json:"model,omitempty" validate:"omitempty,min=1,max=50"`
	Year  *int    `json:"year,omitempty" validate:"omitempty,car_year"`
	Type  *string `json:"type,omitempty" validate:"omitempty,car_type"`
}

// BookingUpdate is a partial patch. Nil fields are left untouched; price and
// duration are never accepted from the client.
type BookingUpdate struct {
	CustomerName *string           `json:"customerName,omitempty" validate:"omitempty,min=1,max=100"`
	CarDetails   *CarDetailsUpdate `json:"carDetails,omitempty" validate:"omitempty"`
	ServiceType  *string           `json:"serviceType,omitempty" validate:"omitempty,service_type"`
	Date         *Date             `json:"date,omitempty" validate:"omitempty,calendar_date"`
	TimeSlot     *string           `json:"timeSlot,omitempty" validate:"omitempty,time_slot"`
	Status       *string           `json:"status,omitempty" validate:"omitempty,booking_status"`
	Rating       *int              `json:"rating,omitempty" validate:"omitempty,min=1,max=5"`
	AddOns       *[]string         `json:"addOns,omitempty" validate:"omitempty,dive,add_on"`
}

// IsEmpty reports whether the patch carries no fields at all.
func (u *BookingUpdate) IsEmpty() bool {
	if u == nil {
		return true
	}
	return u.CustomerName == nil && u.CarDetails == nil && u.ServiceType == nil &&
		u.Date == nil && u.TimeSlot == nil && u.Status == nil && u.Rating == nil && u.AddOns == nil
}

// TouchesPricing reports whether the patch changes an input of the price or
// duration derivation.
func (u *BookingUpdate) TouchesPricing() bool {
	return u != nil && (u.ServiceType != nil || u.AddOns != nil)
}
