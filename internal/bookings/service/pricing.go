package service

import (
	"carwash/pkg/model"
	"carwash/pkg/pricing"
)

// PlanRecompute returns the quote to store alongside patch, or nil when the
// patch leaves both pricing inputs untouched. Fields the patch omits are
// taken from existing.
func PlanRecompute(existing *model.Booking, patch *model.BookingUpdate) *pricing.Quote {
	if !patch.TouchesPricing() {
		return nil
	}

	serviceType := existing.ServiceType
	if patch.ServiceType != nil {
		serviceType = *patch.ServiceType
	}
	addOns := existing.AddOns
	if patch.AddOns != nil {
		addOns = *patch.AddOns
	}

	quote := pricing.For(serviceType, addOns)
	return &quote
}
