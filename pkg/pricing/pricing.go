// Package pricing derives a booking's price and duration from its service
// type and add-ons. It is shared by the API and the client form.
package pricing

import "carwash/pkg/model"

// AddOnMinutes is added to the duration for every add-on, whatever its name.
const AddOnMinutes = 15

type service struct {
	price   float64
	minutes int
}

var services = map[string]service{
	model.ServiceBasicWash:     {price: 25, minutes: 45},
	model.ServiceDeluxeWash:    {price: 50, minutes: 90},
	model.ServiceFullDetailing: {price: 100, minutes: 180},
}

var addOnPrices = map[string]float64{
	model.AddOnInteriorCleaning: 20,
	model.AddOnPolishing:        30,
	model.AddOnWaxProtection:    25,
	model.AddOnTireShine:        10,
	model.AddOnAirFreshener:     5,
}

type Quote struct {
	Price    float64 `json:"price"`
	Duration int     `json:"duration"`
}

// Price sums the base service price and every add-on price. Unknown names
// contribute nothing.
func Price(serviceType string, addOns []string) float64 {
	total := services[serviceType].price
	for _, a := range addOns {
		total += addOnPrices[a]
	}
	return total
}

// Duration is the base service duration plus AddOnMinutes per add-on.
func Duration(serviceType string, addOns []string) int {
	return services[serviceType].minutes + AddOnMinutes*len(addOns)
}

func For(serviceType string, addOns []string) Quote {
	return Quote{
		Price:    Price(serviceType, addOns),
		Duration: Duration(serviceType, addOns),
	}
}

// BasePrice returns the price of the service alone and whether it is known.
func BasePrice(serviceType string) (float64, bool) {
	s, ok := services[serviceType]
	return s.price, ok
}

// AddOnPrice returns the price of a single add-on and whether it is known.
func AddOnPrice(name string) (float64, bool) {
	p, ok := addOnPrices[name]
	return p, ok
}
