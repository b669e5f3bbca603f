package repository

import (
	"regexp"
	"strings"
	"time"

	"carwash/pkg/model"
	"carwash/pkg/pricing"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	fieldID           = "_id"
	fieldCustomerName = "customerName"
	fieldCarMake      = "carDetails.make"
	fieldCarModel     = "carDetails.model"
	fieldCarYear      = "carDetails.year"
	fieldCarType      = "carDetails.type"
	fieldServiceType  = "serviceType"
	fieldDate         = "date"
	fieldTimeSlot     = "timeSlot"
	fieldDuration     = "duration"
	fieldPrice        = "price"
	fieldStatus       = "status"
	fieldRating       = "rating"
	fieldAddOns       = "addOns"
	fieldCreatedAt    = "createdAt"
	fieldUpdatedAt    = "updatedAt"
)

// BuildListFilter translates list constraints into a store filter. Empty
// constraints are omitted; both date bounds share one range condition.
func BuildListFilter(f model.BookingFilter) bson.M {
	filter := bson.M{}

	if f.ServiceType != "" {
		filter[fieldServiceType] = f.ServiceType
	}
	if f.CarType != "" {
		filter[fieldCarType] = f.CarType
	}
	if f.Status != "" {
		filter[fieldStatus] = f.Status
	}

	if f.DateFrom != nil || f.DateTo != nil {
		dateRange := bson.M{}
		if f.DateFrom != nil {
			dateRange["$gte"] = f.DateFrom.UTC()
		}
		if f.DateTo != nil {
			dateRange["$lte"] = f.DateTo.UTC()
		}
		filter[fieldDate] = dateRange
	}

	return filter
}

// BuildSearchFilter matches q as a literal, case-insensitive substring of the
// customer name, car make or car model.
func BuildSearchFilter(q string) bson.M {
	pattern := primitive.Regex{Pattern: regexp.QuoteMeta(strings.TrimSpace(q)), Options: "i"}
	return bson.M{
		"$or": bson.A{
			bson.M{fieldCustomerName: pattern},
			bson.M{fieldCarMake: pattern},
			bson.M{fieldCarModel: pattern},
		},
	}
}

// BuildSort orders by an allow-listed field, falling back to createdAt. "asc"
// sorts ascending, anything else descending. _id breaks ties in the same
// direction so page boundaries are stable.
func BuildSort(sortBy, sortOrder string) bson.D {
	if !model.IsSortableField(sortBy) {
		sortBy = model.DefaultSortBy
	}
	dir := -1
	if sortOrder == model.SortAsc {
		dir = 1
	}
	return bson.D{
		{Key: sortBy, Value: dir},
		{Key: fieldID, Value: dir},
	}
}

// BuildUpdate produces the $set document for a partial update. Only present
// fields are written; nested car details are patched field by field. quote
// is non-nil when price and duration must be rewritten.
func BuildUpdate(patch *model.BookingUpdate, quote *pricing.Quote, now time.Time) bson.M {
	set := bson.M{fieldUpdatedAt: now}

	if patch != nil {
		if patch.CustomerName != nil {
			set[fieldCustomerName] = *patch.CustomerName
		}
		if cd := patch.CarDetails; cd != nil {
			if cd.Make != nil {
				set[fieldCarMake] = *cd.Make
			}
			if cd.Model != nil {
				set[fieldCarModel] = *cd.Model
			}
			if cd.Year != nil {
				set[fieldCarYear] = *cd.Year
			}
			if cd.Type != nil {
				set[fieldCarType] = *cd.Type
			}
		}
		if patch.ServiceType != nil {
			set[fieldServiceType] = *patch.ServiceType
		}
		if patch.Date != nil {
			set[fieldDate] = *patch.Date
		}
		if patch.TimeSlot != nil {
			set[fieldTimeSlot] = *patch.TimeSlot
		}
		if patch.Status != nil {
			set[fieldStatus] = *patch.Status
		}
		if patch.Rating != nil {
			set[fieldRating] = *patch.Rating
		}
		if patch.AddOns != nil {
			addOns := *patch.AddOns
			if addOns == nil {
				addOns = []string{}
			}
			set[fieldAddOns] = addOns
		}
	}

	if quote != nil {
		set[fieldPrice] = quote.Price
		set[fieldDuration] = quote.Duration
	}

	return bson.M{"$set": set}
}
