package model

import (
	"slices"
	"time"
)

const (
	SortAsc  = "asc"
	SortDesc = "desc"

	DefaultSortBy    = "createdAt"
	DefaultSortOrder = SortDesc
)

// SortableFields lists the booking fields a list request may order by.
var SortableFields = []string{
	"createdAt", "updatedAt", "date", "timeSlot", "price", "duration",
	"customerName", "serviceType", "status", "rating",
}

func IsSortableField(s string) bool { return slices.Contains(SortableFields, s) }

// SortOption is one entry of the sort menu offered to clients.
type SortOption struct {
	Key       string
	Label     string
	SortBy    string
	SortOrder string
}

var SortOptions = []SortOption{
	{Key: "newest", Label: "Newest first", SortBy: "createdAt", SortOrder: SortDesc},
	{Key: "oldest", Label: "Oldest first", SortBy: "createdAt", SortOrder: SortAsc},
	{Key: "price-asc", Label: "Price: low to high", SortBy: "price", SortOrder: SortAsc},
	{Key: "price-desc", Label: "Price: high to low", SortBy: "price", SortOrder: SortDesc},
	{Key: "date-asc", Label: "Date: earliest first", SortBy: "date", SortOrder: SortAsc},
	{Key: "date-desc", Label: "Date: latest first", SortBy: "date", SortOrder: SortDesc},
}

// FindSortOption looks up a menu entry by key.
func FindSortOption(key string) (SortOption, bool) {
	for _, o := range SortOptions {
		if o.Key == key {
			return o, true
		}
	}
	return SortOption{}, false
}

// SortOptionKeys lists the menu keys in display order.
func SortOptionKeys() []string {
	keys := make([]string, 0, len(SortOptions))
	for _, o := range SortOptions {
		keys = append(keys, o.Key)
	}
	return keys
}

// BookingFilter holds the optional list constraints. Empty strings and nil
// bounds mean "no constraint".
type BookingFilter struct {
	ServiceType string
	CarType     string
	Status      string
	DateFrom    *time.Time
	DateTo      *time.Time
}

// ListQuery is a fully normalized list request.
type ListQuery struct {
	Filter    BookingFilter
	Page      int
	Limit     int
	SortBy    string
	SortOrder string
}

func (q ListQuery) Skip() int64 {
	if q.Page < 1 {
		return 0
	}
	return int64(q.Page-1) * int64(q.Limit)
}

type Pagination struct {
	Current int   `json:"current"`
	Pages   int   `json:"pages"`
	Total   int64 `json:"total"`
	HasNext bool  `json:"hasNext"`
	HasPrev bool  `json:"hasPrev"`
}

// NewPagination derives page metadata for a page of size limit over total
// records.
func NewPagination(current, limit int, total int64) Pagination {
	pages := 0
	if limit > 0 {
		pages = int((total + int64(limit) - 1) / int64(limit))
	}
	return Pagination{
		Current: current,
		Pages:   pages,
		Total:   total,
		HasNext: current < pages,
		HasPrev: current > 1,
	}
}

type BookingPage struct {
	Bookings   []*Booking
	Pagination Pagination
}
