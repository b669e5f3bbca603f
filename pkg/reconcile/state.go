// Package reconcile keeps a client's booking list consistent across filter,
// search and page changes.
//
// In filter mode the full matching set is fetched once per distinct filter
// key and cached; page changes re-slice the cache without network I/O. In
// search mode the search endpoint's results are shown as one unpaged page.
// All transitions go through Reduce, which is pure; Controller runs the
// commands it returns.
package reconcile

import (
	"fmt"
	"strings"

	"carwash/pkg/model"
)

const (
	DefaultLimit = 9
	// BatchSize is the page size used while paging through the list
	// endpoint to build the cache.
	BatchSize = 100
	// MaxBatches bounds a single full fetch.
	MaxBatches = 50
)

// Filters is the filter-mode request. DateFrom and DateTo are YYYY-MM-DD or
// empty.
type Filters struct {
	ServiceType string
	CarType     string
	Status      string
	DateFrom    string
	DateTo      string
	SortBy      string
	SortOrder   string
	Page        int
	Limit       int
}

func DefaultFilters() Filters {
	return Filters{
		SortBy:    model.DefaultSortBy,
		SortOrder: model.DefaultSortOrder,
		Page:      1,
		Limit:     DefaultLimit,
	}
}

// Key identifies the result set a Filters value selects: every field except
// Page and Limit.
type Key struct {
	ServiceType string
	CarType     string
	Status      string
	DateFrom    string
	DateTo      string
	SortBy      string
	SortOrder   string
}

func (f Filters) Key() Key {
	return Key{
		ServiceType: f.ServiceType,
		CarType:     f.CarType,
		Status:      f.Status,
		DateFrom:    f.DateFrom,
		DateTo:      f.DateTo,
		SortBy:      f.SortBy,
		SortOrder:   f.SortOrder,
	}
}

// Query builds the list request for one batch of the key's result set.
func (k Key) Query(page, limit int) (model.ListQuery, error) {
	q := model.ListQuery{
		Filter: model.BookingFilter{
			ServiceType: k.ServiceType,
			CarType:     k.CarType,
			Status:      k.Status,
		},
		Page:      page,
		Limit:     limit,
		SortBy:    k.SortBy,
		SortOrder: k.SortOrder,
	}
	if k.DateFrom != "" {
		d, err := model.ParseDate(k.DateFrom)
		if err != nil {
			return model.ListQuery{}, fmt.Errorf("dateFrom: %w", err)
		}
		q.Filter.DateFrom = &d.Time
	}
	if k.DateTo != "" {
		d, err := model.ParseDate(k.DateTo)
		if err != nil {
			return model.ListQuery{}, fmt.Errorf("dateTo: %w", err)
		}
		q.Filter.DateTo = &d.Time
	}
	return q, nil
}

type Mode int

const (
	ModeFilter Mode = iota
	ModeSearch
)

func (m Mode) String() string {
	if m == ModeSearch {
		return "search"
	}
	return "filter"
}

// State is an immutable snapshot. Reduce never modifies the slices it holds;
// callers must not either.
type State struct {
	Filters     Filters
	SearchQuery string

	// Visible is the page currently displayed.
	Visible    []*model.Booking
	Pagination model.Pagination
	Stats      Stats

	Loading bool
	Err     error

	cache    []*model.Booking
	cacheKey Key
	cached   bool

	searchResults []*model.Booking

	pendingKey   Key
	fetching     bool
	pendingQuery string
	searching    bool
}

func NewState(filters Filters) State {
	if filters.Page < 1 {
		filters.Page = 1
	}
	if filters.Limit < 1 {
		filters.Limit = DefaultLimit
	}
	return State{Filters: filters}
}

func (s State) Mode() Mode {
	if isActiveQuery(s.SearchQuery) {
		return ModeSearch
	}
	return ModeFilter
}

// Cached reports the key of the cached result set, if any.
func (s State) Cached() (Key, bool) {
	return s.cacheKey, s.cached
}

// CachedLen is the size of the cached result set.
func (s State) CachedLen() int {
	return len(s.cache)
}

func isActiveQuery(q string) bool {
	return strings.TrimSpace(q) != ""
}
