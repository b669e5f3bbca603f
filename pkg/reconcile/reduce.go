package reconcile

import (
	"slices"

	"carwash/pkg/model"
)

// Event is an input to Reduce.
type Event interface {
	isEvent()
}

// FilterChanged replaces the filters. Page is reset to 1.
type FilterChanged struct {
	Filters Filters
}

// SearchChanged sets the search query. An empty or blank query returns to
// filter mode.
type SearchChanged struct {
	Query string
}

type PageChanged struct {
	Page int
}

// FetchResolved carries the full result set for Key, or the error that ended
// the fetch.
type FetchResolved struct {
	Key      Key
	Bookings []*model.Booking
	Err      error
}

type SearchResolved struct {
	Query    string
	Bookings []*model.Booking
	Err      error
}

// BookingDeleted removes a booking that was deleted on the server.
type BookingDeleted struct {
	ID string
}

// Retry re-issues the request for the current mode.
type Retry struct{}

func (FilterChanged) isEvent()  {}
func (SearchChanged) isEvent()  {}
func (PageChanged) isEvent()    {}
func (FetchResolved) isEvent()  {}
func (SearchResolved) isEvent() {}
func (BookingDeleted) isEvent() {}
func (Retry) isEvent()          {}

type CommandKind int

const (
	CommandNone CommandKind = iota
	CommandFetchAll
	CommandSearch
)

// Command is the I/O Reduce asks the caller to perform.
type Command struct {
	Kind  CommandKind
	Key   Key
	Query string
}

var none = Command{Kind: CommandNone}

// Reduce applies ev to s. Responses that no longer match the state they
// arrive in are dropped.
func Reduce(s State, ev Event) (State, Command) {
	switch e := ev.(type) {
	case FilterChanged:
		f := e.Filters
		f.Page = 1
		if f.Limit < 1 {
			f.Limit = s.Filters.Limit
		}
		if f.Limit < 1 {
			f.Limit = DefaultLimit
		}
		s.Filters = f
		if s.Mode() == ModeSearch {
			return s, none
		}
		return resolveFilterMode(s, false)

	case SearchChanged:
		if !isActiveQuery(e.Query) {
			wasSearching := s.Mode() == ModeSearch
			s.SearchQuery = ""
			s.searchResults = nil
			s.searching = false
			s.pendingQuery = ""
			if wasSearching {
				s.Filters.Page = 1
			}
			return resolveFilterMode(s, false)
		}
		s.SearchQuery = e.Query
		s.searching = true
		s.pendingQuery = e.Query
		s.Loading = true
		s.Err = nil
		return s, Command{Kind: CommandSearch, Query: e.Query}

	case PageChanged:
		if e.Page < 1 {
			e.Page = 1
		}
		s.Filters.Page = e.Page
		if s.Mode() == ModeSearch {
			return s, none
		}
		return resolveFilterMode(s, false)

	case FetchResolved:
		if !s.fetching || e.Key != s.pendingKey {
			return s, none
		}
		s.fetching = false
		inFilterMode := s.Mode() == ModeFilter
		if inFilterMode {
			s.Loading = false
		}
		if e.Err != nil {
			if inFilterMode {
				s.Err = e.Err
			}
			return s, none
		}
		s.cache = e.Bookings
		s.cacheKey = e.Key
		s.cached = true
		if !inFilterMode || e.Key != s.Filters.Key() {
			return s, none
		}
		s.Err = nil
		return slicePage(s), none

	case SearchResolved:
		if !s.searching || e.Query != s.pendingQuery || e.Query != s.SearchQuery {
			return s, none
		}
		s.searching = false
		s.Loading = false
		if e.Err != nil {
			s.Err = e.Err
			return s, none
		}
		s.Err = nil
		s.searchResults = e.Bookings
		return showSearchResults(s), none

	case BookingDeleted:
		if s.Mode() == ModeSearch {
			s.searchResults = without(s.searchResults, e.ID)
			return showSearchResults(s), none
		}
		if !s.cached {
			s.Visible = without(s.Visible, e.ID)
			return resolveFilterMode(s, false)
		}
		s.cache = without(s.cache, e.ID)
		return slicePage(s), none

	case Retry:
		if s.Mode() == ModeSearch {
			s.searching = true
			s.pendingQuery = s.SearchQuery
			s.Loading = true
			s.Err = nil
			return s, Command{Kind: CommandSearch, Query: s.SearchQuery}
		}
		return resolveFilterMode(s, true)
	}

	return s, none
}

// resolveFilterMode re-slices the cache when it matches the current filter
// key and otherwise asks for a full fetch. A fetch already pending for the
// same key is not repeated unless force is set.
func resolveFilterMode(s State, force bool) (State, Command) {
	key := s.Filters.Key()
	if !force && s.cached && s.cacheKey == key {
		return slicePage(s), none
	}
	if !force && s.fetching && s.pendingKey == key {
		return s, none
	}

	s.cache = nil
	s.cached = false
	s.pendingKey = key
	s.fetching = true
	s.Loading = true
	s.Err = nil
	return s, Command{Kind: CommandFetchAll, Key: key}
}

// slicePage shows page Filters.Page of the cache, clamping it to the last
// page.
func slicePage(s State) State {
	total := len(s.cache)
	limit := s.Filters.Limit
	if limit < 1 {
		limit = DefaultLimit
		s.Filters.Limit = limit
	}

	pages := (total + limit - 1) / limit
	page := s.Filters.Page
	if page > pages {
		page = pages
	}
	if page < 1 {
		page = 1
	}
	s.Filters.Page = page

	start := min((page-1)*limit, total)
	end := min(start+limit, total)
	s.Visible = s.cache[start:end:end]
	s.Pagination = model.NewPagination(page, limit, int64(total))
	s.Stats = ComputeStats(s.cache)
	return s
}

func showSearchResults(s State) State {
	s.Visible = s.searchResults
	s.Pagination = model.Pagination{Current: 1, Pages: 1, Total: int64(len(s.searchResults))}
	s.Stats = ComputeStats(s.searchResults)
	return s
}

// without returns a copy of bookings minus the one with id.
func without(bookings []*model.Booking, id string) []*model.Booking {
	i := slices.IndexFunc(bookings, func(b *model.Booking) bool { return b.ID == id })
	if i < 0 {
		return bookings
	}
	out := make([]*model.Booking, 0, len(bookings)-1)
	out = append(out, bookings[:i]...)
	return append(out, bookings[i+1:]...)
}
