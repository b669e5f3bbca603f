package http

import (
	"net/http"
	"net/url"
	"strconv"
	"time"

	apperrors "carwash/pkg/errors"
	"carwash/pkg/model"
)

// ExtractListQuery reads list parameters from the query string. Malformed
// page and limit values are treated as absent so the service falls back to
// its defaults; malformed dates are rejected.
func ExtractListQuery(r *http.Request) (model.ListQuery, error) {
	query := r.URL.Query()

	q := model.ListQuery{
		Filter: model.BookingFilter{
			ServiceType: query.Get("serviceType"),
			CarType:     query.Get("carType"),
			Status:      query.Get("status"),
		},
		Page:      positiveInt(query.Get("page")),
		Limit:     positiveInt(query.Get("limit")),
		SortBy:    query.Get("sortBy"),
		SortOrder: query.Get("sortOrder"),
	}

	var err error
	if q.Filter.DateFrom, err = optionalDate(query, "dateFrom"); err != nil {
		return model.ListQuery{}, err
	}
	if q.Filter.DateTo, err = optionalDate(query, "dateTo"); err != nil {
		return model.ListQuery{}, err
	}

	return q, nil
}

func positiveInt(s string) int {
	v, err := strconv.Atoi(s)
	if err != nil || v < 1 {
		return 0
	}
	return v
}

func optionalDate(query url.Values, key string) (*time.Time, error) {
	s := query.Get(key)
	if s == "" {
		return nil, nil
	}
	d, err := model.ParseDate(s)
	if err != nil {
		return nil, apperrors.InvalidInput("invalid " + key + " parameter: " + s)
	}
	return &d.Time, nil
}
