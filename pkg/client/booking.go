package client

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strconv"

	"carwash/pkg/model"
)

const BookingsPath = "/api/bookings"

type BookingClient struct {
	httpClient *HttpClient
}

func NewBookingClient(baseUrl string) *BookingClient {
	return &BookingClient{
		httpClient: NewHttpClient(baseUrl),
	}
}

// NewBookingClientWith reuses an already configured HttpClient.
func NewBookingClientWith(httpClient *HttpClient) *BookingClient {
	return &BookingClient{httpClient: httpClient}
}

func (c *BookingClient) HTTP() *HttpClient {
	return c.httpClient
}

type envelope struct {
	Success    bool             `json:"success"`
	Message    string           `json:"message"`
	Data       json.RawMessage  `json:"data"`
	Pagination model.Pagination `json:"pagination"`
}

func (c *BookingClient) List(ctx context.Context, query model.ListQuery) (*model.BookingPage, error) {
	path := BookingsPath
	if encoded := EncodeListQuery(query).Encode(); encoded != "" {
		path += "?" + encoded
	}

	env, err := c.do(c.httpClient.GET(ctx, path))
	if err != nil {
		return nil, err
	}

	var bookings []*model.Booking
	if err := decodeData(env, &bookings); err != nil {
		return nil, err
	}
	return &model.BookingPage{Bookings: bookings, Pagination: env.Pagination}, nil
}

func (c *BookingClient) Search(ctx context.Context, q string) ([]*model.Booking, error) {
	env, err := c.do(c.httpClient.GET(ctx, BookingsPath+"/search?"+url.Values{"q": {q}}.Encode()))
	if err != nil {
		return nil, err
	}

	var bookings []*model.Booking
	if err := decodeData(env, &bookings); err != nil {
		return nil, err
	}
	return bookings, nil
}

func (c *BookingClient) Get(ctx context.Context, id string) (*model.Booking, error) {
	env, err := c.do(c.httpClient.GET(ctx, bookingPath(id)))
	if err != nil {
		return nil, err
	}
	return decodeBooking(env)
}

func (c *BookingClient) Create(ctx context.Context, booking *model.Booking) (*model.Booking, error) {
	env, err := c.do(c.httpClient.POST(ctx, BookingsPath, booking))
	if err != nil {
		return nil, err
	}
	return decodeBooking(env)
}

func (c *BookingClient) Update(ctx context.Context, id string, patch *model.BookingUpdate) (*model.Booking, error) {
	env, err := c.do(c.httpClient.PUT(ctx, bookingPath(id), patch))
	if err != nil {
		return nil, err
	}
	return decodeBooking(env)
}

func (c *BookingClient) Delete(ctx context.Context, id string) error {
	_, err := c.do(c.httpClient.DELETE(ctx, bookingPath(id)))
	return err
}

func (c *BookingClient) do(resp *Response, err error) (*envelope, error) {
	if err != nil {
		return nil, err
	}
	if !resp.OK() {
		return nil, GetAPIError(resp)
	}

	var env envelope
	if err := resp.DecodeJSON(&env); err != nil {
		return nil, fmt.Errorf("could not decode response envelope: %s: %w", resp, err)
	}
	return &env, nil
}

func decodeData(env *envelope, target any) error {
	if len(env.Data) == 0 {
		return nil
	}
	if err := json.Unmarshal(env.Data, target); err != nil {
		return fmt.Errorf("could not decode response data: %w", err)
	}
	return nil
}

func decodeBooking(env *envelope) (*model.Booking, error) {
	var booking model.Booking
	if err := decodeData(env, &booking); err != nil {
		return nil, err
	}
	return &booking, nil
}

func bookingPath(id string) string {
	return BookingsPath + "/" + url.PathEscape(id)
}

// EncodeListQuery renders the non-zero parts of q as list query parameters.
func EncodeListQuery(q model.ListQuery) url.Values {
	v := url.Values{}
	set := func(key, value string) {
		if value != "" {
			v.Set(key, value)
		}
	}

	set("serviceType", q.Filter.ServiceType)
	set("carType", q.Filter.CarType)
	set("status", q.Filter.Status)
	if q.Filter.DateFrom != nil {
		set("dateFrom", q.Filter.DateFrom.UTC().Format(model.DateLayout))
	}
	if q.Filter.DateTo != nil {
		set("dateTo", q.Filter.DateTo.UTC().Format(model.DateLayout))
	}
	if q.Page > 0 {
		set("page", strconv.Itoa(q.Page))
	}
	if q.Limit > 0 {
		set("limit", strconv.Itoa(q.Limit))
	}
	set("sortBy", q.SortBy)
	set("sortOrder", q.SortOrder)
	return v
}
