package reconcile

import (
	"context"
	"errors"
	"sync"
	"time"

	"carwash/pkg/logger"
	"carwash/pkg/model"
)

const DefaultDebounce = 300 * time.Millisecond

// Backend is the subset of the bookings API the controller talks to.
// client.BookingClient implements it.
type Backend interface {
	List(ctx context.Context, query model.ListQuery) (*model.BookingPage, error)
	Search(ctx context.Context, q string) ([]*model.Booking, error)
	Delete(ctx context.Context, id string) error
}

type Option func(*Controller)

func WithDebounce(d time.Duration) Option {
	return func(c *Controller) { c.debounce = d }
}

func WithBatchSize(n int) Option {
	return func(c *Controller) { c.batchSize = n }
}

func WithMaxBatches(n int) Option {
	return func(c *Controller) { c.maxBatches = n }
}

func WithLogger(log *logger.Logger) Option {
	return func(c *Controller) { c.log = log.Component("reconcile") }
}

// WithOnChange registers fn to receive every new state. fn runs with the
// controller locked and must not call back into it.
func WithOnChange(fn func(State)) Option {
	return func(c *Controller) { c.onChange = fn }
}

// Controller feeds user input and API responses through Reduce and runs the
// resulting commands. Responses are applied to the state current when they
// arrive, so the last response for the current filters or query wins.
type Controller struct {
	backend    Backend
	debounce   time.Duration
	batchSize  int
	maxBatches int
	log        *logger.Logger
	onChange   func(State)

	mu           sync.Mutex
	state        State
	closed       bool
	ctx          context.Context
	cancel       context.CancelFunc
	searchTimer  *time.Timer
	searchGen    uint64
	cancelSearch context.CancelFunc
	cancelFetch  context.CancelFunc
	wg           sync.WaitGroup
}

func NewController(backend Backend, filters Filters, opts ...Option) *Controller {
	ctx, cancel := context.WithCancel(context.Background())
	c := &Controller{
		backend:    backend,
		debounce:   DefaultDebounce,
		batchSize:  BatchSize,
		maxBatches: MaxBatches,
		state:      NewState(filters),
		ctx:        ctx,
		cancel:     cancel,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Load issues the initial request for the current mode.
func (c *Controller) Load() {
	c.dispatch(Retry{})
}

func (c *Controller) Retry() {
	c.dispatch(Retry{})
}

func (c *Controller) SetFilters(f Filters) {
	c.dispatch(FilterChanged{Filters: f})
}

func (c *Controller) SetPage(page int) {
	c.dispatch(PageChanged{Page: page})
}

// SetSearch records a keystroke. The query is applied once input has been
// quiet for the debounce period; any in-flight search is cancelled at once.
func (c *Controller) SetSearch(q string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return
	}

	c.stopSearchLocked()
	if c.debounce <= 0 {
		c.applyLocked(SearchChanged{Query: q})
		return
	}

	gen := c.searchGen
	c.wg.Add(1)
	c.searchTimer = time.AfterFunc(c.debounce, func() {
		defer c.wg.Done()
		c.mu.Lock()
		defer c.mu.Unlock()
		if c.closed || gen != c.searchGen {
			return
		}
		c.searchTimer = nil
		c.applyLocked(SearchChanged{Query: q})
	})
}

// Delete removes a booking on the server and then from the local view.
func (c *Controller) Delete(ctx context.Context, id string) error {
	if err := c.backend.Delete(ctx, id); err != nil {
		return err
	}
	c.dispatch(BookingDeleted{ID: id})
	return nil
}

// Wait blocks until no debounce timer or request is outstanding.
func (c *Controller) Wait() {
	c.wg.Wait()
}

// Close cancels outstanding work and waits for it to finish.
func (c *Controller) Close() {
	c.mu.Lock()
	c.closed = true
	c.stopSearchLocked()
	c.cancel()
	c.mu.Unlock()
	c.wg.Wait()
}

func (c *Controller) dispatch(ev Event) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return
	}
	c.applyLocked(ev)
}

func (c *Controller) applyLocked(ev Event) {
	var cmd Command
	c.state, cmd = Reduce(c.state, ev)
	if c.onChange != nil {
		c.onChange(c.state)
	}

	switch cmd.Kind {
	case CommandFetchAll:
		c.startFetchLocked(cmd.Key)
	case CommandSearch:
		c.startSearchLocked(cmd.Query)
	}
}

func (c *Controller) stopSearchLocked() {
	c.searchGen++
	if c.searchTimer != nil && c.searchTimer.Stop() {
		c.wg.Done()
	}
	c.searchTimer = nil
	if c.cancelSearch != nil {
		c.cancelSearch()
		c.cancelSearch = nil
	}
}

func (c *Controller) startFetchLocked(key Key) {
	if c.cancelFetch != nil {
		c.cancelFetch()
	}
	ctx, cancel := context.WithCancel(c.ctx)
	c.cancelFetch = cancel

	c.wg.Add(1)
	go func() {
		defer c.wg.Done()
		defer cancel()

		bookings, err := c.fetchAll(ctx, key)
		if errors.Is(err, context.Canceled) && ctx.Err() != nil {
			return
		}
		c.dispatch(FetchResolved{Key: key, Bookings: bookings, Err: err})
	}()
}

func (c *Controller) startSearchLocked(q string) {
	if c.cancelSearch != nil {
		c.cancelSearch()
	}
	ctx, cancel := context.WithCancel(c.ctx)
	c.cancelSearch = cancel

	c.wg.Add(1)
	go func() {
		defer c.wg.Done()
		defer cancel()

		bookings, err := c.backend.Search(ctx, q)
		if errors.Is(err, context.Canceled) && ctx.Err() != nil {
			return
		}
		c.dispatch(SearchResolved{Query: q, Bookings: bookings, Err: err})
	}()
}

// fetchAll pages through the list endpoint until it reports no next page or
// the batch cap is reached.
func (c *Controller) fetchAll(ctx context.Context, key Key) ([]*model.Booking, error) {
	var all []*model.Booking
	for page := 1; page <= c.maxBatches; page++ {
		query, err := key.Query(page, c.batchSize)
		if err != nil {
			return nil, err
		}

		result, err := c.backend.List(ctx, query)
		if err != nil {
			return nil, err
		}
		all = append(all, result.Bookings...)

		if !result.Pagination.HasNext || len(result.Bookings) == 0 {
			return all, nil
		}
	}

	if c.log != nil {
		c.log.Warn("Stopped fetching bookings at batch cap", "batches", c.maxBatches, "fetched", len(all))
	}
	return all, nil
}
