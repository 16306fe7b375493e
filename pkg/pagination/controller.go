package pagination

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/rs/zerolog"

	"github.com/Sternrassler/pokedex/pkg/logging"
	"github.com/Sternrassler/pokedex/pkg/pokemon"
)

// Pagination constants, fixed at build time.
const (
	// DefaultPageSize is the number of records requested per page.
	DefaultPageSize = 10

	// MaxRecords is the ceiling on loaded records: the original 151.
	MaxRecords = 151
)

var (
	// ErrExhausted is returned once the terminal page has been issued.
	ErrExhausted = errors.New("pagination exhausted")

	// ErrLoadInProgress is returned when Advance is triggered while the
	// previous page is still loading.
	ErrLoadInProgress = errors.New("page load already in progress")
)

// PageState is the position of a Controller.
type PageState struct {
	// Offset is the index of the next record to request.
	Offset int `json:"offset"`

	// PageSize is the number of records per non-terminal page.
	PageSize int `json:"page_size"`

	// TotalAvailable is the fixed upper bound of records.
	TotalAvailable int `json:"total_available"`
}

// Request is one planned page request.
type Request struct {
	Offset   int  `json:"offset"`
	Limit    int  `json:"limit"`
	Terminal bool `json:"terminal"`
}

// Plan computes the request for the page starting at state.Offset.
//
// When the page reaches the ceiling it is terminal and its limit is clamped
// to TotalAvailable-Offset. A clamped limit of zero or less yields
// ErrExhausted rather than an empty or negative request.
func Plan(state PageState) (Request, error) {
	if state.PageSize <= 0 {
		return Request{}, fmt.Errorf("page size must be > 0 (got %d)", state.PageSize)
	}
	if state.Offset < 0 {
		return Request{}, fmt.Errorf("offset must be >= 0 (got %d)", state.Offset)
	}

	if state.Offset+state.PageSize >= state.TotalAvailable {
		limit := state.TotalAvailable - state.Offset
		if limit <= 0 {
			return Request{}, ErrExhausted
		}
		return Request{Offset: state.Offset, Limit: limit, Terminal: true}, nil
	}

	return Request{Offset: state.Offset, Limit: state.PageSize}, nil
}

// PageLoader resolves one page of records.
type PageLoader interface {
	LoadPage(ctx context.Context, offset, limit int) ([]pokemon.Pokemon, error)
}

// Page is the outcome of one Advance.
type Page struct {
	Request
	Records []pokemon.Pokemon `json:"records"`
}

// Config holds controller configuration.
type Config struct {
	PageSize       int
	TotalAvailable int
}

// DefaultConfig returns the build-time pagination constants.
func DefaultConfig() Config {
	return Config{
		PageSize:       DefaultPageSize,
		TotalAvailable: MaxRecords,
	}
}

// Controller drives incremental loading. It is created once, starts at
// offset 0 and only moves forward. Safe for concurrent use; overlapping
// triggers are rejected with ErrLoadInProgress.
type Controller struct {
	mu        sync.Mutex
	state     PageState
	exhausted bool
	inFlight  bool

	loader PageLoader
	logger zerolog.Logger
}

// NewController creates a controller at offset 0.
func NewController(loader PageLoader, cfg Config) (*Controller, error) {
	if loader == nil {
		return nil, fmt.Errorf("page loader is required")
	}
	if cfg.PageSize <= 0 {
		return nil, fmt.Errorf("page_size must be > 0 (got %d)", cfg.PageSize)
	}
	if cfg.TotalAvailable < 0 {
		return nil, fmt.Errorf("total_available must be >= 0 (got %d)", cfg.TotalAvailable)
	}

	return &Controller{
		state: PageState{
			PageSize:       cfg.PageSize,
			TotalAvailable: cfg.TotalAvailable,
		},
		loader: loader,
		logger: logging.NewLogger("pagination-controller"),
	}, nil
}

// Advance requests the next page.
//
// The state moves forward when the request is issued, not when it
// completes: a failed page is not requested again. After the terminal page
// every call returns ErrExhausted without touching the network.
func (c *Controller) Advance(ctx context.Context) (Page, error) {
	req, err := c.begin()
	if err != nil {
		return Page{}, err
	}
	defer c.finish()

	logger := logging.WithPage(c.logger, req.Offset, req.Limit)
	logEvent := logger.Debug()
	if req.Terminal {
		logEvent = logger.Info()
	}
	logEvent.
		Bool("terminal", req.Terminal).
		Msg("Advancing page")

	records, err := c.loader.LoadPage(ctx, req.Offset, req.Limit)
	if err != nil {
		logger.Error().
			Err(err).
			Msg("Page load failed")
		return Page{Request: req}, fmt.Errorf("load page at offset %d: %w", req.Offset, err)
	}

	return Page{Request: req, Records: records}, nil
}

// begin plans the next request and commits the state change.
func (c *Controller) begin() (Request, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.exhausted {
		return Request{}, ErrExhausted
	}
	if c.inFlight {
		return Request{}, ErrLoadInProgress
	}

	req, err := Plan(c.state)
	if err != nil {
		if errors.Is(err, ErrExhausted) {
			c.exhausted = true
		}
		return Request{}, err
	}

	c.state.Offset += req.Limit
	if req.Terminal {
		c.exhausted = true
	}
	c.inFlight = true

	return req, nil
}

func (c *Controller) finish() {
	c.mu.Lock()
	c.inFlight = false
	c.mu.Unlock()
}

// State returns the current page state.
func (c *Controller) State() PageState {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Exhausted reports whether no further Advance is permitted. Consumers use
// it to drop their "load more" affordance.
func (c *Controller) Exhausted() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.exhausted
}

// Loading reports whether a page is in flight.
func (c *Controller) Loading() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.inFlight
}
