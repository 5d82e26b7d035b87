package client

import (
	"context"
	"log/slog"
	"time"

	"trznica/internal/model"
)

// Lister fetches the full catalog. *Client satisfies it; tests substitute
// their own.
type Lister interface {
	List(ctx context.Context) ([]model.Item, error)
}

// Default polling cadence: more frequent while the host is visible.
const (
	DefaultForegroundInterval = 20 * time.Second
	DefaultBackgroundInterval = 60 * time.Second
)

// PollerOptions configures a Poller. Zero intervals fall back to the
// defaults; nil callbacks are skipped.
type PollerOptions struct {
	ForegroundInterval time.Duration
	BackgroundInterval time.Duration

	// OnNewItems is called with the number of newly announced listings.
	OnNewItems func(n int)
	// OnProjection is called with the re-derived display sequence
	// whenever the mirror or its parameters change.
	OnProjection func(items []model.Item)
}

// Poller periodically fetches the catalog and reconciles it into the
// mirror. It alternates between two states, idle and fetching: a tick that
// arrives while a fetch is in flight is skipped, so at most one request is
// outstanding. Fetch failures are swallowed; the next tick retries
// naturally.
//
// The run loop owns the mirror. Fetches happen on a separate goroutine so
// search and sort changes re-derive the projection immediately even while
// a request is in flight.
type Poller struct {
	lister  Lister
	mirror  *Mirror
	opts    PollerOptions
	visc    chan bool
	searchc chan string
	sortc   chan SortKey
	refresh chan struct{}

	fetching bool
	visible  bool
}

// NewPoller creates a poller over the given mirror. Call Run to start it.
func NewPoller(lister Lister, mirror *Mirror, opts PollerOptions) *Poller {
	if opts.ForegroundInterval <= 0 {
		opts.ForegroundInterval = DefaultForegroundInterval
	}
	if opts.BackgroundInterval <= 0 {
		opts.BackgroundInterval = DefaultBackgroundInterval
	}
	return &Poller{
		lister:  lister,
		mirror:  mirror,
		opts:    opts,
		visc:    make(chan bool, 1),
		searchc: make(chan string, 1),
		sortc:   make(chan SortKey, 1),
		refresh: make(chan struct{}, 1),
		visible: true,
	}
}

// SetVisible tells the poller whether the host context is foreground
// visible. Regaining visibility triggers an immediate out-of-cycle poll.
func (p *Poller) SetVisible(v bool) { p.visc <- v }

// SetSearchTerm updates the filter and re-derives the projection without
// waiting for any in-flight fetch.
func (p *Poller) SetSearchTerm(term string) { p.searchc <- term }

// SetSortKey updates the sort order and re-derives the projection without
// waiting for any in-flight fetch.
func (p *Poller) SetSortKey(key SortKey) { p.sortc <- key }

// Refresh requests an immediate poll, as after a successful submission.
func (p *Poller) Refresh() {
	select {
	case p.refresh <- struct{}{}:
	default:
	}
}

type fetchResult struct {
	items []model.Item
	err   error
}

// Run polls until ctx is cancelled. It fetches once immediately on start.
func (p *Poller) Run(ctx context.Context) {
	results := make(chan fetchResult, 1)

	timer := time.NewTimer(p.interval())
	defer timer.Stop()

	p.startFetch(ctx, results)

	for {
		select {
		case <-ctx.Done():
			return

		case <-timer.C:
			if !p.fetching && p.visible {
				p.startFetch(ctx, results)
			}
			timer.Reset(p.interval())

		case <-p.refresh:
			if !p.fetching {
				p.startFetch(ctx, results)
			}

		case res := <-results:
			p.fetching = false
			if res.err != nil {
				// Background refresh failures are silent by design.
				slog.Debug("background refresh failed", "error", res.err)
				break
			}
			out := p.mirror.Reconcile(res.items)
			if out.NewItems > 0 && p.opts.OnNewItems != nil {
				p.opts.OnNewItems(out.NewItems)
			}
			if out.Changed {
				p.project()
			}

		case v := <-p.visc:
			regained := v && !p.visible
			p.visible = v
			if regained {
				if !p.fetching {
					p.startFetch(ctx, results)
				}
				timer.Reset(p.interval())
			}

		case term := <-p.searchc:
			p.mirror.SetSearchTerm(term)
			p.project()

		case key := <-p.sortc:
			p.mirror.SetSortKey(key)
			p.project()
		}
	}
}

func (p *Poller) startFetch(ctx context.Context, results chan<- fetchResult) {
	p.fetching = true
	go func() {
		items, err := p.lister.List(ctx)
		results <- fetchResult{items: items, err: err}
	}()
}

func (p *Poller) project() {
	if p.opts.OnProjection != nil {
		p.opts.OnProjection(p.mirror.Projection())
	}
}

func (p *Poller) interval() time.Duration {
	if p.visible {
		return p.opts.ForegroundInterval
	}
	return p.opts.BackgroundInterval
}
