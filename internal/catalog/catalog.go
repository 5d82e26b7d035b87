// Package catalog holds the in-memory listing collection for the lifetime
// of the server process.
//
// A single goroutine owns the item slice and the ID counter; inserts and
// list requests are delivered to it over channels, so no two operations
// ever interleave and the store needs no locks. IDs start at 1, increment
// by 1 per insert, and are never reused. There is no persistence: a
// restart yields an empty catalog and a reset counter.
package catalog

import (
	"context"
	"errors"
	"time"

	"trznica/internal/model"
)

// ErrClosed is returned for operations on a closed catalog.
var ErrClosed = errors.New("catalog closed")

// Catalog is the single-writer item store. Create with New and release
// with Close.
type Catalog struct {
	insertc chan insertRequest
	listc   chan chan []model.Item
	done    chan struct{}
	now     func() time.Time
}

type insertRequest struct {
	sub   model.Submission
	reply chan model.Item
}

// New creates an empty catalog and starts its owning goroutine.
func New() *Catalog {
	return newWithClock(time.Now)
}

func newWithClock(now func() time.Time) *Catalog {
	c := &Catalog{
		insertc: make(chan insertRequest),
		listc:   make(chan chan []model.Item),
		done:    make(chan struct{}),
		now:     now,
	}
	go c.run()
	return c
}

// Close stops the owning goroutine. Pending and subsequent operations
// return ErrClosed.
func (c *Catalog) Close() {
	close(c.done)
}

// Insert validates nothing: the caller is expected to have run
// model.Submission.Validate first. It assigns the next ID, stamps the
// insertion instant (UTC), prepends the item so the newest listing is
// always first, and returns a copy of the stored item.
func (c *Catalog) Insert(ctx context.Context, sub model.Submission) (model.Item, error) {
	req := insertRequest{sub: sub, reply: make(chan model.Item, 1)}
	select {
	case c.insertc <- req:
	case <-c.done:
		return model.Item{}, ErrClosed
	case <-ctx.Done():
		return model.Item{}, ctx.Err()
	}
	select {
	case item := <-req.reply:
		return item, nil
	case <-c.done:
		return model.Item{}, ErrClosed
	case <-ctx.Done():
		return model.Item{}, ctx.Err()
	}
}

// Items returns a snapshot of the full catalog, newest first. Later
// inserts never alter a previously returned snapshot.
func (c *Catalog) Items(ctx context.Context) ([]model.Item, error) {
	reply := make(chan []model.Item, 1)
	select {
	case c.listc <- reply:
	case <-c.done:
		return nil, ErrClosed
	case <-ctx.Done():
		return nil, ctx.Err()
	}
	select {
	case items := <-reply:
		return items, nil
	case <-c.done:
		return nil, ErrClosed
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

func (c *Catalog) run() {
	var items []model.Item // newest first
	var nextID int64 = 1

	for {
		select {
		case req := <-c.insertc:
			sub := req.sub.Clean()
			item := model.Item{
				ID:          nextID,
				Title:       sub.Title,
				Description: sub.Description,
				Price:       float64(sub.Price),
				Location:    sub.Location,
				MeetingTime: sub.MeetingTime,
				DateAdded:   c.now().UTC(),
				Seller:      sub.Seller,
			}
			if sub.Image != "" {
				img := sub.Image
				item.Image = &img
			}
			nextID++
			items = append([]model.Item{item}, items...)
			req.reply <- cloneItem(item)

		case reply := <-c.listc:
			snapshot := make([]model.Item, len(items))
			for i, item := range items {
				snapshot[i] = cloneItem(item)
			}
			reply <- snapshot

		case <-c.done:
			return
		}
	}
}

// cloneItem copies an item so callers cannot reach stored state through
// the Image pointer.
func cloneItem(item model.Item) model.Item {
	if item.Image != nil {
		img := *item.Image
		item.Image = &img
	}
	return item
}
