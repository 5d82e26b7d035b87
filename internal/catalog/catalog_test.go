package catalog

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"trznica/internal/model"
)

func submission(title string) model.Submission {
	return model.Submission{
		Seller:      "Al",
		Title:       title,
		Description: "Barely used road bike",
		Price:       150,
		Location:    "Downtown",
		MeetingTime: "Weekends",
	}
}

func TestInsertAssignsSequentialIDs(t *testing.T) {
	cat := New()
	defer cat.Close()
	ctx := context.Background()

	first, err := cat.Insert(ctx, submission("First"))
	require.NoError(t, err)
	second, err := cat.Insert(ctx, submission("Second"))
	require.NoError(t, err)

	assert.Equal(t, int64(1), first.ID)
	assert.Equal(t, int64(2), second.ID)
}

func TestInsertPrepends(t *testing.T) {
	cat := New()
	defer cat.Close()
	ctx := context.Background()

	cat.Insert(ctx, submission("First"))
	cat.Insert(ctx, submission("Second"))
	cat.Insert(ctx, submission("Third"))

	items, err := cat.Items(ctx)
	require.NoError(t, err)
	require.Len(t, items, 3)
	assert.Equal(t, "Third", items[0].Title)
	assert.Equal(t, "Second", items[1].Title)
	assert.Equal(t, "First", items[2].Title)
}

func TestInsertStampsAndCleans(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	cat := newWithClock(func() time.Time { return now })
	defer cat.Close()

	sub := submission("  Bike  ")
	sub.Seller = ""
	item, err := cat.Insert(context.Background(), sub)
	require.NoError(t, err)

	assert.Equal(t, "Bike", item.Title)
	assert.Equal(t, model.AnonymousSeller, item.Seller)
	assert.Equal(t, now, item.DateAdded)
	assert.Nil(t, item.Image)
}

func TestDateAddedMonotonic(t *testing.T) {
	cat := New()
	defer cat.Close()
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		cat.Insert(ctx, submission("Item"))
	}

	items, err := cat.Items(ctx)
	require.NoError(t, err)
	// Newest first: dateAdded is non-increasing down the list, and ids
	// strictly decreasing.
	for i := 1; i < len(items); i++ {
		assert.False(t, items[i].DateAdded.After(items[i-1].DateAdded))
		assert.Less(t, items[i].ID, items[i-1].ID)
	}
}

func TestItemsIsSnapshot(t *testing.T) {
	cat := New()
	defer cat.Close()
	ctx := context.Background()

	cat.Insert(ctx, submission("First"))
	before, err := cat.Items(ctx)
	require.NoError(t, err)

	cat.Insert(ctx, submission("Second"))

	// The earlier snapshot must not grow retroactively.
	assert.Len(t, before, 1)
	after, _ := cat.Items(ctx)
	assert.Len(t, after, 2)
}

func TestReturnedItemsAreCopies(t *testing.T) {
	cat := New()
	defer cat.Close()
	ctx := context.Background()

	sub := submission("Photo item")
	sub.Image = "data:image/jpeg;base64,aGVsbG8="
	inserted, err := cat.Insert(ctx, sub)
	require.NoError(t, err)
	require.NotNil(t, inserted.Image)

	// Mutating through the returned handle must not reach stored state.
	*inserted.Image = "tampered"
	inserted.Title = "tampered"

	items, err := cat.Items(ctx)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "Photo item", items[0].Title)
	assert.Equal(t, "data:image/jpeg;base64,aGVsbG8=", *items[0].Image)

	// And mutating a snapshot must not affect later reads.
	*items[0].Image = "also tampered"
	again, _ := cat.Items(ctx)
	assert.Equal(t, "data:image/jpeg;base64,aGVsbG8=", *again[0].Image)
}

func TestConcurrentInsertsKeepIDsUnique(t *testing.T) {
	cat := New()
	defer cat.Close()
	ctx := context.Background()

	const n = 20
	var wg sync.WaitGroup
	ids := make(chan int64, n)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			item, err := cat.Insert(ctx, submission("Concurrent"))
			if err == nil {
				ids <- item.ID
			}
		}()
	}
	wg.Wait()
	close(ids)

	seen := make(map[int64]bool)
	for id := range ids {
		assert.False(t, seen[id], "id %d assigned twice", id)
		seen[id] = true
	}
	assert.Len(t, seen, n)
}

func TestClosedCatalog(t *testing.T) {
	cat := New()
	cat.Close()

	_, err := cat.Insert(context.Background(), submission("Late"))
	assert.ErrorIs(t, err, ErrClosed)
	_, err = cat.Items(context.Background())
	assert.ErrorIs(t, err, ErrClosed)
}

func TestInsertHonorsContext(t *testing.T) {
	cat := New()
	defer cat.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := cat.Insert(ctx, submission("Cancelled"))
	// Either the send or the cancelled context wins the race; a cancelled
	// context must never hang.
	if err != nil {
		assert.ErrorIs(t, err, context.Canceled)
	}
}
