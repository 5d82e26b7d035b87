package client

import (
	"fmt"
	"sort"
	"strings"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"trznica/internal/model"
)

// SortKey selects the total order applied to a projection.
type SortKey string

// Sort keys. SortDefault keeps store order, which is already newest-first.
const (
	SortDefault   SortKey = "default"
	SortNewest    SortKey = "newest"
	SortOldest    SortKey = "oldest"
	SortPriceLow  SortKey = "price-low"
	SortPriceHigh SortKey = "price-high"
	SortTitle     SortKey = "title"
)

// ParseSortKey validates a sort key given on the command line.
func ParseSortKey(s string) (SortKey, error) {
	switch key := SortKey(s); key {
	case SortDefault, SortNewest, SortOldest, SortPriceLow, SortPriceHigh, SortTitle:
		return key, nil
	case "":
		return SortDefault, nil
	default:
		return "", fmt.Errorf("unknown sort key %q", s)
	}
}

// Project derives the display sequence from a mirrored item list: filter by
// the search term, then sort by the selected key. The input is never
// modified; an empty term passes every item through in store order.
func Project(items []model.Item, term string, key SortKey) []model.Item {
	term = strings.ToLower(strings.TrimSpace(term))

	out := make([]model.Item, 0, len(items))
	for _, item := range items {
		if term == "" || matches(item, term) {
			out = append(out, item)
		}
	}

	switch key {
	case SortNewest:
		sort.SliceStable(out, func(i, j int) bool { return out[i].DateAdded.After(out[j].DateAdded) })
	case SortOldest:
		sort.SliceStable(out, func(i, j int) bool { return out[i].DateAdded.Before(out[j].DateAdded) })
	case SortPriceLow:
		sort.SliceStable(out, func(i, j int) bool { return out[i].Price < out[j].Price })
	case SortPriceHigh:
		sort.SliceStable(out, func(i, j int) bool { return out[i].Price > out[j].Price })
	case SortTitle:
		c := collate.New(language.BritishEnglish)
		sort.SliceStable(out, func(i, j int) bool { return c.CompareString(out[i].Title, out[j].Title) < 0 })
	default:
		// Store order is already newest-first; leave it alone.
	}
	return out
}

// matches reports whether the lowercased term is a substring of the item's
// combined searchable text. Matching is over one space-joined string, not
// per-field.
func matches(item model.Item, term string) bool {
	searchable := strings.ToLower(strings.Join([]string{
		item.Title,
		item.Description,
		item.Location,
		item.Seller,
		item.MeetingTime,
	}, " "))
	return strings.Contains(searchable, term)
}
