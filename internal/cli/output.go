package cli

import (
	"fmt"
	"io"
	"time"

	"trznica/internal/model"
)

// printItems renders a projected listing sequence for the terminal.
func printItems(w io.Writer, items []model.Item) {
	if len(items) == 0 {
		fmt.Fprintln(w, "No items found. Be the first to list something!")
		return
	}

	for _, item := range items {
		photo := ""
		if item.Image != nil {
			photo = "  [photo]"
		}
		fmt.Fprintf(w, "#%d  %s — £%.2f%s\n", item.ID, item.Title, item.Price, photo)
		fmt.Fprintf(w, "    %s\n", item.Description)
		fmt.Fprintf(w, "    %s · %s · %s\n", item.Location, item.Seller, timeAgo(item.DateAdded, time.Now()))
		if item.MeetingTime != "" {
			fmt.Fprintf(w, "    meet: %s\n", item.MeetingTime)
		}
		fmt.Fprintln(w)
	}
}

// timeAgo formats a timestamp relative to now: "Just now", "5m ago",
// "3h ago", "2d ago", or a short date for anything older than a week.
func timeAgo(t, now time.Time) string {
	d := now.Sub(t)
	switch {
	case d < time.Minute:
		return "Just now"
	case d < time.Hour:
		return fmt.Sprintf("%dm ago", int(d.Minutes()))
	case d < 24*time.Hour:
		return fmt.Sprintf("%dh ago", int(d.Hours()))
	case d < 7*24*time.Hour:
		return fmt.Sprintf("%dd ago", int(d.Hours()/24))
	default:
		return t.Format("2 Jan")
	}
}
