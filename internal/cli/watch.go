package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"trznica/internal/client"
	"trznica/internal/logging"
	"trznica/internal/model"
)

// WatchOptions holds flags for the watch command.
type WatchOptions struct {
	*RootOptions
	Server             string
	Search             string
	Sort               string
	Interval           time.Duration
	BackgroundInterval time.Duration
}

// NewWatchCommand creates the watch command.
func NewWatchCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &WatchOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Watch the marketplace for new listings",
		Long: `Poll the catalog and re-print the (filtered, sorted) listings whenever
they change, announcing newly posted items. Polling failures are silent;
the next tick retries.

Example:
  trznica watch --search bike --sort newest --interval 20s`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runWatch(opts)
		},
	}

	addClientFlags(cmd, &opts.Server)
	cmd.Flags().StringVar(&opts.Search, "search", "", "free-text search term")
	cmd.Flags().StringVar(&opts.Sort, "sort", "default", "sort key: default, newest, oldest, price-low, price-high, title")
	cmd.Flags().DurationVar(&opts.Interval, "interval", client.DefaultForegroundInterval, "poll interval while foregrounded")
	cmd.Flags().DurationVar(&opts.BackgroundInterval, "background-interval", client.DefaultBackgroundInterval, "poll interval while backgrounded")

	return cmd
}

func runWatch(opts *WatchOptions) error {
	sortKey, err := client.ParseSortKey(opts.Sort)
	if err != nil {
		return err
	}

	if _, err := logging.Setup("", opts.Verbose); err != nil {
		return err
	}

	mirror := client.NewMirror()
	mirror.SetSearchTerm(opts.Search)
	mirror.SetSortKey(sortKey)

	c := client.New(serverURL(opts.Server))
	poller := client.NewPoller(c, mirror, client.PollerOptions{
		ForegroundInterval: opts.Interval,
		BackgroundInterval: opts.BackgroundInterval,
		OnNewItems: func(n int) {
			plural := ""
			if n > 1 {
				plural = "s"
			}
			fmt.Printf("*** %d new item%s just listed!\n\n", n, plural)
		},
		OnProjection: func(items []model.Item) {
			printItems(os.Stdout, items)
		},
	})

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	fmt.Printf("Watching %s (every %s, Ctrl-C to stop)\n\n", serverURL(opts.Server), opts.Interval)
	poller.Run(ctx)
	return nil
}
