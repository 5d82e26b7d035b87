package cli

import (
	"context"
	"os"

	"github.com/spf13/cobra"

	"trznica/internal/client"
)

// ListOptions holds flags for the list command.
type ListOptions struct {
	*RootOptions
	Server string
	Search string
	Sort   string
}

// NewListCommand creates the list command.
func NewListCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &ListOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "list",
		Short: "Fetch and display the current listings",
		Long: `Fetch the catalog once and print it, optionally filtered and sorted.

Filtering and sorting happen locally; the server always returns the full
catalog newest first.

Example:
  trznica list --search bike --sort price-low`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runList(opts)
		},
	}

	addClientFlags(cmd, &opts.Server)
	cmd.Flags().StringVar(&opts.Search, "search", "", "free-text search term")
	cmd.Flags().StringVar(&opts.Sort, "sort", "default", "sort key: default, newest, oldest, price-low, price-high, title")

	return cmd
}

func runList(opts *ListOptions) error {
	sortKey, err := client.ParseSortKey(opts.Sort)
	if err != nil {
		return err
	}

	c := client.New(serverURL(opts.Server))
	items, err := c.List(context.Background())
	if err != nil {
		return err
	}

	printItems(os.Stdout, client.Project(items, opts.Search, sortKey))
	return nil
}

// addClientFlags registers the server flag shared by the client commands.
func addClientFlags(cmd *cobra.Command, server *string) {
	cmd.Flags().StringVar(server, "server", "", "server base URL (default $TRZNICA_SERVER or http://localhost:5000)")
}

// serverURL resolves the server base URL from the flag or environment.
func serverURL(flag string) string {
	if flag != "" {
		return flag
	}
	return envOr("TRZNICA_SERVER", "http://localhost:5000")
}
