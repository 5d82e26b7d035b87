// Package cli wires the trznica commands: the marketplace server and the
// terminal client (list, post, watch).
package cli

import (
	"os"

	"github.com/spf13/cobra"
)

// RootOptions holds flags shared by every command.
type RootOptions struct {
	Verbose bool
}

// NewRootCommand creates the trznica command tree.
func NewRootCommand() *cobra.Command {
	opts := &RootOptions{}

	cmd := &cobra.Command{
		Use:           "trznica",
		Short:         "Peer-to-peer listings marketplace",
		Long:          "Tržnica is a small peer-to-peer marketplace: a server holding the shared listing catalog and a terminal client for browsing, posting, and watching it.",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.PersistentFlags().BoolVarP(&opts.Verbose, "verbose", "v", false, "enable debug logging")

	cmd.AddCommand(
		NewServeCommand(opts),
		NewListCommand(opts),
		NewPostCommand(opts),
		NewWatchCommand(opts),
	)

	return cmd
}

// envOr returns the environment variable value or a fallback.
func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
