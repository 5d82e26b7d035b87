package cli

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"trznica/internal/api"
	"trznica/internal/catalog"
	"trznica/internal/logging"
	"trznica/web"
)

// ServeOptions holds flags for the serve command.
type ServeOptions struct {
	*RootOptions
	Addr    string
	LogPath string
}

// NewServeCommand creates the serve command.
func NewServeCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &ServeOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the marketplace server",
		Long: `Run the marketplace server: the listing API plus the embedded web UI.

The catalog lives in process memory; restarting the server starts from an
empty catalog.

Example:
  trznica serve --addr :5000`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(opts)
		},
	}

	cmd.Flags().StringVar(&opts.Addr, "addr", "", "listen address (default $TRZNICA_ADDR or :5000)")
	cmd.Flags().StringVar(&opts.LogPath, "log", "", "log file path (default stdout/stderr only)")

	return cmd
}

func runServe(opts *ServeOptions) error {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		slog.Warn("loading .env file", "error", err)
	}

	closeLog, err := logging.Setup(opts.LogPath, opts.Verbose)
	if err != nil {
		return err
	}
	if closeLog != nil {
		defer closeLog()
	}

	addr := opts.Addr
	if addr == "" {
		addr = envOr("TRZNICA_ADDR", ":5000")
	}

	cat := catalog.New()
	defer cat.Close()

	handler := api.NewRouter(cat, web.StaticFS())

	server := &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      60 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	// Graceful shutdown on SIGINT/SIGTERM.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		sig := <-quit
		slog.Info("shutdown signal received", "signal", sig.String())

		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		if err := server.Shutdown(ctx); err != nil {
			slog.Error("server forced to shutdown", "error", err)
		}
	}()

	slog.Info("server started", "addr", addr)
	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}

	slog.Info("server stopped")
	return nil
}
