package cmd

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/dotcommander/aeoscore/internal/config"
	"github.com/dotcommander/aeoscore/internal/logging"
	"github.com/dotcommander/aeoscore/internal/share"
	"github.com/go-chi/chi/v5"
	"github.com/gorilla/handlers"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

const (
	shutdownTimeout = 5 * time.Second
	shareBurst      = 5
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the share-snapshot HTTP server",
	Long: `Serves report snapshots over HTTP so they can be shared by id.

Snapshots live in memory and are lost on restart.

  GET    /health
  POST   /api/share-snapshots        {"reportModel": {...}, "meta": {...}}
  GET    /api/share-snapshots/{id}
  DELETE /api/share-snapshots/{id}`,
	Args: cobra.NoArgs,
	Run: runE(func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()
		return runServe(ctx)
	}),
}

func init() {
	serveCmd.Flags().String("addr", ":3001", "Listen address")
	serveCmd.Flags().Float64("rate", 0, "Max snapshot creations per second (0 = unlimited)")
	serveCmd.Flags().String("allowed-origin", "*", "CORS allowed origin")
	viper.BindPFlag("serve.addr", serveCmd.Flags().Lookup("addr"))
	viper.BindPFlag("serve.rate", serveCmd.Flags().Lookup("rate"))
	viper.BindPFlag("serve.allowedOrigin", serveCmd.Flags().Lookup("allowed-origin"))
	rootCmd.AddCommand(serveCmd)
}

// newShareHandler mounts the share routes under a fresh root router and
// wraps them with CORS. ratePerSecond <= 0 leaves snapshot creation unlimited.
func newShareHandler(store *share.Store, cfg config.ServeConfig) http.Handler {
	server := share.NewServer(store, logging.Log)
	server.SetRateLimit(cfg.Rate, shareBurst)
	r := chi.NewRouter()
	r.Mount("/", server.Routes())

	corsOptions := []handlers.CORSOption{
		handlers.AllowedHeaders([]string{"Accept", "Content-Type", "X-Requested-With"}),
		handlers.AllowedMethods([]string{"GET", "HEAD", "POST", "DELETE", "OPTIONS"}),
	}
	if cfg.AllowedOrigin != "" {
		corsOptions = append(corsOptions, handlers.AllowedOrigins([]string{cfg.AllowedOrigin}))
	}
	return handlers.CORS(corsOptions...)(r)
}

func runServe(ctx context.Context) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	srv := &http.Server{
		Addr:              cfg.Serve.Addr,
		Handler:           newShareHandler(share.NewStore(), cfg.Serve),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() { errCh <- srv.ListenAndServe() }()
	logging.Log.WithField("addr", cfg.Serve.Addr).Info("share server listening")
	fmt.Fprintf(os.Stderr, "Listening on %s\n", cfg.Serve.Addr)

	select {
	case <-ctx.Done():
		logging.Log.Info("share server stopping")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("error shutting down server: %w", err)
		}
		return nil
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("server error: %w", err)
	}
}
