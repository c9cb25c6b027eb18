package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/paper-tracker/internal/cache"
	"github.com/pdiddy/paper-tracker/internal/ingest"
)

const shutdownTimeout = 10 * time.Second

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the ingest endpoint over HTTP",
	Long: `Serve exposes POST /papers/ingest and a health check on /. Expired cache
entries are purged in the background on the configured schedule. The server
stops cleanly on SIGINT or SIGTERM.`,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().String("addr", "", "listen address (default :8080)")
	_ = viper.BindPFlag("server.addr", serveCmd.Flags().Lookup("addr"))

	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	r, store, err := openResolver()
	if err != nil {
		return err
	}
	defer store.Close()

	janitor, err := cache.NewJanitor(store, cfg.Cache.PurgeSchedule, logger)
	if err != nil {
		return err
	}
	janitor.Start()
	defer janitor.Stop()

	if cfg.Log.Env == "prod" {
		gin.SetMode(gin.ReleaseMode)
	}
	srv := &http.Server{
		Addr:              cfg.Server.Addr,
		Handler:           ingest.New(cfg.Server.AppName, r, logger),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errc := make(chan error, 1)
	go func() {
		logger.WithField("addr", srv.Addr).Info("listening")
		errc <- srv.ListenAndServe()
	}()

	select {
	case err := <-errc:
		if !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("serving: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutting down: %w", err)
	}
	return nil
}
