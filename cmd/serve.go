/*
serve.go - HTTP server command

STARTUP SEQUENCE:
  1. Load configuration and logger
  2. Open the SQLite store
  3. Load the engine (journal + committed views + catalog)
  4. Start the chi server
  5. On SIGINT/SIGTERM: drain connections (30s), close the store, exit
*/
package cmd

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/alamer/timber-engine/api"
	"github.com/alamer/timber-engine/engine"
	"github.com/alamer/timber-engine/store/sqlite"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP API server",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, log, err := setup()
		if err != nil {
			return err
		}

		kv, err := sqlite.New(cfg.DB.Path)
		if err != nil {
			return err
		}
		defer kv.Close()

		eng, err := engine.New(cmd.Context(), kv, log, engine.Options{FoldByDate: cfg.Engine.FoldByDate})
		if err != nil {
			return err
		}

		handler := api.NewHandler(eng, log)
		server := &http.Server{
			Addr:         cfg.HTTP.Addr(),
			Handler:      api.NewRouter(handler, log),
			ReadTimeout:  15 * time.Second,
			WriteTimeout: 15 * time.Second,
			IdleTimeout:  60 * time.Second,
		}

		errs := make(chan error, 1)
		go func() {
			log.Info().Str("addr", cfg.HTTP.Addr()).Msg("server starting")
			if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
				errs <- err
			}
		}()

		quit := make(chan os.Signal, 1)
		signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
		select {
		case err := <-errs:
			return err
		case <-quit:
		}

		log.Info().Msg("shutting down")
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		return server.Shutdown(ctx)
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
}
