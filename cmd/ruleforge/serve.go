package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/aretw0/ruleforge"
	httpAdapter "github.com/aretw0/ruleforge/internal/adapters/http"
	"github.com/aretw0/ruleforge/internal/presentation/tui"
	"github.com/spf13/cobra"
)

const shutdownTimeout = 5 * time.Second

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the read-only inspection API",
	Long:  `Loads the ruleset and serves entities, weapons, construction orders, graphs and metrics over HTTP.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp(cmd)
		if err != nil {
			return err
		}
		defer a.Close()

		addr := a.settings.Server.Addr
		if cmd.Flags().Changed("addr") {
			addr, _ = cmd.Flags().GetString("addr")
		}

		// Load before listening so a broken mod fails fast.
		if _, err := a.Ruleset(cmd.Context()); err != nil {
			return err
		}

		handler := httpAdapter.NewHandler(a,
			httpAdapter.WithMetrics(a.metrics),
			httpAdapter.WithLogger(a.logger),
			httpAdapter.WithVersion(ruleforge.Version),
		)
		srv := &http.Server{
			Addr:              addr,
			Handler:           handler,
			ReadHeaderTimeout: 10 * time.Second,
		}

		tui.PrintBanner(cmd.ErrOrStderr(), ruleforge.Version)

		serverErrors := make(chan error, 1)
		go func() {
			a.logger.Info("Starting server", "addr", srv.Addr, "mod", a.engine.Name)
			serverErrors <- srv.ListenAndServe()
		}()

		shutdown := make(chan os.Signal, 1)
		signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

		select {
		case err := <-serverErrors:
			if errors.Is(err, http.ErrServerClosed) {
				return nil
			}
			return err

		case sig := <-shutdown:
			a.logger.Info("Shutting down", "signal", sig.String())

			ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
			defer cancel()

			if err := srv.Shutdown(ctx); err != nil {
				a.logger.Error("Graceful shutdown did not complete", "timeout", shutdownTimeout, "error", err)
				return srv.Close()
			}
			a.logger.Info("Server stopped gracefully")
			return nil
		}
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().String("addr", "", "Address to listen on (overrides Server.Addr)")
}
