package cmd

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"

	"github.com/oraad/ogero-sensors/internal/adapters/httpapi"
	"github.com/oraad/ogero-sensors/internal/adapters/metrics"
	"github.com/oraad/ogero-sensors/internal/application"
)

const shutdownTimeout = 5 * time.Second

func newServeCmd(app *app) *cobra.Command {
	var listen string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Refresh every entry on a schedule and serve sensors over HTTP",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if listen == "" {
				listen = app.conf.Serve.Listen
			}
			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			return runServe(ctx, app, listen)
		},
	}

	cmd.Flags().StringVar(&listen, "listen", "", "HTTP listen address (default from serve.listen)")

	return cmd
}

func runServe(ctx context.Context, app *app, listen string) error {
	log := app.log.With().Str("component", "serve").Logger()

	integration, err := app.newIntegration()
	if err != nil {
		return err
	}
	defer integration.Close()

	var recorder application.RefreshRecorder = application.NoopRecorder{}
	var metricsHandler http.Handler
	if app.conf.Serve.Metrics {
		reg := prometheus.NewRegistry()
		reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
		rec, err := metrics.Register(reg, integration)
		if err != nil {
			return fmt.Errorf("register metrics: %w", err)
		}
		recorder = rec
		metricsHandler = promhttp.HandlerFor(reg, promhttp.HandlerOpts{})
	}

	scheduler := application.NewScheduler(application.SchedulerOptions{
		Integration: integration,
		Entries:     app.service,
		Interval:    app.conf.Refresh.Interval,
		Recorder:    recorder,
		Log:         app.log,
	})

	loaded, err := scheduler.SetupPending(ctx)
	if err != nil {
		log.Error().Err(err).Msg("initial entry setup")
	}
	log.Info().Int("loaded", loaded).Msg("entries set up")

	scheduler.Start(ctx)
	defer scheduler.Stop()

	server := &http.Server{
		Addr: listen,
		Handler: httpapi.NewHandler(httpapi.Options{
			Source:  integration,
			Metrics: metricsHandler,
			Log:     app.log,
		}),
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	serverErr := make(chan error, 1)
	go func() {
		log.Info().Str("listen", listen).Msg("listening")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	select {
	case <-ctx.Done():
		log.Info().Msg("shutdown signal received")
	case err := <-serverErr:
		return fmt.Errorf("server error: %w", err)
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown http server: %w", err)
	}

	log.Info().Msg("gracefully stopped")
	return nil
}
