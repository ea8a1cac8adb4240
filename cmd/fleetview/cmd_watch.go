package main

import (
	"context"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/fleetview/fleetview/catalog"
	"github.com/fleetview/fleetview/providers"
	"github.com/fleetview/fleetview/telemetry"
)

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Continuously list configured applications and export metrics",
	Long: `Watch runs the list aggregation for every application named in the
configuration on an interval, exporting lookup and fan-out metrics over
a Prometheus endpoint.`,
	Args: cobra.NoArgs,
	RunE: runWatch,
}

func init() {
	rootCmd.AddCommand(watchCmd)
}

func runWatch(cmd *cobra.Command, args []string) error {
	ctx, cancel := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	registry, err := telemetry.InitPrometheus()
	if err != nil {
		return err
	}

	sources, cfg, err := buildSources(ctx)
	if err != nil {
		return err
	}

	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(registry, promhttp.HandlerOpts{}))
	server := &http.Server{Addr: cfg.MetricsAddr(), Handler: mux, ReadHeaderTimeout: 5 * time.Second}
	go func() {
		log.Info().Str("addr", cfg.MetricsAddr()).Msg("starting metrics server")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error().Err(err).Msg("metrics server error")
		}
	}()
	defer func() { _ = server.Shutdown(context.Background()) }()

	log.Info().
		Strs("applications", cfg.Watch.Applications).
		Strs("providers", providers.Names()).
		Dur("interval", cfg.WatchInterval()).
		Msg("fleetview watch starting")

	assembler := catalog.NewAssembler(sources)
	listOnce(ctx, assembler, cfg.Watch.Applications)

	ticker := time.NewTicker(cfg.WatchInterval())
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			listOnce(ctx, assembler, cfg.Watch.Applications)
		case <-ctx.Done():
			log.Info().Msg("shutting down")
			return nil
		}
	}
}

func listOnce(ctx context.Context, assembler *catalog.Assembler, applications []string) {
	for _, application := range applications {
		summaries, err := assembler.Summaries(ctx, application, "")
		if err != nil {
			log.Error().Err(err).Str("application", application).Msg("list failed")
			continue
		}
		log.Info().
			Str("application", application).
			Int("server_groups", len(summaries)).
			Msg("list complete")
	}
}
