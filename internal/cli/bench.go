package cli

import (
	"fmt"
	"net/http"
	"time"

	"github.com/fatih/color"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"

	"github.com/okian/ensemble/internal/app"
	"github.com/okian/ensemble/internal/testcatalog"
	"github.com/okian/ensemble/pkg/logger"
	"github.com/okian/ensemble/pkg/metrics"
)

// Bench HTTP server timeout constants.
const (
	benchReadTimeout       = 5 * time.Second
	benchWriteTimeout      = 10 * time.Second
	benchReadHeaderTimeout = 2 * time.Second
)

var (
	benchItems    int
	benchRequests int
	benchSeed     int64
)

var benchCmd = &cobra.Command{
	Use:   "bench",
	Short: "Run the engine against a synthetic catalog while serving /metrics",
	Long: `bench generates a synthetic catalog, drives the engine with generated
intents, and exposes Prometheus metrics for the duration of the run.`,
	RunE: runBench,
}

func init() {
	benchCmd.Flags().IntVar(&benchItems, "items", 1000, "synthetic catalog size")
	benchCmd.Flags().IntVar(&benchRequests, "requests", 500, "number of recommendation requests")
	benchCmd.Flags().Int64Var(&benchSeed, "seed", 42, "random seed for reproducible runs")
}

func runBench(_ *cobra.Command, _ []string) error {
	log := logger.Named("bench")

	engine, err := app.New(app.WithConfig(cfg))
	if err != nil {
		return err
	}

	gen := testcatalog.New(testcatalog.WithSeed(benchSeed))
	items := gen.Items(benchItems)

	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(metrics.Registry(), promhttp.HandlerOpts{}))
	srv := &http.Server{
		Addr:              cfg.MetricsAddr,
		Handler:           mux,
		ReadTimeout:       benchReadTimeout,
		WriteTimeout:      benchWriteTimeout,
		ReadHeaderTimeout: benchReadHeaderTimeout,
	}
	go func() {
		log.Info(rootCtx, "serving metrics", logger.String("addr", cfg.MetricsAddr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Warn(rootCtx, "metrics server stopped", logger.Error(err))
		}
	}()
	defer func() { _ = srv.Close() }()

	start := time.Now()
	var served, empty int
	for i := 0; i < benchRequests; i++ {
		res, err := engine.Recommend(rootCtx, gen.Intent(), items)
		if err != nil {
			return err
		}
		served++
		if res.Empty() {
			empty++
		}
	}
	elapsed := time.Since(start)

	green := color.New(color.FgGreen).SprintFunc()
	fmt.Printf("%s %d requests over %d items in %s (%.1f req/s), %d empty results\n",
		green("done:"), served, len(items), elapsed.Round(time.Millisecond),
		float64(served)/elapsed.Seconds(), empty)
	return nil
}
