// Command fleximart runs the FlexiMart batch ETL: three raw CSV extracts in,
// a normalized four-table schema out, plus an appended data-quality report.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"fleximart/internal/config"
	"fleximart/internal/metrics"
	"fleximart/internal/metrics/prompush"
	"fleximart/internal/pipeline"
	"fleximart/internal/storage"

	// register all storage backends with the factory.
	_ "fleximart/internal/storage/all"
)

func main() {
	var (
		cfgPath        string
		metricsBackend string
		pushGatewayURL string
		validateOnly   bool
	)

	flag.StringVar(&cfgPath, "config", "configs/run.json", "run config JSON path")
	flag.StringVar(&metricsBackend, "metrics-backend", "", "metrics backend to use (pushgateway, none; falls back to env METRICS_BACKEND)")
	flag.StringVar(&pushGatewayURL, "pushgateway-url", "", "Pushgateway base URL (overrides env PUSHGATEWAY_URL)")
	flag.BoolVar(&validateOnly, "validate", false, "validate the configuration and exit")
	verbose := flag.Bool("v", false, "enable verbose logs")
	flag.Parse()

	cfg, err := config.Load(cfgPath)
	if err != nil {
		fatalf("%v", err)
	}

	issues := config.Validate(cfg)
	hasError := false
	for _, iss := range issues {
		fmt.Fprintf(os.Stderr, "%s: %s: %s\n", iss.Severity, iss.Path, iss.Message)
		if iss.Severity == config.SeverityError {
			hasError = true
		}
	}
	if hasError {
		fatalf("configuration is invalid: %v", cfgPath)
	}
	if validateOnly {
		log.Printf("configuration is valid: %v", cfgPath)
		return
	}

	setupMetrics(metricsBackend, pushGatewayURL, cfg.Job, *verbose)
	defer func() {
		if err := metrics.Flush(); err != nil {
			log.Printf("metrics: flush error: %v", err)
		}
	}()

	// The credential check happens here, before anything touches the
	// sources or the sink.
	dsn, err := cfg.DSN()
	if err != nil {
		fatalf("%v", err)
	}

	ctx := context.Background()
	repo, closeRepo, err := storage.Open(ctx, cfg.Storage.Kind, dsn)
	if err != nil {
		fatalf("connect %s sink: %v", cfg.Storage.Kind, err)
	}
	defer closeRepo()

	start := time.Now()
	if err := pipeline.New(cfg, repo).Run(ctx); err != nil {
		log.Fatalf("run: %v", err)
	}
	if *verbose {
		log.Printf("completed in %s", time.Since(start).Truncate(time.Millisecond))
	}
}

func setupMetrics(backendName, gwURL, job string, verbose bool) {
	backendName = resolveMetricsBackend(backendName)
	switch backendName {
	case "pushgateway":
		if gwURL == "" {
			gwURL = os.Getenv("PUSHGATEWAY_URL")
		}
		if gwURL == "" {
			gwURL = "http://localhost:9091"
		}
		b, err := prompush.NewBackend(job, gwURL)
		if err != nil {
			log.Printf("metrics: failed to init pushgateway backend: %v; using nop", err)
			return
		}
		log.Printf("metrics: backend=pushgateway url=%s job=%s", gwURL, job)
		metrics.SetBackend(b)
	case "none":
		if verbose {
			log.Printf("metrics: disabled")
		}
	default:
		log.Printf("metrics: unknown backend %q; metrics disabled", backendName)
	}
}

// resolveMetricsBackend picks the backend name: the flag wins, then the
// METRICS_BACKEND environment variable, then "none".
func resolveMetricsBackend(flagValue string) string {
	if flagValue != "" {
		return flagValue
	}
	if v := os.Getenv("METRICS_BACKEND"); v != "" {
		return v
	}
	return "none"
}

func fatalf(format string, a ...any) {
	fmt.Fprintf(os.Stderr, format+"\n", a...)
	os.Exit(1)
}
