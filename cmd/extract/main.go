// Command extract runs the receipt extraction pipeline over one or
// more receipt photos and prints each result as JSON, one object per
// line.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/FACorreiaa/receipt-engine/pkg/config"
)

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stderr, nil))

	if len(os.Args) < 2 {
		fmt.Fprintf(os.Stderr, "usage: %s <receipt-image> [<receipt-image>...]\n", os.Args[0])
		os.Exit(2)
	}

	if err := run(logger, os.Args[1:]); err != nil {
		logger.Error("extraction failed", "error", err)
		os.Exit(1)
	}
}

func run(logger *slog.Logger, paths []string) error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	deps, err := InitDependencies(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer deps.Cleanup()

	if cfg.Observability.MetricsEnabled {
		go serveMetrics(logger, cfg.Observability.MetricsPort)
	}

	encoder := json.NewEncoder(os.Stdout)
	for _, path := range paths {
		if err := ctx.Err(); err != nil {
			return err
		}

		image, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("reading %s: %w", path, err)
		}

		result, err := deps.ExtractionService.ExtractReceiptData(ctx, image)
		if err != nil {
			return fmt.Errorf("extracting %s: %w", path, err)
		}

		out := struct {
			Path string `json:"path"`
			Data any    `json:"data"`
		}{Path: path, Data: result}
		if err := encoder.Encode(out); err != nil {
			return err
		}
	}
	return nil
}

// serveMetrics exposes Prometheus metrics for long batch runs.
func serveMetrics(logger *slog.Logger, port int) {
	server := &http.Server{
		Addr:              fmt.Sprintf(":%d", port),
		Handler:           promhttp.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
	}
	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logger.Warn("metrics server stopped", "error", err)
	}
}
