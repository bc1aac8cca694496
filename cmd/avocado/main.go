package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/ArchivoVenezuela/avocado-web/config"
	"github.com/ArchivoVenezuela/avocado-web/models"
	"github.com/ArchivoVenezuela/avocado-web/pipeline"
	"github.com/ArchivoVenezuela/avocado-web/worldcat"
)

func main() {
	// .env is optional; flags and real environment variables win.
	_ = godotenv.Load()

	defaultCfg := config.DefaultConfig()
	keyDefault, _ := config.EnvString("OCLC_WSKEY")
	secretDefault, _ := config.EnvString("OCLC_WSSECRET")
	metricsDefault, _ := config.EnvString("AVOCADO_METRICS_ADDR")

	inputFile := flag.String("input", "", "Batch input CSV (columns: OCLC #, Author, Title)")
	outputFile := flag.String("output", defaultCfg.OutputFile, "Output file path")
	outputFormat := flag.String("format", defaultCfg.OutputFormat, "Output format: csv, json, or dual")
	wsKey := flag.String("key", keyDefault, "OCLC WSKey (default $OCLC_WSKEY)")
	wsSecret := flag.String("secret", secretDefault, "OCLC WSSecret (default $OCLC_WSSECRET)")
	baseURL := flag.String("base-url", defaultCfg.BaseURL, "WorldCat Search API base URL")
	tokenURL := flag.String("token-url", defaultCfg.TokenURL, "OAuth token endpoint")
	timeout := flag.Duration("timeout", defaultCfg.Timeout, "Per-request timeout")
	strategyPauseMs := flag.Int("strategy-pause", 200, "Pause between search strategies (milliseconds)")
	requestPauseMs := flag.Int("request-pause", 300, "Pause between catalog requests (milliseconds)")
	metricsAddr := flag.String("metrics-addr", metricsDefault, "Prometheus metrics listen address (e.g. :9090)")
	templateFile := flag.String("template", "", "Write the starter input CSV to this path and exit")
	verbose := flag.Bool("v", false, "Enable verbose logging")

	flag.Parse()

	logger, level := newLogger(*verbose)
	slog.SetDefault(logger)
	slog.SetLogLoggerLevel(level.Level())

	if *templateFile != "" {
		if err := pipeline.WriteTemplate(*templateFile); err != nil {
			slog.Error("writing template", slog.Any("error", err))
			os.Exit(1)
		}
		fmt.Printf("Template written to %s\n", *templateFile)
		return
	}

	if *inputFile == "" {
		fmt.Fprintln(os.Stderr, "missing -input (or use -template to generate a starter file)")
		flag.Usage()
		os.Exit(2)
	}

	cfg := buildConfig(*wsKey, *wsSecret, *baseURL, *tokenURL, *timeout, *strategyPauseMs, *requestPauseMs, *inputFile, *outputFile, *outputFormat, *metricsAddr, *verbose)
	if err := cfg.Validate(); err != nil {
		slog.Error("invalid configuration", slog.Any("error", err))
		os.Exit(1)
	}

	rows, err := pipeline.ReadFile(cfg.InputFile)
	if err != nil {
		slog.Error("reading input", slog.Any("error", err))
		os.Exit(1)
	}
	if len(rows) == 0 {
		slog.Error("input has no data rows", slog.String("file", cfg.InputFile))
		os.Exit(1)
	}

	writer, err := createWriter(cfg.OutputFormat, cfg.OutputFile)
	if err != nil {
		slog.Error("creating writer", slog.Any("error", err))
		os.Exit(1)
	}
	defer func() {
		if err := writer.Close(); err != nil {
			slog.Error("close writer", slog.Any("error", err))
		}
	}()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	go func() {
		<-ctx.Done()
		slog.Info("shutdown signal received, finishing current row")
	}()

	client := worldcat.NewClient(cfg)

	var metricsServer *http.Server
	if cfg.MetricsAddr != "" {
		metricsServer = &http.Server{
			Addr:    cfg.MetricsAddr,
			Handler: promhttp.HandlerFor(client.Metrics.Registry, promhttp.HandlerOpts{}),
		}
		go func() {
			if err := metricsServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				slog.Error("metrics server failed", slog.Any("error", err))
			}
		}()
		slog.Info("metrics server enabled", slog.String("addr", cfg.MetricsAddr))
	}

	slog.Info("starting enrichment",
		slog.String("input", cfg.InputFile),
		slog.Int("rows", len(rows)),
		slog.String("output", cfg.OutputFile),
	)

	enricher := pipeline.NewEnricher(client, writer, client.Metrics)
	result, err := enricher.Run(ctx, rows)
	if err != nil {
		var authErr worldcat.AuthError
		if errors.As(err, &authErr) {
			slog.Error("authentication with the catalog failed, check WSKey and WSSecret", slog.Any("error", err))
		} else {
			slog.Error("enrichment failed", slog.Any("error", err))
		}
		os.Exit(1)
	}

	if err := writer.Validate(); err != nil {
		slog.Error("output validation failed", slog.Any("error", err))
		os.Exit(1)
	}

	if metricsServer != nil {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		if err := metricsServer.Shutdown(shutdownCtx); err != nil {
			slog.Error("metrics server shutdown failed", slog.Any("error", err))
		}
		cancel()
	}

	printSummary(result, cfg.OutputFile)
}

func buildConfig(key, secret, baseURL, tokenURL string, timeout time.Duration, strategyPauseMs, requestPauseMs int, inputFile, outputFile, outputFormat, metricsAddr string, verbose bool) *config.Config {
	cfg := config.DefaultConfig()
	cfg.WSKey = strings.TrimSpace(key)
	cfg.WSSecret = strings.TrimSpace(secret)
	cfg.BaseURL = baseURL
	cfg.TokenURL = tokenURL
	cfg.Timeout = timeout
	cfg.StrategyPause = time.Duration(strategyPauseMs) * time.Millisecond
	cfg.RequestPause = time.Duration(requestPauseMs) * time.Millisecond
	cfg.InputFile = inputFile
	cfg.OutputFile = outputFile
	cfg.OutputFormat = strings.ToLower(outputFormat)
	cfg.MetricsAddr = metricsAddr
	cfg.Verbose = verbose
	return cfg
}

func createWriter(format, filename string) (pipeline.OutputWriter, error) {
	switch format {
	case "json":
		return pipeline.NewJSONWriter(filename)
	case "csv":
		return pipeline.NewCSVWriter(filename)
	case "dual":
		jsonFilename := strings.TrimSuffix(filename, ".csv") + ".jsonl"
		return pipeline.NewDualWriter(filename, jsonFilename)
	default:
		return nil, fmt.Errorf("unsupported format: %s", format)
	}
}

func printSummary(result *models.EnrichResult, outputFile string) {
	separator := "--------------------------------------------------"
	fmt.Println("\n" + separator)
	fmt.Println("Enrichment complete")
	fmt.Printf("  Rows processed:     %d\n", result.Stats.Processed)
	fmt.Printf("  OCLC found:         %d\n", result.Stats.Found)
	fmt.Printf("  Complete metadata:  %d\n", result.Stats.Complete)
	if len(result.ErrorsByType) > 0 {
		fmt.Printf("  Call failures:      %v\n", result.ErrorsByType)
	}
	fmt.Printf("  Duration:           %v\n", result.EndTime.Sub(result.StartTime).Round(time.Millisecond))
	fmt.Printf("  Output file:        %s\n", outputFile)
	fmt.Println(separator)
}

func newLogger(verbose bool) (*slog.Logger, *slog.LevelVar) {
	level := &slog.LevelVar{}
	if verbose {
		level.Set(slog.LevelDebug)
	} else {
		level.Set(slog.LevelInfo)
	}

	opts := &slog.HandlerOptions{Level: level}
	var handler slog.Handler
	if isTerminal(os.Stdout) {
		handler = slog.NewTextHandler(os.Stdout, opts)
	} else {
		handler = slog.NewJSONHandler(os.Stdout, opts)
	}

	return slog.New(handler), level
}

func isTerminal(f *os.File) bool {
	info, err := f.Stat()
	if err != nil {
		return false
	}
	return (info.Mode() & os.ModeCharDevice) != 0
}
