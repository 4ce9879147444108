package cmd

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/probelab/urlcheck/internal/checker"
	"github.com/probelab/urlcheck/internal/config"
	"github.com/probelab/urlcheck/internal/export"
	"github.com/probelab/urlcheck/internal/input"
	"github.com/probelab/urlcheck/internal/logging"
	"github.com/probelab/urlcheck/internal/metrics"
)

// checkOptions holds the flag values for the check subcommand. Flags that
// the user sets override the corresponding config file values.
type checkOptions struct {
	inputPath   string
	outputPath  string
	concurrency int
	maxRetries  int
	metricsAddr string
}

// newCheckCmd creates and configures the 'check' subcommand.
func newCheckCmd() *cobra.Command {
	opts := &checkOptions{}

	cmd := &cobra.Command{
		Use:   "check",
		Short: "Check every URL in the input file",
		Long: `Reads the URL column of the input file, checks each URL concurrently
under the configured limits, and writes one result row per input URL.
The output format follows the file extension: .xlsx for a workbook,
anything else for CSV.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runCheck(cmd, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.inputPath, "input", "i", "", "input file with a header row and URLs in the first column")
	cmd.Flags().StringVarP(&opts.outputPath, "output", "o", "url_status.csv", "output file for results")
	cmd.Flags().IntVar(&opts.concurrency, "concurrency", 0, "max concurrent checks (overrides config)")
	cmd.Flags().IntVar(&opts.maxRetries, "max-retries", 0, "attempts per URL (overrides config)")
	cmd.Flags().StringVar(&opts.metricsAddr, "metrics-addr", "", "serve Prometheus metrics on this address during the run (overrides config)")
	_ = cmd.MarkFlagRequired("input")

	return cmd
}

func runCheck(cmd *cobra.Command, opts *checkOptions) error {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if cmd.Flags().Changed("concurrency") {
		cfg.Checker.Concurrency = opts.concurrency
	}
	if cmd.Flags().Changed("max-retries") {
		cfg.Checker.MaxRetries = opts.maxRetries
	}
	if cmd.Flags().Changed("metrics-addr") {
		cfg.Metrics.Addr = opts.metricsAddr
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	logger, err := logging.New(cfg.Logging.Development)
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	defer func() { _ = logger.Sync() }()

	metrics.Init()
	var metricsSrv *http.Server
	if cfg.Metrics.Addr != "" {
		metricsSrv = metrics.NewServer(cfg.Metrics.Addr)
		go func() {
			if serveErr := metricsSrv.ListenAndServe(); serveErr != nil && !errors.Is(serveErr, http.ErrServerClosed) {
				logger.Warn("metrics server stopped", zap.Error(serveErr))
			}
		}()
		logger.Info("metrics listening", zap.String("addr", cfg.Metrics.Addr))
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	rows, err := input.ReadFile(opts.inputPath)
	if err != nil {
		return err
	}

	engineCfg := cfg.Checker.Engine()
	fetcher := checker.NewHTTPFetcher(engineCfg)
	defer fetcher.Close()

	chk := checker.New(engineCfg, fetcher, logger)
	orch := checker.NewOrchestrator(engineCfg, chk, logger)

	outcomes, err := orch.Run(ctx, rows)
	if err != nil {
		return fmt.Errorf("run check: %w", err)
	}

	if err := export.WriteFile(opts.outputPath, outcomes); err != nil {
		return err
	}

	logger.Info("check complete",
		zap.Int("urls", len(outcomes)),
		zap.String("output", opts.outputPath),
	)

	if metricsSrv != nil {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		_ = metricsSrv.Shutdown(shutdownCtx)
	}
	return nil
}
