package checker

import (
	"context"
	"strings"
	"sync"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/probelab/urlcheck/internal/metrics"
)

// Orchestrator partitions input rows into valid and invalid, dispatches the
// valid ones to checker goroutines under the limiter, and collects every
// outcome. One Run is one batch; nothing persists across runs.
type Orchestrator struct {
	checker  *Checker
	limiter  *Limiter
	throttle *rate.Limiter
	logger   *zap.Logger
}

// NewOrchestrator wires a checker to a fresh limiter sized from cfg.
func NewOrchestrator(cfg Config, checker *Checker, logger *zap.Logger) *Orchestrator {
	if logger == nil {
		logger = zap.NewNop()
	}
	var throttle *rate.Limiter
	if cfg.RateLimitRPS > 0 {
		throttle = rate.NewLimiter(rate.Limit(cfg.RateLimitRPS), 1)
	}
	return &Orchestrator{
		checker:  checker,
		limiter:  NewLimiter(cfg.Concurrency),
		throttle: throttle,
		logger:   logger,
	}
}

// Run checks every row and returns one Outcome per row. Completion order is
// nondeterministic; the count is not. A worker exhausting its retries never
// fails the run, only a dead context does, and then no partial results are
// returned.
func (o *Orchestrator) Run(ctx context.Context, rows []string) ([]Outcome, error) {
	runID := uuid.NewString()
	o.logger.Info("run started",
		zap.String("run_id", runID),
		zap.Int("rows", len(rows)),
	)

	outcomes := make([]Outcome, 0, len(rows))
	var mu sync.Mutex
	var wg sync.WaitGroup

	var runErr error
	var errOnce sync.Once
	fail := func(err error) {
		errOnce.Do(func() { runErr = err })
	}

	for _, row := range rows {
		trimmed := strings.TrimSpace(row)
		if err := Validate(trimmed); err != nil {
			detail := invalidDetail(err)
			o.logger.Warn("invalid url",
				zap.String("run_id", runID),
				zap.String("url", trimmed),
				zap.String("detail", detail),
			)
			metrics.IncCheck(string(StateInvalid))
			mu.Lock()
			outcomes = append(outcomes, Outcome{
				URL:         trimmed,
				State:       StateInvalid,
				ErrorDetail: detail,
			})
			mu.Unlock()
			continue
		}

		wg.Add(1)
		go func(url string) {
			defer wg.Done()

			if err := o.limiter.Acquire(ctx); err != nil {
				fail(err)
				return
			}
			defer o.limiter.Release()

			if o.throttle != nil {
				if err := o.throttle.Wait(ctx); err != nil {
					fail(err)
					return
				}
			}

			metrics.IncActiveChecks()
			out := o.checker.Check(ctx, url)
			metrics.DecActiveChecks()

			mu.Lock()
			outcomes = append(outcomes, out)
			mu.Unlock()
		}(trimmed)
	}

	wg.Wait()
	if runErr != nil {
		return nil, runErr
	}

	o.logger.Info("run finished",
		zap.String("run_id", runID),
		zap.Int("total", len(outcomes)),
	)
	return outcomes, nil
}
