package checker

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/probelab/urlcheck/internal/metrics"
)

// Checker performs one URL check at a time: the retry loop, the two-phase
// certificate fallback, and error classification. It is safe for concurrent
// use by many goroutines.
type Checker struct {
	fetch     Fetcher
	cfg       Config
	retryable map[int]struct{}
	logger    *zap.Logger
}

// New constructs a Checker around the given fetcher.
func New(cfg Config, fetch Fetcher, logger *zap.Logger) *Checker {
	if logger == nil {
		logger = zap.NewNop()
	}
	retryable := make(map[int]struct{}, len(cfg.RetryableStatuses))
	for _, code := range cfg.RetryableStatuses {
		retryable[code] = struct{}{}
	}
	return &Checker{
		fetch:     fetch,
		cfg:       cfg,
		retryable: retryable,
		logger:    logger,
	}
}

// Check fetches rawURL with the configured retry policy and returns exactly
// one Outcome. Failures never escape; they are folded into the outcome.
func (c *Checker) Check(ctx context.Context, rawURL string) Outcome {
	state := retryState{}

	for attempt := 1; attempt <= c.cfg.MaxRetries; attempt++ {
		state.attempts = attempt

		outcome, done := c.attempt(ctx, rawURL, attempt, &state)
		if done {
			metrics.IncCheck(string(outcome.State))
			return outcome
		}

		if attempt == c.cfg.MaxRetries {
			break
		}
		select {
		case <-time.After(c.cfg.RetryDelay):
		case <-ctx.Done():
			if state.lastKind == "" {
				kind, msg := classify(ctx.Err())
				state.recordError(kind, msg)
			}
			attempt = c.cfg.MaxRetries // no further attempts once the run is torn down
		}
	}

	outcome := Outcome{URL: rawURL, State: StateError, ErrorDetail: state.detail()}
	c.logger.Error("check exhausted retries",
		zap.String("url", rawURL),
		zap.Int("attempts", state.attempts),
		zap.String("detail", outcome.ErrorDetail),
	)
	metrics.IncCheck(string(StateError))
	return outcome
}

// attempt runs one retry iteration: a verify-on request, and when that
// fails on certificate validation, a verify-off request in the same
// iteration. done=false means the loop should delay and try again.
func (c *Checker) attempt(ctx context.Context, rawURL string, attempt int, state *retryState) (Outcome, bool) {
	code, err := c.request(ctx, rawURL, true)
	if err == nil {
		if c.isRetryable(code) {
			state.recordStatus(code)
			c.logger.Warn("retryable status",
				zap.String("url", rawURL),
				zap.Int("status", code),
				zap.Int("attempt", attempt),
			)
			return Outcome{}, false
		}
		c.logger.Info("check succeeded",
			zap.String("url", rawURL),
			zap.Int("status", code),
			zap.Int("attempt", attempt),
		)
		return Outcome{URL: rawURL, State: StateOK, StatusCode: code}, true
	}

	kind, msg := classify(err)
	if kind == KindCertificate {
		c.logger.Warn("certificate verification failed, retrying without verification",
			zap.String("url", rawURL),
			zap.Int("attempt", attempt),
		)
		code, err = c.request(ctx, rawURL, false)
		if err == nil {
			if c.isRetryable(code) {
				state.recordStatus(code)
				return Outcome{}, false
			}
			c.logger.Info("check succeeded without certificate verification",
				zap.String("url", rawURL),
				zap.Int("status", code),
				zap.Int("attempt", attempt),
			)
			return Outcome{
				URL:         rawURL,
				State:       StateOK,
				StatusCode:  code,
				ErrorDetail: DetailCertDisabled,
			}, true
		}
		kind, msg = classify(err)
	}

	state.recordError(kind, msg)
	c.logger.Warn("attempt failed",
		zap.String("url", rawURL),
		zap.Int("attempt", attempt),
		zap.String("kind", string(kind)),
		zap.String("error", msg),
	)
	return Outcome{}, false
}

func (c *Checker) request(ctx context.Context, rawURL string, verify bool) (int, error) {
	start := time.Now()
	code, err := c.fetch.Do(ctx, rawURL, verify)
	metrics.ObserveRequestDuration(time.Since(start))
	if err != nil {
		metrics.IncAttempt("error")
		return 0, err
	}
	if c.isRetryable(code) {
		metrics.IncAttempt("retryable")
	} else {
		metrics.IncAttempt("success")
	}
	return code, nil
}

func (c *Checker) isRetryable(code int) bool {
	_, ok := c.retryable[code]
	return ok
}
