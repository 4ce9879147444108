// Package checker implements the bounded-concurrency URL check engine:
// validation, the fetch-with-retry worker, the concurrency limiter, and
// the orchestrator that ties them together.
package checker

import (
	"fmt"
	"strconv"
	"time"
)

// State classifies the terminal result of one URL check.
type State string

// Terminal states an Outcome can carry. Exactly one holds per outcome.
const (
	// StateOK means a response was received; StatusCode is valid.
	StateOK State = "ok"
	// StateError means every attempt was exhausted without a clean response.
	StateError State = "error"
	// StateInvalid means the input string never reached the network.
	StateInvalid State = "invalid"
)

// Sentinel values written to the status column for non-OK outcomes.
const (
	statusTextError   = "ERROR"
	statusTextInvalid = "Invalid"
)

// Invalid-input detail strings surfaced in outcomes and logs.
const (
	DetailEmptyURL   = "Empty URL"
	DetailInvalidURL = "Invalid URL format"
)

// DetailCertDisabled flags a success obtained only after disabling
// certificate verification. A degraded-trust success, not a clean one.
const DetailCertDisabled = "certificate verification disabled"

// Outcome is the normalized per-URL result record. It is created exactly
// once per input row and flows unmodified to the exporter.
type Outcome struct {
	URL         string
	State       State
	StatusCode  int
	ErrorDetail string
}

// StatusText renders the status column of the export: the numeric HTTP
// status for StateOK, otherwise the "ERROR" / "Invalid" sentinel.
func (o Outcome) StatusText() string {
	switch o.State {
	case StateOK:
		return strconv.Itoa(o.StatusCode)
	case StateInvalid:
		return statusTextInvalid
	default:
		return statusTextError
	}
}

// ErrorKind is a closed classification of network-layer failures, produced
// by classify at the HTTP call boundary. It exists for observability only;
// all kinds share the same retry budget and delay.
type ErrorKind string

// Supported error kinds.
const (
	KindConnection  ErrorKind = "ConnectionError"
	KindTimeout     ErrorKind = "TimeoutError"
	KindProtocol    ErrorKind = "ProtocolError"
	KindCertificate ErrorKind = "CertificateError"
	KindUnknown     ErrorKind = "Unknown"
)

// Config carries the knobs for one checker run. It is decoupled from Viper
// so engines with different policies can run side by side in tests.
type Config struct {
	Concurrency       int
	MaxRetries        int
	RetryDelay        time.Duration
	RequestTimeout    time.Duration
	RetryableStatuses []int
	UserAgent         string
	// RateLimitRPS throttles request starts across all workers.
	// Zero disables the throttle.
	RateLimitRPS float64
}

// retryState accumulates the last observed failure across the attempts of a
// single Check call. It is discarded once the Outcome is produced.
type retryState struct {
	attempts    int
	lastStatus  int
	lastKind    ErrorKind
	lastMessage string
}

func (s *retryState) recordStatus(code int) {
	s.lastStatus = code
}

func (s *retryState) recordError(kind ErrorKind, message string) {
	s.lastKind = kind
	s.lastMessage = message
}

// detail renders the error column of an exhausted check. When the only
// observations were retryable statuses, the status column still reads
// "ERROR" and the detail names the last status seen.
func (s *retryState) detail() string {
	if s.lastKind != "" {
		return fmt.Sprintf("%s: %s", s.lastKind, s.lastMessage)
	}
	if s.lastStatus != 0 {
		return fmt.Sprintf("retryable status %d persisted across %d attempts", s.lastStatus, s.attempts)
	}
	return string(KindUnknown) + ": no attempt completed"
}
