package checker

import (
	"errors"
	"net/url"
	"strings"
)

// Validation sentinels. The orchestrator maps them to outcome detail
// strings; empty input is deliberately distinguished from malformed input.
var (
	ErrEmptyURL   = errors.New("empty url")
	ErrInvalidURL = errors.New("invalid url format")
)

// Validate reports whether raw is checkable: after trimming it must parse
// into a URL with both a scheme and a host. Pure function, no network.
func Validate(raw string) error {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return ErrEmptyURL
	}
	u, err := url.Parse(raw)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return ErrInvalidURL
	}
	return nil
}

// invalidDetail translates a validation error into the exported detail.
func invalidDetail(err error) string {
	if errors.Is(err, ErrEmptyURL) {
		return DetailEmptyURL
	}
	return DetailInvalidURL
}
