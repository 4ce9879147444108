package checker

import (
	"context"
	"crypto/tls"
	"crypto/x509"
	"errors"
	"net"
	"net/url"
)

// classify maps a transport error onto the closed ErrorKind enumeration.
// Certificate failures are detected first so the worker can trigger its
// verify-disabled fallback; everything else is coarse observability.
func classify(err error) (ErrorKind, string) {
	if err == nil {
		return KindUnknown, ""
	}

	if isCertificateError(err) {
		return KindCertificate, rootMessage(err)
	}

	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return KindTimeout, rootMessage(err)
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return KindTimeout, rootMessage(err)
	}

	var opErr *net.OpError
	if errors.As(err, &opErr) {
		return KindConnection, rootMessage(err)
	}

	// A url.Error that is not a dial or timeout problem means the exchange
	// itself went wrong: malformed response, redirect loop, scheme trouble.
	var urlErr *url.Error
	if errors.As(err, &urlErr) {
		return KindProtocol, rootMessage(err)
	}

	return KindUnknown, err.Error()
}

// isCertificateError reports whether err stems from TLS chain validation.
func isCertificateError(err error) bool {
	var certErr *tls.CertificateVerificationError
	if errors.As(err, &certErr) {
		return true
	}
	var unknownAuthority x509.UnknownAuthorityError
	if errors.As(err, &unknownAuthority) {
		return true
	}
	var hostname x509.HostnameError
	if errors.As(err, &hostname) {
		return true
	}
	var invalid x509.CertificateInvalidError
	return errors.As(err, &invalid)
}

// rootMessage strips the "Get \"url\":" wrapper url.Error adds so the
// exported detail stays readable.
func rootMessage(err error) string {
	var urlErr *url.Error
	if errors.As(err, &urlErr) && urlErr.Err != nil {
		return urlErr.Err.Error()
	}
	return err.Error()
}
