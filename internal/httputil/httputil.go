// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package httputil provides HTTP helpers shared across stages.
package httputil

import (
	"io"
	"net/http"
	"strings"
	"time"
)

// DefaultTimeout bounds outbound requests when no timeout is configured.
const DefaultTimeout = 30 * time.Second

// maxErrorBody bounds how much of an upstream error body is retained for
// diagnostics.
const maxErrorBody = 8 << 10

// NewClient returns an HTTP client with the given timeout. Non-positive
// values fall back to DefaultTimeout.
func NewClient(timeout time.Duration) *http.Client {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &http.Client{Timeout: timeout}
}

// ErrorBody reads up to maxErrorBody bytes from r, trimmed, for inclusion
// in an error message. Read failures yield whatever was read.
func ErrorBody(r io.Reader) string {
	data, _ := io.ReadAll(io.LimitReader(r, maxErrorBody))
	return strings.TrimSpace(string(data))
}
