// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package httputil

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestNewClient(t *testing.T) {
	c := NewClient(10 * time.Second)
	assert.Equal(t, 10*time.Second, c.Timeout)
}

func TestNewClientDefaultTimeout(t *testing.T) {
	assert.Equal(t, DefaultTimeout, NewClient(0).Timeout)
	assert.Equal(t, DefaultTimeout, NewClient(-time.Second).Timeout)
}

func TestErrorBody(t *testing.T) {
	assert.Equal(t, "upstream down", ErrorBody(strings.NewReader("  upstream down\n")))
}

func TestErrorBodyTruncates(t *testing.T) {
	long := strings.Repeat("x", maxErrorBody+100)
	got := ErrorBody(strings.NewReader(long))
	assert.Len(t, got, maxErrorBody)
}

func TestErrorBodyEmpty(t *testing.T) {
	assert.Equal(t, "", ErrorBody(strings.NewReader("")))
}
