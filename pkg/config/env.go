package config

import (
	"os"
	"strconv"
	"time"
)

// Environment switches that must be observed live, not captured at load time.
const (
	// EnvUseMock selects the mock responder. Unset or any value other than
	// "false" means mock; only an explicit "false" routes to the real backend.
	EnvUseMock = "RESERVE_USE_MOCK"
	// EnvRequestTimeout overrides the transport timeout in milliseconds.
	EnvRequestTimeout = "RESERVE_REQUEST_TIMEOUT"
)

// DefaultRequestTimeout applies when no override is configured.
const DefaultRequestTimeout = 5 * time.Second

// MockEnabled reports whether API calls should be served by the in-process
// mock responder. The variable is re-read on every call so late changes
// (tests, hot toggles) take effect immediately.
func MockEnabled() bool {
	v, ok := os.LookupEnv(EnvUseMock)
	if !ok {
		return true
	}
	return v != "false"
}

// RequestTimeout returns the transport timeout, honoring the millisecond
// override from the environment.
func RequestTimeout() time.Duration {
	if v := os.Getenv(EnvRequestTimeout); v != "" {
		if ms, err := strconv.Atoi(v); err == nil && ms > 0 {
			return time.Duration(ms) * time.Millisecond
		}
	}
	return DefaultRequestTimeout
}
