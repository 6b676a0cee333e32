package api

import "github.com/Goden-Gun/reserve-lib/pkg/config"

// Selector decides, once per API call, whether the mock responder serves the
// call instead of the real transport. It must consult its configuration
// source on every invocation so late changes are honored; no caching.
type Selector func() bool

// DefaultSelector routes on the RESERVE_USE_MOCK environment variable:
// unset or true means mock, explicit "false" means real backend.
func DefaultSelector() Selector {
	return config.MockEnabled
}
