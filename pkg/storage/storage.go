package storage

import "context"

// Store is a minimal key-value view over a persistent store. It backs the
// session mirror (token + cached profile), so implementations only need
// string values and last-write-wins semantics.
//
// Get returns the empty string with a nil error for missing keys; callers
// treat absence and emptiness the same way.
type Store interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string) error
	Remove(ctx context.Context, key string) error
}
