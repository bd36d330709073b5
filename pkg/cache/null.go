package cache

import (
	"context"
	"time"
)

// NullCache drops every write and misses every read. It is the "none"
// backend and also what the CLI falls back to when the configured backend
// cannot be opened; Reason says which.
type NullCache struct {
	Reason string
}

// NewNullCache returns a NullCache for caching turned off on purpose.
func NewNullCache() Cache { return Disabled("disabled") }

// Disabled returns a NullCache that records why caching is off.
func Disabled(reason string) Cache { return &NullCache{Reason: reason} }

// Get always misses.
func (*NullCache) Get(context.Context, string) ([]byte, bool, error) {
	return nil, false, nil
}

// Set drops data.
func (*NullCache) Set(context.Context, string, []byte, time.Duration) error {
	return nil
}

func (*NullCache) Delete(context.Context, string) error { return nil }

func (*NullCache) Close() error { return nil }

var _ Cache = (*NullCache)(nil)
