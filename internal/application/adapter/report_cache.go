package adapter

import (
	"context"
	"errors"
)

// ErrCacheMiss is returned by ReportCache.Get when the key is not present.
var ErrCacheMiss = errors.New("report cache miss")

// ReportCache stores computed reports as JSON.
type ReportCache interface {
	// Get decodes the value stored under key into dest, or returns ErrCacheMiss.
	Get(ctx context.Context, key string, dest any) error

	// Set encodes value under key with the cache's TTL.
	Set(ctx context.Context, key string, value any) error

	// Ping checks the cache backend is reachable.
	Ping(ctx context.Context) error
}
