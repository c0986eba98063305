package service

import (
	"context"
	"strconv"
)

// Cache keys identify logical resource classes. Keys live only as long as
// the in-memory cache does; nothing here is persisted.
const (
	// CacheKeyReportList caches the diagnosis history list.
	CacheKeyReportList = "report-list"

	// CacheKeyDiaryLine caches the hairline photo diary.
	CacheKeyDiaryLine = "diary-line"

	// CacheKeyDiaryTop caches the crown photo diary.
	CacheKeyDiaryTop = "diary-top"

	// CacheKeyAuthSession marks session-derived state; invalidated on every
	// session transition so consumers re-observe the auth gate.
	CacheKeyAuthSession = "auth-session"

	cacheKeyReportDetailPrefix = "report-detail"
)

// CacheKeyReportDetail builds the per-record detail key.
func CacheKeyReportDetail(id int64) string {
	return cacheKeyReportDetailPrefix + "(" + strconv.FormatInt(id, 10) + ")"
}

// CacheLoader produces the value for a cache key. It is invoked at most once
// per in-flight fetch regardless of how many callers are waiting.
type CacheLoader func(ctx context.Context) (any, error)

// DataCache is a keyed, invalidatable cache of fetched remote resources.
//
// Fetch guarantees at-most-one in-flight loader per key; concurrent callers
// for the same key attach to the same pending result and observe the
// identical settled value or error. A loader error propagates to every
// waiter but does not poison the entry; the next Fetch starts fresh.
// Cancelling a waiter's context detaches only that waiter, never the shared
// loader.
type DataCache interface {
	Fetch(ctx context.Context, key string, loader CacheLoader) (any, error)

	// Invalidate marks every entry whose key starts with prefix as stale,
	// forcing the next Fetch for those keys to re-run its loader.
	Invalidate(prefix string)
}
