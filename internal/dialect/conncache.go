package dialect

import (
	"context"
	"database/sql"
	"sync"
)

// Credentials is the (user, password, URL) triple identifying one distinct
// target connection. It is used only as a cache key; never log its contents.
type Credentials struct {
	User     string
	Password string
	URL      string
}

// Factory opens one physical connection for the given credentials. It may
// block on network I/O and is responsible for its own timeout handling via
// ctx.
type Factory func(ctx context.Context, creds Credentials) (*sql.DB, error)

// ConnCache shares one live connection handle per credential triple. Entries
// are created on first request and kept for the cache's lifetime; the cache
// never closes a stored handle.
type ConnCache struct {
	mu    sync.Mutex
	conns map[Credentials]*cacheEntry
}

type cacheEntry struct {
	once sync.Once
	db   *sql.DB
	err  error
}

// NewConnCache returns an empty cache.
func NewConnCache() *ConnCache {
	return &ConnCache{conns: make(map[Credentials]*cacheEntry)}
}

// Get returns the shared handle for creds, invoking factory exactly once per
// credential triple even when first access races. All concurrent callers
// observe the same handle. A factory failure is not cached: the failed entry
// is dropped and the next call for the same credentials retries creation.
func (c *ConnCache) Get(ctx context.Context, creds Credentials, factory Factory) (*sql.DB, error) {
	c.mu.Lock()
	e, ok := c.conns[creds]
	if !ok {
		e = &cacheEntry{}
		c.conns[creds] = e
	}
	c.mu.Unlock()

	e.once.Do(func() {
		e.db, e.err = factory(ctx, creds)
	})

	if e.err != nil {
		c.mu.Lock()
		if c.conns[creds] == e {
			delete(c.conns, creds)
		}
		c.mu.Unlock()
		return nil, e.err
	}
	return e.db, nil
}

// Len reports how many connections are currently cached.
func (c *ConnCache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.conns)
}
