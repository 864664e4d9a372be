// Package cache provides caching infrastructure for report rows.
package cache

import (
	"context"
	"sync"
	"time"

	"assetdesk/internal/core/record"
	"assetdesk/internal/domain/reports"
	"assetdesk/internal/metadata"
	"assetdesk/pkg/logger"
)

// RowCache keeps the rows fetched for each report for a fixed TTL so that
// paging and re-sorting a screen does not refetch from the collaborator.
// It implements reports.Source.
type RowCache struct {
	source reports.Source
	ttl    time.Duration
	now    func() time.Time

	mu      sync.RWMutex
	entries map[string]cachedRows // report name -> rows

	// Listeners for cache invalidation
	listeners   []InvalidationListener
	listenersMu sync.RWMutex

	// Lifecycle
	lifecycleMu sync.Mutex
	cancel      context.CancelFunc
	wg          sync.WaitGroup
	started     bool
}

type cachedRows struct {
	rows    []record.Record
	expires time.Time
}

// InvalidationListener is called with the report name when its rows are dropped.
// An empty name means every report.
type InvalidationListener func(report string)

// NewRowCache wraps source. A non-positive ttl disables caching.
func NewRowCache(source reports.Source, ttl time.Duration) *RowCache {
	return &RowCache{
		source:  source,
		ttl:     ttl,
		now:     time.Now,
		entries: make(map[string]cachedRows),
	}
}

// Fetch returns cached rows while they are fresh and loads them otherwise.
// Failed loads are not cached.
func (c *RowCache) Fetch(ctx context.Context, def metadata.ReportDef) ([]record.Record, error) {
	if c.ttl <= 0 {
		return c.source.Fetch(ctx, def)
	}

	c.mu.RLock()
	e, ok := c.entries[def.Name]
	c.mu.RUnlock()
	if ok && c.now().Before(e.expires) {
		logger.Debug(ctx, "row cache hit", "report", def.Name, "rows", len(e.rows))
		return record.CloneAll(e.rows), nil
	}

	rows, err := c.source.Fetch(ctx, def)
	if err != nil {
		return nil, err
	}

	c.mu.Lock()
	c.entries[def.Name] = cachedRows{rows: record.CloneAll(rows), expires: c.now().Add(c.ttl)}
	c.mu.Unlock()

	return rows, nil
}

// Invalidate drops the rows of report, or of every report when report is empty.
func (c *RowCache) Invalidate(ctx context.Context, report string) {
	c.mu.Lock()
	if report == "" {
		c.entries = make(map[string]cachedRows)
	} else {
		delete(c.entries, report)
	}
	c.mu.Unlock()

	logger.Info(ctx, "row cache invalidated", "report", report)

	// Notify registered listeners with panic recovery.
	c.listenersMu.RLock()
	for _, listener := range c.listeners {
		func(l InvalidationListener) {
			defer func() {
				if r := recover(); r != nil {
					logger.Error(ctx, "listener panic recovered", "report", report, "panic", r)
				}
			}()
			l(report)
		}(listener)
	}
	c.listenersMu.RUnlock()
}

// OnInvalidate registers a listener.
func (c *RowCache) OnInvalidate(l InvalidationListener) {
	c.listenersMu.Lock()
	c.listeners = append(c.listeners, l)
	c.listenersMu.Unlock()
}

// Len returns the number of cached reports, expired ones included.
func (c *RowCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}

// Evict drops expired entries and returns how many were removed.
func (c *RowCache) Evict() int {
	now := c.now()

	c.mu.Lock()
	defer c.mu.Unlock()

	removed := 0
	for name, e := range c.entries {
		if !now.Before(e.expires) {
			delete(c.entries, name)
			removed++
		}
	}
	return removed
}

// Start evicts expired entries every interval until Stop.
func (c *RowCache) Start(ctx context.Context, interval time.Duration) {
	if interval <= 0 || c.ttl <= 0 {
		return
	}

	c.lifecycleMu.Lock()
	defer c.lifecycleMu.Unlock()
	if c.started {
		return
	}
	ctx, c.cancel = context.WithCancel(ctx)
	c.started = true

	c.wg.Add(1)
	go func() {
		defer c.wg.Done()
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				if n := c.Evict(); n > 0 {
					logger.Debug(ctx, "expired report rows evicted", "count", n)
				}
			}
		}
	}()
	logger.Info(ctx, "row cache started", "ttl", c.ttl)
}

// Stop halts the eviction loop and waits for it to exit.
func (c *RowCache) Stop() {
	c.lifecycleMu.Lock()
	if !c.started {
		c.lifecycleMu.Unlock()
		return
	}
	cancel := c.cancel
	c.started = false
	c.cancel = nil
	c.lifecycleMu.Unlock()

	cancel()
	c.wg.Wait()
}
