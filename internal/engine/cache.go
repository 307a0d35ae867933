package engine

import (
	"log/slog"
	"sort"
	"strings"
	"sync"
	"time"
)

// cacheEntry holds accumulated block content for one fingerprint.
type cacheEntry struct {
	content    string
	lastAccess time.Time
}

// reconcileCacheConfig configures a reconcile cache.
type reconcileCacheConfig struct {
	Logger        *slog.Logger
	Threshold     float64       // similarity needed to classify a merge
	VectorDim     int           // content-similarity bucket count
	TTL           time.Duration // entry expiry relative to last access
	SweepInterval time.Duration // background sweep cadence
	MaxEntries    int           // capacity ceiling enforced by sweep
}

// reconcileCache is the time-bounded store of in-progress merged table
// content keyed by fingerprint. A background sweep expires stale
// entries and evicts oldest-first when over capacity. Safe for
// concurrent use.
type reconcileCache struct {
	cfg    reconcileCacheConfig
	logger *slog.Logger

	mu      sync.Mutex
	entries map[string]*cacheEntry

	done chan struct{}
	once sync.Once
}

func newReconcileCache(cfg reconcileCacheConfig) *reconcileCache {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}
	c := &reconcileCache{
		cfg:     cfg,
		logger:  logger.With("component", "reconcile_cache"),
		entries: make(map[string]*cacheEntry),
		done:    make(chan struct{}),
	}
	go c.sweepLoop()
	return c
}

// observe records one sighting of a serialized block under its
// fingerprint. If another cached entry's similarity meets the
// threshold, the block is appended to that entry (a cross-page merge)
// and the accumulated content is returned with merged=true. Otherwise
// the block is cached under its own fingerprint and returned as-is.
func (c *reconcileCache) observe(fp, block string) (string, bool) {
	now := time.Now()

	c.mu.Lock()
	defer c.mu.Unlock()

	// Best merge target among other entries: highest similarity,
	// ties to the lexicographically smallest key so the outcome does
	// not depend on map iteration order.
	var bestKey string
	var bestScore float64
	for key := range c.entries {
		if key == fp {
			continue
		}
		score := similarity(key, fp, c.cfg.VectorDim)
		if score < c.cfg.Threshold {
			continue
		}
		if score > bestScore || (score == bestScore && (bestKey == "" || key < bestKey)) {
			bestScore = score
			bestKey = key
		}
	}

	if bestKey != "" {
		target := c.entries[bestKey]
		if strings.Contains(target.content, block) {
			c.logger.Info("skipping duplicate continuation content", "fingerprint", bestKey)
		} else {
			target.content += block
			c.logger.Info("merged cross-page table", "fingerprint", bestKey, "similarity", bestScore)
		}
		target.lastAccess = now
		// Drop any entry created separately under the new fingerprint.
		delete(c.entries, fp)
		return target.content, true
	}

	// No merge target: remember the first sighting, refresh on
	// re-sighting. The block itself flows onward either way.
	e, ok := c.entries[fp]
	if !ok {
		e = &cacheEntry{content: block}
		c.entries[fp] = e
	}
	e.lastAccess = now
	return block, false
}

// drain removes and returns all accumulated contents, ordered by
// fingerprint for deterministic shutdown flushes.
func (c *reconcileCache) drain() []string {
	c.mu.Lock()
	defer c.mu.Unlock()

	keys := make([]string, 0, len(c.entries))
	for key := range c.entries {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	contents := make([]string, 0, len(keys))
	for _, key := range keys {
		contents = append(contents, c.entries[key].content)
	}
	c.entries = make(map[string]*cacheEntry)
	return contents
}

// size reports the current entry count.
func (c *reconcileCache) size() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}

// close stops the background sweep. Idempotent.
func (c *reconcileCache) close() {
	c.once.Do(func() { close(c.done) })
}

func (c *reconcileCache) sweepLoop() {
	ticker := time.NewTicker(c.cfg.SweepInterval)
	defer ticker.Stop()
	for {
		select {
		case <-c.done:
			return
		case <-ticker.C:
			c.sweep(time.Now())
		}
	}
}

// sweep removes entries idle past the TTL, then evicts oldest-access
// entries until the cache is back under capacity. Overflow is handled
// by eviction, never by failing the caller.
func (c *reconcileCache) sweep(now time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()

	for key, e := range c.entries {
		if now.Sub(e.lastAccess) > c.cfg.TTL {
			delete(c.entries, key)
			c.logger.Info("expired cache entry", "fingerprint", key)
		}
	}

	if len(c.entries) <= c.cfg.MaxEntries {
		return
	}
	c.logger.Warn("cache over capacity, evicting oldest entries",
		"entries", len(c.entries), "max", c.cfg.MaxEntries)

	type aged struct {
		key  string
		last time.Time
	}
	byAge := make([]aged, 0, len(c.entries))
	for key, e := range c.entries {
		byAge = append(byAge, aged{key: key, last: e.lastAccess})
	}
	sort.Slice(byAge, func(i, j int) bool { return byAge[i].last.Before(byAge[j].last) })

	for _, a := range byAge {
		if len(c.entries) <= c.cfg.MaxEntries {
			break
		}
		delete(c.entries, a.key)
	}
}
