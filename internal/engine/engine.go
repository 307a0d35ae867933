// Package engine reconciles tabular regions extracted page-by-page
// into complete logical tables. Tables split across page boundaries
// are detected by fingerprint similarity and merged; pathological
// duplicate storms are suppressed; finalized blocks are dispatched to
// mapping consumers through a bounded buffer and worker tasks so
// document traversal is never blocked by slow consumers.
package engine

import (
	"context"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"

	"github.com/tablefuse/tablefuse/internal/mapping"
	"github.com/tablefuse/tablefuse/internal/model"
)

// Config configures an Engine. Zero values fall back to the defaults
// noted per field.
type Config struct {
	Logger *slog.Logger

	// Consumers receive every finalized block. Resolved once at
	// construction; there is no runtime registry.
	Consumers []mapping.Consumer

	BufferCapacity       int           // queued page batches (default 50)
	EstimatedCellSize    int           // chars per cell for buffer pre-sizing (default 50)
	MaxTablesPerPage     int           // per-page table ceiling (default 10)
	MaxTotalCells        int           // run-wide cell ceiling (default 1000)
	SimilarityThreshold  float64       // cross-page merge classification (default 0.85)
	DuplicateThreshold   int           // sightings before suppression (default 5)
	CacheTTL             time.Duration // entry expiry (default 5m)
	CacheSweepInterval   time.Duration // sweep cadence (default 1m)
	CacheMaxEntries      int           // cache capacity (default 1000)
	FingerprintPrefixLen int           // content prefix length (default 10)
	VectorDimension      int           // similarity bucket count (default 16)
	EnqueueTimeout       time.Duration // soft wait for queue space (default 100ms)
}

func (c Config) withDefaults() Config {
	if c.Logger == nil {
		c.Logger = slog.Default()
	}
	if c.BufferCapacity <= 0 {
		c.BufferCapacity = 50
	}
	if c.EstimatedCellSize <= 0 {
		c.EstimatedCellSize = 50
	}
	if c.MaxTablesPerPage <= 0 {
		c.MaxTablesPerPage = 10
	}
	if c.MaxTotalCells <= 0 {
		c.MaxTotalCells = 1000
	}
	if c.SimilarityThreshold <= 0 {
		c.SimilarityThreshold = 0.85
	}
	if c.DuplicateThreshold <= 0 {
		c.DuplicateThreshold = 5
	}
	if c.CacheTTL <= 0 {
		c.CacheTTL = 5 * time.Minute
	}
	if c.CacheSweepInterval <= 0 {
		c.CacheSweepInterval = time.Minute
	}
	if c.CacheMaxEntries <= 0 {
		c.CacheMaxEntries = 1000
	}
	if c.FingerprintPrefixLen <= 0 {
		c.FingerprintPrefixLen = 10
	}
	if c.VectorDimension <= 0 {
		c.VectorDimension = 16
	}
	if c.EnqueueTimeout <= 0 {
		c.EnqueueTimeout = 100 * time.Millisecond
	}
	return c
}

// Batch is the ordered list of surviving blocks produced from one
// page. Consumed once dispatched.
type Batch struct {
	ID     uuid.UUID
	Page   int
	Blocks []string
}

// Engine is the batching and cross-page reconciliation engine. One
// producer drives SubmitPage synchronously per page; dispatch to
// consumers happens on detached worker tasks.
type Engine struct {
	cfg       Config
	logger    *slog.Logger
	consumers []mapping.Consumer

	cache *reconcileCache
	dups  *suppressor

	queue chan Batch

	tasks    sync.WaitGroup
	inFlight atomic.Int32
	cells    atomic.Int64
}

// New builds an Engine and starts its cache sweep.
func New(cfg Config) *Engine {
	cfg = cfg.withDefaults()
	return &Engine{
		cfg:       cfg,
		logger:    cfg.Logger.With("component", "engine"),
		consumers: cfg.Consumers,
		cache: newReconcileCache(reconcileCacheConfig{
			Logger:        cfg.Logger,
			Threshold:     cfg.SimilarityThreshold,
			VectorDim:     cfg.VectorDimension,
			TTL:           cfg.CacheTTL,
			SweepInterval: cfg.CacheSweepInterval,
			MaxEntries:    cfg.CacheMaxEntries,
		}),
		dups:  newSuppressor(cfg.DuplicateThreshold),
		queue: make(chan Batch, cfg.BufferCapacity),
	}
}

// SubmitPage serializes, fingerprints, and reconciles one page's
// tables, then enqueues the surviving batch. When the buffer is full
// past a short wait, previously queued batches are flushed and the
// enqueue blocks until space opens. Malformed tables are skipped;
// resource-limit violations truncate with a warning. The only error
// returned is ctx cancellation during a blocked enqueue.
func (e *Engine) SubmitPage(ctx context.Context, pageIndex int, tables []model.Table) error {
	if e.cells.Load() >= int64(e.cfg.MaxTotalCells) {
		e.logger.Warn("total cell ceiling reached, dropping page",
			"page", pageIndex, "cells", e.cells.Load(), "max", e.cfg.MaxTotalCells)
		return nil
	}

	if len(tables) > e.cfg.MaxTablesPerPage {
		e.logger.Warn("page table count over limit, truncating",
			"page", pageIndex, "tables", len(tables), "max", e.cfg.MaxTablesPerPage)
		tables = tables[:e.cfg.MaxTablesPerPage]
	}

	blocks := make([]string, 0, len(tables))
	for _, table := range tables {
		e.cells.Add(int64(table.CellCount()))

		block := serializeTable(table, e.cfg.EstimatedCellSize)
		if block == "" {
			continue
		}

		fp := fingerprint(block, e.cfg.FingerprintPrefixLen)
		content, merged := e.cache.observe(fp, block)
		if !merged && e.dups.duplicate(fp) {
			e.logger.Warn("suppressing duplicate table", "page", pageIndex, "fingerprint", fp)
			continue
		}
		blocks = append(blocks, content)
	}

	if len(blocks) == 0 {
		return nil
	}
	return e.enqueue(ctx, Batch{ID: uuid.New(), Page: pageIndex, Blocks: blocks})
}

// enqueue offers the batch with a short timeout. A full queue forces
// a flush of everything queued, then blocks until space opens or ctx
// is cancelled. A batch is never silently dropped.
func (e *Engine) enqueue(ctx context.Context, batch Batch) error {
	select {
	case e.queue <- batch:
		return nil
	case <-time.After(e.cfg.EnqueueTimeout):
	}

	e.logger.Info("buffer queue full, forcing flush", "page", batch.Page)
	e.Flush()

	select {
	case e.queue <- batch:
		return nil
	case <-ctx.Done():
		e.logger.Error("enqueue aborted", "page", batch.Page, "error", ctx.Err())
		return ctx.Err()
	}
}

// Flush drains all queued batches and hands them to one detached
// worker task. Idempotent when the queue is empty.
func (e *Engine) Flush() {
	var batches []Batch
	for {
		select {
		case b := <-e.queue:
			batches = append(batches, b)
		default:
			e.spawn(batches)
			return
		}
	}
}

// spawn runs one dispatch task for a drained set of batches.
func (e *Engine) spawn(batches []Batch) {
	if len(batches) == 0 {
		return
	}
	e.tasks.Add(1)
	go func() {
		defer e.tasks.Done()
		e.inFlight.Add(1)
		defer e.inFlight.Add(-1)
		e.dispatch(batches)
	}()
}

// Shutdown flushes queued work, emits the cache remainder as a final
// batch, stops the sweep, and waits for outstanding tasks until ctx
// expires. Blocks still in flight when ctx expires are abandoned.
func (e *Engine) Shutdown(ctx context.Context) error {
	e.Flush()

	if remaining := e.cache.drain(); len(remaining) > 0 {
		e.logger.Info("flushing reconcile cache", "entries", len(remaining))
		e.spawn([]Batch{{ID: uuid.New(), Page: -1, Blocks: remaining}})
	}
	e.cache.close()

	done := make(chan struct{})
	go func() {
		e.tasks.Wait()
		close(done)
	}()

	select {
	case <-done:
		e.logger.Info("engine shut down")
		return nil
	case <-ctx.Done():
		e.logger.Error("shutdown wait expired", "in_flight", e.inFlight.Load())
		return ctx.Err()
	}
}

// dispatch invokes every consumer on every block, preserving block
// order within each batch. A single consumer's failure is logged and
// isolated from sibling consumers and subsequent blocks.
func (e *Engine) dispatch(batches []Batch) {
	for _, batch := range batches {
		for _, block := range batch.Blocks {
			for _, c := range e.consumers {
				if err := e.invoke(c, block); err != nil {
					e.logger.Error("mapping consumer failed",
						"consumer", c.Name(), "batch", batch.ID, "page", batch.Page, "error", err)
				}
			}
		}
	}
}

// invoke shields the worker from a panicking consumer.
func (e *Engine) invoke(c mapping.Consumer, block string) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = &consumerPanicError{consumer: c.Name(), value: r}
		}
	}()
	return c.Process(block)
}
