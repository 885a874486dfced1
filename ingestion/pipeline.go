package ingestion

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"runtime"
	"sync"

	"github.com/panjf2000/ants/v2"
	"github.com/poiesic/canonize/adapter"
	"github.com/poiesic/canonize/core"
	"github.com/poiesic/canonize/normalize"
	"github.com/poiesic/canonize/storage"
)

// Pipeline drives source streams through the adapter, the normalizer and
// the batch writer. One pipeline can process many sources; concurrent
// sources run on the worker pool, each with its own writer, so the only
// shared state is the storage backend itself.
type Pipeline struct {
	repo       storage.ConversationRepository
	registry   *adapter.Registry
	normalizer *normalize.Normalizer
	pool       *ants.Pool
	batchSize  int
	logger     *slog.Logger
}

// Report holds the per-source ingestion counts. Counts are reported even
// when the run ends with an error.
type Report struct {
	Dataset  string
	Split    string
	Read     int // rows pulled from the source
	Skipped  int // unreadable rows plus rows filtered as content-free
	Accepted int // records written by the store
	Rejected int // records the store rejected (duplicates, mostly)
	Err      error
}

// String renders the per-split summary line.
func (r *Report) String() string {
	return fmt.Sprintf("[%s:%s] inserted: %d (rejected: %d, skipped: %d)",
		r.Dataset, r.Split, r.Accepted, r.Rejected, r.Skipped)
}

// Option configures a Pipeline.
type Option func(*Pipeline) error

// WithPoolSize sets the worker pool size for concurrent source
// processing. Default is runtime.NumCPU() / 2, with a minimum of 1.
func WithPoolSize(size int) Option {
	return func(p *Pipeline) error {
		if size < 1 {
			size = 1
		}
		if p.pool != nil {
			p.pool.Release()
		}
		pool, err := ants.NewPool(size)
		if err != nil {
			return err
		}
		p.pool = pool
		return nil
	}
}

// WithBatchSize sets the bulk-write buffer capacity.
// Default is DefaultBatchSize.
func WithBatchSize(size int) Option {
	return func(p *Pipeline) error {
		if size > 0 {
			p.batchSize = size
		}
		return nil
	}
}

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(p *Pipeline) error {
		if logger == nil {
			logger = slog.Default()
		}
		p.logger = logger
		return nil
	}
}

// NewPipeline creates an ingestion pipeline.
func NewPipeline(
	repo storage.ConversationRepository,
	registry *adapter.Registry,
	normalizer *normalize.Normalizer,
	opts ...Option,
) (*Pipeline, error) {
	if repo == nil {
		return nil, ErrRepositoryRequired
	}
	if registry == nil {
		return nil, ErrRegistryRequired
	}
	if normalizer == nil {
		return nil, ErrNormalizerRequired
	}

	poolSize := runtime.NumCPU() / 2
	if poolSize < 1 {
		poolSize = 1
	}
	pool, err := ants.NewPool(poolSize)
	if err != nil {
		return nil, err
	}

	p := &Pipeline{
		repo:       repo,
		registry:   registry,
		normalizer: normalizer,
		pool:       pool,
		batchSize:  DefaultBatchSize,
		logger:     slog.Default(),
	}

	for _, opt := range opts {
		if optErr := opt(p); optErr != nil {
			p.Release()
			return nil, optErr
		}
	}

	return p, nil
}

// Run ingests one source using the adapter registered for its dataset.
func (p *Pipeline) Run(ctx context.Context, src Source) (*Report, error) {
	ad, ok := p.registry.Lookup(src.Dataset())
	if !ok {
		report := &Report{Dataset: src.Dataset(), Split: src.Split()}
		report.Err = fmt.Errorf("%w: %s (available: %v)", ErrNoAdapter, src.Dataset(), p.registry.Datasets())
		return report, report.Err
	}
	return p.RunWith(ctx, src, ad)
}

// RunWith ingests one source with an explicit adapter, bypassing the
// registry. The generic fallback adapter comes through here.
//
// Row-level problems never abort the stream: unreadable rows are logged
// and skipped, content-free rows are filtered, duplicate identities are
// counted by the store. Only a storage-level failure ends the run early.
// A context cancellation is honored at row boundaries, with the current
// buffer still flushed so no record is left half-written.
func (p *Pipeline) RunWith(ctx context.Context, src Source, ad adapter.Adapter) (*Report, error) {
	report := &Report{Dataset: src.Dataset(), Split: src.Split()}

	writer, err := NewBatchWriter(p.repo, p.batchSize)
	if err != nil {
		report.Err = err
		return report, err
	}

	ordinal := 0
	for row, rowErr := range src.Rows(ctx) {
		if ctx.Err() != nil {
			break
		}
		if rowErr != nil {
			report.Skipped++
			p.logger.Warn("skipping unreadable row",
				"dataset", src.Dataset(), "split", src.Split(), "err", rowErr)
			continue
		}
		report.Read++

		assignment := ad.Adapt(row, ordinal)
		ordinal++

		record, ok := p.normalizer.Normalize(ad.Platform(), src.Dataset(), src.Split(), assignment)
		if !ok {
			report.Skipped++
			continue
		}

		if err := writer.Offer(ctx, record); err != nil {
			if errors.Is(err, core.ErrInvalidRecord) {
				report.Skipped++
				p.logger.Warn("dropping invalid record",
					"conversation_id", record.ConversationID, "err", err)
				continue
			}
			// Storage failure: fatal for this source's run.
			report.Accepted, report.Rejected = writer.Totals()
			report.Err = err
			return report, err
		}
	}

	// The shutdown flush must not be torn by the very cancellation that
	// triggered it: rows read before the stop are written, then the run
	// reports the cancellation.
	_, flushErr := writer.Flush(context.WithoutCancel(ctx))
	report.Accepted, report.Rejected = writer.Totals()
	if flushErr != nil {
		report.Err = flushErr
		return report, flushErr
	}
	if err := ctx.Err(); err != nil {
		report.Err = err
		return report, err
	}

	p.logger.Info("source ingested",
		"dataset", report.Dataset, "split", report.Split,
		"read", report.Read, "accepted", report.Accepted,
		"rejected", report.Rejected, "skipped", report.Skipped)
	return report, nil
}

// RunAll ingests sources concurrently on the worker pool, one report per
// source in input order. A failed source never prevents its siblings from
// being attempted; per-source errors land in Report.Err.
func (p *Pipeline) RunAll(ctx context.Context, sources []Source) []*Report {
	reports := make([]*Report, len(sources))
	var wg sync.WaitGroup

	for i, src := range sources {
		wg.Add(1)
		submitErr := p.pool.Submit(func() {
			defer wg.Done()
			report, err := p.Run(ctx, src)
			if err != nil {
				p.logger.Error("source ingestion failed",
					"dataset", src.Dataset(), "split", src.Split(), "err", err)
			}
			reports[i] = report
		})
		if submitErr != nil {
			wg.Done()
			reports[i] = &Report{Dataset: src.Dataset(), Split: src.Split(), Err: submitErr}
		}
	}

	wg.Wait()
	return reports
}

// Release releases the worker pool. The pipeline should not be used
// after calling Release.
func (p *Pipeline) Release() {
	if p.pool != nil {
		p.pool.Release()
	}
}
