package ingestion

import (
	"context"

	"github.com/poiesic/canonize/core"
	"github.com/poiesic/canonize/storage"
)

// DefaultBatchSize is the buffer capacity that triggers an automatic
// flush.
const DefaultBatchSize = 1000

// BatchWriter accumulates normalized records and writes them to the
// repository in bounded bulk upserts. One writer serves one source stream
// and is not safe for concurrent use; concurrent pipelines each hold
// their own writer.
type BatchWriter struct {
	repo     storage.ConversationRepository
	capacity int

	buf      []*core.CanonicalRecord
	accepted int
	rejected int
}

// NewBatchWriter creates a writer flushing every capacity records.
// capacity values below 1 fall back to DefaultBatchSize.
func NewBatchWriter(repo storage.ConversationRepository, capacity int) (*BatchWriter, error) {
	if repo == nil {
		return nil, ErrRepositoryRequired
	}
	if capacity < 1 {
		capacity = DefaultBatchSize
	}
	return &BatchWriter{
		repo:     repo,
		capacity: capacity,
		buf:      make([]*core.CanonicalRecord, 0, capacity),
	}, nil
}

// Offer buffers a record, flushing automatically once the buffer reaches
// capacity. Records that fail validation are refused with a
// core.ErrInvalidRecord error before they can reach the store.
func (w *BatchWriter) Offer(ctx context.Context, record *core.CanonicalRecord) error {
	if err := core.ValidateCanonicalRecord(record); err != nil {
		return err
	}
	w.buf = append(w.buf, record)
	if len(w.buf) >= w.capacity {
		_, err := w.Flush(ctx)
		return err
	}
	return nil
}

// Flush performs one bulk upsert for all buffered records and returns its
// counts. Rejected records (duplicates from prior runs, mostly) are
// counted, never retried. The buffer is empty afterwards even when the
// write fails, mirroring the at-most-one-effective-write contract: a
// batch is attempted exactly once.
func (w *BatchWriter) Flush(ctx context.Context) (storage.BulkResult, error) {
	if len(w.buf) == 0 {
		return storage.BulkResult{}, nil
	}
	res, err := w.repo.BulkUpsert(ctx, w.buf...)
	w.buf = w.buf[:0]
	w.accepted += res.Accepted
	w.rejected += res.Rejected
	return res, err
}

// Pending returns the number of buffered, unflushed records.
func (w *BatchWriter) Pending() int {
	return len(w.buf)
}

// Totals returns the running counts of records accepted and rejected by
// the store across all flushes.
func (w *BatchWriter) Totals() (accepted, rejected int) {
	return w.accepted, w.rejected
}
