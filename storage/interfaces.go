package storage

import (
	"context"
	"iter"

	"github.com/poiesic/canonize/core"
)

// BulkResult reports the outcome of one bulk upsert: how many documents
// were written and how many were rejected (duplicate identities or
// invalid documents). Rejections are expected during re-runs and are not
// errors.
type BulkResult struct {
	Accepted int
	Rejected int
}

// ConversationRepository provides operations for managing canonical
// conversation records. Implementations must be thread-safe, enforce
// uniqueness of the conversation ID, and keep first-write-wins semantics
// for duplicates.
type ConversationRepository interface {
	// BulkUpsert writes the given records in one batch. A record whose
	// conversation ID already exists is counted as rejected and left
	// untouched; an invalid record is counted as rejected and skipped.
	// Only a storage-level failure returns an error, alongside the
	// counts accumulated so far.
	BulkUpsert(ctx context.Context, records ...*core.CanonicalRecord) (BulkResult, error)

	// Get retrieves a record by conversation ID.
	// Returns ErrNotFound if the record doesn't exist.
	Get(ctx context.Context, conversationID string) (*core.CanonicalRecord, error)

	// FindBySource retrieves all records ingested from one
	// (dataset, split) pair, via the source index.
	FindBySource(ctx context.Context, dataset, split string) ([]*core.CanonicalRecord, error)

	// CountBySource counts the records of one (dataset, split) pair.
	CountBySource(ctx context.Context, dataset, split string) (int, error)

	// SearchText finds records whose message text contains the term,
	// via the token index. Returns up to limit records.
	SearchText(ctx context.Context, term string, limit int) ([]*core.CanonicalRecord, error)

	// All iterates every stored record. The iterator stops early when
	// the consumer breaks or yields an error for a corrupt document.
	All(ctx context.Context) iter.Seq2[*core.CanonicalRecord, error]

	// RebuildIndexes scans all primary records and rewrites the
	// secondary and token index entries. Returns the number of records
	// indexed.
	RebuildIndexes(ctx context.Context) (int, error)

	// Close closes the storage backend and releases resources.
	Close() error
}
