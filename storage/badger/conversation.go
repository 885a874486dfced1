package badger

import (
	"context"
	"errors"
	"iter"
	"strings"

	"github.com/dgraph-io/badger/v4"
	"github.com/poiesic/canonize/core"
	"github.com/poiesic/canonize/storage"
)

// ConversationRepository implements storage.ConversationRepository for
// BadgerDB. The conversation ID is the primary key, so uniqueness is
// enforced by a key-existence check inside the write transaction.
type ConversationRepository struct {
	backend *Backend
}

var _ storage.ConversationRepository = (*ConversationRepository)(nil)

// NewConversationRepository creates a new ConversationRepository.
func NewConversationRepository(backend *Backend) *ConversationRepository {
	return &ConversationRepository{backend: backend}
}

// NewRepository opens a disk-backed repository at path. Returns the
// storage.ConversationRepository interface to keep consumers decoupled
// from BadgerDB specifics.
func NewRepository(path string) (storage.ConversationRepository, error) {
	backend, err := OpenBackend(path, false)
	if err != nil {
		return nil, err
	}
	return NewConversationRepository(backend), nil
}

// Close closes the underlying backend.
func (r *ConversationRepository) Close() error {
	return r.backend.Close()
}

// BulkUpsert writes a batch of records with first-write-wins semantics.
// Records whose conversation ID already exists, and records that fail
// validation, are counted as rejected and skipped; they never abort the
// batch. Duplicates are not retried, which is what makes re-runs
// idempotent. Only a storage-level failure returns an error.
//
// The batch runs to completion even under a cancelled context: the
// transaction is local and fast, and a shutdown flush must never leave
// its buffer half-written. Callers cancel between batches, not inside
// one.
func (r *ConversationRepository) BulkUpsert(ctx context.Context, records ...*core.CanonicalRecord) (storage.BulkResult, error) {
	var res storage.BulkResult
	if len(records) == 0 {
		return res, nil
	}

	tx := r.backend.NewTransaction(true)
	defer func() { tx.Discard() }()

	for _, record := range records {
		if core.ValidateCanonicalRecord(record) != nil {
			res.Rejected++
			continue
		}

		_, err := tx.Get(makeConversationKey(record.ConversationID))
		switch {
		case err == nil:
			// First write wins, the duplicate is dropped.
			res.Rejected++
			continue
		case !errors.Is(err, badger.ErrKeyNotFound):
			return res, err
		}

		if err := setRecord(tx, record); err != nil {
			if !errors.Is(err, badger.ErrTxnTooBig) {
				return res, err
			}
			// Commit what fits and renew the transaction.
			if err := tx.Commit(); err != nil {
				return res, err
			}
			tx = r.backend.NewTransaction(true)
			if err := setRecord(tx, record); err != nil {
				return res, err
			}
		}
		res.Accepted++
	}

	if err := tx.Commit(); err != nil {
		return res, err
	}
	return res, nil
}

// Get retrieves a single record by conversation ID.
func (r *ConversationRepository) Get(ctx context.Context, conversationID string) (*core.CanonicalRecord, error) {
	var result *core.CanonicalRecord
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		var err error
		result, err = readConversation(tx, makeConversationKey(conversationID))
		if err != nil {
			return err
		}
		if result == nil {
			return storage.ErrNotFound
		}
		return nil
	}, false)
	return result, err
}

// FindBySource retrieves all records of one (dataset, split) pair via the
// source index.
func (r *ConversationRepository) FindBySource(ctx context.Context, dataset, split string) ([]*core.CanonicalRecord, error) {
	ids, err := r.scanIndex(ctx, makePartialSourceKey(dataset, split), 0)
	if err != nil {
		return nil, err
	}
	return r.readMany(ids)
}

// CountBySource counts the records of one (dataset, split) pair.
func (r *ConversationRepository) CountBySource(ctx context.Context, dataset, split string) (int, error) {
	ids, err := r.scanIndex(ctx, makePartialSourceKey(dataset, split), 0)
	return len(ids), err
}

// SearchText finds records whose message text contains the term, via the
// token index. Only the first token of the term is looked up.
func (r *ConversationRepository) SearchText(ctx context.Context, term string, limit int) ([]*core.CanonicalRecord, error) {
	tokens := tokenizeText(strings.ToLower(term), 1)
	if len(tokens) == 0 {
		return nil, nil
	}
	ids, err := r.scanIndex(ctx, makePartialTokenKey(tokens[0]), limit)
	if err != nil {
		return nil, err
	}
	return r.readMany(ids)
}

// All iterates every stored record in key order.
func (r *ConversationRepository) All(ctx context.Context) iter.Seq2[*core.CanonicalRecord, error] {
	return func(yield func(*core.CanonicalRecord, error) bool) {
		tx := r.backend.NewTransaction(false)
		defer tx.Discard()

		opts := badger.DefaultIteratorOptions
		opts.Prefix = []byte(conversationPrefix + ":")
		it := tx.NewIterator(opts)
		defer it.Close()

		for it.Rewind(); it.Valid(); it.Next() {
			if ctx.Err() != nil {
				return
			}
			var record *core.CanonicalRecord
			err := it.Item().Value(func(val []byte) error {
				var unmarshalErr error
				record, unmarshalErr = storage.UnmarshalConversation(val)
				return unmarshalErr
			})
			if !yield(record, err) {
				return
			}
		}
	}
}

// RebuildIndexes scans all primary records and rewrites their secondary
// and token index entries.
func (r *ConversationRepository) RebuildIndexes(ctx context.Context) (int, error) {
	count := 0
	wtx := r.backend.NewTransaction(true)
	defer func() { wtx.Discard() }()

	err := r.backend.WithTx(func(rtx *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = []byte(conversationPrefix + ":")
		it := rtx.NewIterator(opts)
		defer it.Close()

		for it.Rewind(); it.Valid(); it.Next() {
			if err := ctx.Err(); err != nil {
				return err
			}
			var record *core.CanonicalRecord
			err := it.Item().Value(func(val []byte) error {
				var unmarshalErr error
				record, unmarshalErr = storage.UnmarshalConversation(val)
				return unmarshalErr
			})
			if err != nil {
				return err
			}
			if err := setIndexEntries(wtx, record); err != nil {
				if !errors.Is(err, badger.ErrTxnTooBig) {
					return err
				}
				if err := wtx.Commit(); err != nil {
					return err
				}
				wtx = r.backend.NewTransaction(true)
				if err := setIndexEntries(wtx, record); err != nil {
					return err
				}
			}
			count++
		}
		return nil
	}, false)
	if err != nil {
		return count, err
	}

	if err := wtx.Commit(); err != nil {
		return count, err
	}
	return count, nil
}

// Helper methods

// scanIndex collects conversation IDs from an index prefix. limit 0 means
// no limit.
func (r *ConversationRepository) scanIndex(ctx context.Context, prefix []byte, limit int) ([]string, error) {
	var ids []string
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = prefix
		it := tx.NewIterator(opts)
		defer it.Close()

		for it.Rewind(); it.Valid(); it.Next() {
			if err := ctx.Err(); err != nil {
				return err
			}
			err := it.Item().Value(func(val []byte) error {
				ids = append(ids, string(val))
				return nil
			})
			if err != nil {
				return err
			}
			if limit > 0 && len(ids) >= limit {
				return nil
			}
		}
		return nil
	}, false)
	return ids, err
}

// readMany looks up full records for a set of conversation IDs. Missing
// records (stale index entries) are skipped.
func (r *ConversationRepository) readMany(ids []string) ([]*core.CanonicalRecord, error) {
	var results []*core.CanonicalRecord
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		for _, id := range ids {
			record, err := readConversation(tx, makeConversationKey(id))
			if err != nil {
				return err
			}
			if record != nil {
				results = append(results, record)
			}
		}
		return nil
	}, false)
	return results, err
}

// readConversation reads a record from the transaction. Returns nil
// without error when the key does not exist.
func readConversation(tx *badger.Txn, key []byte) (*core.CanonicalRecord, error) {
	item, err := tx.Get(key)
	if err != nil {
		if errors.Is(err, badger.ErrKeyNotFound) {
			return nil, nil
		}
		return nil, err
	}

	var record *core.CanonicalRecord
	err = item.Value(func(val []byte) error {
		var unmarshalErr error
		record, unmarshalErr = storage.UnmarshalConversation(val)
		return unmarshalErr
	})
	return record, err
}

// setRecord writes the primary document and its index entries.
func setRecord(tx *badger.Txn, record *core.CanonicalRecord) error {
	value := storage.MarshalConversation(record)
	if err := tx.Set(makeConversationKey(record.ConversationID), value); err != nil {
		return err
	}
	return setIndexEntries(tx, record)
}

// setIndexEntries writes the source, intent and token index entries for a
// record. Index values carry the conversation ID so lookups can fetch the
// primary document.
func setIndexEntries(tx *badger.Txn, record *core.CanonicalRecord) error {
	id := []byte(record.ConversationID)

	key := makeSourceKey(record.Source.Dataset, record.Source.Split, record.ConversationID)
	if err := tx.Set(key, id); err != nil {
		return err
	}

	if record.Labels.Intent != nil {
		if err := tx.Set(makeIntentKey(*record.Labels.Intent, record.ConversationID), id); err != nil {
			return err
		}
	}

	var texts []string
	for _, msg := range record.Messages {
		texts = append(texts, msg.Text)
	}
	for _, token := range tokenizeText(strings.Join(texts, " "), maxTokensPerRecord) {
		if err := tx.Set(makeTokenKey(token, record.ConversationID), id); err != nil {
			return err
		}
	}
	return nil
}
