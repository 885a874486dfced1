package ingestion

import (
	"context"
	"errors"
	"iter"
	"testing"
	"time"

	"github.com/poiesic/canonize/core"
	"github.com/poiesic/canonize/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeRepo records bulk upserts and can be programmed to reject records
// or fail outright.
type fakeRepo struct {
	batches    [][]*core.CanonicalRecord
	rejectIDs  map[string]bool
	failUpsert error
}

func (f *fakeRepo) BulkUpsert(ctx context.Context, records ...*core.CanonicalRecord) (storage.BulkResult, error) {
	if f.failUpsert != nil {
		return storage.BulkResult{}, f.failUpsert
	}
	batch := make([]*core.CanonicalRecord, len(records))
	copy(batch, records)
	f.batches = append(f.batches, batch)

	var res storage.BulkResult
	for _, record := range records {
		if f.rejectIDs[record.ConversationID] {
			res.Rejected++
		} else {
			res.Accepted++
		}
	}
	return res, nil
}

func (f *fakeRepo) Get(ctx context.Context, id string) (*core.CanonicalRecord, error) {
	return nil, storage.ErrNotFound
}

func (f *fakeRepo) FindBySource(ctx context.Context, dataset, split string) ([]*core.CanonicalRecord, error) {
	return nil, nil
}

func (f *fakeRepo) CountBySource(ctx context.Context, dataset, split string) (int, error) {
	return 0, nil
}

func (f *fakeRepo) SearchText(ctx context.Context, term string, limit int) ([]*core.CanonicalRecord, error) {
	return nil, nil
}

func (f *fakeRepo) All(ctx context.Context) iter.Seq2[*core.CanonicalRecord, error] {
	return func(yield func(*core.CanonicalRecord, error) bool) {}
}

func (f *fakeRepo) RebuildIndexes(ctx context.Context) (int, error) { return 0, nil }

func (f *fakeRepo) Close() error { return nil }

func writerTestRecord(id string) *core.CanonicalRecord {
	return &core.CanonicalRecord{
		ConversationID: id,
		Source:         core.Source{Platform: "hf", Dataset: "ds", Split: "train"},
		Messages:       []core.Message{{Role: core.RoleUser, Text: "hello"}},
		Meta:           core.Meta{Tags: []string{}, ImportedAt: time.Now().UTC()},
	}
}

func TestNewBatchWriterRequiresRepo(t *testing.T) {
	_, err := NewBatchWriter(nil, 10)
	assert.ErrorIs(t, err, ErrRepositoryRequired)
}

func TestNewBatchWriterDefaultCapacity(t *testing.T) {
	w, err := NewBatchWriter(&fakeRepo{}, 0)
	require.NoError(t, err)
	assert.Equal(t, DefaultBatchSize, w.capacity)
}

func TestBatchWriterAutoFlush(t *testing.T) {
	repo := &fakeRepo{}
	w, err := NewBatchWriter(repo, 3)
	require.NoError(t, err)

	ctx := context.Background()
	for i, id := range []string{"a", "b", "c", "d"} {
		require.NoError(t, w.Offer(ctx, writerTestRecord(id)))
		if i < 2 {
			assert.Empty(t, repo.batches, "flushed before capacity")
		}
	}

	// Capacity 3 flushes once; "d" stays buffered.
	require.Len(t, repo.batches, 1)
	assert.Len(t, repo.batches[0], 3)
	assert.Equal(t, 1, w.Pending())

	_, err = w.Flush(ctx)
	require.NoError(t, err)
	require.Len(t, repo.batches, 2)
	assert.Equal(t, 0, w.Pending())

	accepted, rejected := w.Totals()
	assert.Equal(t, 4, accepted)
	assert.Equal(t, 0, rejected)
}

func TestBatchWriterRefusesInvalid(t *testing.T) {
	repo := &fakeRepo{}
	w, err := NewBatchWriter(repo, 10)
	require.NoError(t, err)

	bad := writerTestRecord("x")
	bad.Messages = nil

	err = w.Offer(context.Background(), bad)
	assert.ErrorIs(t, err, core.ErrInvalidRecord)
	assert.Equal(t, 0, w.Pending())
}

func TestBatchWriterCountsRejections(t *testing.T) {
	repo := &fakeRepo{rejectIDs: map[string]bool{"dup": true}}
	w, err := NewBatchWriter(repo, 10)
	require.NoError(t, err)

	ctx := context.Background()
	require.NoError(t, w.Offer(ctx, writerTestRecord("fresh")))
	require.NoError(t, w.Offer(ctx, writerTestRecord("dup")))

	res, err := w.Flush(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, res.Accepted)
	assert.Equal(t, 1, res.Rejected)

	accepted, rejected := w.Totals()
	assert.Equal(t, 1, accepted)
	assert.Equal(t, 1, rejected)
}

func TestBatchWriterFlushEmptiesBufferOnError(t *testing.T) {
	repo := &fakeRepo{failUpsert: errors.New("disk gone")}
	w, err := NewBatchWriter(repo, 10)
	require.NoError(t, err)

	ctx := context.Background()
	require.NoError(t, w.Offer(ctx, writerTestRecord("a")))

	_, err = w.Flush(ctx)
	assert.Error(t, err)
	// The batch is attempted exactly once, never retried.
	assert.Equal(t, 0, w.Pending())
}

func TestBatchWriterFlushEmptyBuffer(t *testing.T) {
	repo := &fakeRepo{}
	w, err := NewBatchWriter(repo, 10)
	require.NoError(t, err)

	res, err := w.Flush(context.Background())
	require.NoError(t, err)
	assert.Equal(t, storage.BulkResult{}, res)
	assert.Empty(t, repo.batches)
}
