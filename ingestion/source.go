package ingestion

import (
	"context"
	"iter"

	"github.com/poiesic/canonize/core"
)

// Source is one (dataset, split) stream of raw rows. It is satisfied by
// the tabular file reader, the remote dataset client, or any other row
// producer.
type Source interface {
	// Dataset is the identifier the adapter registry is keyed by.
	Dataset() string

	// Split names the dataset split this stream belongs to.
	Split() string

	// Rows yields raw records in arrival order. A row-level read failure
	// is yielded as (nil, err) and the stream continues when it can;
	// iteration ends at end-of-stream or when the consumer breaks.
	Rows(ctx context.Context) iter.Seq2[core.RawRecord, error]
}
