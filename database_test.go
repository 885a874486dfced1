package canonize

import (
	"context"
	"testing"

	"github.com/poiesic/canonize/core"
	"github.com/poiesic/canonize/ingestion"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDatabaseLifecycle(t *testing.T) {
	db, err := NewDatabase(t.TempDir())
	require.NoError(t, err)

	repo := db.Conversations()
	require.NotNil(t, repo)

	record := &core.CanonicalRecord{
		ConversationID: "ds:train:1",
		Source:         core.Source{Platform: "hf", Dataset: "ds", Split: "train"},
		Messages:       []core.Message{{Role: core.RoleUser, Text: "hello"}},
		Meta:           core.Meta{Tags: []string{}},
	}
	res, err := repo.BulkUpsert(context.Background(), record)
	require.NoError(t, err)
	assert.Equal(t, 1, res.Accepted)

	require.NoError(t, db.Close())
}

func TestDatabasePipelineWiring(t *testing.T) {
	db, err := NewDatabase(t.TempDir())
	require.NoError(t, err)
	defer db.Close()

	pipeline, err := db.NewIngestionPipeline(ingestion.WithBatchSize(10))
	require.NoError(t, err)
	defer pipeline.Release()
}
