package storage

import (
	"testing"
	"time"

	"github.com/poiesic/canonize/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConversationRoundTrip(t *testing.T) {
	ts := time.Date(2025, 6, 1, 12, 30, 0, 0, time.UTC)
	lang := "en"
	intent := "access"
	category := "Product Support"
	resolved := true

	record := &core.CanonicalRecord{
		ConversationID: "ds:train:42",
		Source:         core.Source{Platform: "hf", Dataset: "ds", Split: "train"},
		Messages: []core.Message{
			{Role: core.RoleUser, Text: "my vpn is down", Timestamp: &ts, Language: &lang},
			{Role: core.RoleAgent, Text: "restart the client"},
		},
		Labels: core.Labels{Intent: &intent, Category: &category, Resolved: &resolved},
		Meta: core.Meta{
			Tags:       []string{"it", "support"},
			RawRowID:   "42",
			ImportedAt: time.Date(2025, 6, 1, 13, 0, 0, 0, time.UTC),
		},
	}

	back, err := UnmarshalConversation(MarshalConversation(record))
	require.NoError(t, err)
	assert.Equal(t, record, back)
}

func TestConversationRoundTripMinimal(t *testing.T) {
	// Absent optionals must come back absent, not zero-valued.
	record := &core.CanonicalRecord{
		ConversationID: "ds:train:1",
		Source:         core.Source{Platform: "kaggle", Dataset: "ds", Split: "train"},
		Messages:       []core.Message{{Role: core.RoleUser, Text: "hello"}},
		Meta: core.Meta{
			Tags:       []string{},
			RawRowID:   "1",
			ImportedAt: time.Unix(1700000000, 0).UTC(),
		},
	}

	back, err := UnmarshalConversation(MarshalConversation(record))
	require.NoError(t, err)
	assert.Equal(t, record, back)
	assert.Nil(t, back.Labels.Intent)
	assert.Nil(t, back.Messages[0].Timestamp)
	assert.Nil(t, back.Messages[0].Language)
}

func TestUnmarshalConversationGarbage(t *testing.T) {
	_, err := UnmarshalConversation([]byte{0xff})
	assert.Error(t, err)
}
