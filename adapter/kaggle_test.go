package adapter

import (
	"testing"

	"github.com/poiesic/canonize/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParthPatilMapping(t *testing.T) {
	ra := adapt(t, "parthpatil256/it-support-ticket-data", core.RawRecord{
		"id":       "1001",
		"subject":  "Email sync broken",
		"body":     "Outlook stopped syncing this morning.",
		"answer":   "Re-add the account.",
		"type":     "Incident",
		"queue":    "IT Support",
		"priority": "high",
		"language": "en",
		"version":  "2",
		"tag_1":    "outlook",
		"tag_2":    "sync",
		"tag_5":    "email",
	})

	assert.Equal(t, "Email sync broken\n\nOutlook stopped syncing this morning.", ra.UserText)
	assert.Equal(t, "Re-add the account.", ra.AgentText)
	assert.Equal(t, "Incident", ra.Intent)
	assert.Equal(t, "IT Support", ra.Category)
	assert.Equal(t, "1001", ra.RowKey)
	assert.Equal(t, []string{
		"kaggle", "it", "support",
		"priority:high", "lang:en", "ver:2",
		"outlook", "sync", "email",
	}, ra.Tags)
}

func TestParthPatilSubjectOnly(t *testing.T) {
	ra := adapt(t, "parthpatil256/it-support-ticket-data", core.RawRecord{
		"subject": "Just a subject",
	})
	assert.Equal(t, "Just a subject", ra.UserText)
	assert.Equal(t, "0", ra.RowKey) // ordinal fallback
}

func TestTobiasBueckListTags(t *testing.T) {
	ra := adapt(t, "tobiasbueck/multilingual-customer-support-tickets", core.RawRecord{
		"Ticket_ID":  "55",
		"Body":       "Mein Konto ist gesperrt",
		"Department": "Accounts",
		"Priority":   "medium",
		"Tags":       "['billing', 'account', 'vpn']",
	})

	assert.Equal(t, "Mein Konto ist gesperrt", ra.UserText)
	assert.Equal(t, "Accounts", ra.Category)
	assert.Equal(t, "55", ra.RowKey)
	assert.Equal(t, []string{
		"kaggle", "it", "support",
		"priority:medium",
		"billing", "account", "vpn",
	}, ra.Tags)
}

func TestTobiasBueckRawTagFallback(t *testing.T) {
	ra := adapt(t, "tobiasbueck/multilingual-customer-support-tickets", core.RawRecord{
		"Body": "text",
		"Tags": "not a list literal",
	})
	assert.Contains(t, ra.Tags, "not a list literal")
}

func TestAdisonGohMapping(t *testing.T) {
	ra := adapt(t, "adisongoh/it-service-ticket-classification-dataset", core.RawRecord{
		"Document":    "Server room AC failure",
		"Topic_group": "Hardware",
	})

	assert.Equal(t, "Server room AC failure", ra.UserText)
	assert.Equal(t, "Hardware", ra.Intent)
	assert.Equal(t, "Hardware", ra.Category)
}

func TestParseListLiteral(t *testing.T) {
	tests := []struct {
		name   string
		in     string
		want   []string
		wantOK bool
	}{
		{"single quotes", "['a', 'b']", []string{"a", "b"}, true},
		{"double quotes", `["x", "y"]`, []string{"x", "y"}, true},
		{"mixed quoting", `['a', "b"]`, []string{"a", "b"}, true},
		{"bare elements", "[foo, bar]", []string{"foo", "bar"}, true},
		{"empty list", "[]", nil, true},
		{"padded", "  ['a']  ", []string{"a"}, true},
		{"not bracketed", "a, b", nil, false},
		{"unclosed quote", "['a]", nil, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := parseListLiteral(tt.in)
			require.Equal(t, tt.wantOK, ok)
			if tt.wantOK {
				assert.Equal(t, tt.want, got)
			}
		})
	}
}
