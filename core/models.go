package core

import (
	"encoding/json"
	"fmt"
	"time"
)

// Role identifies the author of a conversation message.
type Role int

const (
	// RoleUser marks the customer side of a conversation.
	RoleUser Role = iota + 1
	// RoleAgent marks the support side of a conversation.
	RoleAgent
)

// String returns the wire name of the role ("user" or "agent").
func (r Role) String() string {
	switch r {
	case RoleUser:
		return "user"
	case RoleAgent:
		return "agent"
	default:
		return fmt.Sprintf("role(%d)", int(r))
	}
}

// MarshalJSON serializes the role as its wire name.
func (r Role) MarshalJSON() ([]byte, error) {
	return json.Marshal(r.String())
}

// UnmarshalJSON parses a role from its wire name.
func (r *Role) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	switch s {
	case "user":
		*r = RoleUser
	case "agent":
		*r = RoleAgent
	default:
		return fmt.Errorf("%w: %q", ErrInvalidRole, s)
	}
	return nil
}

// Message is a single utterance within a canonical conversation.
// Text is always the scrubbed form; raw source text never leaves the
// normalizer.
type Message struct {
	Role      Role       `json:"role"`
	Text      string     `json:"text"`
	Timestamp *time.Time `json:"ts"`
	Language  *string    `json:"lang"`
}

// Source records the provenance of a conversation. It is immutable after
// the record is built.
type Source struct {
	Platform string `json:"platform"`
	Dataset  string `json:"dataset"`
	Split    string `json:"split"`
}

// Labels holds classification labels carried over from the source.
type Labels struct {
	Intent   *string `json:"intent"`
	Category *string `json:"category"`
	Resolved *bool   `json:"resolved"`
}

// Meta holds bookkeeping fields attached to a conversation.
type Meta struct {
	Tags       []string  `json:"tags"`
	RawRowID   string    `json:"raw_row_id"`
	ImportedAt time.Time `json:"imported_at"`
}

// CanonicalRecord is the unified conversation document every source is
// mapped into. Records are created by the normalizer and never mutated
// afterwards.
type CanonicalRecord struct {
	ConversationID string    `json:"conversation_id"`
	Source         Source    `json:"source"`
	Messages       []Message `json:"messages"`
	Labels         Labels    `json:"labels"`
	Meta           Meta      `json:"meta"`
}

// ConversationID derives the globally unique document key from a dataset,
// split and row identity.
func ConversationID(dataset, split, rowIdentity string) string {
	return dataset + ":" + split + ":" + rowIdentity
}

// RawRecord is a source-native row: column name to arbitrary scalar. It is
// owned transiently by the adapter and normalizer during one pass and is
// never persisted.
type RawRecord map[string]any

// RoleAssignment is the output of a source adapter: raw columns resolved
// into semantic roles. Empty strings mean the role or label is absent.
type RoleAssignment struct {
	UserText  string
	AgentText string
	Intent    string
	Category  string
	Tags      []string
	RowKey    string
}
