package core

import (
	"errors"
	"testing"
	"time"
)

func TestValidateCanonicalRecord(t *testing.T) {
	valid := func() *CanonicalRecord {
		return &CanonicalRecord{
			ConversationID: "ds:train:1",
			Source:         Source{Platform: "hf", Dataset: "ds", Split: "train"},
			Messages: []Message{
				{Role: RoleUser, Text: "hello"},
				{Role: RoleAgent, Text: "hi"},
			},
			Meta: Meta{Tags: []string{}, ImportedAt: time.Now().UTC()},
		}
	}

	tests := []struct {
		name    string
		mutate  func(*CanonicalRecord) *CanonicalRecord
		wantErr error
	}{
		{
			name:    "valid record",
			mutate:  func(r *CanonicalRecord) *CanonicalRecord { return r },
			wantErr: nil,
		},
		{
			name:    "nil record",
			mutate:  func(*CanonicalRecord) *CanonicalRecord { return nil },
			wantErr: ErrInvalidRecord,
		},
		{
			name: "empty conversation id",
			mutate: func(r *CanonicalRecord) *CanonicalRecord {
				r.ConversationID = ""
				return r
			},
			wantErr: ErrEmptyConversationID,
		},
		{
			name: "empty dataset",
			mutate: func(r *CanonicalRecord) *CanonicalRecord {
				r.Source.Dataset = ""
				return r
			},
			wantErr: ErrEmptyDataset,
		},
		{
			name: "no messages",
			mutate: func(r *CanonicalRecord) *CanonicalRecord {
				r.Messages = nil
				return r
			},
			wantErr: ErrNoMessages,
		},
		{
			name: "empty message text",
			mutate: func(r *CanonicalRecord) *CanonicalRecord {
				r.Messages[1].Text = ""
				return r
			},
			wantErr: ErrEmptyMessageText,
		},
		{
			name: "invalid role",
			mutate: func(r *CanonicalRecord) *CanonicalRecord {
				r.Messages[0].Role = Role(99)
				return r
			},
			wantErr: ErrInvalidRole,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateCanonicalRecord(tt.mutate(valid()))
			if tt.wantErr == nil {
				if err != nil {
					t.Fatalf("expected no error, got %v", err)
				}
				return
			}
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("expected %v, got %v", tt.wantErr, err)
			}
			if !errors.Is(err, ErrInvalidRecord) {
				t.Fatalf("expected error wrapped in ErrInvalidRecord, got %v", err)
			}
		})
	}
}

func TestValidateRole(t *testing.T) {
	if err := ValidateRole(RoleUser); err != nil {
		t.Fatalf("RoleUser: %v", err)
	}
	if err := ValidateRole(RoleAgent); err != nil {
		t.Fatalf("RoleAgent: %v", err)
	}
	if err := ValidateRole(Role(0)); !errors.Is(err, ErrInvalidRole) {
		t.Fatalf("expected ErrInvalidRole, got %v", err)
	}
}
