package core

import (
	"regexp"
	"testing"
)

func TestAssignIdentityPrefersRowKey(t *testing.T) {
	tests := []struct {
		name   string
		rowKey string
		want   string
	}{
		{"plain key", "42", "42"},
		{"padded key", "  tkt-9  ", "tkt-9"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := AssignIdentity(tt.rowKey, "ds", "train", "q", "a")
			if got != tt.want {
				t.Fatalf("expected %q, got %q", tt.want, got)
			}
		})
	}
}

func TestAssignIdentityFallsBackToContent(t *testing.T) {
	hexRE := regexp.MustCompile(`^[0-9a-f]{16}$`)

	for _, rowKey := range []string{"", "   ", "none", "None", "NULL", "NaN"} {
		got := AssignIdentity(rowKey, "ds", "train", "q", "a")
		if !hexRE.MatchString(got) {
			t.Fatalf("rowKey %q: expected 16 hex chars, got %q", rowKey, got)
		}
	}
}

func TestContentIdentityDeterministic(t *testing.T) {
	a := ContentIdentity("ds", "train", "question", "answer")
	b := ContentIdentity("ds", "train", "question", "answer")
	if a != b {
		t.Fatalf("identical content produced distinct identities: %q vs %q", a, b)
	}
}

func TestContentIdentitySensitivity(t *testing.T) {
	base := ContentIdentity("ds", "train", "question", "answer")

	variants := []string{
		ContentIdentity("other", "train", "question", "answer"),
		ContentIdentity("ds", "test", "question", "answer"),
		ContentIdentity("ds", "train", "different", "answer"),
		ContentIdentity("ds", "train", "question", "different"),
	}
	for i, v := range variants {
		if v == base {
			t.Fatalf("variant %d collided with base identity %q", i, base)
		}
	}
}

func TestConversationIDFormat(t *testing.T) {
	got := ConversationID("MakTek/Customer_support_faqs_dataset", "train", "42")
	want := "MakTek/Customer_support_faqs_dataset:train:42"
	if got != want {
		t.Fatalf("expected %q, got %q", want, got)
	}
}
