package scrub

import (
	"regexp"
	"strings"
	"testing"
)

var surrogateRE = regexp.MustCompile(`<PII:[0-9a-f]{10}>`)

func TestTextRedactsEmail(t *testing.T) {
	out := Text("Please reach me at john.doe@example.com for details")

	if strings.Contains(out, "john.doe@example.com") {
		t.Fatalf("email survived scrubbing: %q", out)
	}
	if !surrogateRE.MatchString(out) {
		t.Fatalf("expected surrogate token in %q", out)
	}
	if !strings.Contains(out, "Please reach me at ") {
		t.Fatalf("non-PII text was altered: %q", out)
	}
}

func TestTextRedactsPhone(t *testing.T) {
	tests := []struct {
		name string
		in   string
	}{
		{"dashed", "call 555-123-4567 now"},
		{"dotted", "call 555.123.4567 now"},
		{"international", "call +1 800 555 0199 now"},
		{"parenthesized", "call (020) 7946 0958 now"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out := Text(tt.in)
			if !surrogateRE.MatchString(out) {
				t.Fatalf("expected surrogate token in %q", out)
			}
			if !strings.HasPrefix(out, "call ") || !strings.HasSuffix(out, " now") {
				t.Fatalf("non-PII text was altered: %q", out)
			}
		})
	}
}

func TestTextRedactsIP(t *testing.T) {
	out := Text("server 192.168.1.100 is unreachable")

	if strings.Contains(out, "192.168.1.100") {
		t.Fatalf("IP survived scrubbing: %q", out)
	}
	if !surrogateRE.MatchString(out) {
		t.Fatalf("expected surrogate token in %q", out)
	}
}

func TestTextPhonePassClaimsDottedQuadPrefix(t *testing.T) {
	// "192.168" of a dotted quad matches the phone pattern, which runs
	// first, so the address leaves as a phone surrogate plus a digit tail
	// rather than one IP surrogate. The guarantee is only that no octet
	// pair of the raw address survives.
	out := Text("server 192.168.1.100 is unreachable")

	if strings.Contains(out, "192.168") {
		t.Fatalf("address prefix survived scrubbing: %q", out)
	}
	if ipRE.MatchString(out) {
		t.Fatalf("a dotted quad survived scrubbing: %q", out)
	}
	if !surrogateRE.MatchString(out) {
		t.Fatalf("expected surrogate token in %q", out)
	}
	if !strings.Contains(out, "server ") || !strings.Contains(out, " is unreachable") {
		t.Fatalf("non-PII text was altered: %q", out)
	}
}

func TestTextChainsAllFamilies(t *testing.T) {
	out := Text("mail bob@corp.io, host 10.0.0.1")

	for _, raw := range []string{"bob@corp.io", "10.0.0.1"} {
		if strings.Contains(out, raw) {
			t.Fatalf("%q survived scrubbing: %q", raw, out)
		}
	}
	if n := strings.Count(out, "<PII:"); n < 2 {
		t.Fatalf("expected at least 2 surrogates, got %d in %q", n, out)
	}
}

func TestTextDeterministic(t *testing.T) {
	in := "bob@corp.io wrote from 10.0.0.1, then bob@corp.io again"

	first := Text(in)
	second := Text(in)
	if first != second {
		t.Fatalf("scrubbing is not deterministic: %q vs %q", first, second)
	}
	if strings.Contains(first, "bob@corp.io") {
		t.Fatalf("email survived scrubbing: %q", first)
	}
}

func TestTextPassesCleanTextThrough(t *testing.T) {
	in := "My printer refuses to print anything at all"
	if out := Text(in); out != in {
		t.Fatalf("clean text was altered: %q", out)
	}
}

func TestTextEmpty(t *testing.T) {
	if out := Text(""); out != "" {
		t.Fatalf("expected empty output, got %q", out)
	}
}

func TestSurrogateFormat(t *testing.T) {
	token := Surrogate(FamilyEmail, "a@b.com")
	if !surrogateRE.MatchString(token) {
		t.Fatalf("malformed surrogate %q", token)
	}
}

func TestSurrogateFamilySalting(t *testing.T) {
	// The same span must redact differently under different families.
	if Surrogate(FamilyEmail, "12345") == Surrogate(FamilyPhone, "12345") {
		t.Fatal("expected family-distinct surrogates for identical spans")
	}
	if Surrogate(FamilyEmail, "a@b.com") != Surrogate(FamilyEmail, "a@b.com") {
		t.Fatal("expected stable surrogate for identical span and family")
	}
}
