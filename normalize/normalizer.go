package normalize

import (
	"time"

	"github.com/poiesic/canonize/core"
	"github.com/poiesic/canonize/scrub"
)

// LanguageDetector identifies the language of a text span. Detection is
// best-effort: implementations report ok=false instead of failing.
type LanguageDetector interface {
	Detect(text string) (tag string, ok bool)
}

// Normalizer maps adapter role assignments into canonical conversation
// records. It is stateless apart from its collaborators and safe for
// concurrent use.
type Normalizer struct {
	detector LanguageDetector
	now      func() time.Time
}

// Option configures a Normalizer.
type Option func(*Normalizer)

// WithClock overrides the import-timestamp clock. Used by tests.
func WithClock(now func() time.Time) Option {
	return func(n *Normalizer) {
		if now != nil {
			n.now = now
		}
	}
}

// New creates a Normalizer.
func New(detector LanguageDetector, opts ...Option) (*Normalizer, error) {
	if detector == nil {
		return nil, ErrDetectorRequired
	}
	n := &Normalizer{
		detector: detector,
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(n)
	}
	return n, nil
}

// Normalize builds the canonical record for one raw row. It scrubs both
// texts, detects the language of each scrubbed text, and keeps only roles
// with non-empty scrubbed text, user before agent. Rows where both roles
// end up empty contribute nothing and return ok=false.
//
// Identity is resolved over the scrubbed texts, so it is stable regardless
// of the raw PII content. Missing fields are never an error; they degrade
// to absent values.
func (n *Normalizer) Normalize(platform, dataset, split string, ra core.RoleAssignment) (*core.CanonicalRecord, bool) {
	userText := scrub.Text(ra.UserText)
	agentText := scrub.Text(ra.AgentText)

	var messages []core.Message
	if userText != "" {
		messages = append(messages, core.Message{
			Role:     core.RoleUser,
			Text:     userText,
			Language: n.langTag(userText),
		})
	}
	if agentText != "" {
		messages = append(messages, core.Message{
			Role:     core.RoleAgent,
			Text:     agentText,
			Language: n.langTag(agentText),
		})
	}
	if len(messages) == 0 {
		return nil, false
	}

	rowIdentity := core.AssignIdentity(ra.RowKey, dataset, split, userText, agentText)

	tags := ra.Tags
	if tags == nil {
		tags = []string{}
	}

	return &core.CanonicalRecord{
		ConversationID: core.ConversationID(dataset, split, rowIdentity),
		Source: core.Source{
			Platform: platform,
			Dataset:  dataset,
			Split:    split,
		},
		Messages: messages,
		Labels: core.Labels{
			Intent:   optional(ra.Intent),
			Category: optional(ra.Category),
		},
		Meta: core.Meta{
			Tags:       tags,
			RawRowID:   ra.RowKey,
			ImportedAt: n.now().UTC().Truncate(time.Second),
		},
	}, true
}

func (n *Normalizer) langTag(text string) *string {
	tag, ok := n.detector.Detect(text)
	if !ok {
		return nil
	}
	return &tag
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
