package badger

import (
	"strings"
	"unicode"
)

// Key prefixes for the conversation key-space. Dataset identifiers and
// conversation IDs contain ':' and '/', so composite keys join their
// parts with NUL, which none of the parts can contain.
const (
	conversationPrefix = "convrec"
	sourceIndexPrefix  = "convsrc"
	intentIndexPrefix  = "convint"
	tokenIndexPrefix   = "convtok"

	keySep = "\x00"
)

// maxTokensPerRecord bounds the token index entries one document can
// produce.
const maxTokensPerRecord = 128

// minTokenLen drops tokens too short to be useful search terms.
const minTokenLen = 3

// makeConversationKey generates the primary key for a record.
func makeConversationKey(conversationID string) []byte {
	return []byte(conversationPrefix + ":" + conversationID)
}

// makeSourceKey generates a composite key for the source index.
// Format: prefix:dataset NUL split NUL id
func makeSourceKey(dataset, split, conversationID string) []byte {
	return []byte(sourceIndexPrefix + ":" + dataset + keySep + split + keySep + conversationID)
}

// makePartialSourceKey generates the scan prefix for one (dataset, split).
func makePartialSourceKey(dataset, split string) []byte {
	return []byte(sourceIndexPrefix + ":" + dataset + keySep + split + keySep)
}

// makeIntentKey generates a composite key for the intent index.
func makeIntentKey(intent, conversationID string) []byte {
	return []byte(intentIndexPrefix + ":" + intent + keySep + conversationID)
}

// makeTokenKey generates a composite key for the full-text token index.
func makeTokenKey(token, conversationID string) []byte {
	return []byte(tokenIndexPrefix + ":" + token + keySep + conversationID)
}

// makePartialTokenKey generates the scan prefix for one token.
func makePartialTokenKey(token string) []byte {
	return []byte(tokenIndexPrefix + ":" + token + keySep)
}

// tokenizeText lowercases text and splits it into unique letter/digit
// runs of at least minTokenLen characters, capped at max tokens. Order of
// first appearance is kept so the cap is deterministic.
func tokenizeText(text string, max int) []string {
	fields := strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})

	seen := make(map[string]struct{}, len(fields))
	tokens := make([]string, 0, len(fields))
	for _, f := range fields {
		if len(f) < minTokenLen {
			continue
		}
		if _, dup := seen[f]; dup {
			continue
		}
		seen[f] = struct{}{}
		tokens = append(tokens, f)
		if len(tokens) >= max {
			break
		}
	}
	return tokens
}
