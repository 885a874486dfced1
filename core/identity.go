package core

import (
	"encoding/hex"
	"strings"

	"github.com/go-crypt/x/blake2b"
)

// identityDigestLen is the digest length in bytes of the fallback row
// identity; 8 bytes encode to the 16 hex characters the document key uses.
const identityDigestLen = 8

// AssignIdentity resolves the row-specific suffix of a conversation ID.
// A usable row key is taken verbatim; otherwise the identity is a content
// hash of the (dataset, split, userText, agentText) tuple, so re-ingesting
// identical content always yields the identical identity.
func AssignIdentity(rowKey, dataset, split, userText, agentText string) string {
	if k := strings.TrimSpace(rowKey); k != "" && !isNullMarker(k) {
		return k
	}
	return ContentIdentity(dataset, split, userText, agentText)
}

// ContentIdentity generates a deterministic identity from conversation
// content using BLAKE2b hashing over the pipe-joined tuple.
func ContentIdentity(dataset, split, userText, agentText string) string {
	h, _ := blake2b.New(identityDigestLen, nil)
	h.Write([]byte(dataset + "|" + split + "|" + userText + "|" + agentText))
	return hex.EncodeToString(h.Sum(nil))
}

// isNullMarker reports whether a scalar is a textual null left over from
// upstream tabular tooling.
func isNullMarker(s string) bool {
	switch strings.ToLower(s) {
	case "none", "null", "nan":
		return true
	}
	return false
}
