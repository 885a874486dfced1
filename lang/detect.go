// Package lang provides best-effort language identification for message
// text. Detection failures and low-confidence results are absorbed into
// "no tag"; nothing in this package returns an error.
package lang

import (
	"strings"

	"github.com/pemistahl/lingua-go"
)

// The languages the source corpora actually contain. Restricting the set
// keeps the models small and the confidence margins meaningful.
var supported = []lingua.Language{
	lingua.English,
	lingua.French,
	lingua.German,
	lingua.Spanish,
	lingua.Portuguese,
	lingua.Italian,
	lingua.Dutch,
}

// Detector assigns ISO 639-1 language tags to text spans.
type Detector struct {
	inner lingua.LanguageDetector
}

// NewDetector builds a detector over the supported language set. The
// minimum relative distance gates out low-confidence detections.
func NewDetector() *Detector {
	return &Detector{
		inner: lingua.NewLanguageDetectorBuilder().
			FromLanguages(supported...).
			WithMinimumRelativeDistance(0.25).
			Build(),
	}
}

// Detect returns the lowercase ISO 639-1 tag for text, or ("", false) for
// empty or whitespace-only input and for detections below the confidence
// gate.
func (d *Detector) Detect(text string) (string, bool) {
	if strings.TrimSpace(text) == "" {
		return "", false
	}
	language, ok := d.inner.DetectLanguageOf(text)
	if !ok {
		return "", false
	}
	return strings.ToLower(language.IsoCode639_1().String()), true
}
