package adapter

import (
	"fmt"
	"strings"

	"github.com/poiesic/canonize/core"
)

// Dedicated adapters for the kaggle-hosted datasets.

// parthpatil256/it-support-ticket-data. Cols: subject, body, answer,
// type, queue, priority, language, version, tag_1..tag_8.
func newParthPatil() Adapter {
	return NewFunc("kaggle", "parthpatil256/it-support-ticket-data", func(row core.RawRecord, ordinal int) core.RoleAssignment {
		subject := CleanScalar(row["subject"])
		body := CleanScalar(row["body"])
		user := subject
		if body != "" {
			user = strings.TrimSpace(subject + "\n\n" + body)
		}

		tags := []string{"kaggle", "it", "support"}
		if prio := CleanScalar(row["priority"]); prio != "" {
			tags = append(tags, "priority:"+prio)
		}
		if language := CleanScalar(row["language"]); language != "" {
			tags = append(tags, "lang:"+language)
		}
		if version := CleanScalar(row["version"]); version != "" {
			tags = append(tags, "ver:"+version)
		}
		for i := 1; i <= 8; i++ {
			if t := CleanScalar(row[fmt.Sprintf("tag_%d", i)]); t != "" {
				tags = append(tags, t)
			}
		}

		return core.RoleAssignment{
			UserText:  user,
			AgentText: CleanScalar(row["answer"]),
			Intent:    CleanScalar(row["type"]),
			Category:  CleanScalar(row["queue"]),
			Tags:      tags,
			RowKey:    pickRowKey(row, ordinal),
		}
	})
}

// tobiasbueck/multilingual-customer-support-tickets. Cols: Body,
// Department, Priority, Tags (no answer). The Tags column carries a
// python-style list literal.
func newTobiasBueck() Adapter {
	return NewFunc("kaggle", "tobiasbueck/multilingual-customer-support-tickets", func(row core.RawRecord, ordinal int) core.RoleAssignment {
		tags := []string{"kaggle", "it", "support"}
		if prio := CleanScalar(row["Priority"]); prio != "" {
			tags = append(tags, "priority:"+prio)
		}
		if raw := CleanScalar(row["Tags"]); raw != "" {
			if parsed, ok := parseListLiteral(raw); ok {
				tags = append(tags, parsed...)
			} else {
				tags = append(tags, raw)
			}
		}
		return core.RoleAssignment{
			UserText: CleanScalar(row["Body"]),
			Category: CleanScalar(row["Department"]),
			Tags:     tags,
			RowKey:   pickRowKey(row, ordinal),
		}
	})
}

// adisongoh/it-service-ticket-classification-dataset. Cols: Document,
// Topic_group (no answer); the topic doubles as intent and category.
func newAdisonGoh() Adapter {
	return NewFunc("kaggle", "adisongoh/it-service-ticket-classification-dataset", func(row core.RawRecord, ordinal int) core.RoleAssignment {
		topic := CleanScalar(row["Topic_group"])
		return core.RoleAssignment{
			UserText: CleanScalar(row["Document"]),
			Intent:   topic,
			Category: topic,
			Tags:     []string{"kaggle", "it", "support"},
			RowKey:   pickRowKey(row, ordinal),
		}
	})
}

// parseListLiteral parses a python-style list literal like
// "['billing', 'vpn']" into its string elements. Returns ok=false when
// the value is not bracketed or a quote never closes, in which case the
// caller keeps the raw string as a single tag.
func parseListLiteral(s string) ([]string, bool) {
	s = strings.TrimSpace(s)
	if len(s) < 2 || s[0] != '[' || s[len(s)-1] != ']' {
		return nil, false
	}
	inner := s[1 : len(s)-1]

	var out []string
	for i := 0; i < len(inner); {
		switch c := inner[i]; c {
		case ' ', '\t', ',':
			i++
		case '\'', '"':
			end := strings.IndexByte(inner[i+1:], c)
			if end < 0 {
				return nil, false
			}
			if elem := strings.TrimSpace(inner[i+1 : i+1+end]); elem != "" {
				out = append(out, elem)
			}
			i += end + 2
		default:
			// Bare element, read up to the next comma.
			end := strings.IndexByte(inner[i:], ',')
			if end < 0 {
				end = len(inner) - i
			}
			if elem := strings.TrimSpace(inner[i : i+end]); elem != "" {
				out = append(out, elem)
			}
			i += end
		}
	}
	return out, true
}
