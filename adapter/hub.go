package adapter

import (
	"strings"

	"github.com/poiesic/canonize/core"
)

// Dedicated adapters for the hub-hosted datasets. Each one encodes the
// quirks of a single dataset's column layout.

// Talhat/Customer_IT_Support. Cols: body, answer, type, queue.
func newTalhat() Adapter {
	return NewFunc("hf", "Talhat/Customer_IT_Support", func(row core.RawRecord, _ int) core.RoleAssignment {
		return core.RoleAssignment{
			UserText:  CleanScalar(row["body"]),
			AgentText: CleanScalar(row["answer"]),
			Intent:    CleanScalar(row["type"]),  // Incident / Request / Problem
			Category:  CleanScalar(row["queue"]), // Product Support / Billing / ...
			Tags:      []string{"it", "support"},
			RowKey:    CleanScalar(row["id"]), // often absent, falls back to the content hash
		}
	})
}

// VivKatara/customer-support-it-dataset-split. Cols: id, body, answer,
// alternative_body, alternative_answer, dataset_type.
func newVivKatara() Adapter {
	return NewFunc("hf", "VivKatara/customer-support-it-dataset-split", func(row core.RawRecord, _ int) core.RoleAssignment {
		user := CleanScalar(row["body"])
		if user == "" {
			user = CleanScalar(row["alternative_body"])
		}
		tags := []string{"it", "support"}
		if t := strings.ToLower(CleanScalar(row["dataset_type"])); t != "" {
			tags = append(tags, t)
		}
		return core.RoleAssignment{
			UserText:  user,
			AgentText: CleanScalar(row["answer"]),
			Tags:      tags,
			RowKey:    CleanScalar(row["id"]),
		}
	})
}

// harishkotra/technical-support-dataset. Cols: text, labels (no answer).
func newHarishKotra() Adapter {
	return NewFunc("hf", "harishkotra/technical-support-dataset", func(row core.RawRecord, _ int) core.RoleAssignment {
		return core.RoleAssignment{
			UserText: CleanScalar(row["text"]),
			Intent:   CleanScalar(row["labels"]),
			Tags:     []string{"technical", "support"},
			RowKey:   CleanScalar(row["id"]),
		}
	})
}

// MakTek/Customer_support_faqs_dataset. Cols: question, answer.
func newMakTek() Adapter {
	return NewFunc("hf", "MakTek/Customer_support_faqs_dataset", func(row core.RawRecord, _ int) core.RoleAssignment {
		return core.RoleAssignment{
			UserText:  CleanScalar(row["question"]),
			AgentText: CleanScalar(row["answer"]),
			Intent:    "faq",
			Tags:      []string{"faq", "generic"},
			RowKey:    CleanScalar(row["id"]),
		}
	})
}

// balawin/FAQ_Support. A single FAQ content column, agent side only.
func newBalawin() Adapter {
	return NewFunc("hf", "balawin/FAQ_Support", func(row core.RawRecord, _ int) core.RoleAssignment {
		return core.RoleAssignment{
			AgentText: CleanScalar(row["CloudEndure & Successor Services FAQ"]),
			Intent:    "faq",
			Category:  "aws_cloudendure",
			Tags:      []string{"faq", "generic", "aws"},
			RowKey:    CleanScalar(row["id"]),
		}
	})
}
