package adapter

import (
	"sort"
	"strconv"
	"strings"

	"github.com/poiesic/canonize/core"
)

// Role keyword lists for the generic fallback adapter. Column names are
// matched by case-insensitive substring; the first matching column wins.
var (
	userKeywords   = []string{"question", "query", "issue", "problem", "description", "subject", "text", "body", "message"}
	agentKeywords  = []string{"answer", "resolution", "response", "reply", "solution"}
	intentKeywords = []string{"intent", "category", "type", "class", "label", "labels", "queue", "topic"}
)

// Generic is the fallback adapter for unmodeled tabular sources. It
// guesses the user/agent/intent columns by matching column names against
// the role keyword lists. A role with no matching column is simply absent.
type Generic struct {
	dataset string
	columns []string
}

var _ Adapter = (*Generic)(nil)

// NewGeneric creates a fallback adapter for a dataset. columns fixes the
// matching order (pass the file's header order); when empty, the sorted
// keys of the first row seen are used so matching stays deterministic.
func NewGeneric(dataset string, columns []string) *Generic {
	return &Generic{dataset: dataset, columns: columns}
}

func (g *Generic) Platform() string { return "kaggle" }
func (g *Generic) Dataset() string  { return g.dataset }

func (g *Generic) Adapt(row core.RawRecord, ordinal int) core.RoleAssignment {
	columns := g.columns
	if len(columns) == 0 {
		columns = make([]string, 0, len(row))
		for col := range row {
			columns = append(columns, col)
		}
		sort.Strings(columns)
	}

	intent := g.pick(row, columns, intentKeywords)
	return core.RoleAssignment{
		UserText:  g.pick(row, columns, userKeywords),
		AgentText: g.pick(row, columns, agentKeywords),
		Intent:    intent,
		Category:  intent,
		Tags:      []string{"kaggle"},
		RowKey:    strconv.Itoa(ordinal),
	}
}

func (g *Generic) pick(row core.RawRecord, columns, keywords []string) string {
	for _, col := range columns {
		lower := strings.ToLower(col)
		for _, keyword := range keywords {
			if strings.Contains(lower, keyword) {
				return CleanScalar(row[col])
			}
		}
	}
	return ""
}
