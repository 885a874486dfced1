package adapter

import (
	"fmt"
	"sort"
	"strings"

	"github.com/poiesic/canonize/core"
)

// Adapter maps one dataset's raw field names to semantic roles. Adapters
// are stateless and safe for concurrent use; a missing optional field is
// never an error, it degrades to an empty value.
type Adapter interface {
	// Platform names the hosting platform of the dataset ("hf", "kaggle").
	Platform() string

	// Dataset is the identifier this adapter is registered under.
	Dataset() string

	// Adapt resolves one raw row into a role assignment. ordinal is the
	// zero-based position of the row within its split, used as the
	// row-key fallback of last resort by adapters that want it.
	Adapt(row core.RawRecord, ordinal int) core.RoleAssignment
}

// Func is an Adapter built from a mapping function. All the dedicated
// adapter variants are Func values registered under their dataset name.
type Func struct {
	platform string
	dataset  string
	adapt    func(row core.RawRecord, ordinal int) core.RoleAssignment
}

// NewFunc creates an adapter from a mapping function.
func NewFunc(platform, dataset string, adapt func(core.RawRecord, int) core.RoleAssignment) *Func {
	return &Func{platform: platform, dataset: dataset, adapt: adapt}
}

func (f *Func) Platform() string { return f.platform }
func (f *Func) Dataset() string  { return f.dataset }

func (f *Func) Adapt(row core.RawRecord, ordinal int) core.RoleAssignment {
	return f.adapt(row, ordinal)
}

// Registry holds adapter variants keyed by dataset identifier.
type Registry struct {
	adapters map[string]Adapter
}

// NewRegistry creates a registry holding the given adapters.
func NewRegistry(adapters ...Adapter) *Registry {
	r := &Registry{adapters: make(map[string]Adapter, len(adapters))}
	for _, a := range adapters {
		r.Register(a)
	}
	return r
}

// Default returns a registry with every dedicated adapter variant.
func Default() *Registry {
	return NewRegistry(
		newTalhat(),
		newVivKatara(),
		newHarishKotra(),
		newMakTek(),
		newBalawin(),
		newParthPatil(),
		newTobiasBueck(),
		newAdisonGoh(),
	)
}

// Register adds or replaces the adapter for its dataset.
func (r *Registry) Register(a Adapter) {
	r.adapters[a.Dataset()] = a
}

// Lookup returns the adapter registered for a dataset.
func (r *Registry) Lookup(dataset string) (Adapter, bool) {
	a, ok := r.adapters[dataset]
	return a, ok
}

// Datasets lists the registered dataset identifiers, sorted, for
// diagnostics.
func (r *Registry) Datasets() []string {
	names := make([]string, 0, len(r.adapters))
	for name := range r.adapters {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// CleanScalar coerces an arbitrary scalar to a trimmed string and
// canonicalizes textual null markers ("nan", "none", "null") to empty.
func CleanScalar(v any) string {
	if v == nil {
		return ""
	}
	s := strings.TrimSpace(fmt.Sprint(v))
	switch strings.ToLower(s) {
	case "nan", "none", "null":
		return ""
	}
	return s
}

// rowKeyCandidates are tried in order before falling back to the row's
// ordinal position.
var rowKeyCandidates = []string{"id", "ID", "Ticket_ID"}

func pickRowKey(row core.RawRecord, ordinal int) string {
	for _, col := range rowKeyCandidates {
		if key := CleanScalar(row[col]); key != "" {
			return key
		}
	}
	return fmt.Sprintf("%d", ordinal)
}
