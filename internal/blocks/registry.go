package blocks

import (
	"context"
	"fmt"
	"html/template"
	"maps"
	"strings"
	"sync"

	pkblocks "github.com/goliatone/go-pagekit/blocks"
	"github.com/goliatone/go-pagekit/internal/validation"
)

// DisplayFunc renders one block. Implementations must not panic on malformed
// blocks; the renderer still recovers and degrades to a placeholder if they do.
type DisplayFunc func(ctx context.Context, env *DisplayEnv, block Block) (template.HTML, error)

// Kind describes one block type: catalog metadata, defaults, payload schema,
// editor form and display function.
type Kind struct {
	Type        Type
	Label       string
	Icon        string
	Description string
	Category    string
	Defaults    map[string]any
	Schema      *validation.Schema
	Editor      EditorForm
	Display     DisplayFunc

	// NewLayout builds the initial layout for freshly added blocks.
	NewLayout func(ids IDGenerator) *Layout
}

// CatalogEntry is the add-block picker view of a Kind.
type CatalogEntry struct {
	Value       Type   `json:"value"`
	Label       string `json:"label"`
	Icon        string `json:"icon"`
	Description string `json:"description"`
	Category    string `json:"category"`
}

// CatalogGroup bundles catalog entries sharing a category.
type CatalogGroup struct {
	Category string         `json:"category"`
	Entries  []CatalogEntry `json:"entries"`
}

// Registry is a read-only table of block kinds. It is safe for concurrent use
// once constructed.
type Registry struct {
	kinds map[Type]Kind
	order []Type
}

// NewRegistry builds a registry from kinds, preserving their order.
func NewRegistry(kinds ...Kind) (*Registry, error) {
	r := &Registry{kinds: make(map[Type]Kind, len(kinds))}
	for _, kind := range kinds {
		kind.Type = Type(strings.TrimSpace(string(kind.Type)))
		if kind.Type == "" || strings.TrimSpace(kind.Label) == "" || kind.Display == nil {
			return nil, fmt.Errorf("%w: %q", ErrKindIncomplete, kind.Type)
		}
		if _, exists := r.kinds[kind.Type]; exists {
			return nil, fmt.Errorf("%w: %s", ErrKindExists, kind.Type)
		}
		if kind.Editor.Type == "" {
			kind.Editor.Type = kind.Type
		}
		r.kinds[kind.Type] = kind
		r.order = append(r.order, kind.Type)
	}
	return r, nil
}

var (
	defaultOnce     sync.Once
	defaultRegistry *Registry
)

// Default returns the process-wide registry of built-in kinds.
func Default() *Registry {
	defaultOnce.Do(func() {
		kinds := make([]Kind, 0, len(pkblocks.KnownTypes()))
		for _, t := range pkblocks.KnownTypes() {
			kinds = append(kinds, builtinKind(t))
		}
		registry, err := NewRegistry(kinds...)
		if err != nil {
			panic(err)
		}
		defaultRegistry = registry
	})
	return defaultRegistry
}

// Kind returns the registered kind for t.
func (r *Registry) Kind(t Type) (Kind, bool) {
	if r == nil {
		return Kind{}, false
	}
	kind, ok := r.kinds[t]
	return kind, ok
}

// Types lists registered types in registration order.
func (r *Registry) Types() []Type {
	if r == nil {
		return nil
	}
	return append([]Type(nil), r.order...)
}

// LookupEditor returns the editor form for t.
func (r *Registry) LookupEditor(t Type) (EditorForm, bool) {
	kind, ok := r.Kind(t)
	if !ok {
		return EditorForm{}, false
	}
	return kind.Editor, true
}

// LookupRenderer returns the display function for t.
func (r *Registry) LookupRenderer(t Type) (DisplayFunc, bool) {
	kind, ok := r.Kind(t)
	if !ok || kind.Display == nil {
		return nil, false
	}
	return kind.Display, true
}

// ListCatalog returns catalog entries in registration order. A non-empty
// query keeps entries whose label, description or category contains it,
// ignoring case.
func (r *Registry) ListCatalog(query string) []CatalogEntry {
	if r == nil {
		return nil
	}
	needle := strings.ToLower(strings.TrimSpace(query))
	entries := make([]CatalogEntry, 0, len(r.order))
	for _, t := range r.order {
		kind := r.kinds[t]
		entry := CatalogEntry{
			Value:       kind.Type,
			Label:       kind.Label,
			Icon:        kind.Icon,
			Description: kind.Description,
			Category:    kind.Category,
		}
		if needle != "" && !entry.matches(needle) {
			continue
		}
		entries = append(entries, entry)
	}
	return entries
}

func (e CatalogEntry) matches(needle string) bool {
	for _, field := range []string{e.Label, e.Description, e.Category} {
		if strings.Contains(strings.ToLower(field), needle) {
			return true
		}
	}
	return false
}

// GroupCatalog groups the filtered catalog by category. Categories appear in
// the order their first entry was registered.
func (r *Registry) GroupCatalog(query string) []CatalogGroup {
	entries := r.ListCatalog(query)
	groups := []CatalogGroup{}
	index := map[string]int{}
	for _, entry := range entries {
		pos, ok := index[entry.Category]
		if !ok {
			pos = len(groups)
			index[entry.Category] = pos
			groups = append(groups, CatalogGroup{Category: entry.Category})
		}
		groups[pos].Entries = append(groups[pos].Entries, entry)
	}
	return groups
}

// New instantiates a block of type t with a fresh id and the kind defaults.
func (r *Registry) New(t Type, ids IDGenerator) (Block, error) {
	kind, ok := r.Kind(t)
	if !ok {
		return Block{}, fmt.Errorf("%w: %s", ErrUnknownType, t)
	}
	ids = ensureIDs(ids)
	block := Block{
		ID:        ids.BlockID(),
		BlockType: kind.Type,
	}
	if len(kind.Defaults) > 0 {
		block.Props = cloneDefaults(kind.Defaults)
	}
	if kind.NewLayout != nil {
		block.Layout = kind.NewLayout(ids)
	}
	return block, nil
}

func cloneDefaults(in map[string]any) map[string]any {
	out := make(map[string]any, len(in))
	maps.Copy(out, in)
	return out
}
