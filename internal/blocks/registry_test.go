package blocks_test

import (
	"context"
	"errors"
	"html/template"
	"testing"

	"github.com/goliatone/go-pagekit/internal/blocks"
)

func TestDefaultRegistryCoversKnownTypes(t *testing.T) {
	registry := blocks.Default()
	types := registry.Types()
	want := []blocks.Type{
		blocks.TypeText,
		blocks.TypeLayout,
		blocks.TypeInlineEditView,
		blocks.TypeLiveView,
		blocks.TypeMediaCard,
		blocks.TypeQRCode,
	}
	if len(types) != len(want) {
		t.Fatalf("expected %d types, got %d", len(want), len(types))
	}
	for i, typ := range want {
		if types[i] != typ {
			t.Fatalf("type %d: expected %s, got %s", i, typ, types[i])
		}
		if _, ok := registry.LookupRenderer(typ); !ok {
			t.Fatalf("expected renderer for %s", typ)
		}
		form, ok := registry.LookupEditor(typ)
		if !ok {
			t.Fatalf("expected editor for %s", typ)
		}
		if form.Type != typ {
			t.Fatalf("expected editor type %s, got %s", typ, form.Type)
		}
	}
}

func TestRegistryLookupUnknownType(t *testing.T) {
	registry := blocks.Default()
	if _, ok := registry.LookupRenderer("carousel"); ok {
		t.Fatalf("expected no renderer for unknown type")
	}
	if _, ok := registry.LookupEditor("carousel"); ok {
		t.Fatalf("expected no editor for unknown type")
	}
	fallback := blocks.FallbackEditor("carousel")
	if fallback.Fallback != "Unknown block type: carousel" {
		t.Fatalf("unexpected fallback text %q", fallback.Fallback)
	}
}

func TestListCatalogFiltersCaseInsensitively(t *testing.T) {
	registry := blocks.Default()

	all := registry.ListCatalog("")
	if len(all) != len(registry.Types()) {
		t.Fatalf("expected full catalog, got %d entries", len(all))
	}

	layout := registry.ListCatalog("LAY")
	if len(layout) != 1 || layout[0].Value != blocks.TypeLayout {
		t.Fatalf("expected only layout entry, got %+v", layout)
	}

	profile := registry.ListCatalog("profile")
	if len(profile) != 4 {
		t.Fatalf("expected 4 profile entries, got %d", len(profile))
	}

	if none := registry.ListCatalog("zzz"); len(none) != 0 {
		t.Fatalf("expected empty catalog, got %+v", none)
	}
}

func TestGroupCatalogKeepsRegistrationOrder(t *testing.T) {
	groups := blocks.Default().GroupCatalog("")
	if len(groups) != 3 {
		t.Fatalf("expected 3 groups, got %d", len(groups))
	}
	if groups[0].Category != "Content" || groups[1].Category != "Layout" || groups[2].Category != "Profile" {
		t.Fatalf("unexpected group order %+v", groups)
	}
	if len(groups[2].Entries) != 4 {
		t.Fatalf("expected 4 profile entries, got %d", len(groups[2].Entries))
	}
}

func TestNewLayoutBlockHasTwoColumns(t *testing.T) {
	ids := blocks.NewSequenceGenerator()
	block, err := blocks.Default().New(blocks.TypeLayout, ids)
	if err != nil {
		t.Fatalf("new layout: %v", err)
	}
	if block.ID != "block-1" {
		t.Fatalf("expected block-1, got %s", block.ID)
	}
	if block.Layout == nil || len(block.Layout.Columns) != 2 {
		t.Fatalf("expected two columns, got %+v", block.Layout)
	}
	if block.Layout.Columns[0].ID != "column-1" || block.Layout.Columns[1].Name != "Column 2" {
		t.Fatalf("unexpected columns %+v", block.Layout.Columns)
	}
	for _, bp := range []blocks.Breakpoint{blocks.BreakpointMobile, blocks.BreakpointTablet, blocks.BreakpointDesktop} {
		if count, ok := block.Layout.Grid.Columns.Slot(bp); !ok || count != 2 {
			t.Fatalf("expected 2 grid columns at %s, got %d", bp, count)
		}
	}
}

func TestNewCopiesDefaults(t *testing.T) {
	registry := blocks.Default()
	first, err := registry.New(blocks.TypeText, nil)
	if err != nil {
		t.Fatalf("new text: %v", err)
	}
	first.Props["content"] = "changed"

	second, err := registry.New(blocks.TypeText, nil)
	if err != nil {
		t.Fatalf("new text: %v", err)
	}
	if second.Props["content"] != "" {
		t.Fatalf("defaults leaked between blocks: %v", second.Props)
	}
	if first.ID == second.ID {
		t.Fatalf("expected distinct ids, got %s twice", first.ID)
	}
}

func TestNewRejectsUnknownType(t *testing.T) {
	_, err := blocks.Default().New("carousel", nil)
	if !errors.Is(err, blocks.ErrUnknownType) {
		t.Fatalf("expected ErrUnknownType, got %v", err)
	}
}

func TestNewRegistryRejectsDuplicatesAndIncompleteKinds(t *testing.T) {
	display := func(context.Context, *blocks.DisplayEnv, blocks.Block) (template.HTML, error) {
		return "", nil
	}
	kind := blocks.Kind{Type: "banner", Label: "Banner", Display: display}

	if _, err := blocks.NewRegistry(kind, kind); !errors.Is(err, blocks.ErrKindExists) {
		t.Fatalf("expected ErrKindExists, got %v", err)
	}
	if _, err := blocks.NewRegistry(blocks.Kind{Type: "banner"}); !errors.Is(err, blocks.ErrKindIncomplete) {
		t.Fatalf("expected ErrKindIncomplete, got %v", err)
	}

	registry, err := blocks.NewRegistry(kind)
	if err != nil {
		t.Fatalf("new registry: %v", err)
	}
	if form, ok := registry.LookupEditor("banner"); !ok || form.Type != "banner" {
		t.Fatalf("expected editor type to default to kind type, got %+v", form)
	}
}
