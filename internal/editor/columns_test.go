package editor_test

import (
	"errors"
	"testing"

	"github.com/goliatone/go-pagekit/internal/blocks"
	"github.com/goliatone/go-pagekit/internal/editor"
)

func assertGrid(t *testing.T, layout *blocks.Layout) {
	t.Helper()
	for _, bp := range []blocks.Breakpoint{blocks.BreakpointMobile, blocks.BreakpointTablet, blocks.BreakpointDesktop} {
		count, ok := layout.Grid.Columns.Slot(bp)
		if !ok || count != len(layout.Columns) {
			t.Fatalf("grid at %s is %d, expected %d", bp, count, len(layout.Columns))
		}
	}
}

func TestAddColumnSyncsGrid(t *testing.T) {
	e := newEditor()
	next, err := e.AddColumn([]blocks.Block{twoColumnLayout()}, nil, 0)
	if err != nil {
		t.Fatalf("add column: %v", err)
	}
	layout := next[0].Layout
	if len(layout.Columns) != 3 {
		t.Fatalf("expected 3 columns, got %d", len(layout.Columns))
	}
	if layout.Columns[2].ID != "column-1" || layout.Columns[2].Name != "Column 3" {
		t.Fatalf("unexpected new column %+v", layout.Columns[2])
	}
	assertGrid(t, layout)
}

func TestRemoveColumnDropsOnlyThatColumn(t *testing.T) {
	e := newEditor()
	next, err := e.RemoveColumn([]blocks.Block{twoColumnLayout()}, nil, 0, 0)
	if err != nil {
		t.Fatalf("remove column: %v", err)
	}
	layout := next[0].Layout
	if len(layout.Columns) != 1 || layout.Columns[0].ID != "c2" {
		t.Fatalf("unexpected columns %+v", layout.Columns)
	}
	equalIDs(t, layout.Columns[0].Blocks, "b1")
	assertGrid(t, layout)

	if _, err := e.RemoveColumn([]blocks.Block{twoColumnLayout()}, nil, 0, 2); !errors.Is(err, editor.ErrIndexOutOfRange) {
		t.Fatalf("expected ErrIndexOutOfRange, got %v", err)
	}
}

func TestRemoveColumnKeepsLastColumn(t *testing.T) {
	e := newEditor()
	tree, err := e.RemoveColumn([]blocks.Block{twoColumnLayout()}, nil, 0, 0)
	if err != nil {
		t.Fatalf("remove first: %v", err)
	}
	if _, err := e.RemoveColumn(tree, nil, 0, 0); !errors.Is(err, editor.ErrInvalidColumnCount) {
		t.Fatalf("expected ErrInvalidColumnCount, got %v", err)
	}
	if len(tree[0].Layout.Columns) != 1 {
		t.Fatalf("expected one column to remain, got %d", len(tree[0].Layout.Columns))
	}
	assertGrid(t, tree[0].Layout)
}

func TestColumnOpsRequireLayout(t *testing.T) {
	e := newEditor()
	if _, err := e.AddColumn([]blocks.Block{text("t1")}, nil, 0); !errors.Is(err, editor.ErrNotLayout) {
		t.Fatalf("expected ErrNotLayout, got %v", err)
	}
}

func TestMoveAndReorderColumns(t *testing.T) {
	e := newEditor()
	tree := []blocks.Block{twoColumnLayout()}

	moved, err := e.MoveColumn(tree, nil, 0, 0, editor.Down)
	if err != nil {
		t.Fatalf("move column: %v", err)
	}
	if moved[0].Layout.Columns[0].ID != "c2" {
		t.Fatalf("expected c2 first, got %+v", moved[0].Layout.Columns)
	}

	same, err := e.MoveColumn(tree, nil, 0, 1, editor.Down)
	if err != nil {
		t.Fatalf("move column at end: %v", err)
	}
	if same[0].Layout.Columns[1].ID != "c2" {
		t.Fatalf("expected no-op at end")
	}

	reordered, err := e.ReorderColumn(tree, nil, 0, 1, 0)
	if err != nil {
		t.Fatalf("reorder column: %v", err)
	}
	if reordered[0].Layout.Columns[0].ID != "c2" {
		t.Fatalf("expected c2 first after reorder")
	}
	assertGrid(t, reordered[0].Layout)
}

func TestRenameColumn(t *testing.T) {
	e := newEditor()
	next, err := e.RenameColumn([]blocks.Block{twoColumnLayout()}, nil, 0, 1, "  Sidebar ")
	if err != nil {
		t.Fatalf("rename column: %v", err)
	}
	if next[0].Layout.Columns[1].Name != "Sidebar" {
		t.Fatalf("unexpected name %q", next[0].Layout.Columns[1].Name)
	}
}

func TestSetColumnCount(t *testing.T) {
	e := newEditor()
	tree := []blocks.Block{twoColumnLayout()}

	grown, err := e.SetColumnCount(tree, nil, 0, 4)
	if err != nil {
		t.Fatalf("grow: %v", err)
	}
	if len(grown[0].Layout.Columns) != 4 {
		t.Fatalf("expected 4 columns, got %d", len(grown[0].Layout.Columns))
	}
	assertGrid(t, grown[0].Layout)

	shrunk, err := e.SetColumnCount(tree, nil, 0, 1)
	if err != nil {
		t.Fatalf("shrink: %v", err)
	}
	if len(shrunk[0].Layout.Columns) != 1 || shrunk[0].Layout.Columns[0].ID != "c1" {
		t.Fatalf("expected only c1 to remain, got %+v", shrunk[0].Layout.Columns)
	}
	assertGrid(t, shrunk[0].Layout)

	if _, err := e.SetColumnCount(tree, nil, 0, 0); !errors.Is(err, editor.ErrInvalidColumnCount) {
		t.Fatalf("expected ErrInvalidColumnCount, got %v", err)
	}
}
