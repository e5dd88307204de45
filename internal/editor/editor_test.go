package editor_test

import (
	"errors"
	"testing"

	pkblocks "github.com/goliatone/go-pagekit/blocks"
	"github.com/goliatone/go-pagekit/internal/blocks"
	"github.com/goliatone/go-pagekit/internal/editor"
)

func newEditor() *editor.Editor {
	return editor.New(editor.WithIDGenerator(blocks.NewSequenceGenerator()))
}

func text(id string) blocks.Block {
	return blocks.Block{ID: id, BlockType: blocks.TypeText, Props: map[string]any{"content": id}}
}

func ids(list []blocks.Block) []string {
	out := make([]string, len(list))
	for i, block := range list {
		out[i] = block.ID
	}
	return out
}

func equalIDs(t *testing.T, got []blocks.Block, want ...string) {
	t.Helper()
	have := ids(got)
	if len(have) != len(want) {
		t.Fatalf("expected %v, got %v", want, have)
	}
	for i := range want {
		if have[i] != want[i] {
			t.Fatalf("expected %v, got %v", want, have)
		}
	}
}

func twoColumnLayout() blocks.Block {
	return blocks.Block{
		ID:        "l1",
		BlockType: blocks.TypeLayout,
		Layout: &blocks.Layout{
			Grid: &blocks.Grid{Columns: pkblocks.Uniform(2)},
			Columns: []blocks.GridColumn{
				{ID: "c1", Name: "A", Blocks: []blocks.Block{text("a1"), text("a2")}},
				{ID: "c2", Name: "B", Blocks: []blocks.Block{text("b1")}},
			},
		},
	}
}

func TestAddBlockAppendsWithDefaults(t *testing.T) {
	e := newEditor()
	tree := []blocks.Block{text("t1")}
	next, err := e.AddBlock(tree, nil, blocks.TypeQRCode)
	if err != nil {
		t.Fatalf("add block: %v", err)
	}
	equalIDs(t, next, "t1", "block-1")
	if next[1].BlockType != blocks.TypeQRCode {
		t.Fatalf("expected qr block, got %s", next[1].BlockType)
	}
	if len(tree) != 1 {
		t.Fatalf("input tree was mutated")
	}
}

func TestAddBlockIntoColumn(t *testing.T) {
	e := newEditor()
	tree := []blocks.Block{twoColumnLayout()}
	next, err := e.AddBlock(tree, editor.Path{{BlockIndex: 0, ColumnIndex: 1}}, blocks.TypeText)
	if err != nil {
		t.Fatalf("add block: %v", err)
	}
	equalIDs(t, next[0].Layout.Columns[1].Blocks, "b1", "block-1")
	equalIDs(t, tree[0].Layout.Columns[1].Blocks, "b1")
}

func TestAddBlockRejectsBadTargets(t *testing.T) {
	e := newEditor()
	tree := []blocks.Block{text("t1"), twoColumnLayout()}
	if _, err := e.AddBlock(tree, nil, "carousel"); !errors.Is(err, blocks.ErrUnknownType) {
		t.Fatalf("expected ErrUnknownType, got %v", err)
	}
	if _, err := e.AddBlock(tree, editor.Path{{BlockIndex: 0}}, blocks.TypeText); !errors.Is(err, editor.ErrNotLayout) {
		t.Fatalf("expected ErrNotLayout, got %v", err)
	}
	if _, err := e.AddBlock(tree, editor.Path{{BlockIndex: 1, ColumnIndex: 5}}, blocks.TypeText); !errors.Is(err, editor.ErrInvalidPath) {
		t.Fatalf("expected ErrInvalidPath, got %v", err)
	}
}

func TestUpdateBlockKeepsID(t *testing.T) {
	e := newEditor()
	tree := []blocks.Block{text("t1")}
	next, err := e.UpdateBlock(tree, nil, 0, blocks.Block{
		BlockType: blocks.TypeText,
		Props:     map[string]any{"content": "changed"},
	})
	if err != nil {
		t.Fatalf("update block: %v", err)
	}
	if next[0].ID != "t1" || next[0].Props["content"] != "changed" {
		t.Fatalf("unexpected block %+v", next[0])
	}
	if tree[0].Props["content"] != "t1" {
		t.Fatalf("input tree was mutated")
	}
}

func TestUpdateBlockCannotChangeIDOrType(t *testing.T) {
	e := newEditor()
	tree := []blocks.Block{text("t1")}

	next, err := e.UpdateBlock(tree, nil, 0, blocks.Block{
		ID:    "other",
		Props: map[string]any{"content": "changed"},
	})
	if err != nil {
		t.Fatalf("update block: %v", err)
	}
	if next[0].ID != "t1" || next[0].BlockType != blocks.TypeText {
		t.Fatalf("expected id and type to be kept, got %q %q", next[0].ID, next[0].BlockType)
	}

	_, err = e.UpdateBlock(tree, nil, 0, blocks.Block{ID: "t1", BlockType: blocks.TypeQRCode})
	if !errors.Is(err, editor.ErrInvalidOp) {
		t.Fatalf("expected ErrInvalidOp for a type change, got %v", err)
	}
	if tree[0].BlockType != blocks.TypeText {
		t.Fatalf("input tree was mutated")
	}
}

func TestUpdateStyleWritesOnlyActiveBreakpoint(t *testing.T) {
	e := newEditor()
	block := text("t1")
	block.Styles = &blocks.Styles{Padding: pkblocks.PerBreakpoint(pkblocks.Responsive[string]{Desktop: ptr("16px")})}

	next, err := e.UpdateStyle([]blocks.Block{block}, nil, 0, pkblocks.StylePadding, blocks.BreakpointTablet, "8px")
	if err != nil {
		t.Fatalf("update style: %v", err)
	}
	padding := next[0].Styles.Padding
	if v, ok := padding.Slot(blocks.BreakpointDesktop); !ok || v != "16px" {
		t.Fatalf("desktop slot changed: %q %v", v, ok)
	}
	if v, ok := padding.Slot(blocks.BreakpointTablet); !ok || v != "8px" {
		t.Fatalf("expected tablet 8px, got %q %v", v, ok)
	}
	if _, ok := padding.Slot(blocks.BreakpointMobile); ok {
		t.Fatalf("mobile slot should stay unset")
	}
}

func TestUpdateStyleNonResponsiveWritesScalar(t *testing.T) {
	e := newEditor()
	next, err := e.UpdateStyle([]blocks.Block{text("t1")}, nil, 0, pkblocks.StyleBackgroundColor, blocks.BreakpointMobile, "#fff")
	if err != nil {
		t.Fatalf("update style: %v", err)
	}
	if v, ok := next[0].Styles.BackgroundColor.ScalarValue(); !ok || v != "#fff" {
		t.Fatalf("expected scalar #fff, got %q %v", v, ok)
	}

	cleared, err := e.UpdateStyle(next, nil, 0, pkblocks.StyleBackgroundColor, "", "")
	if err != nil {
		t.Fatalf("clear style: %v", err)
	}
	if cleared[0].Styles.BackgroundColor != nil {
		t.Fatalf("expected color to be cleared")
	}
}

func TestUpdateStyleClearsSingleSlot(t *testing.T) {
	e := newEditor()
	block := text("t1")
	block.Styles = &blocks.Styles{Margin: pkblocks.Uniform("4px")}
	next, err := e.UpdateStyle([]blocks.Block{block}, nil, 0, pkblocks.StyleMargin, blocks.BreakpointMobile, "")
	if err != nil {
		t.Fatalf("update style: %v", err)
	}
	if _, ok := next[0].Styles.Margin.Slot(blocks.BreakpointMobile); ok {
		t.Fatalf("expected mobile slot cleared")
	}
	if _, ok := next[0].Styles.Margin.Slot(blocks.BreakpointTablet); !ok {
		t.Fatalf("expected tablet slot kept")
	}
}

func TestUpdateStyleRejectsUnknownInput(t *testing.T) {
	e := newEditor()
	tree := []blocks.Block{text("t1")}
	if _, err := e.UpdateStyle(tree, nil, 0, "zIndex", blocks.BreakpointMobile, "1"); !errors.Is(err, editor.ErrUnknownStyle) {
		t.Fatalf("expected ErrUnknownStyle, got %v", err)
	}
	if _, err := e.UpdateStyle(tree, nil, 0, pkblocks.StylePadding, "watch", "1px"); !errors.Is(err, editor.ErrInvalidBreakpoint) {
		t.Fatalf("expected ErrInvalidBreakpoint, got %v", err)
	}
}

func TestDeleteBlockConfirmation(t *testing.T) {
	e := newEditor()
	tree := []blocks.Block{text("t1"), twoColumnLayout()}

	if _, err := e.DeleteBlock(tree, nil, 0, false); !errors.Is(err, editor.ErrConfirmationRequired) {
		t.Fatalf("expected ErrConfirmationRequired, got %v", err)
	}
	next, err := e.DeleteBlock(tree, nil, 0, true)
	if err != nil {
		t.Fatalf("delete: %v", err)
	}
	equalIDs(t, next, "l1")

	nested, err := e.DeleteBlock(tree, editor.Path{{BlockIndex: 1, ColumnIndex: 0}}, 0, false)
	if err != nil {
		t.Fatalf("nested delete should not need confirmation: %v", err)
	}
	equalIDs(t, nested[1].Layout.Columns[0].Blocks, "a2")
}

func TestMoveBlock(t *testing.T) {
	e := newEditor()
	tree := []blocks.Block{text("a"), text("b"), text("c")}

	cases := []struct {
		name      string
		index     int
		direction editor.Direction
		want      []string
	}{
		{name: "up at start", index: 0, direction: editor.Up, want: []string{"a", "b", "c"}},
		{name: "down at end", index: 2, direction: editor.Down, want: []string{"a", "b", "c"}},
		{name: "up", index: 1, direction: editor.Up, want: []string{"b", "a", "c"}},
		{name: "down", index: 1, direction: editor.Down, want: []string{"a", "c", "b"}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			next, err := e.MoveBlock(tree, nil, tc.index, tc.direction)
			if err != nil {
				t.Fatalf("move: %v", err)
			}
			equalIDs(t, next, tc.want...)
		})
	}

	if _, err := e.MoveBlock(tree, nil, 1, "sideways"); !errors.Is(err, editor.ErrInvalidOp) {
		t.Fatalf("expected ErrInvalidOp, got %v", err)
	}
}

func TestReorderBlock(t *testing.T) {
	e := newEditor()
	tree := []blocks.Block{text("a"), text("b"), text("c"), text("d")}

	cases := []struct {
		name     string
		from, to int
		want     []string
	}{
		{name: "equal", from: 1, to: 1, want: []string{"a", "b", "c", "d"}},
		{name: "negative", from: -1, to: 2, want: []string{"a", "b", "c", "d"}},
		{name: "past end", from: 0, to: 4, want: []string{"a", "b", "c", "d"}},
		{name: "forward", from: 0, to: 2, want: []string{"b", "c", "a", "d"}},
		{name: "backward", from: 3, to: 1, want: []string{"a", "d", "b", "c"}},
		{name: "to end", from: 0, to: 3, want: []string{"b", "c", "d", "a"}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			next, err := e.ReorderBlock(tree, nil, tc.from, tc.to)
			if err != nil {
				t.Fatalf("reorder: %v", err)
			}
			equalIDs(t, next, tc.want...)
		})
	}
}

func TestDuplicateBlockAssignsFreshIDs(t *testing.T) {
	e := newEditor()
	original := twoColumnLayout()
	original.Children = []blocks.Block{text("child")}
	tree := []blocks.Block{original, text("after")}

	next, err := e.DuplicateBlock(tree, nil, 0)
	if err != nil {
		t.Fatalf("duplicate: %v", err)
	}
	if len(next) != 3 || next[2].ID != "after" {
		t.Fatalf("expected clone inserted after original, got %v", ids(next))
	}

	clone := next[1]
	if clone.ID == original.ID {
		t.Fatalf("clone kept the original id")
	}
	originalIDs := map[string]bool{}
	for _, id := range pkblocks.CollectIDs([]blocks.Block{original}) {
		originalIDs[id] = true
	}
	cloneIDs := pkblocks.CollectIDs([]blocks.Block{clone})
	if len(cloneIDs) != len(originalIDs) {
		t.Fatalf("clone shape differs: %v vs %v", cloneIDs, originalIDs)
	}
	for _, id := range cloneIDs {
		if originalIDs[id] {
			t.Fatalf("nested id %s was reused", id)
		}
	}
	if len(clone.Layout.Columns) != 2 || len(clone.Layout.Columns[0].Blocks) != 2 || len(clone.Children) != 1 {
		t.Fatalf("clone does not mirror original structure: %+v", clone)
	}
	if clone.Layout.Columns[0].ID == "c1" {
		t.Fatalf("expected fresh column ids")
	}
}

func ptr(v string) *string { return &v }
