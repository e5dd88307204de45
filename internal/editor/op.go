package editor

import (
	"fmt"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"github.com/goliatone/go-pagekit/internal/blocks"
)

// OpKind names a tree operation.
type OpKind string

const (
	OpAdd            OpKind = "add"
	OpUpdate         OpKind = "update"
	OpStyle          OpKind = "style"
	OpDelete         OpKind = "delete"
	OpMove           OpKind = "move"
	OpReorder        OpKind = "reorder"
	OpDuplicate      OpKind = "duplicate"
	OpAddColumn      OpKind = "add-column"
	OpRemoveColumn   OpKind = "remove-column"
	OpMoveColumn     OpKind = "move-column"
	OpReorderColumn  OpKind = "reorder-column"
	OpRenameColumn   OpKind = "rename-column"
	OpSetColumnCount OpKind = "set-column-count"
)

var opKinds = []any{
	OpAdd, OpUpdate, OpStyle, OpDelete, OpMove, OpReorder, OpDuplicate,
	OpAddColumn, OpRemoveColumn, OpMoveColumn, OpReorderColumn, OpRenameColumn, OpSetColumnCount,
}

// Op is the wire form of an editor operation. Index addresses the block in
// the list at Path; column operations address the layout block the same way.
type Op struct {
	Op         OpKind               `json:"op"`
	Path       Path                 `json:"path,omitempty"`
	Index      int                  `json:"index"`
	BlockType  blocks.Type          `json:"blockType,omitempty"`
	Block      *blocks.Block        `json:"block,omitempty"`
	Property   blocks.StyleProperty `json:"property,omitempty"`
	Breakpoint blocks.Breakpoint    `json:"breakpoint,omitempty"`
	Value      string               `json:"value,omitempty"`
	Direction  Direction            `json:"direction,omitempty"`
	From       int                  `json:"from"`
	To         int                  `json:"to"`
	Column     int                  `json:"column"`
	Name       string               `json:"name,omitempty"`
	Count      int                  `json:"count,omitempty"`
	Confirmed  bool                 `json:"confirmed,omitempty"`
}

// Validate checks that op carries the fields its kind needs.
func (op Op) Validate() error {
	return validation.ValidateStruct(&op,
		validation.Field(&op.Op, validation.Required, validation.In(opKinds...)),
		validation.Field(&op.BlockType, validation.When(op.Op == OpAdd, validation.Required)),
		validation.Field(&op.Block, validation.When(op.Op == OpUpdate, validation.NotNil)),
		validation.Field(&op.Property, validation.When(op.Op == OpStyle, validation.Required)),
		validation.Field(&op.Direction,
			validation.When(op.Op == OpMove || op.Op == OpMoveColumn, validation.Required, validation.In(Up, Down)),
		),
		validation.Field(&op.Count, validation.When(op.Op == OpSetColumnCount, validation.Required, validation.Min(1))),
	)
}

// Apply runs op against tree. The style breakpoint defaults to bp when op
// carries none.
func (e *Editor) Apply(tree []blocks.Block, op Op, bp blocks.Breakpoint) ([]blocks.Block, error) {
	if err := op.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidOp, err)
	}
	switch op.Op {
	case OpAdd:
		return e.AddBlock(tree, op.Path, op.BlockType)
	case OpUpdate:
		return e.UpdateBlock(tree, op.Path, op.Index, *op.Block)
	case OpStyle:
		breakpoint := op.Breakpoint
		if breakpoint == "" {
			breakpoint = bp
		}
		return e.UpdateStyle(tree, op.Path, op.Index, op.Property, breakpoint, op.Value)
	case OpDelete:
		return e.DeleteBlock(tree, op.Path, op.Index, op.Confirmed)
	case OpMove:
		return e.MoveBlock(tree, op.Path, op.Index, op.Direction)
	case OpReorder:
		return e.ReorderBlock(tree, op.Path, op.From, op.To)
	case OpDuplicate:
		return e.DuplicateBlock(tree, op.Path, op.Index)
	case OpAddColumn:
		return e.AddColumn(tree, op.Path, op.Index)
	case OpRemoveColumn:
		return e.RemoveColumn(tree, op.Path, op.Index, op.Column)
	case OpMoveColumn:
		return e.MoveColumn(tree, op.Path, op.Index, op.Column, op.Direction)
	case OpReorderColumn:
		return e.ReorderColumn(tree, op.Path, op.Index, op.From, op.To)
	case OpRenameColumn:
		return e.RenameColumn(tree, op.Path, op.Index, op.Column, op.Name)
	case OpSetColumnCount:
		return e.SetColumnCount(tree, op.Path, op.Index, op.Count)
	default:
		return nil, fmt.Errorf("%w: %q", ErrInvalidOp, op.Op)
	}
}
