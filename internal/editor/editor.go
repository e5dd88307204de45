package editor

import (
	"fmt"
	"strings"

	pkblocks "github.com/goliatone/go-pagekit/blocks"
	"github.com/goliatone/go-pagekit/internal/blocks"
)

// Direction is the target of a single-step move.
type Direction string

const (
	Up   Direction = "up"
	Down Direction = "down"
)

// Option configures an Editor.
type Option func(*Editor)

// WithRegistry sets the registry new blocks are instantiated from.
func WithRegistry(registry *blocks.Registry) Option {
	return func(e *Editor) {
		if registry != nil {
			e.registry = registry
		}
	}
}

// WithIDGenerator sets the generator for block and column ids.
func WithIDGenerator(ids blocks.IDGenerator) Option {
	return func(e *Editor) {
		if ids != nil {
			e.ids = ids
		}
	}
}

// Editor applies tree operations. Every operation returns a new tree and
// leaves its input untouched.
type Editor struct {
	registry *blocks.Registry
	ids      blocks.IDGenerator
}

// New returns an editor over the default registry with ULID ids.
func New(opts ...Option) *Editor {
	e := &Editor{
		registry: blocks.Default(),
		ids:      blocks.NewULIDGenerator(),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Registry returns the registry backing the editor.
func (e *Editor) Registry() *blocks.Registry {
	return e.registry
}

// AddBlock appends a new block of type t to the list at path.
func (e *Editor) AddBlock(tree []blocks.Block, path Path, t blocks.Type) ([]blocks.Block, error) {
	next, list, err := target(tree, path)
	if err != nil {
		return nil, err
	}
	block, err := e.registry.New(t, e.ids)
	if err != nil {
		return nil, err
	}
	*list = append(*list, block)
	return next, nil
}

// UpdateBlock replaces the block at index. The stored id always wins and the
// block type cannot change; an empty type keeps the stored one.
func (e *Editor) UpdateBlock(tree []blocks.Block, path Path, index int, updated blocks.Block) ([]blocks.Block, error) {
	next, list, err := target(tree, path)
	if err != nil {
		return nil, err
	}
	if !inRange(*list, index) {
		return nil, fmt.Errorf("%w: %d", ErrIndexOutOfRange, index)
	}
	current := (*list)[index]
	replacement := pkblocks.Clone(updated)
	switch replacement.BlockType {
	case "", current.BlockType:
		replacement.BlockType = current.BlockType
	default:
		return nil, fmt.Errorf("%w: block %q is %s, not %s", ErrInvalidOp, current.ID, current.BlockType, replacement.BlockType)
	}
	replacement.ID = current.ID
	(*list)[index] = replacement
	return next, nil
}

// UpdateStyle writes one style property of the block at index. Responsive
// properties only touch the bp slot and keep the others; colors, border and
// border radius are written as scalars whatever the breakpoint. An empty
// value clears what the write would have set.
func (e *Editor) UpdateStyle(tree []blocks.Block, path Path, index int, property blocks.StyleProperty, bp blocks.Breakpoint, value string) ([]blocks.Block, error) {
	if !property.Valid() {
		return nil, fmt.Errorf("%w: %q", ErrUnknownStyle, property)
	}
	if property.Responsive() {
		parsed, ok := pkblocks.ParseBreakpoint(string(bp))
		if !ok {
			return nil, fmt.Errorf("%w: %q", ErrInvalidBreakpoint, bp)
		}
		bp = parsed
	}
	next, list, err := target(tree, path)
	if err != nil {
		return nil, err
	}
	if !inRange(*list, index) {
		return nil, fmt.Errorf("%w: %d", ErrIndexOutOfRange, index)
	}
	block := &(*list)[index]
	if block.Styles == nil {
		block.Styles = &blocks.Styles{}
	}
	current := block.Styles.Get(property)
	value = strings.TrimSpace(value)
	switch {
	case !property.Responsive() && value == "":
		block.Styles.Set(property, nil)
	case !property.Responsive():
		block.Styles.Set(property, pkblocks.Scalar(value))
	case value == "":
		block.Styles.Set(property, clearSlot(current, bp))
	default:
		block.Styles.Set(property, current.WithSlot(bp, value))
	}
	return next, nil
}

func clearSlot(value *pkblocks.Value[string], bp blocks.Breakpoint) *pkblocks.Value[string] {
	if value == nil {
		return nil
	}
	slots, ok := value.Breakpoints()
	if !ok {
		// a scalar resolves as the desktop slot
		if bp == blocks.BreakpointDesktop {
			return nil
		}
		return value.Clone()
	}
	switch bp {
	case blocks.BreakpointMobile:
		slots.Mobile = nil
	case blocks.BreakpointTablet:
		slots.Tablet = nil
	case blocks.BreakpointDesktop:
		slots.Desktop = nil
	}
	if slots.IsEmpty() {
		return nil
	}
	return pkblocks.PerBreakpoint(slots)
}

// DeleteBlock removes the block at index together with everything nested in
// it. Top-level deletes need confirmed.
func (e *Editor) DeleteBlock(tree []blocks.Block, path Path, index int, confirmed bool) ([]blocks.Block, error) {
	if path.TopLevel() && !confirmed {
		return nil, ErrConfirmationRequired
	}
	next, list, err := target(tree, path)
	if err != nil {
		return nil, err
	}
	if !inRange(*list, index) {
		return nil, fmt.Errorf("%w: %d", ErrIndexOutOfRange, index)
	}
	*list = append((*list)[:index], (*list)[index+1:]...)
	return next, nil
}

// MoveBlock swaps the block at index with its neighbour. Moving past either
// end leaves the tree unchanged.
func (e *Editor) MoveBlock(tree []blocks.Block, path Path, index int, direction Direction) ([]blocks.Block, error) {
	next, list, err := target(tree, path)
	if err != nil {
		return nil, err
	}
	other, err := neighbour(index, direction)
	if err != nil {
		return nil, err
	}
	if !inRange(*list, index) || !inRange(*list, other) {
		return next, nil
	}
	(*list)[index], (*list)[other] = (*list)[other], (*list)[index]
	return next, nil
}

func neighbour(index int, direction Direction) (int, error) {
	switch direction {
	case Up:
		return index - 1, nil
	case Down:
		return index + 1, nil
	default:
		return 0, fmt.Errorf("%w: direction %q", ErrInvalidOp, direction)
	}
}

// ReorderBlock moves the block at from to position to, shifting the others.
// Equal or out of range indices leave the tree unchanged.
func (e *Editor) ReorderBlock(tree []blocks.Block, path Path, from, to int) ([]blocks.Block, error) {
	next, list, err := target(tree, path)
	if err != nil {
		return nil, err
	}
	*list = reorder(*list, from, to)
	return next, nil
}

func reorder[T any](list []T, from, to int) []T {
	n := len(list)
	if from == to || from < 0 || to < 0 || from >= n || to >= n {
		return list
	}
	item := list[from]
	out := make([]T, 0, n)
	out = append(out, list[:from]...)
	out = append(out, list[from+1:]...)
	out = append(out[:to], append([]T{item}, out[to:]...)...)
	return out
}

// DuplicateBlock inserts a deep copy of the block at index right after it.
// The copy and everything nested in it get fresh ids.
func (e *Editor) DuplicateBlock(tree []blocks.Block, path Path, index int) ([]blocks.Block, error) {
	next, list, err := target(tree, path)
	if err != nil {
		return nil, err
	}
	if !inRange(*list, index) {
		return nil, fmt.Errorf("%w: %d", ErrIndexOutOfRange, index)
	}
	clone := pkblocks.Clone((*list)[index])
	e.reassignIDs(&clone)

	out := make([]blocks.Block, 0, len(*list)+1)
	out = append(out, (*list)[:index+1]...)
	out = append(out, clone)
	out = append(out, (*list)[index+1:]...)
	*list = out
	return next, nil
}

func (e *Editor) reassignIDs(block *blocks.Block) {
	block.ID = e.ids.BlockID()
	if block.Layout != nil {
		for c := range block.Layout.Columns {
			column := &block.Layout.Columns[c]
			column.ID = e.ids.ColumnID()
			for i := range column.Blocks {
				e.reassignIDs(&column.Blocks[i])
			}
		}
	}
	for i := range block.Children {
		e.reassignIDs(&block.Children[i])
	}
}
