package editor

import (
	"fmt"
	"strings"

	pkblocks "github.com/goliatone/go-pagekit/blocks"
	"github.com/goliatone/go-pagekit/internal/blocks"
)

// layoutAt returns the layout of the block at index in the list at path,
// inside a fresh copy of tree.
func layoutAt(tree []blocks.Block, path Path, index int) ([]blocks.Block, *blocks.Layout, error) {
	next, list, err := target(tree, path)
	if err != nil {
		return nil, nil, err
	}
	if !inRange(*list, index) {
		return nil, nil, fmt.Errorf("%w: %d", ErrIndexOutOfRange, index)
	}
	block := &(*list)[index]
	if block.BlockType != blocks.TypeLayout {
		return nil, nil, fmt.Errorf("%w: %q is a %s", ErrNotLayout, block.ID, block.BlockType)
	}
	if block.Layout == nil {
		block.Layout = &blocks.Layout{}
	}
	return next, block.Layout, nil
}

// syncGrid sets the grid column count to the number of columns on every
// breakpoint.
func syncGrid(layout *blocks.Layout) {
	if layout.Grid == nil {
		layout.Grid = &blocks.Grid{}
	}
	layout.Grid.Columns = pkblocks.Uniform(len(layout.Columns))
}

func (e *Editor) newColumn(position int) blocks.GridColumn {
	return blocks.GridColumn{
		ID:     e.ids.ColumnID(),
		Name:   fmt.Sprintf("Column %d", position),
		Blocks: []blocks.Block{},
	}
}

// AddColumn appends an empty column to the layout block at index.
func (e *Editor) AddColumn(tree []blocks.Block, path Path, index int) ([]blocks.Block, error) {
	next, layout, err := layoutAt(tree, path, index)
	if err != nil {
		return nil, err
	}
	layout.Columns = append(layout.Columns, e.newColumn(len(layout.Columns)+1))
	syncGrid(layout)
	return next, nil
}

// RemoveColumn drops a column and every block inside it.
func (e *Editor) RemoveColumn(tree []blocks.Block, path Path, index, column int) ([]blocks.Block, error) {
	next, layout, err := layoutAt(tree, path, index)
	if err != nil {
		return nil, err
	}
	if column < 0 || column >= len(layout.Columns) {
		return nil, fmt.Errorf("%w: column %d", ErrIndexOutOfRange, column)
	}
	if len(layout.Columns) == 1 {
		return nil, fmt.Errorf("%w: cannot remove the last column", ErrInvalidColumnCount)
	}
	layout.Columns = append(layout.Columns[:column], layout.Columns[column+1:]...)
	syncGrid(layout)
	return next, nil
}

// MoveColumn swaps a column with its neighbour; no-op past either end.
func (e *Editor) MoveColumn(tree []blocks.Block, path Path, index, column int, direction Direction) ([]blocks.Block, error) {
	next, layout, err := layoutAt(tree, path, index)
	if err != nil {
		return nil, err
	}
	other, err := neighbour(column, direction)
	if err != nil {
		return nil, err
	}
	n := len(layout.Columns)
	if column < 0 || column >= n || other < 0 || other >= n {
		return next, nil
	}
	layout.Columns[column], layout.Columns[other] = layout.Columns[other], layout.Columns[column]
	return next, nil
}

// ReorderColumn moves a column from one position to another.
func (e *Editor) ReorderColumn(tree []blocks.Block, path Path, index, from, to int) ([]blocks.Block, error) {
	next, layout, err := layoutAt(tree, path, index)
	if err != nil {
		return nil, err
	}
	layout.Columns = reorder(layout.Columns, from, to)
	return next, nil
}

// RenameColumn sets a column display name.
func (e *Editor) RenameColumn(tree []blocks.Block, path Path, index, column int, name string) ([]blocks.Block, error) {
	next, layout, err := layoutAt(tree, path, index)
	if err != nil {
		return nil, err
	}
	if column < 0 || column >= len(layout.Columns) {
		return nil, fmt.Errorf("%w: column %d", ErrIndexOutOfRange, column)
	}
	layout.Columns[column].Name = strings.TrimSpace(name)
	return next, nil
}

// SetColumnCount grows the layout with empty columns or drops trailing ones
// until it has count columns.
func (e *Editor) SetColumnCount(tree []blocks.Block, path Path, index, count int) ([]blocks.Block, error) {
	if count < 1 {
		return nil, ErrInvalidColumnCount
	}
	next, layout, err := layoutAt(tree, path, index)
	if err != nil {
		return nil, err
	}
	for len(layout.Columns) < count {
		layout.Columns = append(layout.Columns, e.newColumn(len(layout.Columns)+1))
	}
	layout.Columns = layout.Columns[:count]
	syncGrid(layout)
	return next, nil
}
