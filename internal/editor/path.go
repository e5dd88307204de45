package editor

import (
	"fmt"

	pkblocks "github.com/goliatone/go-pagekit/blocks"
)

// Step descends from a layout block into one of its columns.
type Step struct {
	BlockIndex  int `json:"blockIndex"`
	ColumnIndex int `json:"columnIndex"`
}

// Path addresses a block list inside the page tree. An empty path is the
// top-level content; Path{{BlockIndex: 2, ColumnIndex: 0}} is the first column
// of the third top-level block.
type Path []Step

// TopLevel reports whether p addresses the page content itself.
func (p Path) TopLevel() bool {
	return len(p) == 0
}

// Child extends p by one step.
func (p Path) Child(blockIndex, columnIndex int) Path {
	out := make(Path, len(p), len(p)+1)
	copy(out, p)
	return append(out, Step{BlockIndex: blockIndex, ColumnIndex: columnIndex})
}

func (p Path) String() string {
	if p.TopLevel() {
		return "/content"
	}
	out := "/content"
	for _, step := range p {
		out += fmt.Sprintf("/%d/layout/columns/%d/blocks", step.BlockIndex, step.ColumnIndex)
	}
	return out
}

// locate returns the list addressed by path inside root.
func locate(root *[]pkblocks.Block, path Path) (*[]pkblocks.Block, error) {
	list := root
	for depth, step := range path {
		if step.BlockIndex < 0 || step.BlockIndex >= len(*list) {
			return nil, fmt.Errorf("%w: block %d at depth %d", ErrInvalidPath, step.BlockIndex, depth)
		}
		block := &(*list)[step.BlockIndex]
		if block.Layout == nil {
			return nil, fmt.Errorf("%w: block %q at depth %d", ErrNotLayout, block.ID, depth)
		}
		columns := block.Layout.Columns
		if step.ColumnIndex < 0 || step.ColumnIndex >= len(columns) {
			return nil, fmt.Errorf("%w: column %d of block %q", ErrInvalidPath, step.ColumnIndex, block.ID)
		}
		list = &columns[step.ColumnIndex].Blocks
	}
	return list, nil
}

// target clones tree and returns the copy together with the addressed list.
func target(tree []pkblocks.Block, path Path) ([]pkblocks.Block, *[]pkblocks.Block, error) {
	next := pkblocks.CloneAll(tree)
	if next == nil {
		next = []pkblocks.Block{}
	}
	list, err := locate(&next, path)
	if err != nil {
		return nil, nil, err
	}
	return next, list, nil
}

func inRange(list []pkblocks.Block, index int) bool {
	return index >= 0 && index < len(list)
}
