package blocks

import "errors"

// ErrStopWalk ends a Walk early without reporting an error.
var ErrStopWalk = errors.New("blocks: stop walk")

// Visitor is invoked for every block of a tree. depth is 0 for top-level blocks.
type Visitor func(block Block, depth int) error

// Walk visits blocks in document order: each block, then its column blocks,
// then its children.
func Walk(list []Block, fn Visitor) error {
	if fn == nil {
		return nil
	}
	err := walk(list, 0, fn)
	if errors.Is(err, ErrStopWalk) {
		return nil
	}
	return err
}

func walk(list []Block, depth int, fn Visitor) error {
	for _, block := range list {
		if err := fn(block, depth); err != nil {
			return err
		}
		if block.Layout != nil {
			for _, column := range block.Layout.Columns {
				if err := walk(column.Blocks, depth+1, fn); err != nil {
					return err
				}
			}
		}
		if err := walk(block.Children, depth+1, fn); err != nil {
			return err
		}
	}
	return nil
}

// CollectIDs returns every block id in document order.
func CollectIDs(list []Block) []string {
	ids := []string{}
	_ = Walk(list, func(block Block, _ int) error {
		ids = append(ids, block.ID)
		return nil
	})
	return ids
}

// Count returns the number of blocks in the tree.
func Count(list []Block) int {
	total := 0
	_ = Walk(list, func(Block, int) error {
		total++
		return nil
	})
	return total
}

// Clone returns a deep copy of a block including nested columns and children.
func Clone(block Block) Block {
	out := Block{
		ID:        block.ID,
		BlockType: block.BlockType,
		Styles:    block.Styles.Clone(),
		Layout:    block.Layout.Clone(),
		Props:     cloneMap(block.Props),
	}
	if block.Children != nil {
		out.Children = CloneAll(block.Children)
	}
	return out
}

// CloneAll deep copies a block list. A nil list stays nil.
func CloneAll(list []Block) []Block {
	if list == nil {
		return nil
	}
	out := make([]Block, len(list))
	for i, block := range list {
		out[i] = Clone(block)
	}
	return out
}

// Clone returns a deep copy of the layout.
func (l *Layout) Clone() *Layout {
	if l == nil {
		return nil
	}
	out := &Layout{
		Type:     l.Type,
		MaxWidth: l.MaxWidth.Clone(),
		Padding:  l.Padding.Clone(),
		Grid:     l.Grid.Clone(),
	}
	if l.Columns != nil {
		out.Columns = make([]GridColumn, len(l.Columns))
		for i, column := range l.Columns {
			out.Columns[i] = GridColumn{
				ID:     column.ID,
				Name:   column.Name,
				Blocks: CloneAll(column.Blocks),
			}
		}
	}
	return out
}

// Clone returns a deep copy of the grid.
func (g *Grid) Clone() *Grid {
	if g == nil {
		return nil
	}
	return &Grid{
		Columns:  g.Columns.Clone(),
		Gap:      g.Gap.Clone(),
		AutoRows: g.AutoRows.Clone(),
	}
}

func cloneMap(in map[string]any) map[string]any {
	if in == nil {
		return nil
	}
	out := make(map[string]any, len(in))
	for key, value := range in {
		out[key] = cloneAny(value)
	}
	return out
}

func cloneAny(value any) any {
	switch typed := value.(type) {
	case map[string]any:
		return cloneMap(typed)
	case []any:
		out := make([]any, len(typed))
		for i, item := range typed {
			out[i] = cloneAny(item)
		}
		return out
	default:
		return typed
	}
}
