package blocks

import (
	"fmt"
	"strings"

	pkblocks "github.com/goliatone/go-pagekit/blocks"
	"github.com/goliatone/go-pagekit/internal/validation"
)

// Validate checks a content list before it is persisted: every block has a
// registered type, a unique non-empty id and a payload accepted by its kind
// schema. Issues are reported with JSON pointer locations rooted at /content.
func (r *Registry) Validate(list []Block) error {
	v := &contentValidator{registry: r, seen: map[string]string{}}
	v.list("/content", list)
	if len(v.issues) == 0 {
		return nil
	}
	return fmt.Errorf("%w: %w", ErrInvalidContent, &validation.PayloadValidationError{Issues: v.issues})
}

type contentValidator struct {
	registry *Registry
	seen     map[string]string
	issues   []validation.ValidationIssue
}

func (v *contentValidator) fail(location, format string, args ...any) {
	v.issues = append(v.issues, validation.ValidationIssue{
		Location: location,
		Message:  fmt.Sprintf(format, args...),
	})
}

func (v *contentValidator) list(location string, list []Block) {
	for i, block := range list {
		v.block(fmt.Sprintf("%s/%d", location, i), block)
	}
}

func (v *contentValidator) block(location string, block Block) {
	id := strings.TrimSpace(block.ID)
	switch {
	case id == "":
		v.fail(location+"/id", "block id is required")
	case v.seen[id] != "":
		v.fail(location+"/id", "duplicate block id %q (also at %s)", id, v.seen[id])
	default:
		v.seen[id] = location
	}

	kind, ok := v.registry.Kind(block.BlockType)
	if !ok {
		v.fail(location+"/blockType", "unknown block type %q", block.BlockType)
	} else if kind.Schema != nil {
		if err := kind.Schema.Validate(block.Props); err != nil {
			v.issues = append(v.issues, validation.Prefix(location, validation.Issues(err))...)
		}
	}

	if block.Styles != nil {
		v.styles(location+"/styles", block.Styles)
	}
	if block.Layout != nil {
		v.layout(location+"/layout", block.Layout)
	}
	v.list(location+"/children", block.Children)
}

func (v *contentValidator) styles(location string, styles *Styles) {
	for _, property := range pkblocks.StyleProperties() {
		value := styles.Get(property)
		if value == nil || !value.IsResponsive() || property.Responsive() {
			continue
		}
		v.fail(location+"/"+string(property), "%s does not accept per-breakpoint values", property)
	}
}

func (v *contentValidator) layout(location string, layout *Layout) {
	switch layout.Type {
	case "", ContainerDefault, ContainerFullWidth, ContainerBoxed:
	default:
		v.fail(location+"/type", "unknown container type %q", layout.Type)
	}
	if layout.Grid != nil && layout.Grid.Columns != nil {
		if count, ok := layout.Grid.Columns.ScalarValue(); ok && count < 1 {
			v.fail(location+"/grid/columns", "column count must be positive")
		}
		for _, bp := range pkblocks.Breakpoints {
			if count, ok := layout.Grid.Columns.Slot(bp); ok && count < 1 {
				v.fail(location+"/grid/columns", "column count must be positive")
				break
			}
		}
	}
	columnIDs := map[string]bool{}
	for i, column := range layout.Columns {
		columnLocation := fmt.Sprintf("%s/columns/%d", location, i)
		columnID := strings.TrimSpace(column.ID)
		switch {
		case columnID == "":
			v.fail(columnLocation+"/id", "column id is required")
		case columnIDs[columnID]:
			v.fail(columnLocation+"/id", "duplicate column id %q", columnID)
		default:
			columnIDs[columnID] = true
		}
		v.list(columnLocation+"/blocks", column.Blocks)
	}
}

// Normalize returns a copy of list with layout grids kept in step with their
// column lists: a layout with N columns and no grid column count at some
// breakpoint gets N there. Explicit counts are preserved.
func Normalize(list []Block) []Block {
	out := pkblocks.CloneAll(list)
	normalizeList(out)
	return out
}

func normalizeList(list []Block) {
	for i := range list {
		block := &list[i]
		if block.Layout != nil && len(block.Layout.Columns) > 0 {
			if block.Layout.Grid == nil {
				block.Layout.Grid = &Grid{}
			}
			if block.Layout.Grid.Columns.IsZero() {
				block.Layout.Grid.Columns = pkblocks.Uniform(len(block.Layout.Columns))
			}
			for c := range block.Layout.Columns {
				if block.Layout.Columns[c].Blocks == nil {
					block.Layout.Columns[c].Blocks = []Block{}
				}
				normalizeList(block.Layout.Columns[c].Blocks)
			}
		}
		normalizeList(block.Children)
	}
}
