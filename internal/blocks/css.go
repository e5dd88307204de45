package blocks

import (
	"fmt"
	"html/template"
	"strings"

	pkblocks "github.com/goliatone/go-pagekit/blocks"
)

// Sizing holds the default container dimensions.
type Sizing struct {
	ContainerMaxWidth string
	BoxedMaxWidth     string
	BoxedPadding      string
}

// DefaultSizing returns the built-in container dimensions.
func DefaultSizing() Sizing {
	return Sizing{
		ContainerMaxWidth: "1280px",
		BoxedMaxWidth:     "1024px",
		BoxedPadding:      "2rem",
	}
}

func (s Sizing) withDefaults() Sizing {
	defaults := DefaultSizing()
	if strings.TrimSpace(s.ContainerMaxWidth) == "" {
		s.ContainerMaxWidth = defaults.ContainerMaxWidth
	}
	if strings.TrimSpace(s.BoxedMaxWidth) == "" {
		s.BoxedMaxWidth = defaults.BoxedMaxWidth
	}
	if strings.TrimSpace(s.BoxedPadding) == "" {
		s.BoxedPadding = defaults.BoxedPadding
	}
	return s
}

type cssBuilder struct {
	decls []string
}

func (b *cssBuilder) add(property, value string) {
	cleaned, ok := sanitizeCSSValue(value)
	if !ok {
		return
	}
	b.decls = append(b.decls, property+": "+cleaned)
}

func (b *cssBuilder) addResolved(property string, value *pkblocks.Value[string], bp Breakpoint) {
	if resolved, ok := pkblocks.Resolve(value, bp); ok {
		b.add(property, resolved)
	}
}

// CSS returns the declarations as a trusted style attribute value. Every
// value went through sanitizeCSSValue.
func (b *cssBuilder) CSS() template.CSS {
	if len(b.decls) == 0 {
		return ""
	}
	return template.CSS(strings.Join(b.decls, "; ") + ";")
}

var blockedCSSFragments = []string{"expression", "javascript:", "url(", "@import", "</"}

func sanitizeCSSValue(value string) (string, bool) {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return "", false
	}
	if strings.ContainsAny(trimmed, ";{}<>\"'\\`") {
		return "", false
	}
	lower := strings.ToLower(trimmed)
	for _, fragment := range blockedCSSFragments {
		if strings.Contains(lower, fragment) {
			return "", false
		}
	}
	return trimmed, true
}

func (b *cssBuilder) addContainer(layout *Layout, bp Breakpoint, sizing Sizing) {
	sizing = sizing.withDefaults()
	var maxWidth, padding *pkblocks.Value[string]
	if layout != nil {
		maxWidth = layout.MaxWidth
		padding = layout.Padding
	}
	switch layout.ContainerType() {
	case ContainerFullWidth:
		b.add("width", "100%")
		b.add("max-width", "100%")
	case ContainerBoxed:
		b.add("width", "100%")
		b.add("max-width", resolvedOr(maxWidth, bp, sizing.BoxedMaxWidth))
		b.add("margin-left", "auto")
		b.add("margin-right", "auto")
		b.add("padding", resolvedOr(padding, bp, sizing.BoxedPadding))
		return
	default:
		b.add("width", "100%")
		b.add("max-width", resolvedOr(maxWidth, bp, sizing.ContainerMaxWidth))
		b.add("margin-left", "auto")
		b.add("margin-right", "auto")
	}
	b.addResolved("padding", padding, bp)
}

func (b *cssBuilder) addStyles(styles *Styles, bp Breakpoint) {
	if styles == nil {
		return
	}
	for _, property := range pkblocks.StyleProperties() {
		b.addResolved(property.CSSName(), styles.Get(property), bp)
	}
}

func resolvedOr(value *pkblocks.Value[string], bp Breakpoint, fallback string) string {
	if resolved, ok := pkblocks.Resolve(value, bp); ok && strings.TrimSpace(resolved) != "" {
		return resolved
	}
	return fallback
}

// WrapperCSS resolves the container sizing of block followed by its own
// styles, so explicit styles override container defaults.
func WrapperCSS(block Block, bp Breakpoint, sizing Sizing) template.CSS {
	b := &cssBuilder{}
	b.addContainer(block.Layout, bp, sizing)
	b.addStyles(block.Styles, bp)
	return b.CSS()
}

// GridCSS describes the grid container of a layout block. columnCount is used
// when the grid declares no column count.
func GridCSS(grid *Grid, bp Breakpoint, columnCount int) template.CSS {
	b := &cssBuilder{}
	count := columnCount
	if grid != nil {
		if resolved, ok := pkblocks.Resolve(grid.Columns, bp); ok && resolved > 0 {
			count = resolved
		}
	}
	if count < 1 {
		count = 1
	}
	b.add("display", "grid")
	b.add("grid-template-columns", fmt.Sprintf("repeat(%d, minmax(0, 1fr))", count))
	if grid != nil {
		b.addResolved("gap", grid.Gap, bp)
		b.addResolved("grid-auto-rows", grid.AutoRows, bp)
	}
	return b.CSS()
}

// FlexCSS describes the stacked container used for layout children without a grid.
func FlexCSS() template.CSS {
	b := &cssBuilder{}
	b.add("display", "flex")
	b.add("flex-direction", "column")
	b.add("gap", "1rem")
	return b.CSS()
}
