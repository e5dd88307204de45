package blocks

import (
	"strings"
)

// Type tags a block kind. The set is closed; documents authored elsewhere may
// still carry tags outside of it and consumers must tolerate them.
type Type string

const (
	TypeText           Type = "text-block"
	TypeLayout         Type = "layout-block"
	TypeInlineEditView Type = "inline-edit-view-block"
	TypeLiveView       Type = "live-view-block"
	TypeMediaCard      Type = "media-card-block"
	TypeQRCode         Type = "qr-code-block"
)

var knownTypes = []Type{
	TypeText,
	TypeLayout,
	TypeInlineEditView,
	TypeLiveView,
	TypeMediaCard,
	TypeQRCode,
}

// KnownTypes returns every block kind in registration order.
func KnownTypes() []Type {
	return append([]Type(nil), knownTypes...)
}

func (t Type) String() string { return string(t) }

// Known reports whether t is one of the built-in block kinds.
func (t Type) Known() bool {
	switch t {
	case TypeText, TypeLayout, TypeInlineEditView, TypeLiveView, TypeMediaCard, TypeQRCode:
		return true
	default:
		return false
	}
}

// EmbedsProfile reports whether the kind renders profile data instead of its own fields.
func (t Type) EmbedsProfile() bool {
	switch t {
	case TypeInlineEditView, TypeLiveView, TypeMediaCard, TypeQRCode:
		return true
	default:
		return false
	}
}

// Breakpoint names a responsive viewport slot.
type Breakpoint string

const (
	BreakpointMobile  Breakpoint = "mobile"
	BreakpointTablet  Breakpoint = "tablet"
	BreakpointDesktop Breakpoint = "desktop"
)

// Breakpoints lists the slots in mobile-first order.
var Breakpoints = []Breakpoint{BreakpointMobile, BreakpointTablet, BreakpointDesktop}

// ParseBreakpoint normalises user input into a Breakpoint.
func ParseBreakpoint(value string) (Breakpoint, bool) {
	switch Breakpoint(strings.ToLower(strings.TrimSpace(value))) {
	case BreakpointMobile:
		return BreakpointMobile, true
	case BreakpointTablet:
		return BreakpointTablet, true
	case BreakpointDesktop:
		return BreakpointDesktop, true
	default:
		return "", false
	}
}

// ContainerType controls the wrapper sizing of a block.
type ContainerType string

const (
	ContainerDefault   ContainerType = "container"
	ContainerFullWidth ContainerType = "full-width"
	ContainerBoxed     ContainerType = "boxed"
)

// Block is a node of the page content tree. Kind specific payload fields
// (content, profileUrl, variant, ...) live in Props and are inlined next to the
// common fields when serialised.
type Block struct {
	ID        string
	BlockType Type
	Styles    *Styles
	Layout    *Layout
	Children  []Block
	Props     map[string]any
}

// GridColumn is an ordered column owned by a layout block.
type GridColumn struct {
	ID     string  `json:"id"`
	Name   string  `json:"name"`
	Blocks []Block `json:"blocks"`
}

// Grid describes the responsive grid of a layout block.
type Grid struct {
	Columns  *Value[int]    `json:"columns,omitempty"`
	Gap      *Value[string] `json:"gap,omitempty"`
	AutoRows *Value[string] `json:"autoRows,omitempty"`
}

// Layout is only meaningful on layout blocks, although any block may carry
// one to pick its container type.
type Layout struct {
	Type     ContainerType  `json:"type,omitempty"`
	MaxWidth *Value[string] `json:"maxWidth,omitempty"`
	Padding  *Value[string] `json:"padding,omitempty"`
	Grid     *Grid          `json:"grid,omitempty"`
	Columns  []GridColumn   `json:"columns,omitempty"`
}

// ContainerType returns the declared container type, defaulting to container.
func (l *Layout) ContainerType() ContainerType {
	if l == nil {
		return ContainerDefault
	}
	switch l.Type {
	case ContainerFullWidth, ContainerBoxed:
		return l.Type
	default:
		return ContainerDefault
	}
}

// Prop returns a payload field.
func (b Block) Prop(key string) (any, bool) {
	if b.Props == nil {
		return nil, false
	}
	value, ok := b.Props[key]
	return value, ok
}

// StringProp returns a payload field as a trimmed string, or "" when missing
// or not a string.
func (b Block) StringProp(key string) string {
	value, ok := b.Prop(key)
	if !ok {
		return ""
	}
	text, ok := value.(string)
	if !ok {
		return ""
	}
	return strings.TrimSpace(text)
}

// WithProp returns a copy of b with the payload field set.
func (b Block) WithProp(key string, value any) Block {
	props := cloneMap(b.Props)
	if props == nil {
		props = map[string]any{}
	}
	props[key] = value
	b.Props = props
	return b
}

// IsLayout reports whether the block is a layout container.
func (b Block) IsLayout() bool {
	return b.BlockType == TypeLayout
}
