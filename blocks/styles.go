package blocks

// StyleProperty names a style field using its JSON key.
type StyleProperty string

const (
	StylePadding         StyleProperty = "padding"
	StyleMargin          StyleProperty = "margin"
	StyleBackgroundColor StyleProperty = "backgroundColor"
	StyleTextColor       StyleProperty = "textColor"
	StyleBorder          StyleProperty = "border"
	StyleBorderRadius    StyleProperty = "borderRadius"
	StyleWidth           StyleProperty = "width"
	StyleMaxWidth        StyleProperty = "maxWidth"
	StyleMinHeight       StyleProperty = "minHeight"
	StyleDisplay         StyleProperty = "display"
	StyleFlexDirection   StyleProperty = "flexDirection"
	StyleAlignItems      StyleProperty = "alignItems"
	StyleJustifyContent  StyleProperty = "justifyContent"
	StyleGap             StyleProperty = "gap"
)

var styleProperties = []StyleProperty{
	StylePadding,
	StyleMargin,
	StyleBackgroundColor,
	StyleTextColor,
	StyleBorder,
	StyleBorderRadius,
	StyleWidth,
	StyleMaxWidth,
	StyleMinHeight,
	StyleDisplay,
	StyleFlexDirection,
	StyleAlignItems,
	StyleJustifyContent,
	StyleGap,
}

// StyleProperties lists every style field in panel order.
func StyleProperties() []StyleProperty {
	return append([]StyleProperty(nil), styleProperties...)
}

// Responsive reports whether edits to the property are scoped to a breakpoint.
// Colors, border and border radius are written as plain scalars.
func (p StyleProperty) Responsive() bool {
	switch p {
	case StyleBackgroundColor, StyleTextColor, StyleBorder, StyleBorderRadius:
		return false
	default:
		return true
	}
}

// Valid reports whether p is a known property.
func (p StyleProperty) Valid() bool {
	for _, candidate := range styleProperties {
		if candidate == p {
			return true
		}
	}
	return false
}

// CSSName returns the kebab-case CSS property name.
func (p StyleProperty) CSSName() string {
	switch p {
	case StyleBackgroundColor:
		return "background-color"
	case StyleTextColor:
		return "color"
	case StyleBorderRadius:
		return "border-radius"
	case StyleMaxWidth:
		return "max-width"
	case StyleMinHeight:
		return "min-height"
	case StyleFlexDirection:
		return "flex-direction"
	case StyleAlignItems:
		return "align-items"
	case StyleJustifyContent:
		return "justify-content"
	default:
		return string(p)
	}
}

// Styles is the closed set of per-block style properties.
type Styles struct {
	Padding         *Value[string] `json:"padding,omitempty"`
	Margin          *Value[string] `json:"margin,omitempty"`
	BackgroundColor *Value[string] `json:"backgroundColor,omitempty"`
	TextColor       *Value[string] `json:"textColor,omitempty"`
	Border          *Value[string] `json:"border,omitempty"`
	BorderRadius    *Value[string] `json:"borderRadius,omitempty"`
	Width           *Value[string] `json:"width,omitempty"`
	MaxWidth        *Value[string] `json:"maxWidth,omitempty"`
	MinHeight       *Value[string] `json:"minHeight,omitempty"`
	Display         *Value[string] `json:"display,omitempty"`
	FlexDirection   *Value[string] `json:"flexDirection,omitempty"`
	AlignItems      *Value[string] `json:"alignItems,omitempty"`
	JustifyContent  *Value[string] `json:"justifyContent,omitempty"`
	Gap             *Value[string] `json:"gap,omitempty"`
}

func (s *Styles) field(p StyleProperty) **Value[string] {
	switch p {
	case StylePadding:
		return &s.Padding
	case StyleMargin:
		return &s.Margin
	case StyleBackgroundColor:
		return &s.BackgroundColor
	case StyleTextColor:
		return &s.TextColor
	case StyleBorder:
		return &s.Border
	case StyleBorderRadius:
		return &s.BorderRadius
	case StyleWidth:
		return &s.Width
	case StyleMaxWidth:
		return &s.MaxWidth
	case StyleMinHeight:
		return &s.MinHeight
	case StyleDisplay:
		return &s.Display
	case StyleFlexDirection:
		return &s.FlexDirection
	case StyleAlignItems:
		return &s.AlignItems
	case StyleJustifyContent:
		return &s.JustifyContent
	case StyleGap:
		return &s.Gap
	default:
		return nil
	}
}

// Get returns the value stored for p.
func (s *Styles) Get(p StyleProperty) *Value[string] {
	if s == nil {
		return nil
	}
	if ptr := s.field(p); ptr != nil {
		return *ptr
	}
	return nil
}

// Set replaces the value stored for p. Unknown properties are ignored.
func (s *Styles) Set(p StyleProperty, value *Value[string]) {
	if s == nil {
		return
	}
	if ptr := s.field(p); ptr != nil {
		*ptr = value
	}
}

// Clone returns a deep copy.
func (s *Styles) Clone() *Styles {
	if s == nil {
		return nil
	}
	out := &Styles{}
	for _, p := range styleProperties {
		out.Set(p, s.Get(p).Clone())
	}
	return out
}
