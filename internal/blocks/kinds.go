package blocks

import (
	"fmt"

	pkblocks "github.com/goliatone/go-pagekit/blocks"
	"github.com/goliatone/go-pagekit/internal/validation"
)

// FieldKind selects the input widget for an editor field.
type FieldKind string

const (
	FieldText     FieldKind = "text"
	FieldTextarea FieldKind = "textarea"
	FieldRichText FieldKind = "richtext"
	FieldSelect   FieldKind = "select"
	FieldURL      FieldKind = "url"
	FieldNumber   FieldKind = "number"
)

// Field is one input of an editor form.
type Field struct {
	Name        string    `json:"name"`
	Label       string    `json:"label"`
	Kind        FieldKind `json:"kind"`
	Options     []string  `json:"options,omitempty"`
	Placeholder string    `json:"placeholder,omitempty"`
	Help        string    `json:"help,omitempty"`
}

// EditorForm describes how the admin editor edits one block kind.
type EditorForm struct {
	Type   Type    `json:"type"`
	Title  string  `json:"title"`
	Fields []Field `json:"fields"`
	// Columns enables the column manager for layout blocks.
	Columns bool `json:"columns,omitempty"`
	// Fallback is set for kinds that cannot be edited.
	Fallback string `json:"fallback,omitempty"`
}

// FallbackEditor is the textual editor row shown for unknown kinds.
func FallbackEditor(t Type) EditorForm {
	return EditorForm{
		Type:     t,
		Title:    string(t),
		Fallback: fmt.Sprintf("Unknown block type: %s", t),
	}
}

const (
	categoryContent = "Content"
	categoryLayout  = "Layout"
	categoryProfile = "Profile"

	defaultGridGap = "1rem"
	defaultColumns = 2
	defaultQRSize  = 200
)

var (
	textFormats     = []string{"html", "markdown"}
	cardVariants    = []string{"default", "compact", "banner"}
	profileVariants = []string{"full", "compact"}
)

// builtinKind maps every built-in type to its kind. A type without a case is
// a programming error.
func builtinKind(t Type) Kind {
	switch t {
	case pkblocks.TypeText:
		return Kind{
			Type:        t,
			Label:       "Text",
			Icon:        "type",
			Description: "Rich text or markdown content",
			Category:    categoryContent,
			Defaults:    map[string]any{"content": "", "format": "html"},
			Schema: objectSchema(map[string]any{
				"content": map[string]any{"type": "string"},
				"format":  map[string]any{"type": "string", "enum": toAny(textFormats)},
			}),
			Editor: EditorForm{
				Title: "Text",
				Fields: []Field{
					{Name: "content", Label: "Content", Kind: FieldRichText},
					{Name: "format", Label: "Format", Kind: FieldSelect, Options: textFormats},
				},
			},
			Display: displayText,
		}
	case pkblocks.TypeLayout:
		return Kind{
			Type:        t,
			Label:       "Layout",
			Icon:        "columns",
			Description: "Grid container with columns of nested blocks",
			Category:    categoryLayout,
			Schema:      objectSchema(map[string]any{}),
			Editor: EditorForm{
				Title:   "Layout",
				Columns: true,
				Fields: []Field{
					{Name: "layout.type", Label: "Container", Kind: FieldSelect, Options: []string{
						string(ContainerDefault), string(ContainerFullWidth), string(ContainerBoxed),
					}},
				},
			},
			Display:   displayLayout,
			NewLayout: newDefaultLayout,
		}
	case pkblocks.TypeInlineEditView:
		return Kind{
			Type:        t,
			Label:       "Profile Editor View",
			Icon:        "user-pen",
			Description: "Editable view of the current profile",
			Category:    categoryProfile,
			Defaults:    map[string]any{"variant": "full"},
			Schema: objectSchema(map[string]any{
				"variant": map[string]any{"type": "string", "enum": toAny(profileVariants)},
			}),
			Editor: EditorForm{
				Title:  "Profile Editor View",
				Fields: []Field{{Name: "variant", Label: "Variant", Kind: FieldSelect, Options: profileVariants}},
			},
			Display: displayInlineEditView,
		}
	case pkblocks.TypeLiveView:
		return Kind{
			Type:        t,
			Label:       "Live Profile",
			Icon:        "eye",
			Description: "Live view of the public profile",
			Category:    categoryProfile,
			Defaults:    map[string]any{"variant": "full"},
			Schema: objectSchema(map[string]any{
				"variant": map[string]any{"type": "string", "enum": toAny(profileVariants)},
			}),
			Editor: EditorForm{
				Title:  "Live Profile",
				Fields: []Field{{Name: "variant", Label: "Variant", Kind: FieldSelect, Options: profileVariants}},
			},
			Display: displayLiveView,
		}
	case pkblocks.TypeMediaCard:
		return Kind{
			Type:        t,
			Label:       "Media Card",
			Icon:        "id-card",
			Description: "Profile card with photo, banner and links",
			Category:    categoryProfile,
			Defaults:    map[string]any{"variant": "default"},
			Schema: objectSchema(map[string]any{
				"variant":    map[string]any{"type": "string", "enum": toAny(cardVariants)},
				"profileUrl": map[string]any{"type": "string"},
				"hashtag":    map[string]any{"type": "string"},
			}),
			Editor: EditorForm{
				Title: "Media Card",
				Fields: []Field{
					{Name: "variant", Label: "Variant", Kind: FieldSelect, Options: cardVariants},
					{Name: "profileUrl", Label: "Profile URL", Kind: FieldURL, Help: "Defaults to the public profile URL"},
					{Name: "hashtag", Label: "Hashtag", Kind: FieldText, Placeholder: "#mycard"},
				},
			},
			Display: displayMediaCard,
		}
	case pkblocks.TypeQRCode:
		return Kind{
			Type:        t,
			Label:       "QR Code",
			Icon:        "qr-code",
			Description: "QR code linking to the public profile",
			Category:    categoryProfile,
			Defaults:    map[string]any{"size": defaultQRSize},
			Schema: objectSchema(map[string]any{
				"profileUrl": map[string]any{"type": "string"},
				"size":       map[string]any{"type": "integer", "minimum": 64, "maximum": 1024},
				"label":      map[string]any{"type": "string"},
			}),
			Editor: EditorForm{
				Title: "QR Code",
				Fields: []Field{
					{Name: "profileUrl", Label: "Profile URL", Kind: FieldURL, Help: "Defaults to the public profile URL"},
					{Name: "size", Label: "Size (px)", Kind: FieldNumber},
					{Name: "label", Label: "Caption", Kind: FieldText},
				},
			},
			Display: displayQRCode,
		}
	default:
		panic(fmt.Sprintf("blocks: no kind registered for built-in type %q", t))
	}
}

func newDefaultLayout(ids IDGenerator) *Layout {
	columns := make([]GridColumn, defaultColumns)
	for i := range columns {
		columns[i] = GridColumn{
			ID:     ids.ColumnID(),
			Name:   fmt.Sprintf("Column %d", i+1),
			Blocks: []Block{},
		}
	}
	return &Layout{
		Type: ContainerDefault,
		Grid: &Grid{
			Columns: pkblocks.Uniform(defaultColumns),
			Gap:     pkblocks.Scalar(defaultGridGap),
		},
		Columns: columns,
	}
}

func objectSchema(properties map[string]any) *validation.Schema {
	return validation.MustCompile(map[string]any{
		"type":                 "object",
		"properties":           properties,
		"additionalProperties": false,
	})
}

func toAny(values []string) []any {
	out := make([]any, len(values))
	for i, v := range values {
		out[i] = v
	}
	return out
}
