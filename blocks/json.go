package blocks

import (
	"encoding/json"
	"fmt"
)

const (
	keyID        = "id"
	keyBlockType = "blockType"
	keyStyles    = "styles"
	keyLayout    = "layout"
	keyChildren  = "children"
)

func isReservedKey(key string) bool {
	switch key {
	case keyID, keyBlockType, keyStyles, keyLayout, keyChildren:
		return true
	default:
		return false
	}
}

// MarshalJSON inlines Props next to the common block fields.
func (b Block) MarshalJSON() ([]byte, error) {
	out := make(map[string]any, len(b.Props)+5)
	for key, value := range b.Props {
		if isReservedKey(key) {
			continue
		}
		out[key] = value
	}
	out[keyID] = b.ID
	out[keyBlockType] = b.BlockType
	if b.Styles != nil {
		out[keyStyles] = b.Styles
	}
	if b.Layout != nil {
		out[keyLayout] = b.Layout
	}
	if len(b.Children) > 0 {
		out[keyChildren] = b.Children
	}
	return json.Marshal(out)
}

// UnmarshalJSON splits the common fields from the kind specific payload.
func (b *Block) UnmarshalJSON(data []byte) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	*b = Block{}

	if value, ok := raw[keyID]; ok {
		if err := json.Unmarshal(value, &b.ID); err != nil {
			return fmt.Errorf("block id: %w", err)
		}
	}
	if value, ok := raw[keyBlockType]; ok {
		if err := json.Unmarshal(value, &b.BlockType); err != nil {
			return fmt.Errorf("block %q blockType: %w", b.ID, err)
		}
	}
	if value, ok := raw[keyStyles]; ok && !isNull(value) {
		styles := &Styles{}
		if err := json.Unmarshal(value, styles); err != nil {
			return fmt.Errorf("block %q styles: %w", b.ID, err)
		}
		b.Styles = styles
	}
	if value, ok := raw[keyLayout]; ok && !isNull(value) {
		layout := &Layout{}
		if err := json.Unmarshal(value, layout); err != nil {
			return fmt.Errorf("block %q layout: %w", b.ID, err)
		}
		b.Layout = layout
	}
	if value, ok := raw[keyChildren]; ok && !isNull(value) {
		if err := json.Unmarshal(value, &b.Children); err != nil {
			return fmt.Errorf("block %q children: %w", b.ID, err)
		}
	}

	for key, value := range raw {
		if isReservedKey(key) {
			continue
		}
		var decoded any
		if err := json.Unmarshal(value, &decoded); err != nil {
			return fmt.Errorf("block %q field %s: %w", b.ID, key, err)
		}
		if b.Props == nil {
			b.Props = make(map[string]any, len(raw))
		}
		b.Props[key] = decoded
	}
	return nil
}

func isNull(value json.RawMessage) bool {
	return string(value) == "null"
}
