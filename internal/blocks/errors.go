package blocks

import "errors"

var (
	ErrUnknownType    = errors.New("blocks: unknown block type")
	ErrKindExists     = errors.New("blocks: block kind already registered")
	ErrKindIncomplete = errors.New("blocks: block kind requires type, label, and display")
	ErrInvalidContent = errors.New("blocks: invalid content")
)
