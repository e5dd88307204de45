package editor

import "errors"

var (
	ErrInvalidPath          = errors.New("editor: path does not address a column")
	ErrIndexOutOfRange      = errors.New("editor: index out of range")
	ErrNotLayout            = errors.New("editor: block is not a layout block")
	ErrConfirmationRequired = errors.New("editor: deleting a top-level block requires confirmation")
	ErrUnknownStyle         = errors.New("editor: unknown style property")
	ErrInvalidBreakpoint    = errors.New("editor: unknown breakpoint")
	ErrInvalidColumnCount   = errors.New("editor: column count must be at least 1")
	ErrInvalidOp            = errors.New("editor: invalid operation")
	ErrSessionNotFound      = errors.New("editor: session not found")
	ErrSessionPageRequired  = errors.New("editor: page id required")
)
