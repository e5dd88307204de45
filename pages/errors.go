package pages

import (
	"errors"
	"fmt"
)

var (
	ErrPageRequired               = errors.New("pages: page id required")
	ErrTitleRequired              = errors.New("pages: title is required")
	ErrHandleRequired             = errors.New("pages: handle is required")
	ErrHandleInvalid              = errors.New("pages: handle contains invalid characters")
	ErrHandleExists               = errors.New("pages: handle already exists")
	ErrParentNotFound             = errors.New("pages: parent page not found")
	ErrParentSelf                 = errors.New("pages: page cannot be its own parent")
	ErrDeleteConfirmationRequired = errors.New("pages: delete requires confirmation")
	ErrAuthRequired               = errors.New("pages: authentication required")
)

// PageNotFoundError is returned when a page lookup fails.
type PageNotFoundError struct {
	Key string
}

func (e *PageNotFoundError) Error() string {
	if e == nil || e.Key == "" {
		return "page not found"
	}
	return fmt.Sprintf("page %q not found", e.Key)
}

// IsNotFound reports whether err wraps a PageNotFoundError.
func IsNotFound(err error) bool {
	var target *PageNotFoundError
	return errors.As(err, &target)
}
