package pages

import pkpages "github.com/goliatone/go-pagekit/pages"

type (
	Page              = pkpages.Page
	SEO               = pkpages.SEO
	Service           = pkpages.Service
	CreatePageRequest = pkpages.CreatePageRequest
	UpdatePageRequest = pkpages.UpdatePageRequest
	DeletePageRequest = pkpages.DeletePageRequest
	ListPagesOptions  = pkpages.ListPagesOptions
	PageList          = pkpages.PageList
	PageNotFoundError = pkpages.PageNotFoundError
)

var (
	ErrPageRequired               = pkpages.ErrPageRequired
	ErrTitleRequired              = pkpages.ErrTitleRequired
	ErrHandleRequired             = pkpages.ErrHandleRequired
	ErrHandleInvalid              = pkpages.ErrHandleInvalid
	ErrHandleExists               = pkpages.ErrHandleExists
	ErrParentNotFound             = pkpages.ErrParentNotFound
	ErrParentSelf                 = pkpages.ErrParentSelf
	ErrDeleteConfirmationRequired = pkpages.ErrDeleteConfirmationRequired
	ErrAuthRequired               = pkpages.ErrAuthRequired
)

// IsNotFound reports whether err wraps a PageNotFoundError.
func IsNotFound(err error) bool {
	return pkpages.IsNotFound(err)
}
