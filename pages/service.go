package pages

import (
	"context"

	"github.com/goliatone/go-pagekit/blocks"
	"github.com/google/uuid"
)

// Service describes page management capabilities.
type Service interface {
	Create(ctx context.Context, req CreatePageRequest) (*Page, error)
	Get(ctx context.Context, id uuid.UUID) (*Page, error)
	GetByHandle(ctx context.Context, handle string) (*Page, error)
	List(ctx context.Context, opts ListPagesOptions) (*PageList, error)
	Update(ctx context.Context, req UpdatePageRequest) (*Page, error)
	Delete(ctx context.Context, req DeletePageRequest) error
}

// CreatePageRequest captures the payload required to create a page.
type CreatePageRequest struct {
	ID           uuid.UUID      `json:"id,omitempty"`
	Title        string         `json:"title"`
	Handle       string         `json:"handle"`
	ParentHandle *string        `json:"parentHandle,omitempty"`
	Description  *string        `json:"description,omitempty"`
	Content      []blocks.Block `json:"content,omitempty"`
	SEO          *SEO           `json:"seo,omitempty"`
	IsPublished  bool           `json:"isPublished"`
	RequiresAuth bool           `json:"requiresAuth"`
	Author       string         `json:"author,omitempty"`
}

// UpdatePageRequest is a partial update. Nil fields are left untouched and a
// non-nil Content replaces the whole block tree.
type UpdatePageRequest struct {
	ID           uuid.UUID       `json:"-"`
	Title        *string         `json:"title,omitempty"`
	Handle       *string         `json:"handle,omitempty"`
	ParentHandle *string         `json:"parentHandle,omitempty"`
	Description  *string         `json:"description,omitempty"`
	Content      *[]blocks.Block `json:"content,omitempty"`
	SEO          *SEO            `json:"seo,omitempty"`
	IsPublished  *bool           `json:"isPublished,omitempty"`
	RequiresAuth *bool           `json:"requiresAuth,omitempty"`
	Author       *string         `json:"author,omitempty"`
}

// DeletePageRequest removes a page. Confirmed must be set by the caller
// after the user acknowledged the destructive action.
type DeletePageRequest struct {
	ID        uuid.UUID
	Confirmed bool
}

// ListPagesOptions controls admin browsing. Page is 1-based.
type ListPagesOptions struct {
	Page   int
	Limit  int
	Search string
}

// PageList is a single page of results.
type PageList struct {
	Items []*Page `json:"items"`
	Total int     `json:"total"`
	Page  int     `json:"page"`
	Limit int     `json:"limit"`
}
