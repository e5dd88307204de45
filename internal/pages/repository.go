package pages

import (
	"context"

	repository "github.com/goliatone/go-repository-bun"
	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// PageRepository is the storage contract of the page service.
type PageRepository interface {
	Create(ctx context.Context, record *Page) (*Page, error)
	GetByID(ctx context.Context, id uuid.UUID) (*Page, error)
	GetByHandle(ctx context.Context, handle string) (*Page, error)
	// List returns one window of pages ordered by title then handle, and
	// the total count of matches.
	List(ctx context.Context, query ListQuery) ([]*Page, int, error)
	Update(ctx context.Context, record *Page) (*Page, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// ListQuery is the storage form of ListPagesOptions: a 0-based offset and a
// lowercase search needle.
type ListQuery struct {
	Offset int
	Limit  int
	Search string
}

// NewPageRepository builds the generic bun repository for pages.
func NewPageRepository(db *bun.DB) repository.Repository[*Page] {
	return repository.MustNewRepository(db, repository.ModelHandlers[*Page]{
		NewRecord: func() *Page { return &Page{} },
		GetID: func(p *Page) uuid.UUID {
			return p.ID
		},
		SetID: func(p *Page, id uuid.UUID) {
			p.ID = id
		},
		GetIdentifier: func() string {
			return "handle"
		},
		GetIdentifierValue: func(p *Page) string {
			return p.Handle
		},
	})
}
