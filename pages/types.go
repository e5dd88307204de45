package pages

import (
	"time"

	"github.com/goliatone/go-pagekit/blocks"
	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// Page is a CMS document owning an ordered tree of content blocks.
type Page struct {
	bun.BaseModel `bun:"table:pages,alias:p"`

	ID           uuid.UUID      `bun:",pk,type:uuid" json:"id"`
	Title        string         `bun:"title,notnull" json:"title"`
	Handle       string         `bun:"handle,notnull,unique" json:"handle"`
	ParentHandle *string        `bun:"parent_handle" json:"parentHandle,omitempty"`
	Description  *string        `bun:"description" json:"description,omitempty"`
	Content      []blocks.Block `bun:"content,type:jsonb" json:"content"`
	SEO          *SEO           `bun:"seo,type:jsonb" json:"seo,omitempty"`
	IsPublished  bool           `bun:"is_published,notnull,default:false" json:"isPublished"`
	RequiresAuth bool           `bun:"requires_auth,notnull,default:false" json:"requiresAuth"`
	Author       string         `bun:"author" json:"author"`
	CreatedAt    time.Time      `bun:"created_at,nullzero,default:current_timestamp" json:"createdAt"`
	UpdatedAt    time.Time      `bun:"updated_at,nullzero,default:current_timestamp" json:"updatedAt"`
}

// SEO carries optional metadata stored alongside the page. It is persisted
// as given and never generated.
type SEO struct {
	Title       string `json:"title,omitempty"`
	Description string `json:"description,omitempty"`
	Image       string `json:"image,omitempty"`
}
