package pages

import (
	"context"
	"fmt"

	goerrors "github.com/goliatone/go-errors"
	repository "github.com/goliatone/go-repository-bun"
	"github.com/goliatone/go-repository-cache/cache"
	repositorycache "github.com/goliatone/go-repository-cache/repositorycache"
	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// BunPageRepository stores pages through go-repository-bun.
type BunPageRepository struct {
	repo repository.Repository[*Page]
	// base serves List, which is never cached.
	base repository.Repository[*Page]
}

func NewBunPageRepository(db *bun.DB) *BunPageRepository {
	return NewBunPageRepositoryWithCache(db, nil, nil)
}

// NewBunPageRepositoryWithCache constructs a PageRepository backed by bun with optional caching.
func NewBunPageRepositoryWithCache(db *bun.DB, cacheService cache.CacheService, keySerializer cache.KeySerializer) *BunPageRepository {
	base := NewPageRepository(db)
	return &BunPageRepository{
		repo: wrapWithCache(base, cacheService, keySerializer),
		base: base,
	}
}

func (r *BunPageRepository) Create(ctx context.Context, record *Page) (*Page, error) {
	created, err := r.repo.Create(ctx, record)
	if err != nil {
		return nil, mapRepositoryError(err, "page", record.Handle)
	}
	return created, nil
}

func (r *BunPageRepository) GetByID(ctx context.Context, id uuid.UUID) (*Page, error) {
	result, err := r.repo.GetByID(ctx, id.String())
	if err != nil {
		return nil, mapRepositoryError(err, "page", id.String())
	}
	return result, nil
}

func (r *BunPageRepository) GetByHandle(ctx context.Context, handle string) (*Page, error) {
	result, err := r.repo.GetByIdentifier(ctx, handle)
	if err != nil {
		return nil, mapRepositoryError(err, "page", handle)
	}
	return result, nil
}

func (r *BunPageRepository) List(ctx context.Context, query ListQuery) ([]*Page, int, error) {
	limit := query.Limit
	if limit <= 0 {
		limit = maxListLimit
	}
	records, total, err := r.base.List(ctx,
		repository.SelectRawProcessor(func(q *bun.SelectQuery) *bun.SelectQuery {
			if query.Search == "" {
				return q
			}
			needle := "%" + query.Search + "%"
			return q.WhereGroup(" AND ", func(q *bun.SelectQuery) *bun.SelectQuery {
				return q.Where("LOWER(?TableAlias.title) LIKE ?", needle).
					WhereOr("LOWER(?TableAlias.handle) LIKE ?", needle)
			})
		}),
		repository.SelectRawProcessor(func(q *bun.SelectQuery) *bun.SelectQuery {
			return q.OrderExpr("?TableAlias.title ASC, ?TableAlias.handle ASC")
		}),
		repository.SelectPaginate(limit, query.Offset),
	)
	if err != nil {
		return nil, 0, mapRepositoryError(err, "page", "")
	}
	return records, total, nil
}

func (r *BunPageRepository) Update(ctx context.Context, record *Page) (*Page, error) {
	updated, err := r.repo.Update(ctx, record,
		repository.UpdateByID(record.ID.String()),
		repository.UpdateColumns(
			"title",
			"handle",
			"parent_handle",
			"description",
			"content",
			"seo",
			"is_published",
			"requires_auth",
			"author",
			"updated_at",
		),
	)
	if err != nil {
		return nil, mapRepositoryError(err, "page", record.ID.String())
	}
	return updated, nil
}

func (r *BunPageRepository) Delete(ctx context.Context, id uuid.UUID) error {
	if err := r.repo.Delete(ctx, &Page{ID: id}); err != nil {
		return mapRepositoryError(err, "page", id.String())
	}
	return nil
}

func mapRepositoryError(err error, resource, key string) error {
	if err == nil {
		return nil
	}

	if goerrors.IsCategory(err, repository.CategoryDatabaseNotFound) {
		return &PageNotFoundError{
			Key: key,
		}
	}

	return fmt.Errorf("%s repository error: %w", resource, err)
}

func wrapWithCache[T any](base repository.Repository[T], cacheService cache.CacheService, keySerializer cache.KeySerializer) repository.Repository[T] {
	if cacheService == nil || keySerializer == nil {
		return base
	}
	return repositorycache.New(base, cacheService, keySerializer)
}
