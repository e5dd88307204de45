package pages

import (
	"context"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/goliatone/go-slug"
	"github.com/google/uuid"

	"github.com/goliatone/go-pagekit/blocks"
	internalblocks "github.com/goliatone/go-pagekit/internal/blocks"
	"github.com/goliatone/go-pagekit/internal/logging"
	"github.com/goliatone/go-pagekit/pkg/interfaces"
)

const (
	defaultListLimit = 20
	maxListLimit     = 100
)

// ChangeKind names a page mutation reported to observers.
type ChangeKind string

const (
	ChangeCreated ChangeKind = "created"
	ChangeUpdated ChangeKind = "updated"
	ChangeDeleted ChangeKind = "deleted"
)

// Change describes a committed page mutation. PreviousHandle is set when an
// update moved the page to a new handle.
type Change struct {
	Kind           ChangeKind
	Page           *Page
	PreviousHandle string
}

// Observer is notified after a mutation is stored.
type Observer func(ctx context.Context, change Change)

// ServiceOption configures the page service.
type ServiceOption func(*service)

// WithClock overrides the timestamp source.
func WithClock(clock func() time.Time) ServiceOption {
	return func(s *service) {
		if clock != nil {
			s.now = clock
		}
	}
}

// WithIDGenerator overrides how ids are minted for pages created without one.
func WithIDGenerator(generator func() uuid.UUID) ServiceOption {
	return func(s *service) {
		if generator != nil {
			s.newID = generator
		}
	}
}

// WithRegistry sets the block registry content is validated against.
func WithRegistry(registry *internalblocks.Registry) ServiceOption {
	return func(s *service) {
		if registry != nil {
			s.registry = registry
		}
	}
}

// WithLogger sets the service logger.
func WithLogger(logger interfaces.Logger) ServiceOption {
	return func(s *service) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithObserver registers a callback run after every stored mutation.
func WithObserver(observer Observer) ServiceOption {
	return func(s *service) {
		if observer != nil {
			s.observers = append(s.observers, observer)
		}
	}
}

type service struct {
	pages     PageRepository
	registry  *internalblocks.Registry
	now       func() time.Time
	newID     func() uuid.UUID
	logger    interfaces.Logger
	observers []Observer
}

// NewService constructs the page service over repo.
func NewService(repo PageRepository, opts ...ServiceOption) Service {
	s := &service{
		pages:    repo,
		registry: internalblocks.Default(),
		now:      time.Now,
		newID:    uuid.New,
		logger:   logging.NoOp(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *service) Create(ctx context.Context, req CreatePageRequest) (*Page, error) {
	title := strings.TrimSpace(req.Title)
	if title == "" {
		return nil, ErrTitleRequired
	}
	handle, err := NormalizeHandle(req.Handle)
	if err != nil {
		return nil, err
	}
	if _, err := s.pages.GetByHandle(ctx, handle); err == nil {
		return nil, fmt.Errorf("%w: %s", ErrHandleExists, handle)
	} else if !IsNotFound(err) {
		return nil, err
	}
	parent, err := s.resolveParent(ctx, handle, req.ParentHandle)
	if err != nil {
		return nil, err
	}
	content, err := s.prepareContent(req.Content)
	if err != nil {
		return nil, err
	}

	id := req.ID
	if id == uuid.Nil {
		id = s.newID()
	}
	now := s.now().UTC()
	record := &Page{
		ID:           id,
		Title:        title,
		Handle:       handle,
		ParentHandle: parent,
		Description:  trimmedPointer(req.Description),
		Content:      content,
		SEO:          req.SEO,
		IsPublished:  req.IsPublished,
		RequiresAuth: req.RequiresAuth,
		Author:       strings.TrimSpace(req.Author),
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	created, err := s.pages.Create(ctx, record)
	if err != nil {
		s.log(ctx, record).Error("pages.create.failed", "error", err)
		return nil, err
	}
	s.log(ctx, created).Info("pages.create.success", "blocks", blocks.Count(created.Content))
	s.notify(ctx, Change{Kind: ChangeCreated, Page: created})
	return created, nil
}

func (s *service) Get(ctx context.Context, id uuid.UUID) (*Page, error) {
	if id == uuid.Nil {
		return nil, ErrPageRequired
	}
	return s.pages.GetByID(ctx, id)
}

func (s *service) GetByHandle(ctx context.Context, handle string) (*Page, error) {
	normalized, err := NormalizeHandle(handle)
	if err != nil {
		return nil, &PageNotFoundError{Key: strings.TrimSpace(handle)}
	}
	return s.pages.GetByHandle(ctx, normalized)
}

func (s *service) List(ctx context.Context, opts ListPagesOptions) (*PageList, error) {
	page := opts.Page
	if page < 1 {
		page = 1
	}
	limit := opts.Limit
	switch {
	case limit <= 0:
		limit = defaultListLimit
	case limit > maxListLimit:
		limit = maxListLimit
	}
	if maxPage := math.MaxInt/limit + 1; page > maxPage {
		page = maxPage
	}
	items, total, err := s.pages.List(ctx, ListQuery{
		Offset: (page - 1) * limit,
		Limit:  limit,
		Search: strings.ToLower(strings.TrimSpace(opts.Search)),
	})
	if err != nil {
		return nil, err
	}
	if items == nil {
		items = []*Page{}
	}
	return &PageList{Items: items, Total: total, Page: page, Limit: limit}, nil
}

func (s *service) Update(ctx context.Context, req UpdatePageRequest) (*Page, error) {
	if req.ID == uuid.Nil {
		return nil, ErrPageRequired
	}
	existing, err := s.pages.GetByID(ctx, req.ID)
	if err != nil {
		return nil, err
	}
	record := clonePage(existing)
	previousHandle := existing.Handle

	if req.Title != nil {
		title := strings.TrimSpace(*req.Title)
		if title == "" {
			return nil, ErrTitleRequired
		}
		record.Title = title
	}
	if req.Handle != nil {
		handle, err := NormalizeHandle(*req.Handle)
		if err != nil {
			return nil, err
		}
		if handle != existing.Handle {
			if _, err := s.pages.GetByHandle(ctx, handle); err == nil {
				return nil, fmt.Errorf("%w: %s", ErrHandleExists, handle)
			} else if !IsNotFound(err) {
				return nil, err
			}
		}
		record.Handle = handle
	}
	if req.ParentHandle != nil {
		parent, err := s.resolveParent(ctx, record.Handle, req.ParentHandle)
		if err != nil {
			return nil, err
		}
		record.ParentHandle = parent
	}
	if req.Description != nil {
		record.Description = trimmedPointer(req.Description)
	}
	if req.Content != nil {
		content, err := s.prepareContent(*req.Content)
		if err != nil {
			return nil, err
		}
		record.Content = content
	}
	if req.SEO != nil {
		seo := *req.SEO
		record.SEO = &seo
	}
	if req.IsPublished != nil {
		record.IsPublished = *req.IsPublished
	}
	if req.RequiresAuth != nil {
		record.RequiresAuth = *req.RequiresAuth
	}
	if req.Author != nil {
		record.Author = strings.TrimSpace(*req.Author)
	}
	record.UpdatedAt = s.now().UTC()

	updated, err := s.pages.Update(ctx, record)
	if err != nil {
		s.log(ctx, record).Error("pages.update.failed", "error", err)
		return nil, err
	}
	s.log(ctx, updated).Info("pages.update.success", "content_replaced", req.Content != nil)

	change := Change{Kind: ChangeUpdated, Page: updated}
	if previousHandle != updated.Handle {
		change.PreviousHandle = previousHandle
	}
	s.notify(ctx, change)
	return updated, nil
}

func (s *service) Delete(ctx context.Context, req DeletePageRequest) error {
	if req.ID == uuid.Nil {
		return ErrPageRequired
	}
	if !req.Confirmed {
		return ErrDeleteConfirmationRequired
	}
	existing, err := s.pages.GetByID(ctx, req.ID)
	if err != nil {
		return err
	}
	if err := s.pages.Delete(ctx, req.ID); err != nil {
		s.log(ctx, existing).Error("pages.delete.failed", "error", err)
		return err
	}
	s.log(ctx, existing).Info("pages.delete.success")
	s.notify(ctx, Change{Kind: ChangeDeleted, Page: existing})
	return nil
}

// prepareContent normalises layout grids and validates the tree against the
// registry.
func (s *service) prepareContent(content []blocks.Block) ([]blocks.Block, error) {
	if len(content) == 0 {
		return []blocks.Block{}, nil
	}
	normalized := internalblocks.Normalize(content)
	if err := s.registry.Validate(normalized); err != nil {
		return nil, err
	}
	return normalized, nil
}

func (s *service) resolveParent(ctx context.Context, handle string, parent *string) (*string, error) {
	if parent == nil || strings.TrimSpace(*parent) == "" {
		return nil, nil
	}
	normalized, err := NormalizeHandle(*parent)
	if err != nil {
		return nil, ErrParentNotFound
	}
	if normalized == handle {
		return nil, ErrParentSelf
	}
	if _, err := s.pages.GetByHandle(ctx, normalized); err != nil {
		if IsNotFound(err) {
			return nil, fmt.Errorf("%w: %s", ErrParentNotFound, normalized)
		}
		return nil, err
	}
	return &normalized, nil
}

func (s *service) notify(ctx context.Context, change Change) {
	for _, observer := range s.observers {
		observer(ctx, change)
	}
}

func (s *service) log(ctx context.Context, page *Page) interfaces.Logger {
	logger := s.logger.WithContext(ctx)
	if page == nil {
		return logger
	}
	return logging.WithPageContext(logger, page.ID.String(), page.Handle)
}

// NormalizeHandle slugifies a handle. Stored handles are lowercase and
// hyphenated, so lookups and cache keys go through it too.
func NormalizeHandle(handle string) (string, error) {
	trimmed := strings.TrimSpace(handle)
	if trimmed == "" {
		return "", ErrHandleRequired
	}
	normalized, err := slug.Normalize(trimmed)
	if err != nil || normalized == "" {
		return "", fmt.Errorf("%w: %q", ErrHandleInvalid, trimmed)
	}
	return normalized, nil
}

func trimmedPointer(value *string) *string {
	if value == nil {
		return nil
	}
	trimmed := strings.TrimSpace(*value)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}
