package pages

import (
	"context"
	"sort"
	"strings"
	"sync"

	"github.com/goliatone/go-pagekit/blocks"
	"github.com/google/uuid"
)

// MemoryPageRepository is an in-memory page store for tests and the memory
// storage provider.
type MemoryPageRepository struct {
	mu          sync.RWMutex
	pages       map[uuid.UUID]*Page
	handleIndex map[string]uuid.UUID
}

// NewMemoryPageRepository constructs the repository.
func NewMemoryPageRepository() *MemoryPageRepository {
	return &MemoryPageRepository{
		pages:       make(map[uuid.UUID]*Page),
		handleIndex: make(map[string]uuid.UUID),
	}
}

// Create inserts the supplied page.
func (m *MemoryPageRepository) Create(_ context.Context, record *Page) (*Page, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, exists := m.handleIndex[record.Handle]; exists {
		return nil, ErrHandleExists
	}
	copied := clonePage(record)
	m.pages[copied.ID] = copied
	m.handleIndex[copied.Handle] = copied.ID
	return clonePage(copied), nil
}

// GetByID retrieves a page by identifier.
func (m *MemoryPageRepository) GetByID(_ context.Context, id uuid.UUID) (*Page, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	page, ok := m.pages[id]
	if !ok {
		return nil, &PageNotFoundError{Key: id.String()}
	}
	return clonePage(page), nil
}

// GetByHandle retrieves a page by handle.
func (m *MemoryPageRepository) GetByHandle(_ context.Context, handle string) (*Page, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	id, ok := m.handleIndex[handle]
	if !ok {
		return nil, &PageNotFoundError{Key: handle}
	}
	return clonePage(m.pages[id]), nil
}

// List filters, sorts and windows the stored pages.
func (m *MemoryPageRepository) List(_ context.Context, query ListQuery) ([]*Page, int, error) {
	m.mu.RLock()
	matches := make([]*Page, 0, len(m.pages))
	for _, record := range m.pages {
		if query.Search != "" &&
			!strings.Contains(strings.ToLower(record.Title), query.Search) &&
			!strings.Contains(strings.ToLower(record.Handle), query.Search) {
			continue
		}
		matches = append(matches, clonePage(record))
	}
	m.mu.RUnlock()

	sort.Slice(matches, func(i, j int) bool {
		if matches[i].Title != matches[j].Title {
			return matches[i].Title < matches[j].Title
		}
		return matches[i].Handle < matches[j].Handle
	})

	total := len(matches)
	if query.Offset < 0 || query.Offset >= total {
		return []*Page{}, total, nil
	}
	end := total
	if query.Limit > 0 && query.Limit < total-query.Offset {
		end = query.Offset + query.Limit
	}
	return matches[query.Offset:end], total, nil
}

// Update replaces the stored page.
func (m *MemoryPageRepository) Update(_ context.Context, record *Page) (*Page, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	current, ok := m.pages[record.ID]
	if !ok {
		return nil, &PageNotFoundError{Key: record.ID.String()}
	}
	if owner, exists := m.handleIndex[record.Handle]; exists && owner != record.ID {
		return nil, ErrHandleExists
	}
	if current.Handle != record.Handle {
		delete(m.handleIndex, current.Handle)
		m.handleIndex[record.Handle] = record.ID
	}
	updated := clonePage(record)
	updated.CreatedAt = current.CreatedAt
	m.pages[record.ID] = updated
	return clonePage(updated), nil
}

// Delete removes the page.
func (m *MemoryPageRepository) Delete(_ context.Context, id uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	record, ok := m.pages[id]
	if !ok {
		return &PageNotFoundError{Key: id.String()}
	}
	delete(m.pages, id)
	delete(m.handleIndex, record.Handle)
	return nil
}

func clonePage(src *Page) *Page {
	if src == nil {
		return nil
	}
	copied := *src
	copied.Content = blocks.CloneAll(src.Content)
	copied.ParentHandle = cloneString(src.ParentHandle)
	copied.Description = cloneString(src.Description)
	if src.SEO != nil {
		seo := *src.SEO
		copied.SEO = &seo
	}
	return &copied
}

func cloneString(src *string) *string {
	if src == nil {
		return nil
	}
	value := *src
	return &value
}
