package profiles

import (
	"context"
	"strings"
	"sync"
)

type contextKey struct{}

// ContextWithSlug scopes a request to the profile identified by slug.
func ContextWithSlug(ctx context.Context, slug string) context.Context {
	if ctx == nil {
		ctx = context.Background()
	}
	return context.WithValue(ctx, contextKey{}, normalizeSlug(slug))
}

// SlugFromContext returns the slug bound with ContextWithSlug.
func SlugFromContext(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	slug, _ := ctx.Value(contextKey{}).(string)
	return slug
}

// MemoryStore keeps profiles keyed by slug. It satisfies Provider by reading
// the slug bound to the context, falling back to the configured default.
type MemoryStore struct {
	mu          sync.RWMutex
	bySlug      map[string]*Profile
	defaultSlug string
}

// NewMemoryStore constructs an empty store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{bySlug: make(map[string]*Profile)}
}

// Put inserts or replaces a profile.
func (s *MemoryStore) Put(profile *Profile) {
	if profile == nil {
		return
	}
	key := normalizeSlug(profile.Slug)
	if key == "" {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	stored := profile.Clone()
	stored.Slug = key
	s.bySlug[key] = stored
}

// SetDefault selects the profile returned when the context carries no slug.
func (s *MemoryStore) SetDefault(slug string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.defaultSlug = normalizeSlug(slug)
}

// Get returns the profile stored under slug.
func (s *MemoryStore) Get(slug string) (*Profile, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	profile, ok := s.bySlug[normalizeSlug(slug)]
	if !ok {
		return nil, false
	}
	return profile.Clone(), true
}

// Profile satisfies Provider.
func (s *MemoryStore) Profile(ctx context.Context) (*Profile, error) {
	slug := SlugFromContext(ctx)
	if slug == "" {
		s.mu.RLock()
		slug = s.defaultSlug
		s.mu.RUnlock()
	}
	if slug == "" {
		return nil, ErrProfileUnavailable
	}
	profile, ok := s.Get(slug)
	if !ok {
		return nil, ErrProfileUnavailable
	}
	return profile, nil
}

func normalizeSlug(slug string) string {
	return strings.ToLower(strings.Trim(strings.TrimSpace(slug), "/"))
}
