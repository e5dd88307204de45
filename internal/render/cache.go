package render

import (
	"context"
	"html/template"
	"strings"
	"time"

	gocache "github.com/patrickmn/go-cache"

	"github.com/goliatone/go-pagekit/internal/blocks"
	"github.com/goliatone/go-pagekit/internal/pages"
)

// HTMLCache keeps rendered public pages keyed by handle and breakpoint.
type HTMLCache struct {
	store *gocache.Cache
}

// NewHTMLCache returns a cache whose entries expire after ttl. A zero ttl
// disables caching.
func NewHTMLCache(ttl time.Duration) *HTMLCache {
	if ttl <= 0 {
		return &HTMLCache{}
	}
	return &HTMLCache{store: gocache.New(ttl, 2*ttl)}
}

func cacheKey(handle string, bp blocks.Breakpoint) string {
	if bp == "" {
		bp = "default"
	}
	return handle + "|" + string(bp)
}

// Get returns a cached rendering.
func (c *HTMLCache) Get(handle string, bp blocks.Breakpoint) (template.HTML, bool) {
	if c == nil || c.store == nil {
		return "", false
	}
	value, ok := c.store.Get(cacheKey(handle, bp))
	if !ok {
		return "", false
	}
	html, ok := value.(template.HTML)
	return html, ok
}

// Set stores a rendering with the default expiration.
func (c *HTMLCache) Set(handle string, bp blocks.Breakpoint, html template.HTML) {
	if c == nil || c.store == nil {
		return
	}
	c.store.SetDefault(cacheKey(handle, bp), html)
}

// Invalidate drops every breakpoint variant of handle.
func (c *HTMLCache) Invalidate(handle string) {
	if c == nil || c.store == nil || handle == "" {
		return
	}
	prefix := handle + "|"
	for key := range c.store.Items() {
		if strings.HasPrefix(key, prefix) {
			c.store.Delete(key)
		}
	}
}

// Flush drops every entry.
func (c *HTMLCache) Flush() {
	if c == nil || c.store == nil {
		return
	}
	c.store.Flush()
}

// Observe invalidates the handles touched by a page change. It is meant to be
// registered with pages.WithObserver.
func (c *HTMLCache) Observe(_ context.Context, change pages.Change) {
	if change.Page != nil {
		c.Invalidate(change.Page.Handle)
	}
	c.Invalidate(change.PreviousHandle)
}
