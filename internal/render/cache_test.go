package render_test

import (
	"context"
	"html/template"
	"testing"
	"time"

	"github.com/goliatone/go-pagekit/internal/blocks"
	"github.com/goliatone/go-pagekit/internal/pages"
	"github.com/goliatone/go-pagekit/internal/render"
)

func TestHTMLCacheInvalidatesEveryBreakpoint(t *testing.T) {
	cache := render.NewHTMLCache(time.Minute)
	cache.Set("home", "", template.HTML("default"))
	cache.Set("home", blocks.BreakpointMobile, template.HTML("mobile"))
	cache.Set("homepage", "", template.HTML("other"))

	if html, ok := cache.Get("home", blocks.BreakpointMobile); !ok || html != "mobile" {
		t.Fatalf("expected cached mobile render, got %q %v", html, ok)
	}

	cache.Invalidate("home")
	if _, ok := cache.Get("home", ""); ok {
		t.Fatalf("expected default variant to be dropped")
	}
	if _, ok := cache.Get("home", blocks.BreakpointMobile); ok {
		t.Fatalf("expected mobile variant to be dropped")
	}
	if _, ok := cache.Get("homepage", ""); !ok {
		t.Fatalf("invalidation should not touch other handles")
	}

	cache.Flush()
	if _, ok := cache.Get("homepage", ""); ok {
		t.Fatalf("expected flush to drop every handle")
	}
}

func TestHTMLCacheObserveDropsPreviousHandle(t *testing.T) {
	cache := render.NewHTMLCache(time.Minute)
	cache.Set("old", "", template.HTML("old"))
	cache.Set("new", "", template.HTML("new"))

	cache.Observe(context.Background(), pages.Change{
		Kind:           pages.ChangeUpdated,
		Page:           &pages.Page{Handle: "new"},
		PreviousHandle: "old",
	})
	if _, ok := cache.Get("old", ""); ok {
		t.Fatalf("expected previous handle to be invalidated")
	}
	if _, ok := cache.Get("new", ""); ok {
		t.Fatalf("expected current handle to be invalidated")
	}
}

func TestHTMLCacheDisabled(t *testing.T) {
	cache := render.NewHTMLCache(0)
	cache.Set("home", "", template.HTML("x"))
	if _, ok := cache.Get("home", ""); ok {
		t.Fatalf("expected disabled cache to miss")
	}
}
