package profiles

import (
	"fmt"
	"strings"

	urlkit "github.com/goliatone/go-urlkit"
)

const (
	publicGroup  = "public"
	profileRoute = "profile"
	pageRoute    = "page"
)

// URLBuilder derives public URLs from the site origin.
type URLBuilder struct {
	origin  string
	manager *urlkit.RouteManager
}

// NewURLBuilder registers the public routes under origin.
func NewURLBuilder(origin string) *URLBuilder {
	origin = strings.TrimRight(strings.TrimSpace(origin), "/")
	manager := urlkit.NewRouteManager(&urlkit.Config{
		Groups: []urlkit.GroupConfig{
			{
				Name:    publicGroup,
				BaseURL: origin,
				Paths: map[string]string{
					profileRoute: "/:slug",
					pageRoute:    "/p/:handle",
				},
			},
		},
	})
	return &URLBuilder{origin: origin, manager: manager}
}

// Origin returns the configured origin without trailing slash.
func (b *URLBuilder) Origin() string {
	if b == nil {
		return ""
	}
	return b.origin
}

// ProfileURL returns origin + "/" + slug.
func (b *URLBuilder) ProfileURL(slug string) (string, error) {
	slug = normalizeSlug(slug)
	if slug == "" {
		return "", ErrProfileUnavailable
	}
	return b.build(profileRoute, "slug", slug)
}

// PageURL returns the public URL of a page handle.
func (b *URLBuilder) PageURL(handle string) (string, error) {
	handle = strings.Trim(strings.TrimSpace(handle), "/")
	if handle == "" {
		return "", fmt.Errorf("profiles: page handle required")
	}
	return b.build(pageRoute, "handle", handle)
}

func (b *URLBuilder) build(route, param, value string) (url string, err error) {
	if b == nil || b.manager == nil {
		return "", fmt.Errorf("profiles: url builder not configured")
	}
	defer func() {
		if rec := recover(); rec != nil {
			err = fmt.Errorf("profiles: urlkit route %q: %v", route, rec)
		}
	}()
	return b.manager.Group(publicGroup).Builder(route).WithParam(param, value).Build()
}
