package http

import (
	"html/template"
	"net/http"
	"strings"

	pkblocks "github.com/goliatone/go-pagekit/blocks"
	"github.com/goliatone/go-pagekit/internal/blocks"
	"github.com/goliatone/go-pagekit/internal/logging"
	"github.com/goliatone/go-pagekit/internal/pages"
	"github.com/goliatone/go-pagekit/internal/profiles"
	"github.com/goliatone/go-pagekit/internal/render"
)

var notFoundDocument = template.Must(template.New("not_found").Parse(
	`<!DOCTYPE html><html><head><meta charset="utf-8"><title>Not found</title></head>` +
		`<body><main class="pk-page pk-page--missing"><p>Page not found.</p></main></body></html>`,
))

func (api *API) registerPublicRoutes(mux *http.ServeMux) {
	mux.HandleFunc("GET /p/{handle}", api.handlePublicPage)
}

// handlePublicPage renders a page as HTML. ?bp selects the render breakpoint
// and ?profile the profile slug for profile blocks. Pages that require
// authentication and profile-specific renders are never cached.
func (api *API) handlePublicPage(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	handle := r.PathValue("handle")
	query := r.URL.Query()

	var bp blocks.Breakpoint
	if raw := strings.TrimSpace(query.Get("bp")); raw != "" {
		parsed, ok := pkblocks.ParseBreakpoint(raw)
		if !ok {
			http.Error(w, "unknown breakpoint", http.StatusBadRequest)
			return
		}
		bp = parsed
	}

	slug := strings.TrimSpace(query.Get("profile"))
	cacheable := api.cache != nil && slug == ""
	if cacheable {
		if key, err := pages.NormalizeHandle(handle); err == nil {
			if html, ok := api.cache.Get(key, bp); ok {
				writeHTML(w, http.StatusOK, html)
				return
			}
		}
	}

	page, err := api.pages.GetByHandle(ctx, handle)
	if err != nil {
		if !pages.IsNotFound(err) {
			api.logger.WithContext(ctx).Error("http.public.load_failed", "handle", handle, "error", err)
		}
		writeNotFound(w)
		return
	}
	if err := api.authorize(ctx, page); err != nil {
		http.Error(w, "authentication required", http.StatusUnauthorized)
		return
	}

	ctx = logging.ContextWithPage(ctx, page.ID.String(), page.Handle)
	if slug != "" {
		ctx = profiles.ContextWithSlug(ctx, slug)
	}
	html, err := api.renderer.RenderDocument(ctx, page, render.Options{Breakpoint: bp})
	if err != nil {
		api.logger.WithContext(ctx).Error("http.public.render_failed", "handle", handle, "error", err)
		http.Error(w, "page could not be rendered", http.StatusInternalServerError)
		return
	}
	if cacheable && !page.RequiresAuth {
		api.cache.Set(page.Handle, bp, html)
	}
	writeHTML(w, http.StatusOK, html)
}

func writeHTML(w http.ResponseWriter, status int, html template.HTML) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, _ = w.Write([]byte(html))
}

func writeNotFound(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusNotFound)
	_ = notFoundDocument.Execute(w, nil)
}
