package http

import (
	"net/http"

	"github.com/goliatone/go-pagekit/internal/blocks"
)

func (api *API) registerCatalogRoutes(mux *http.ServeMux, base string) {
	mux.HandleFunc("GET "+joinPath(base, "blocks/catalog"), api.handleCatalog)
	mux.HandleFunc("GET "+joinPath(base, "blocks/{type}/editor"), api.handleEditorForm)
}

func (api *API) handleCatalog(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, api.registry.GroupCatalog(r.URL.Query().Get("q")))
}

// handleEditorForm returns the form description for a block type. Unknown
// types get the fallback form so clients can still show the block.
func (api *API) handleEditorForm(w http.ResponseWriter, r *http.Request) {
	typ := blocks.Type(r.PathValue("type"))
	form, ok := api.registry.LookupEditor(typ)
	if !ok {
		form = blocks.FallbackEditor(typ)
	}
	writeJSON(w, http.StatusOK, form)
}
