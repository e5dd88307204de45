package http

import (
	"context"
	"errors"
	"io"
	"net/http"

	pagescmd "github.com/goliatone/go-pagekit/internal/commands/pages"
	"github.com/goliatone/go-pagekit/internal/pages"
)

type publishPayload struct {
	Published *bool `json:"published"`
}

func (api *API) registerPageRoutes(mux *http.ServeMux, base string) {
	root := joinPath(base, "pages")
	mux.HandleFunc("GET "+root, api.handlePageList)
	mux.HandleFunc("POST "+root, api.handlePageCreate)
	mux.HandleFunc("GET "+root+"/by-handle/{handle}", api.handlePageByHandle)
	mux.HandleFunc("GET "+root+"/{id}", api.handlePageGet)
	mux.HandleFunc("PATCH "+root+"/{id}", api.handlePageUpdate)
	mux.HandleFunc("DELETE "+root+"/{id}", api.handlePageDelete)
	mux.HandleFunc("POST "+root+"/{id}/publish", api.handlePagePublish)
}

func (api *API) handlePageList(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	list, err := api.pages.List(r.Context(), pages.ListPagesOptions{
		Page:   parseIntQuery(query.Get("page"), 1),
		Limit:  parseIntQuery(query.Get("limit"), 0),
		Search: query.Get("search"),
	})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, list)
}

// handlePageByHandle answers null for pages that cannot be loaded. Only the
// authentication failure is surfaced.
func (api *API) handlePageByHandle(w http.ResponseWriter, r *http.Request) {
	page, err := api.pages.GetByHandle(r.Context(), r.PathValue("handle"))
	if err != nil {
		if !pages.IsNotFound(err) {
			api.logger.WithContext(r.Context()).Warn("http.pages.by_handle.failed", "handle", r.PathValue("handle"), "error", err)
		}
		writeJSON(w, http.StatusOK, nil)
		return
	}
	if err := api.authorize(r.Context(), page); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, page)
}

func (api *API) handlePageGet(w http.ResponseWriter, r *http.Request) {
	id, err := parseUUID(r.PathValue("id"))
	if err != nil {
		badRequest(w, "invalid id")
		return
	}
	page, err := api.pages.Get(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, page)
}

func (api *API) handlePageCreate(w http.ResponseWriter, r *http.Request) {
	var payload pages.CreatePageRequest
	if err := decodeJSON(r, &payload); err != nil && !errors.Is(err, io.EOF) {
		badRequest(w, err.Error())
		return
	}
	created, err := api.pages.Create(r.Context(), payload)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, created)
}

func (api *API) handlePageUpdate(w http.ResponseWriter, r *http.Request) {
	id, err := parseUUID(r.PathValue("id"))
	if err != nil {
		badRequest(w, "invalid id")
		return
	}
	var payload pages.UpdatePageRequest
	if err := decodeJSON(r, &payload); err != nil && !errors.Is(err, io.EOF) {
		badRequest(w, err.Error())
		return
	}
	payload.ID = id
	updated, err := api.pages.Update(r.Context(), payload)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, updated)
}

func (api *API) handlePageDelete(w http.ResponseWriter, r *http.Request) {
	id, err := parseUUID(r.PathValue("id"))
	if err != nil {
		badRequest(w, "invalid id")
		return
	}
	req := pages.DeletePageRequest{
		ID:        id,
		Confirmed: parseBoolQuery(r.URL.Query().Get("confirm"), false),
	}
	if api.commands != nil {
		err = api.commands.Delete.Execute(r.Context(), pagescmd.DeletePageCommand{PageID: req.ID, Confirmed: req.Confirmed})
	} else {
		err = api.pages.Delete(r.Context(), req)
	}
	if err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (api *API) handlePagePublish(w http.ResponseWriter, r *http.Request) {
	id, err := parseUUID(r.PathValue("id"))
	if err != nil {
		badRequest(w, "invalid id")
		return
	}
	var payload publishPayload
	if err := decodeJSON(r, &payload); err != nil && !errors.Is(err, io.EOF) {
		badRequest(w, err.Error())
		return
	}
	published := true
	if payload.Published != nil {
		published = *payload.Published
	}
	if api.commands != nil {
		err = api.commands.Publish.Execute(r.Context(), pagescmd.PublishPageCommand{PageID: id, Published: published})
	} else {
		_, err = api.pages.Update(r.Context(), pages.UpdatePageRequest{ID: id, IsPublished: &published})
	}
	if err != nil {
		writeError(w, err)
		return
	}
	page, err := api.pages.Get(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, page)
}

// authorize gates pages flagged requiresAuth. Without a provider every such
// request is treated as unauthenticated.
func (api *API) authorize(ctx context.Context, page *pages.Page) error {
	if page == nil || !page.RequiresAuth {
		return nil
	}
	if api.auth == nil {
		return pages.ErrAuthRequired
	}
	if _, err := api.auth.CurrentUserID(ctx); err != nil {
		return errors.Join(pages.ErrAuthRequired, err)
	}
	return nil
}
