package http

import (
	"errors"
	"io"
	"net/http"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/google/uuid"

	"github.com/goliatone/go-pagekit/internal/blocks"
	"github.com/goliatone/go-pagekit/internal/editor"
)

type sessionCreatePayload struct {
	PageID string `json:"pageId"`
}

func (p sessionCreatePayload) Validate() error {
	return validation.ValidateStruct(&p,
		validation.Field(&p.PageID, validation.Required, validation.By(isUUID)),
	)
}

func isUUID(value any) error {
	raw, _ := value.(string)
	if _, err := uuid.Parse(raw); err != nil {
		return validation.NewError("validation_is_uuid", "must be a valid UUID")
	}
	return nil
}

type opsPayload struct {
	Ops []editor.Op `json:"ops"`
}

type opsResponse struct {
	Applied int                 `json:"applied"`
	State   editor.SessionState `json:"state"`
	Error   *errorResponse      `json:"error,omitempty"`
}

type breakpointPayload struct {
	Breakpoint blocks.Breakpoint `json:"breakpoint"`
}

type rowPayload struct {
	Toggle string `json:"toggle"`
}

func (p rowPayload) Validate() error {
	return validation.ValidateStruct(&p,
		validation.Field(&p.Toggle, validation.Required, validation.In("collapsed", "styles")),
	)
}

func (api *API) registerEditorRoutes(mux *http.ServeMux, base string) {
	root := joinPath(base, "editor/sessions")
	mux.HandleFunc("POST "+root, api.handleSessionOpen)
	mux.HandleFunc("GET "+root+"/{sid}", api.handleSessionGet)
	mux.HandleFunc("DELETE "+root+"/{sid}", api.handleSessionClose)
	mux.HandleFunc("POST "+root+"/{sid}/ops", api.handleSessionOps)
	mux.HandleFunc("POST "+root+"/{sid}/save", api.handleSessionSave)
	mux.HandleFunc("PUT "+root+"/{sid}/breakpoint", api.handleSessionBreakpoint)
	mux.HandleFunc("POST "+root+"/{sid}/rows/{blockId}", api.handleSessionRow)
}

func (api *API) handleSessionOpen(w http.ResponseWriter, r *http.Request) {
	var payload sessionCreatePayload
	if err := decodeJSON(r, &payload); err != nil && !errors.Is(err, io.EOF) {
		badRequest(w, err.Error())
		return
	}
	if err := payload.Validate(); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{
			Error:   "bad_request",
			Message: err.Error(),
			Issues:  fieldIssues(err),
		})
		return
	}
	session, err := api.sessions.Open(r.Context(), uuid.MustParse(payload.PageID))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, session.State())
}

func (api *API) handleSessionGet(w http.ResponseWriter, r *http.Request) {
	session, err := api.sessions.Get(r.PathValue("sid"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, session.State())
}

func (api *API) handleSessionClose(w http.ResponseWriter, r *http.Request) {
	api.sessions.Close(r.PathValue("sid"))
	w.WriteHeader(http.StatusNoContent)
}

// handleSessionOps applies a batch in order. When an op fails the ops before
// it stay applied and the response reports how many went through.
func (api *API) handleSessionOps(w http.ResponseWriter, r *http.Request) {
	session, err := api.sessions.Get(r.PathValue("sid"))
	if err != nil {
		writeError(w, err)
		return
	}
	var payload opsPayload
	if err := decodeJSON(r, &payload); err != nil && !errors.Is(err, io.EOF) {
		badRequest(w, err.Error())
		return
	}
	applied, err := session.Apply(payload.Ops...)
	resp := opsResponse{Applied: applied, State: session.State()}
	if err != nil {
		status, body := mapError(err)
		resp.Error = &body
		writeJSON(w, status, resp)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (api *API) handleSessionSave(w http.ResponseWriter, r *http.Request) {
	page, err := api.sessions.Save(r.Context(), r.PathValue("sid"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, page)
}

func (api *API) handleSessionBreakpoint(w http.ResponseWriter, r *http.Request) {
	session, err := api.sessions.Get(r.PathValue("sid"))
	if err != nil {
		writeError(w, err)
		return
	}
	var payload breakpointPayload
	if err := decodeJSON(r, &payload); err != nil && !errors.Is(err, io.EOF) {
		badRequest(w, err.Error())
		return
	}
	if err := session.SetBreakpoint(payload.Breakpoint); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, session.State())
}

func (api *API) handleSessionRow(w http.ResponseWriter, r *http.Request) {
	session, err := api.sessions.Get(r.PathValue("sid"))
	if err != nil {
		writeError(w, err)
		return
	}
	var payload rowPayload
	if err := decodeJSON(r, &payload); err != nil && !errors.Is(err, io.EOF) {
		badRequest(w, err.Error())
		return
	}
	if err := payload.Validate(); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{
			Error:   "bad_request",
			Message: err.Error(),
			Issues:  fieldIssues(err),
		})
		return
	}
	blockID := r.PathValue("blockId")
	var row editor.RowState
	switch payload.Toggle {
	case "collapsed":
		row = session.ToggleCollapsed(blockID)
	default:
		row = session.ToggleStyles(blockID)
	}
	writeJSON(w, http.StatusOK, row)
}
