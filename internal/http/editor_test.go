package http

import (
	"context"
	"net/http"
	"testing"

	"github.com/goliatone/go-pagekit/internal/blocks"
	"github.com/goliatone/go-pagekit/internal/editor"
	"github.com/goliatone/go-pagekit/internal/pages"
)

func TestAPI_EditorSessionFlow(t *testing.T) {
	mux, services := setupAPI(t)
	ctx := context.Background()
	page, err := services.pages.Create(ctx, pages.CreatePageRequest{Title: "Home", Handle: "home"})
	if err != nil {
		t.Fatalf("create page: %v", err)
	}

	openResp := doJSONRequest(t, mux, http.MethodPost, "/api/cms/editor/sessions", map[string]any{"pageId": page.ID.String()}, http.StatusCreated)
	var state editor.SessionState
	decodeJSONBody(t, openResp, &state)
	if state.ID == "" || state.PageID != page.ID || len(state.Content) != 0 {
		t.Fatalf("unexpected session state %+v", state)
	}
	root := "/api/cms/editor/sessions/" + state.ID

	doJSONRequest(t, mux, http.MethodPut, root+"/breakpoint", map[string]any{"breakpoint": "tablet"}, http.StatusOK)

	opsResp := doJSONRequest(t, mux, http.MethodPost, root+"/ops", map[string]any{
		"ops": []map[string]any{
			{"op": "add", "blockType": "text-block"},
			{"op": "style", "index": 0, "property": "padding", "value": "8px"},
		},
	}, http.StatusOK)
	var result opsResponse
	decodeJSONBody(t, opsResp, &result)
	if result.Applied != 2 || !result.State.Dirty || len(result.State.Content) != 1 {
		t.Fatalf("unexpected ops result %+v", result)
	}
	padding := result.State.Content[0].Styles.Padding
	if value, ok := padding.Slot(blocks.BreakpointTablet); !ok || value != "8px" {
		t.Fatalf("expected tablet padding, got %+v", padding)
	}

	rowResp := doJSONRequest(t, mux, http.MethodPost, root+"/rows/"+result.State.Content[0].ID, map[string]any{"toggle": "collapsed"}, http.StatusOK)
	var row editor.RowState
	decodeJSONBody(t, rowResp, &row)
	if !row.Collapsed || row.StylesShown {
		t.Fatalf("expected collapsed row, got %+v", row)
	}

	stored, _ := services.pages.Get(ctx, page.ID)
	if len(stored.Content) != 0 {
		t.Fatalf("ops must not persist before save")
	}

	doJSONRequest(t, mux, http.MethodPost, root+"/save", nil, http.StatusOK)
	stored, _ = services.pages.Get(ctx, page.ID)
	if len(stored.Content) != 1 {
		t.Fatalf("expected saved content, got %+v", stored.Content)
	}
	if saves := *services.saves; len(saves) != 1 || saves[0] != "pages.save_content.success" {
		t.Fatalf("expected save to dispatch the save content command, got %v", saves)
	}

	doJSONRequest(t, mux, http.MethodDelete, root, nil, http.StatusNoContent)
	doJSONRequest(t, mux, http.MethodGet, root, nil, http.StatusNotFound)
}

func TestAPI_EditorOpsStopAtFirstFailure(t *testing.T) {
	mux, services := setupAPI(t)
	page, err := services.pages.Create(context.Background(), pages.CreatePageRequest{Title: "Home", Handle: "home"})
	if err != nil {
		t.Fatalf("create page: %v", err)
	}
	session, err := services.sessions.Open(context.Background(), page.ID)
	if err != nil {
		t.Fatalf("open session: %v", err)
	}

	rec := doJSONRequest(t, mux, http.MethodPost, "/api/cms/editor/sessions/"+session.ID()+"/ops", map[string]any{
		"ops": []map[string]any{
			{"op": "add", "blockType": "text-block"},
			{"op": "delete", "index": 0},
			{"op": "add", "blockType": "layout-block"},
		},
	}, http.StatusBadRequest)
	var result opsResponse
	decodeJSONBody(t, rec, &result)
	if result.Applied != 1 || result.Error == nil {
		t.Fatalf("expected one applied op and an error, got %+v", result)
	}
	if len(result.State.Content) != 1 || result.State.Content[0].BlockType != blocks.TypeText {
		t.Fatalf("expected only the first op applied, got %+v", result.State.Content)
	}
}

func TestAPI_EditorSessionOpenValidation(t *testing.T) {
	mux, _ := setupAPI(t)

	rec := doJSONRequest(t, mux, http.MethodPost, "/api/cms/editor/sessions", map[string]any{"pageId": "nope"}, http.StatusBadRequest)
	var resp errorResponse
	decodeJSONBody(t, rec, &resp)
	if len(resp.Issues) != 1 || resp.Issues[0].Location != "/pageId" {
		t.Fatalf("expected pageId issue, got %+v", resp)
	}

	doJSONRequest(t, mux, http.MethodPost, "/api/cms/editor/sessions", map[string]any{}, http.StatusBadRequest)
	doJSONRequest(t, mux, http.MethodPost, "/api/cms/editor/sessions", map[string]any{"pageId": "9b2f3c1e-0000-4000-8000-000000000000"}, http.StatusNotFound)
}
