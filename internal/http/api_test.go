package http

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/goliatone/go-pagekit/internal/blocks"
	"github.com/goliatone/go-pagekit/internal/commands"
	pagescmd "github.com/goliatone/go-pagekit/internal/commands/pages"
	"github.com/goliatone/go-pagekit/internal/editor"
	"github.com/goliatone/go-pagekit/internal/logging"
	"github.com/goliatone/go-pagekit/internal/pages"
	"github.com/goliatone/go-pagekit/internal/render"
	"github.com/goliatone/go-pagekit/pkg/interfaces"
)

type staticAuth struct {
	userID string
}

func (a staticAuth) CurrentUserID(context.Context) (string, error) {
	if a.userID == "" {
		return "", interfaces.ErrUnauthenticated
	}
	return a.userID, nil
}

type testServices struct {
	pages    pages.Service
	sessions *editor.SessionStore
	cache    *render.HTMLCache
	saves    *[]string
}

func setupAPI(t *testing.T, opts ...Option) (*http.ServeMux, testServices) {
	t.Helper()

	cache := render.NewHTMLCache(time.Minute)
	service := pages.NewService(pages.NewMemoryPageRepository(), pages.WithObserver(cache.Observe))

	var saves []string
	saveContent := pagescmd.NewSavePageContentHandler(service, logging.NoOp(),
		commands.WithTelemetry(func(_ context.Context, _ pagescmd.SavePageContentCommand, info commands.TelemetryInfo) {
			saves = append(saves, info.Event())
		}),
	)
	sessions := editor.NewSessionStore(service, editor.New(editor.WithIDGenerator(blocks.NewSequenceGenerator())), time.Minute,
		editor.WithContentSaver(saveContent.Save),
	)

	base := []Option{
		WithSessions(sessions),
		WithRenderer(render.New()),
		WithHTMLCache(cache),
		WithCommands(&pagescmd.HandlerSet{
			SaveContent: saveContent,
			Delete:      pagescmd.NewDeletePageHandler(service, logging.NoOp()),
			Publish:     pagescmd.NewPublishPageHandler(service, logging.NoOp()),
		}),
	}
	api := NewAPI(service, append(base, opts...)...)
	mux := http.NewServeMux()
	if err := api.Register(mux); err != nil {
		t.Fatalf("register api: %v", err)
	}
	return mux, testServices{pages: service, sessions: sessions, cache: cache, saves: &saves}
}

func doJSONRequest(t *testing.T, mux *http.ServeMux, method, path string, body any, wantStatus int) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("encode body: %v", err)
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)
	if rec.Code != wantStatus {
		t.Fatalf("expected status %d got %d (%s)", wantStatus, rec.Code, rec.Body.String())
	}
	return rec
}

func decodeJSONBody(t *testing.T, rec *httptest.ResponseRecorder, target any) {
	t.Helper()
	if err := json.Unmarshal(rec.Body.Bytes(), target); err != nil {
		t.Fatalf("decode response: %v", err)
	}
}

func textContent(id, html string) []map[string]any {
	return []map[string]any{{"id": id, "blockType": "text-block", "content": html, "format": "html"}}
}

func TestAPI_PageLifecycle(t *testing.T) {
	mux, _ := setupAPI(t)

	createResp := doJSONRequest(t, mux, http.MethodPost, "/api/cms/pages", map[string]any{
		"title":   "About Us",
		"content": textContent("t1", "<p>Hi</p>"),
	}, http.StatusCreated)
	var created pages.Page
	decodeJSONBody(t, createResp, &created)
	if created.ID == uuid.Nil || created.Handle != "about-us" {
		t.Fatalf("unexpected created page %+v", created)
	}

	path := "/api/cms/pages/" + created.ID.String()
	getResp := doJSONRequest(t, mux, http.MethodGet, path, nil, http.StatusOK)
	var fetched pages.Page
	decodeJSONBody(t, getResp, &fetched)
	if len(fetched.Content) != 1 || fetched.Content[0].ID != "t1" {
		t.Fatalf("expected stored content, got %+v", fetched.Content)
	}

	updateResp := doJSONRequest(t, mux, http.MethodPatch, path, map[string]any{"title": "About"}, http.StatusOK)
	var updated pages.Page
	decodeJSONBody(t, updateResp, &updated)
	if updated.Title != "About" || len(updated.Content) != 1 {
		t.Fatalf("expected partial update, got %+v", updated)
	}

	listResp := doJSONRequest(t, mux, http.MethodGet, "/api/cms/pages?search=abo&limit=5", nil, http.StatusOK)
	var list pages.PageList
	decodeJSONBody(t, listResp, &list)
	if list.Total != 1 || list.Limit != 5 || list.Page != 1 {
		t.Fatalf("unexpected list %+v", list)
	}

	farResp := doJSONRequest(t, mux, http.MethodGet, "/api/cms/pages?page=922337203685477581&limit=20", nil, http.StatusOK)
	var far pages.PageList
	decodeJSONBody(t, farResp, &far)
	if far.Total != 1 || len(far.Items) != 0 {
		t.Fatalf("expected empty page past the end, got %+v", far)
	}

	doJSONRequest(t, mux, http.MethodDelete, path, nil, http.StatusBadRequest)
	doJSONRequest(t, mux, http.MethodGet, path, nil, http.StatusOK)
	doJSONRequest(t, mux, http.MethodDelete, path+"?confirm=true", nil, http.StatusNoContent)
	doJSONRequest(t, mux, http.MethodGet, path, nil, http.StatusNotFound)
}

func TestAPI_PageErrorsMapToStatus(t *testing.T) {
	mux, _ := setupAPI(t)

	doJSONRequest(t, mux, http.MethodPost, "/api/cms/pages", map[string]any{"title": "Home"}, http.StatusCreated)

	cases := []struct {
		name   string
		body   map[string]any
		status int
		code   string
	}{
		{name: "missing title", body: map[string]any{"handle": "x"}, status: http.StatusBadRequest, code: "bad_request"},
		{name: "duplicate handle", body: map[string]any{"title": "Home again", "handle": "home"}, status: http.StatusConflict, code: "conflict"},
		{
			name:   "invalid content",
			body:   map[string]any{"title": "Broken", "content": []map[string]any{{"id": "x", "blockType": "carousel"}}},
			status: http.StatusUnprocessableEntity,
			code:   "validation_failed",
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rec := doJSONRequest(t, mux, http.MethodPost, "/api/cms/pages", tc.body, tc.status)
			var resp errorResponse
			decodeJSONBody(t, rec, &resp)
			if resp.Error != tc.code {
				t.Fatalf("expected error code %s, got %+v", tc.code, resp)
			}
			if tc.code == "validation_failed" && len(resp.Issues) == 0 {
				t.Fatalf("expected issues in %+v", resp)
			}
		})
	}

	doJSONRequest(t, mux, http.MethodGet, "/api/cms/pages/not-a-uuid", nil, http.StatusBadRequest)
}

func TestAPI_PageByHandle(t *testing.T) {
	mux, services := setupAPI(t)
	ctx := context.Background()

	if _, err := services.pages.Create(ctx, pages.CreatePageRequest{Title: "Draft", Handle: "draft"}); err != nil {
		t.Fatalf("create draft: %v", err)
	}
	if _, err := services.pages.Create(ctx, pages.CreatePageRequest{Title: "Members", Handle: "members", RequiresAuth: true, IsPublished: true}); err != nil {
		t.Fatalf("create members: %v", err)
	}

	missing := doJSONRequest(t, mux, http.MethodGet, "/api/cms/pages/by-handle/nope", nil, http.StatusOK)
	if strings.TrimSpace(missing.Body.String()) != "null" {
		t.Fatalf("expected null for unknown page, got %s", missing.Body.String())
	}

	draft := doJSONRequest(t, mux, http.MethodGet, "/api/cms/pages/by-handle/draft", nil, http.StatusOK)
	var page pages.Page
	decodeJSONBody(t, draft, &page)
	if page.Handle != "draft" || page.IsPublished {
		t.Fatalf("expected unpublished page to be returned, got %+v", page)
	}

	doJSONRequest(t, mux, http.MethodGet, "/api/cms/pages/by-handle/members", nil, http.StatusUnauthorized)
}

func TestAPI_PageByHandleWithAuthenticatedCaller(t *testing.T) {
	mux, services := setupAPI(t, WithAuth(staticAuth{userID: "u1"}))
	if _, err := services.pages.Create(context.Background(), pages.CreatePageRequest{Title: "Members", Handle: "members", RequiresAuth: true}); err != nil {
		t.Fatalf("create members: %v", err)
	}
	rec := doJSONRequest(t, mux, http.MethodGet, "/api/cms/pages/by-handle/members", nil, http.StatusOK)
	var page pages.Page
	decodeJSONBody(t, rec, &page)
	if page.Handle != "members" {
		t.Fatalf("expected members page, got %+v", page)
	}
}

func TestAPI_PublishRoutesThroughCommands(t *testing.T) {
	mux, services := setupAPI(t)
	page, err := services.pages.Create(context.Background(), pages.CreatePageRequest{Title: "Home", Handle: "home"})
	if err != nil {
		t.Fatalf("create page: %v", err)
	}

	rec := doJSONRequest(t, mux, http.MethodPost, "/api/cms/pages/"+page.ID.String()+"/publish", nil, http.StatusOK)
	var published pages.Page
	decodeJSONBody(t, rec, &published)
	if !published.IsPublished {
		t.Fatalf("expected page to be published")
	}

	rec = doJSONRequest(t, mux, http.MethodPost, "/api/cms/pages/"+page.ID.String()+"/publish", map[string]any{"published": false}, http.StatusOK)
	decodeJSONBody(t, rec, &published)
	if published.IsPublished {
		t.Fatalf("expected page to be unpublished")
	}

	doJSONRequest(t, mux, http.MethodPost, "/api/cms/pages/"+uuid.NewString()+"/publish", nil, http.StatusNotFound)
}

func TestAPI_Catalog(t *testing.T) {
	mux, _ := setupAPI(t)

	rec := doJSONRequest(t, mux, http.MethodGet, "/api/cms/blocks/catalog?q=qr", nil, http.StatusOK)
	var groups []blocks.CatalogGroup
	decodeJSONBody(t, rec, &groups)
	if len(groups) != 1 || len(groups[0].Entries) != 1 || groups[0].Entries[0].Value != blocks.TypeQRCode {
		t.Fatalf("unexpected catalog %+v", groups)
	}

	rec = doJSONRequest(t, mux, http.MethodGet, "/api/cms/blocks/carousel/editor", nil, http.StatusOK)
	var form blocks.EditorForm
	decodeJSONBody(t, rec, &form)
	if form.Fallback != "Unknown block type: carousel" {
		t.Fatalf("expected fallback form, got %+v", form)
	}
}
