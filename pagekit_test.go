package pagekit_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"testing/fstest"

	"github.com/goliatone/go-pagekit"
	"github.com/goliatone/go-pagekit/pages"
)

func TestNewRejectsInvalidConfig(t *testing.T) {
	cfg := pagekit.DefaultConfig()
	cfg.HTTP.Addr = ""
	if _, err := pagekit.New(cfg); !errors.Is(err, pagekit.ErrHTTPAddrRequired) {
		t.Fatalf("expected ErrHTTPAddrRequired, got %v", err)
	}
}

func TestModuleImportAndServe(t *testing.T) {
	module, err := pagekit.New(pagekit.DefaultConfig())
	if err != nil {
		t.Fatalf("new module: %v", err)
	}
	defer module.Close()

	ctx := context.Background()
	if err := module.Migrate(ctx); err != nil {
		t.Fatalf("migrate: %v", err)
	}

	files := fstest.MapFS{"welcome.md": {Data: []byte("---\ntitle: Welcome\n---\n# Hello there\n")}}
	result, err := module.Importer(files).ImportFile(ctx, "welcome.md")
	if err != nil {
		t.Fatalf("import: %v", err)
	}
	if len(result.Created) != 1 {
		t.Fatalf("expected one created page, got %+v", result)
	}

	list, err := module.Pages().List(ctx, pages.ListPagesOptions{})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if list.Total != 1 {
		t.Fatalf("expected 1 page, got %d", list.Total)
	}

	handler, err := module.Handler()
	if err != nil {
		t.Fatalf("handler: %v", err)
	}
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/p/welcome", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	if !strings.Contains(rec.Body.String(), "Hello there") {
		t.Fatalf("expected rendered markdown, got %s", rec.Body.String())
	}
}
