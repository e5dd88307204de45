package markdown

import (
	"context"
	"errors"
	"testing"
	"testing/fstest"
	"time"

	"github.com/goliatone/go-pagekit/internal/identity"
	"github.com/goliatone/go-pagekit/pages"
)

type stubPageStore struct {
	byHandle map[string]*pages.Page
	creates  []pages.CreatePageRequest
	updates  []pages.UpdatePageRequest
	failWith error
}

func newStubPageStore() *stubPageStore {
	return &stubPageStore{byHandle: map[string]*pages.Page{}}
}

func (s *stubPageStore) GetByHandle(_ context.Context, handle string) (*pages.Page, error) {
	if page, ok := s.byHandle[handle]; ok {
		return page, nil
	}
	return nil, &pages.PageNotFoundError{Key: handle}
}

func (s *stubPageStore) Create(_ context.Context, req pages.CreatePageRequest) (*pages.Page, error) {
	if s.failWith != nil {
		return nil, s.failWith
	}
	s.creates = append(s.creates, req)
	page := &pages.Page{ID: req.ID, Title: req.Title, Handle: req.Handle, Content: req.Content}
	s.byHandle[req.Handle] = page
	return page, nil
}

func (s *stubPageStore) Update(_ context.Context, req pages.UpdatePageRequest) (*pages.Page, error) {
	s.updates = append(s.updates, req)
	return &pages.Page{ID: req.ID}, nil
}

func testFS() fstest.MapFS {
	now := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	return fstest.MapFS{
		"content/about.md":       {Data: []byte(sampleDocument), ModTime: now},
		"content/Contact Us.md":  {Data: []byte("Say hi\n"), ModTime: now},
		"content/notes.txt":      {Data: []byte("ignored"), ModTime: now},
		"content/nested/deep.md": {Data: []byte("---\ntitle: Deep\n---\nDeep\n"), ModTime: now},
	}
}

func TestImportFileCreatesPage(t *testing.T) {
	store := newStubPageStore()
	importer := NewImporter(ImporterConfig{
		Pages:  store,
		Loader: NewLoader(testFS(), LoaderConfig{}),
		Author: "importer",
	})

	result, err := importer.ImportFile(context.Background(), "content/about.md")
	if err != nil {
		t.Fatalf("ImportFile: %v", err)
	}
	if len(result.Created) != 1 || result.Created[0] != "about" {
		t.Fatalf("expected about to be created, got %+v", result)
	}

	req := store.creates[0]
	if req.ID != identity.PageUUID("about") {
		t.Fatalf("expected deterministic page id, got %s", req.ID)
	}
	if req.Title != "About Us" || req.IsPublished || !req.RequiresAuth || req.Author != "importer" {
		t.Fatalf("unexpected create request %+v", req)
	}
	if req.Description == nil || *req.Description != "Who we are" {
		t.Fatalf("expected description, got %v", req.Description)
	}
	if len(req.Content) != 1 {
		t.Fatalf("expected a single block, got %d", len(req.Content))
	}
	block := req.Content[0]
	if block.BlockType != "text-block" || block.Props["format"] != "markdown" {
		t.Fatalf("expected markdown text block, got %+v", block)
	}
	if block.Props["content"] != "# About Us\n\nWe build **cards**." {
		t.Fatalf("unexpected block content %q", block.Props["content"])
	}
}

func TestImportFileUpdatesExistingPage(t *testing.T) {
	store := newStubPageStore()
	existing := &pages.Page{ID: identity.PageUUID("about"), Handle: "about"}
	store.byHandle["about"] = existing
	importer := NewImporter(ImporterConfig{Pages: store, Loader: NewLoader(testFS(), LoaderConfig{})})

	result, err := importer.ImportFile(context.Background(), "content/about.md")
	if err != nil {
		t.Fatalf("ImportFile: %v", err)
	}
	if len(result.Updated) != 1 || len(store.creates) != 0 {
		t.Fatalf("expected update only, got %+v", result)
	}
	update := store.updates[0]
	if update.ID != existing.ID {
		t.Fatalf("expected update of %s, got %s", existing.ID, update.ID)
	}
	if update.IsPublished == nil || *update.IsPublished {
		t.Fatalf("expected published=false to be carried, got %v", update.IsPublished)
	}
	if update.Content == nil || len(*update.Content) != 1 {
		t.Fatalf("expected content replacement, got %v", update.Content)
	}
}

func TestImportDirectoryDerivesHandles(t *testing.T) {
	store := newStubPageStore()
	importer := NewImporter(ImporterConfig{Pages: store, Loader: NewLoader(testFS(), LoaderConfig{})})

	result, err := importer.ImportDirectory(context.Background(), "content")
	if err != nil {
		t.Fatalf("ImportDirectory: %v", err)
	}
	if len(result.Created) != 2 {
		t.Fatalf("expected two top-level files, got %+v", result.Created)
	}
	if _, ok := store.byHandle["contact-us"]; !ok {
		t.Fatalf("expected handle derived from file name, got %v", result.Created)
	}
	if store.byHandle["contact-us"].Title != "Contact Us" {
		t.Fatalf("expected title derived from handle, got %q", store.byHandle["contact-us"].Title)
	}
}

func TestImportDirectoryRecursive(t *testing.T) {
	store := newStubPageStore()
	importer := NewImporter(ImporterConfig{
		Pages:  store,
		Loader: NewLoader(testFS(), LoaderConfig{Recursive: true}),
	})
	result, err := importer.ImportDirectory(context.Background(), "content")
	if err != nil {
		t.Fatalf("ImportDirectory: %v", err)
	}
	if len(result.Created) != 3 {
		t.Fatalf("expected nested file to be imported, got %+v", result.Created)
	}
}

func TestImportRequiresPageService(t *testing.T) {
	importer := NewImporter(ImporterConfig{Loader: NewLoader(testFS(), LoaderConfig{})})
	if _, err := importer.ImportFile(context.Background(), "content/about.md"); !errors.Is(err, ErrPageServiceRequired) {
		t.Fatalf("expected ErrPageServiceRequired, got %v", err)
	}
}

func TestImportPropagatesCreateFailure(t *testing.T) {
	store := newStubPageStore()
	store.failWith = errors.New("boom")
	importer := NewImporter(ImporterConfig{Pages: store, Loader: NewLoader(testFS(), LoaderConfig{})})
	if _, err := importer.ImportFile(context.Background(), "content/about.md"); !errors.Is(err, store.failWith) {
		t.Fatalf("expected wrapped create failure, got %v", err)
	}
}
