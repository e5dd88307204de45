package pagescmd_test

import (
	"context"
	"errors"
	"testing"

	goerrors "github.com/goliatone/go-errors"
	"github.com/google/uuid"

	"github.com/goliatone/go-pagekit/internal/blocks"
	pagescmd "github.com/goliatone/go-pagekit/internal/commands/pages"
	"github.com/goliatone/go-pagekit/internal/logging"
	"github.com/goliatone/go-pagekit/internal/pages"
)

func seedPage(t *testing.T) (pages.Service, *pages.Page) {
	t.Helper()
	service := pages.NewService(pages.NewMemoryPageRepository())
	page, err := service.Create(context.Background(), pages.CreatePageRequest{Title: "Home", Handle: "home"})
	if err != nil {
		t.Fatalf("create page: %v", err)
	}
	return service, page
}

func TestSavePageContentHandlerReplacesContent(t *testing.T) {
	service, page := seedPage(t)
	handler := pagescmd.NewSavePageContentHandler(service, logging.NoOp())

	content := []blocks.Block{{ID: "t1", BlockType: blocks.TypeText, Props: map[string]any{"content": "Hi", "format": "html"}}}
	if err := handler.Execute(context.Background(), pagescmd.SavePageContentCommand{PageID: page.ID, Content: content}); err != nil {
		t.Fatalf("save content: %v", err)
	}

	stored, err := service.Get(context.Background(), page.ID)
	if err != nil {
		t.Fatalf("get page: %v", err)
	}
	if len(stored.Content) != 1 || stored.Content[0].ID != "t1" {
		t.Fatalf("expected saved content, got %+v", stored.Content)
	}
}

func TestSavePageContentHandlerTagsInvalidContent(t *testing.T) {
	service, page := seedPage(t)
	handler := pagescmd.NewSavePageContentHandler(service, logging.NoOp())

	content := []blocks.Block{{ID: "x1", BlockType: "carousel"}}
	err := handler.Execute(context.Background(), pagescmd.SavePageContentCommand{PageID: page.ID, Content: content})
	if !errors.Is(err, blocks.ErrInvalidContent) {
		t.Fatalf("expected ErrInvalidContent, got %v", err)
	}
	if !goerrors.IsCategory(err, goerrors.CategoryValidation) {
		t.Fatalf("expected validation category, got %v", err)
	}
}

func TestSavePageContentHandlerUnknownPage(t *testing.T) {
	service, _ := seedPage(t)
	handler := pagescmd.NewSavePageContentHandler(service, logging.NoOp())

	err := handler.Execute(context.Background(), pagescmd.SavePageContentCommand{PageID: uuid.New()})
	if !pages.IsNotFound(err) {
		t.Fatalf("expected not found, got %v", err)
	}
	if !goerrors.IsCategory(err, goerrors.CategoryCommand) {
		t.Fatalf("expected command category, got %v", err)
	}
}

func TestDeletePageCommandRequiresConfirmation(t *testing.T) {
	service, page := seedPage(t)
	handler := pagescmd.NewDeletePageHandler(service, logging.NoOp())

	err := handler.Execute(context.Background(), pagescmd.DeletePageCommand{PageID: page.ID})
	if !goerrors.IsCategory(err, goerrors.CategoryValidation) {
		t.Fatalf("expected validation category, got %v", err)
	}
	if _, err := service.Get(context.Background(), page.ID); err != nil {
		t.Fatalf("page should survive an unconfirmed delete: %v", err)
	}

	if err := handler.Execute(context.Background(), pagescmd.DeletePageCommand{PageID: page.ID, Confirmed: true}); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, err := service.Get(context.Background(), page.ID); !pages.IsNotFound(err) {
		t.Fatalf("expected page to be gone, got %v", err)
	}
}

func TestPublishPageHandlerTogglesFlag(t *testing.T) {
	service, page := seedPage(t)
	handler := pagescmd.NewPublishPageHandler(service, logging.NoOp())

	if err := handler.Execute(context.Background(), pagescmd.PublishPageCommand{PageID: page.ID, Published: true}); err != nil {
		t.Fatalf("publish: %v", err)
	}
	stored, _ := service.Get(context.Background(), page.ID)
	if !stored.IsPublished {
		t.Fatalf("expected page to be published")
	}

	if err := handler.Execute(context.Background(), pagescmd.PublishPageCommand{}); !goerrors.IsCategory(err, goerrors.CategoryValidation) {
		t.Fatalf("expected validation error for missing page id, got %v", err)
	}
}
