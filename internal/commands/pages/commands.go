package pagescmd

import (
	"context"
	"errors"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/google/uuid"

	pkblocks "github.com/goliatone/go-pagekit/blocks"
	"github.com/goliatone/go-pagekit/internal/blocks"
	"github.com/goliatone/go-pagekit/internal/commands"
	"github.com/goliatone/go-pagekit/internal/pages"
	"github.com/goliatone/go-pagekit/pkg/interfaces"
)

const (
	saveContentMessageType = "pagekit.pages.save_content"
	deletePageMessageType  = "pagekit.pages.delete"
	publishPageMessageType = "pagekit.pages.publish"

	pageInvalidCode = "PAGE_VALIDATION_FAILED"
)

// SavePageContentCommand replaces the whole block tree of a page.
type SavePageContentCommand struct {
	PageID  uuid.UUID      `json:"page_id"`
	Content []blocks.Block `json:"content"`
}

// Type implements command.Message.
func (SavePageContentCommand) Type() string { return saveContentMessageType }

// Validate ensures the message carries the required fields before reaching handlers.
func (m SavePageContentCommand) Validate() error {
	errs := validation.Errors{}
	if m.PageID == uuid.Nil {
		errs["page_id"] = validation.NewError("pagekit.pages.save_content.page_id_required", "page_id is required")
	}
	if len(errs) > 0 {
		return errs
	}
	return nil
}

// DeletePageCommand removes a page once the caller confirmed it.
type DeletePageCommand struct {
	PageID    uuid.UUID `json:"page_id"`
	Confirmed bool      `json:"confirmed"`
}

// Type implements command.Message.
func (DeletePageCommand) Type() string { return deletePageMessageType }

// Validate rejects unconfirmed deletes before the store is touched.
func (m DeletePageCommand) Validate() error {
	errs := validation.Errors{}
	if m.PageID == uuid.Nil {
		errs["page_id"] = validation.NewError("pagekit.pages.delete.page_id_required", "page_id is required")
	}
	if !m.Confirmed {
		errs["confirmed"] = validation.NewError("pagekit.pages.delete.confirmation_required", "delete must be confirmed")
	}
	if len(errs) > 0 {
		return errs
	}
	return nil
}

// PublishPageCommand sets the published flag of a page.
type PublishPageCommand struct {
	PageID    uuid.UUID `json:"page_id"`
	Published bool      `json:"published"`
}

// Type implements command.Message.
func (PublishPageCommand) Type() string { return publishPageMessageType }

// Validate ensures the message carries the required fields before reaching handlers.
func (m PublishPageCommand) Validate() error {
	errs := validation.Errors{}
	if m.PageID == uuid.Nil {
		errs["page_id"] = validation.NewError("pagekit.pages.publish.page_id_required", "page_id is required")
	}
	if len(errs) > 0 {
		return errs
	}
	return nil
}

// SavePageContentHandler writes editor content through the page service.
type SavePageContentHandler struct {
	inner *commands.Handler[SavePageContentCommand]
}

// NewSavePageContentHandler constructs a handler wired to the provided page service.
func NewSavePageContentHandler(service pages.Service, logger interfaces.Logger, opts ...commands.HandlerOption[SavePageContentCommand]) *SavePageContentHandler {
	exec := func(ctx context.Context, msg SavePageContentCommand) error {
		content := msg.Content
		if content == nil {
			content = []blocks.Block{}
		}
		_, err := service.Update(ctx, pages.UpdatePageRequest{ID: msg.PageID, Content: &content})
		return classify(err)
	}

	handlerOpts := []commands.HandlerOption[SavePageContentCommand]{
		commands.WithLogger[SavePageContentCommand](logger),
		commands.WithOperation[SavePageContentCommand]("pages.save_content"),
		commands.WithMessageFields(func(msg SavePageContentCommand) map[string]any {
			return map[string]any{
				"page_id": msg.PageID.String(),
				"blocks":  pkblocks.Count(msg.Content),
			}
		}),
		commands.WithTelemetry(commands.DefaultTelemetry[SavePageContentCommand](logger)),
	}
	handlerOpts = append(handlerOpts, opts...)

	return &SavePageContentHandler{inner: commands.NewHandler(exec, handlerOpts...)}
}

// Execute satisfies command.Commander[SavePageContentCommand].Execute.
func (h *SavePageContentHandler) Execute(ctx context.Context, msg SavePageContentCommand) error {
	return h.inner.Execute(ctx, msg)
}

// Save dispatches a SavePageContentCommand for pageID. It matches
// editor.ContentSaver so editor sessions can save through the handler.
func (h *SavePageContentHandler) Save(ctx context.Context, pageID uuid.UUID, content []blocks.Block) error {
	return h.Execute(ctx, SavePageContentCommand{PageID: pageID, Content: content})
}

// DeletePageHandler deletes pages via the page service.
type DeletePageHandler struct {
	inner *commands.Handler[DeletePageCommand]
}

// NewDeletePageHandler constructs a handler wired to the provided page service.
func NewDeletePageHandler(service pages.Service, logger interfaces.Logger, opts ...commands.HandlerOption[DeletePageCommand]) *DeletePageHandler {
	exec := func(ctx context.Context, msg DeletePageCommand) error {
		return classify(service.Delete(ctx, pages.DeletePageRequest{ID: msg.PageID, Confirmed: msg.Confirmed}))
	}

	handlerOpts := []commands.HandlerOption[DeletePageCommand]{
		commands.WithLogger[DeletePageCommand](logger),
		commands.WithOperation[DeletePageCommand]("pages.delete"),
		commands.WithMessageFields(func(msg DeletePageCommand) map[string]any {
			return map[string]any{"page_id": msg.PageID.String()}
		}),
		commands.WithTelemetry(commands.DefaultTelemetry[DeletePageCommand](logger)),
	}
	handlerOpts = append(handlerOpts, opts...)

	return &DeletePageHandler{inner: commands.NewHandler(exec, handlerOpts...)}
}

// Execute satisfies command.Commander[DeletePageCommand].Execute.
func (h *DeletePageHandler) Execute(ctx context.Context, msg DeletePageCommand) error {
	return h.inner.Execute(ctx, msg)
}

// PublishPageHandler toggles page publication via the page service.
type PublishPageHandler struct {
	inner *commands.Handler[PublishPageCommand]
}

// NewPublishPageHandler constructs a handler wired to the provided page service.
func NewPublishPageHandler(service pages.Service, logger interfaces.Logger, opts ...commands.HandlerOption[PublishPageCommand]) *PublishPageHandler {
	exec := func(ctx context.Context, msg PublishPageCommand) error {
		published := msg.Published
		_, err := service.Update(ctx, pages.UpdatePageRequest{ID: msg.PageID, IsPublished: &published})
		return classify(err)
	}

	handlerOpts := []commands.HandlerOption[PublishPageCommand]{
		commands.WithLogger[PublishPageCommand](logger),
		commands.WithOperation[PublishPageCommand]("pages.publish"),
		commands.WithMessageFields(func(msg PublishPageCommand) map[string]any {
			return map[string]any{
				"page_id":   msg.PageID.String(),
				"published": msg.Published,
			}
		}),
		commands.WithTelemetry(commands.DefaultTelemetry[PublishPageCommand](logger)),
	}
	handlerOpts = append(handlerOpts, opts...)

	return &PublishPageHandler{inner: commands.NewHandler(exec, handlerOpts...)}
}

// Execute satisfies command.Commander[PublishPageCommand].Execute.
func (h *PublishPageHandler) Execute(ctx context.Context, msg PublishPageCommand) error {
	return h.inner.Execute(ctx, msg)
}

var validationErrors = []error{
	pages.ErrTitleRequired,
	pages.ErrHandleRequired,
	pages.ErrHandleInvalid,
	pages.ErrParentNotFound,
	pages.ErrParentSelf,
	pages.ErrDeleteConfirmationRequired,
	blocks.ErrInvalidContent,
}

// classify tags domain validation failures; everything else is left to the
// handler's execution error wrapping.
func classify(err error) error {
	if err == nil {
		return nil
	}
	for _, target := range validationErrors {
		if errors.Is(err, target) {
			return commands.ValidationFailure(err, pageInvalidCode)
		}
	}
	return err
}
