package markdown

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/goliatone/go-slug"

	"github.com/goliatone/go-pagekit/blocks"
	"github.com/goliatone/go-pagekit/internal/identity"
	"github.com/goliatone/go-pagekit/internal/logging"
	"github.com/goliatone/go-pagekit/pages"
	"github.com/goliatone/go-pagekit/pkg/interfaces"
)

var (
	ErrPageServiceRequired = errors.New("markdown importer: page service is required")
	ErrHandleMissing       = errors.New("markdown importer: handle could not be determined")
)

// PageStore is the subset of the page service the importer writes through.
type PageStore interface {
	GetByHandle(ctx context.Context, handle string) (*pages.Page, error)
	Create(ctx context.Context, req pages.CreatePageRequest) (*pages.Page, error)
	Update(ctx context.Context, req pages.UpdatePageRequest) (*pages.Page, error)
}

// ImporterConfig encapsulates dependencies required to persist markdown documents.
type ImporterConfig struct {
	Pages  PageStore
	Loader *Loader
	Logger interfaces.Logger
	// Author is stamped on imported pages when the frontmatter has none.
	Author string
}

// ImportResult summarises an import run.
type ImportResult struct {
	Created []string `json:"created"`
	Updated []string `json:"updated"`
}

// Importer turns Markdown documents into pages holding one markdown text block.
type Importer struct {
	pages  PageStore
	loader *Loader
	logger interfaces.Logger
	author string
}

// NewImporter builds an Importer from cfg.
func NewImporter(cfg ImporterConfig) *Importer {
	logger := cfg.Logger
	if logger == nil {
		logger = logging.NoOp()
	}
	return &Importer{
		pages:  cfg.Pages,
		loader: cfg.Loader,
		logger: logger,
		author: strings.TrimSpace(cfg.Author),
	}
}

// ImportFile loads and imports the file at path.
func (i *Importer) ImportFile(ctx context.Context, path string) (*ImportResult, error) {
	if i.loader == nil {
		return nil, fmt.Errorf("markdown importer: loader is required")
	}
	doc, err := i.loader.LoadFile(ctx, path)
	if err != nil {
		return nil, err
	}
	result := &ImportResult{}
	if err := i.importDocument(ctx, doc, result); err != nil {
		return result, err
	}
	return result, nil
}

// ImportDirectory imports every Markdown file under dir, stopping at the first failure.
func (i *Importer) ImportDirectory(ctx context.Context, dir string) (*ImportResult, error) {
	if i.loader == nil {
		return nil, fmt.Errorf("markdown importer: loader is required")
	}
	docs, err := i.loader.LoadDirectory(ctx, dir)
	if err != nil {
		return nil, err
	}
	return i.ImportDocuments(ctx, docs)
}

// ImportDocuments imports already parsed documents in order.
func (i *Importer) ImportDocuments(ctx context.Context, docs []*Document) (*ImportResult, error) {
	result := &ImportResult{}
	for _, doc := range docs {
		if err := i.importDocument(ctx, doc, result); err != nil {
			return result, err
		}
	}
	return result, nil
}

func (i *Importer) importDocument(ctx context.Context, doc *Document, result *ImportResult) error {
	if i.pages == nil {
		return ErrPageServiceRequired
	}
	handle, err := documentHandle(doc)
	if err != nil {
		return err
	}
	logger := logging.WithFields(i.logger, map[string]any{
		"handle": handle,
		"file":   doc.FilePath,
	})

	title := doc.FrontMatter.Title
	if title == "" {
		title = titleFromHandle(handle)
	}
	content := []blocks.Block{documentBlock(handle, doc.Body)}
	var description *string
	if doc.FrontMatter.Description != "" {
		value := doc.FrontMatter.Description
		description = &value
	}
	author := doc.FrontMatter.Author
	if author == "" {
		author = i.author
	}

	existing, err := i.pages.GetByHandle(ctx, handle)
	switch {
	case err == nil && existing != nil:
		update := pages.UpdatePageRequest{
			ID:           existing.ID,
			Title:        &title,
			Content:      &content,
			Description:  description,
			RequiresAuth: &doc.FrontMatter.RequiresAuth,
		}
		if doc.FrontMatter.Published != nil {
			update.IsPublished = doc.FrontMatter.Published
		}
		if author != "" {
			update.Author = &author
		}
		if _, err := i.pages.Update(ctx, update); err != nil {
			logger.Error("markdown.import.update_failed", "error", err)
			return fmt.Errorf("markdown importer: update %s: %w", handle, err)
		}
		result.Updated = append(result.Updated, handle)
		logger.Info("markdown.import.updated")
		return nil
	case err != nil && !pages.IsNotFound(err):
		return fmt.Errorf("markdown importer: lookup %s: %w", handle, err)
	}

	published := true
	if doc.FrontMatter.Published != nil {
		published = *doc.FrontMatter.Published
	}
	if _, err := i.pages.Create(ctx, pages.CreatePageRequest{
		ID:           identity.PageUUID(handle),
		Title:        title,
		Handle:       handle,
		Description:  description,
		Content:      content,
		IsPublished:  published,
		RequiresAuth: doc.FrontMatter.RequiresAuth,
		Author:       author,
	}); err != nil {
		logger.Error("markdown.import.create_failed", "error", err)
		return fmt.Errorf("markdown importer: create %s: %w", handle, err)
	}
	result.Created = append(result.Created, handle)
	logger.Info("markdown.import.created")
	return nil
}

// documentBlock uses a stable id so re-imports do not churn block ids.
func documentBlock(handle string, body []byte) blocks.Block {
	return blocks.Block{
		ID:        "block-md-" + handle,
		BlockType: blocks.TypeText,
		Props: map[string]any{
			"content": strings.TrimSpace(string(body)),
			"format":  "markdown",
		},
	}
}

func documentHandle(doc *Document) (string, error) {
	if doc == nil {
		return "", ErrHandleMissing
	}
	for _, candidate := range []string{doc.FrontMatter.Handle, doc.FrontMatter.Title, doc.BaseName()} {
		if strings.TrimSpace(candidate) == "" {
			continue
		}
		normalized, err := slug.Normalize(candidate)
		if err == nil && normalized != "" {
			return normalized, nil
		}
	}
	return "", fmt.Errorf("%w: %s", ErrHandleMissing, doc.FilePath)
}

func titleFromHandle(handle string) string {
	words := strings.FieldsFunc(handle, func(r rune) bool { return r == '-' || r == '_' })
	for i, word := range words {
		words[i] = strings.ToUpper(word[:1]) + word[1:]
	}
	return strings.Join(words, " ")
}
