package render

import (
	"bytes"
	"context"
	"fmt"
	"html/template"
	"strings"

	"github.com/goliatone/go-pagekit/internal/blocks"
	"github.com/goliatone/go-pagekit/internal/logging"
	"github.com/goliatone/go-pagekit/internal/markdown"
	"github.com/goliatone/go-pagekit/internal/pages"
	"github.com/goliatone/go-pagekit/internal/profiles"
	"github.com/goliatone/go-pagekit/pkg/interfaces"
)

// UnpublishedMessage replaces the content of pages that are not published.
const UnpublishedMessage = "This page is not published."

// Options are per-render settings. An empty Breakpoint resolves responsive
// values desktop first. Origin overrides the renderer origin used to derive
// profile URLs.
type Options struct {
	Breakpoint blocks.Breakpoint
	Origin     string
}

// Option configures a Renderer.
type Option func(*Renderer)

// WithRegistry sets the block registry used for lookups.
func WithRegistry(registry *blocks.Registry) Option {
	return func(r *Renderer) {
		if registry != nil {
			r.registry = registry
		}
	}
}

// WithProfiles injects the profile data source used by profile blocks.
func WithProfiles(provider profiles.Provider) Option {
	return func(r *Renderer) {
		if provider != nil {
			r.profiles = provider
		}
	}
}

// WithOrigin sets the public origin profile URLs are derived from.
func WithOrigin(origin string) Option {
	return func(r *Renderer) {
		if strings.TrimSpace(origin) != "" {
			r.urls = profiles.NewURLBuilder(origin)
		}
	}
}

// WithSizing overrides the container dimensions.
func WithSizing(sizing blocks.Sizing) Option {
	return func(r *Renderer) {
		r.sizing = sizing
	}
}

// WithMarkdown sets the parser used by markdown text blocks.
func WithMarkdown(parser *markdown.Parser) Option {
	return func(r *Renderer) {
		if parser != nil {
			r.markdown = parser
		}
	}
}

// WithLogger sets the renderer logger.
func WithLogger(logger interfaces.Logger) Option {
	return func(r *Renderer) {
		if logger != nil {
			r.logger = logger
		}
	}
}

// Renderer turns block trees into HTML. It is safe for concurrent use.
type Renderer struct {
	registry *blocks.Registry
	profiles profiles.Provider
	urls     *profiles.URLBuilder
	sizing   blocks.Sizing
	markdown *markdown.Parser
	logger   interfaces.Logger
}

// New builds a renderer with the default registry and no profile source.
func New(opts ...Option) *Renderer {
	r := &Renderer{
		registry: blocks.Default(),
		profiles: profiles.None(),
		sizing:   blocks.DefaultSizing(),
		markdown: markdown.NewParser(markdown.Options{}),
		logger:   logging.NoOp(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// RenderPage renders the top level blocks of page in order. Unpublished
// pages render a fixed notice and their content is never visited.
func (r *Renderer) RenderPage(ctx context.Context, page *pages.Page, opts Options) (template.HTML, error) {
	if page == nil {
		return "", &pages.PageNotFoundError{}
	}
	if !page.IsPublished {
		return execute("unpublished", UnpublishedMessage)
	}
	env := r.env(ctx, opts)
	return execute("page", map[string]any{
		"ID":     page.ID.String(),
		"Handle": page.Handle,
		"Body":   r.renderList(ctx, env, page.Content),
	})
}

// RenderDocument renders page as a standalone HTML document. With an origin
// configured the head carries a canonical link to the public page URL.
func (r *Renderer) RenderDocument(ctx context.Context, page *pages.Page, opts Options) (template.HTML, error) {
	body, err := r.RenderPage(ctx, page, opts)
	if err != nil {
		return "", err
	}
	data := map[string]any{"Title": page.Title, "Body": body}
	if page.SEO != nil {
		data["Description"] = page.SEO.Description
		if page.SEO.Title != "" {
			data["Title"] = page.SEO.Title
		}
	} else if page.Description != nil {
		data["Description"] = *page.Description
	}
	if urls := r.urlsFor(opts); urls.Origin() != "" {
		canonical, err := urls.PageURL(page.Handle)
		if err != nil {
			r.logger.WithContext(ctx).Warn("render.document.canonical_failed", "handle", page.Handle, "error", err)
		} else {
			data["Canonical"] = canonical
		}
	}
	return execute("document", data)
}

// RenderBlock renders a single block. Failures never escape: unknown types,
// display errors and panics all degrade to a placeholder.
func (r *Renderer) RenderBlock(ctx context.Context, block blocks.Block, opts Options) template.HTML {
	return r.renderBlock(ctx, r.env(ctx, opts), block)
}

// RenderBlocks renders list in order.
func (r *Renderer) RenderBlocks(ctx context.Context, list []blocks.Block, opts Options) template.HTML {
	return r.renderList(ctx, r.env(ctx, opts), list)
}

// urlsFor prefers the per-call origin over the configured one.
func (r *Renderer) urlsFor(opts Options) *profiles.URLBuilder {
	if strings.TrimSpace(opts.Origin) != "" {
		return profiles.NewURLBuilder(opts.Origin)
	}
	return r.urls
}

func (r *Renderer) env(ctx context.Context, opts Options) *blocks.DisplayEnv {
	urls := r.urlsFor(opts)
	logger := r.logger.WithContext(ctx)
	env := &blocks.DisplayEnv{
		Breakpoint: opts.Breakpoint,
		Sizing:     r.sizing,
		Profiles:   r.profiles,
		URLs:       urls,
		Markdown:   r.markdown.RenderHTML,
		Logger:     logger,
	}
	env.RenderBlocks = func(ctx context.Context, list []blocks.Block) template.HTML {
		return r.renderList(ctx, env, list)
	}
	return env
}

func (r *Renderer) renderList(ctx context.Context, env *blocks.DisplayEnv, list []blocks.Block) template.HTML {
	var buf strings.Builder
	for _, block := range list {
		buf.WriteString(string(r.renderBlock(ctx, env, block)))
	}
	return template.HTML(buf.String())
}

func (r *Renderer) renderBlock(ctx context.Context, env *blocks.DisplayEnv, block blocks.Block) (out template.HTML) {
	display, ok := r.registry.LookupRenderer(block.BlockType)
	if !ok {
		env.Logger.Warn("render.block.unknown_type", "block_id", block.ID, "block_type", string(block.BlockType))
		return blocks.Placeholder("unknown", block.BlockType, fmt.Sprintf("Unknown block type: %s", block.BlockType))
	}

	defer func() {
		if recovered := recover(); recovered != nil {
			env.Logger.Error("render.block.panic", "block_id", block.ID, "block_type", string(block.BlockType), "panic", recovered)
			out = blocks.Placeholder("error", block.BlockType, "This block could not be displayed.")
		}
	}()

	body, err := display(ctx, env, block)
	if err != nil {
		env.Logger.Error("render.block.failed", "block_id", block.ID, "block_type", string(block.BlockType), "error", err)
		return blocks.Placeholder("error", block.BlockType, "This block could not be displayed.")
	}
	if !wrapped(block.BlockType) {
		return body
	}

	wrapper, err := execute("wrapper", map[string]any{
		"ID":   block.ID,
		"Type": string(block.BlockType),
		"CSS":  blocks.WrapperCSS(block, env.Breakpoint, env.Sizing),
		"Body": body,
	})
	if err != nil {
		env.Logger.Error("render.block.wrap_failed", "block_id", block.ID, "error", err)
		return body
	}
	return wrapper
}

// wrapped reports whether the block body is placed in a sized container.
// Layout blocks size themselves and profile blocks render unwrapped.
func wrapped(t blocks.Type) bool {
	return t != blocks.TypeLayout && !t.EmbedsProfile()
}

var pageTemplates = template.Must(template.New("render").Parse(`
{{define "page"}}<main class="pk-page" data-page-id="{{.ID}}" data-page-handle="{{.Handle}}">{{.Body}}</main>{{end}}

{{define "unpublished"}}<main class="pk-page pk-page--unpublished"><p class="pk-notice">{{.}}</p></main>{{end}}

{{define "wrapper"}}<div class="pk-block pk-block--{{.Type}}" data-block-id="{{.ID}}"{{with .CSS}} style="{{.}}"{{end}}>{{.Body}}</div>{{end}}

{{define "document"}}<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<meta name="viewport" content="width=device-width, initial-scale=1">
<title>{{.Title}}</title>
{{- with .Description}}
<meta name="description" content="{{.}}">
{{- end}}
{{- with .Canonical}}
<link rel="canonical" href="{{.}}">
{{- end}}
</head>
<body>
{{.Body}}
</body>
</html>
{{end}}
`))

func execute(name string, data any) (template.HTML, error) {
	var buf bytes.Buffer
	if err := pageTemplates.ExecuteTemplate(&buf, name, data); err != nil {
		return "", fmt.Errorf("render %s: %w", name, err)
	}
	return template.HTML(buf.String()), nil
}
