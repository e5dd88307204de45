package markdown

import (
	"bytes"
	"fmt"
	"path"
	"strings"
	"time"

	"github.com/adrg/frontmatter"
)

// FrontMatter is the page metadata recognised at the top of a Markdown file.
type FrontMatter struct {
	Title        string
	Handle       string
	Description  string
	Published    *bool
	RequiresAuth bool
	Author       string
	Custom       map[string]any
}

// Document is a parsed Markdown file.
type Document struct {
	FilePath     string
	FrontMatter  FrontMatter
	Body         []byte
	Checksum     []byte
	LastModified time.Time
}

// ParseFrontMatter splits source into its frontmatter and Markdown body.
func ParseFrontMatter(source []byte) (FrontMatter, []byte, error) {
	var meta frontMatterEnvelope

	body, err := frontmatter.Parse(bytes.NewReader(source), &meta)
	if err != nil {
		return FrontMatter{}, nil, fmt.Errorf("parse frontmatter: %w", err)
	}

	return envelopeToFrontMatter(meta), body, nil
}

// BuildDocument parses source read from filePath.
func BuildDocument(filePath string, source []byte, modified time.Time) (*Document, error) {
	fm, body, err := ParseFrontMatter(source)
	if err != nil {
		return nil, err
	}
	return &Document{
		FilePath:     filePath,
		FrontMatter:  fm,
		Body:         body,
		LastModified: modified,
	}, nil
}

// BaseName returns the file name without directory or extension.
func (d *Document) BaseName() string {
	if d == nil {
		return ""
	}
	name := path.Base(strings.ReplaceAll(d.FilePath, "\\", "/"))
	return strings.TrimSuffix(name, path.Ext(name))
}

type frontMatterEnvelope struct {
	Title        string         `yaml:"title"`
	Handle       string         `yaml:"handle"`
	Slug         string         `yaml:"slug"`
	Description  string         `yaml:"description"`
	Summary      string         `yaml:"summary"`
	Published    *bool          `yaml:"published"`
	Draft        *bool          `yaml:"draft"`
	RequiresAuth bool           `yaml:"requires_auth"`
	Author       string         `yaml:"author"`
	Custom       map[string]any `yaml:",inline"`
}

func envelopeToFrontMatter(env frontMatterEnvelope) FrontMatter {
	fm := FrontMatter{
		Title:        strings.TrimSpace(env.Title),
		Handle:       firstNonEmpty(env.Handle, env.Slug),
		Description:  firstNonEmpty(env.Description, env.Summary),
		RequiresAuth: env.RequiresAuth,
		Author:       strings.TrimSpace(env.Author),
		Custom:       cloneMap(env.Custom),
	}
	switch {
	case env.Published != nil:
		published := *env.Published
		fm.Published = &published
	case env.Draft != nil:
		published := !*env.Draft
		fm.Published = &published
	}
	return fm
}

func firstNonEmpty(values ...string) string {
	for _, value := range values {
		if trimmed := strings.TrimSpace(value); trimmed != "" {
			return trimmed
		}
	}
	return ""
}

func cloneMap(input map[string]any) map[string]any {
	out := make(map[string]any, len(input))
	for key, value := range input {
		out[key] = value
	}
	return out
}
