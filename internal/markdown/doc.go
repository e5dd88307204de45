// Package markdown renders Markdown text blocks with goldmark and imports
// Markdown files with frontmatter as pages holding a single text block.
package markdown
