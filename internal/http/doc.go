// Package http provides HTTP adapters for the page store, the block catalog
// and editor sessions, plus the public page route.
//
// JSON routes mount under a configurable base path (default /api):
//   - Pages: /cms/pages, /cms/pages/{id}, /cms/pages/by-handle/{handle},
//     /cms/pages/{id}/publish
//   - Block catalog: /cms/blocks/catalog
//   - Editor sessions: /cms/editor/sessions, /cms/editor/sessions/{sid},
//     /cms/editor/sessions/{sid}/ops, /cms/editor/sessions/{sid}/save
//
// Rendered pages are served from /p/{handle}.
//
// Host applications can register handlers on their own mux/router as needed.
package http
