package logging

import (
	"context"
	"strings"

	"github.com/goliatone/go-pagekit/pkg/interfaces"
)

const (
	rootModule     = "pagekit"
	pagesModule    = "pagekit.pages"
	renderModule   = "pagekit.render"
	editorModule   = "pagekit.editor"
	httpModule     = "pagekit.http"
	markdownModule = "pagekit.markdown"
)

const (
	fieldPageID    = "page_id"
	fieldHandle    = "handle"
	fieldSessionID = "session_id"
)

// ModuleLogger returns a module-scoped logger, defaulting to a no-op
// implementation when no provider is supplied. The returned logger attaches
// the module identifier as structured context so downstream entries can be
// filtered predictably.
func ModuleLogger(provider interfaces.LoggerProvider, module string) interfaces.Logger {
	if module == "" {
		module = rootModule
	}

	logger := NoOp()
	if provider != nil {
		if provided := provider.GetLogger(module); provided != nil {
			logger = provided
		}
	}

	return WithFields(logger, map[string]any{
		"module": module,
	})
}

// PagesLogger returns the logger namespace reserved for page services.
func PagesLogger(provider interfaces.LoggerProvider) interfaces.Logger {
	return ModuleLogger(provider, pagesModule)
}

// RenderLogger returns the logger namespace reserved for the page renderer.
func RenderLogger(provider interfaces.LoggerProvider) interfaces.Logger {
	return ModuleLogger(provider, renderModule)
}

// EditorLogger returns the logger namespace reserved for editor sessions.
func EditorLogger(provider interfaces.LoggerProvider) interfaces.Logger {
	return ModuleLogger(provider, editorModule)
}

// HTTPLogger returns the logger namespace reserved for HTTP handlers.
func HTTPLogger(provider interfaces.LoggerProvider) interfaces.Logger {
	return ModuleLogger(provider, httpModule)
}

// MarkdownLogger returns the logger namespace reserved for markdown imports.
func MarkdownLogger(provider interfaces.LoggerProvider) interfaces.Logger {
	return ModuleLogger(provider, markdownModule)
}

// WithPageContext enriches logger with the page id and handle. Empty values
// are ignored.
func WithPageContext(logger interfaces.Logger, pageID, handle string) interfaces.Logger {
	fields := map[string]any{}
	if trimmed := strings.TrimSpace(pageID); trimmed != "" {
		fields[fieldPageID] = trimmed
	}
	if trimmed := strings.TrimSpace(handle); trimmed != "" {
		fields[fieldHandle] = trimmed
	}
	return WithFields(logger, fields)
}

// WithSessionContext enriches logger with an editor session id.
func WithSessionContext(logger interfaces.Logger, sessionID string) interfaces.Logger {
	if trimmed := strings.TrimSpace(sessionID); trimmed != "" {
		return WithFields(logger, map[string]any{fieldSessionID: trimmed})
	}
	return logger
}

// NoOp returns a logger that drops every log entry. It satisfies the Logger
// contract so services can safely operate when logging is disabled.
func NoOp() interfaces.Logger {
	return noopLogger{}
}

type noopLogger struct{}

var _ interfaces.Logger = noopLogger{}

func (noopLogger) Trace(string, ...any) {}
func (noopLogger) Debug(string, ...any) {}
func (noopLogger) Info(string, ...any)  {}
func (noopLogger) Warn(string, ...any)  {}
func (noopLogger) Error(string, ...any) {}
func (noopLogger) Fatal(string, ...any) {}

func (n noopLogger) WithFields(map[string]any) interfaces.Logger {
	return n
}

func (n noopLogger) WithContext(context.Context) interfaces.Logger {
	return n
}
