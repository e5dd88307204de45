package logging

import (
	"context"
	"maps"
	"strings"
)

type contextKey struct{}

// ContextWithFields stores fields on ctx for loggers that read them back
// (see console). Fields already on ctx are kept unless overridden.
func ContextWithFields(ctx context.Context, fields map[string]any) context.Context {
	if ctx == nil || len(fields) == 0 {
		return ctx
	}
	merged := ContextFields(ctx)
	if merged == nil {
		merged = make(map[string]any, len(fields))
	}
	maps.Copy(merged, fields)
	return context.WithValue(ctx, contextKey{}, merged)
}

// ContextWithPage records the page being served so render warnings can be
// traced back to a handle.
func ContextWithPage(ctx context.Context, pageID, handle string) context.Context {
	fields := map[string]any{}
	if id := strings.TrimSpace(pageID); id != "" {
		fields[fieldPageID] = id
	}
	if h := strings.TrimSpace(handle); h != "" {
		fields[fieldHandle] = h
	}
	return ContextWithFields(ctx, fields)
}

// ContextFields returns a copy of the fields stored on ctx.
func ContextFields(ctx context.Context) map[string]any {
	if ctx == nil {
		return nil
	}
	fields, _ := ctx.Value(contextKey{}).(map[string]any)
	if len(fields) == 0 {
		return nil
	}
	return maps.Clone(fields)
}
