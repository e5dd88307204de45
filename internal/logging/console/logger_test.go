package console_test

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/goliatone/go-pagekit/internal/logging"
	"github.com/goliatone/go-pagekit/internal/logging/console"
	"github.com/goliatone/go-pagekit/pkg/interfaces"
)

func TestConsoleLogger_WritesStructuredEntry(t *testing.T) {
	var buf bytes.Buffer
	now := time.Date(2026, 3, 14, 15, 9, 26, 535897000, time.UTC)

	minLevel := console.LevelDebug
	provider := console.NewProvider(console.Options{
		Writer:   &buf,
		TimeFunc: func() time.Time { return now },
		MinLevel: &minLevel,
	})

	logger := provider.GetLogger("pagekit.pages")
	logger = logger.(interfaces.FieldsLogger).WithFields(map[string]any{"module": "pagekit.pages"})
	ctx := logging.ContextWithFields(context.Background(), map[string]any{
		"request_id": "req-1234",
	})
	logger = logger.WithContext(ctx)

	pageID := uuid.MustParse("8a51a9b1-2d30-4b2c-8ecd-2c0b87dfa999")
	logger.Info("pages.create.success",
		"page_id", pageID,
		"handle", "about us",
	)

	got := strings.TrimSpace(buf.String())
	want := `2026-03-14T15:09:26.535897Z INFO pages.create.success handle="about us" logger=pagekit.pages module=pagekit.pages page_id=8a51a9b1-2d30-4b2c-8ecd-2c0b87dfa999 request_id=req-1234`
	if got != want {
		t.Fatalf("unexpected log entry\nwant: %s\ngot:  %s", want, got)
	}
}

func TestConsoleLogger_LevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	minLevel := console.LevelInfo
	provider := console.NewProvider(console.Options{
		Writer:   &buf,
		TimeFunc: time.Now,
		MinLevel: &minLevel,
	})

	logger := provider.GetLogger("pagekit.test")
	logger.Debug("ignored.debug", "foo", "bar")
	logger.Info("included.info", "foo", "bar")

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 1 {
		t.Fatalf("expected single log line, got %d", len(lines))
	}
	if !strings.Contains(lines[0], "included.info") {
		t.Fatalf("expected info log to be written, got %s", lines[0])
	}
}

func TestConsoleLogger_PositionalArgs(t *testing.T) {
	var buf bytes.Buffer
	provider := console.NewProvider(console.Options{Writer: &buf})

	provider.GetLogger("pagekit.test").Warn("odd.args", 42, "value", "error", errors.New("boom"), "dangling")

	line := buf.String()
	for _, want := range []string{"field_0=value", "error=boom", "field_4=dangling"} {
		if !strings.Contains(line, want) {
			t.Fatalf("expected %q in %s", want, line)
		}
	}
}

func TestParseLevel(t *testing.T) {
	if level, ok := console.ParseLevel(" warn "); !ok || level != console.LevelWarn {
		t.Fatalf("expected warn, got %v %v", level, ok)
	}
	if _, ok := console.ParseLevel("verbose"); ok {
		t.Fatalf("expected unknown level to be rejected")
	}
}
