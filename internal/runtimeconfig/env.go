package runtimeconfig

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// EnvPrefix prefixes every variable read by FromEnv.
const EnvPrefix = "PAGEKIT_"

// LookupFunc matches os.LookupEnv.
type LookupFunc func(key string) (string, bool)

// FromEnv overlays PAGEKIT_* variables from the process environment on cfg.
func FromEnv(cfg Config) (Config, error) {
	return Overlay(cfg, os.LookupEnv)
}

// Overlay applies the variables returned by lookup on top of cfg. Unset
// variables leave the field untouched.
func Overlay(cfg Config, lookup LookupFunc) (Config, error) {
	o := overlay{lookup: lookup}

	o.str("STORAGE_PROVIDER", &cfg.Storage.Provider)
	o.str("STORAGE_DSN", &cfg.Storage.DSN)
	o.boolean("CACHE_ENABLED", &cfg.Cache.Enabled)
	o.duration("CACHE_TTL", &cfg.Cache.TTL)
	o.str("RENDER_DEFAULT_MAX_WIDTH", &cfg.Render.DefaultMaxWidth)
	o.str("RENDER_BOXED_MAX_WIDTH", &cfg.Render.BoxedMaxWidth)
	o.str("RENDER_BOXED_PADDING", &cfg.Render.BoxedPadding)
	o.duration("RENDER_HTML_CACHE_TTL", &cfg.Render.HTMLCacheTTL)
	o.str("RENDER_ORIGIN", &cfg.Render.Origin)
	o.duration("EDITOR_SESSION_TTL", &cfg.Editor.SessionTTL)
	o.str("HTTP_ADDR", &cfg.HTTP.Addr)
	o.str("HTTP_BASE_PATH", &cfg.HTTP.BasePath)
	o.str("MARKDOWN_DIR", &cfg.Markdown.Dir)
	o.str("MARKDOWN_PATTERN", &cfg.Markdown.Pattern)
	o.boolean("MARKDOWN_RECURSIVE", &cfg.Markdown.Recursive)
	o.boolean("FEATURE_LOGGER", &cfg.Features.Logger)
	o.boolean("FEATURE_MARKDOWN_IMPORT", &cfg.Features.MarkdownImport)
	o.boolean("FEATURE_COMMANDS", &cfg.Features.Commands)
	o.str("LOG_PROVIDER", &cfg.Logging.Provider)
	o.str("LOG_LEVEL", &cfg.Logging.Level)
	o.str("LOG_FORMAT", &cfg.Logging.Format)
	o.boolean("LOG_ADD_SOURCE", &cfg.Logging.AddSource)
	o.list("LOG_FOCUS", &cfg.Logging.Focus)

	if o.err != nil {
		return Config{}, o.err
	}
	return cfg, nil
}

type overlay struct {
	lookup LookupFunc
	err    error
}

func (o *overlay) get(key string) (string, bool) {
	if o.err != nil || o.lookup == nil {
		return "", false
	}
	value, ok := o.lookup(EnvPrefix + key)
	if !ok {
		return "", false
	}
	return strings.TrimSpace(value), true
}

func (o *overlay) str(key string, target *string) {
	if value, ok := o.get(key); ok {
		*target = value
	}
}

func (o *overlay) boolean(key string, target *bool) {
	value, ok := o.get(key)
	if !ok || value == "" {
		return
	}
	parsed, err := strconv.ParseBool(value)
	if err != nil {
		o.err = fmt.Errorf("%w: %s%s=%q", ErrEnvValueInvalid, EnvPrefix, key, value)
		return
	}
	*target = parsed
}

func (o *overlay) duration(key string, target *time.Duration) {
	value, ok := o.get(key)
	if !ok || value == "" {
		return
	}
	parsed, err := time.ParseDuration(value)
	if err != nil {
		o.err = fmt.Errorf("%w: %s%s=%q", ErrEnvValueInvalid, EnvPrefix, key, value)
		return
	}
	*target = parsed
}

func (o *overlay) list(key string, target *[]string) {
	value, ok := o.get(key)
	if !ok {
		return
	}
	out := []string{}
	for _, part := range strings.Split(value, ",") {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	*target = out
}
