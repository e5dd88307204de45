package runtimeconfig

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

var (
	ErrStorageProviderUnknown    = errors.New("pagekit config: storage provider is invalid")
	ErrStorageDSNRequired        = errors.New("pagekit config: storage dsn is required for sql providers")
	ErrCacheTTLInvalid           = errors.New("pagekit config: cache ttl must be positive when cache is enabled")
	ErrRenderWidthRequired       = errors.New("pagekit config: render container widths are required")
	ErrHTMLCacheTTLInvalid       = errors.New("pagekit config: html cache ttl must be zero or positive")
	ErrSessionTTLInvalid         = errors.New("pagekit config: editor session ttl must be positive")
	ErrHTTPAddrRequired          = errors.New("pagekit config: http address is required")
	ErrMarkdownImportDirRequired = errors.New("pagekit config: markdown import directory is required when markdown import is enabled")
	ErrLoggingProviderRequired   = errors.New("pagekit config: logging provider is required when logging feature is enabled")
	ErrLoggingProviderUnknown    = errors.New("pagekit config: logging provider is invalid")
	ErrLoggingLevelInvalid       = errors.New("pagekit config: logging level is invalid")
	ErrLoggingFormatInvalid      = errors.New("pagekit config: logging format is invalid")
	ErrEnvValueInvalid           = errors.New("pagekit config: environment value is invalid")
)

// Config aggregates feature flags and adapter bindings for the page module.
type Config struct {
	Storage  StorageConfig
	Cache    CacheConfig
	Render   RenderConfig
	Editor   EditorConfig
	HTTP     HTTPConfig
	Markdown MarkdownConfig
	Logging  LoggingConfig
	Features Features
}

// StorageConfig selects the page store.
type StorageConfig struct {
	// Provider is one of memory, sqlite or postgres.
	Provider string
	DSN      string
}

// CacheConfig controls the go-repository-cache layer in front of SQL storage.
type CacheConfig struct {
	Enabled bool
	TTL     time.Duration
}

// RenderConfig captures container sizing and public rendering options.
type RenderConfig struct {
	DefaultMaxWidth string
	BoxedMaxWidth   string
	BoxedPadding    string
	// HTMLCacheTTL of zero disables caching of public pages.
	HTMLCacheTTL time.Duration
	// Origin is the public origin profile URLs are derived from.
	Origin string
}

// EditorConfig controls editor sessions.
type EditorConfig struct {
	SessionTTL time.Duration
}

// HTTPConfig controls the server binary.
type HTTPConfig struct {
	Addr     string
	BasePath string
}

// MarkdownConfig captures markdown import behaviour.
type MarkdownConfig struct {
	Dir       string
	Pattern   string
	Recursive bool
}

// Features toggles module functionality.
type Features struct {
	Logger         bool
	MarkdownImport bool
	Commands       bool
}

// LoggingConfig captures provider-specific options for runtime logging.
type LoggingConfig struct {
	Provider  string
	Level     string
	Format    string
	AddSource bool
	Focus     []string
}

// DefaultConfig returns defaults for an in-memory development server.
func DefaultConfig() Config {
	return Config{
		Storage: StorageConfig{
			Provider: "memory",
		},
		Cache: CacheConfig{
			Enabled: false,
			TTL:     time.Minute,
		},
		Render: RenderConfig{
			DefaultMaxWidth: "1280px",
			BoxedMaxWidth:   "1024px",
			BoxedPadding:    "2rem",
			HTMLCacheTTL:    5 * time.Minute,
		},
		Editor: EditorConfig{
			SessionTTL: 30 * time.Minute,
		},
		HTTP: HTTPConfig{
			Addr:     ":8080",
			BasePath: "/api",
		},
		Markdown: MarkdownConfig{
			Dir:       "content",
			Pattern:   "*.md",
			Recursive: true,
		},
		Features: Features{
			Commands: true,
		},
		Logging: LoggingConfig{
			Provider: "console",
			Level:    "info",
		},
	}
}

// Validate performs high-level consistency checks.
func (cfg Config) Validate() error {
	switch normalize(cfg.Storage.Provider) {
	case "memory":
	case "sqlite", "postgres":
		if strings.TrimSpace(cfg.Storage.DSN) == "" {
			return fmt.Errorf("%w: %s", ErrStorageDSNRequired, normalize(cfg.Storage.Provider))
		}
	default:
		return fmt.Errorf("%w: %s", ErrStorageProviderUnknown, cfg.Storage.Provider)
	}
	if cfg.Cache.Enabled && cfg.Cache.TTL <= 0 {
		return ErrCacheTTLInvalid
	}
	if strings.TrimSpace(cfg.Render.DefaultMaxWidth) == "" || strings.TrimSpace(cfg.Render.BoxedMaxWidth) == "" {
		return ErrRenderWidthRequired
	}
	if cfg.Render.HTMLCacheTTL < 0 {
		return ErrHTMLCacheTTLInvalid
	}
	if cfg.Editor.SessionTTL <= 0 {
		return ErrSessionTTLInvalid
	}
	if strings.TrimSpace(cfg.HTTP.Addr) == "" {
		return ErrHTTPAddrRequired
	}
	if cfg.Features.MarkdownImport && strings.TrimSpace(cfg.Markdown.Dir) == "" {
		return ErrMarkdownImportDirRequired
	}
	if cfg.Features.Logger {
		provider := normalize(cfg.Logging.Provider)
		if provider == "" {
			return ErrLoggingProviderRequired
		}
		if !isSupportedProvider(provider) {
			return fmt.Errorf("%w: %s", ErrLoggingProviderUnknown, provider)
		}
		if level := strings.TrimSpace(cfg.Logging.Level); level != "" && !isSupportedLevel(level) {
			return fmt.Errorf("%w: %s", ErrLoggingLevelInvalid, level)
		}
		if provider == "gologger" {
			if format := strings.TrimSpace(cfg.Logging.Format); format != "" && !isSupportedFormat(format) {
				return fmt.Errorf("%w: %s", ErrLoggingFormatInvalid, format)
			}
		}
	}
	return nil
}

func normalize(value string) string {
	return strings.ToLower(strings.TrimSpace(value))
}

func isSupportedProvider(provider string) bool {
	switch provider {
	case "console", "gologger":
		return true
	default:
		return false
	}
}

func isSupportedLevel(level string) bool {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "trace", "debug", "info", "warn", "warning", "error", "fatal":
		return true
	default:
		return false
	}
}

func isSupportedFormat(format string) bool {
	switch strings.ToLower(strings.TrimSpace(format)) {
	case "json", "console", "pretty":
		return true
	default:
		return false
	}
}
