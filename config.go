package pagekit

import "github.com/goliatone/go-pagekit/internal/runtimeconfig"

var (
	ErrStorageProviderUnknown    = runtimeconfig.ErrStorageProviderUnknown
	ErrStorageDSNRequired        = runtimeconfig.ErrStorageDSNRequired
	ErrCacheTTLInvalid           = runtimeconfig.ErrCacheTTLInvalid
	ErrRenderWidthRequired       = runtimeconfig.ErrRenderWidthRequired
	ErrHTMLCacheTTLInvalid       = runtimeconfig.ErrHTMLCacheTTLInvalid
	ErrSessionTTLInvalid         = runtimeconfig.ErrSessionTTLInvalid
	ErrHTTPAddrRequired          = runtimeconfig.ErrHTTPAddrRequired
	ErrMarkdownImportDirRequired = runtimeconfig.ErrMarkdownImportDirRequired
	ErrLoggingProviderRequired   = runtimeconfig.ErrLoggingProviderRequired
	ErrLoggingProviderUnknown    = runtimeconfig.ErrLoggingProviderUnknown
	ErrLoggingLevelInvalid       = runtimeconfig.ErrLoggingLevelInvalid
	ErrLoggingFormatInvalid      = runtimeconfig.ErrLoggingFormatInvalid
	ErrEnvValueInvalid           = runtimeconfig.ErrEnvValueInvalid
)

type (
	Config         = runtimeconfig.Config
	StorageConfig  = runtimeconfig.StorageConfig
	CacheConfig    = runtimeconfig.CacheConfig
	RenderConfig   = runtimeconfig.RenderConfig
	EditorConfig   = runtimeconfig.EditorConfig
	HTTPConfig     = runtimeconfig.HTTPConfig
	MarkdownConfig = runtimeconfig.MarkdownConfig
	Features       = runtimeconfig.Features
	LoggingConfig  = runtimeconfig.LoggingConfig
)

// DefaultConfig returns the baseline configuration: in-memory storage,
// console logging and command handlers enabled.
func DefaultConfig() Config {
	return runtimeconfig.DefaultConfig()
}

// ConfigFromEnv overlays PAGEKIT_* environment variables onto cfg.
func ConfigFromEnv(cfg Config) (Config, error) {
	return runtimeconfig.FromEnv(cfg)
}
