package builder

import "github.com/pagehaven/go-builder/internal/runtimeconfig"

var (
	ErrLandingURLRequired      = runtimeconfig.ErrLandingURLRequired
	ErrStorageBucketRequired   = runtimeconfig.ErrStorageBucketRequired
	ErrCacheRequiresEnabled    = runtimeconfig.ErrCacheRequiresEnabled
	ErrLoggingProviderRequired = runtimeconfig.ErrLoggingProviderRequired
	ErrLoggingProviderUnknown  = runtimeconfig.ErrLoggingProviderUnknown
	ErrLoggingLevelInvalid     = runtimeconfig.ErrLoggingLevelInvalid
	ErrLoggingFormatInvalid    = runtimeconfig.ErrLoggingFormatInvalid
)

type (
	Config        = runtimeconfig.Config
	RenderConfig  = runtimeconfig.RenderConfig
	StorageConfig = runtimeconfig.StorageConfig
	MediaConfig   = runtimeconfig.MediaConfig
	CacheConfig   = runtimeconfig.CacheConfig
	ThemeConfig   = runtimeconfig.ThemeConfig
	LoggingConfig = runtimeconfig.LoggingConfig
	Features      = runtimeconfig.Features
)

// DefaultConfig returns opinionated defaults for a self-hosted deployment.
func DefaultConfig() Config {
	return runtimeconfig.DefaultConfig()
}
