package runtimeconfig

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

var ErrLandingURLRequired = errors.New("builder config: landing url is required")
var ErrStorageBucketRequired = errors.New("builder config: media bucket is required when media storage is enabled")
var ErrCacheRequiresEnabled = errors.New("builder config: cache TTL requires cache to be enabled")
var ErrLoggingProviderRequired = errors.New("builder config: logging provider is required when logging feature is enabled")
var ErrLoggingProviderUnknown = errors.New("builder config: logging provider is invalid")
var ErrLoggingLevelInvalid = errors.New("builder config: logging level is invalid")
var ErrLoggingFormatInvalid = errors.New("builder config: logging format is invalid")

// Config aggregates feature flags and adapter bindings for the builder
// module. Fields intentionally use simple types so host applications can
// extend them later.
type Config struct {
	Enabled  bool
	Render   RenderConfig
	Storage  StorageConfig
	Media    MediaConfig
	Cache    CacheConfig
	Themes   ThemeConfig
	Logging  LoggingConfig
	Features Features
}

// RenderConfig captures behaviour of the public rendering surface.
type RenderConfig struct {
	// LandingURL is where visitors land when they hit an unpublished or
	// missing page.
	LandingURL string
}

// StorageConfig lists identifiers for storage-related dependencies.
type StorageConfig struct {
	Provider string
}

// MediaConfig captures the S3-compatible endpoint for file uploads.
type MediaConfig struct {
	Enabled   bool
	Endpoint  string
	Region    string
	AccessKey string
	SecretKey string
	Bucket    string
	PublicURL string
}

// CacheConfig captures cache behaviour toggles.
type CacheConfig struct {
	Enabled    bool
	DefaultTTL time.Duration
}

// ThemeConfig captures theming defaults.
type ThemeConfig struct {
	// SystemDefaultName labels the built-in fallback theme.
	SystemDefaultName string
}

// LoggingConfig captures provider-specific options for runtime logging.
type LoggingConfig struct {
	Provider  string
	Level     string
	Format    string
	AddSource bool
	Focus     []string
}

// Features toggles module functionality.
type Features struct {
	Themes bool
	Media  bool
	Logger bool
}

// DefaultConfig returns opinionated defaults for a self-hosted deployment.
func DefaultConfig() Config {
	return Config{
		Enabled: true,
		Render: RenderConfig{
			LandingURL: "/",
		},
		Storage: StorageConfig{
			Provider: "bun",
		},
		Cache: CacheConfig{
			Enabled:    true,
			DefaultTTL: time.Minute,
		},
		Themes: ThemeConfig{
			SystemDefaultName: "system-default",
		},
		Features: Features{
			Themes: true,
		},
		Logging: LoggingConfig{
			Provider: "console",
			Level:    "info",
			Format:   "",
		},
	}
}

// Validate performs high-level consistency checks.
func (cfg Config) Validate() error {
	if strings.TrimSpace(cfg.Render.LandingURL) == "" {
		return ErrLandingURLRequired
	}
	if cfg.Features.Media && cfg.Media.Enabled {
		if strings.TrimSpace(cfg.Media.Bucket) == "" {
			return ErrStorageBucketRequired
		}
	}
	if !cfg.Cache.Enabled && cfg.Cache.DefaultTTL > 0 {
		return ErrCacheRequiresEnabled
	}
	if cfg.Features.Logger {
		provider := normalizeProvider(cfg.Logging.Provider)
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

func normalizeProvider(provider string) string {
	return strings.ToLower(strings.TrimSpace(provider))
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
