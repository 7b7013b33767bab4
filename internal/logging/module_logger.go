package logging

import (
	"context"
	"strings"

	"github.com/pagehaven/go-builder/pkg/interfaces"
)

const (
	rootModule     = "builder"
	projectsModule = "builder.projects"
	pagesModule    = "builder.pages"
	blocksModule   = "builder.blocks"
	themesModule   = "builder.themes"
	editorModule   = "builder.editor"
	mediaModule    = "builder.media"
	httpModule     = "builder.http"
)

const (
	fieldUploadKey   = "upload_key"
	fieldUploadField = "upload_field"
	fieldPageID      = "page_id"
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

	if fieldsLogger, ok := logger.(interfaces.FieldsLogger); ok {
		return fieldsLogger.WithFields(map[string]any{
			"module": module,
		})
	}

	return WithFields(logger, map[string]any{
		"module": module,
	})
}

// ProjectsLogger returns the logger namespace reserved for project services.
func ProjectsLogger(provider interfaces.LoggerProvider) interfaces.Logger {
	return ModuleLogger(provider, projectsModule)
}

// PagesLogger returns the logger namespace reserved for page services.
func PagesLogger(provider interfaces.LoggerProvider) interfaces.Logger {
	return ModuleLogger(provider, pagesModule)
}

// BlocksLogger returns the logger namespace reserved for block services.
func BlocksLogger(provider interfaces.LoggerProvider) interfaces.Logger {
	return ModuleLogger(provider, blocksModule)
}

// ThemesLogger returns the logger namespace reserved for theme services.
func ThemesLogger(provider interfaces.LoggerProvider) interfaces.Logger {
	return ModuleLogger(provider, themesModule)
}

// EditorLogger returns the logger namespace reserved for editor sessions.
func EditorLogger(provider interfaces.LoggerProvider) interfaces.Logger {
	return ModuleLogger(provider, editorModule)
}

// MediaLogger returns the logger namespace reserved for media uploads.
func MediaLogger(provider interfaces.LoggerProvider) interfaces.Logger {
	return ModuleLogger(provider, mediaModule)
}

// HTTPLogger returns the logger namespace reserved for the public surface.
func HTTPLogger(provider interfaces.LoggerProvider) interfaces.Logger {
	return ModuleLogger(provider, httpModule)
}

// WithUploadContext enriches the provided logger with common upload fields
// such as object key and the content field being replaced. Empty values are
// ignored.
func WithUploadContext(logger interfaces.Logger, key, field string) interfaces.Logger {
	fields := map[string]any{}
	if trimmed := strings.TrimSpace(key); trimmed != "" {
		fields[fieldUploadKey] = trimmed
	}
	if trimmed := strings.TrimSpace(field); trimmed != "" {
		fields[fieldUploadField] = trimmed
	}
	return WithFields(logger, fields)
}

// WithPageContext attaches the page identifier to the logger.
func WithPageContext(logger interfaces.Logger, pageID string) interfaces.Logger {
	if strings.TrimSpace(pageID) == "" {
		return logger
	}
	return WithFields(logger, map[string]any{fieldPageID: pageID})
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
