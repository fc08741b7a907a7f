package logging

import (
	"context"
	"strings"

	"github.com/apexmd/apex/pkg/interfaces"
)

const (
	rootModule        = "apex"
	preprocessModule  = "apex.preprocess"
	parserModule      = "apex.parser"
	injectModule      = "apex.inject"
	postprocessModule = "apex.postprocess"
	pluginModule      = "apex.plugin"
)

const (
	fieldDocumentPath = "document_path"
	fieldStageName    = "stage"
	fieldPluginID     = "plugin_id"
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

// PreprocessLogger returns the logger namespace reserved for the
// preprocessor chain (frontmatter extraction, abbreviations, includes,
// Critic Markup, and the rest of the text-level passes).
func PreprocessLogger(provider interfaces.LoggerProvider) interfaces.Logger {
	return ModuleLogger(provider, preprocessModule)
}

// ParserLogger returns the logger namespace reserved for the goldmark
// parser adapter and its registered extensions.
func ParserLogger(provider interfaces.LoggerProvider) interfaces.Logger {
	return ModuleLogger(provider, parserModule)
}

// InjectLogger returns the logger namespace reserved for tree rewriting and
// attribute injection.
func InjectLogger(provider interfaces.LoggerProvider) interfaces.Logger {
	return ModuleLogger(provider, injectModule)
}

// PostprocessLogger returns the logger namespace reserved for the HTML
// post-processor chain.
func PostprocessLogger(provider interfaces.LoggerProvider) interfaces.Logger {
	return ModuleLogger(provider, postprocessModule)
}

// PluginLogger returns the logger namespace reserved for the external
// plugin host.
func PluginLogger(provider interfaces.LoggerProvider) interfaces.Logger {
	return ModuleLogger(provider, pluginModule)
}

// WithDocumentContext enriches the provided logger with the document path,
// the active stage name, and (for plugin invocations) the plugin id. Empty
// values are ignored.
func WithDocumentContext(logger interfaces.Logger, path, stage, pluginID string) interfaces.Logger {
	fields := map[string]any{}
	if trimmed := strings.TrimSpace(path); trimmed != "" {
		fields[fieldDocumentPath] = trimmed
	}
	if trimmed := strings.TrimSpace(stage); trimmed != "" {
		fields[fieldStageName] = trimmed
	}
	if trimmed := strings.TrimSpace(pluginID); trimmed != "" {
		fields[fieldPluginID] = trimmed
	}
	return WithFields(logger, fields)
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
