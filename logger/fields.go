package logger

import (
	"go.uber.org/zap"
)

// Standard field names for consistent structured logging across tscr.
// Use these constants instead of raw strings to ensure consistency.
const (
	// Files and positions
	FieldFile   = "file"
	FieldOutput = "output"
	FieldLine   = "line"
	FieldColumn = "column"

	// Tree
	FieldNodeKind  = "node_kind"
	FieldNodeType  = "node_type" // raw tree-sitter node type
	FieldNodeCount = "node_count"

	// Generation options
	FieldIndentWidth = "indent_width"
	FieldFragment    = "fragment"

	// Timing and sizes
	FieldDurationMS = "duration_ms"
	FieldBytes      = "bytes"

	// Errors
	FieldError = "error"

	// Components
	FieldComponent = "component"
)

// ComponentLogger returns a named logger for a specific component.
//
// Example:
//
//	type Watcher struct {
//	    logger *zap.SugaredLogger
//	}
//
//	func New() *Watcher {
//	    return &Watcher{logger: logger.ComponentLogger("watch")}
//	}
func ComponentLogger(name string) *zap.SugaredLogger {
	return Logger.Named(name)
}

// ChildLogger creates a child logger with additional context.
//
// Example:
//
//	fileLogger := logger.ChildLogger(baseLogger, logger.FieldFile, path)
func ChildLogger(parent *zap.SugaredLogger, keysAndValues ...interface{}) *zap.SugaredLogger {
	return parent.With(keysAndValues...)
}
