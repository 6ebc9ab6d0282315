// Package errors provides error handling for tscr.
//
// This package re-exports github.com/cockroachdb/errors, providing:
//   - Stack traces for debugging
//   - Error wrapping and context
//   - User-facing hints and details
//
// Usage:
//
//	// Create new error
//	err := errors.New("something went wrong")
//
//	// Wrap with context
//	if err := render(node); err != nil {
//	    return errors.Wrap(err, "failed to render class")
//	}
//
//	// Add hints for users
//	return errors.WithHint(err, "declare the array element type explicitly")
//
//	// Check errors
//	if errors.Is(err, errors.ErrUnsupportedSyntax) {
//	    // report and skip the file
//	}
//
// For full documentation see: https://pkg.go.dev/github.com/cockroachdb/errors
package errors

import (
	crdb "github.com/cockroachdb/errors"
)

// Core error creation and wrapping
var (
	New          = crdb.New
	Newf         = crdb.Newf
	Wrap         = crdb.Wrap
	Wrapf        = crdb.Wrapf
	WithStack    = crdb.WithStack
	WithMessage  = crdb.WithMessage
	WithMessagef = crdb.WithMessagef
	Mark         = crdb.Mark
)

// User-facing messages and details
var (
	WithHint    = crdb.WithHint
	WithHintf   = crdb.WithHintf
	WithDetail  = crdb.WithDetail
	WithDetailf = crdb.WithDetailf
)

// Error inspection
var (
	Is             = crdb.Is
	IsAny          = crdb.IsAny
	As             = crdb.As
	Unwrap         = crdb.Unwrap
	UnwrapAll      = crdb.UnwrapAll
	GetAllHints    = crdb.GetAllHints
	GetAllDetails  = crdb.GetAllDetails
	FlattenHints   = crdb.FlattenHints
	FlattenDetails = crdb.FlattenDetails
)

// Assertions
var (
	AssertionFailedf = crdb.AssertionFailedf
)

// Sentinel errors shared by the generator, the front end and the CLI.
// Use these with errors.Is(); wrap them to add context while preserving the type.
var (
	// ErrUnsupportedSyntax indicates a node kind, modifier combination or
	// operator that has no Crystal rendering rule
	ErrUnsupportedSyntax = New("unsupported syntax")

	// ErrTypeMapping indicates a structurally malformed type annotation
	ErrTypeMapping = New("type mapping failed")

	// ErrInvalidTree indicates the input tree or generate options violate the input contract
	ErrInvalidTree = New("invalid syntax tree")

	// ErrParse indicates the TypeScript source could not be parsed into a tree
	ErrParse = New("parse failed")
)

// IsUnsupportedSyntaxError checks if an error is or wraps ErrUnsupportedSyntax
func IsUnsupportedSyntaxError(err error) bool {
	return err != nil && Is(err, ErrUnsupportedSyntax)
}

// IsTypeMappingError checks if an error is or wraps ErrTypeMapping
func IsTypeMappingError(err error) bool {
	return err != nil && Is(err, ErrTypeMapping)
}

// IsParseError checks if an error is or wraps ErrParse
func IsParseError(err error) bool {
	return err != nil && Is(err, ErrParse)
}

// NewInvalidTreeError creates an invalid-tree error with a formatted message
func NewInvalidTreeError(format string, args ...interface{}) error {
	return Wrap(ErrInvalidTree, Newf(format, args...).Error())
}

// NewParseError creates a parse error with a formatted message
func NewParseError(format string, args ...interface{}) error {
	return Wrap(ErrParse, Newf(format, args...).Error())
}
