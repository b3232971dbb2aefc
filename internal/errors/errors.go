// Package errors wraps github.com/cockroachdb/errors and declares the error
// kinds a generation run can fail with.
//
// Every kind is a sentinel that callers test with Is:
//
//	if errors.Is(err, errors.ErrDirectoryCreation) {
//	    // the output path could not be created
//	}
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
	Is            = crdb.Is
	IsAny         = crdb.IsAny
	As            = crdb.As
	Unwrap        = crdb.Unwrap
	UnwrapAll     = crdb.UnwrapAll
	GetAllHints   = crdb.GetAllHints
	GetAllDetails = crdb.GetAllDetails
	FlattenHints  = crdb.FlattenHints
)

// Error kinds. All of them abort the current generation invocation.
var (
	// ErrDirectoryCreation means the output directory could not be created.
	ErrDirectoryCreation = New("cannot create output directory")

	// ErrWrite means the directory exists but the file could not be written.
	ErrWrite = New("cannot write output file")

	// ErrReflection means the pattern definition, or one of its methods,
	// could not be located or introspected.
	ErrReflection = New("cannot reflect pattern")

	// ErrInvalidSchema means a schema document failed validation.
	ErrInvalidSchema = New("invalid schema")

	// ErrInvalidConfig means generator options could not be resolved.
	ErrInvalidConfig = New("invalid configuration")
)

// DirectoryCreation marks err as ErrDirectoryCreation for path.
func DirectoryCreation(err error, path string) error {
	return Mark(Wrapf(err, "creating path %s", path), ErrDirectoryCreation)
}

// Write marks err as ErrWrite for file.
func Write(err error, file string) error {
	return Mark(Wrapf(err, "writing %s", file), ErrWrite)
}

// Reflection creates an ErrReflection with a formatted message.
func Reflection(format string, args ...interface{}) error {
	return Mark(Newf(format, args...), ErrReflection)
}

// WrapReflection marks err as ErrReflection with context.
func WrapReflection(err error, context string) error {
	return Mark(Wrap(err, context), ErrReflection)
}

// InvalidSchema creates an ErrInvalidSchema with a formatted message.
func InvalidSchema(format string, args ...interface{}) error {
	return Mark(Newf(format, args...), ErrInvalidSchema)
}

// InvalidConfig marks err as ErrInvalidConfig with context.
func InvalidConfig(err error, context string) error {
	return Mark(Wrap(err, context), ErrInvalidConfig)
}
