// Package errors provides the classified error type used across the archive
// renderer.
//
// Errors carry a category (config, archive, render, filesystem, ...), a
// severity and a small structured context. Rendering problems for a single
// document are warnings and never abort a run; sink and snapshot failures are
// fatal.
//
// Example usage:
//
//	err := errors.WrapError(cause, errors.CategoryFileSystem, "write output file").
//		Fatal().
//		WithContext("path", path).
//		Build()
package errors
