// Package apperrors defines the structured error types and exit codes of the
// karatsuba command, separating configuration, validation, memory-budget and
// calculation failures while keeping the underlying cause inspectable.
//
// Errors are wrapped with fmt.Errorf and %w; every wrapper type implements
// Unwrap so errors.Is and errors.As see through it.
package apperrors
