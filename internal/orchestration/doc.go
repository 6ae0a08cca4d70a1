// Package orchestration runs one or more multipliers concurrently on the same
// operands and compares their products. It reaches the presentation layer
// only through the ProgressReporter, ResultPresenter and ErrorHandler
// interfaces.
package orchestration
