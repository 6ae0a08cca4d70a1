// Package logging provides the small structured logging interface handed to
// multipliers and to the orchestration layer through their options. The
// backend is zerolog; the CLI wires in the global zerolog logger.
package logging
