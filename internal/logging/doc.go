// Package logging provides structured logging helpers built on log/slog.
//
// It defines the canonical attribute keys used across the codebase and
// small constructors for them, plus sanitizers for values that must never
// reach the logs verbatim (tokens, email addresses).
package logging
