// Package logger configures the process-wide log/slog JSON logger and
// carries request-scoped loggers, tagged with a trace_id, through a
// context.Context.
package logger
