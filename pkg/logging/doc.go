// Package logging configures slog-based operational logging for contractd.
//
// All components accept a *slog.Logger and default to a no-op logger, so
// library consumers pay nothing unless they opt in. The CLI wires a real
// logger built from the --log-level and --log-format flags.
package logging
