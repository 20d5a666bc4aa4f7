// Package logger provides slog attribute helpers shared across the module.
//
// Helpers follow the empty Attr pattern: passing a nil error or empty value
// yields an attribute slog silently drops, so call sites never need nil
// checks:
//
//	log.Warn("refresh failed", logger.Error(err))
//	log.Info("logged in", logger.Username(user.Username))
//
// All packages in this module accept a *slog.Logger via a WithLogger option
// and default to a discarding logger, so logging is opt-in everywhere.
package logger
