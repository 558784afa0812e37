// Package logging defines the structured-logging interface used across the
// board services, the web server and the terminal client.
package logging

import "context"

// Logger is a context-aware, structured logger. Args are alternating keys
// and values:
//
//	log.Info(ctx, "ad created", "id", ad.ID, "owner", ad.UserEmail)
type Logger interface {
	Debug(ctx context.Context, msg string, args ...any)
	Info(ctx context.Context, msg string, args ...any)
	Warn(ctx context.Context, msg string, args ...any)
	Error(ctx context.Context, msg string, args ...any)

	// With returns a child logger that adds args to every record.
	With(args ...any) Logger
}
