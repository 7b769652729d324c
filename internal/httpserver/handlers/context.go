package handlers

import (
	"github.com/eventhive/events-service/internal/app"
)

// Context holds dependencies for HTTP handlers.
// This enables dependency injection for handlers.
type Context struct {
	// Events provides access to the event lifecycle use cases.
	Events *app.Service
}

// DefaultContext is the global handler context.
// It is set by the server during initialization.
var DefaultContext *Context

// SetContext sets the default handler context.
func SetContext(ctx *Context) {
	DefaultContext = ctx
}

// GetContext returns the default handler context.
// Returns nil if not initialized.
func GetContext() *Context {
	return DefaultContext
}
