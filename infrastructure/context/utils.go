// Package context holds shared context deadlines.
package context

import (
	"context"
	"time"
)

// DefaultPingTimeout bounds health probes against dependencies.
const DefaultPingTimeout = 5 * time.Second

// WithPingTimeout derives a probe context from parent.
func WithPingTimeout(parent context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(parent, DefaultPingTimeout)
}
