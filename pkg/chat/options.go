package chat

import loggerpkg "github.com/owenwolfe/ChatGPT-Terminal/pkg/logger"

// SessionOption configures optional runtime dependencies for Session.
type SessionOption func(*sessionDeps)

type sessionDeps struct {
	logger loggerpkg.Logger
}

// WithLogger injects a logger dependency.
func WithLogger(l loggerpkg.Logger) SessionOption {
	return func(d *sessionDeps) {
		d.logger = l
	}
}
