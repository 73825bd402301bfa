package ledger

import (
	"go.uber.org/zap"
)

// options defines all configuration options for a Ledger.
type options struct {
	logger *zap.Logger
}

// Option is a function that configures the ledger options.
type Option func(*options)

// WithLogger sets the logger for the ledger and, through Run, its store.
func WithLogger(l *zap.Logger) Option {
	return func(o *options) {
		if l != nil {
			o.logger = l
		}
	}
}

// defaultOptions returns the default configuration.
func defaultOptions() options {
	return options{
		logger: zap.NewNop(),
	}
}
