package ledger

import (
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/davidvella/sales/storage"
)

// Run opens the ledger file at path, calls fn with a Ledger over it and
// closes the file on every return path. Errors from fn and from closing
// are both reported.
func Run(path string, fn func(*Ledger) error, opts ...Option) (err error) {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}

	s, err := storage.Open(path, storage.WithLogger(o.logger))
	if err != nil {
		return err
	}
	defer func() {
		if cerr := s.Close(); cerr != nil {
			err = errors.Join(err, fmt.Errorf("failed to close ledger: %w", cerr))
		}
	}()

	if s.Created() {
		o.logger.Info("ledger file was not found, created a new one", zap.String("path", path))
	}

	return fn(New(s, opts...))
}
