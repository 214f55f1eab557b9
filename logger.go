package providergen

import (
	"sync"

	"go.uber.org/zap"

	"github.com/wippyai/provider-gen/visitor"
)

var (
	logger     *zap.Logger
	loggerOnce sync.Once
)

// Logger returns the providergen package's logger instance.
// It uses a no-op logger by default.
func Logger() *zap.Logger {
	loggerOnce.Do(func() {
		if logger == nil {
			logger = zap.NewNop()
		}
	})
	return logger
}

// SetLogger configures the providergen package's logger and the traversal
// logger. This must be called before any generation.
func SetLogger(l *zap.Logger) {
	logger = l
	visitor.SetLogger(l)
}
