package vmem

import (
	"sync/atomic"

	"go.uber.org/zap"
)

var logger atomic.Pointer[zap.Logger]

func init() {
	l, err := zap.NewProduction()
	if err != nil {
		l = zap.NewNop()
	}
	logger.Store(l)
}

// SetLogger overrides the logger used for best-effort diagnostics on drop
// paths (ProtectGuard.Close, LockGuard.Close, Allocation.Release). A nil
// logger installs a no-op logger, silencing these diagnostics entirely.
func SetLogger(l *zap.Logger) {
	if l == nil {
		l = zap.NewNop()
	}
	logger.Store(l)
}

func logDropError(op string, err error, fields ...zap.Field) {
	if err == nil {
		return
	}
	fields = append(fields, zap.Error(err))
	logger.Load().Warn("vmem: "+op+" failed during release; swallowed", fields...)
}
