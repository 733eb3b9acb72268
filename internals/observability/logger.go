package observability

import (
	"log"
	"os"
	"sync"

	"go.uber.org/zap"
)

var (
	once   sync.Once
	logger *zap.Logger
)

// L returns the process-wide structured logger. Secondary (best-effort)
// operations report their failures here instead of surfacing them to the
// caller: slot-mirror sync, notification inserts, live-event publish.
func L() *zap.Logger {
	once.Do(func() {
		var err error
		if os.Getenv("APP_ENV") == "production" {
			logger, err = zap.NewProduction()
		} else {
			logger, err = zap.NewDevelopment()
		}
		if err != nil {
			log.Fatalf("zap init: %v", err)
		}
	})
	return logger
}

// Sync flushes buffered log entries. Call on shutdown.
func Sync() {
	if logger != nil {
		_ = logger.Sync()
	}
}
