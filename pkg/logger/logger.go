package logger

import (
	"os"

	"go.uber.org/zap"
)

var log *zap.Logger

// Init builds the global logger. Production config when ENV=production,
// development config otherwise.
func Init() {
	var err error
	if os.Getenv("ENV") == "production" {
		log, err = zap.NewProduction()
	} else {
		log, err = zap.NewDevelopment()
	}
	if err != nil {
		panic("failed to initialize logger: " + err.Error())
	}
	zap.ReplaceGlobals(log)
}

// L returns the global logger.
func L() *zap.Logger {
	if log == nil {
		Init()
	}
	return log
}

// Sync flushes any buffered log entries.
func Sync() {
	if log != nil {
		_ = log.Sync()
	}
}
