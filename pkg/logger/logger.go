// Package logger ilova bo'ylab ishlatiladigan InfoLogger va ErrorLogger.
package logger

import (
	"log"
	"os"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var (
	// InfoLogger Init dan oldin stdout ga yozadi
	InfoLogger = log.New(os.Stdout, "INFO: ", log.LstdFlags)
	// ErrorLogger Init dan oldin stderr ga yozadi
	ErrorLogger = log.New(os.Stderr, "ERROR: ", log.LstdFlags)

	base *zap.Logger
)

// Init zap asosidagi loggerlarni o'rnatadi. level zap darajasi nomi ("debug", "warn", ...);
// bo'sh yoki noto'g'ri bo'lsa info.
func Init(level string) {
	cfg := zap.NewProductionConfig()
	cfg.Encoding = "console"
	cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	if lvl, err := zapcore.ParseLevel(strings.TrimSpace(level)); err == nil && strings.TrimSpace(level) != "" {
		cfg.Level = zap.NewAtomicLevelAt(lvl)
	}

	l, err := cfg.Build()
	if err != nil {
		ErrorLogger.Printf("zap logger yaratilmadi, stdlib logger qoldi: %v", err)
		return
	}
	base = l
	InfoLogger = zap.NewStdLog(l)
	if errLog, err := zap.NewStdLogAt(l, zapcore.ErrorLevel); err == nil {
		ErrorLogger = errLog
	}
}

// L returns the structured logger, or a no-op logger before Init.
func L() *zap.Logger {
	if base == nil {
		return zap.NewNop()
	}
	return base
}

// Sync flushes buffered log entries.
func Sync() {
	if base != nil {
		_ = base.Sync()
	}
}
