package logger

import (
	"testing"

	"go.uber.org/zap/zapcore"
)

func TestLoggersUsableBeforeInit(t *testing.T) {
	if InfoLogger == nil || ErrorLogger == nil {
		t.Fatal("default loggers must not be nil")
	}
	if L() == nil {
		t.Fatal("L() must return a logger before Init")
	}
	Sync()
}

func TestInitReplacesLoggers(t *testing.T) {
	prevInfo, prevErr := InfoLogger, ErrorLogger
	t.Cleanup(func() {
		InfoLogger, ErrorLogger, base = prevInfo, prevErr, nil
	})

	Init("debug")
	if base == nil {
		t.Fatal("Init should build a zap logger")
	}
	if InfoLogger == prevInfo || ErrorLogger == prevErr {
		t.Fatal("Init should replace the stdlib loggers")
	}
	InfoLogger.Println("hello from test")
}

func TestInitLevel(t *testing.T) {
	prevInfo, prevErr := InfoLogger, ErrorLogger
	t.Cleanup(func() {
		InfoLogger, ErrorLogger, base = prevInfo, prevErr, nil
	})

	Init("warn")
	if base.Core().Enabled(zapcore.InfoLevel) {
		t.Fatal("warn level should disable info")
	}
	Init("nonsense")
	if !base.Core().Enabled(zapcore.InfoLevel) {
		t.Fatal("unknown level should fall back to info")
	}
	if base.Core().Enabled(zapcore.DebugLevel) {
		t.Fatal("default level should not enable debug")
	}
}
