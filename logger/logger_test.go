package logger

import "testing"

func TestLoggerIsNeverNil(t *testing.T) {
	if Logger == nil {
		t.Fatal("Logger is nil before Initialize")
	}
	// Must not panic.
	Logger.Debugw("pre-initialize logging is a no-op", "key", "value")
}

func TestInitializeConsole(t *testing.T) {
	if err := Initialize(false); err != nil {
		t.Fatalf("Initialize(false) error: %v", err)
	}
	if JSONOutput {
		t.Error("JSONOutput = true after console initialize")
	}
	Logger.Infow("console logger works", "mode", "console")
}

func TestInitializeJSON(t *testing.T) {
	if err := Initialize(true); err != nil {
		t.Fatalf("Initialize(true) error: %v", err)
	}
	if !JSONOutput {
		t.Error("JSONOutput = false after JSON initialize")
	}
	Logger.Infow("json logger works", "mode", "json")
}
