package log

import "testing"

func TestLoggersAreUsableBeforeInitialize(t *testing.T) {
	if InfoLog == nil || WarningLog == nil || ErrorLog == nil {
		t.Fatal("loggers must never be nil")
	}
	// Must not panic.
	WarningLog.Printf("discarded: %d", 42)
	Debug("discarded: %d", 42)
}

func TestInitializeAndClose(t *testing.T) {
	Initialize()
	defer Close()

	if InfoLog == nil || DebugLog == nil {
		t.Fatal("initialize must leave loggers usable")
	}
	InfoLog.Printf("log writes are best-effort")
}
