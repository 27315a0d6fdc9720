// Package log provides logging for the session engine. All output goes to a
// file in the temp directory: engine failures must stay silent toward the
// host application, which degrades to a fresh session instead of seeing an
// error.
package log

import (
	"io"
	"log"
	"os"
	"path/filepath"
)

var (
	InfoLog    *log.Logger
	WarningLog *log.Logger
	ErrorLog   *log.Logger
)

var (
	logFileName = filepath.Join(os.TempDir(), "workdeck-session.log")
	logFile     *os.File
)

func init() {
	discardAll()
}

func discardAll() {
	InfoLog = log.New(io.Discard, "", 0)
	WarningLog = log.New(io.Discard, "", 0)
	ErrorLog = log.New(io.Discard, "", 0)
}

// Initialize opens the engine log file. The loggers stay no-ops when the
// file cannot be opened; logging is best-effort by design.
func Initialize() {
	f, err := os.OpenFile(logFileName, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return
	}
	logFile = f

	flags := log.Ldate | log.Ltime | log.Lshortfile
	InfoLog = log.New(f, "INFO:", flags)
	WarningLog = log.New(f, "WARNING:", flags)
	ErrorLog = log.New(f, "ERROR:", flags)

	InitDebug()
}

// Close closes the log file and resets the loggers to no-ops.
func Close() {
	CloseDebug()
	if logFile != nil {
		_ = logFile.Close()
		logFile = nil
	}
	discardAll()
}
