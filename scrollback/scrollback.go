// Package scrollback keeps persisted terminal text within a character budget
// without splitting a control sequence in two, and prepares the replay files
// the shell integration reads back on restore.
package scrollback

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"github.com/muesli/ansi"

	"workdeck/log"
)

const (
	// DefaultMaxChars is the per-terminal scrollback budget applied at
	// checkpoint time.
	DefaultMaxChars = 100_000

	// ReplayFileEnv names the environment variable the shell integration
	// reads to locate its replay file. The shell deletes the file after
	// replaying it; the engine only ever creates fresh ones.
	ReplayFileEnv = "WORKDECK_RESTORE_SCROLLBACK_FILE"

	replayDirName = "workdeck-scrollback"
	reset         = "\x1b[0m"
)

// Truncate returns the trailing maxChars characters of text, with the start
// boundary adjusted so the result never begins inside an unterminated CSI
// sequence.
func Truncate(text string, maxChars int) string {
	if text == "" || maxChars <= 0 {
		return ""
	}
	runes := []rune(text)
	if len(runes) <= maxChars {
		return text
	}

	cut := len(runes) - maxChars
	start := cut

	esc := -1
	for i := cut; i >= 0; i-- {
		if runes[i] == ansi.Marker {
			esc = i
			break
		}
	}
	if esc >= 0 && esc+1 < len(runes) && runes[esc+1] == '[' {
		term := -1
		for i := esc + 2; i < len(runes); i++ {
			if isCSITerminator(runes[i]) {
				term = i
				break
			}
		}
		// A terminator before the cut means the sequence already completed
		// and the naive cut stands. At or after the cut, the cut lands
		// inside the sequence: skip past the terminator. No terminator at
		// all falls back to the naive cut.
		if term >= cut {
			start = term + 1
		}
	}
	return string(runes[start:])
}

// isCSITerminator reports whether r is a CSI final byte (0x40-0x7E).
func isCSITerminator(r rune) bool {
	return r >= 0x40 && r <= 0x7e
}

// PrepareReplay truncates text to the replay budget, wraps it in color
// resets when it carries escape sequences, writes it to a fresh uniquely
// named replay file, and returns the environment mapping the restored
// terminal should launch with. Returns nil when there is nothing to replay
// or the file cannot be written; a missing replay must never abort a
// restore.
func PrepareReplay(text string) map[string]string {
	if strings.TrimSpace(text) == "" {
		return nil
	}

	out := Truncate(text, DefaultMaxChars)
	if strings.ContainsRune(out, ansi.Marker) {
		// Replay consumers start and end in a neutral color state no
		// matter what the truncation cut away.
		if !strings.HasPrefix(out, reset) {
			out = reset + out
		}
		if !strings.HasSuffix(out, reset) {
			out += reset
		}
	}

	dir := filepath.Join(os.TempDir(), replayDirName)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		log.WarningLog.Printf("failed to create replay directory: %v", err)
		return nil
	}
	path := filepath.Join(dir, uuid.NewString()+".txt")
	if err := os.WriteFile(path, []byte(out), 0o600); err != nil {
		log.WarningLog.Printf("failed to write replay file: %v", err)
		return nil
	}
	return map[string]string{ReplayFileEnv: path}
}
