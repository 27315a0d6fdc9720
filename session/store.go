package session

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"

	"workdeck/config"
	"workdeck/log"
)

const (
	snapshotFilePrefix = "session-"
	snapshotFileExt    = ".json"
)

var unsafePathChars = regexp.MustCompile(`[^A-Za-z0-9._-]`)

// Store persists one snapshot per installation under the data directory.
// The snapshot file belongs to the store exclusively; callers never write
// to it directly.
type Store struct {
	dataDir   string
	installID string
}

// NewStore creates a store for the given data directory and installation id.
func NewStore(dataDir, installID string) *Store {
	return &Store{dataDir: dataDir, installID: installID}
}

// Path returns the snapshot file path for this installation. The
// installation id comes from the host bundle and is untrusted; it is
// sanitized into a safe path component.
func (s *Store) Path() string {
	return filepath.Join(s.dataDir, snapshotFilePrefix+SanitizeID(s.installID)+snapshotFileExt)
}

// SanitizeID replaces every character outside [A-Za-z0-9._-] with '_'.
func SanitizeID(id string) string {
	return unsafePathChars.ReplaceAllString(id, "_")
}

// Save writes snap atomically to the snapshot path: parent directories are
// created, the encoded form is written to a temp file and renamed into
// place, so an observer never sees a partial file. Any encode or I/O
// failure comes back as an error for the caller to log; a failed checkpoint
// never interrupts the host.
func (s *Store) Save(snap *Snapshot) error {
	if snap == nil || len(snap.Windows) == 0 {
		return errors.New("refusing to save empty snapshot")
	}

	if err := os.MkdirAll(s.dataDir, 0o755); err != nil {
		return fmt.Errorf("failed to create data directory: %w", err)
	}

	lock := config.NewFileLock(s.Path())
	if err := lock.Lock(); err != nil {
		return fmt.Errorf("failed to acquire write lock: %w", err)
	}
	defer lock.Unlock()

	data, err := json.MarshalIndent(snap, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode snapshot: %w", err)
	}

	tmp, err := os.CreateTemp(s.dataDir, snapshotFilePrefix+"*.tmp")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	tmpPath := tmp.Name()
	if _, err := tmp.Write(append(data, '\n')); err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return fmt.Errorf("failed to write snapshot: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("failed to close snapshot: %w", err)
	}
	if err := os.Rename(tmpPath, s.Path()); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("failed to replace snapshot: %w", err)
	}
	return nil
}

// Load returns the stored snapshot, or nil when there is nothing usable:
// missing or unreadable file, malformed data, a schema version other than
// CurrentVersion, or zero windows. A version mismatch is a hard rejection
// with no partial decode; old snapshots are discarded, not migrated. The
// decoded tree gets a structural cleanup pass before it is returned.
func (s *Store) Load() *Snapshot {
	lock := config.NewFileLock(s.Path())
	if err := lock.RLock(); err != nil {
		// The atomic rename on save makes an unlocked read safe enough.
		log.WarningLog.Printf("failed to acquire read lock: %v", err)
	} else {
		defer lock.Unlock()
	}

	data, err := os.ReadFile(s.Path())
	if err != nil {
		return nil
	}

	var snap Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		log.WarningLog.Printf("discarding malformed snapshot: %v", err)
		return nil
	}
	if snap.Version != CurrentVersion {
		log.InfoLog.Printf("discarding snapshot with schema version %d (want %d)", snap.Version, CurrentVersion)
		return nil
	}
	if len(snap.Windows) == 0 {
		return nil
	}

	snap.cleanup()
	return &snap
}

// Clear removes the stored snapshot. A missing file is not an error.
func (s *Store) Clear() error {
	if err := os.Remove(s.Path()); err != nil && !errors.Is(err, os.ErrNotExist) {
		return err
	}
	return nil
}
