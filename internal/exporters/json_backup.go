// Package exporters writes library snapshots to disk for backup.
package exporters

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/pagemark/bookpace/internal/entities"
)

// Snapshotter provides copies of all collections.
type Snapshotter interface {
	Snapshot() ([]entities.Book, []entities.Note, []entities.ReadingSession)
}

// backupFile is the on-disk snapshot layout.
type backupFile struct {
	ExportedAt time.Time                 `json:"exported_at"`
	Books      []entities.Book           `json:"books"`
	Notes      []entities.Note           `json:"notes"`
	Sessions   []entities.ReadingSession `json:"reading_sessions"`
}

// JSONBackupExporter dumps the whole library into one timestamped JSON file
// per run.
type JSONBackupExporter struct {
	store Snapshotter
	dir   string
}

func NewJSONBackupExporter(store Snapshotter, dir string) *JSONBackupExporter {
	return &JSONBackupExporter{store: store, dir: dir}
}

// Export writes a snapshot and returns the path of the written file.
func (e *JSONBackupExporter) Export() (string, error) {
	if err := os.MkdirAll(e.dir, 0755); err != nil {
		return "", fmt.Errorf("create backup dir: %w", err)
	}

	books, notes, sessions := e.store.Snapshot()
	snapshot := backupFile{
		ExportedAt: time.Now().UTC(),
		Books:      books,
		Notes:      notes,
		Sessions:   sessions,
	}

	payload, err := json.MarshalIndent(snapshot, "", "  ")
	if err != nil {
		return "", fmt.Errorf("serialize backup: %w", err)
	}

	filename := fmt.Sprintf("bookpace_backup_%s.json", snapshot.ExportedAt.Format("20060102T150405"))
	path := filepath.Join(e.dir, filename)

	// Temp file + rename so a crash never leaves a half-written backup
	tmpFile, err := os.CreateTemp(e.dir, "backup_tmp_")
	if err != nil {
		return "", err
	}
	tmpPath := tmpFile.Name()
	defer func() {
		tmpFile.Close()
		os.Remove(tmpPath)
	}()

	if _, err := tmpFile.Write(payload); err != nil {
		return "", err
	}
	tmpFile.Close()

	if err := os.Rename(tmpPath, path); err != nil {
		return "", err
	}

	return path, nil
}
