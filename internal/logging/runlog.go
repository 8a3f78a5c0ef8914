package logging

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
)

// RunLog is the per-run log file. Records are appended and the file is
// closed when the run ends.
type RunLog struct {
	*Logger
	Path  string
	RunID string
	file  *os.File
}

// RunLogName returns the file name of the log for a run started at t
func RunLogName(t time.Time) string {
	return fmt.Sprintf("config_update_%s.log", t.Format("20060102_150405"))
}

// DefaultLogDir returns the per-operator log directory
func DefaultLogDir() string {
	home, err := os.UserHomeDir()
	if err != nil || home == "" {
		return filepath.Join(os.TempDir(), "ib_gateway", "logs")
	}
	return filepath.Join(home, ".ib_gateway", "logs")
}

// OpenRunLog creates dir if needed and opens a fresh log file named after
// the run start time. The first record carries the run ID.
func OpenRunLog(dir string, started time.Time, debug bool) (*RunLog, error) {
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return nil, fmt.Errorf("failed to create log directory %s: %w", dir, err)
	}

	path := filepath.Join(dir, RunLogName(started))
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
	if err != nil {
		return nil, fmt.Errorf("failed to open log file %s: %w", path, err)
	}

	rl := &RunLog{
		Logger: New(f, debug),
		Path:   path,
		RunID:  uuid.NewString(),
		file:   f,
	}
	rl.Info("Starting gateway configuration run %s", rl.RunID)
	return rl, nil
}

// Close flushes and closes the log file
func (r *RunLog) Close() error {
	if r == nil || r.file == nil {
		return nil
	}
	if err := r.file.Sync(); err != nil {
		_ = r.file.Close()
		return err
	}
	return r.file.Close()
}
