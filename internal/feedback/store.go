package feedback

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"PostDrafter/internal/domain"
	"PostDrafter/internal/ports"
)

// Store persists the feedback log as a single JSON document. The design
// assumes one writer at a time; there is no cross-process locking.
type Store struct {
	path   string
	logger *slog.Logger
	now    func() time.Time
}

var _ ports.FeedbackStore = (*Store)(nil)

// NewStore wires a file-backed store.
func NewStore(path string, logger *slog.Logger) *Store {
	return &Store{path: path, logger: logger, now: time.Now}
}

// Load reads the persisted log. An absent or corrupt file degrades to a
// fresh empty log; that is logged, never fatal.
func (s *Store) Load() domain.FeedbackLog {
	raw, err := os.ReadFile(s.path)
	if err != nil {
		s.warn("feedback log not readable, starting fresh", "path", s.path, "error", err)
		return domain.FeedbackLog{}
	}

	var log domain.FeedbackLog
	if err := json.Unmarshal(raw, &log); err != nil {
		s.warn("feedback log corrupt, starting fresh", "path", s.path, "error", err)
		return domain.FeedbackLog{}
	}
	return log
}

// Save stamps lastUpdated and persists the log via a temp file and rename,
// so a following read never sees a half-written document.
func (s *Store) Save(log *domain.FeedbackLog) error {
	stamp := s.now().UTC().Format(time.RFC3339)
	log.LastUpdated = &stamp

	raw, err := json.MarshalIndent(log, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal feedback log: %w", err)
	}

	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create log dir: %w", err)
	}

	tmp, err := os.CreateTemp(dir, ".feedback-log-*")
	if err != nil {
		return fmt.Errorf("create temp log: %w", err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(raw); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpName)
		return fmt.Errorf("write temp log: %w", err)
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpName)
		return fmt.Errorf("close temp log: %w", err)
	}

	if err := os.Rename(tmpName, s.path); err != nil {
		_ = os.Remove(tmpName)
		return fmt.Errorf("replace feedback log: %w", err)
	}
	return nil
}

func (s *Store) warn(msg string, args ...any) {
	if s.logger != nil {
		s.logger.Warn(msg, args...)
	}
}
