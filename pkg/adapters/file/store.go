package file

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/aretw0/simchain/pkg/domain"
)

// Store implements ports.MonitorStore on the local filesystem.
// Records are kept as a single JSON array rewritten atomically on every write.
type Store struct {
	Path string

	mu sync.Mutex
}

// NewStore creates a Store writing to path.
// If path is empty, it defaults to ".simchain/records.json".
func NewStore(path string) *Store {
	if path == "" {
		path = filepath.Join(".simchain", "records.json")
	}
	return &Store{Path: path}
}

func (s *Store) Record(ctx context.Context, rec domain.ArrivalRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	recs, err := s.read()
	if err != nil {
		return err
	}
	return s.write(append(recs, rec))
}

func (s *Store) List(ctx context.Context) ([]domain.ArrivalRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.read()
}

func (s *Store) Reset(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := os.Remove(s.Path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to delete records file: %w", err)
	}
	return nil
}

func (s *Store) read() ([]domain.ArrivalRecord, error) {
	data, err := os.ReadFile(s.Path)
	if err != nil {
		if os.IsNotExist(err) {
			return []domain.ArrivalRecord{}, nil
		}
		return nil, fmt.Errorf("failed to read records file: %w", err)
	}

	var recs []domain.ArrivalRecord
	if err := json.Unmarshal(data, &recs); err != nil {
		return nil, fmt.Errorf("failed to unmarshal records: %w", err)
	}
	return recs, nil
}

// write replaces the file through a synced temp file in the same directory.
func (s *Store) write(recs []domain.ArrivalRecord) error {
	dir := filepath.Dir(s.Path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to ensure records directory: %w", err)
	}

	data, err := json.MarshalIndent(recs, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal records: %w", err)
	}

	tmp, err := os.CreateTemp(dir, "tmp-records-*.json")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	tmpPath := tmp.Name()
	defer func() {
		_ = tmp.Close()
		_ = os.Remove(tmpPath)
	}()

	if _, err := tmp.Write(data); err != nil {
		return fmt.Errorf("failed to write to temp file: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		return fmt.Errorf("failed to fsync temp file: %w", err)
	}
	// Windows cannot rename an open file or over an existing one.
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to close temp file: %w", err)
	}
	if _, err := os.Stat(s.Path); err == nil {
		if err := os.Remove(s.Path); err != nil {
			return fmt.Errorf("failed to remove existing records file: %w", err)
		}
	}
	if err := os.Rename(tmpPath, s.Path); err != nil {
		return fmt.Errorf("failed to rename temp file: %w", err)
	}
	return nil
}
