// Package file contains the file-backed report store
package file

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/yourusername/anticovid-bot/internal/domain/report/deps"
	"github.com/yourusername/anticovid-bot/internal/domain/report/entities"
	domainerrors "github.com/yourusername/anticovid-bot/internal/domain/report/errors"
)

const (
	subscribersFile  = "subscribers.json"
	reportsIndexFile = "reports_index.json"
	reportFilePrefix = "report_"
)

// reportRecord is the persisted form of a report. One self-contained JSON
// document per report, keyed by the integer id in the file name.
type reportRecord struct {
	Type      entities.ReportType   `json:"type"`
	Status    entities.ReportStatus `json:"status"`
	CreatedAt int64                 `json:"created_at"`
	Message   string                `json:"message"`
}

// Store persists reports and subscriber ids as JSON files in a directory.
// A single mutex serializes every operation, readers included: with the
// traffic volume this store is built for, correctness wins over throughput.
type Store struct {
	dir    string
	mu     sync.Mutex
	logger zerolog.Logger
}

// NewStore creates a file store rooted at dir, creating it if missing
func NewStore(dir string, logger zerolog.Logger) (*Store, error) {
	if dir == "" {
		return nil, fmt.Errorf("store directory is required")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create store directory: %w", err)
	}

	logger.Info().Str("dir", dir).Msg("File store initialized")

	return &Store{
		dir:    dir,
		logger: logger,
	}, nil
}

var _ deps.Store = (*Store)(nil)

// AddReport implements deps.Store
func (s *Store) AddReport(ctx context.Context, reportType entities.ReportType, message string) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	ids, err := s.readIndex()
	if err != nil {
		return 0, err
	}

	id := maxID(ids) + 1
	rec := reportRecord{
		Type:      reportType,
		Status:    entities.ReportStatusUnseen,
		CreatedAt: time.Now().Unix(),
		Message:   message,
	}

	if err := s.writeJSON(s.reportPath(id), rec); err != nil {
		return 0, err
	}
	if err := s.writeJSON(filepath.Join(s.dir, reportsIndexFile), append(ids, id)); err != nil {
		return 0, err
	}

	s.logger.Info().Int64("report_id", id).Str("type", reportType.String()).Msg("Report persisted")
	return id, nil
}

// GetReport implements deps.Store
func (s *Store) GetReport(ctx context.Context, id int64) (*entities.Report, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.readReport(id)
}

// SetStatus implements deps.Store
func (s *Store) SetStatus(ctx context.Context, id int64, status entities.ReportStatus) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	report, err := s.readReport(id)
	if err != nil {
		return err
	}

	rec := reportRecord{
		Type:      report.Type,
		Status:    status,
		CreatedAt: report.CreatedAt.Unix(),
		Message:   report.Message,
	}
	if err := s.writeJSON(s.reportPath(id), rec); err != nil {
		return err
	}

	s.logger.Info().Int64("report_id", id).Str("status", status.String()).Msg("Report status updated")
	return nil
}

// ListReportIDs implements deps.Store
func (s *Store) ListReportIDs(ctx context.Context) ([]int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.readIndex()
}

// ListSubscribers implements deps.Store
func (s *Store) ListSubscribers(ctx context.Context) ([]int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.readSubscribers()
}

// Subscribe implements deps.Store
func (s *Store) Subscribe(ctx context.Context, userID int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	subs, err := s.readSubscribers()
	if err != nil {
		return err
	}
	for _, id := range subs {
		if id == userID {
			return nil
		}
	}
	return s.writeSubscribers(append(subs, userID))
}

// Unsubscribe implements deps.Store
func (s *Store) Unsubscribe(ctx context.Context, userID int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	subs, err := s.readSubscribers()
	if err != nil {
		return err
	}
	kept := subs[:0]
	for _, id := range subs {
		if id != userID {
			kept = append(kept, id)
		}
	}
	if len(kept) == len(subs) {
		return nil
	}
	return s.writeSubscribers(kept)
}

// IsSubscribed implements deps.Store
func (s *Store) IsSubscribed(ctx context.Context, userID int64) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	subs, err := s.readSubscribers()
	if err != nil {
		return false, err
	}
	for _, id := range subs {
		if id == userID {
			return true, nil
		}
	}
	return false, nil
}

func (s *Store) reportPath(id int64) string {
	return filepath.Join(s.dir, fmt.Sprintf("%s%d.json", reportFilePrefix, id))
}

// readReport must be called with the lock held
func (s *Store) readReport(id int64) (*entities.Report, error) {
	data, err := os.ReadFile(s.reportPath(id))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, domainerrors.ErrReportNotFound
		}
		return nil, fmt.Errorf("failed to read report %d: %w", id, err)
	}

	var rec reportRecord
	if err := json.Unmarshal(data, &rec); err != nil {
		return nil, fmt.Errorf("failed to decode report %d: %w", id, err)
	}

	return &entities.Report{
		ID:        id,
		Type:      rec.Type,
		Status:    rec.Status,
		CreatedAt: time.Unix(rec.CreatedAt, 0),
		Message:   rec.Message,
	}, nil
}

// readIndex must be called with the lock held.
// A missing index file is an empty collection, not an error.
func (s *Store) readIndex() ([]int64, error) {
	var ids []int64
	if err := s.readJSON(filepath.Join(s.dir, reportsIndexFile), &ids); err != nil {
		return nil, err
	}
	return ids, nil
}

// readSubscribers must be called with the lock held
func (s *Store) readSubscribers() ([]int64, error) {
	var subs []int64
	if err := s.readJSON(filepath.Join(s.dir, subscribersFile), &subs); err != nil {
		return nil, err
	}
	return subs, nil
}

// writeSubscribers must be called with the lock held.
// The set is persisted sorted for determinism.
func (s *Store) writeSubscribers(subs []int64) error {
	sort.Slice(subs, func(i, j int) bool { return subs[i] < subs[j] })
	return s.writeJSON(filepath.Join(s.dir, subscribersFile), subs)
}

func (s *Store) readJSON(path string, v any) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("failed to read %s: %w", filepath.Base(path), err)
	}
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("failed to decode %s: %w", filepath.Base(path), err)
	}
	return nil
}

func (s *Store) writeJSON(path string, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("failed to encode %s: %w", filepath.Base(path), err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", filepath.Base(path), err)
	}
	return nil
}

func maxID(ids []int64) int64 {
	var max int64
	for _, id := range ids {
		if id > max {
			max = id
		}
	}
	return max
}
