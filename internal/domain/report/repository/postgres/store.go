// Package postgres is the PostgreSQL-backed report store, for deployments
// where the bot's data must outlive a single host.
package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/yourusername/anticovid-bot/internal/domain/report/deps"
	"github.com/yourusername/anticovid-bot/internal/domain/report/entities"
	domainerrors "github.com/yourusername/anticovid-bot/internal/domain/report/errors"
)

type reportModel struct {
	ID        int64 `gorm:"primaryKey;autoIncrement"`
	Type      int
	Status    int `gorm:"index"`
	Message   string
	CreatedAt time.Time
}

func (reportModel) TableName() string { return "reports" }

type subscriberModel struct {
	ChatID int64 `gorm:"primaryKey"`
}

func (subscriberModel) TableName() string { return "subscribers" }

// Store implements the report store on top of PostgreSQL via gorm
type Store struct {
	db     *gorm.DB
	logger zerolog.Logger
}

var _ deps.Store = (*Store)(nil)

// NewStore migrates the schema and returns a ready store
func NewStore(db *gorm.DB, logger zerolog.Logger) (*Store, error) {
	if err := db.AutoMigrate(&reportModel{}, &subscriberModel{}); err != nil {
		return nil, fmt.Errorf("failed to auto migrate: %w", err)
	}
	return &Store{db: db, logger: logger}, nil
}

// AddReport persists a new report with UNSEEN status and returns its id
func (s *Store) AddReport(ctx context.Context, reportType entities.ReportType, message string) (int64, error) {
	model := reportModel{
		Type:      int(reportType),
		Status:    int(entities.ReportStatusUnseen),
		Message:   message,
		CreatedAt: time.Now().UTC(),
	}
	if err := s.db.WithContext(ctx).Create(&model).Error; err != nil {
		return 0, fmt.Errorf("failed to insert report: %w", err)
	}
	return model.ID, nil
}

// GetReport returns the report by id regardless of its status
func (s *Store) GetReport(ctx context.Context, id int64) (*entities.Report, error) {
	var model reportModel
	err := s.db.WithContext(ctx).First(&model, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, domainerrors.ErrReportNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load report %d: %w", id, err)
	}

	return &entities.Report{
		ID:        model.ID,
		Type:      entities.ReportType(model.Type),
		Status:    entities.ReportStatus(model.Status),
		CreatedAt: model.CreatedAt,
		Message:   model.Message,
	}, nil
}

// SetStatus updates the status of an existing report
func (s *Store) SetStatus(ctx context.Context, id int64, status entities.ReportStatus) error {
	res := s.db.WithContext(ctx).
		Model(&reportModel{}).
		Where("id = ?", id).
		Update("status", int(status))
	if res.Error != nil {
		return fmt.Errorf("failed to update report %d status: %w", id, res.Error)
	}
	if res.RowsAffected == 0 {
		return domainerrors.ErrReportNotFound
	}
	return nil
}

// ListReportIDs returns all report ids in ascending order
func (s *Store) ListReportIDs(ctx context.Context) ([]int64, error) {
	var ids []int64
	err := s.db.WithContext(ctx).
		Model(&reportModel{}).
		Order("id asc").
		Pluck("id", &ids).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list report ids: %w", err)
	}
	return ids, nil
}

// ListSubscribers returns all subscriber chat ids in ascending order
func (s *Store) ListSubscribers(ctx context.Context) ([]int64, error) {
	var ids []int64
	err := s.db.WithContext(ctx).
		Model(&subscriberModel{}).
		Order("chat_id asc").
		Pluck("chat_id", &ids).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list subscribers: %w", err)
	}
	return ids, nil
}

// Subscribe adds a chat to the news subscribers. Idempotent.
func (s *Store) Subscribe(ctx context.Context, chatID int64) error {
	err := s.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(&subscriberModel{ChatID: chatID}).Error
	if err != nil {
		return fmt.Errorf("failed to subscribe chat %d: %w", chatID, err)
	}
	return nil
}

// Unsubscribe removes a chat from the news subscribers. Idempotent.
func (s *Store) Unsubscribe(ctx context.Context, chatID int64) error {
	err := s.db.WithContext(ctx).
		Delete(&subscriberModel{ChatID: chatID}).Error
	if err != nil {
		return fmt.Errorf("failed to unsubscribe chat %d: %w", chatID, err)
	}
	return nil
}

// IsSubscribed reports whether the chat receives news broadcasts
func (s *Store) IsSubscribed(ctx context.Context, chatID int64) (bool, error) {
	var count int64
	err := s.db.WithContext(ctx).
		Model(&subscriberModel{}).
		Where("chat_id = ?", chatID).
		Count(&count).Error
	if err != nil {
		return false, fmt.Errorf("failed to check subscription of chat %d: %w", chatID, err)
	}
	return count > 0, nil
}
