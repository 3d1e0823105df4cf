package notification

import (
	"context"
	"encoding/json"
	"time"

	"gorm.io/gorm"

	"github.com/BruksfildServices01/barber-marketplace/internal/models"
)

type Service struct {
	db *gorm.DB
}

func NewService(db *gorm.DB) *Service {
	return &Service{db: db}
}

func (s *Service) Create(
	ctx context.Context,
	userID uint,
	typ string,
	title string,
	body string,
	status string,
	payload any,
) (*models.Notification, error) {

	n := models.Notification{
		UserID: userID,
		Type:   typ,
		Title:  title,
		Body:   body,
		Status: status,
	}

	if payload != nil {
		raw, err := json.Marshal(payload)
		if err != nil {
			return nil, err
		}
		n.Payload = raw
	}

	if err := s.db.WithContext(ctx).Create(&n).Error; err != nil {
		return nil, err
	}
	return &n, nil
}

func (s *Service) GetByID(
	ctx context.Context,
	id uint,
) (*models.Notification, error) {

	var n models.Notification
	if err := s.db.WithContext(ctx).First(&n, id).Error; err != nil {
		return nil, err
	}
	return &n, nil
}

func (s *Service) UpdateStatus(
	ctx context.Context,
	id uint,
	status string,
) (*models.Notification, error) {

	var n models.Notification
	if err := s.db.WithContext(ctx).First(&n, id).Error; err != nil {
		return nil, err
	}

	n.Status = status
	if err := s.db.WithContext(ctx).Save(&n).Error; err != nil {
		return nil, err
	}
	return &n, nil
}

// ClearForUser soft-deletes the user's notifications; physical deletion
// happens in the retention sweep once the window elapses.
func (s *Service) ClearForUser(
	ctx context.Context,
	userID uint,
	now time.Time,
) (int64, error) {

	res := s.db.WithContext(ctx).
		Model(&models.Notification{}).
		Where("user_id = ? AND client_deleted = ?", userID, false).
		Updates(map[string]any{
			"client_deleted": true,
			"deleted_at":     now,
		})

	return res.RowsAffected, res.Error
}

// PurgeExpired hard-deletes soft-deleted notifications older than the cutoff.
func (s *Service) PurgeExpired(
	ctx context.Context,
	cutoff time.Time,
) (int64, error) {

	res := s.db.WithContext(ctx).
		Where("client_deleted = ? AND deleted_at < ?", true, cutoff).
		Delete(&models.Notification{})

	return res.RowsAffected, res.Error
}
