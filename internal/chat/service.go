package chat

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/BruksfildServices01/barber-marketplace/internal/models"
)

// Service is the chat collaborator the scheduling engine posts system
// messages through.
type Service struct {
	db *gorm.DB
}

func NewService(db *gorm.DB) *Service {
	return &Service{db: db}
}

// GetOrCreateConversation returns the client-barber conversation tied to the
// appointment, creating it on first use.
func (s *Service) GetOrCreateConversation(
	ctx context.Context,
	ap *models.Appointment,
) (uint, error) {

	if ap.ClientID == nil {
		return 0, errors.New("appointment has no client")
	}

	var conv models.Conversation
	err := s.db.WithContext(ctx).
		Where(
			"type = ? AND client_id = ? AND barber_id = ? AND appointment_id = ?",
			models.ConversationTypeAppointment, *ap.ClientID, ap.BarberID, ap.ID,
		).
		First(&conv).Error

	if err == nil {
		return conv.ID, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return 0, err
	}

	apID := ap.ID
	conv = models.Conversation{
		Type:          models.ConversationTypeAppointment,
		ClientID:      *ap.ClientID,
		BarberID:      ap.BarberID,
		AppointmentID: &apID,
	}
	if err := s.db.WithContext(ctx).Create(&conv).Error; err != nil {
		return 0, err
	}

	return conv.ID, nil
}

func (s *Service) PostMessage(
	ctx context.Context,
	conversationID uint,
	senderID uint,
	receiverID uint,
	text string,
	isSystem bool,
	relatedAction string,
	relatedID *uint,
) error {

	msg := models.Message{
		ConversationID: conversationID,
		SenderID:       senderID,
		ReceiverID:     receiverID,
		Body:           text,
		IsSystem:       isSystem,
		RelatedAction:  relatedAction,
		RelatedID:      relatedID,
	}

	return s.db.WithContext(ctx).Create(&msg).Error
}
