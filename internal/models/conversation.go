package models

import "time"

const ConversationTypeAppointment = "appointment"

// Conversation is keyed by (type, client, barber, appointment).
type Conversation struct {
	ID uint `gorm:"primaryKey" json:"id"`

	Type     string `gorm:"size:20;not null" json:"type"`
	ClientID uint   `gorm:"index" json:"client_id"`
	BarberID uint   `gorm:"index" json:"barber_id"`

	AppointmentID *uint `gorm:"index" json:"appointment_id"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type Message struct {
	ID             uint `gorm:"primaryKey" json:"id"`
	ConversationID uint `gorm:"index;not null" json:"conversation_id"`

	SenderID   uint `gorm:"index" json:"sender_id"`
	ReceiverID uint `json:"receiver_id"`

	Body string `gorm:"type:text;not null" json:"body"`

	IsSystem      bool   `gorm:"default:false" json:"is_system"`
	RelatedAction string `gorm:"size:40" json:"related_action"`
	RelatedID     *uint  `json:"related_id"`

	CreatedAt time.Time `gorm:"index" json:"created_at"`
}
