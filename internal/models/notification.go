package models

import (
	"time"

	"gorm.io/datatypes"
)

const (
	NotificationTypeRescheduleProposal = "RESCHEDULE_PROPOSAL"

	NotificationStatusPending  = "PENDING"
	NotificationStatusAccepted = "ACCEPTED"
	NotificationStatusRejected = "REJECTED"
)

type Notification struct {
	ID     uint `gorm:"primaryKey" json:"id"`
	UserID uint `gorm:"index" json:"user_id"`

	Type   string `gorm:"size:40;not null" json:"type"`
	Status string `gorm:"size:20;default:'PENDING'" json:"status"`

	Title string `gorm:"size:120" json:"title"`
	Body  string `gorm:"size:500" json:"body"`

	Payload datatypes.JSON `json:"payload"`

	ClientDeleted bool       `gorm:"default:false" json:"client_deleted"`
	DeletedAt     *time.Time `gorm:"index" json:"deleted_at"`

	CreatedAt time.Time `json:"created_at"`
}
