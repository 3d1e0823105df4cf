package models

import "time"

type Appointment struct {
	ID   uint   `gorm:"primaryKey" json:"id"`
	UUID string `gorm:"size:36;uniqueIndex" json:"uuid"`

	// Date marks the start instant; duration comes from the service.
	Date          time.Time  `gorm:"index" json:"date"`
	ActualEndTime *time.Time `json:"actual_end_time"`

	// Nil for barber-only blocking rows (day_off / leave_early).
	ClientID *uint `gorm:"index" json:"client_id"`
	Client   *User `gorm:"foreignKey:ClientID;constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"client,omitempty"`

	BarberID uint `gorm:"index" json:"barber_id"`
	Barber   User `gorm:"foreignKey:BarberID;constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"barber"`

	ShopID uint `gorm:"index" json:"shop_id"`
	Shop   Shop `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"shop"`

	ServiceID *uint    `json:"service_id"`
	Service   *Service `gorm:"foreignKey:ServiceID;constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"service,omitempty"`

	Status string `gorm:"size:30;default:'confirmed';index" json:"status"`

	HiddenForClient bool   `gorm:"default:false" json:"hidden_for_client"`
	ClientReviewed  bool   `gorm:"default:false" json:"client_reviewed"`
	Notes           string `gorm:"size:255" json:"notes"`
	NotesBarber     string `gorm:"size:255" json:"notes_barber"`

	PaymentMethod   string     `gorm:"size:30" json:"payment_method"`
	PaymentStatus   string     `gorm:"size:30" json:"payment_status"`
	PaymentMarkedAt *time.Time `json:"payment_marked_at"`
	PaymentMarkedBy *uint      `json:"payment_marked_by"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
