package models

import "time"

// BarberBreak is a recurring weekly unavailability window. StartTime and
// EndTime are "15:04" wall-clock strings; StartTime > EndTime means the break
// crosses midnight into the following day.
type BarberBreak struct {
	ID       uint `gorm:"primaryKey" json:"id"`
	BarberID uint `gorm:"index" json:"barber_id"`

	Day       string `gorm:"size:10;not null" json:"day"`
	StartTime string `gorm:"size:5;not null" json:"start_time"`
	EndTime   string `gorm:"size:5;not null" json:"end_time"`
	Enabled   bool   `gorm:"default:true" json:"enabled"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
