package handlers

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	domain "github.com/BruksfildServices01/barber-marketplace/internal/domain/appointment"
	"github.com/BruksfildServices01/barber-marketplace/internal/httperr"
	"github.com/BruksfildServices01/barber-marketplace/internal/httpresp"
	"github.com/BruksfildServices01/barber-marketplace/internal/models"
)

type BreakHandler struct {
	db *gorm.DB
}

func NewBreakHandler(db *gorm.DB) *BreakHandler {
	return &BreakHandler{db: db}
}

type BreakItem struct {
	Day       string `json:"day" binding:"required"`
	StartTime string `json:"start_time" binding:"required"`
	EndTime   string `json:"end_time" binding:"required"`
	Enabled   bool   `json:"enabled"`
}

type UpdateBreaksRequest struct {
	Breaks []BreakItem `json:"breaks"`
}

var validDays = map[string]bool{
	"sunday": true, "monday": true, "tuesday": true, "wednesday": true,
	"thursday": true, "friday": true, "saturday": true,
}

func (h *BreakHandler) List(c *gin.Context) {
	caller := callerFrom(c)

	var breaks []models.BarberBreak
	if err := h.db.
		Where("barber_id = ?", caller.UserID).
		Order("day, start_time").
		Find(&breaks).Error; err != nil {
		httperr.Internal(c, "failed_to_list_breaks", "Unexpected error.")
		return
	}

	httpresp.List(c, breaks)
}

// Update replaces the caller's weekly break set. A start after the end is a
// window wrapping past midnight and is accepted as-is.
func (h *BreakHandler) Update(c *gin.Context) {
	caller := callerFrom(c)

	var req UpdateBreaksRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Invalid request body.")
		return
	}

	for _, b := range req.Breaks {
		if !validDays[b.Day] {
			httperr.BadRequest(c, "invalid_day", "Unknown weekday code.")
			return
		}
		if _, err := domain.ParseClock(b.StartTime); err != nil {
			httperr.BadRequest(c, "invalid_time", "Malformed start time.")
			return
		}
		if _, err := domain.ParseClock(b.EndTime); err != nil {
			httperr.BadRequest(c, "invalid_time", "Malformed end time.")
			return
		}
	}

	err := h.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.
			Where("barber_id = ?", caller.UserID).
			Delete(&models.BarberBreak{}).Error; err != nil {
			return err
		}

		for _, b := range req.Breaks {
			row := models.BarberBreak{
				BarberID:  caller.UserID,
				Day:       b.Day,
				StartTime: b.StartTime,
				EndTime:   b.EndTime,
				Enabled:   b.Enabled,
			}
			if err := tx.Create(&row).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		httperr.Internal(c, "failed_to_update_breaks", "Unexpected error.")
		return
	}

	h.List(c)
}
