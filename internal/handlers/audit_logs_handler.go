package handlers

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/barber-marketplace/internal/authz"
	"github.com/BruksfildServices01/barber-marketplace/internal/httperr"
	"github.com/BruksfildServices01/barber-marketplace/internal/httpresp"
	"github.com/BruksfildServices01/barber-marketplace/internal/models"
)

type AuditLogsHandler struct {
	db    *gorm.DB
	guard *authz.Guard
}

func NewAuditLogsHandler(db *gorm.DB, guard *authz.Guard) *AuditLogsHandler {
	return &AuditLogsHandler{db: db, guard: guard}
}

func (h *AuditLogsHandler) List(c *gin.Context) {
	caller := callerFrom(c)

	shopID, err := strconv.ParseUint(c.Query("shop_id"), 10, 64)
	if err != nil {
		httperr.BadRequest(c, "invalid_shop_id", "Invalid shop id.")
		return
	}

	if caller.Role != models.RoleAdmin {
		owns, err := h.guard.OwnsShop(c.Request.Context(), caller.UserID, uint(shopID))
		if err != nil || !owns {
			httperr.Forbidden(c, "unauthorized", "Not allowed.")
			return
		}
	}

	var logs []models.AuditLog
	if err := h.db.
		Where("shop_id = ?", shopID).
		Order("created_at DESC").
		Limit(200).
		Find(&logs).Error; err != nil {
		httperr.Internal(c, "failed_to_list_logs", "Unexpected error.")
		return
	}

	httpresp.List(c, logs)
}
