package handlers

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/barber-marketplace/internal/httperr"
	"github.com/BruksfildServices01/barber-marketplace/internal/httpresp"
	"github.com/BruksfildServices01/barber-marketplace/internal/notification"
	"github.com/BruksfildServices01/barber-marketplace/internal/timezone"
	ucAppointment "github.com/BruksfildServices01/barber-marketplace/internal/usecase/appointment"
)

type HistoryHandler struct {
	hideUC  *ucAppointment.HideClientHistory
	purgeUC *ucAppointment.PurgeBarberHistory
	notif   *notification.Service
	civilTZ string
}

func NewHistoryHandler(
	hideUC *ucAppointment.HideClientHistory,
	purgeUC *ucAppointment.PurgeBarberHistory,
	notif *notification.Service,
	civilTZ string,
) *HistoryHandler {
	return &HistoryHandler{
		hideUC:  hideUC,
		purgeUC: purgeUC,
		notif:   notif,
		civilTZ: civilTZ,
	}
}

// Hide soft-archives the caller's appointment history.
func (h *HistoryHandler) Hide(c *gin.Context) {
	caller := callerFrom(c)

	hidden, err := h.hideUC.Execute(c.Request.Context(), caller.UserID)
	if err != nil {
		writeDomainError(c, err)
		return
	}

	httpresp.OK(c, gin.H{"hidden": hidden})
}

// PurgeBarberHistory hard-deletes a barber's past appointments by mode.
func (h *HistoryHandler) PurgeBarberHistory(c *gin.Context) {
	barberID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		httperr.BadRequest(c, "invalid_id", "Invalid barber id.")
		return
	}

	var shopID uint64
	if s := c.Query("shop_id"); s != "" {
		shopID, err = strconv.ParseUint(s, 10, 64)
		if err != nil {
			httperr.BadRequest(c, "invalid_shop_id", "Invalid shop id.")
			return
		}
	}

	purged, err := h.purgeUC.Execute(
		c.Request.Context(), callerFrom(c),
		ucAppointment.PurgeBarberHistoryInput{
			BarberID: uint(barberID),
			ShopID:   uint(shopID),
			Mode:     c.DefaultQuery("mode", "all"),
		},
	)
	if err != nil {
		writeDomainError(c, err)
		return
	}

	httpresp.OK(c, gin.H{"purged": purged})
}

// ClearNotifications soft-deletes the caller's notifications; the retention
// sweep removes them for good later.
func (h *HistoryHandler) ClearNotifications(c *gin.Context) {
	caller := callerFrom(c)

	cleared, err := h.notif.ClearForUser(
		c.Request.Context(), caller.UserID, timezone.NowIn(h.civilTZ),
	)
	if err != nil {
		httperr.Internal(c, "failed_to_clear", "Unexpected error.")
		return
	}

	httpresp.OK(c, gin.H{"cleared": cleared})
}
