package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/barber-marketplace/internal/authz"
	"github.com/BruksfildServices01/barber-marketplace/internal/httperr"
	"github.com/BruksfildServices01/barber-marketplace/internal/httpresp"
	"github.com/BruksfildServices01/barber-marketplace/internal/models"
	ucAppointment "github.com/BruksfildServices01/barber-marketplace/internal/usecase/appointment"
)

type BlockHandler struct {
	blockUC *ucAppointment.BlockSchedule
}

func NewBlockHandler(blockUC *ucAppointment.BlockSchedule) *BlockHandler {
	return &BlockHandler{blockUC: blockUC}
}

type BlockRequest struct {
	Date      string `json:"date"`
	StartTime string `json:"start_time"`
	BarberID  uint   `json:"barber_id"`
	ShopID    uint   `json:"shop_id" binding:"required"`
	Notes     string `json:"notes"`
}

func (r *BlockRequest) date() string {
	if r.Date != "" {
		return r.Date
	}
	return r.StartTime
}

func (h *BlockHandler) bind(c *gin.Context) (authz.Caller, ucAppointment.BlockScheduleInput, bool) {
	var req BlockRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Invalid request body.")
		return authz.Caller{}, ucAppointment.BlockScheduleInput{}, false
	}

	caller := callerFrom(c)
	barberID := req.BarberID
	// Barbers block their own schedule; owners/admins name the barber.
	if caller.Role == models.RoleBarber || barberID == 0 {
		barberID = caller.UserID
	}

	return caller, ucAppointment.BlockScheduleInput{
		BarberID: barberID,
		ShopID:   req.ShopID,
		Date:     req.date(),
		Notes:    req.Notes,
	}, true
}

func (h *BlockHandler) DayOff(c *gin.Context) {
	caller, in, ok := h.bind(c)
	if !ok {
		return
	}

	ap, err := h.blockUC.MarkDayOff(c.Request.Context(), caller, in)
	if err != nil {
		writeDomainError(c, err)
		return
	}

	httpresp.Created(c, ap)
}

func (h *BlockHandler) LeaveEarly(c *gin.Context) {
	caller, in, ok := h.bind(c)
	if !ok {
		return
	}

	ap, err := h.blockUC.MarkLeaveEarly(c.Request.Context(), caller, in)
	if err != nil {
		writeDomainError(c, err)
		return
	}

	httpresp.Created(c, ap)
}
