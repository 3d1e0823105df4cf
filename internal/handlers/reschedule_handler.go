package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/barber-marketplace/internal/httperr"
	"github.com/BruksfildServices01/barber-marketplace/internal/httpresp"
	ucAppointment "github.com/BruksfildServices01/barber-marketplace/internal/usecase/appointment"
)

type RescheduleHandler struct {
	rescheduleUC *ucAppointment.Reschedule
}

func NewRescheduleHandler(rescheduleUC *ucAppointment.Reschedule) *RescheduleHandler {
	return &RescheduleHandler{rescheduleUC: rescheduleUC}
}

type ProposeRequest struct {
	NewTime string `json:"new_time" binding:"required"`
}

type RespondRequest struct {
	Accepted *bool `json:"accepted" binding:"required"`
}

func (h *RescheduleHandler) Propose(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}

	var req ProposeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Invalid request body.")
		return
	}

	n, convID, err := h.rescheduleUC.Propose(
		c.Request.Context(), callerFrom(c), id, req.NewTime,
	)
	if err != nil {
		writeDomainError(c, err)
		return
	}

	httpresp.Created(c, gin.H{
		"notification":    n,
		"conversation_id": convID,
	})
}

func (h *RescheduleHandler) Respond(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}

	var req RespondRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Invalid request body.")
		return
	}

	n, ap, err := h.rescheduleUC.Respond(
		c.Request.Context(), callerFrom(c), id, *req.Accepted,
	)
	if err != nil {
		writeDomainError(c, err)
		return
	}

	resp := gin.H{"notification": n}
	if ap != nil {
		resp["appointment"] = ap
	}
	httpresp.OK(c, resp)
}
