package handlers

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/barber-marketplace/internal/httperr"
	"github.com/BruksfildServices01/barber-marketplace/internal/httpresp"
	ucAppointment "github.com/BruksfildServices01/barber-marketplace/internal/usecase/appointment"
)

// ======================================================
// HANDLER
// ======================================================

type AppointmentHandler struct {
	createUC   *ucAppointment.CreateAppointment
	cancelUC   *ucAppointment.CancelAppointment
	completeUC *ucAppointment.CompleteAppointment
	noShowUC   *ucAppointment.MarkNoShow
	paymentUC  *ucAppointment.MarkPayment
	notesUC    *ucAppointment.UpdateNotes
	deleteUC   *ucAppointment.DeleteAppointment
	listUC     *ucAppointment.ListAppointmentsByDate
}

func NewAppointmentHandler(
	createUC *ucAppointment.CreateAppointment,
	cancelUC *ucAppointment.CancelAppointment,
	completeUC *ucAppointment.CompleteAppointment,
	noShowUC *ucAppointment.MarkNoShow,
	paymentUC *ucAppointment.MarkPayment,
	notesUC *ucAppointment.UpdateNotes,
	deleteUC *ucAppointment.DeleteAppointment,
	listUC *ucAppointment.ListAppointmentsByDate,
) *AppointmentHandler {
	return &AppointmentHandler{
		createUC:   createUC,
		cancelUC:   cancelUC,
		completeUC: completeUC,
		noShowUC:   noShowUC,
		paymentUC:  paymentUC,
		notesUC:    notesUC,
		deleteUC:   deleteUC,
		listUC:     listUC,
	}
}

// ======================================================
// REQUESTS
// ======================================================

// CreateAppointmentRequest is the single canonical booking shape; alias field
// spellings from older clients are resolved before binding ever sees them.
type CreateAppointmentRequest struct {
	Date      string `json:"date"`
	StartTime string `json:"start_time"`
	ClientID  uint   `json:"client_id" binding:"required"`
	BarberID  uint   `json:"barber_id" binding:"required"`
	ShopID    uint   `json:"shop_id" binding:"required"`
	ServiceID uint   `json:"service_id" binding:"required"`
	Notes     string `json:"notes"`
}

func (r *CreateAppointmentRequest) date() string {
	if r.Date != "" {
		return r.Date
	}
	return r.StartTime
}

type MarkPaymentRequest struct {
	Method string `json:"payment_method"`
	Status string `json:"payment_status"`
}

type UpdateNotesRequest struct {
	Notes       *string `json:"notes"`
	NotesBarber *string `json:"notes_barber"`
}

// ======================================================
// CREATE
// ======================================================

func (h *AppointmentHandler) Create(c *gin.Context) {
	var req CreateAppointmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Invalid request body.")
		return
	}
	if req.date() == "" {
		httperr.BadRequest(c, "incomplete_data", "Missing date.")
		return
	}

	ap, err := h.createUC.Execute(c.Request.Context(), ucAppointment.CreateAppointmentInput{
		ClientID:  req.ClientID,
		BarberID:  req.BarberID,
		ShopID:    req.ShopID,
		ServiceID: req.ServiceID,
		Date:      req.date(),
		Notes:     req.Notes,
	})
	if err != nil {
		writeDomainError(c, err)
		return
	}

	httpresp.Created(c, ap)
}

// ======================================================
// LIST
// ======================================================

func (h *AppointmentHandler) ListByDate(c *gin.Context) {
	caller := callerFrom(c)

	dateStr := c.Query("date")
	if dateStr == "" {
		httperr.BadRequest(c, "missing_date", "Date is required.")
		return
	}

	aps, err := h.listUC.Execute(c.Request.Context(), caller.UserID, dateStr)
	if err != nil {
		writeDomainError(c, err)
		return
	}

	httpresp.OK(c, aps)
}

// ======================================================
// LIFECYCLE
// ======================================================

func (h *AppointmentHandler) Cancel(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}

	ap, err := h.cancelUC.Execute(c.Request.Context(), callerFrom(c), id)
	if err != nil {
		writeDomainError(c, err)
		return
	}

	httpresp.OK(c, ap)
}

func (h *AppointmentHandler) Complete(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}

	ap, err := h.completeUC.Execute(c.Request.Context(), callerFrom(c), id)
	if err != nil {
		writeDomainError(c, err)
		return
	}

	httpresp.OK(c, ap)
}

func (h *AppointmentHandler) NoShow(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}

	ap, err := h.noShowUC.Execute(c.Request.Context(), callerFrom(c), id)
	if err != nil {
		writeDomainError(c, err)
		return
	}

	httpresp.OK(c, ap)
}

// ======================================================
// PAYMENT / NOTES
// ======================================================

func (h *AppointmentHandler) MarkPayment(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}

	var req MarkPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Invalid request body.")
		return
	}

	ap, err := h.paymentUC.Execute(
		c.Request.Context(), callerFrom(c), id,
		ucAppointment.MarkPaymentInput{Method: req.Method, Status: req.Status},
	)
	if err != nil {
		writeDomainError(c, err)
		return
	}

	httpresp.OK(c, ap)
}

func (h *AppointmentHandler) UpdateNotes(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}

	var req UpdateNotesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Invalid request body.")
		return
	}

	ap, err := h.notesUC.Execute(
		c.Request.Context(), callerFrom(c), id,
		ucAppointment.UpdateNotesInput{Notes: req.Notes, NotesBarber: req.NotesBarber},
	)
	if err != nil {
		writeDomainError(c, err)
		return
	}

	httpresp.OK(c, ap)
}

// ======================================================
// DELETE (admin / owner)
// ======================================================

func (h *AppointmentHandler) Delete(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}

	if err := h.deleteUC.Execute(c.Request.Context(), callerFrom(c), id); err != nil {
		writeDomainError(c, err)
		return
	}

	c.Status(204)
}

// ======================================================
// HELPERS
// ======================================================

func idParam(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		httperr.BadRequest(c, "invalid_id", "Invalid id.")
		return 0, false
	}
	return uint(id), true
}
