package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/barber-marketplace/internal/authz"
	"github.com/BruksfildServices01/barber-marketplace/internal/httperr"
	"github.com/BruksfildServices01/barber-marketplace/internal/middleware"
)

func callerFrom(c *gin.Context) authz.Caller {
	return authz.Caller{
		UserID: c.MustGet(middleware.ContextUserID).(uint),
		Role:   c.MustGet(middleware.ContextUserRole).(string),
	}
}

var businessMessages = map[string]string{
	"invalid_date":           "Invalid date.",
	"incomplete_data":        "Incomplete data.",
	"invalid_state":          "Operation not allowed in the current state.",
	"appointment_in_past":    "Appointment already started.",
	"service_not_found":      "Service not found.",
	"malformed_notification": "Notification is not a valid reschedule proposal.",
	"unknown_mode":           "Unknown purge mode.",
	"slot_taken":             "Time slot already taken.",
	"break_conflict":         "Time falls within a barber break.",
	"leave_early_conflict":   "Barber is gone for the day.",
	"duplicate_same_day":     "Service already booked for that day.",
	"appointment_not_found":  "Appointment not found.",
	"notification_not_found": "Notification not found.",
	"unauthorized":           "Not allowed.",
}

// writeDomainError maps business error codes onto the response taxonomy:
// validation 400, conflict 409, not found 404, authorization 403, rest 500.
func writeDomainError(c *gin.Context, err error) {
	code := httperr.BusinessCode(err)
	msg := businessMessages[code]

	switch code {
	case "invalid_date", "incomplete_data", "invalid_state",
		"appointment_in_past", "service_not_found",
		"malformed_notification", "unknown_mode":
		httperr.BadRequest(c, code, msg)

	case "slot_taken", "break_conflict", "leave_early_conflict",
		"duplicate_same_day":
		httperr.Conflict(c, code, msg)

	case "appointment_not_found", "notification_not_found":
		httperr.NotFound(c, code, msg)

	case "unauthorized":
		httperr.Forbidden(c, code, msg)

	default:
		httperr.Internal(c, "internal_error", "Unexpected error.")
	}
}
