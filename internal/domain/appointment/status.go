package appointment

import (
	"strings"
	"time"

	"github.com/BruksfildServices01/barber-marketplace/internal/httperr"
	"github.com/BruksfildServices01/barber-marketplace/internal/models"
)

// ===============================
// Appointment Status
// ===============================

type Status string

const (
	StatusConfirmed  Status = "confirmed"
	StatusCancelled  Status = "cancelled"
	StatusCompleted  Status = "completed"
	StatusNoShow     Status = "no_show"
	StatusDayOff     Status = "day_off"
	StatusLeaveEarly Status = "leave_early"
)

// IsCancelledVariant matches "cancelled" plus legacy suffixed values
// ("cancelled_by_client" etc.), which all count as cancelled.
func IsCancelledVariant(s string) bool {
	return strings.HasPrefix(s, string(StatusCancelled))
}

// IsTerminal reports whether no further transition is allowed, except the
// reschedule-accept date move on confirmed rows.
func IsTerminal(s string) bool {
	return IsCancelledVariant(s) ||
		s == string(StatusCompleted) ||
		s == string(StatusNoShow)
}

// IsBlocking reports whether the row is a barber-only schedule marker.
func IsBlocking(s string) bool {
	return s == string(StatusDayOff) || s == string(StatusLeaveEarly)
}

func InitialStatus() Status {
	return StatusConfirmed
}

// ===============================
// Guarded transitions
// ===============================

// Cancel moves an appointment to cancelled. Blocking rows can always be
// undone; a confirmed appointment only before its start.
func Cancel(ap *models.Appointment, now time.Time) error {
	switch {
	case IsTerminal(ap.Status):
		return httperr.ErrBusiness("invalid_state")
	case ap.Status == string(StatusConfirmed) && ap.Date.Before(now):
		return httperr.ErrBusiness("appointment_in_past")
	}

	ap.Status = string(StatusCancelled)
	return nil
}

// Complete marks a confirmed appointment done. Re-completing is a no-op and
// never overwrites an existing end time.
func Complete(ap *models.Appointment, now time.Time) error {
	if ap.Status == string(StatusCompleted) {
		return nil
	}
	if ap.Status != string(StatusConfirmed) {
		return httperr.ErrBusiness("invalid_state")
	}

	ap.Status = string(StatusCompleted)
	if ap.ActualEndTime == nil {
		ap.ActualEndTime = &now
	}
	return nil
}

// MarkNoShow is unconditional for confirmed appointments.
func MarkNoShow(ap *models.Appointment) error {
	if ap.Status != string(StatusConfirmed) {
		return httperr.ErrBusiness("invalid_state")
	}

	ap.Status = string(StatusNoShow)
	return nil
}
