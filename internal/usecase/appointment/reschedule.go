package appointment

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/barber-marketplace/internal/authz"
	domain "github.com/BruksfildServices01/barber-marketplace/internal/domain/appointment"
	"github.com/BruksfildServices01/barber-marketplace/internal/httperr"
	"github.com/BruksfildServices01/barber-marketplace/internal/models"
	"github.com/BruksfildServices01/barber-marketplace/internal/timezone"
)

// ======================================================
// COLLABORATOR GATEWAYS
// ======================================================

type ChatGateway interface {
	GetOrCreateConversation(
		ctx context.Context,
		ap *models.Appointment,
	) (uint, error)

	PostMessage(
		ctx context.Context,
		conversationID uint,
		senderID uint,
		receiverID uint,
		text string,
		isSystem bool,
		relatedAction string,
		relatedID *uint,
	) error
}

// ======================================================
// PAYLOAD
// ======================================================

type reschedulePayload struct {
	AppointmentID uint   `json:"appointment_id"`
	NewTime       string `json:"new_time"`
}

// ======================================================
// USE CASE
// ======================================================

type Reschedule struct {
	repo    domain.Repository
	guard   *authz.Guard
	norm    *timezone.Normalizer
	civilTZ string
	chat    ChatGateway
}

func NewReschedule(
	repo domain.Repository,
	guard *authz.Guard,
	norm *timezone.Normalizer,
	civilTZ string,
	chat ChatGateway,
) *Reschedule {
	return &Reschedule{
		repo:    repo,
		guard:   guard,
		norm:    norm,
		civilTZ: civilTZ,
		chat:    chat,
	}
}

// ======================================================
// PROPOSE
// ======================================================

// Propose creates the pending reschedule notification, transactionally with
// the appointment read, and mirrors it as a system chat message. The chat echo
// stays outside the transaction: if it fails, the proposal stands and the
// failure is only logged.
func (uc *Reschedule) Propose(
	ctx context.Context,
	caller authz.Caller,
	appointmentID uint,
	newTime any,
) (*models.Notification, uint, error) {

	var (
		ap       *models.Appointment
		n        *models.Notification
		proposed time.Time
	)

	err := uc.repo.Transaction(ctx, func(tx domain.Repository) error {
		var err error
		ap, err = tx.GetAppointmentByID(ctx, appointmentID)
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return httperr.ErrBusiness("appointment_not_found")
		}
		if err != nil {
			return err
		}

		if err := uc.guard.CanManageAppointment(ctx, caller, ap); err != nil {
			return err
		}

		if ap.Status != string(domain.StatusConfirmed) || ap.ClientID == nil {
			return httperr.ErrBusiness("invalid_state")
		}

		proposed, err = uc.norm.Normalize(newTime)
		if err != nil {
			return httperr.ErrBusiness("invalid_date")
		}

		raw, err := json.Marshal(reschedulePayload{
			AppointmentID: ap.ID,
			NewTime:       proposed.Format(time.RFC3339),
		})
		if err != nil {
			return err
		}

		n = &models.Notification{
			UserID:  *ap.ClientID,
			Type:    models.NotificationTypeRescheduleProposal,
			Status:  models.NotificationStatusPending,
			Title:   "Reschedule proposal",
			Body:    "Your barber proposed a new time: " + uc.localize(proposed),
			Payload: datatypes.JSON(raw),
		}
		return tx.CreateNotification(ctx, n)
	})
	if err != nil {
		return nil, 0, err
	}

	convID := uc.echo(
		ctx, ap, ap.BarberID, *ap.ClientID,
		"New time proposed: "+uc.localize(proposed),
		"reschedule_proposed", &n.ID,
	)

	return n, convID, nil
}

// ======================================================
// RESPOND
// ======================================================

// Respond applies the client's decision. Accepting overwrites the
// appointment's date with the proposal's stored time; no availability
// re-check runs here. Rejecting touches only the notification.
func (uc *Reschedule) Respond(
	ctx context.Context,
	caller authz.Caller,
	notificationID uint,
	accepted bool,
) (*models.Notification, *models.Appointment, error) {

	var (
		n  *models.Notification
		ap *models.Appointment
	)

	err := uc.repo.Transaction(ctx, func(tx domain.Repository) error {
		var err error
		n, err = tx.GetNotification(ctx, notificationID)
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return httperr.ErrBusiness("notification_not_found")
		}
		if err != nil {
			return err
		}

		if caller.Role != models.RoleAdmin && caller.UserID != n.UserID {
			return httperr.ErrBusiness("unauthorized")
		}

		payload, err := parseProposal(n)
		if err != nil {
			return err
		}

		if n.Status != models.NotificationStatusPending {
			return httperr.ErrBusiness("invalid_state")
		}

		if accepted {
			newTime, perr := time.Parse(time.RFC3339, payload.NewTime)
			if perr != nil {
				return httperr.ErrBusiness("malformed_notification")
			}

			ap, err = tx.GetAppointmentByID(ctx, payload.AppointmentID)
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return httperr.ErrBusiness("appointment_not_found")
			}
			if err != nil {
				return err
			}

			// the date-move exception only applies to a still-confirmed row
			if ap.Status != string(domain.StatusConfirmed) {
				return httperr.ErrBusiness("invalid_state")
			}

			ap.Date = newTime
			if err := tx.UpdateAppointment(ctx, ap); err != nil {
				return err
			}

			n.Status = models.NotificationStatusAccepted
		} else {
			n.Status = models.NotificationStatusRejected
		}

		return tx.UpdateNotification(ctx, n)
	})
	if err != nil {
		return nil, nil, err
	}

	uc.announceDecision(ctx, n, ap, accepted)

	return n, ap, nil
}

func (uc *Reschedule) announceDecision(
	ctx context.Context,
	n *models.Notification,
	ap *models.Appointment,
	accepted bool,
) {
	target := ap
	if target == nil {
		payload, err := parseProposal(n)
		if err != nil {
			return
		}
		target, err = uc.repo.GetAppointmentByID(ctx, payload.AppointmentID)
		if err != nil {
			return
		}
	}
	if target.ClientID == nil {
		return
	}

	text := "Reschedule proposal rejected."
	action := "reschedule_rejected"
	if accepted {
		text = "Reschedule accepted. New time: " + uc.localize(target.Date)
		action = "reschedule_accepted"
	}

	uc.echo(ctx, target, *target.ClientID, target.BarberID, text, action, &n.ID)
}

// echo posts a system message into the appointment conversation; failures are
// logged and swallowed.
func (uc *Reschedule) echo(
	ctx context.Context,
	ap *models.Appointment,
	senderID uint,
	receiverID uint,
	text string,
	action string,
	relatedID *uint,
) uint {

	convID, err := uc.chat.GetOrCreateConversation(ctx, ap)
	if err != nil {
		log.Println("reschedule chat echo failed:", err)
		return 0
	}

	if err := uc.chat.PostMessage(
		ctx, convID, senderID, receiverID, text, true, action, relatedID,
	); err != nil {
		log.Println("reschedule chat echo failed:", err)
	}

	return convID
}

func (uc *Reschedule) localize(t time.Time) string {
	return t.In(timezone.Location(uc.civilTZ)).Format("02/01/2006 15:04")
}

// parseProposal validates type and payload before any mutation happens.
func parseProposal(n *models.Notification) (*reschedulePayload, error) {
	if n.Type != models.NotificationTypeRescheduleProposal {
		return nil, httperr.ErrBusiness("malformed_notification")
	}

	var p reschedulePayload
	if err := json.Unmarshal(n.Payload, &p); err != nil {
		return nil, httperr.ErrBusiness("malformed_notification")
	}
	if p.AppointmentID == 0 || p.NewTime == "" {
		return nil, httperr.ErrBusiness("malformed_notification")
	}

	return &p, nil
}
