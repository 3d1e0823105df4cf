package appointment

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/BruksfildServices01/barber-marketplace/internal/authz"
	domain "github.com/BruksfildServices01/barber-marketplace/internal/domain/appointment"
	"github.com/BruksfildServices01/barber-marketplace/internal/httperr"
	"github.com/BruksfildServices01/barber-marketplace/internal/models"
	"github.com/BruksfildServices01/barber-marketplace/internal/timezone"
)

type MarkPaymentInput struct {
	Method string
	Status string
}

// MarkPayment is pure bookkeeping: no coupling to the scheduling state
// machine, no gateway call.
type MarkPayment struct {
	repo    domain.Repository
	guard   *authz.Guard
	civilTZ string
}

func NewMarkPayment(
	repo domain.Repository,
	guard *authz.Guard,
	civilTZ string,
) *MarkPayment {
	return &MarkPayment{repo: repo, guard: guard, civilTZ: civilTZ}
}

func (uc *MarkPayment) Execute(
	ctx context.Context,
	caller authz.Caller,
	appointmentID uint,
	in MarkPaymentInput,
) (*models.Appointment, error) {

	if in.Method == "" && in.Status == "" {
		return nil, httperr.ErrBusiness("incomplete_data")
	}

	var ap *models.Appointment

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

		if in.Method != "" {
			ap.PaymentMethod = in.Method
		}
		if in.Status != "" {
			ap.PaymentStatus = in.Status
		}
		now := timezone.NowIn(uc.civilTZ)
		ap.PaymentMarkedAt = &now
		markedBy := caller.UserID
		ap.PaymentMarkedBy = &markedBy

		return tx.UpdateAppointment(ctx, ap)
	})
	if err != nil {
		return nil, err
	}

	return ap, nil
}
