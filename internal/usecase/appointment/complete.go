package appointment

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/BruksfildServices01/barber-marketplace/internal/audit"
	"github.com/BruksfildServices01/barber-marketplace/internal/authz"
	domain "github.com/BruksfildServices01/barber-marketplace/internal/domain/appointment"
	"github.com/BruksfildServices01/barber-marketplace/internal/httperr"
	"github.com/BruksfildServices01/barber-marketplace/internal/models"
	"github.com/BruksfildServices01/barber-marketplace/internal/timezone"
)

type CompleteAppointment struct {
	repo    domain.Repository
	guard   *authz.Guard
	civilTZ string
	audit   *audit.Dispatcher
}

func NewCompleteAppointment(
	repo domain.Repository,
	guard *authz.Guard,
	civilTZ string,
	audit *audit.Dispatcher,
) *CompleteAppointment {
	return &CompleteAppointment{
		repo:    repo,
		guard:   guard,
		civilTZ: civilTZ,
		audit:   audit,
	}
}

func (uc *CompleteAppointment) Execute(
	ctx context.Context,
	caller authz.Caller,
	appointmentID uint,
) (*models.Appointment, error) {

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

		now := timezone.NowIn(uc.civilTZ)
		if err := domain.Complete(ap, now); err != nil {
			return err
		}

		return tx.UpdateAppointment(ctx, ap)
	})
	if err != nil {
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		ShopID:   ap.ShopID,
		UserID:   &caller.UserID,
		Action:   "appointment_completed",
		Entity:   "appointment",
		EntityID: &ap.ID,
	})

	return ap, nil
}
