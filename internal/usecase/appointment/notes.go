package appointment

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/BruksfildServices01/barber-marketplace/internal/authz"
	domain "github.com/BruksfildServices01/barber-marketplace/internal/domain/appointment"
	"github.com/BruksfildServices01/barber-marketplace/internal/httperr"
	"github.com/BruksfildServices01/barber-marketplace/internal/models"
)

type UpdateNotesInput struct {
	Notes       *string
	NotesBarber *string
}

type UpdateNotes struct {
	repo  domain.Repository
	guard *authz.Guard
}

func NewUpdateNotes(
	repo domain.Repository,
	guard *authz.Guard,
) *UpdateNotes {
	return &UpdateNotes{repo: repo, guard: guard}
}

func (uc *UpdateNotes) Execute(
	ctx context.Context,
	caller authz.Caller,
	appointmentID uint,
	in UpdateNotesInput,
) (*models.Appointment, error) {

	if in.Notes == nil && in.NotesBarber == nil {
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

		if in.Notes != nil {
			ap.Notes = *in.Notes
		}
		if in.NotesBarber != nil {
			ap.NotesBarber = *in.NotesBarber
		}

		return tx.UpdateAppointment(ctx, ap)
	})
	if err != nil {
		return nil, err
	}

	return ap, nil
}
