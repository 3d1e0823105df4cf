package appointment

import (
	"context"

	"github.com/google/uuid"

	"github.com/BruksfildServices01/barber-marketplace/internal/audit"
	"github.com/BruksfildServices01/barber-marketplace/internal/authz"
	domain "github.com/BruksfildServices01/barber-marketplace/internal/domain/appointment"
	"github.com/BruksfildServices01/barber-marketplace/internal/httperr"
	"github.com/BruksfildServices01/barber-marketplace/internal/models"
	"github.com/BruksfildServices01/barber-marketplace/internal/timezone"
)

type BlockScheduleInput struct {
	BarberID uint
	ShopID   uint
	Date     any
	Notes    string
}

// BlockSchedule creates the barber-only blocking rows: whole-day markers
// (day_off) and same-day cutoffs (leave_early). Blocking rows never carry a
// client or a service.
type BlockSchedule struct {
	repo    domain.Repository
	guard   *authz.Guard
	norm    *timezone.Normalizer
	civilTZ string
	audit   *audit.Dispatcher
}

func NewBlockSchedule(
	repo domain.Repository,
	guard *authz.Guard,
	norm *timezone.Normalizer,
	civilTZ string,
	audit *audit.Dispatcher,
) *BlockSchedule {
	return &BlockSchedule{
		repo:    repo,
		guard:   guard,
		norm:    norm,
		civilTZ: civilTZ,
		audit:   audit,
	}
}

func (uc *BlockSchedule) MarkDayOff(
	ctx context.Context,
	caller authz.Caller,
	in BlockScheduleInput,
) (*models.Appointment, error) {
	return uc.create(ctx, caller, in, domain.StatusDayOff)
}

// MarkLeaveEarly cancels any earlier leave-early marker of the same barber,
// shop and civil day before inserting the new one: the latest marker wins.
func (uc *BlockSchedule) MarkLeaveEarly(
	ctx context.Context,
	caller authz.Caller,
	in BlockScheduleInput,
) (*models.Appointment, error) {
	return uc.create(ctx, caller, in, domain.StatusLeaveEarly)
}

func (uc *BlockSchedule) create(
	ctx context.Context,
	caller authz.Caller,
	in BlockScheduleInput,
	status domain.Status,
) (*models.Appointment, error) {

	if in.BarberID == 0 || in.ShopID == 0 {
		return nil, httperr.ErrBusiness("incomplete_data")
	}

	// Same guard as the lifecycle transitions: barber-self, shop owner, admin.
	target := &models.Appointment{BarberID: in.BarberID, ShopID: in.ShopID}
	if err := uc.guard.CanManageAppointment(ctx, caller, target); err != nil {
		return nil, err
	}

	start, err := uc.norm.Normalize(in.Date)
	if err != nil {
		return nil, httperr.ErrBusiness("invalid_date")
	}

	var created *models.Appointment

	err = uc.repo.Transaction(ctx, func(tx domain.Repository) error {

		if status == domain.StatusLeaveEarly {
			dayStart, dayEnd := timezone.CivilDayBounds(start, uc.civilTZ)
			if err := tx.CancelLeaveEarly(ctx, in.BarberID, in.ShopID, dayStart, dayEnd); err != nil {
				return err
			}
		}

		ap := &models.Appointment{
			UUID:     uuid.NewString(),
			Date:     start,
			BarberID: in.BarberID,
			ShopID:   in.ShopID,
			Status:   string(status),
			Notes:    in.Notes,
		}

		if err := tx.CreateAppointment(ctx, ap); err != nil {
			if httperr.IsUniqueViolation(err) {
				return httperr.ErrBusiness("slot_taken")
			}
			return err
		}

		created = ap
		return nil
	})
	if err != nil {
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		ShopID:   in.ShopID,
		UserID:   &in.BarberID,
		Action:   "schedule_" + string(status),
		Entity:   "appointment",
		EntityID: &created.ID,
	})

	return created, nil
}
