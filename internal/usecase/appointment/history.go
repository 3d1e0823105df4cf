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

// ======================================================
// CLIENT HIDE (soft archive)
// ======================================================

type HideClientHistory struct {
	repo    domain.Repository
	civilTZ string
}

func NewHideClientHistory(
	repo domain.Repository,
	civilTZ string,
) *HideClientHistory {
	return &HideClientHistory{repo: repo, civilTZ: civilTZ}
}

// Execute flags the caller's finished and stale appointments as hidden.
// Nothing is deleted; re-running is a no-op for already hidden rows.
func (uc *HideClientHistory) Execute(
	ctx context.Context,
	clientID uint,
) (int64, error) {
	now := timezone.NowIn(uc.civilTZ)
	return uc.repo.HideClientHistory(ctx, clientID, now)
}

// ======================================================
// BARBER HISTORY PURGE (hard delete)
// ======================================================

type PurgeBarberHistoryInput struct {
	BarberID uint
	ShopID   uint // 0 spans all shops (admin / barber-self)
	Mode     string
}

type PurgeBarberHistory struct {
	repo    domain.Repository
	guard   *authz.Guard
	civilTZ string
	audit   *audit.Dispatcher
}

func NewPurgeBarberHistory(
	repo domain.Repository,
	guard *authz.Guard,
	civilTZ string,
	audit *audit.Dispatcher,
) *PurgeBarberHistory {
	return &PurgeBarberHistory{
		repo:    repo,
		guard:   guard,
		civilTZ: civilTZ,
		audit:   audit,
	}
}

// Execute hard-deletes the barber's appointments strictly before the current
// civil day, with their conversations, messages and related notifications.
func (uc *PurgeBarberHistory) Execute(
	ctx context.Context,
	caller authz.Caller,
	in PurgeBarberHistoryInput,
) (int, error) {

	switch {
	case caller.Role == models.RoleAdmin:

	case caller.Role == models.RoleOwner:
		if in.ShopID == 0 {
			return 0, httperr.ErrBusiness("unauthorized")
		}
		owns, err := uc.guard.OwnsShop(ctx, caller.UserID, in.ShopID)
		if err != nil {
			return 0, err
		}
		if !owns {
			return 0, httperr.ErrBusiness("unauthorized")
		}

	case caller.Role == models.RoleBarber && caller.UserID == in.BarberID:
		allowed, err := uc.guard.AllowsSelfPurge(ctx, in.BarberID)
		if err != nil {
			return 0, err
		}
		if !allowed {
			return 0, httperr.ErrBusiness("unauthorized")
		}

	default:
		return 0, httperr.ErrBusiness("unauthorized")
	}

	switch in.Mode {
	case "cancelled", "completed", "no_show", "all", "all_any_status":
	default:
		return 0, httperr.ErrBusiness("unknown_mode")
	}

	dayStart, _ := timezone.CivilDayBounds(timezone.NowIn(uc.civilTZ), uc.civilTZ)

	var purged int
	err := uc.repo.Transaction(ctx, func(tx domain.Repository) error {
		ids, err := tx.ListPurgeableIDs(ctx, in.BarberID, in.ShopID, in.Mode, dayStart)
		if err != nil {
			return err
		}

		purged = len(ids)
		return tx.DeleteAppointmentsCascade(ctx, ids)
	})
	if err != nil {
		return 0, err
	}

	uc.audit.Dispatch(audit.Event{
		ShopID:   in.ShopID,
		UserID:   &caller.UserID,
		Action:   "history_purged",
		Entity:   "appointment",
		Metadata: map[string]any{"barber_id": in.BarberID, "mode": in.Mode, "count": purged},
	})

	return purged, nil
}

// ======================================================
// SINGLE DELETE (admin / owner)
// ======================================================

type DeleteAppointment struct {
	repo  domain.Repository
	guard *authz.Guard
	audit *audit.Dispatcher
}

func NewDeleteAppointment(
	repo domain.Repository,
	guard *authz.Guard,
	audit *audit.Dispatcher,
) *DeleteAppointment {
	return &DeleteAppointment{repo: repo, guard: guard, audit: audit}
}

func (uc *DeleteAppointment) Execute(
	ctx context.Context,
	caller authz.Caller,
	appointmentID uint,
) error {

	ap, err := uc.repo.GetAppointmentByID(ctx, appointmentID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return httperr.ErrBusiness("appointment_not_found")
	}
	if err != nil {
		return err
	}

	// Barbers never hard-delete single rows, even their own.
	if caller.Role != models.RoleAdmin && caller.Role != models.RoleOwner {
		return httperr.ErrBusiness("unauthorized")
	}
	if err := uc.guard.CanManageAppointment(ctx, caller, ap); err != nil {
		return err
	}

	err = uc.repo.Transaction(ctx, func(tx domain.Repository) error {
		return tx.DeleteAppointmentsCascade(ctx, []uint{ap.ID})
	})
	if err != nil {
		return err
	}

	uc.audit.Dispatch(audit.Event{
		ShopID:   ap.ShopID,
		UserID:   &caller.UserID,
		Action:   "appointment_deleted",
		Entity:   "appointment",
		EntityID: &ap.ID,
	})

	return nil
}
