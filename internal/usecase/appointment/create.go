package appointment

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/BruksfildServices01/barber-marketplace/internal/audit"
	domain "github.com/BruksfildServices01/barber-marketplace/internal/domain/appointment"
	"github.com/BruksfildServices01/barber-marketplace/internal/httperr"
	"github.com/BruksfildServices01/barber-marketplace/internal/models"
	"github.com/BruksfildServices01/barber-marketplace/internal/timezone"
)

// ======================================================
// INPUT
// ======================================================

type CreateAppointmentInput struct {
	ClientID  uint
	BarberID  uint
	ShopID    uint
	ServiceID uint

	// Raw date input; accepted shapes are resolved by the normalizer.
	Date any

	Notes string
}

// ======================================================
// USE CASE
// ======================================================

type CreateAppointment struct {
	repo    domain.Repository
	norm    *timezone.Normalizer
	civilTZ string
	audit   *audit.Dispatcher
}

func NewCreateAppointment(
	repo domain.Repository,
	norm *timezone.Normalizer,
	civilTZ string,
	audit *audit.Dispatcher,
) *CreateAppointment {
	return &CreateAppointment{
		repo:    repo,
		norm:    norm,
		civilTZ: civilTZ,
		audit:   audit,
	}
}

// ======================================================
// EXECUTE
// ======================================================

// Execute books a confirmed appointment. The slot, leave-early and break
// checks run inside the same transaction as the insert; a unique violation at
// insert time is reported as the same slot conflict as the proactive check.
func (uc *CreateAppointment) Execute(
	ctx context.Context,
	in CreateAppointmentInput,
) (*models.Appointment, error) {

	if in.ClientID == 0 || in.BarberID == 0 || in.ShopID == 0 || in.ServiceID == 0 {
		return nil, httperr.ErrBusiness("incomplete_data")
	}

	start, err := uc.norm.Normalize(in.Date)
	if err != nil {
		return nil, httperr.ErrBusiness("invalid_date")
	}

	dayStart, dayEnd := timezone.CivilDayBounds(start, uc.civilTZ)

	var created *models.Appointment

	err = uc.repo.Transaction(ctx, func(tx domain.Repository) error {

		svc, err := tx.GetService(ctx, in.ShopID, in.ServiceID)
		if err != nil {
			return httperr.ErrBusiness("service_not_found")
		}

		end := start.Add(time.Duration(svc.DurationMin) * time.Minute)

		if err := checkSlotFree(ctx, tx, in.BarberID, start, end, uc.civilTZ); err != nil {
			return err
		}

		if err := checkLeaveEarly(ctx, tx, in.BarberID, in.ShopID, start, dayStart, dayEnd); err != nil {
			return err
		}

		if err := checkBreaks(ctx, tx, in.BarberID, start, svc.DurationMin, uc.civilTZ); err != nil {
			return err
		}

		dup, err := tx.HasSameDayDuplicate(ctx, in.ClientID, in.ServiceID, dayStart, dayEnd)
		if err != nil {
			return err
		}
		if dup {
			return httperr.ErrBusiness("duplicate_same_day")
		}

		clientID := in.ClientID
		serviceID := in.ServiceID
		ap := &models.Appointment{
			UUID:      uuid.NewString(),
			Date:      start,
			ClientID:  &clientID,
			BarberID:  in.BarberID,
			ShopID:    in.ShopID,
			ServiceID: &serviceID,
			Status:    string(domain.InitialStatus()),
			Notes:     in.Notes,
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
		if code := httperr.BusinessCode(err); code == "slot_taken" ||
			code == "break_conflict" || code == "leave_early_conflict" {
			uc.audit.Dispatch(audit.Event{
				ShopID:   in.ShopID,
				UserID:   &in.BarberID,
				Action:   "appointment_conflict",
				Entity:   "appointment",
				Metadata: map[string]any{"start": start, "reason": code},
			})
		}
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		ShopID:   in.ShopID,
		UserID:   &in.BarberID,
		Action:   "appointment_created",
		Entity:   "appointment",
		EntityID: &created.ID,
	})

	return created, nil
}

// ======================================================
// AVAILABILITY CHECKS
// ======================================================

// checkSlotFree rejects overlap with any active appointment of the barber.
// Day-off markers block their entire civil day, so the window runs through the
// end of that day; the lookback covers bookings started the previous day that
// run past midnight.
func checkSlotFree(
	ctx context.Context,
	tx domain.Repository,
	barberID uint,
	start time.Time,
	end time.Time,
	civilTZ string,
) error {

	_, dayEnd := timezone.CivilDayBounds(start, civilTZ)
	to := end
	if dayEnd.After(to) {
		to = dayEnd
	}

	existing, err := tx.ListActiveForBarberBetween(
		ctx, barberID, start.Add(-24*time.Hour), to, true,
	)
	if err != nil {
		return err
	}

	for i := range existing {
		ap := &existing[i]

		switch {
		case ap.Status == string(domain.StatusDayOff):
			if timezone.SameCivilDay(ap.Date, start, civilTZ) {
				return httperr.ErrBusiness("slot_taken")
			}

		case ap.Status == string(domain.StatusLeaveEarly):
			// handled by the leave-early check

		default:
			dur := 0
			if ap.Service != nil {
				dur = ap.Service.DurationMin
			}
			apEnd := ap.Date.Add(time.Duration(dur) * time.Minute)
			if ap.Date.Before(end) && apEnd.After(start) {
				return httperr.ErrBusiness("slot_taken")
			}
		}
	}

	return nil
}

// checkLeaveEarly enforces the same-civil-day cutoff: once the barber left,
// nothing at or after the marker is bookable.
func checkLeaveEarly(
	ctx context.Context,
	tx domain.Repository,
	barberID uint,
	shopID uint,
	start time.Time,
	dayStart time.Time,
	dayEnd time.Time,
) error {

	marker, err := tx.LatestLeaveEarly(ctx, barberID, shopID, dayStart, dayEnd)
	if err != nil {
		return err
	}

	if marker != nil && !start.Before(marker.Date) {
		return httperr.ErrBusiness("leave_early_conflict")
	}

	return nil
}

// checkBreaks tests the candidate span against the barber's weekly breaks on
// its weekday and the previous one (for windows wrapping past midnight).
func checkBreaks(
	ctx context.Context,
	tx domain.Repository,
	barberID uint,
	start time.Time,
	durationMin int,
	civilTZ string,
) error {

	day := timezone.WeekdayCode(start, civilTZ)
	prevDay := timezone.PrevWeekdayCode(day)
	nextDay := timezone.WeekdayCode(start.Add(24*time.Hour), civilTZ)

	breaks, err := tx.ListEnabledBreaks(ctx, barberID, []string{day, prevDay})
	if err != nil {
		return err
	}
	if len(breaks) == 0 {
		return nil
	}

	apptIntervals := domain.SplitSpan(
		day, nextDay,
		timezone.MinuteOfDay(start, civilTZ),
		durationMin,
	)

	var breakIntervals []domain.Interval
	for _, b := range breaks {
		startMin, err := domain.ParseClock(b.StartTime)
		if err != nil {
			continue
		}
		endMin, err := domain.ParseClock(b.EndTime)
		if err != nil {
			continue
		}

		following := day
		if b.Day == day {
			following = nextDay
		}
		breakIntervals = append(
			breakIntervals,
			domain.BreakIntervals(b.Day, following, startMin, endMin)...,
		)
	}

	if domain.HasConflict(apptIntervals, breakIntervals) {
		return httperr.ErrBusiness("break_conflict")
	}

	return nil
}
