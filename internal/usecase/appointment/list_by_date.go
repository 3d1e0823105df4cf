package appointment

import (
	"context"

	domain "github.com/BruksfildServices01/barber-marketplace/internal/domain/appointment"
	"github.com/BruksfildServices01/barber-marketplace/internal/httperr"
	"github.com/BruksfildServices01/barber-marketplace/internal/models"
	"github.com/BruksfildServices01/barber-marketplace/internal/timezone"
)

type ListAppointmentsByDate struct {
	repo    domain.Repository
	norm    *timezone.Normalizer
	civilTZ string
}

func NewListAppointmentsByDate(
	repo domain.Repository,
	norm *timezone.Normalizer,
	civilTZ string,
) *ListAppointmentsByDate {
	return &ListAppointmentsByDate{repo: repo, norm: norm, civilTZ: civilTZ}
}

func (uc *ListAppointmentsByDate) Execute(
	ctx context.Context,
	barberID uint,
	date string,
) ([]models.Appointment, error) {

	day, err := uc.norm.Normalize(date)
	if err != nil {
		return nil, httperr.ErrBusiness("invalid_date")
	}

	dayStart, dayEnd := timezone.CivilDayBounds(day, uc.civilTZ)
	return uc.repo.ListForBarberDay(ctx, barberID, dayStart, dayEnd)
}
