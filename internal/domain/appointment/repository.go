package appointment

import (
	"context"
	"time"

	"github.com/BruksfildServices01/barber-marketplace/internal/models"
)

type Repository interface {
	// Transaction runs fn against a repository bound to one database
	// transaction; any error rolls the whole scope back.
	Transaction(ctx context.Context, fn func(Repository) error) error

	// -------- Service --------
	GetService(
		ctx context.Context,
		shopID uint,
		serviceID uint,
	) (*models.Service, error)

	// -------- Appointment (create / conflict) --------
	CreateAppointment(
		ctx context.Context,
		ap *models.Appointment,
	) error

	// ListActiveForBarberBetween returns non-cancelled rows (confirmed and
	// blocking markers) whose start lies in [from, to), service preloaded,
	// optionally locked FOR UPDATE.
	ListActiveForBarberBetween(
		ctx context.Context,
		barberID uint,
		from time.Time,
		to time.Time,
		lock bool,
	) ([]models.Appointment, error)

	LatestLeaveEarly(
		ctx context.Context,
		barberID uint,
		shopID uint,
		dayStart time.Time,
		dayEnd time.Time,
	) (*models.Appointment, error)

	HasSameDayDuplicate(
		ctx context.Context,
		clientID uint,
		serviceID uint,
		dayStart time.Time,
		dayEnd time.Time,
	) (bool, error)

	ListEnabledBreaks(
		ctx context.Context,
		barberID uint,
		days []string,
	) ([]models.BarberBreak, error)

	// -------- Appointment (state change) --------
	GetAppointmentByID(
		ctx context.Context,
		id uint,
	) (*models.Appointment, error)

	UpdateAppointment(
		ctx context.Context,
		ap *models.Appointment,
	) error

	// CancelLeaveEarly cancels prior leave-early markers of the barber/shop
	// on one civil day (latest marker wins).
	CancelLeaveEarly(
		ctx context.Context,
		barberID uint,
		shopID uint,
		dayStart time.Time,
		dayEnd time.Time,
	) error

	// -------- Notification (reschedule workflow) --------
	CreateNotification(
		ctx context.Context,
		n *models.Notification,
	) error

	GetNotification(
		ctx context.Context,
		id uint,
	) (*models.Notification, error)

	UpdateNotification(
		ctx context.Context,
		n *models.Notification,
	) error

	// -------- Listing --------
	ListForBarberDay(
		ctx context.Context,
		barberID uint,
		dayStart time.Time,
		dayEnd time.Time,
	) ([]models.Appointment, error)

	// -------- History retention --------
	HideClientHistory(
		ctx context.Context,
		clientID uint,
		now time.Time,
	) (int64, error)

	// ListPurgeableIDs selects appointments of the barber strictly before
	// the cutoff, filtered by mode; shopID 0 spans all shops.
	ListPurgeableIDs(
		ctx context.Context,
		barberID uint,
		shopID uint,
		mode string,
		before time.Time,
	) ([]uint, error)

	DeleteAppointmentsCascade(
		ctx context.Context,
		ids []uint,
	) error
}
