package repository

import (
	"context"
	"errors"
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	domain "github.com/BruksfildServices01/barber-marketplace/internal/domain/appointment"
	"github.com/BruksfildServices01/barber-marketplace/internal/models"
)

type AppointmentGormRepository struct {
	db *gorm.DB
}

func NewAppointmentGormRepository(db *gorm.DB) *AppointmentGormRepository {
	return &AppointmentGormRepository{db: db}
}

func (r *AppointmentGormRepository) Transaction(
	ctx context.Context,
	fn func(domain.Repository) error,
) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&AppointmentGormRepository{db: tx})
	})
}

// --------------------------------------------------
// Service
// --------------------------------------------------

func (r *AppointmentGormRepository) GetService(
	ctx context.Context,
	shopID uint,
	serviceID uint,
) (*models.Service, error) {

	var svc models.Service
	if err := r.db.WithContext(ctx).
		Where("id = ? AND shop_id = ?", serviceID, shopID).
		First(&svc).Error; err != nil {
		return nil, err
	}
	return &svc, nil
}

// --------------------------------------------------
// Appointment (create / conflict)
// --------------------------------------------------

func (r *AppointmentGormRepository) CreateAppointment(
	ctx context.Context,
	ap *models.Appointment,
) error {
	return r.db.WithContext(ctx).Create(ap).Error
}

func (r *AppointmentGormRepository) ListActiveForBarberBetween(
	ctx context.Context,
	barberID uint,
	from time.Time,
	to time.Time,
	lock bool,
) ([]models.Appointment, error) {

	q := r.db.WithContext(ctx).
		Preload("Service").
		Where(
			"barber_id = ? AND status NOT LIKE 'cancelled%' AND date >= ? AND date < ?",
			barberID, from, to,
		).
		Order("date ASC")

	// sqlite has no row locks; the serialized writer covers it there
	if lock && r.db.Dialector.Name() == "postgres" {
		q = q.Clauses(clause.Locking{Strength: "UPDATE"})
	}

	var aps []models.Appointment
	if err := q.Find(&aps).Error; err != nil {
		return nil, err
	}
	return aps, nil
}

func (r *AppointmentGormRepository) LatestLeaveEarly(
	ctx context.Context,
	barberID uint,
	shopID uint,
	dayStart time.Time,
	dayEnd time.Time,
) (*models.Appointment, error) {

	var marker models.Appointment
	err := r.db.WithContext(ctx).
		Where(
			"barber_id = ? AND shop_id = ? AND status = ? AND date >= ? AND date < ?",
			barberID, shopID, string(domain.StatusLeaveEarly), dayStart, dayEnd,
		).
		Order("date DESC").
		First(&marker).Error

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &marker, nil
}

func (r *AppointmentGormRepository) HasSameDayDuplicate(
	ctx context.Context,
	clientID uint,
	serviceID uint,
	dayStart time.Time,
	dayEnd time.Time,
) (bool, error) {

	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.Appointment{}).
		Where(
			"client_id = ? AND service_id = ? AND status = ? AND date >= ? AND date < ?",
			clientID, serviceID, string(domain.StatusConfirmed), dayStart, dayEnd,
		).
		Count(&count).Error; err != nil {
		return false, err
	}

	return count > 0, nil
}

func (r *AppointmentGormRepository) ListEnabledBreaks(
	ctx context.Context,
	barberID uint,
	days []string,
) ([]models.BarberBreak, error) {

	var breaks []models.BarberBreak
	if err := r.db.WithContext(ctx).
		Where("barber_id = ? AND enabled = ? AND day IN ?", barberID, true, days).
		Find(&breaks).Error; err != nil {
		return nil, err
	}
	return breaks, nil
}

// --------------------------------------------------
// Appointment (state change)
// --------------------------------------------------

func (r *AppointmentGormRepository) GetAppointmentByID(
	ctx context.Context,
	id uint,
) (*models.Appointment, error) {

	var ap models.Appointment
	if err := r.db.WithContext(ctx).
		Preload("Service").
		First(&ap, id).Error; err != nil {
		return nil, err
	}
	return &ap, nil
}

func (r *AppointmentGormRepository) UpdateAppointment(
	ctx context.Context,
	ap *models.Appointment,
) error {
	return r.db.WithContext(ctx).Save(ap).Error
}

func (r *AppointmentGormRepository) CancelLeaveEarly(
	ctx context.Context,
	barberID uint,
	shopID uint,
	dayStart time.Time,
	dayEnd time.Time,
) error {
	return r.db.WithContext(ctx).
		Model(&models.Appointment{}).
		Where(
			"barber_id = ? AND shop_id = ? AND status = ? AND date >= ? AND date < ?",
			barberID, shopID, string(domain.StatusLeaveEarly), dayStart, dayEnd,
		).
		Update("status", string(domain.StatusCancelled)).Error
}

// --------------------------------------------------
// Notification (reschedule workflow)
// --------------------------------------------------

func (r *AppointmentGormRepository) CreateNotification(
	ctx context.Context,
	n *models.Notification,
) error {
	return r.db.WithContext(ctx).Create(n).Error
}

func (r *AppointmentGormRepository) GetNotification(
	ctx context.Context,
	id uint,
) (*models.Notification, error) {

	var n models.Notification
	if err := r.db.WithContext(ctx).First(&n, id).Error; err != nil {
		return nil, err
	}
	return &n, nil
}

func (r *AppointmentGormRepository) UpdateNotification(
	ctx context.Context,
	n *models.Notification,
) error {
	return r.db.WithContext(ctx).Save(n).Error
}

// --------------------------------------------------
// Listing
// --------------------------------------------------

func (r *AppointmentGormRepository) ListForBarberDay(
	ctx context.Context,
	barberID uint,
	dayStart time.Time,
	dayEnd time.Time,
) ([]models.Appointment, error) {

	var aps []models.Appointment
	if err := r.db.WithContext(ctx).
		Preload("Client").
		Preload("Service").
		Where(
			"barber_id = ? AND date >= ? AND date < ?",
			barberID, dayStart, dayEnd,
		).
		Order("date ASC").
		Find(&aps).Error; err != nil {
		return nil, err
	}
	return aps, nil
}

// --------------------------------------------------
// History retention
// --------------------------------------------------

// HideClientHistory soft-archives the client-visible history: completed rows,
// cancelled variants, and past rows not in a terminal status. Rows are never
// deleted here.
func (r *AppointmentGormRepository) HideClientHistory(
	ctx context.Context,
	clientID uint,
	now time.Time,
) (int64, error) {

	res := r.db.WithContext(ctx).
		Model(&models.Appointment{}).
		Where("client_id = ? AND hidden_for_client = ?", clientID, false).
		Where(
			r.db.Where("status = ?", string(domain.StatusCompleted)).
				Or("status LIKE 'cancelled%'").
				Or("status NOT IN ? AND date < ?",
					[]string{
						string(domain.StatusCompleted),
						string(domain.StatusNoShow),
					},
					now,
				),
		).
		Update("hidden_for_client", true)

	return res.RowsAffected, res.Error
}

func (r *AppointmentGormRepository) ListPurgeableIDs(
	ctx context.Context,
	barberID uint,
	shopID uint,
	mode string,
	before time.Time,
) ([]uint, error) {

	q := r.db.WithContext(ctx).
		Model(&models.Appointment{}).
		Where("barber_id = ? AND date < ?", barberID, before)

	if shopID != 0 {
		q = q.Where("shop_id = ?", shopID)
	}

	switch mode {
	case "cancelled":
		q = q.Where("status LIKE 'cancelled%'")
	case "completed":
		q = q.Where("status = ?", string(domain.StatusCompleted))
	case "no_show":
		q = q.Where("status = ?", string(domain.StatusNoShow))
	case "all":
		q = q.Where(
			"status LIKE 'cancelled%' OR status IN ?",
			[]string{
				string(domain.StatusCompleted),
				string(domain.StatusNoShow),
			},
		)
	case "all_any_status":
		// no status filter
	default:
		return nil, errors.New("unknown purge mode")
	}

	var ids []uint
	if err := q.Pluck("id", &ids).Error; err != nil {
		return nil, err
	}
	return ids, nil
}

// DeleteAppointmentsCascade removes appointments plus their conversations,
// messages and related notifications.
func (r *AppointmentGormRepository) DeleteAppointmentsCascade(
	ctx context.Context,
	ids []uint,
) error {
	if len(ids) == 0 {
		return nil
	}

	db := r.db.WithContext(ctx)

	var convIDs []uint
	if err := db.Model(&models.Conversation{}).
		Where("appointment_id IN ?", ids).
		Pluck("id", &convIDs).Error; err != nil {
		return err
	}

	if len(convIDs) > 0 {
		if err := db.Where("conversation_id IN ?", convIDs).
			Delete(&models.Message{}).Error; err != nil {
			return err
		}
		if err := db.Where("id IN ?", convIDs).
			Delete(&models.Conversation{}).Error; err != nil {
			return err
		}
	}

	for _, id := range ids {
		if err := db.
			Where("type = ?", models.NotificationTypeRescheduleProposal).
			Where(datatypes.JSONQuery("payload").Equals(id, "appointment_id")).
			Delete(&models.Notification{}).Error; err != nil {
			return err
		}
	}

	return db.Where("id IN ?", ids).Delete(&models.Appointment{}).Error
}

// Compile-time check
var _ domain.Repository = (*AppointmentGormRepository)(nil)
