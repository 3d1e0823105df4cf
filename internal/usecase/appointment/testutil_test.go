package appointment

import (
	"context"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/barber-marketplace/internal/audit"
	"github.com/BruksfildServices01/barber-marketplace/internal/authz"
	domain "github.com/BruksfildServices01/barber-marketplace/internal/domain/appointment"
	infraRepo "github.com/BruksfildServices01/barber-marketplace/internal/infra/repository"
	"github.com/BruksfildServices01/barber-marketplace/internal/models"
	"github.com/BruksfildServices01/barber-marketplace/internal/timezone"
)

const testCivilTZ = "America/Sao_Paulo"

type fixture struct {
	t    *testing.T
	db   *gorm.DB
	repo domain.Repository
	norm *timezone.Normalizer

	guard *authz.Guard
	audit *audit.Dispatcher

	client  *models.User
	client2 *models.User
	barber  *models.User
	owner   *models.User
	shop    *models.Shop
	service *models.Service
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	dsn := fmt.Sprintf(
		"file:%s?mode=memory&cache=shared",
		strings.NewReplacer("/", "_", " ", "_").Replace(t.Name()),
	)
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{TranslateError: true})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}

	if err := db.AutoMigrate(
		&models.User{},
		&models.Shop{},
		&models.Service{},
		&models.Appointment{},
		&models.BarberBreak{},
		&models.Notification{},
		&models.Conversation{},
		&models.Message{},
		&models.AuditLog{},
	); err != nil {
		t.Fatalf("migrate: %v", err)
	}

	norm, err := timezone.NewNormalizer("-03:00")
	if err != nil {
		t.Fatalf("normalizer: %v", err)
	}

	f := &fixture{
		t:     t,
		db:    db,
		repo:  infraRepo.NewAppointmentGormRepository(db),
		norm:  norm,
		guard: authz.NewGuard(db),
		audit: audit.NewDispatcher(audit.New(db)),
	}

	f.owner = f.addUser("Olga", models.RoleOwner)
	f.barber = f.addUser("Bruno", models.RoleBarber)
	f.client = f.addUser("Carla", models.RoleClient)
	f.client2 = f.addUser("Caio", models.RoleClient)

	f.shop = &models.Shop{
		OwnerID: f.owner.ID,
		Name:    "Main Street Cuts",
		Slug:    "main-street-cuts",
	}
	if err := db.Create(f.shop).Error; err != nil {
		t.Fatalf("create shop: %v", err)
	}

	f.service = &models.Service{
		ShopID:      f.shop.ID,
		Name:        "Haircut",
		DurationMin: 30,
		Price:       50,
		Active:      true,
	}
	if err := db.Create(f.service).Error; err != nil {
		t.Fatalf("create service: %v", err)
	}

	return f
}

func (f *fixture) addUser(name, role string) *models.User {
	f.t.Helper()

	u := &models.User{
		Name:         name,
		Email:        strings.ToLower(name) + "@example.com",
		PasswordHash: "x",
		Role:         role,
	}
	if err := f.db.Create(u).Error; err != nil {
		f.t.Fatalf("create user %s: %v", name, err)
	}
	return u
}

// instant resolves a date string through the same normalizer bookings use.
func (f *fixture) instant(s string) time.Time {
	f.t.Helper()

	v, err := f.norm.Normalize(s)
	if err != nil {
		f.t.Fatalf("normalize %q: %v", s, err)
	}
	return v
}

func (f *fixture) createUC() *CreateAppointment {
	return NewCreateAppointment(f.repo, f.norm, testCivilTZ, f.audit)
}

func (f *fixture) blockUC() *BlockSchedule {
	return NewBlockSchedule(f.repo, f.guard, f.norm, testCivilTZ, f.audit)
}

func (f *fixture) book(clientID uint, date string) (*models.Appointment, error) {
	return f.createUC().Execute(context.Background(), CreateAppointmentInput{
		ClientID:  clientID,
		BarberID:  f.barber.ID,
		ShopID:    f.shop.ID,
		ServiceID: f.service.ID,
		Date:      date,
	})
}

func (f *fixture) mustBook(clientID uint, date string) *models.Appointment {
	f.t.Helper()

	ap, err := f.book(clientID, date)
	if err != nil {
		f.t.Fatalf("book %s: %v", date, err)
	}
	return ap
}

// seed inserts an appointment row directly, bypassing the booking checks.
func (f *fixture) seed(status string, date string, clientID *uint) *models.Appointment {
	f.t.Helper()

	serviceID := f.service.ID
	ap := &models.Appointment{
		UUID:      uuid.NewString(),
		Date:      f.instant(date),
		ClientID:  clientID,
		BarberID:  f.barber.ID,
		ShopID:    f.shop.ID,
		ServiceID: &serviceID,
		Status:    status,
	}
	if err := f.db.Create(ap).Error; err != nil {
		f.t.Fatalf("seed appointment: %v", err)
	}
	return ap
}

func (f *fixture) reload(id uint) *models.Appointment {
	f.t.Helper()

	var ap models.Appointment
	if err := f.db.First(&ap, id).Error; err != nil {
		f.t.Fatalf("reload appointment %d: %v", id, err)
	}
	return &ap
}

func (f *fixture) barberCaller() authz.Caller {
	return authz.Caller{UserID: f.barber.ID, Role: models.RoleBarber}
}

func (f *fixture) ownerCaller() authz.Caller {
	return authz.Caller{UserID: f.owner.ID, Role: models.RoleOwner}
}

func (f *fixture) clientCaller() authz.Caller {
	return authz.Caller{UserID: f.client.ID, Role: models.RoleClient}
}

func (f *fixture) adminCaller() authz.Caller {
	return authz.Caller{UserID: 9999, Role: models.RoleAdmin}
}
