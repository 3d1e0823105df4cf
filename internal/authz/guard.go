package authz

import (
	"context"

	"gorm.io/gorm"

	"github.com/BruksfildServices01/barber-marketplace/internal/httperr"
	"github.com/BruksfildServices01/barber-marketplace/internal/models"
)

// Caller is the authenticated identity extracted from the JWT.
type Caller struct {
	UserID uint
	Role   string
}

// Guard answers whether a caller may act on an appointment: the barber on
// their own rows, the owner within owned shops, admins anywhere. A failed
// check is an authorization error, never a not-found.
type Guard struct {
	db *gorm.DB
}

func NewGuard(db *gorm.DB) *Guard {
	return &Guard{db: db}
}

func (g *Guard) CanManageAppointment(
	ctx context.Context,
	caller Caller,
	ap *models.Appointment,
) error {

	if caller.Role == models.RoleAdmin {
		return nil
	}

	if caller.Role == models.RoleBarber && ap.BarberID == caller.UserID {
		return nil
	}

	if caller.Role == models.RoleOwner {
		owns, err := g.OwnsShop(ctx, caller.UserID, ap.ShopID)
		if err != nil {
			return err
		}
		if owns {
			return nil
		}
	}

	return httperr.ErrBusiness("unauthorized")
}

func (g *Guard) OwnsShop(
	ctx context.Context,
	userID uint,
	shopID uint,
) (bool, error) {

	var count int64
	if err := g.db.WithContext(ctx).
		Model(&models.Shop{}).
		Where("id = ? AND owner_id = ?", shopID, userID).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// AllowsSelfPurge checks the per-barber opt-in for purging own history.
func (g *Guard) AllowsSelfPurge(
	ctx context.Context,
	barberID uint,
) (bool, error) {

	var user models.User
	if err := g.db.WithContext(ctx).First(&user, barberID).Error; err != nil {
		return false, err
	}
	return user.AllowHistoryPurge, nil
}
