package repository

import (
	"context"
	"strings"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/BruksfildServices01/restaurant-floor/internal/apperr"
	"github.com/BruksfildServices01/restaurant-floor/internal/models"
)

// UserGateway reads and writes staff profiles for the session store.
type UserGateway struct {
	db *gorm.DB
}

func NewUserGateway(db *gorm.DB) *UserGateway {
	return &UserGateway{db: db}
}

func (g *UserGateway) Get(ctx context.Context, id string) (*models.User, error) {
	var user models.User
	if err := g.db.WithContext(ctx).
		Where("id = ?", id).
		First(&user).Error; err != nil {
		return nil, translate("user", "fetch", err)
	}
	return &user, nil
}

func (g *UserGateway) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	if err := g.db.WithContext(ctx).
		Where("LOWER(email) = ?", strings.ToLower(strings.TrimSpace(email))).
		First(&user).Error; err != nil {
		return nil, translate("user", "fetch", err)
	}
	return &user, nil
}

// Register creates the restaurant and its owner together.
func (g *UserGateway) Register(
	ctx context.Context,
	restaurant *models.Restaurant,
	owner *models.User,
) error {

	return g.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit(clause.Associations).Create(restaurant).Error; err != nil {
			return translate("restaurant", "create", err)
		}

		owner.RestaurantID = restaurant.ID
		owner.Role = models.RoleOwner
		if err := tx.Create(owner).Error; err != nil {
			if isUniqueViolation(err) {
				return apperr.Conflict("email_already_in_use")
			}
			return translate("user", "create", err)
		}

		if err := tx.Model(restaurant).
			Update("owner_id", owner.ID).Error; err != nil {
			return translate("restaurant", "update", err)
		}
		return nil
	})
}

// UpdateProfile writes patch and returns the stored profile.
func (g *UserGateway) UpdateProfile(
	ctx context.Context,
	id string,
	patch models.UserPatch,
) (*models.User, error) {

	cols := patch.Columns()
	if len(cols) > 0 {
		res := g.db.WithContext(ctx).
			Model(&models.User{}).
			Where("id = ?", id).
			Updates(cols)
		if res.Error != nil {
			return nil, translate("user", "update", res.Error)
		}
		if res.RowsAffected == 0 {
			return nil, apperr.NotFound("user_not_found")
		}
	}
	return g.Get(ctx, id)
}
