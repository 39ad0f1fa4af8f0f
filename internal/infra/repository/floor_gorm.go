package repository

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/BruksfildServices01/restaurant-floor/internal/apperr"
	"github.com/BruksfildServices01/restaurant-floor/internal/domain/floor"
)

// FloorGateway commits cross-entity changes in one transaction.
type FloorGateway struct {
	db *gorm.DB
}

func NewFloorGateway(db *gorm.DB) *FloorGateway {
	return &FloorGateway{db: db}
}

func (g *FloorGateway) Apply(
	ctx context.Context,
	scopeID string,
	changes ...floor.Change,
) error {

	if scopeID == "" {
		return apperr.Validation("scope_required")
	}

	return g.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return applyChanges(tx, scopeID, changes)
	})
}

// CreateWith inserts row and applies changes in the same transaction. The
// row must carry its id already when changes refer to it.
func (g *FloorGateway) CreateWith(
	ctx context.Context,
	scopeID string,
	row floor.Row,
	changes ...floor.Change,
) error {

	if scopeID == "" {
		return apperr.Validation("scope_required")
	}
	if row.GetRestaurantID() != scopeID {
		return apperr.Validation("scope_mismatch")
	}

	return g.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit(clause.Associations).Create(row).Error; err != nil {
			return translate("record", "create", err)
		}
		return applyChanges(tx, scopeID, changes)
	})
}

func applyChanges(tx *gorm.DB, scopeID string, changes []floor.Change) error {
	for _, c := range changes {
		if c.Empty() {
			continue
		}

		res := tx.Model(c.Model).
			Where("id = ? AND restaurant_id = ?", c.ID, scopeID).
			Updates(c.Columns)
		if res.Error != nil {
			return translate(c.Entity, "update", res.Error)
		}
		if res.RowsAffected == 0 {
			return apperr.NotFound(c.Entity + "_not_found")
		}
	}
	return nil
}

var _ floor.UnitOfWork = (*FloorGateway)(nil)
