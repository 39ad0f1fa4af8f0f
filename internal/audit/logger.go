package audit

import (
	"context"
	"encoding/json"
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/restaurant-floor/internal/models"
)

type Logger struct {
	db *gorm.DB
}

func New(db *gorm.DB) *Logger {
	return &Logger{db: db}
}

func (l *Logger) Log(ctx context.Context, ev Event) error {
	var meta datatypes.JSON
	if ev.Metadata != nil {
		if b, err := json.Marshal(ev.Metadata); err == nil {
			meta = datatypes.JSON(b)
		}
	}

	log := models.AuditLog{
		RestaurantID: ev.RestaurantID,
		UserID:       optional(ev.UserID),
		Action:       ev.Action,
		Entity:       ev.Entity,
		EntityID:     optional(ev.EntityID),
		Metadata:     meta,
	}

	return l.db.WithContext(ctx).Create(&log).Error
}

type Query struct {
	Action string
	Entity string
	From   *time.Time
	To     *time.Time
	Page   int
	Limit  int
}

// List returns one page of the restaurant's audit trail, newest first,
// and the total number of matching rows.
func (l *Logger) List(ctx context.Context, restaurantID string, in Query) ([]models.AuditLog, int64, error) {
	if in.Page <= 0 {
		in.Page = 1
	}
	if in.Limit <= 0 || in.Limit > 200 {
		in.Limit = 50
	}

	q := l.db.WithContext(ctx).
		Model(&models.AuditLog{}).
		Where("restaurant_id = ?", restaurantID)

	if in.Action != "" {
		q = q.Where("action = ?", in.Action)
	}
	if in.Entity != "" {
		q = q.Where("entity = ?", in.Entity)
	}
	if in.From != nil {
		q = q.Where("created_at >= ?", *in.From)
	}
	if in.To != nil {
		q = q.Where("created_at < ?", in.To.Add(24*time.Hour))
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	logs := []models.AuditLog{}
	if err := q.
		Order("created_at DESC").
		Limit(in.Limit).
		Offset((in.Page - 1) * in.Limit).
		Find(&logs).Error; err != nil {
		return nil, 0, err
	}

	return logs, total, nil
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
