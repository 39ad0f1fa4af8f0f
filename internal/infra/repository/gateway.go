package repository

import (
	"context"
	"strings"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/BruksfildServices01/restaurant-floor/internal/apperr"
	"github.com/BruksfildServices01/restaurant-floor/internal/store"
)

type columnPatch[T any] interface {
	store.Patch[T]
	Columns() map[string]any
}

// gormGateway holds the queries every entity shares. Entities embed it and
// add their own List.
type gormGateway[T store.Record, P columnPatch[T]] struct {
	db       *gorm.DB
	entity   string
	scopeCol string
	order    []string
	preloads []string
	search   []string
}

func newGormGateway[T store.Record, P columnPatch[T]](db *gorm.DB, entity string) gormGateway[T, P] {
	return gormGateway[T, P]{db: db, entity: entity, scopeCol: "restaurant_id"}
}

// --------------------------------------------------
// Queries
// --------------------------------------------------

func (g *gormGateway[T, P]) scoped(ctx context.Context, scopeID string) *gorm.DB {
	q := g.db.WithContext(ctx).
		Model(new(T)).
		Where(g.scopeCol+" = ?", scopeID)

	for _, p := range g.preloads {
		q = q.Preload(p)
	}
	for _, o := range g.order {
		q = q.Order(o)
	}
	return q
}

func (g *gormGateway[T, P]) find(q *gorm.DB) ([]*T, error) {
	rows := []*T{}
	if err := q.Find(&rows).Error; err != nil {
		return nil, translate(g.entity, "fetch", err)
	}
	return rows, nil
}

func (g *gormGateway[T, P]) Get(ctx context.Context, scopeID, id string) (*T, error) {
	var row T
	if err := g.scoped(ctx, scopeID).
		Where("id = ?", id).
		First(&row).Error; err != nil {
		return nil, translate(g.entity, "fetch", err)
	}
	return &row, nil
}

// likeEscaper makes the query's wildcards literal.
var likeEscaper = strings.NewReplacer(`\`, `\\`, "%", `\%`, "_", `\_`)

// Search matches query case-insensitively against the entity's search
// columns.
func (g *gormGateway[T, P]) Search(ctx context.Context, scopeID, query string) ([]*T, error) {
	if len(g.search) == 0 {
		return nil, apperr.Validation(g.entity + "_search_unsupported")
	}

	q := g.scoped(ctx, scopeID)

	query = strings.ToLower(strings.TrimSpace(query))
	if query != "" {
		like := "%" + likeEscaper.Replace(query) + "%"
		conds := make([]string, len(g.search))
		args := make([]any, len(g.search))
		for i, col := range g.search {
			conds[i] = "LOWER(" + col + `) LIKE ? ESCAPE '\'`
			args[i] = like
		}
		q = q.Where("("+strings.Join(conds, " OR ")+")", args...)
	}

	return g.find(q)
}

// --------------------------------------------------
// Writes
// --------------------------------------------------

// Insert creates the row without touching associations and reads it back
// with its preloads.
func (g *gormGateway[T, P]) Insert(ctx context.Context, row *T) (*T, error) {
	if err := g.db.WithContext(ctx).
		Omit(clause.Associations).
		Create(row).Error; err != nil {
		return nil, translate(g.entity, "create", err)
	}
	return g.Get(ctx, (*row).GetRestaurantID(), (*row).GetID())
}

func (g *gormGateway[T, P]) Update(ctx context.Context, scopeID, id string, patch P) error {
	q := g.db.WithContext(ctx).
		Model(new(T)).
		Where("id = ? AND "+g.scopeCol+" = ?", id, scopeID)

	cols := patch.Columns()
	if len(cols) == 0 {
		var count int64
		if err := q.Count(&count).Error; err != nil {
			return translate(g.entity, "update", err)
		}
		if count == 0 {
			return apperr.NotFound(g.entity + "_not_found")
		}
		return nil
	}

	res := q.Updates(cols)
	if res.Error != nil {
		return translate(g.entity, "update", res.Error)
	}
	if res.RowsAffected == 0 {
		return apperr.NotFound(g.entity + "_not_found")
	}
	return nil
}

func (g *gormGateway[T, P]) Delete(ctx context.Context, scopeID, id string) error {
	res := g.db.WithContext(ctx).
		Where("id = ? AND "+g.scopeCol+" = ?", id, scopeID).
		Delete(new(T))
	if res.Error != nil {
		return translate(g.entity, "delete", res.Error)
	}
	if res.RowsAffected == 0 {
		return apperr.NotFound(g.entity + "_not_found")
	}
	return nil
}
