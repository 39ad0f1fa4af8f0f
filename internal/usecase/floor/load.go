package floor

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/BruksfildServices01/restaurant-floor/internal/models"
	"github.com/BruksfildServices01/restaurant-floor/internal/stores"
	"github.com/BruksfildServices01/restaurant-floor/internal/usecase"
)

type Floor struct {
	Tables   []*models.Table        `json:"tables"`
	Elements []*models.FloorElement `json:"elements"`
}

// LoadFloor fetches tables and decorations concurrently. Either failure
// fails the load; the store that succeeded keeps its fresh snapshot.
type LoadFloor struct {
	stores *stores.Set
}

func NewLoadFloor(s *stores.Set) *LoadFloor {
	return &LoadFloor{stores: s}
}

func (uc *LoadFloor) Execute(ctx context.Context, actor usecase.Actor) (Floor, error) {
	if err := actor.Validate(); err != nil {
		return Floor{}, err
	}

	var f Floor
	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		tables, err := uc.stores.Tables.Fetch(ctx, actor.RestaurantID, models.TableFilter{})
		f.Tables = tables
		return err
	})
	g.Go(func() error {
		elements, err := uc.stores.FloorElements.Fetch(ctx, actor.RestaurantID, models.FloorElementFilter{})
		f.Elements = elements
		return err
	})

	if err := g.Wait(); err != nil {
		return Floor{}, err
	}
	return f, nil
}
