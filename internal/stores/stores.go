// Package stores composes one cache per entity over the gorm gateways.
// A Set is the only place stores are built, so every caller of an entity
// shares the same cache.
package stores

import (
	"context"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/restaurant-floor/internal/domain/floor"
	"github.com/BruksfildServices01/restaurant-floor/internal/infra/repository"
	"github.com/BruksfildServices01/restaurant-floor/internal/models"
	"github.com/BruksfildServices01/restaurant-floor/internal/store"
)

type (
	Clients       = store.Store[models.Client, models.ClientPatch, models.ClientFilter]
	Tables        = store.Store[models.Table, models.TablePatch, models.TableFilter]
	FloorElements = store.Store[models.FloorElement, models.FloorElementPatch, models.FloorElementFilter]
	Orders        = store.Store[models.Order, models.OrderPatch, models.OrderFilter]
	Reservations  = store.Store[models.Reservation, models.ReservationPatch, models.ReservationFilter]
	Waitlist      = store.Store[models.WaitlistEntry, models.WaitlistPatch, models.WaitlistFilter]
	Restaurants   = store.Store[models.Restaurant, models.RestaurantPatch, models.RestaurantFilter]
)

// ClientLookup finds a guest remotely, bypassing the cache.
type ClientLookup interface {
	FindByPhone(ctx context.Context, scopeID, phone string) (*models.Client, error)
}

type Set struct {
	Clients       *Clients
	Tables        *Tables
	FloorElements *FloorElements
	Orders        *Orders
	Reservations  *Reservations
	Waitlist      *Waitlist
	Restaurants   *Restaurants

	Floor       floor.UnitOfWork
	ClientFinds ClientLookup
}

func New(db *gorm.DB, log logrus.FieldLogger) *Set {
	opts := func(entity string, at store.InsertPosition) store.Options {
		return store.Options{Entity: entity, Insert: at, Logger: log}
	}

	clients := repository.NewClientGateway(db)

	return &Set{
		Clients:       store.New(clients, opts("client", store.InsertFront)),
		Tables:        store.New(repository.NewTableGateway(db), opts("table", store.InsertBack)),
		FloorElements: store.New(repository.NewFloorElementGateway(db), opts("floor_element", store.InsertBack)),
		Orders:        store.New(repository.NewOrderGateway(db), opts("order", store.InsertFront)),
		Reservations:  store.New(repository.NewReservationGateway(db), opts("reservation", store.InsertBack)),
		Waitlist:      store.New(repository.NewWaitlistGateway(db), opts("waitlist_entry", store.InsertBack)),
		Restaurants:   store.New(repository.NewRestaurantGateway(db), opts("restaurant", store.InsertBack)),

		Floor:       repository.NewFloorGateway(db),
		ClientFinds: clients,
	}
}

type scoped interface {
	ScopeID() string
	Reset()
}

func (s *Set) all() []scoped {
	return []scoped{
		s.Clients,
		s.Tables,
		s.FloorElements,
		s.Orders,
		s.Reservations,
		s.Waitlist,
		s.Restaurants,
	}
}

// Reset empties every cache and unbinds its scope.
func (s *Set) Reset() {
	for _, st := range s.all() {
		st.Reset()
	}
}

// DropForeign resets every cache bound to a restaurant other than scopeID
// and reports whether any was dropped. Unbound caches are left alone.
func (s *Set) DropForeign(scopeID string) bool {
	dropped := false
	for _, st := range s.all() {
		if bound := st.ScopeID(); bound != "" && bound != scopeID {
			st.Reset()
			dropped = true
		}
	}
	return dropped
}

// Restaurant returns the cached tenant record, if loaded.
func (s *Set) Restaurant() (*models.Restaurant, bool) {
	return s.Restaurants.First()
}
