// Package testutil builds sqlite-backed fixtures for package tests.
package testutil

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/BruksfildServices01/restaurant-floor/internal/db"
	"github.com/BruksfildServices01/restaurant-floor/internal/models"
	"github.com/BruksfildServices01/restaurant-floor/internal/notify"
	"github.com/BruksfildServices01/restaurant-floor/internal/stores"
)

// DB opens a private, migrated in-memory database.
func DB(t testing.TB) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	gdb, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := gdb.DB()
	require.NoError(t, err)
	// one connection serializes writers; shared-cache sqlite fails fast on lock contention
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.Migrate(gdb))

	t.Cleanup(func() { _ = sqlDB.Close() })
	return gdb
}

type Fixture struct {
	DB     *gorm.DB
	Scope  string
	UserID string
	Stores *stores.Set
	Log    *logrus.Logger
	Logs   *test.Hook
}

// NewFixture seeds one restaurant and its owner and loads the restaurant
// store.
func NewFixture(t testing.TB) *Fixture {
	t.Helper()

	gdb := DB(t)
	logger, hook := test.NewNullLogger()

	restaurant := &models.Restaurant{
		Name:     "Bistro Centro",
		Settings: models.DefaultSettings("BRL", "America/Sao_Paulo"),
	}
	require.NoError(t, gdb.Create(restaurant).Error)

	user := &models.User{
		RestaurantID: restaurant.ID,
		Email:        uuid.NewString() + "@floor.test",
		PasswordHash: "x",
		FirstName:    "Olivia",
	}
	require.NoError(t, gdb.Create(user).Error)

	set := stores.New(gdb, logger)
	_, err := set.Restaurants.Fetch(context.Background(), restaurant.ID, models.RestaurantFilter{})
	require.NoError(t, err)

	return &Fixture{DB: gdb, Scope: restaurant.ID, UserID: user.ID, Stores: set, Log: logger, Logs: hook}
}

func (f *Fixture) SeedTable(t testing.TB, number string, capacity int) *models.Table {
	t.Helper()
	tbl := &models.Table{RestaurantID: f.Scope, Number: number, Capacity: capacity, Width: 80, Height: 80, Shape: models.ShapeSquare}
	require.NoError(t, f.DB.Create(tbl).Error)
	return tbl
}

func (f *Fixture) SeedClient(t testing.TB, first, phone string) *models.Client {
	t.Helper()
	c := &models.Client{RestaurantID: f.Scope, FirstName: first, Phone: phone}
	require.NoError(t, f.DB.Create(c).Error)
	return c
}

// Load fetches every entity store for the fixture scope.
func (f *Fixture) Load(t testing.TB) {
	t.Helper()
	ctx := context.Background()
	s := f.Stores

	_, err := s.Clients.Fetch(ctx, f.Scope, models.ClientFilter{})
	require.NoError(t, err)
	_, err = s.Tables.Fetch(ctx, f.Scope, models.TableFilter{})
	require.NoError(t, err)
	_, err = s.FloorElements.Fetch(ctx, f.Scope, models.FloorElementFilter{})
	require.NoError(t, err)
	_, err = s.Orders.Fetch(ctx, f.Scope, models.OrderFilter{})
	require.NoError(t, err)
	_, err = s.Reservations.Fetch(ctx, f.Scope, models.ReservationFilter{})
	require.NoError(t, err)
	_, err = s.Waitlist.Fetch(ctx, f.Scope, models.WaitlistFilter{})
	require.NoError(t, err)
}

// Outbox is a notify.Sender that records messages and can be told to fail.
type Outbox struct {
	mu   sync.Mutex
	Sent []notify.SMS
	Err  error
	// OnSend runs before each send, outside the lock.
	OnSend func(notify.SMS)
}

func (o *Outbox) Send(_ context.Context, msg notify.SMS) error {
	if o.OnSend != nil {
		o.OnSend(msg)
	}
	o.mu.Lock()
	defer o.mu.Unlock()
	if o.Err != nil {
		return o.Err
	}
	if err := msg.Validate(); err != nil {
		return err
	}
	o.Sent = append(o.Sent, msg)
	return nil
}

func (o *Outbox) Messages() []notify.SMS {
	o.mu.Lock()
	defer o.mu.Unlock()
	return append([]notify.SMS(nil), o.Sent...)
}
