// Package app wires the floor client together: one store per entity, the
// session, and every use case that coordinates them.
package app

import (
	"context"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/restaurant-floor/internal/apperr"
	"github.com/BruksfildServices01/restaurant-floor/internal/audit"
	"github.com/BruksfildServices01/restaurant-floor/internal/auth"
	"github.com/BruksfildServices01/restaurant-floor/internal/config"
	"github.com/BruksfildServices01/restaurant-floor/internal/domain/order"
	"github.com/BruksfildServices01/restaurant-floor/internal/infra/repository"
	"github.com/BruksfildServices01/restaurant-floor/internal/models"
	"github.com/BruksfildServices01/restaurant-floor/internal/notify"
	"github.com/BruksfildServices01/restaurant-floor/internal/payment"
	"github.com/BruksfildServices01/restaurant-floor/internal/securestore"
	"github.com/BruksfildServices01/restaurant-floor/internal/session"
	"github.com/BruksfildServices01/restaurant-floor/internal/stores"
	"github.com/BruksfildServices01/restaurant-floor/internal/usecase"
	clientuc "github.com/BruksfildServices01/restaurant-floor/internal/usecase/client"
	flooruc "github.com/BruksfildServices01/restaurant-floor/internal/usecase/floor"
	orderuc "github.com/BruksfildServices01/restaurant-floor/internal/usecase/order"
	"github.com/BruksfildServices01/restaurant-floor/internal/usecase/profile"
	reservationuc "github.com/BruksfildServices01/restaurant-floor/internal/usecase/reservation"
	waitlistuc "github.com/BruksfildServices01/restaurant-floor/internal/usecase/waitlist"
)

type Deps struct {
	Config *config.Config
	DB     *gorm.DB
	KV     securestore.Store
	Log    logrus.FieldLogger

	// Optional gateways. A nil SMS sender logs messages instead; nil
	// payments or avatars disable card checkout and avatar upload.
	SMS      notify.Sender
	Payments payment.Gateway
	Avatars  profile.AvatarStore
}

type App struct {
	Stores   *stores.Set
	Session  *session.Store
	Audit    *audit.Dispatcher
	AuditLog *audit.Logger
	Log      logrus.FieldLogger

	OpenOrder   *orderuc.OpenOrder
	EditOrder   *orderuc.EditOrder
	OrderStatus *orderuc.ChangeOrderStatus
	Checkout    *orderuc.Checkout
	Refund      *orderuc.RefundOrder
	DeleteOrder *orderuc.DeleteOrder

	TableStatus *flooruc.ChangeTableStatus
	Layout      *flooruc.EditLayout
	LoadFloor   *flooruc.LoadFloor
	Seat        *flooruc.SeatReservation

	Reservations      *reservationuc.SaveReservation
	ReservationStatus *reservationuc.ChangeStatus
	DeleteReservation *reservationuc.DeleteReservation

	JoinWaitlist *waitlistuc.Join
	Waitlist     *waitlistuc.ChangeStatus

	Clients    *clientuc.SaveClient
	ClientTags *clientuc.Tags
	Visits     *clientuc.RecordVisit

	Avatar *profile.UploadAvatar
}

func New(d Deps) *App {
	cfg := d.Config
	log := d.Log

	taxRate := cfg.TaxRate
	if taxRate < 0 {
		taxRate = order.DefaultTaxRate
	}

	sms := d.SMS
	if sms == nil {
		sms = notify.NewLogSender(log)
	}

	set := stores.New(d.DB, log)
	users := repository.NewUserGateway(d.DB)
	provider := auth.NewPasswordProvider(users, auth.Options{
		Secret:              cfg.JWTSecret,
		TTL:                 cfg.SessionTTL,
		ValidateEmailDomain: cfg.ValidateEmailDomain,
	})
	sess := session.New(provider, users, d.KV, cfg.SessionKey, log)

	auditLog := audit.New(d.DB)
	dispatcher := audit.NewDispatcher(auditLog, log)
	texts := usecase.NewTexts(sms, set)
	visits := clientuc.NewRecordVisit(set.Clients)

	a := &App{
		Stores:   set,
		Session:  sess,
		Audit:    dispatcher,
		AuditLog: auditLog,
		Log:      log,

		OpenOrder:   orderuc.NewOpenOrder(set, taxRate, dispatcher),
		EditOrder:   orderuc.NewEditOrder(set.Orders, taxRate, dispatcher),
		OrderStatus: orderuc.NewChangeOrderStatus(set, dispatcher),
		Checkout:    orderuc.NewCheckout(set, d.Payments, visits, cfg.Currency, dispatcher, log),
		Refund:      orderuc.NewRefundOrder(set.Orders, d.Payments, dispatcher),
		DeleteOrder: orderuc.NewDeleteOrder(set, dispatcher),

		TableStatus: flooruc.NewChangeTableStatus(set, dispatcher),
		Layout:      flooruc.NewEditLayout(set, dispatcher),
		LoadFloor:   flooruc.NewLoadFloor(set),
		Seat:        flooruc.NewSeatReservation(set, dispatcher),

		Reservations:      reservationuc.NewSaveReservation(set.Reservations, set, dispatcher),
		ReservationStatus: reservationuc.NewChangeStatus(set.Reservations, texts, dispatcher, log),
		DeleteReservation: reservationuc.NewDeleteReservation(set.Reservations, dispatcher),

		JoinWaitlist: waitlistuc.NewJoin(set, dispatcher),
		Waitlist:     waitlistuc.NewChangeStatus(set, texts, dispatcher),

		Clients:    clientuc.NewSaveClient(set.Clients, dispatcher),
		ClientTags: clientuc.NewTags(set.Clients, dispatcher),
		Visits:     visits,

		Avatar: profile.NewUploadAvatar(sess, d.Avatars, dispatcher),
	}

	sess.OnSignOut(set.Reset)
	return a
}

// Actor is the signed-in user, or a session error when nobody is. Caches
// still bound to another restaurant are dropped before the actor is
// handed out, so readers never see rows outside its scope.
func (a *App) Actor() (usecase.Actor, error) {
	if a.Session.State() != session.Authenticated {
		return usecase.Actor{}, apperr.Session("not_authenticated", nil)
	}
	user, ok := a.Session.User()
	if !ok {
		return usecase.Actor{}, apperr.Session("not_authenticated", nil)
	}
	if a.Stores.DropForeign(user.RestaurantID) {
		a.Log.WithField("scope", user.RestaurantID).Warn("dropped caches bound to another restaurant")
	}
	return usecase.Actor{RestaurantID: user.RestaurantID, UserID: user.ID}, nil
}

// Refresh loads every store for the signed-in restaurant concurrently.
func (a *App) Refresh(ctx context.Context) error {
	actor, err := a.Actor()
	if err != nil {
		return err
	}
	scope := actor.RestaurantID
	s := a.Stores

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		_, err := s.Restaurants.Fetch(ctx, scope, models.RestaurantFilter{})
		return err
	})
	g.Go(func() error {
		_, err := a.LoadFloor.Execute(ctx, actor)
		return err
	})
	g.Go(func() error {
		_, err := s.Clients.Fetch(ctx, scope, models.ClientFilter{})
		return err
	})
	g.Go(func() error {
		_, err := s.Orders.Fetch(ctx, scope, models.OrderFilter{})
		return err
	})
	g.Go(func() error {
		_, err := s.Reservations.Fetch(ctx, scope, models.ReservationFilter{})
		return err
	})
	g.Go(func() error {
		_, err := s.Waitlist.Fetch(ctx, scope, models.WaitlistFilter{})
		return err
	})
	return g.Wait()
}

// Close drains the audit queue.
func (a *App) Close(ctx context.Context) error {
	return a.Audit.Close(ctx)
}
