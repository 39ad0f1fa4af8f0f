package handlers

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/restaurant-floor/internal/app"
	"github.com/BruksfildServices01/restaurant-floor/internal/httperr"
	"github.com/BruksfildServices01/restaurant-floor/internal/httpresp"
	"github.com/BruksfildServices01/restaurant-floor/internal/middleware"
	"github.com/BruksfildServices01/restaurant-floor/internal/models"
	flooruc "github.com/BruksfildServices01/restaurant-floor/internal/usecase/floor"
	"github.com/BruksfildServices01/restaurant-floor/internal/views"
)

type ReservationHandler struct {
	app *app.App
}

func NewReservationHandler(a *app.App) *ReservationHandler {
	return &ReservationHandler{app: a}
}

// ======================================================
// REQUESTS
// ======================================================

type CreateReservationRequest struct {
	ClientID        string  `json:"client_id" binding:"required"`
	Date            string  `json:"date" binding:"required"`
	Time            string  `json:"time" binding:"required"`
	PartySize       int     `json:"party_size" binding:"required,min=1"`
	TableID         *string `json:"table_id"`
	SpecialRequests string  `json:"special_requests"`
	Notes           string  `json:"notes"`
	AssignedTo      *string `json:"assigned_to"`
}

type ReservationStatusRequest struct {
	Status models.ReservationStatus `json:"status" binding:"required"`
}

type SeatReservationRequest struct {
	TableID string `json:"table_id"`
}

// ======================================================
// READ
// ======================================================

// List answers from the cache. ?date=today or ?date=YYYY-MM-DD narrows
// to one day in the restaurant's timezone.
func (h *ReservationHandler) List(c *gin.Context) {
	s := h.app.Stores
	all := s.Reservations.Items()

	date := c.Query("date")
	switch date {
	case "":
		httpresp.List(c, all)
		return
	case "today":
		httpresp.List(c, views.TodaysReservations(all, time.Now(), restaurantTimezone(s)))
		return
	}

	if _, err := parseDateInRestaurant(s, date); err != nil {
		httperr.BadRequest(c, "invalid_date", "date must be YYYY-MM-DD")
		return
	}
	day := make([]*models.Reservation, 0, len(all))
	for _, r := range all {
		if r.Date == date {
			day = append(day, r)
		}
	}
	httpresp.List(c, day)
}

func (h *ReservationHandler) Get(c *gin.Context) {
	r, ok := h.app.Stores.Reservations.Get(c.Param("id"))
	if !ok {
		httperr.NotFound(c, "reservation_not_found", "reservation not found")
		return
	}
	httpresp.OK(c, r)
}

// ======================================================
// WRITE
// ======================================================

func (h *ReservationHandler) Create(c *gin.Context) {
	var req CreateReservationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", err.Error())
		return
	}

	r, err := h.app.Reservations.Create(c.Request.Context(), middleware.Actor(c), models.Reservation{
		ClientID:        req.ClientID,
		Date:            req.Date,
		Time:            req.Time,
		PartySize:       req.PartySize,
		TableID:         req.TableID,
		SpecialRequests: req.SpecialRequests,
		Notes:           req.Notes,
		AssignedTo:      req.AssignedTo,
	})
	if err != nil {
		httperr.FromError(c, err)
		return
	}
	httpresp.Created(c, r)
}

func (h *ReservationHandler) Update(c *gin.Context) {
	var patch models.ReservationPatch
	if err := c.ShouldBindJSON(&patch); err != nil {
		httperr.BadRequest(c, "invalid_request", err.Error())
		return
	}

	if err := h.app.Reservations.Update(c.Request.Context(), middleware.Actor(c), c.Param("id"), patch); err != nil {
		httperr.FromError(c, err)
		return
	}
	h.Get(c)
}

func (h *ReservationHandler) ChangeStatus(c *gin.Context) {
	var req ReservationStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", err.Error())
		return
	}

	r, err := h.app.ReservationStatus.Execute(c.Request.Context(), middleware.Actor(c), c.Param("id"), req.Status)
	if err != nil {
		httperr.FromError(c, err)
		return
	}
	httpresp.OK(c, r)
}

func (h *ReservationHandler) Confirm(c *gin.Context) {
	r, err := h.app.ReservationStatus.Confirm(c.Request.Context(), middleware.Actor(c), c.Param("id"))
	if err != nil {
		httperr.FromError(c, err)
		return
	}
	httpresp.OK(c, r)
}

func (h *ReservationHandler) Remind(c *gin.Context) {
	if err := h.app.ReservationStatus.Remind(c.Request.Context(), middleware.Actor(c), c.Param("id")); err != nil {
		httperr.FromError(c, err)
		return
	}
	httpresp.NoContent(c)
}

// Seat puts the party at the body's table, or at the table already
// assigned on the reservation when the body names none.
func (h *ReservationHandler) Seat(c *gin.Context) {
	var req SeatReservationRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			httperr.BadRequest(c, "invalid_request", err.Error())
			return
		}
	}

	err := h.app.Seat.Execute(c.Request.Context(), middleware.Actor(c), flooruc.SeatInput{
		ReservationID: c.Param("id"),
		TableID:       req.TableID,
	})
	if err != nil {
		httperr.FromError(c, err)
		return
	}
	h.Get(c)
}

func (h *ReservationHandler) Delete(c *gin.Context) {
	if err := h.app.DeleteReservation.Execute(c.Request.Context(), middleware.Actor(c), c.Param("id")); err != nil {
		httperr.FromError(c, err)
		return
	}
	httpresp.NoContent(c)
}
