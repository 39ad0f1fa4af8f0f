package handlers

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/restaurant-floor/internal/app"
	domain "github.com/BruksfildServices01/restaurant-floor/internal/domain/waitlist"
	"github.com/BruksfildServices01/restaurant-floor/internal/httperr"
	"github.com/BruksfildServices01/restaurant-floor/internal/httpresp"
	"github.com/BruksfildServices01/restaurant-floor/internal/middleware"
	"github.com/BruksfildServices01/restaurant-floor/internal/models"
	"github.com/BruksfildServices01/restaurant-floor/internal/views"
)

type WaitlistHandler struct {
	app *app.App
}

func NewWaitlistHandler(a *app.App) *WaitlistHandler {
	return &WaitlistHandler{app: a}
}

type JoinWaitlistRequest struct {
	Name      string `json:"name" binding:"required"`
	Phone     string `json:"phone" binding:"required"`
	PartySize int    `json:"party_size" binding:"required,min=1"`
	Notes     string `json:"notes"`
	Estimate  *int   `json:"estimated_wait_time"`
}

type WaitlistStatusRequest struct {
	Status models.WaitlistStatus `json:"status" binding:"required"`
}

type SeatPartyRequest struct {
	TableID string `json:"table_id"`
}

// List returns the queue as board rows: elapsed minutes, label and the
// urgent flag for every party still waiting.
func (h *WaitlistHandler) List(c *gin.Context) {
	entries := views.Waiting(h.app.Stores.Waitlist.Items())
	httpresp.List(c, views.WaitRows(entries, time.Now()))
}

func (h *WaitlistHandler) Get(c *gin.Context) {
	e, ok := h.app.Stores.Waitlist.Get(c.Param("id"))
	if !ok {
		httperr.NotFound(c, "waitlist_entry_not_found", "waitlist entry not found")
		return
	}
	httpresp.OK(c, e)
}

func (h *WaitlistHandler) Join(c *gin.Context) {
	var req JoinWaitlistRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", err.Error())
		return
	}

	entry, err := h.app.JoinWaitlist.Execute(c.Request.Context(), middleware.Actor(c), domain.Party{
		Name:      req.Name,
		Phone:     req.Phone,
		PartySize: req.PartySize,
		Notes:     req.Notes,
		Estimate:  req.Estimate,
	})
	if err != nil {
		httperr.FromError(c, err)
		return
	}
	httpresp.Created(c, entry)
}

func (h *WaitlistHandler) ChangeStatus(c *gin.Context) {
	var req WaitlistStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", err.Error())
		return
	}

	if err := h.app.Waitlist.Execute(c.Request.Context(), middleware.Actor(c), c.Param("id"), req.Status); err != nil {
		httperr.FromError(c, err)
		return
	}
	h.Get(c)
}

func (h *WaitlistHandler) Notify(c *gin.Context) {
	if err := h.app.Waitlist.Notify(c.Request.Context(), middleware.Actor(c), c.Param("id")); err != nil {
		httperr.FromError(c, err)
		return
	}
	h.Get(c)
}

func (h *WaitlistHandler) Seat(c *gin.Context) {
	var req SeatPartyRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			httperr.BadRequest(c, "invalid_request", err.Error())
			return
		}
	}

	if err := h.app.Waitlist.Seat(c.Request.Context(), middleware.Actor(c), c.Param("id"), req.TableID); err != nil {
		httperr.FromError(c, err)
		return
	}
	h.Get(c)
}

func (h *WaitlistHandler) Remove(c *gin.Context) {
	if err := h.app.Waitlist.Remove(c.Request.Context(), middleware.Actor(c), c.Param("id")); err != nil {
		httperr.FromError(c, err)
		return
	}
	httpresp.NoContent(c)
}
