package handlers

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/restaurant-floor/internal/app"
	"github.com/BruksfildServices01/restaurant-floor/internal/apperr"
	"github.com/BruksfildServices01/restaurant-floor/internal/dto"
	"github.com/BruksfildServices01/restaurant-floor/internal/httperr"
	"github.com/BruksfildServices01/restaurant-floor/internal/httpresp"
	"github.com/BruksfildServices01/restaurant-floor/internal/models"
	"github.com/BruksfildServices01/restaurant-floor/internal/timezone"
	"github.com/BruksfildServices01/restaurant-floor/internal/views"
)

type RestaurantHandler struct {
	app *app.App
}

func NewRestaurantHandler(a *app.App) *RestaurantHandler {
	return &RestaurantHandler{app: a}
}

func (h *RestaurantHandler) Get(c *gin.Context) {
	r, ok := h.app.Stores.Restaurant()
	if !ok {
		httperr.NotFound(c, "restaurant_not_found", "restaurant not loaded")
		return
	}
	httpresp.OK(c, r)
}

func (h *RestaurantHandler) Update(c *gin.Context) {
	r, ok := h.app.Stores.Restaurant()
	if !ok {
		httperr.NotFound(c, "restaurant_not_found", "restaurant not loaded")
		return
	}

	var patch models.RestaurantPatch
	if err := c.ShouldBindJSON(&patch); err != nil {
		httperr.BadRequest(c, "invalid_request", err.Error())
		return
	}
	if patch.Settings != nil && patch.Settings.Timezone != "" && !timezone.IsValid(patch.Settings.Timezone) {
		httperr.FromError(c, apperr.Validation("invalid_timezone"))
		return
	}

	if err := h.app.Stores.Restaurants.Update(c.Request.Context(), r.ID, patch); err != nil {
		httperr.FromError(c, err)
		return
	}

	updated, _ := h.app.Stores.Restaurant()
	httpresp.OK(c, updated)
}

// Dashboard summarizes the cached floor for the restaurant's today.
func (h *RestaurantHandler) Dashboard(c *gin.Context) {
	s := h.app.Stores
	now := time.Now()
	tz := restaurantTimezone(s)

	orders := s.Orders.Items()
	waiting := s.Waitlist.Items()

	httpresp.OK(c, dto.DashboardDTO{
		Date: timezone.DateIn(now, tz),
		Counts: views.Dashboard(views.Snapshot{
			Tables:       s.Tables.Items(),
			Orders:       orders,
			Reservations: s.Reservations.Items(),
			Waitlist:     waiting,
			Timezone:     tz,
		}, now),
		ActiveOrders: dto.NewOrderList(views.ActiveOrders(orders)),
		Waitlist:     views.WaitRows(views.Waiting(waiting), now),
	})
}
