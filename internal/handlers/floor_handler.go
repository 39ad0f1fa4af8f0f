package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/restaurant-floor/internal/app"
	"github.com/BruksfildServices01/restaurant-floor/internal/httperr"
	"github.com/BruksfildServices01/restaurant-floor/internal/httpresp"
	"github.com/BruksfildServices01/restaurant-floor/internal/middleware"
	"github.com/BruksfildServices01/restaurant-floor/internal/models"
)

type FloorHandler struct {
	app *app.App
}

func NewFloorHandler(a *app.App) *FloorHandler {
	return &FloorHandler{app: a}
}

// ======================================================
// REQUESTS
// ======================================================

type TableRequest struct {
	Number   string            `json:"number" binding:"required"`
	Capacity int               `json:"capacity" binding:"required,min=1"`
	Position models.Position   `json:"position"`
	Shape    models.TableShape `json:"shape"`
	Width    float64           `json:"width"`
	Height   float64           `json:"height"`
}

type ElementRequest struct {
	Type     models.ElementType `json:"type" binding:"required"`
	Position models.Position    `json:"position"`
	Width    float64            `json:"width"`
	Height   float64            `json:"height"`
	Rotation *float64           `json:"rotation"`
	Label    *string            `json:"label"`
	TableID  *string            `json:"table_id"`
}

type TableStatusRequest struct {
	Status models.TableStatus `json:"status" binding:"required"`
}

// ======================================================
// FLOOR
// ======================================================

// Get refetches tables and elements, then returns both.
func (h *FloorHandler) Get(c *gin.Context) {
	floor, err := h.app.LoadFloor.Execute(c.Request.Context(), middleware.Actor(c))
	if err != nil {
		httperr.FromError(c, err)
		return
	}
	httpresp.OK(c, floor)
}

// ======================================================
// TABLES
// ======================================================

func (h *FloorHandler) ListTables(c *gin.Context) {
	httpresp.List(c, h.app.Stores.Tables.Items())
}

func (h *FloorHandler) GetTable(c *gin.Context) {
	t, ok := h.app.Stores.Tables.Get(c.Param("id"))
	if !ok {
		httperr.NotFound(c, "table_not_found", "table not found")
		return
	}
	httpresp.OK(c, t)
}

func (h *FloorHandler) CreateTable(c *gin.Context) {
	var req TableRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", err.Error())
		return
	}

	t, err := h.app.Layout.CreateTable(c.Request.Context(), middleware.Actor(c), models.Table{
		Number:   req.Number,
		Capacity: req.Capacity,
		Position: req.Position,
		Shape:    req.Shape,
		Width:    req.Width,
		Height:   req.Height,
	})
	if err != nil {
		httperr.FromError(c, err)
		return
	}
	httpresp.Created(c, t)
}

func (h *FloorHandler) UpdateTable(c *gin.Context) {
	var patch models.TablePatch
	if err := c.ShouldBindJSON(&patch); err != nil {
		httperr.BadRequest(c, "invalid_request", err.Error())
		return
	}

	id := c.Param("id")
	if err := h.app.Layout.UpdateTable(c.Request.Context(), middleware.Actor(c), id, patch); err != nil {
		httperr.FromError(c, err)
		return
	}
	h.GetTable(c)
}

func (h *FloorHandler) MoveTable(c *gin.Context) {
	var to models.Position
	if err := c.ShouldBindJSON(&to); err != nil {
		httperr.BadRequest(c, "invalid_request", err.Error())
		return
	}

	if err := h.app.Layout.MoveTable(c.Request.Context(), middleware.Actor(c), c.Param("id"), to); err != nil {
		httperr.FromError(c, err)
		return
	}
	h.GetTable(c)
}

func (h *FloorHandler) ChangeTableStatus(c *gin.Context) {
	var req TableStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", err.Error())
		return
	}

	err := h.app.TableStatus.Execute(c.Request.Context(), middleware.Actor(c), c.Param("id"), req.Status)
	if err != nil {
		httperr.FromError(c, err)
		return
	}
	h.GetTable(c)
}

func (h *FloorHandler) DeleteTable(c *gin.Context) {
	if err := h.app.Layout.DeleteTable(c.Request.Context(), middleware.Actor(c), c.Param("id")); err != nil {
		httperr.FromError(c, err)
		return
	}
	httpresp.NoContent(c)
}

// ======================================================
// ELEMENTS
// ======================================================

func (h *FloorHandler) ListElements(c *gin.Context) {
	httpresp.List(c, h.app.Stores.FloorElements.Items())
}

func (h *FloorHandler) getElement(c *gin.Context) {
	e, ok := h.app.Stores.FloorElements.Get(c.Param("id"))
	if !ok {
		httperr.NotFound(c, "floor_element_not_found", "element not found")
		return
	}
	httpresp.OK(c, e)
}

func (h *FloorHandler) CreateElement(c *gin.Context) {
	var req ElementRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", err.Error())
		return
	}

	e, err := h.app.Layout.CreateElement(c.Request.Context(), middleware.Actor(c), models.FloorElement{
		Type:     req.Type,
		Position: req.Position,
		Width:    req.Width,
		Height:   req.Height,
		Rotation: req.Rotation,
		Label:    req.Label,
		TableID:  req.TableID,
	})
	if err != nil {
		httperr.FromError(c, err)
		return
	}
	httpresp.Created(c, e)
}

func (h *FloorHandler) UpdateElement(c *gin.Context) {
	var patch models.FloorElementPatch
	if err := c.ShouldBindJSON(&patch); err != nil {
		httperr.BadRequest(c, "invalid_request", err.Error())
		return
	}

	if err := h.app.Layout.UpdateElement(c.Request.Context(), middleware.Actor(c), c.Param("id"), patch); err != nil {
		httperr.FromError(c, err)
		return
	}
	h.getElement(c)
}

func (h *FloorHandler) MoveElement(c *gin.Context) {
	var to models.Position
	if err := c.ShouldBindJSON(&to); err != nil {
		httperr.BadRequest(c, "invalid_request", err.Error())
		return
	}

	if err := h.app.Layout.MoveElement(c.Request.Context(), middleware.Actor(c), c.Param("id"), to); err != nil {
		httperr.FromError(c, err)
		return
	}
	h.getElement(c)
}

func (h *FloorHandler) DeleteElement(c *gin.Context) {
	if err := h.app.Layout.DeleteElement(c.Request.Context(), middleware.Actor(c), c.Param("id")); err != nil {
		httperr.FromError(c, err)
		return
	}
	httpresp.NoContent(c)
}
