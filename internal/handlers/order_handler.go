package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/restaurant-floor/internal/app"
	"github.com/BruksfildServices01/restaurant-floor/internal/dto"
	"github.com/BruksfildServices01/restaurant-floor/internal/httperr"
	"github.com/BruksfildServices01/restaurant-floor/internal/httpresp"
	"github.com/BruksfildServices01/restaurant-floor/internal/middleware"
	"github.com/BruksfildServices01/restaurant-floor/internal/models"
	orderuc "github.com/BruksfildServices01/restaurant-floor/internal/usecase/order"
	"github.com/BruksfildServices01/restaurant-floor/internal/views"
)

type OrderHandler struct {
	app *app.App
}

func NewOrderHandler(a *app.App) *OrderHandler {
	return &OrderHandler{app: a}
}

// ======================================================
// REQUESTS
// ======================================================

type OpenOrderRequest struct {
	TableID  string             `json:"table_id" binding:"required"`
	ClientID *string            `json:"client_id"`
	Items    []models.OrderItem `json:"items" binding:"required,min=1"`
	Notes    string             `json:"notes"`
}

type QuantityRequest struct {
	Quantity int `json:"quantity"`
}

type TipRequest struct {
	Tip float64 `json:"tip"`
}

type OrderStatusRequest struct {
	Status models.OrderStatus `json:"status" binding:"required"`
}

type CheckoutRequest struct {
	Method models.PaymentMethod `json:"method" binding:"required"`
}

type RefundRequest struct {
	// Amount is optional; nil refunds the whole charge.
	Amount *float64 `json:"amount"`
}

// ======================================================
// READ
// ======================================================

// List answers from the cache. ?active=1 drops served and paid orders,
// ?status= keeps one status.
func (h *OrderHandler) List(c *gin.Context) {
	orders := h.app.Stores.Orders.Items()

	if c.Query("active") == "1" {
		orders = views.ActiveOrders(orders)
	}
	if status := c.Query("status"); status != "" {
		kept := orders[:0:0]
		for _, o := range orders {
			if string(o.Status) == status {
				kept = append(kept, o)
			}
		}
		orders = kept
	}

	httpresp.List(c, dto.NewOrderList(orders))
}

func (h *OrderHandler) Get(c *gin.Context) {
	o, ok := h.app.Stores.Orders.Get(c.Param("id"))
	if !ok {
		httperr.NotFound(c, "order_not_found", "order not found")
		return
	}
	httpresp.OK(c, o)
}

// ======================================================
// WRITE
// ======================================================

func (h *OrderHandler) Open(c *gin.Context) {
	var req OpenOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", err.Error())
		return
	}

	o, err := h.app.OpenOrder.Execute(c.Request.Context(), middleware.Actor(c), orderuc.OpenInput{
		TableID:  req.TableID,
		ClientID: req.ClientID,
		Items:    req.Items,
		Notes:    req.Notes,
	})
	if err != nil {
		httperr.FromError(c, err)
		return
	}
	httpresp.Created(c, o)
}

func (h *OrderHandler) AddItem(c *gin.Context) {
	var item models.OrderItem
	if err := c.ShouldBindJSON(&item); err != nil {
		httperr.BadRequest(c, "invalid_request", err.Error())
		return
	}

	if err := h.app.EditOrder.AddItem(c.Request.Context(), middleware.Actor(c), c.Param("id"), item); err != nil {
		httperr.FromError(c, err)
		return
	}
	h.Get(c)
}

func (h *OrderHandler) RemoveItem(c *gin.Context) {
	err := h.app.EditOrder.RemoveItem(c.Request.Context(), middleware.Actor(c), c.Param("id"), c.Param("itemId"))
	if err != nil {
		httperr.FromError(c, err)
		return
	}
	h.Get(c)
}

func (h *OrderHandler) UpdateItemQuantity(c *gin.Context) {
	var req QuantityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", err.Error())
		return
	}

	err := h.app.EditOrder.UpdateItemQuantity(
		c.Request.Context(),
		middleware.Actor(c),
		c.Param("id"),
		c.Param("itemId"),
		req.Quantity,
	)
	if err != nil {
		httperr.FromError(c, err)
		return
	}
	h.Get(c)
}

func (h *OrderHandler) SetTip(c *gin.Context) {
	var req TipRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", err.Error())
		return
	}

	if err := h.app.EditOrder.SetTip(c.Request.Context(), middleware.Actor(c), c.Param("id"), req.Tip); err != nil {
		httperr.FromError(c, err)
		return
	}
	h.Get(c)
}

func (h *OrderHandler) ChangeStatus(c *gin.Context) {
	var req OrderStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", err.Error())
		return
	}

	o, err := h.app.OrderStatus.Execute(c.Request.Context(), middleware.Actor(c), c.Param("id"), req.Status)
	if err != nil {
		httperr.FromError(c, err)
		return
	}
	httpresp.OK(c, o)
}

func (h *OrderHandler) Checkout(c *gin.Context) {
	var req CheckoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", err.Error())
		return
	}

	o, err := h.app.Checkout.Execute(c.Request.Context(), middleware.Actor(c), orderuc.CheckoutInput{
		OrderID: c.Param("id"),
		Method:  req.Method,
	})
	if err != nil {
		httperr.FromError(c, err)
		return
	}
	httpresp.OK(c, o)
}

func (h *OrderHandler) Refund(c *gin.Context) {
	var req RefundRequest
	// an empty body is a full refund
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			httperr.BadRequest(c, "invalid_request", err.Error())
			return
		}
	}

	refund, err := h.app.Refund.Execute(c.Request.Context(), middleware.Actor(c), c.Param("id"), req.Amount)
	if err != nil {
		httperr.FromError(c, err)
		return
	}
	httpresp.OK(c, refund)
}

func (h *OrderHandler) Delete(c *gin.Context) {
	if err := h.app.DeleteOrder.Execute(c.Request.Context(), middleware.Actor(c), c.Param("id")); err != nil {
		httperr.FromError(c, err)
		return
	}
	httpresp.NoContent(c)
}
